// Package html dissects HTML documents into regions from the raw token
// stream of golang.org/x/net/html.
package html

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"golang.org/x/net/html"

	"github.com/joshuapare/regionkit/pkg/source"
)

// voidElements never have content or an end tag.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

type openElement struct {
	tag    string
	region *source.Region
}

// Dissect tokenizes r and returns a "document" region holding the element
// tree. Each element region starts with a start_tag child and, when closed,
// ends with an end_tag child. Text, comments, and doctypes are leaves. End
// tags close the nearest matching open element and, with it, any element
// left open inside it; an end tag that matches nothing is kept as a leaf
// where it appears.
//
// Every token leaf carries its raw bytes at the running offset, so the
// leaves concatenate back to the input.
func Dissect(r io.Reader) (*source.Region, error) {
	z := html.NewTokenizer(r)
	root := source.NewRegion("document").At(0)
	stack := []openElement{{region: root}}
	var pos int64

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("html: token at offset %d: %w", pos, err)
			}
			break
		}
		raw := bytes.Clone(z.Raw())
		at := pos
		pos += int64(len(raw))
		top := stack[len(stack)-1].region
		leaf := func(name string) *source.Region {
			return source.NewRegion(name).At(at).WithBytes(raw)
		}

		switch tt {
		case html.StartTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if voidElements[tag] {
				top.Add(leaf(tag))
				continue
			}
			el := source.NewRegion(tag).Add(leaf("start_tag"))
			top.Add(el)
			stack = append(stack, openElement{tag: tag, region: el})
		case html.SelfClosingTagToken:
			name, _ := z.TagName()
			top.Add(leaf(string(name)))
		case html.EndTagToken:
			name, _ := z.TagName()
			i := matchingOpen(stack, string(name))
			if i < 0 {
				top.Add(leaf("end_tag"))
				continue
			}
			stack[i].region.Add(leaf("end_tag"))
			stack = stack[:i]
		case html.TextToken:
			top.Add(leaf("text"))
		case html.CommentToken:
			top.Add(leaf("comment"))
		case html.DoctypeToken:
			top.Add(leaf("doctype"))
		}
	}
	return root.Sized(pos), nil
}

// matchingOpen returns the index of the innermost open element named tag,
// or -1. The document itself never matches.
func matchingOpen(stack []openElement, tag string) int {
	for i := len(stack) - 1; i > 0; i-- {
		if stack[i].tag == tag {
			return i
		}
	}
	return -1
}

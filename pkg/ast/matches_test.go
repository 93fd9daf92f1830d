package ast

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/regionkit/pkg/match"
	"github.com/joshuapare/regionkit/pkg/types"
)

func matchNames(t *testing.T, ms []*match.Match) []string {
	t.Helper()
	names := make([]string, len(ms))
	for i, m := range ms {
		names[i] = m.Name
	}
	return names
}

func TestMatchesPreorder(t *testing.T) {
	// A(B, C(D))
	root := New("A", WithOffset(0), WithChildren(
		New("B", WithOffset(0), WithLength(1)),
		New("C", WithChildren(New("D", WithOffset(1), WithLength(2)))),
	))
	ms, err := CollectMatches(root, nil)
	require.NoError(t, err)
	require.Equal(t, []string{"A", "B", "C", "D"}, matchNames(t, ms))

	require.Nil(t, ms[0].Parent)
	require.Same(t, ms[0], ms[1].Parent)
	require.Same(t, ms[0], ms[2].Parent)
	require.Same(t, ms[2], ms[3].Parent)
}

func TestMatchesDepthFirstBeforeNextSibling(t *testing.T) {
	root := New("r", WithOffset(0), WithChildren(
		New("a", WithChildren(
			New("a1", WithOffset(0), WithLength(1)),
			New("a2", WithChildren(New("a2x", WithOffset(1), WithLength(1)))),
		)),
		New("b", WithLength(1)),
	))
	ms, err := CollectMatches(root, nil)
	require.NoError(t, err)
	require.Equal(t, []string{"r", "a", "a1", "a2", "a2x", "b"}, matchNames(t, ms))
}

func TestMatchesRelativeOffsets(t *testing.T) {
	b := New("B", WithOffset(110), WithValue([]byte("0123")))
	a := New("A", WithOffset(100), WithLength(20), WithChildren(b))

	ms, err := CollectMatches(a, nil)
	require.NoError(t, err)
	require.Len(t, ms, 2)

	require.Equal(t, int64(100), ms[0].RelativeOffset)
	require.Equal(t, int64(20), ms[0].Length)
	require.Nil(t, ms[0].Value)

	require.Equal(t, int64(10), ms[1].RelativeOffset)
	require.Equal(t, int64(110), ms[1].Offset())
	require.Equal(t, []byte("0123"), ms[1].Value)
	require.Equal(t, int64(4), ms[1].Length)
}

func TestMatchesUnderExternalParent(t *testing.T) {
	container := match.New("archive", nil, 64, 1000, nil)
	member := New("member", WithOffset(96), WithChildren(
		New("name", WithOffset(100), WithText("a.txt")),
	))

	ms, err := CollectMatches(member, container)
	require.NoError(t, err)
	require.Equal(t, int64(32), ms[0].RelativeOffset)
	require.Same(t, container, ms[0].Parent)
	require.Equal(t, int64(4), ms[1].RelativeOffset)
	require.Equal(t, int64(100), ms[1].Offset())
}

func TestMatchesIsLazy(t *testing.T) {
	root := New("r", WithOffset(0), WithLength(8), WithChildren(
		New("ok", WithOffset(0), WithLength(1)),
		New("later", WithChildren(New("broken"))),
	))

	var names []string
	for m, err := range root.Matches(nil) {
		require.NoError(t, err)
		names = append(names, m.Name)
		if m.Name == "ok" {
			break
		}
	}
	require.Equal(t, []string{"r", "ok"}, names)
}

func TestMatchesYieldsErrorOnce(t *testing.T) {
	// r's length depends on "later", whose offset depends on "broken".
	root := New("r", WithOffset(0), WithLength(8), WithChildren(
		New("ok", WithOffset(0), WithLength(1)),
		New("later", WithChildren(New("broken"))),
	))

	var (
		names []string
		errs  []error
	)
	for m, err := range ToMatches(root, nil) {
		if err != nil {
			errs = append(errs, err)
			continue
		}
		names = append(names, m.Name)
	}
	require.Equal(t, []string{"r", "ok"}, names)
	require.Len(t, errs, 1)
	require.ErrorIs(t, errs[0], types.ErrMissingPosition)
}

func TestMatchesDeepTree(t *testing.T) {
	const depth = 50_000
	leaf := New("n", WithOffset(depth), WithLength(1))
	cur := leaf
	for range depth {
		cur = New("n", WithChildren(cur))
	}

	count := 0
	var last *match.Match
	for m, err := range cur.Matches(nil) {
		require.NoError(t, err)
		count++
		last = m
	}
	require.Equal(t, depth+1, count)
	require.Zero(t, last.RelativeOffset)
	require.Equal(t, int64(1), last.Length)
}

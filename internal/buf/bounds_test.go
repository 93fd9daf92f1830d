package buf

import (
	"math"
	"testing"
)

func TestAddOverflowSafe(t *testing.T) {
	if sum, ok := AddOverflowSafe(10, 5); !ok || sum != 15 {
		t.Fatalf("AddOverflowSafe(10,5)=%d,%v want 15,true", sum, ok)
	}
	if _, ok := AddOverflowSafe(math.MaxInt, 1); ok {
		t.Fatalf("expected overflow when adding to MaxInt")
	}
	if _, ok := AddOverflowSafe(math.MinInt, -1); ok {
		t.Fatalf("expected underflow when subtracting from MinInt")
	}
}

func TestInt64Arithmetic(t *testing.T) {
	if sum, ok := AddInt64(100, 28); !ok || sum != 128 {
		t.Fatalf("AddInt64(100,28)=%d,%v want 128,true", sum, ok)
	}
	if _, ok := AddInt64(math.MaxInt64, 1); ok {
		t.Fatalf("expected overflow when adding to MaxInt64")
	}
	if _, ok := AddInt64(math.MinInt64, -1); ok {
		t.Fatalf("expected underflow when adding to MinInt64")
	}
	if diff, ok := SubInt64(110, 100); !ok || diff != 10 {
		t.Fatalf("SubInt64(110,100)=%d,%v want 10,true", diff, ok)
	}
	if diff, ok := SubInt64(4, 9); !ok || diff != -5 {
		t.Fatalf("SubInt64(4,9)=%d,%v want -5,true", diff, ok)
	}
	if _, ok := SubInt64(math.MinInt64, 1); ok {
		t.Fatalf("expected underflow when subtracting from MinInt64")
	}
	if _, ok := SubInt64(math.MaxInt64, -1); ok {
		t.Fatalf("expected overflow when subtracting a negative from MaxInt64")
	}
}

func TestSliceAndHas(t *testing.T) {
	data := []byte{0, 1, 2, 3, 4}
	if got, ok := Slice(data, 1, 3); !ok || len(got) != 3 || got[0] != 1 || got[2] != 3 {
		t.Fatalf("Slice returned unexpected result: %v, %v", got, ok)
	}
	if _, ok := Slice(data, 4, 2); ok {
		t.Fatalf("Slice should fail when extending beyond len")
	}
	if Has(data, 2, 4) {
		t.Fatalf("Has should be false for out-of-bounds range")
	}
	if !Has(data, 2, 1) {
		t.Fatalf("Has should be true for valid range")
	}

	if _, ok := Slice(data, -1, 1); ok {
		t.Fatalf("Slice should reject negative offset")
	}
	if _, ok := Slice(data, 1, -1); ok {
		t.Fatalf("Slice should reject negative length")
	}
}

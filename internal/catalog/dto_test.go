package catalog

import (
	"reflect"
	"testing"
)

func TestSplitVariants(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw  string
		want []string
	}{
		{"S,M,L", []string{"S", "M", "L"}},
		{" S , M ,L ", []string{"S", "M", "L"}},
		{"", []string{}},
		{" , ,", []string{}},
		{"Red", []string{"Red"}},
	}

	for _, tc := range cases {
		if got := SplitVariants(tc.raw); !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("SplitVariants(%q) = %v, want %v", tc.raw, got, tc.want)
		}
	}
}

func TestHasVariant(t *testing.T) {
	t.Parallel()

	if !HasVariant("S,M,L", "M") {
		t.Fatal("expected M to match")
	}
	if HasVariant("S,M,L", "XL") {
		t.Fatal("did not expect XL to match")
	}
	// No selection is fine regardless of what the product defines.
	if !HasVariant("", "") {
		t.Fatal("expected empty selection on variant-free product to pass")
	}
	if !HasVariant("S,M", "") {
		t.Fatal("expected empty selection to pass when variants exist")
	}
}

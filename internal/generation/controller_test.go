package generation

import "testing"

func TestAdvanceInvalidatesPriorGeneration(t *testing.T) {
	c := New()
	gen := c.Current()

	if !c.Matches(gen) {
		t.Fatal("expected freshly captured generation to match")
	}

	c.Advance()

	if c.Matches(gen) {
		t.Fatal("expected stale generation to no longer match after Advance")
	}
	if c.Current() == gen {
		t.Fatal("expected Current() to reflect the advance")
	}
}

func TestAdvanceIsMonotonic(t *testing.T) {
	c := New()
	first := c.Advance()
	second := c.Advance()
	if second <= first {
		t.Fatalf("expected strictly increasing generations, got %d then %d", first, second)
	}
}

package lruk

import "testing"

// Threshold K=3, main capacity 2. Three Gets bring A's access count to K,
// but Get has no value to admit, so A stays absent from main; only Put
// admits (see TestLRUK_PutAtThresholdAdmits).
func TestLRUK_AdmissionByAccessCount(t *testing.T) {
	t.Parallel()

	c := NewCache[string, string](2, 8, 3)

	c.Get("A")
	if _, ok := c.Get("A"); ok {
		t.Fatalf("A must still be absent from main after 2 accesses")
	}
	if _, ok := c.Get("A"); ok {
		t.Fatalf("A must still be absent from main after the lookup itself (no value yet)")
	}
	// A has now been accessed 3 times via Get, but Get alone never admits a
	// value (there is nothing to admit): only Put can move a key into main.
	if c.Len() != 0 {
		t.Fatalf("Len() = %d, want 0 (Get never admits into main)", c.Len())
	}
}

// put(A, v) before K is reached does not admit A unless A is already present.
func TestLRUK_PutBelowThresholdDoesNotAdmit(t *testing.T) {
	t.Parallel()

	c := NewCache[string, string](2, 8, 3)

	c.Put("A", "v1")
	c.Put("A", "v2")
	if _, ok := c.Get("A"); ok {
		t.Fatalf("A must not be admitted before reaching threshold K")
	}
}

func TestLRUK_PutAtThresholdAdmits(t *testing.T) {
	t.Parallel()

	c := NewCache[string, string](2, 8, 3)

	c.Put("A", "v1")
	c.Put("A", "v2")
	c.Put("A", "v3")

	v, ok := c.Get("A")
	if !ok || v != "v3" {
		t.Fatalf("Get(A) = %q, %v, want v3, true", v, ok)
	}
}

func TestLRUK_OverwriteAlreadyInMain(t *testing.T) {
	t.Parallel()

	c := NewCache[string, string](2, 8, 2)

	c.Put("A", "v1")
	c.Put("A", "v2") // admitted at threshold 2
	c.Put("A", "v3") // already in main: overwrite, no history bump needed

	v, ok := c.Get("A")
	if !ok || v != "v3" {
		t.Fatalf("Get(A) = %q, %v, want v3, true", v, ok)
	}
}

func TestLRUK_Remove(t *testing.T) {
	t.Parallel()

	c := NewCache[string, string](2, 8, 2)
	c.Put("A", "v1")
	c.Put("A", "v2")

	if !c.Remove("A") {
		t.Fatalf("Remove(A) must return true")
	}
	if _, ok := c.Get("A"); ok {
		t.Fatalf("A must be gone after Remove")
	}
}

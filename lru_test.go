package atlas

import "testing"

func TestLRU_PutGet(t *testing.T) {
	l := newLRU[string, int]()

	l.put("a", 1)
	l.put("b", 2)

	if v, ok := l.get("a"); !ok || v != 1 {
		t.Errorf("get(a) = %d, %v, want 1, true", v, ok)
	}
	if _, ok := l.get("missing"); ok {
		t.Error("get(missing) should return false")
	}
	if l.len() != 2 {
		t.Errorf("len() = %d, want 2", l.len())
	}
}

func TestLRU_EvictionOrder(t *testing.T) {
	l := newLRU[string, int]()
	l.put("a", 1)
	l.put("b", 2)
	l.put("c", 3)

	// Access "a" so "b" becomes least recently used.
	l.get("a")

	key, _, ok := l.peekLRU()
	if !ok || key != "b" {
		t.Errorf("peekLRU() = %q, want b", key)
	}

	key, v, ok := l.popLRU()
	if !ok || key != "b" || v != 2 {
		t.Errorf("popLRU() = %q, %d, want b, 2", key, v)
	}
	key, _, _ = l.popLRU()
	if key != "c" {
		t.Errorf("second popLRU() = %q, want c", key)
	}
	key, _, _ = l.popLRU()
	if key != "a" {
		t.Errorf("third popLRU() = %q, want a", key)
	}
	if _, _, ok := l.popLRU(); ok {
		t.Error("popLRU() on empty cache should return false")
	}
}

func TestLRU_PutPromotes(t *testing.T) {
	l := newLRU[string, int]()
	l.put("a", 1)
	l.put("b", 2)

	// Re-inserting "a" should make "b" the LRU entry.
	l.put("a", 10)

	if key, _, _ := l.peekLRU(); key != "b" {
		t.Errorf("peekLRU() = %q, want b", key)
	}
	if v, _ := l.get("a"); v != 10 {
		t.Errorf("get(a) = %d, want 10 after overwrite", v)
	}
	if l.len() != 2 {
		t.Errorf("len() = %d, want 2 after overwrite", l.len())
	}
}

func TestLRU_Remove(t *testing.T) {
	l := newLRU[string, int]()
	l.put("a", 1)
	l.put("b", 2)
	l.put("c", 3)

	if !l.remove("b") {
		t.Error("remove(b) should return true")
	}
	if l.remove("b") {
		t.Error("removing twice should return false")
	}
	if l.len() != 2 {
		t.Errorf("len() = %d, want 2", l.len())
	}

	// List must stay intact around the removed middle entry.
	key, _, _ := l.popLRU()
	if key != "a" {
		t.Errorf("popLRU() = %q, want a", key)
	}
	key, _, _ = l.popLRU()
	if key != "c" {
		t.Errorf("popLRU() = %q, want c", key)
	}
}

func TestLRU_Each(t *testing.T) {
	l := newLRU[string, int]()
	l.put("a", 1)
	l.put("b", 2)
	l.put("c", 3)
	l.get("a")

	// Expect MRU to LRU: a, c, b.
	var order []string
	l.each(func(k string, _ int) bool {
		order = append(order, k)
		return true
	})
	want := []string{"a", "c", "b"}
	if len(order) != len(want) {
		t.Fatalf("each visited %d entries, want %d", len(order), len(want))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %q, want %q", i, order[i], want[i])
		}
	}

	// Early stop.
	count := 0
	l.each(func(string, int) bool {
		count++
		return false
	})
	if count != 1 {
		t.Errorf("each with early stop visited %d entries, want 1", count)
	}
}

package iteratable

import "testing"

type testItem struct {
	n int
}

func (t testItem) HashKey() interface{} { return t }

func TestAddDedup(t *testing.T) {
	s := NewSet(0)
	if !s.Add(testItem{1}) {
		t.Fatalf("expected first add to report true")
	}
	if s.Add(testItem{1}) {
		t.Fatalf("expected duplicate add to report false")
	}
	if s.Size() != 1 {
		t.Fatalf("expected size 1, got %d", s.Size())
	}
}

func TestWorklistIteration(t *testing.T) {
	s := NewSet(0)
	s.Add(testItem{0})
	var seen []int
	s.IterateOnce()
	for s.Next() {
		item := s.Item().(testItem)
		seen = append(seen, item.n)
		if item.n < 3 {
			s.Add(testItem{item.n + 1})
		}
	}
	if len(seen) != 4 {
		t.Fatalf("expected worklist growth to be visited within one iteration, got %v", seen)
	}
}

func TestSubsetAndDifference(t *testing.T) {
	s := NewSet(0)
	s.Add(testItem{1})
	s.Add(testItem{2})
	s.Add(testItem{3})
	even := s.Subset(func(v interface{}) bool { return v.(testItem).n%2 == 0 })
	if even.Size() != 1 {
		t.Fatalf("expected 1 even item, got %d", even.Size())
	}
	diff := s.Difference(even)
	if diff.Size() != 2 {
		t.Fatalf("expected 2 items in difference, got %d", diff.Size())
	}
}

func TestRemove(t *testing.T) {
	s := NewSet(0)
	s.Add(testItem{1})
	s.Add(testItem{2})
	s.Remove(testItem{1})
	if s.Contains(testItem{1}) {
		t.Fatalf("expected item to be removed")
	}
	if s.Size() != 1 {
		t.Fatalf("expected size 1 after removal, got %d", s.Size())
	}
}

func TestEquals(t *testing.T) {
	a := NewSet(0)
	a.Add(testItem{1})
	a.Add(testItem{2})
	b := NewSet(0)
	b.Add(testItem{2})
	b.Add(testItem{1})
	if !a.Equals(b) {
		t.Fatalf("expected sets with the same items in different insertion order to be equal")
	}
}

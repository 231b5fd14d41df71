package master

import "testing"

func TestStatePoolRecycles(t *testing.T) {
	p := NewStatePool(4)
	if p.Size() != 4 {
		t.Fatalf("pool size %d, expected 4", p.Size())
	}

	s := p.Get()
	if len(s) != 4 {
		t.Fatalf("buffer length %d, expected 4", len(s))
	}
	for i := range s {
		s[i] = complex(1, 1)
	}
	p.Put(s)

	// Recycled or fresh, a buffer from the pool is always zeroed.
	s2 := p.Get()
	for i, v := range s2 {
		if v != 0 {
			t.Errorf("buffer not zeroed at %d: %v", i, v)
		}
	}
}

func TestStatePoolDropsWrongLength(t *testing.T) {
	p := NewStatePool(4)
	p.Put(make(State, 3))

	if got := p.Get(); len(got) != 4 {
		t.Errorf("buffer length %d after bad Put, expected 4", len(got))
	}
}

package master

import "sync"

// StatePool recycles flattened density-matrix buffers of one fixed
// length. Adaptive integrators build several stage vectors per attempt
// and may retry attempts many times per step; pooling those buffers
// keeps long runs from churning the allocator.
type StatePool struct {
	size int
	pool sync.Pool
}

func NewStatePool(size int) *StatePool {
	p := &StatePool{size: size}
	p.pool.New = func() any { return make(State, size) }
	return p
}

// Size returns the buffer length this pool hands out.
func (p *StatePool) Size() int { return p.size }

func (p *StatePool) Get() State {
	return p.pool.Get().(State)
}

// Put zeroes s and returns it to the pool. Buffers of the wrong
// length are dropped.
func (p *StatePool) Put(s State) {
	if len(s) != p.size {
		return
	}
	for i := range s {
		s[i] = 0
	}
	p.pool.Put(s)
}

package quantum

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Space is an ordered list of tensor-product factor dimensions. The
// first factor carries the slowest-varying index.
type Space []int

// Dim returns the full Hilbert-space dimension, the product of all
// factor dimensions.
func (s Space) Dim() int {
	d := 1
	for _, n := range s {
		d *= n
	}
	return d
}

// Embed lifts a local operator on factor k to the full space by
// tensoring with identities on every other factor.
func (s Space) Embed(op *mat.CDense, k int) (*mat.CDense, error) {
	if k < 0 || k >= len(s) {
		return nil, fmt.Errorf("quantum: factor index %d out of range [0,%d)", k, len(s))
	}
	r, c := op.Dims()
	if r != s[k] || c != s[k] {
		return nil, fmt.Errorf("quantum: operator is %dx%d, factor %d has dimension %d", r, c, k, s[k])
	}

	before := 1
	for _, n := range s[:k] {
		before *= n
	}
	after := 1
	for _, n := range s[k+1:] {
		after *= n
	}

	return Kron(Identity(before), op, Identity(after)), nil
}

// MustEmbed is Embed for statically known factor indices; it panics on
// a bad index, which is a programming error.
func (s Space) MustEmbed(op *mat.CDense, k int) *mat.CDense {
	out, err := s.Embed(op, k)
	if err != nil {
		panic(err)
	}
	return out
}

// strides returns the row-major stride of each factor index.
func (s Space) strides() []int {
	st := make([]int, len(s))
	acc := 1
	for k := len(s) - 1; k >= 0; k-- {
		st[k] = acc
		acc *= s[k]
	}
	return st
}

// PartialTrace traces out every factor not listed in keep, returning
// the reduced density matrix on the kept factors in their original
// order. keep must be strictly increasing.
func (s Space) PartialTrace(rho *mat.CDense, keep []int) (*mat.CDense, error) {
	r, c := rho.Dims()
	if r != s.Dim() || c != s.Dim() {
		return nil, fmt.Errorf("quantum: matrix is %dx%d, space has dimension %d", r, c, s.Dim())
	}
	for i, k := range keep {
		if k < 0 || k >= len(s) {
			return nil, fmt.Errorf("quantum: kept factor %d out of range [0,%d)", k, len(s))
		}
		if i > 0 && keep[i-1] >= k {
			return nil, fmt.Errorf("quantum: kept factors must be strictly increasing")
		}
	}

	kept := make(map[int]bool, len(keep))
	for _, k := range keep {
		kept[k] = true
	}
	traced := make([]int, 0, len(s)-len(keep))
	for k := range s {
		if !kept[k] {
			traced = append(traced, k)
		}
	}

	st := s.strides()

	keepDim := 1
	for _, k := range keep {
		keepDim *= s[k]
	}
	traceDim := 1
	for _, k := range traced {
		traceDim *= s[k]
	}

	// Map a flat index over a factor subset to the full-space offset.
	offset := func(factors []int, idx int) int {
		off := 0
		for i := len(factors) - 1; i >= 0; i-- {
			k := factors[i]
			off += (idx % s[k]) * st[k]
			idx /= s[k]
		}
		return off
	}

	out := mat.NewCDense(keepDim, keepDim, nil)
	for a := 0; a < keepDim; a++ {
		rowBase := offset(keep, a)
		for b := 0; b < keepDim; b++ {
			colBase := offset(keep, b)
			var sum complex128
			for e := 0; e < traceDim; e++ {
				tr := offset(traced, e)
				sum += rho.At(rowBase+tr, colBase+tr)
			}
			out.Set(a, b, sum)
		}
	}

	return out, nil
}

package mesh

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// TensorAxis is one 1D axis of a tensor-product grid: an ordered sequence
// of positive cell widths anchored at an origin coordinate.
type TensorAxis struct {
	H      []float64
	Origin float64
}

// NewTensorAxis validates the cell widths and returns the axis.
func NewTensorAxis(h []float64, origin float64) (TensorAxis, error) {
	if len(h) == 0 {
		return TensorAxis{}, fmt.Errorf("mesh: axis must have at least one cell")
	}
	for i, w := range h {
		if w <= 0 {
			return TensorAxis{}, fmt.Errorf("mesh: cell width %d must be positive, got %g", i, w)
		}
	}
	return TensorAxis{H: h, Origin: origin}, nil
}

// NCells returns the number of cells on the axis.
func (a TensorAxis) NCells() int { return len(a.H) }

// NNodes returns the number of nodes on the axis.
func (a TensorAxis) NNodes() int { return len(a.H) + 1 }

// Sum returns the total extent of the axis.
func (a TensorAxis) Sum() float64 { return floats.Sum(a.H) }

// NodeVector returns the nodal coordinates: the cumulative width sums
// offset by the origin.
func (a TensorAxis) NodeVector() []float64 {
	v := make([]float64, len(a.H)+1)
	floats.CumSum(v[1:], a.H)
	floats.AddConst(a.Origin, v)
	return v
}

// CenterVector returns the cell-center coordinates.
func (a TensorAxis) CenterVector() []float64 {
	n := a.NodeVector()
	c := make([]float64, len(a.H))
	for i := range c {
		c[i] = 0.5 * (n[i] + n[i+1])
	}
	return c
}

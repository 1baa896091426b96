package utils

import (
	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"
)

// NdGrid builds the tensor-product point set of the three axis vectors as
// an (len(x)*len(y)*len(z)) x 3 matrix. The x coordinate cycles fastest,
// matching the flat ordering used by every operator in this module.
func NdGrid(x, y, z []float64) *mat.Dense {
	n := len(x) * len(y) * len(z)
	g := mat.NewDense(n, 3, nil)
	row := 0
	for _, zv := range z {
		for _, yv := range y {
			for _, xv := range x {
				g.Set(row, 0, xv)
				g.Set(row, 1, yv)
				g.Set(row, 2, zv)
				row++
			}
		}
	}
	return g
}

// interp1D locates v in the axis vector and returns the bracketing indices
// with their linear weights. Points outside the axis are clamped to the end
// interval, which extrapolates linearly. A single-node axis always returns
// full weight on its only entry.
func interp1D(ax []float64, v float64) (i0, i1 int, w0, w1 float64) {
	n := len(ax)
	if n == 1 {
		return 0, 0, 1, 0
	}
	j := 0
	for j < n-2 && v >= ax[j+1] {
		j++
	}
	d := ax[j+1] - ax[j]
	w1 = (v - ax[j]) / d
	return j, j + 1, 1 - w1, w1
}

// Interpmat builds the multilinear interpolation matrix from the tensor
// product of the axis vectors onto the given points (rows of pts, native
// coordinates). The result has one row per point and
// len(x)*len(y)*len(z) columns.
func Interpmat(pts *mat.Dense, x, y, z []float64) *sparse.CSR {
	npts, _ := pts.Dims()
	nx, ny := len(x), len(y)
	ncols := nx * ny * len(z)
	coo := sparse.NewCOO(npts, ncols, nil, nil, nil)
	for p := 0; p < npts; p++ {
		xi := [2]int{}
		yi := [2]int{}
		zi := [2]int{}
		xw := [2]float64{}
		yw := [2]float64{}
		zw := [2]float64{}
		xi[0], xi[1], xw[0], xw[1] = interp1D(x, pts.At(p, 0))
		yi[0], yi[1], yw[0], yw[1] = interp1D(y, pts.At(p, 1))
		zi[0], zi[1], zw[0], zw[1] = interp1D(z, pts.At(p, 2))
		for a := 0; a < 2; a++ {
			for b := 0; b < 2; b++ {
				for c := 0; c < 2; c++ {
					w := xw[a] * yw[b] * zw[c]
					if w == 0 {
						continue
					}
					coo.Set(p, xi[a]+yi[b]*nx+zi[c]*nx*ny, w)
				}
			}
		}
	}
	return coo.ToCSR()
}

package utils

import (
	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"
)

// Ones returns a length-n slice filled with 1.0.
func Ones(n int) []float64 {
	v := make([]float64, n)
	for i := range v {
		v[i] = 1
	}
	return v
}

// Speye returns the n x n sparse identity matrix.
func Speye(n int) *sparse.CSR {
	return Sdiag(Ones(n))
}

// Sdiag returns a sparse diagonal matrix with d on the diagonal.
func Sdiag(d []float64) *sparse.CSR {
	n := len(d)
	coo := sparse.NewCOO(n, n, nil, nil, nil)
	for i, v := range d {
		if v != 0 {
			coo.Set(i, i, v)
		}
	}
	return coo.ToCSR()
}

// SdiagInv returns a sparse diagonal matrix with the elementwise
// reciprocal of d on the diagonal.
func SdiagInv(d []float64) *sparse.CSR {
	r := make([]float64, len(d))
	for i, v := range d {
		r[i] = 1 / v
	}
	return Sdiag(r)
}

// Spzeros returns an r x c sparse matrix with no stored entries.
func Spzeros(r, c int) *sparse.CSR {
	return sparse.NewCOO(r, c, nil, nil, nil).ToCSR()
}

// Ddx returns the n x (n+1) forward first-difference matrix:
// row i holds -1 at column i and +1 at column i+1.
func Ddx(n int) *sparse.CSR {
	coo := sparse.NewCOO(n, n+1, nil, nil, nil)
	for i := 0; i < n; i++ {
		coo.Set(i, i, -1)
		coo.Set(i, i+1, 1)
	}
	return coo.ToCSR()
}

// DdxLower returns the n x n truncated first-difference matrix obtained by
// dropping the first column of Ddx(n). Row 0 holds a single +1; every other
// row i holds -1 at column i-1 and +1 at column i. On a cylindrical grid
// this is the radial difference with the r=0 column removed.
func DdxLower(n int) *sparse.CSR {
	coo := sparse.NewCOO(n, n, nil, nil, nil)
	coo.Set(0, 0, 1)
	for i := 1; i < n; i++ {
		coo.Set(i, i-1, -1)
		coo.Set(i, i, 1)
	}
	return coo.ToCSR()
}

// DdxCyclic returns the n x n cyclic first-difference matrix: row i holds
// -1 at column i and +1 at column (i+1) mod n. Used along the periodic
// azimuthal axis where the last node is identified with the first.
func DdxCyclic(n int) *sparse.CSR {
	coo := sparse.NewCOO(n, n, nil, nil, nil)
	for i := 0; i < n; i++ {
		coo.Set(i, i, -1)
		coo.Set(i, (i+1)%n, 1)
	}
	return coo.ToCSR()
}

// Av returns the n x (n+1) two-point averaging matrix with 0.5 at
// columns i and i+1 of row i.
func Av(n int) *sparse.CSR {
	coo := sparse.NewCOO(n, n+1, nil, nil, nil)
	for i := 0; i < n; i++ {
		coo.Set(i, i, 0.5)
		coo.Set(i, i+1, 0.5)
	}
	return coo.ToCSR()
}

// AvRadial returns the n x n radial averaging matrix: Av(n) with its r=0
// column dropped and the innermost weight pinned to 1, so the first cell
// takes its full value from the first face instead of averaging across the
// nonexistent region inside the axis.
func AvRadial(n int) *sparse.CSR {
	coo := sparse.NewCOO(n, n, nil, nil, nil)
	coo.Set(0, 0, 1)
	for i := 1; i < n; i++ {
		coo.Set(i, i-1, 0.5)
		coo.Set(i, i, 0.5)
	}
	return coo.ToCSR()
}

// doNonZero visits the non-zero entries of m, using the sparse fast path
// when available.
func doNonZero(m mat.Matrix, fn func(i, j int, v float64)) {
	if s, ok := m.(sparse.Sparser); ok {
		s.DoNonZero(fn)
		return
	}
	r, c := m.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if v := m.At(i, j); v != 0 {
				fn(i, j, v)
			}
		}
	}
}

// Kron returns the Kronecker product a ⊗ b as a sparse matrix.
func Kron(a, b mat.Matrix) *sparse.CSR {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	coo := sparse.NewCOO(ar*br, ac*bc, nil, nil, nil)
	doNonZero(a, func(ia, ja int, va float64) {
		doNonZero(b, func(ib, jb int, vb float64) {
			coo.Set(ia*br+ib, ja*bc+jb, va*vb)
		})
	})
	return coo.ToCSR()
}

// Kron3 returns a ⊗ b ⊗ c. With the x-fastest ordering used throughout,
// a acts on the z axis, b on the azimuthal axis and c on the radial axis.
func Kron3(a, b, c mat.Matrix) *sparse.CSR {
	return Kron(a, Kron(b, c))
}

// Scale returns s * m as a new sparse matrix.
func Scale(s float64, m mat.Matrix) *sparse.CSR {
	r, c := m.Dims()
	coo := sparse.NewCOO(r, c, nil, nil, nil)
	doNonZero(m, func(i, j int, v float64) {
		coo.Set(i, j, s*v)
	})
	return coo.ToCSR()
}

// Mul returns the sparse product a * b.
func Mul(a, b mat.Matrix) *sparse.CSR {
	c := &sparse.CSR{}
	c.Mul(a, b)
	return c
}

// HStack concatenates matrices with equal row counts side by side.
func HStack(ms ...mat.Matrix) *sparse.CSR {
	rows, cols := ms[0].Dims()
	rows0 := rows
	cols = 0
	for _, m := range ms {
		r, c := m.Dims()
		if r != rows0 {
			panic("utils: HStack row count mismatch")
		}
		cols += c
	}
	coo := sparse.NewCOO(rows0, cols, nil, nil, nil)
	off := 0
	for _, m := range ms {
		_, c := m.Dims()
		mOff := off
		doNonZero(m, func(i, j int, v float64) {
			coo.Set(i, j+mOff, v)
		})
		off += c
	}
	return coo.ToCSR()
}

// VStack concatenates matrices with equal column counts top to bottom.
func VStack(ms ...mat.Matrix) *sparse.CSR {
	_, cols0 := ms[0].Dims()
	rows := 0
	for _, m := range ms {
		r, c := m.Dims()
		if c != cols0 {
			panic("utils: VStack column count mismatch")
		}
		rows += r
	}
	coo := sparse.NewCOO(rows, cols0, nil, nil, nil)
	off := 0
	for _, m := range ms {
		r, _ := m.Dims()
		mOff := off
		doNonZero(m, func(i, j int, v float64) {
			coo.Set(i+mOff, j, v)
		})
		off += r
	}
	return coo.ToCSR()
}

// BlockDiag places the given matrices on the diagonal of a block matrix.
func BlockDiag(ms ...mat.Matrix) *sparse.CSR {
	var rows, cols int
	for _, m := range ms {
		r, c := m.Dims()
		rows += r
		cols += c
	}
	coo := sparse.NewCOO(rows, cols, nil, nil, nil)
	var rOff, cOff int
	for _, m := range ms {
		r, c := m.Dims()
		ro, co := rOff, cOff
		doNonZero(m, func(i, j int, v float64) {
			coo.Set(i+ro, j+co, v)
		})
		rOff += r
		cOff += c
	}
	return coo.ToCSR()
}

// MaxAbs returns the largest absolute value among the stored entries of m.
func MaxAbs(m mat.Matrix) float64 {
	var max float64
	doNonZero(m, func(_, _ int, v float64) {
		if v < 0 {
			v = -v
		}
		if v > max {
			max = v
		}
	})
	return max
}

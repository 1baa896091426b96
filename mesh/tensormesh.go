package mesh

import (
	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/cylfv/utils"
)

// TensorMesh is a rectangular (Cartesian) tensor-product mesh. It exists
// primarily as the companion mesh for CylMesh.CartesianProjection, which
// reads its grids, face normals and edge tangents, but it carries the
// standard face divergence so it is usable on its own.
type TensorMesh struct {
	X, Y, Z TensorAxis

	cache opCache
}

// NewTensorMesh builds a Cartesian mesh from three width sequences and an
// origin point.
func NewTensorMesh(h [3][]float64, origin [3]float64) (*TensorMesh, error) {
	var axes [3]TensorAxis
	for i := range h {
		ax, err := NewTensorAxis(h[i], origin[i])
		if err != nil {
			return nil, err
		}
		axes[i] = ax
	}
	return &TensorMesh{X: axes[0], Y: axes[1], Z: axes[2]}, nil
}

// Cell, node and staggered-location counts.

func (m *TensorMesh) NCx() int { return m.X.NCells() }
func (m *TensorMesh) NCy() int { return m.Y.NCells() }
func (m *TensorMesh) NCz() int { return m.Z.NCells() }
func (m *TensorMesh) NC() int  { return m.NCx() * m.NCy() * m.NCz() }
func (m *TensorMesh) NN() int  { return m.X.NNodes() * m.Y.NNodes() * m.Z.NNodes() }

func (m *TensorMesh) NFx() int { return m.X.NNodes() * m.NCy() * m.NCz() }
func (m *TensorMesh) NFy() int { return m.NCx() * m.Y.NNodes() * m.NCz() }
func (m *TensorMesh) NFz() int { return m.NCx() * m.NCy() * m.Z.NNodes() }
func (m *TensorMesh) NF() int  { return m.NFx() + m.NFy() + m.NFz() }

func (m *TensorMesh) NEx() int { return m.NCx() * m.Y.NNodes() * m.Z.NNodes() }
func (m *TensorMesh) NEy() int { return m.X.NNodes() * m.NCy() * m.Z.NNodes() }
func (m *TensorMesh) NEz() int { return m.X.NNodes() * m.Y.NNodes() * m.NCz() }
func (m *TensorMesh) NE() int  { return m.NEx() + m.NEy() + m.NEz() }

// Grid returns the tensor-product point set for a location tag.
func (m *TensorMesh) Grid(tag string) (*mat.Dense, error) {
	nx, cx := m.X.NodeVector(), m.X.CenterVector()
	ny, cy := m.Y.NodeVector(), m.Y.CenterVector()
	nz, cz := m.Z.NodeVector(), m.Z.CenterVector()
	switch tag {
	case "CC":
		return utils.NdGrid(cx, cy, cz), nil
	case "N":
		return utils.NdGrid(nx, ny, nz), nil
	case "Fx":
		return utils.NdGrid(nx, cy, cz), nil
	case "Fy":
		return utils.NdGrid(cx, ny, cz), nil
	case "Fz":
		return utils.NdGrid(cx, cy, nz), nil
	case "Ex":
		return utils.NdGrid(cx, ny, nz), nil
	case "Ey":
		return utils.NdGrid(nx, cy, nz), nil
	case "Ez":
		return utils.NdGrid(nx, ny, cz), nil
	}
	return nil, &InvalidLocationTagError{Tag: tag}
}

// unitRows builds an n x 3 matrix whose every row is the given unit vector.
func unitRows(n int, x, y, z float64) *mat.Dense {
	d := mat.NewDense(n, 3, nil)
	for i := 0; i < n; i++ {
		d.Set(i, 0, x)
		d.Set(i, 1, y)
		d.Set(i, 2, z)
	}
	return d
}

// Normals returns the outward unit normal of every face, stacked in
// Fx, Fy, Fz order to match the face numbering.
func (m *TensorMesh) Normals() *mat.Dense {
	n := mat.NewDense(m.NF(), 3, nil)
	n.Slice(0, m.NFx(), 0, 3).(*mat.Dense).Copy(unitRows(m.NFx(), 1, 0, 0))
	n.Slice(m.NFx(), m.NFx()+m.NFy(), 0, 3).(*mat.Dense).Copy(unitRows(m.NFy(), 0, 1, 0))
	n.Slice(m.NFx()+m.NFy(), m.NF(), 0, 3).(*mat.Dense).Copy(unitRows(m.NFz(), 0, 0, 1))
	return n
}

// Tangents returns the unit tangent of every edge, stacked in Ex, Ey, Ez
// order to match the edge numbering.
func (m *TensorMesh) Tangents() *mat.Dense {
	t := mat.NewDense(m.NE(), 3, nil)
	t.Slice(0, m.NEx(), 0, 3).(*mat.Dense).Copy(unitRows(m.NEx(), 1, 0, 0))
	t.Slice(m.NEx(), m.NEx()+m.NEy(), 0, 3).(*mat.Dense).Copy(unitRows(m.NEy(), 0, 1, 0))
	t.Slice(m.NEx()+m.NEy(), m.NE(), 0, 3).(*mat.Dense).Copy(unitRows(m.NEz(), 0, 0, 1))
	return t
}

// CellVolumes returns the volume of every cell, x fastest.
func (m *TensorMesh) CellVolumes() []float64 {
	vol := make([]float64, 0, m.NC())
	for _, hz := range m.Z.H {
		for _, hy := range m.Y.H {
			for _, hx := range m.X.H {
				vol = append(vol, hx*hy*hz)
			}
		}
	}
	return vol
}

// FaceAreas returns the area of every face, stacked in Fx, Fy, Fz order.
func (m *TensorMesh) FaceAreas() []float64 {
	area := make([]float64, 0, m.NF())
	for _, hz := range m.Z.H {
		for _, hy := range m.Y.H {
			for i := 0; i < m.X.NNodes(); i++ {
				area = append(area, hy*hz)
			}
		}
	}
	for _, hz := range m.Z.H {
		for i := 0; i < m.Y.NNodes(); i++ {
			for _, hx := range m.X.H {
				area = append(area, hx*hz)
			}
		}
	}
	for i := 0; i < m.Z.NNodes(); i++ {
		for _, hy := range m.Y.H {
			for _, hx := range m.X.H {
				area = append(area, hx*hy)
			}
		}
	}
	return area
}

// FaceDivergence returns the finite-volume face divergence
// diag(1/vol) * [Dx | Dy | Dz] * diag(area), mapping face fluxes to cell
// centers.
func (m *TensorMesh) FaceDivergence() (*sparse.CSR, error) {
	return m.cache.get("faceDiv", func() (*sparse.CSR, error) {
		nCx, nCy, nCz := m.NCx(), m.NCy(), m.NCz()
		dx := utils.Kron3(utils.Speye(nCz), utils.Speye(nCy), utils.Ddx(nCx))
		dy := utils.Kron3(utils.Speye(nCz), utils.Ddx(nCy), utils.Speye(nCx))
		dz := utils.Kron3(utils.Ddx(nCz), utils.Speye(nCy), utils.Speye(nCx))
		d := utils.HStack(dx, dy, dz)
		div := utils.Mul(utils.SdiagInv(m.CellVolumes()), utils.Mul(d, utils.Sdiag(m.FaceAreas())))
		return div, nil
	})
}

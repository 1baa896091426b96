package mesh

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/cylfv/utils"
)

// thetaTol is the construction tolerance on the azimuthal closure sum.
const thetaTol = 1e-10

// CylMesh is a staggered tensor-product mesh in cylindrical coordinates
// (r, theta, z). Widths along the azimuthal axis must sum to 2*pi. A mesh
// with a single azimuthal cell is rotationally symmetric and behaves as a
// 2D axisymmetric grid: theta faces and r/z edges do not exist in that
// mode.
//
// The mesh is immutable after construction; every derived operator is
// computed once and cached, so a CylMesh is safe to share across
// goroutines.
type CylMesh struct {
	R, Theta, Z TensorAxis

	// CartesianOrigin locates the mesh axis in an embedding Cartesian
	// frame; it is used only by CartesianProjection.
	CartesianOrigin [3]float64

	symmetric bool

	// Geometry vectors, computed eagerly at construction.
	edgeLen  []float64
	faceArea []float64
	cellVol  []float64
	// Per-family slices of faceArea.
	areaFx, areaFy, areaFz []float64

	cache opCache
}

// NewCylMesh builds a cylindrical mesh from radial, azimuthal and axial
// cell-width sequences. origin and cartesianOrigin may be nil; a non-nil
// value must have length 3. The radial and azimuthal origin components
// must be zero (the grid is anchored at the r=0 axis and theta=0), and the
// azimuthal widths must sum to 2*pi within 1e-10.
func NewCylMesh(h [3][]float64, origin, cartesianOrigin []float64) (*CylMesh, error) {
	if origin == nil {
		origin = []float64{0, 0, 0}
	}
	if len(origin) != 3 {
		return nil, fmt.Errorf("mesh: origin must have length 3, got %d", len(origin))
	}
	if origin[0] != 0 || origin[1] != 0 {
		return nil, fmt.Errorf("mesh: radial and azimuthal origin must be zero, got (%g, %g)", origin[0], origin[1])
	}
	if cartesianOrigin == nil {
		cartesianOrigin = []float64{0, 0, 0}
	}
	if len(cartesianOrigin) != 3 {
		return nil, fmt.Errorf("mesh: cartesianOrigin must be the same length as the mesh dimension, got %d", len(cartesianOrigin))
	}

	var axes [3]TensorAxis
	for i := range h {
		ax, err := NewTensorAxis(h[i], origin[i])
		if err != nil {
			return nil, err
		}
		axes[i] = ax
	}
	if d := math.Abs(axes[1].Sum() - 2*math.Pi); d > thetaTol {
		return nil, fmt.Errorf("mesh: azimuthal widths must sum to 2*pi, off by %g", d)
	}

	m := &CylMesh{
		R:         axes[0],
		Theta:     axes[1],
		Z:         axes[2],
		symmetric: axes[1].NCells() == 1,
	}
	copy(m.CartesianOrigin[:], cartesianOrigin)
	m.buildGeometry()
	return m, nil
}

// IsSymmetric reports whether the mesh is rotationally symmetric (a single
// azimuthal cell spanning the full revolution).
func (m *CylMesh) IsSymmetric() bool { return m.symmetric }

// Cell counts per axis and in total.

func (m *CylMesh) NCx() int { return m.R.NCells() }
func (m *CylMesh) NCy() int { return m.Theta.NCells() }
func (m *CylMesh) NCz() int { return m.Z.NCells() }
func (m *CylMesh) NC() int  { return m.NCx() * m.NCy() * m.NCz() }

// Node counts. In symmetric mode the radial axis has no node at r=0 beyond
// the cell count and the azimuthal axis contributes no nodes.

func (m *CylMesh) NNx() int {
	if m.symmetric {
		return m.NCx()
	}
	return m.NCx() + 1
}

func (m *CylMesh) NNy() int {
	if m.symmetric {
		return 0
	}
	return m.NCy()
}

func (m *CylMesh) NNz() int { return m.NCz() + 1 }

// NN returns the node count, consistent with the rows of GridN.
func (m *CylMesh) NN() int {
	return len(m.VectorNx()) * len(m.VectorNy()) * len(m.VectorNz())
}

// Face counts. Radial faces exclude the degenerate face at r=0, so their
// count equals the cell count in both modes.

func (m *CylMesh) NFx() int { return m.NC() }

func (m *CylMesh) NFy() int {
	if m.symmetric {
		return 0
	}
	return m.NCx() * m.NNy() * m.NCz()
}

func (m *CylMesh) NFz() int { return m.NCx() * m.NCy() * m.NNz() }

func (m *CylMesh) NF() int { return m.NFx() + m.NFy() + m.NFz() }

// Edge counts. Symmetric meshes carry only azimuthal edges. In full mode
// the z-edge count includes one axis edge per z layer on top of the
// regular tensor product.

func (m *CylMesh) NEx() int {
	if m.symmetric {
		return 0
	}
	return m.NCx() * m.NNy() * m.NNz()
}

func (m *CylMesh) NEy() int { return m.NCx() * m.NCy() * m.NNz() }

func (m *CylMesh) NEz() int {
	if m.symmetric {
		return 0
	}
	return m.NCx()*m.NCy()*m.NCz() + m.NCz()
}

func (m *CylMesh) NE() int { return m.NEx() + m.NEy() + m.NEz() }

// Coordinate vectors. The radial node vector omits r=0 in symmetric mode;
// the azimuthal node vector omits the wrapped node at 2*pi.

func (m *CylMesh) VectorNx() []float64 {
	v := m.R.NodeVector()
	if m.symmetric {
		return v[1:]
	}
	return v
}

func (m *CylMesh) VectorNy() []float64 {
	if m.symmetric {
		// There are no azimuthal nodes, but the grids need somewhere to
		// live; zero by convention.
		return []float64{0}
	}
	return m.Theta.NodeVector()[:m.NCy()]
}

func (m *CylMesh) VectorNz() []float64 { return m.Z.NodeVector() }

func (m *CylMesh) VectorCCx() []float64 { return m.R.CenterVector() }

func (m *CylMesh) VectorCCy() []float64 {
	if m.symmetric {
		return []float64{0}
	}
	return m.Theta.CenterVector()
}

func (m *CylMesh) VectorCCz() []float64 { return m.Z.CenterVector() }

// Grids. Every grid is the tensor product of the per-axis vectors in
// native (r, theta, z) coordinates, except GridEz which is deflated onto
// the reduced z-edge set in full mode.

func (m *CylMesh) GridCC() *mat.Dense {
	return utils.NdGrid(m.VectorCCx(), m.VectorCCy(), m.VectorCCz())
}

func (m *CylMesh) GridN() *mat.Dense {
	return utils.NdGrid(m.VectorNx(), m.VectorNy(), m.VectorNz())
}

func (m *CylMesh) GridFx() *mat.Dense {
	if m.symmetric {
		return utils.NdGrid(m.VectorNx(), m.VectorCCy(), m.VectorCCz())
	}
	return utils.NdGrid(m.VectorNx()[1:], m.VectorCCy(), m.VectorCCz())
}

func (m *CylMesh) GridFy() (*mat.Dense, error) {
	if m.symmetric {
		return nil, &UnsupportedLocationError{Location: "Fy", Reason: "theta faces do not exist on a symmetric mesh"}
	}
	return utils.NdGrid(m.VectorCCx(), m.VectorNy(), m.VectorCCz()), nil
}

func (m *CylMesh) GridFz() *mat.Dense {
	return utils.NdGrid(m.VectorCCx(), m.VectorCCy(), m.VectorNz())
}

func (m *CylMesh) GridEx() (*mat.Dense, error) {
	if m.symmetric {
		return nil, &UnsupportedLocationError{Location: "Ex", Reason: "radial edges do not exist on a symmetric mesh"}
	}
	return utils.NdGrid(m.VectorCCx(), m.VectorNy(), m.VectorNz()), nil
}

func (m *CylMesh) GridEy() *mat.Dense {
	if m.symmetric {
		return utils.NdGrid(m.VectorNx(), m.VectorCCy(), m.VectorNz())
	}
	return utils.NdGrid(m.VectorNx()[1:], m.VectorCCy(), m.VectorNz())
}

func (m *CylMesh) GridEz() (*mat.Dense, error) {
	if m.symmetric {
		return nil, &UnsupportedLocationError{Location: "Ez", Reason: "z edges do not exist on a symmetric mesh"}
	}
	// The naive tensor product duplicates the axis node per theta row;
	// select the surviving edges through the deflation matrix.
	naive := utils.NdGrid(m.R.NodeVector(), m.VectorNy(), m.VectorCCz())
	defl, err := m.Deflate("Ez")
	if err != nil {
		return nil, err
	}
	g := mat.NewDense(m.NEz(), 3, nil)
	defl.DoNonZero(func(i, j int, v float64) {
		if v != 0 {
			g.SetRow(i, naive.RawRowView(j))
		}
	})
	return g, nil
}

// Grid returns the point set of a location family by tag.
func (m *CylMesh) Grid(tag string) (*mat.Dense, error) {
	switch tag {
	case "CC":
		return m.GridCC(), nil
	case "N":
		return m.GridN(), nil
	case "Fx":
		return m.GridFx(), nil
	case "Fy":
		return m.GridFy()
	case "Fz":
		return m.GridFz(), nil
	case "Ex":
		return m.GridEx()
	case "Ey":
		return m.GridEy(), nil
	case "Ez":
		return m.GridEz()
	}
	return nil, &InvalidLocationTagError{Tag: tag}
}

// Count returns the number of degrees of freedom of a location family.
func (m *CylMesh) Count(tag string) (int, error) {
	switch tag {
	case "CC":
		return m.NC(), nil
	case "N":
		return m.NN(), nil
	case "Fx":
		return m.NFx(), nil
	case "Fy":
		if m.symmetric {
			return 0, &UnsupportedLocationError{Location: "Fy", Reason: "theta faces do not exist on a symmetric mesh"}
		}
		return m.NFy(), nil
	case "Fz":
		return m.NFz(), nil
	case "Ex":
		if m.symmetric {
			return 0, &UnsupportedLocationError{Location: "Ex", Reason: "radial edges do not exist on a symmetric mesh"}
		}
		return m.NEx(), nil
	case "Ey":
		return m.NEy(), nil
	case "Ez":
		if m.symmetric {
			return 0, &UnsupportedLocationError{Location: "Ez", Reason: "z edges do not exist on a symmetric mesh"}
		}
		return m.NEz(), nil
	}
	return 0, &InvalidLocationTagError{Tag: tag}
}

// Bounds returns the radial and axial extent of the mesh volume.
func (m *CylMesh) Bounds() (rMax, zMin, zMax float64) {
	nz := m.VectorNz()
	return m.R.Sum(), nz[0], nz[len(nz)-1]
}

// String summarizes the mesh in the spirit of a solver startup banner.
func (m *CylMesh) String() string {
	mode := "full 3D"
	if m.symmetric {
		mode = "symmetric"
	}
	return fmt.Sprintf("CylMesh(%s): %dx%dx%d cells, %d faces, %d edges, outer radius %g, height %g",
		mode, m.NCx(), m.NCy(), m.NCz(), m.NF(), m.NE(), m.R.Sum(), floats.Sum(m.Z.H))
}

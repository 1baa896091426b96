package mesh

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func repeat(v float64, n int) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = v
	}
	return s
}

// symMesh is the symmetric reference mesh from the examples: 5 radial and
// 3 axial cells of width 20, one azimuthal cell spanning 2*pi.
func symMesh(t *testing.T) *CylMesh {
	t.Helper()
	m, err := NewCylMesh([3][]float64{repeat(20, 5), {2 * math.Pi}, repeat(20, 3)}, nil, nil)
	require.NoError(t, err)
	return m
}

// fullMesh is the full 3D reference mesh: 5x4x3 cells.
func fullMesh(t *testing.T) *CylMesh {
	t.Helper()
	m, err := NewCylMesh([3][]float64{repeat(20, 5), repeat(math.Pi/2, 4), repeat(20, 3)}, nil, nil)
	require.NoError(t, err)
	return m
}

func TestNewCylMeshValidation(t *testing.T) {
	// Azimuthal widths must close the full revolution.
	_, err := NewCylMesh([3][]float64{{1}, {3.0}, {1}}, nil, nil)
	require.Error(t, err)

	// Within tolerance is fine.
	_, err = NewCylMesh([3][]float64{{1}, {2*math.Pi + 1e-12}, {1}}, nil, nil)
	require.NoError(t, err)

	// Widths must be positive.
	_, err = NewCylMesh([3][]float64{{1, -1}, {2 * math.Pi}, {1}}, nil, nil)
	require.Error(t, err)

	// The grid is anchored at the axis.
	_, err = NewCylMesh([3][]float64{{1}, {2 * math.Pi}, {1}}, []float64{1, 0, 0}, nil)
	require.Error(t, err)

	// cartesianOrigin must match the mesh dimension.
	_, err = NewCylMesh([3][]float64{{1}, {2 * math.Pi}, {1}}, nil, []float64{0, 0})
	require.Error(t, err)
}

func TestSymmetricCounts(t *testing.T) {
	m := symMesh(t)
	assert.True(t, m.IsSymmetric())
	assert.Equal(t, 5, m.NNx())
	assert.Equal(t, 0, m.NNy())
	assert.Equal(t, 15, m.NC())
	assert.Equal(t, 15, m.NFx())
	assert.Equal(t, 0, m.NFy())
	assert.Equal(t, 20, m.NFz())
	// The only edges are azimuthal: nCx*(nCz+1) of them.
	assert.Equal(t, 0, m.NEx())
	assert.Equal(t, 20, m.NEy())
	assert.Equal(t, 0, m.NEz())
	assert.Equal(t, m.NCx()*(m.NCz()+1), m.NEy())

	// The node count tracks the rows of the nodal grid, even though the
	// azimuthal axis contributes no nodes of its own.
	n, _ := m.GridN().Dims()
	assert.Equal(t, m.NN(), n)
	assert.Equal(t, m.NCx()*(m.NCz()+1), m.NN())
}

func TestFullCounts(t *testing.T) {
	m := fullMesh(t)
	assert.False(t, m.IsSymmetric())
	assert.Equal(t, 6, m.NNx())
	assert.Equal(t, 4, m.NNy())
	assert.Equal(t, 60, m.NC())
	assert.Equal(t, 60, m.NFx())
	assert.Equal(t, 60, m.NFy())
	assert.Equal(t, 80, m.NFz())
	assert.Equal(t, 80, m.NEx())
	assert.Equal(t, 80, m.NEy())
	// Regular z edges plus one axis edge per layer.
	assert.Equal(t, 63, m.NEz())

	div, err := m.FaceDivergence()
	require.NoError(t, err)
	r, c := div.Dims()
	assert.Equal(t, 60, r)
	assert.Equal(t, m.NF(), c)
}

func TestCoordinateVectors(t *testing.T) {
	m := symMesh(t)
	approx := cmpopts.EquateApprox(0, 1e-12)

	// Symmetric mode: no node at r=0, centers at cell midpoints.
	assert.Empty(t, cmp.Diff([]float64{20, 40, 60, 80, 100}, m.VectorNx(), approx))
	assert.Empty(t, cmp.Diff([]float64{10, 30, 50, 70, 90}, m.VectorCCx(), approx))
	assert.Empty(t, cmp.Diff([]float64{0}, m.VectorNy(), approx))
	assert.Empty(t, cmp.Diff([]float64{0, 20, 40, 60}, m.VectorNz(), approx))

	f := fullMesh(t)
	assert.Empty(t, cmp.Diff([]float64{0, 20, 40, 60, 80, 100}, f.VectorNx(), approx))
	// The wrapped azimuthal node at 2*pi is identified with 0.
	assert.Empty(t, cmp.Diff([]float64{0, math.Pi / 2, math.Pi, 3 * math.Pi / 2}, f.VectorNy(), approx))
}

func TestZOriginOffset(t *testing.T) {
	m, err := NewCylMesh([3][]float64{{10}, {2 * math.Pi}, {10, 10}}, []float64{0, 0, -10}, nil)
	require.NoError(t, err)
	approx := cmpopts.EquateApprox(0, 1e-12)
	assert.Empty(t, cmp.Diff([]float64{-10, 0, 10}, m.VectorNz(), approx))
	assert.Empty(t, cmp.Diff([]float64{-5, 5}, m.VectorCCz(), approx))
}

func TestGridShapes(t *testing.T) {
	m := fullMesh(t)
	for _, tag := range []string{"CC", "N", "Fx", "Fy", "Fz", "Ex", "Ey", "Ez"} {
		g, err := m.Grid(tag)
		require.NoError(t, err, tag)
		n, _ := g.Dims()
		cnt, err := m.Count(tag)
		require.NoError(t, err, tag)
		assert.Equal(t, cnt, n, tag)
	}
}

func TestUnsupportedLocations(t *testing.T) {
	m := symMesh(t)
	for _, tag := range []string{"Fy", "Ex", "Ez"} {
		_, err := m.Grid(tag)
		var ule *UnsupportedLocationError
		require.True(t, errors.As(err, &ule), tag)
		assert.Equal(t, tag, ule.Location)
	}

	_, err := m.Grid("Qx")
	var ilt *InvalidLocationTagError
	require.True(t, errors.As(err, &ilt))
	assert.Equal(t, "Qx", ilt.Tag)
}

func TestGridEzDeflated(t *testing.T) {
	m := fullMesh(t)
	g, err := m.GridEz()
	require.NoError(t, err)
	n, _ := g.Dims()
	require.Equal(t, m.NEz(), n)
	// First entry in each layer is the single axis edge at r=0.
	assert.Equal(t, 0.0, g.At(0, 0))
	perLayer := m.NCx()*m.NCy() + 1
	assert.Equal(t, 0.0, g.At(perLayer, 0))
}

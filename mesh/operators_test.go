package mesh

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/cylfv/utils"
)

// TestDivCurlZeroSymmetric checks the primary correctness invariant of the
// operator suite: the face divergence of any edge curl vanishes.
func TestDivCurlZeroSymmetric(t *testing.T) {
	m, err := NewCylMesh([3][]float64{{1, 2, 3}, {2 * math.Pi}, {2, 1, 4, 3}}, nil, nil)
	require.NoError(t, err)

	div, err := m.FaceDivergence()
	require.NoError(t, err)
	curl, err := m.EdgeCurl()
	require.NoError(t, err)

	dr, dc := div.Dims()
	cr, cc := curl.Dims()
	require.Equal(t, m.NC(), dr)
	require.Equal(t, m.NF(), dc)
	require.Equal(t, m.NF(), cr)
	require.Equal(t, m.NE(), cc)

	assert.Less(t, utils.MaxAbs(utils.Mul(div, curl)), 1e-10)
}

func TestDivCurlZeroFull(t *testing.T) {
	m, err := NewCylMesh([3][]float64{{1, 2, 3}, repeat(math.Pi/2, 4), {2, 5}}, nil, nil)
	require.NoError(t, err)

	div, err := m.FaceDivergence()
	require.NoError(t, err)
	curl, err := m.EdgeCurl()
	require.NoError(t, err)

	cr, cc := curl.Dims()
	require.Equal(t, m.NF(), cr)
	require.Equal(t, m.NE(), cc)

	assert.Less(t, utils.MaxAbs(utils.Mul(div, curl)), 1e-10)
}

// TestDivergenceOfUniformRadialFlux applies the divergence to the flux of
// a uniform radial field u_r = 1: each cell must see
// (A_outer - A_inner)/V = net flux per volume, which for a cylinder is
// 2/(r_outer + r_inner).
func TestDivergenceOfUniformRadialFlux(t *testing.T) {
	m := symMesh(t)
	div, err := m.FaceDivergence()
	require.NoError(t, err)

	u := make([]float64, m.NF())
	for i := 0; i < m.NFx(); i++ {
		u[i] = 1
	}
	got := make([]float64, m.NC())
	div.DoNonZero(func(i, j int, v float64) {
		got[i] += v * u[j]
	})

	vnx := m.R.NodeVector()
	for iz := 0; iz < m.NCz(); iz++ {
		for ix := 0; ix < m.NCx(); ix++ {
			want := 2 / (vnx[ix+1] + vnx[ix])
			assert.InDelta(t, want, got[ix+iz*m.NCx()], 1e-12)
		}
	}
}

func TestFaceDivYSymmetricUnsupported(t *testing.T) {
	m := symMesh(t)
	_, err := m.FaceDivY()
	var ule *UnsupportedLocationError
	require.True(t, errors.As(err, &ule))
}

func TestOperatorsCached(t *testing.T) {
	m := fullMesh(t)
	a, err := m.FaceDivergence()
	require.NoError(t, err)
	b, err := m.FaceDivergence()
	require.NoError(t, err)
	assert.Same(t, a, b)

	c1, err := m.EdgeCurl()
	require.NoError(t, err)
	c2, err := m.EdgeCurl()
	require.NoError(t, err)
	assert.Same(t, c1, c2)
}

func TestGradientsNotImplemented(t *testing.T) {
	m := fullMesh(t)
	var nie *NotImplementedError

	_, err := m.CellGrad()
	require.True(t, errors.As(err, &nie))
	_, err = m.NodalGrad()
	require.True(t, errors.As(err, &nie))
	_, err = m.NodalLaplacian()
	require.True(t, errors.As(err, &nie))

	s := symMesh(t)
	var ule *UnsupportedLocationError
	_, err = s.NodalGrad()
	require.True(t, errors.As(err, &ule))
}

func TestEdgeCurlDimsSymmetric(t *testing.T) {
	m := symMesh(t)
	curl, err := m.EdgeCurl()
	require.NoError(t, err)
	r, c := curl.Dims()
	// Azimuthal edges map onto the combined radial+axial face count.
	assert.Equal(t, m.NFx()+m.NFz(), r)
	assert.Equal(t, m.NEy(), c)
}

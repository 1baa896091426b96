package mesh

import (
	"errors"
	"testing"

	"github.com/james-bowman/sparse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rowSums(m *sparse.CSR) []float64 {
	r, _ := m.Dims()
	sums := make([]float64, r)
	m.DoNonZero(func(i, _ int, v float64) {
		sums[i] += v
	})
	return sums
}

// Averaging operators must reproduce constant fields exactly, including in
// the innermost cell where the stencil is pinned to avoid reaching inside
// the axis.
func TestAvgEdgeToCC(t *testing.T) {
	m := symMesh(t)
	av, err := m.AvgEdgeToCC()
	require.NoError(t, err)
	r, c := av.Dims()
	assert.Equal(t, m.NC(), r)
	assert.Equal(t, m.NEy(), c)
	for i, s := range rowSums(av) {
		assert.InDelta(t, 1.0, s, 1e-12, "row %d", i)
	}
}

func TestAvgFaceToCC(t *testing.T) {
	m := symMesh(t)
	av, err := m.AvgFaceToCC()
	require.NoError(t, err)
	r, c := av.Dims()
	assert.Equal(t, m.NC(), r)
	assert.Equal(t, m.NF(), c)
	for i, s := range rowSums(av) {
		assert.InDelta(t, 1.0, s, 1e-12, "row %d", i)
	}
}

func TestAvgFaceToCCV(t *testing.T) {
	m := symMesh(t)
	av, err := m.AvgFaceToCCV()
	require.NoError(t, err)
	r, c := av.Dims()
	// Components stacked, not summed.
	assert.Equal(t, 2*m.NC(), r)
	assert.Equal(t, m.NF(), c)
	for i, s := range rowSums(av) {
		assert.InDelta(t, 1.0, s, 1e-12, "row %d", i)
	}
}

func TestAvgEdgeToCCVSymmetric(t *testing.T) {
	m := symMesh(t)
	a, err := m.AvgEdgeToCC()
	require.NoError(t, err)
	b, err := m.AvgEdgeToCCV()
	require.NoError(t, err)
	// The edge field has a single azimuthal component.
	assert.Same(t, a, b)
}

func TestAveragingFullModeNotImplemented(t *testing.T) {
	m := fullMesh(t)
	var nie *NotImplementedError
	for name, call := range map[string]func() (*sparse.CSR, error){
		"AvgEdgeToCC":  m.AvgEdgeToCC,
		"AvgEdgeToCCV": m.AvgEdgeToCCV,
		"AvgFaceToCC":  m.AvgFaceToCC,
		"AvgFaceToCCV": m.AvgFaceToCCV,
	} {
		_, err := call()
		require.True(t, errors.As(err, &nie), name)
	}
}

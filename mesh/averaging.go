package mesh

import (
	"github.com/james-bowman/sparse"

	"github.com/notargets/cylfv/utils"
)

// AvgEdgeToCC returns the averaging operator from edges to cell centers.
// On a symmetric mesh the only edges are azimuthal; the radial stencil
// pins the innermost weight to 1 so no average reaches inside r=0.
// Averaging with azimuthal wrapping (full 3D mode) has not been derived.
func (m *CylMesh) AvgEdgeToCC() (*sparse.CSR, error) {
	if !m.symmetric {
		return nil, &NotImplementedError{Op: "edge-to-center averaging with azimuthal wrapping"}
	}
	return m.cache.get("aveE2CC", func() (*sparse.CSR, error) {
		return utils.Kron(utils.Av(m.NCz()), utils.AvRadial(m.NCx())), nil
	})
}

// AvgEdgeToCCV is the vector variant of AvgEdgeToCC. On a symmetric mesh
// the edge field has a single (azimuthal) component, so it coincides with
// the scalar operator.
func (m *CylMesh) AvgEdgeToCCV() (*sparse.CSR, error) {
	if !m.symmetric {
		return nil, &NotImplementedError{Op: "edge-to-center averaging with azimuthal wrapping"}
	}
	return m.AvgEdgeToCC()
}

// AvgFaceToCC returns the scalar averaging operator from faces to cell
// centers: the mean of the radial and axial two-point averages.
func (m *CylMesh) AvgFaceToCC() (*sparse.CSR, error) {
	if !m.symmetric {
		return nil, &NotImplementedError{Op: "face-to-center averaging with azimuthal wrapping"}
	}
	return m.cache.get("aveF2CC", func() (*sparse.CSR, error) {
		avr := utils.Kron(utils.Speye(m.NCz()), utils.AvRadial(m.NCx()))
		avz := utils.Kron(utils.Av(m.NCz()), utils.Speye(m.NCx()))
		return utils.Scale(0.5, utils.HStack(avr, avz)), nil
	})
}

// AvgFaceToCCV returns the per-component averaging operator from faces to
// cell centers: the radial and axial blocks stacked block-diagonally
// instead of summed.
func (m *CylMesh) AvgFaceToCCV() (*sparse.CSR, error) {
	if !m.symmetric {
		return nil, &NotImplementedError{Op: "face-to-center averaging with azimuthal wrapping"}
	}
	return m.cache.get("aveF2CCV", func() (*sparse.CSR, error) {
		avr := utils.Kron(utils.Speye(m.NCz()), utils.AvRadial(m.NCx()))
		avz := utils.Kron(utils.Av(m.NCz()), utils.Speye(m.NCx()))
		return utils.BlockDiag(avr, avz), nil
	})
}

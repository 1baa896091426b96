package mesh

import (
	"github.com/james-bowman/sparse"

	"github.com/notargets/cylfv/utils"
)

// Deflate returns the sparse selection matrix that maps a naively indexed
// tensor-product field onto the true, reduced set of degrees of freedom
// for the given location family. Rows index reduced DOFs, columns index
// the ungapped tensor product; every row carries at least one unit entry.
//
// Two degeneracies are reconciled: the ring at the singular axis r=0
// collapses all azimuthal subdivisions into one DOF, and the azimuthal
// boundary theta=2*pi is identified with theta=0. The matrix for each tag
// is built once and cached.
func (m *CylMesh) Deflate(tag string) (*sparse.CSR, error) {
	switch tag {
	case "Fx", "Fy", "Fz", "Ez":
		if m.symmetric && (tag == "Fy" || tag == "Ez") {
			return nil, &UnsupportedLocationError{Location: tag, Reason: "location does not exist on a symmetric mesh"}
		}
		return m.cache.get("defl:"+tag, func() (*sparse.CSR, error) {
			return m.buildDeflation(tag), nil
		})
	case "N", "F", "E", "Ex", "Ey":
		return nil, &NotImplementedError{Op: "deflation for location " + tag}
	}
	return nil, &InvalidLocationTagError{Tag: tag}
}

func (m *CylMesh) buildDeflation(tag string) *sparse.CSR {
	nCx, nCy, nCz := m.NCx(), m.NCy(), m.NCz()

	switch tag {
	case "Fx":
		// Pure shift: true radial face i lives at naive index i+1; the
		// naive face at r=0 has no extent and contributes nothing.
		collapse := sparse.NewCOO(nCx, nCx+1, nil, nil, nil)
		for i := 0; i < nCx; i++ {
			collapse.Set(i, i+1, 1)
		}
		return utils.Kron3(utils.Speye(nCz), utils.Speye(nCy), collapse.ToCSR())

	case "Fy":
		// Cyclic identification: the naive face at theta=2*pi folds onto
		// the true face at theta=0.
		wrap := sparse.NewCOO(nCy, nCy+1, nil, nil, nil)
		for i := 0; i < nCy; i++ {
			wrap.Set(i, i, 1)
		}
		wrap.Set(0, nCy, 1)
		return utils.Kron3(utils.Speye(nCz), wrap.ToCSR(), utils.Speye(nCx))

	case "Fz":
		// Axial faces carry no degeneracy.
		return utils.Speye(m.NFz())

	case "Ez":
		// Drop the duplicated axis node in every theta row beyond the
		// first: the generated grid line at radial index 0 repeats once
		// per azimuthal division.
		nNx := nCx + 1
		naive := nNx * nCy
		keep := make([]bool, naive)
		for i := range keep {
			keep[i] = true
		}
		for i := nNx; i < naive; i += nNx {
			keep[i] = false
		}
		sel := sparse.NewCOO(nCx*nCy+1, naive, nil, nil, nil)
		row := 0
		for j, k := range keep {
			if k {
				sel.Set(row, j, 1)
				row++
			}
		}
		return utils.Kron(utils.Speye(nCz), sel.ToCSR())
	}
	panic("mesh: unreachable deflation tag " + tag)
}

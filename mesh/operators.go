package mesh

import (
	"github.com/james-bowman/sparse"

	"github.com/notargets/cylfv/utils"
)

// FaceDivX returns the radial contribution to the face divergence
// (radial faces to cell centers).
func (m *CylMesh) FaceDivX() (*sparse.CSR, error) {
	return m.cache.get("faceDivX", func() (*sparse.CSR, error) {
		defl, err := m.Deflate("Fx")
		if err != nil {
			return nil, err
		}
		// The 1D difference acts on the naive radial faces; the deflation
		// transpose maps the true faces into that indexing.
		d := utils.Kron3(utils.Speye(m.NCz()), utils.Speye(m.NCy()), utils.Ddx(m.NCx()))
		d = utils.Mul(d, defl.T())
		return utils.Mul(utils.SdiagInv(m.cellVol), utils.Mul(d, utils.Sdiag(m.areaFx))), nil
	})
}

// FaceDivY returns the azimuthal contribution to the face divergence. It
// does not exist on a symmetric mesh: the symmetry assumption makes the
// azimuthal flux derivative vanish identically.
func (m *CylMesh) FaceDivY() (*sparse.CSR, error) {
	if m.symmetric {
		return nil, &UnsupportedLocationError{Location: "Fy", Reason: "theta faces do not exist on a symmetric mesh"}
	}
	return m.cache.get("faceDivY", func() (*sparse.CSR, error) {
		defl, err := m.Deflate("Fy")
		if err != nil {
			return nil, err
		}
		d := utils.Kron3(utils.Speye(m.NCz()), utils.Ddx(m.NCy()), utils.Speye(m.NCx()))
		d = utils.Mul(d, defl.T())
		return utils.Mul(utils.SdiagInv(m.cellVol), utils.Mul(d, utils.Sdiag(m.areaFy))), nil
	})
}

// FaceDivZ returns the axial contribution to the face divergence.
func (m *CylMesh) FaceDivZ() (*sparse.CSR, error) {
	return m.cache.get("faceDivZ", func() (*sparse.CSR, error) {
		d := utils.Kron3(utils.Ddx(m.NCz()), utils.Speye(m.NCy()), utils.Speye(m.NCx()))
		return utils.Mul(utils.SdiagInv(m.cellVol), utils.Mul(d, utils.Sdiag(m.areaFz))), nil
	})
}

// FaceDivergence returns the combined face divergence
// diag(1/vol) * [Dr | Dtheta | Dz] * diag(area); the theta block is absent
// on a symmetric mesh. Applied to a face flux field it yields net flux per
// unit volume in each cell (discrete Gauss theorem).
func (m *CylMesh) FaceDivergence() (*sparse.CSR, error) {
	return m.cache.get("faceDiv", func() (*sparse.CSR, error) {
		dx, err := m.FaceDivX()
		if err != nil {
			return nil, err
		}
		dz, err := m.FaceDivZ()
		if err != nil {
			return nil, err
		}
		if m.symmetric {
			return utils.HStack(dx, dz), nil
		}
		dy, err := m.FaceDivY()
		if err != nil {
			return nil, err
		}
		return utils.HStack(dx, dy, dz), nil
	})
}

// EdgeCurl returns the discrete curl mapping edge circulations to face
// fluxes: diag(1/area) * C * diag(edgeLen), the discrete Stokes theorem
// around each face's bounding edges. FaceDivergence * EdgeCurl is the zero
// operator to machine precision.
func (m *CylMesh) EdgeCurl() (*sparse.CSR, error) {
	return m.cache.get("edgeCurl", func() (*sparse.CSR, error) {
		if m.symmetric {
			return m.edgeCurlSymmetric(), nil
		}
		return m.edgeCurlFull(), nil
	})
}

// edgeCurlSymmetric assembles the 2D axisymmetric curl: azimuthal edges to
// radial and axial faces.
func (m *CylMesh) edgeCurlSymmetric() *sparse.CSR {
	nCx, nCz := m.NCx(), m.NCz()

	// 1D differences: radial with the r=0 column removed, axial forward.
	dr := utils.DdxLower(nCx)
	dz := utils.Ddx(nCz)

	// 2D differences: Dz lands on radial faces, Dr on axial faces.
	Dr := utils.Kron(utils.Speye(nCz+1), dr)
	Dz := utils.Scale(-1, utils.Kron(dz, utils.Speye(nCx)))

	c := utils.VStack(Dz, Dr)
	return utils.Mul(utils.SdiagInv(m.faceArea), utils.Mul(c, utils.Sdiag(m.edgeLen)))
}

// edgeCurlFull assembles the 3D curl block by block: the contributions
// landing on radial, azimuthal and axial faces. The azimuthal axis wraps
// (theta=2*pi edges fold onto theta=0) and the radial difference at the
// outer rim is single sided.
func (m *CylMesh) edgeCurlFull() *sparse.CSR {
	nCx, nCy, nCz := m.NCx(), m.NCy(), m.NCz()
	nxy := nCx * nCy

	// Block landing on radial faces: theta and z edge contributions. The
	// z-edge block leads with a zero column per layer for the axis edge,
	// which bounds no radial face.
	dtR := utils.Kron3(utils.Ddx(nCz), utils.Speye(nCy), utils.Speye(nCx))
	dzR := utils.Kron(utils.DdxCyclic(nCy), utils.Speye(nCx))
	dzR = utils.Kron(utils.Speye(nCz), utils.HStack(utils.Spzeros(nxy, 1), dzR))
	cr := utils.HStack(utils.Spzeros(m.NFx(), m.NEx()), utils.Scale(-1, dtR), dzR)

	// Block landing on azimuthal faces: radial and z edge contributions.
	// Faces adjacent to the axis pick up the axis edge with weight -1; the
	// remaining radial stencil drops the r=0 column.
	drT := utils.Kron3(utils.Ddx(nCz), utils.Speye(nCy), utils.Speye(nCx))
	ddxr := utils.Kron(utils.Speye(nCy), utils.DdxLower(nCx))
	wrapZ := sparse.NewCOO(nxy, 1, nil, nil, nil)
	for iy := 0; iy < nCy; iy++ {
		wrapZ.Set(iy*nCx, 0, -1)
	}
	dzT := utils.Kron(utils.Speye(nCz), utils.HStack(wrapZ.ToCSR(), ddxr))
	ct := utils.HStack(drT, utils.Spzeros(m.NFy(), m.NEy()), utils.Scale(-1, dzT))

	// Block landing on axial faces: radial (cyclic in theta) and theta
	// (truncated at r=0) edge contributions.
	drZ := utils.Kron3(utils.Speye(nCz+1), utils.DdxCyclic(nCy), utils.Speye(nCx))
	dtZ := utils.Kron3(utils.Speye(nCz+1), utils.Speye(nCy), utils.DdxLower(nCx))
	cz := utils.HStack(utils.Scale(-1, drZ), dtZ, utils.Spzeros(m.NFz(), m.NEz()))

	c := utils.VStack(cr, ct, cz)
	return utils.Mul(utils.SdiagInv(m.faceArea), utils.Mul(c, utils.Sdiag(m.edgeLen)))
}

// CellGrad is part of the operator contract but has not been derived for
// cylindrical meshes.
func (m *CylMesh) CellGrad() (*sparse.CSR, error) {
	return nil, &NotImplementedError{Op: "cell gradient"}
}

// NodalGrad is meaningless on a symmetric mesh (there are no nodes to
// difference) and not yet derived in full mode.
func (m *CylMesh) NodalGrad() (*sparse.CSR, error) {
	if m.symmetric {
		return nil, &UnsupportedLocationError{Location: "N", Reason: "nodal gradient is meaningless on a symmetric mesh"}
	}
	return nil, &NotImplementedError{Op: "nodal gradient"}
}

// NodalLaplacian is part of the operator contract but has not been derived
// for cylindrical meshes.
func (m *CylMesh) NodalLaplacian() (*sparse.CSR, error) {
	return nil, &NotImplementedError{Op: "nodal Laplacian"}
}

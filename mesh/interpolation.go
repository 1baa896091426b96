package mesh

import (
	"math"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/cylfv/utils"
)

// locTensors returns the per-axis coordinate vectors of a location family,
// the tensor product of which is the family's point set.
func (m *CylMesh) locTensors(tag string) (x, y, z []float64, err error) {
	switch tag {
	case "CC":
		return m.VectorCCx(), m.VectorCCy(), m.VectorCCz(), nil
	case "N":
		return m.VectorNx(), m.VectorNy(), m.VectorNz(), nil
	case "Fx":
		if m.symmetric {
			return m.VectorNx(), m.VectorCCy(), m.VectorCCz(), nil
		}
		return m.VectorNx()[1:], m.VectorCCy(), m.VectorCCz(), nil
	case "Fy":
		return m.VectorCCx(), m.VectorNy(), m.VectorCCz(), nil
	case "Fz":
		return m.VectorCCx(), m.VectorCCy(), m.VectorNz(), nil
	case "Ex":
		return m.VectorCCx(), m.VectorNy(), m.VectorNz(), nil
	case "Ey":
		if m.symmetric {
			return m.VectorNx(), m.VectorCCy(), m.VectorNz(), nil
		}
		return m.VectorNx()[1:], m.VectorCCy(), m.VectorNz(), nil
	case "Ez":
		// The deflated z-edge set is not a tensor product.
		return nil, nil, nil, &NotImplementedError{Op: "interpolation at deflated z edges"}
	}
	return nil, nil, nil, &InvalidLocationTagError{Tag: tag}
}

// outsideMask flags points outside the mesh bounding volume. The azimuthal
// coordinate wraps and never excludes a point.
func (m *CylMesh) outsideMask(points *mat.Dense) []bool {
	rMax, zMin, zMax := m.Bounds()
	n, _ := points.Dims()
	mask := make([]bool, n)
	for i := 0; i < n; i++ {
		r, z := points.At(i, 0), points.At(i, 2)
		mask[i] = r < 0 || r > rMax || z < zMin || z > zMax
	}
	return mask
}

// zeroRows returns a copy of q with the masked rows emptied.
func zeroRows(q *sparse.CSR, mask []bool) *sparse.CSR {
	r, c := q.Dims()
	coo := sparse.NewCOO(r, c, nil, nil, nil)
	q.DoNonZero(func(i, j int, v float64) {
		if !mask[i] {
			coo.Set(i, j, v)
		}
	})
	return coo.ToCSR()
}

// InterpolationMatrix returns the sparse matrix mapping a field at the
// given location onto multilinearly interpolated values at the points
// (rows of native (r, theta, z) coordinates).
//
// Tags follow the location families, plus CCVx/CCVy/CCVz selecting one
// component of a cell-centered vector field. With zerosOutside, rows for
// points outside the mesh volume are zero instead of extrapolated.
func (m *CylMesh) InterpolationMatrix(points *mat.Dense, tag string, zerosOutside bool) (*sparse.CSR, error) {
	if m.symmetric {
		switch tag {
		case "Ex", "Ez", "Fy":
			return nil, &UnsupportedLocationError{Location: tag, Reason: "location does not exist on a symmetric mesh"}
		}
	}

	var q *sparse.CSR
	switch tag {
	case "CCVx", "CCVy", "CCVz":
		cx, cy, cz, _ := m.locTensors("CC")
		qc := utils.Interpmat(points, cx, cy, cz)
		n, _ := points.Dims()
		z := utils.Spzeros(n, m.NC())
		if m.symmetric {
			// A symmetric cell-centered vector field carries radial and
			// axial blocks; the azimuthal component stands alone.
			switch tag {
			case "CCVx":
				q = utils.HStack(qc, z)
			case "CCVy":
				q = qc
			case "CCVz":
				q = utils.HStack(z, qc)
			}
		} else {
			switch tag {
			case "CCVx":
				q = utils.HStack(qc, z, z)
			case "CCVy":
				q = utils.HStack(z, qc, z)
			case "CCVz":
				q = utils.HStack(z, z, qc)
			}
		}

	case "CC", "N":
		x, y, z, err := m.locTensors(tag)
		if err != nil {
			return nil, err
		}
		q = utils.Interpmat(points, x, y, z)

	case "Fx", "Fy", "Fz", "Ex", "Ey", "Ez":
		x, y, z, err := m.locTensors(tag)
		if err != nil {
			return nil, err
		}
		qc := utils.Interpmat(points, x, y, z)
		n, _ := points.Dims()
		var blocks []mat.Matrix
		for _, fam := range m.families(tag[0]) {
			if fam == tag {
				blocks = append(blocks, qc)
				continue
			}
			cnt, _ := m.Count(fam)
			blocks = append(blocks, utils.Spzeros(n, cnt))
		}
		q = utils.HStack(blocks...)

	default:
		return nil, &InvalidLocationTagError{Tag: tag}
	}

	if zerosOutside {
		q = zeroRows(q, m.outsideMask(points))
	}
	return q, nil
}

// families lists the location families of a kind ('F' or 'E') that exist
// on the mesh, in stacking order.
func (m *CylMesh) families(kind byte) []string {
	if kind == 'F' {
		if m.symmetric {
			return []string{"Fx", "Fz"}
		}
		return []string{"Fx", "Fy", "Fz"}
	}
	if m.symmetric {
		return []string{"Ey"}
	}
	return []string{"Ex", "Ey", "Ez"}
}

// CartesianProjection returns the matrix translating a field on this mesh
// onto the given Cartesian mesh's location family, rotating vector
// components into the local polar basis. Supported only for symmetric
// meshes. Tags "F" and "E" stack all components of the target family.
func (m *CylMesh) CartesianProjection(rect *TensorMesh, tag string) (*sparse.CSR, error) {
	return m.cartesianProjection(rect, tag, tag)
}

func (m *CylMesh) cartesianProjection(rect *TensorMesh, locType, locTypeTo string) (*sparse.CSR, error) {
	if !m.symmetric {
		return nil, &NotImplementedError{Op: "cartesian projection for non-symmetric meshes"}
	}

	switch locType {
	case "F":
		x, err := m.cartesianProjection(rect, "Fx", locTypeTo+"x")
		if err != nil {
			return nil, err
		}
		y, err := m.cartesianProjection(rect, "Fy", locTypeTo+"y")
		if err != nil {
			return nil, err
		}
		z, err := m.cartesianProjection(rect, "Fz", locTypeTo+"z")
		if err != nil {
			return nil, err
		}
		return utils.VStack(x, y, z), nil
	case "E":
		x, err := m.cartesianProjection(rect, "Ex", locTypeTo+"x")
		if err != nil {
			return nil, err
		}
		y, err := m.cartesianProjection(rect, "Ey", locTypeTo+"y")
		if err != nil {
			return nil, err
		}
		// The symmetric mesh has no z edges to draw from.
		z := utils.Spzeros(rect.NEz(), m.NE())
		return utils.VStack(x, y, z), nil
	}

	grid, err := rect.Grid(locTypeTo)
	if err != nil {
		return nil, err
	}
	n, _ := grid.Dims()

	// Polar coordinates of the query points about the embedded axis:
	// theta from the x axis, counterclockwise in the x-y slice.
	r := make([]float64, n)
	theta := make([]float64, n)
	for i := 0; i < n; i++ {
		gx := grid.At(i, 0) - m.CartesianOrigin[0]
		gy := grid.At(i, 1) - m.CartesianOrigin[1]
		t := -math.Atan2(gx, gy) + math.Pi/2
		if t < 0 {
			t += 2 * math.Pi
		}
		r[i] = math.Hypot(gx, gy)
		theta[i] = t
	}

	proj := utils.Ones(n)
	switch locType {
	case "CC", "N", "Fz", "Ez":
		// Scalar locations need no directional decomposition.
	case "Fx", "Fy":
		dot, err := familyRows(rect.Normals(), rect, locTypeTo)
		if err != nil {
			return nil, err
		}
		for i := 0; i < n; i++ {
			proj[i] = math.Cos(theta[i])*dot.At(i, 0) + math.Sin(theta[i])*dot.At(i, 1)
		}
	case "Ex", "Ey":
		dot, err := familyRows(rect.Tangents(), rect, locTypeTo)
		if err != nil {
			return nil, err
		}
		for i := 0; i < n; i++ {
			proj[i] = -math.Sin(theta[i])*dot.At(i, 0) + math.Cos(theta[i])*dot.At(i, 1)
		}
	default:
		return nil, &InvalidLocationTagError{Tag: locType}
	}

	g := mat.NewDense(n, 3, nil)
	for i := 0; i < n; i++ {
		g.Set(i, 0, r[i])
		g.Set(i, 1, theta[i])
		g.Set(i, 2, grid.At(i, 2))
	}

	// Fold locations absent from the symmetric mesh onto their polar
	// counterparts: Cartesian x/y both live in the r-theta plane.
	interpType := locType
	switch interpType {
	case "Fy":
		interpType = "Fx"
	case "Ex":
		interpType = "Ey"
	}
	p, err := m.InterpolationMatrix(g, interpType, false)
	if err != nil {
		return nil, err
	}
	return utils.Mul(utils.Sdiag(proj), p), nil
}

// familyRows slices the rows of the stacked per-face normals or per-edge
// tangents belonging to one location family.
func familyRows(stacked *mat.Dense, rect *TensorMesh, tag string) (*mat.Dense, error) {
	var start, end int
	switch tag {
	case "Fx":
		start, end = 0, rect.NFx()
	case "Fy":
		start, end = rect.NFx(), rect.NFx()+rect.NFy()
	case "Fz":
		start, end = rect.NFx()+rect.NFy(), rect.NF()
	case "Ex":
		start, end = 0, rect.NEx()
	case "Ey":
		start, end = rect.NEx(), rect.NEx()+rect.NEy()
	case "Ez":
		start, end = rect.NEx()+rect.NEy(), rect.NE()
	default:
		return nil, &InvalidLocationTagError{Tag: tag}
	}
	return stacked.Slice(start, end, 0, 3).(*mat.Dense), nil
}

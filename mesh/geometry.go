package mesh

import "math"

// buildGeometry computes the measure vectors for every location family.
// Radial "thickness" in cylindrical coordinates is not a Euclidean length:
// axial faces and cell volumes use the annular area pi*(r_o^2 - r_i^2),
// radial faces and azimuthal edges scale with arc length at their radius.
func (m *CylMesh) buildGeometry() {
	hx, hy, hz := m.R.H, m.Theta.H, m.Z.H
	nCx, nCy, nCz := m.NCx(), m.NCy(), m.NCz()

	if m.symmetric {
		vnx := m.VectorNx() // node radii, r=0 omitted

		// Annular cross-section per radial cell.
		az := make([]float64, nCx)
		prev := 0.0
		for i, r := range vnx {
			az[i] = math.Pi * (r*r - prev*prev)
			prev = r
		}

		m.areaFx = make([]float64, 0, nCx*nCz)
		for _, h := range hz {
			for _, r := range vnx {
				m.areaFx = append(m.areaFx, 2*math.Pi*r*h)
			}
		}
		m.areaFz = make([]float64, 0, nCx*(nCz+1))
		for iz := 0; iz < nCz+1; iz++ {
			m.areaFz = append(m.areaFz, az...)
		}
		m.faceArea = append(append([]float64{}, m.areaFx...), m.areaFz...)

		m.cellVol = make([]float64, 0, nCx*nCz)
		for _, h := range hz {
			for _, a := range az {
				m.cellVol = append(m.cellVol, a*h)
			}
		}

		// The only edges are azimuthal: arc length at each node radius.
		m.edgeLen = make([]float64, 0, nCx*(nCz+1))
		for iz := 0; iz < nCz+1; iz++ {
			for _, r := range vnx {
				m.edgeLen = append(m.edgeLen, 2*math.Pi*r)
			}
		}
		return
	}

	vnx := m.R.NodeVector() // nCx+1 radii including r=0

	// Per-cell azimuthal slice of the annulus: 0.5*(r_o^2 - r_i^2) per
	// unit angle.
	half := make([]float64, nCx)
	for i := 0; i < nCx; i++ {
		half[i] = 0.5 * (vnx[i+1]*vnx[i+1] - vnx[i]*vnx[i])
	}

	m.areaFx = make([]float64, 0, nCx*nCy*nCz)
	for _, dz := range hz {
		for _, dt := range hy {
			for _, r := range vnx[1:] {
				m.areaFx = append(m.areaFx, dz*dt*r)
			}
		}
	}
	m.areaFy = make([]float64, 0, nCx*nCy*nCz)
	for _, dz := range hz {
		for iy := 0; iy < nCy; iy++ {
			for _, dr := range hx {
				m.areaFy = append(m.areaFy, dz*dr)
			}
		}
	}
	m.areaFz = make([]float64, 0, nCx*nCy*(nCz+1))
	for iz := 0; iz < nCz+1; iz++ {
		for _, dt := range hy {
			for _, a := range half {
				m.areaFz = append(m.areaFz, dt*a)
			}
		}
	}
	m.faceArea = append(append(append([]float64{}, m.areaFx...), m.areaFy...), m.areaFz...)

	m.cellVol = make([]float64, 0, nCx*nCy*nCz)
	for _, dz := range hz {
		for _, dt := range hy {
			for _, a := range half {
				m.cellVol = append(m.cellVol, dt*a*dz)
			}
		}
	}

	// Edge lengths: radial and axial edges equal their axis width,
	// azimuthal edges equal arc length at their radius. The z-edge block
	// leads with the single axis edge per layer.
	m.edgeLen = make([]float64, 0, m.NE())
	for iz := 0; iz < nCz+1; iz++ {
		for iy := 0; iy < nCy; iy++ {
			m.edgeLen = append(m.edgeLen, hx...)
		}
	}
	for iz := 0; iz < nCz+1; iz++ {
		for _, dt := range hy {
			for _, r := range vnx[1:] {
				m.edgeLen = append(m.edgeLen, dt*r)
			}
		}
	}
	for _, dz := range hz {
		for i := 0; i < nCx*nCy+1; i++ {
			m.edgeLen = append(m.edgeLen, dz)
		}
	}
}

// EdgeLengths returns the length of every edge, stacked per family in
// Ex, Ey, Ez order (Ey only on a symmetric mesh).
func (m *CylMesh) EdgeLengths() []float64 { return m.edgeLen }

// FaceAreas returns the area of every face, stacked per family in
// Fx, Fy, Fz order (Fx, Fz on a symmetric mesh).
func (m *CylMesh) FaceAreas() []float64 { return m.faceArea }

// CellVolumes returns the volume of every cell, x fastest.
func (m *CylMesh) CellVolumes() []float64 { return m.cellVol }

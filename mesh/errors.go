package mesh

import "fmt"

// UnsupportedLocationError reports a request for a location family that
// does not exist on the mesh in its current mode, e.g. theta faces on a
// rotationally symmetric mesh.
type UnsupportedLocationError struct {
	Location string
	Reason   string
}

func (e *UnsupportedLocationError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("mesh: location %q is not supported on this mesh", e.Location)
	}
	return fmt.Sprintf("mesh: location %q is not supported: %s", e.Location, e.Reason)
}

// InvalidLocationTagError reports a location tag that is not recognized at
// all, independent of mesh mode.
type InvalidLocationTagError struct {
	Tag string
}

func (e *InvalidLocationTagError) Error() string {
	return fmt.Sprintf("mesh: invalid location tag %q", e.Tag)
}

// NotImplementedError marks a deliberate feature gap: the requested
// operator is part of the contract but has not been derived for this mesh
// configuration. Callers must not treat it as an approximate zero.
type NotImplementedError struct {
	Op string
}

func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("mesh: %s is not implemented", e.Op)
}

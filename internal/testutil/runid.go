package testutil

// DefaultRunID is used by FixedRunID when no identifier is given.
const DefaultRunID = "run-default"

// FixedRunID hands out the same run identifier every time, so repeated
// scenario runs produce byte-identical traces.
type FixedRunID struct {
	id string
}

// NewFixedRunID returns a generator for id, or DefaultRunID when id is
// empty.
func NewFixedRunID(id string) FixedRunID {
	if id == "" {
		id = DefaultRunID
	}
	return FixedRunID{id: id}
}

// Generate returns the fixed identifier.
func (g FixedRunID) Generate() string {
	return g.id
}

package model

// ID is the stable, user-facing identifier of a training vector.
// It must be unique within a training set.
type ID string

// IdentifiedVector pairs an embedding with its stable identifier.
// Vectors are immutable once generated.
type IdentifiedVector struct {
	ID     ID
	Vector []float32
}

// Neighbor is a single entry in an exact nearest-neighbor list.
type Neighbor struct {
	// ID is the identifier of the training vector.
	ID ID

	// Distance is the exact distance to the query (metric-dependent,
	// smaller is closer).
	Distance float32
}

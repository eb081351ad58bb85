package graph

// EdgeInput is a caller-supplied directed edge, prior to id remapping and
// length computation. LengthPlaceholder is accepted but ignored; Build
// always recomputes length from node coordinates via geo.Haversine.
type EdgeInput struct {
	SourceExternalID  uint64
	DestExternalID    uint64
	LengthPlaceholder float64
	Speed             uint64 // meters/second
	ForCars           bool
	ForPedestrians    bool
}

// HalfEdge is one directed edge in the built graph's CSR half-edge vector.
// Endpoint is an internal node id, suitable for indexing Graph.Nodes and
// Graph.NodeOffsets directly.
type HalfEdge struct {
	Endpoint       int
	Length         float64 // meters
	Time           float64 // seconds, Length/Speed
	ForCars        bool
	ForPedestrians bool
}

package graph

// Node is a point in the road network. ExternalID is the opaque identifier
// nodes arrive with (e.g. an OSM node id); it is unique among the nodes
// passed to Build. Height is carried through for callers that need
// elevation but is not used by the core.
type Node struct {
	ExternalID uint64
	Latitude   float64
	Longitude  float64
	Height     uint64
}

// Lat and Lon satisfy grid.LatLoner.
func (n Node) Lat() float64 { return n.Latitude }
func (n Node) Lon() float64 { return n.Longitude }

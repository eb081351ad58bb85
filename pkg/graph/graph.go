// Package graph builds and represents the coverage-weighted road network:
// a compressed sparse row graph over nodes and directed edges, alongside
// the per-provider coverage fractions computed for each edge at build
// time. Loading nodes/edges from OSM, serializing the built graph, and
// serving it over HTTP are all external collaborators outside this
// package's scope.
package graph

import (
	"github.com/azybler/covroute/pkg/coverage"
	"github.com/azybler/covroute/pkg/grid"
	"github.com/azybler/covroute/pkg/towers"
)

// Graph is the compressed sparse row representation of a built road
// network. A node's position in Nodes is its internal id; NodeOffsets[id]
// through NodeOffsets[id+1] indexes the half-edges leaving that node in
// HalfEdges.
type Graph struct {
	Nodes       []Node
	NodeOffsets []int // len NodeCount()+1, non-decreasing
	HalfEdges   []HalfEdge
	Towers      []towers.Tower
	Coverage    *coverage.Store

	nodeGrid *grid.Grid[Node]
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.Nodes) }

// EdgeCount returns the number of half-edges in the graph.
func (g *Graph) EdgeCount() int { return len(g.HalfEdges) }

// OutgoingEdgesFor returns the half-edges leaving internal node id.
func (g *Graph) OutgoingEdgesFor(id int) []HalfEdge {
	return g.HalfEdges[g.NodeOffsets[id]:g.NodeOffsets[id+1]]
}

// NextNodeTo returns the internal id and Node nearest (lat, lon), by
// haversine distance.
func (g *Graph) NextNodeTo(lat, lon float64) (int, Node, error) {
	return g.nodeGrid.NearestNeighbor(lat, lon, g.Nodes)
}

// LowCoverageEdges returns the (from, to) node pairs of every outgoing edge,
// from a node within box, whose coverage fraction for provider p is at or
// below threshold. Supplements the original's low-coverage query as a pure
// function, without the HTTP/GeoJSON plumbing that surrounded it.
func (g *Graph) LowCoverageEdges(box grid.BoundingBox, p towers.Provider, threshold float64) [][2]Node {
	cov, ok := g.Coverage.GetAll(p)
	if !ok {
		return nil
	}

	var out [][2]Node
	for id, n := range g.Nodes {
		if !box.Contains(n.Lat(), n.Lon()) {
			continue
		}
		start, end := g.NodeOffsets[id], g.NodeOffsets[id+1]
		for e := start; e < end; e++ {
			if cov[e] <= threshold {
				out = append(out, [2]Node{n, g.Nodes[g.HalfEdges[e].Endpoint]})
			}
		}
	}
	return out
}

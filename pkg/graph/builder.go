package graph

import (
	"fmt"
	"log"
	"sort"

	"github.com/azybler/covroute/pkg/coverage"
	"github.com/azybler/covroute/pkg/geo"
	"github.com/azybler/covroute/pkg/grid"
	"github.com/azybler/covroute/pkg/towers"
)

// resolvedEdge is an edge after id remapping, length computation, and
// coverage-fraction computation, still in pre-sort order.
type resolvedEdge struct {
	source, dest    int
	length          float64
	speed           uint64
	forCars         bool
	forPedestrians  bool
	coverageByIndex [3]float64 // indexed by int(provider)-1
}

// Build constructs a Graph from raw nodes, edges, and towers, following six
// steps: grid the nodes, remap edge endpoints to internal ids and compute
// their haversine length, grid the towers and fill per-edge coverage
// fractions, sort and dedup edges by (source, dest), build the CSR offset
// array, and project the final half-edge vector. Steps 2 and 3 run their
// per-edge work across a worker pool since every edge's computation only
// reads shared, already-built state and writes its own disjoint slot.
//
// An edge referencing an external node id absent from nodes is a
// programmer error and panics.
func Build(nodes []Node, edges []EdgeInput, towerList []towers.Tower, cfg BuildConfig) *Graph {
	if len(nodes) == 0 {
		return &Graph{Coverage: coverage.New(0)}
	}

	nodeGrid := grid.New(nodes, cfg.GridSide)

	idToIndex := make(map[uint64]int, len(nodes))
	for i, n := range nodes {
		idToIndex[n.ExternalID] = i
	}

	resolved := make([]resolvedEdge, len(edges))
	forEachIndex(len(edges), func(i int) {
		e := edges[i]
		srcIdx, ok := idToIndex[e.SourceExternalID]
		if !ok {
			panic(fmt.Sprintf("graph: edge references unknown source node id %d", e.SourceExternalID))
		}
		dstIdx, ok := idToIndex[e.DestExternalID]
		if !ok {
			panic(fmt.Sprintf("graph: edge references unknown dest node id %d", e.DestExternalID))
		}
		src, dst := nodes[srcIdx], nodes[dstIdx]
		resolved[i] = resolvedEdge{
			source:         srcIdx,
			dest:           dstIdx,
			length:         geo.Haversine(src.Lat(), src.Lon(), dst.Lat(), dst.Lon()),
			speed:          e.Speed,
			forCars:        e.ForCars,
			forPedestrians: e.ForPedestrians,
		}
	})
	log.Printf("graph: resolved %d edges over %d nodes", len(resolved), len(nodes))

	var towerGrid *grid.Grid[towers.Tower]
	if len(towerList) > 0 {
		towerGrid = grid.New(towerList, cfg.GridSide)
	}
	forEachIndex(len(resolved), func(i int) {
		e := &resolved[i]
		e.coverageByIndex = edgeCoverage(towerGrid, towerList, nodes[e.source], nodes[e.dest], e.length, cfg.CoverageBaseRadiusMeters)
	})
	log.Printf("graph: computed coverage for %d edges over %d towers", len(resolved), len(towerList))

	sort.SliceStable(resolved, func(i, j int) bool {
		if resolved[i].source != resolved[j].source {
			return resolved[i].source < resolved[j].source
		}
		return resolved[i].dest < resolved[j].dest
	})
	deduped := resolved[:0:0]
	for i, e := range resolved {
		if i > 0 && e.source == resolved[i-1].source && e.dest == resolved[i-1].dest {
			continue
		}
		deduped = append(deduped, e)
	}

	offsets := buildOffsets(deduped, len(nodes))

	halfEdges := make([]HalfEdge, len(deduped))
	store := coverage.New(len(deduped))
	for i, e := range deduped {
		halfEdges[i] = HalfEdge{
			Endpoint:       e.dest,
			Length:         e.length,
			Time:           e.length / float64(e.speed),
			ForCars:        e.forCars,
			ForPedestrians: e.forPedestrians,
		}
		for _, p := range towers.AllProviders {
			store.Set(p, i, e.coverageByIndex[int(p)-1])
		}
	}

	g := &Graph{
		Nodes:       nodes,
		NodeOffsets: offsets,
		HalfEdges:   halfEdges,
		Towers:      towerList,
		Coverage:    store,
		nodeGrid:    nodeGrid,
	}

	if n := g.ComponentCount(); n > 1 {
		log.Printf("graph: built graph has %d weakly connected components", n)
	}

	return g
}

// buildOffsets constructs the CSR offset array for edges (already sorted
// by source) over numNodes nodes.
func buildOffsets(edges []resolvedEdge, numNodes int) []int {
	offsets := make([]int, numNodes+1)
	last := 0
	for i, e := range edges {
		for o := last + 1; o <= e.source; o++ {
			offsets[o] = i
		}
		last = e.source
	}
	for o := last + 1; o < len(offsets); o++ {
		offsets[o] = len(edges)
	}

	for i := 1; i < len(offsets); i++ {
		if offsets[i] < offsets[i-1] {
			panic("graph: offsets must be non-decreasing")
		}
	}
	if offsets[len(offsets)-1] != len(edges) {
		panic("graph: final offset must equal half-edge count")
	}
	return offsets
}

// edgeCoverage computes, for edge a->b, the union-length coverage fraction
// contributed by every tower of each provider within
// baseRadius+edgeLength of a. When a lies outside the tower grid's bounding
// box, every tower is considered.
func edgeCoverage(towerGrid *grid.Grid[towers.Tower], towerList []towers.Tower, a, b Node, edgeLength, baseRadius float64) [3]float64 {
	var result [3]float64
	if towerGrid == nil {
		return result
	}

	var sections [4][]geo.SegmentSection // indexed by towers.Provider value; index 0 unused
	radius := baseRadius + edgeLength
	visit := func(batch []towers.Tower) bool {
		for _, tw := range batch {
			lat0 := tw.Lat()
			pa := geo.Project(a.Lat(), a.Lon(), lat0)
			pb := geo.Project(b.Lat(), b.Lon(), lat0)
			center := geo.Project(tw.Lat(), tw.Lon(), lat0)
			sec := geo.Intersect(pa, pb, center, tw.Range)
			if !sec.IsEmpty() {
				idx := int(tw.Provider)
				sections[idx] = append(sections[idx], sec)
			}
		}
		return true
	}
	if !towerGrid.AdjacentWithinRadius(a.Lat(), a.Lon(), radius, towerList, visit) {
		// a lies outside the tower grid's bounding box, where the grid
		// cannot answer; fall back to every tower.
		visit(towerList)
	}

	for _, p := range towers.AllProviders {
		result[int(p)-1] = geo.UnionLength(sections[int(p)])
	}
	return result
}

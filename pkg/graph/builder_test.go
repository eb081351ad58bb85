package graph

import (
	"math"
	"testing"

	"github.com/azybler/covroute/pkg/geo"
	"github.com/azybler/covroute/pkg/towers"
)

func straightLineNodes() []Node {
	// A small cluster of nodes near Berlin, far enough apart that the
	// default grid side still separates them into distinct cells.
	return []Node{
		{ExternalID: 23, Latitude: 52.500, Longitude: 13.400},
		{ExternalID: 27, Latitude: 52.501, Longitude: 13.401},
		{ExternalID: 53, Latitude: 52.502, Longitude: 13.402},
		{ExternalID: 36, Latitude: 52.503, Longitude: 13.403},
		{ExternalID: 78, Latitude: 52.504, Longitude: 13.404},
	}
}

func TestBuildOffsetsAndOutgoingEdges(t *testing.T) {
	nodes := straightLineNodes()
	edges := []EdgeInput{
		{SourceExternalID: 23, DestExternalID: 27, Speed: 1, ForCars: true, ForPedestrians: true},
		{SourceExternalID: 23, DestExternalID: 53, Speed: 1, ForCars: true, ForPedestrians: true},
		{SourceExternalID: 53, DestExternalID: 36, Speed: 1, ForCars: true, ForPedestrians: true},
		{SourceExternalID: 23, DestExternalID: 36, Speed: 1, ForCars: true, ForPedestrians: true},
		{SourceExternalID: 53, DestExternalID: 78, Speed: 1, ForCars: true, ForPedestrians: true},
	}

	g := Build(nodes, edges, nil, DefaultBuildConfig())

	if g.NodeCount() != 5 {
		t.Fatalf("NodeCount() = %d, want 5", g.NodeCount())
	}
	if len(g.NodeOffsets) != 6 {
		t.Fatalf("len(NodeOffsets) = %d, want 6", len(g.NodeOffsets))
	}
	if g.EdgeCount() != 5 {
		t.Fatalf("EdgeCount() = %d, want 5", g.EdgeCount())
	}

	idx := make(map[uint64]int, 5)
	for i, n := range g.Nodes {
		idx[n.ExternalID] = i
	}

	out := g.OutgoingEdgesFor(idx[23])
	if len(out) != 3 {
		t.Fatalf("outgoing edges from node 23 = %d, want 3", len(out))
	}
	out = g.OutgoingEdgesFor(idx[53])
	if len(out) != 2 {
		t.Fatalf("outgoing edges from node 53 = %d, want 2", len(out))
	}
	for _, id := range []uint64{27, 36, 78} {
		out = g.OutgoingEdgesFor(idx[id])
		if len(out) != 0 {
			t.Errorf("outgoing edges from node %d = %d, want 0", id, len(out))
		}
	}

	for i := 1; i < len(g.NodeOffsets); i++ {
		if g.NodeOffsets[i] < g.NodeOffsets[i-1] {
			t.Fatalf("NodeOffsets not non-decreasing at %d: %v", i, g.NodeOffsets)
		}
	}
}

func TestBuildDedupsParallelEdgesKeepingFirst(t *testing.T) {
	nodes := straightLineNodes()
	edges := []EdgeInput{
		{SourceExternalID: 23, DestExternalID: 27, Speed: 2, ForCars: true},
		{SourceExternalID: 23, DestExternalID: 27, Speed: 99, ForCars: false},
	}

	g := Build(nodes, edges, nil, DefaultBuildConfig())
	if g.EdgeCount() != 1 {
		t.Fatalf("EdgeCount() = %d, want 1 after dedup", g.EdgeCount())
	}
	if !g.HalfEdges[0].ForCars {
		t.Error("expected the first occurrence's ForCars to survive dedup")
	}
}

func TestBuildLengthMatchesHaversine(t *testing.T) {
	nodes := straightLineNodes()
	edges := []EdgeInput{
		{SourceExternalID: 23, DestExternalID: 78, Speed: 10, ForCars: true},
	}
	g := Build(nodes, edges, nil, DefaultBuildConfig())
	if g.EdgeCount() != 1 {
		t.Fatalf("EdgeCount() = %d, want 1", g.EdgeCount())
	}
	he := g.HalfEdges[0]
	wantTime := he.Length / 10
	if he.Time != wantTime {
		t.Errorf("Time = %f, want %f", he.Time, wantTime)
	}
	if he.Length <= 0 {
		t.Errorf("Length = %f, want > 0", he.Length)
	}
	wantLength := geo.Haversine(52.500, 13.400, 52.504, 13.404)
	if math.Abs(he.Length-wantLength) > 1e-6 {
		t.Errorf("Length = %f, want haversine %f", he.Length, wantLength)
	}
}

func TestBuildEmptyGraph(t *testing.T) {
	g := Build(nil, nil, nil, DefaultBuildConfig())
	if g.NodeCount() != 0 || g.EdgeCount() != 0 {
		t.Fatalf("expected empty graph, got %d nodes, %d edges", g.NodeCount(), g.EdgeCount())
	}
	if _, ok := g.Coverage.GetAll(towers.Telekom); !ok {
		t.Error("expected an empty coverage store to still report Telekom as known")
	}
}

func TestBuildUnknownNodeIDPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected Build to panic on an edge referencing an unknown node id")
		}
	}()
	nodes := straightLineNodes()
	edges := []EdgeInput{{SourceExternalID: 23, DestExternalID: 999999, Speed: 1}}
	Build(nodes, edges, nil, DefaultBuildConfig())
}

func TestBuildWithTowersFillsCoverage(t *testing.T) {
	nodes := straightLineNodes()
	edges := []EdgeInput{
		{SourceExternalID: 23, DestExternalID: 27, Speed: 1, ForCars: true},
	}
	towerList := []towers.Tower{
		{Radio: towers.LTE, Provider: towers.Telekom, Latitude: 52.5005, Longitude: 13.4005, Range: 5000},
	}
	g := Build(nodes, edges, towerList, DefaultBuildConfig())

	cov, ok := g.Coverage.GetAll(towers.Telekom)
	if !ok {
		t.Fatal("expected Telekom coverage vector")
	}
	if len(cov) != 1 {
		t.Fatalf("len(cov) = %d, want 1", len(cov))
	}
	if cov[0] <= 0 {
		t.Errorf("cov[0] = %f, want > 0 given a nearby 5km-range tower", cov[0])
	}
}

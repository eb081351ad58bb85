// Package routing implements coverage-weighted shortest-path queries over
// a built graph.Graph, via a persistent-scratch Dijkstra engine.
package routing

import (
	"errors"
	"math"

	"github.com/azybler/covroute/pkg/graph"
	"github.com/azybler/covroute/pkg/towers"
)

// ErrNoRoute is returned when no path exists between source and dest for
// the requested movement mode.
var ErrNoRoute = errors.New("routing: no route between source and dest")

// footSpeedMetersPerSecond is the constant walking speed used to report
// travel time on foot, independent of any car speed stored on an edge.
const footSpeedMetersPerSecond = 3.0

// epsilon is the machine epsilon for float64, used to keep coverage
// scaling factors strictly positive.
var epsilon = math.Nextafter(1, 2) - 1

// RoutingGoal selects the quantity Dijkstra minimizes before coverage
// scaling is applied.
type RoutingGoal int

const (
	// Length minimizes distance traveled.
	Length RoutingGoal = iota
	// Speed minimizes travel time.
	Speed
)

// Movement is the mode of travel, which constrains which half-edges are
// admissible and how foot travel time is reported.
type Movement int

const (
	Car Movement = iota
	Foot
)

// pqItem is a Dijkstra priority queue entry carrying the three additive
// accumulators the spec requires: cost (the scaled, optimized quantity),
// time, and distance.
type pqItem struct {
	node     int
	cost     float64
	time     float64
	distance float64
}

// minHeap is a concrete-typed min-heap ordered by cost ascending. A
// concrete type avoids the interface-boxing overhead of container/heap.
type minHeap struct {
	items []pqItem
}

func (h *minHeap) Len() int { return len(h.items) }

func (h *minHeap) push(it pqItem) {
	h.items = append(h.items, it)
	h.siftUp(len(h.items) - 1)
}

func (h *minHeap) pop() pqItem {
	n := len(h.items)
	top := h.items[0]
	h.items[0] = h.items[n-1]
	h.items = h.items[:n-1]
	if len(h.items) > 0 {
		h.siftDown(0)
	}
	return top
}

func (h *minHeap) reset() {
	h.items = h.items[:0]
}

func (h *minHeap) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if h.items[i].cost >= h.items[parent].cost {
			break
		}
		h.items[i], h.items[parent] = h.items[parent], h.items[i]
		i = parent
	}
}

func (h *minHeap) siftDown(i int) {
	n := len(h.items)
	for {
		smallest := i
		left, right := 2*i+1, 2*i+2
		if left < n && h.items[left].cost < h.items[smallest].cost {
			smallest = left
		}
		if right < n && h.items[right].cost < h.items[smallest].cost {
			smallest = right
		}
		if smallest == i {
			break
		}
		h.items[i], h.items[smallest] = h.items[smallest], h.items[i]
		i = smallest
	}
}

// Route is a computed shortest path: the internal node id sequence from
// source to dest inclusive, plus its total distance (meters) and travel
// time (seconds).
type Route struct {
	NodeSeq    []int
	Distance   float64
	TravelTime float64
}

// Engine is a Dijkstra instance tied to a single graph.Graph, owning the
// persistent scratch arrays described by the routing engine's reset
// contract: dist and touched survive across queries, so Distance only
// pays for the nodes its last query actually touched.
type Engine struct {
	g       *graph.Graph
	dist    []float64
	touched []int
	heap    minHeap
}

// NewEngine returns a routing Engine over g. g must outlive the Engine.
func NewEngine(g *graph.Graph) *Engine {
	dist := make([]float64, g.NodeCount())
	for i := range dist {
		dist[i] = math.Inf(1)
	}
	return &Engine{
		g:       g,
		dist:    dist,
		touched: make([]int, 0, 64),
	}
}

// Distance finds the movement-admissible path from source to dest that
// minimizes goal (scaled by provider's coverage, if given), returning its
// Route or ErrNoRoute if dest is unreachable.
func (e *Engine) Distance(source, dest int, goal RoutingGoal, movement Movement, provider *towers.Provider) (*Route, error) {
	if movement == Foot {
		goal = Length
	}

	var coverage []float64
	if provider != nil {
		if cov, ok := e.g.Coverage.GetAll(*provider); ok {
			coverage = cov
		}
	}

	for _, n := range e.touched {
		e.dist[n] = math.Inf(1)
	}
	e.touched = e.touched[:0]
	e.heap.reset()

	prev := make([]int, e.g.NodeCount())
	for i := range prev {
		prev[i] = i
	}

	e.heap.push(pqItem{node: source, cost: 0, time: 0, distance: 0})
	e.dist[source] = 0
	e.touched = append(e.touched, source)

	for e.heap.Len() > 0 {
		item := e.heap.pop()
		if item.node == dest {
			return reconstructRoute(prev, source, dest, item), nil
		}
		if item.cost > e.dist[item.node] {
			continue
		}

		edges := e.g.OutgoingEdgesFor(item.node)
		start, _ := e.g.NodeOffsets[item.node], e.g.NodeOffsets[item.node+1]
		for offset, he := range edges {
			if !admits(he, movement) {
				continue
			}
			edgeIndex := start + offset

			scaling := 1.0
			if coverage != nil {
				scaling = (1 + epsilon) / (3*coverage[edgeIndex] + epsilon)
			}

			var rawCost, timeDelta float64
			switch goal {
			case Speed:
				rawCost = he.Time
				timeDelta = he.Time
			default: // Length
				rawCost = he.Length
				if movement == Car {
					timeDelta = he.Time
				} else {
					timeDelta = he.Length / footSpeedMetersPerSecond
				}
			}

			next := pqItem{
				node:     he.Endpoint,
				cost:     item.cost + rawCost*scaling,
				time:     item.time + timeDelta,
				distance: item.distance + he.Length,
			}
			if next.cost < e.dist[next.node] {
				prev[next.node] = item.node
				e.dist[next.node] = next.cost
				e.touched = append(e.touched, next.node)
				e.heap.push(next)
			}
		}
	}

	return nil, ErrNoRoute
}

// admits reports whether a half-edge permits the given movement mode.
func admits(he graph.HalfEdge, m Movement) bool {
	if m == Car {
		return he.ForCars
	}
	return he.ForPedestrians
}

// reconstructRoute walks prev from dest back to source, halting at the
// sentinel (a node that is its own predecessor), and reverses the result
// into source->dest order.
func reconstructRoute(prev []int, source, dest int, final pqItem) *Route {
	seq := []int{dest}
	n := dest
	for prev[n] != n {
		n = prev[n]
		seq = append(seq, n)
	}
	for i, j := 0, len(seq)-1; i < j; i, j = i+1, j-1 {
		seq[i], seq[j] = seq[j], seq[i]
	}
	return &Route{NodeSeq: seq, Distance: final.distance, TravelTime: final.time}
}

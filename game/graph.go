package game

import (
	"fmt"
	"time"

	"rts/utils"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type Option func(g *Graph)

// Graph owns every node, edge and army of a simulation.
type Graph struct {
	nodes      []*Node
	edges      []*Edge
	observers  []Observer
	notifying  bool
	rng        *rand.Rand
	rules      Rules
	nextNodeID int
	nextEdgeID int
}

func WithRand(r *rand.Rand) Option {
	return func(g *Graph) {
		if r != nil {
			g.rng = r
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(g *Graph) {
		g.rng = rand.New(rand.NewSource(seed))
	}
}

func WithRules(rules Rules) Option {
	return func(g *Graph) {
		if rules != nil {
			g.rules = rules
		}
	}
}

func WithObserver(observer Observer) Option {
	return func(g *Graph) {
		g.Subscribe(observer)
	}
}

// NewGraph returns an empty graph. Without WithRand or WithSeed the random source is
// seeded from the clock.
func NewGraph(options ...Option) *Graph {
	g := &Graph{ // Default values
		rules:      NewStandardRules(),
		nextNodeID: 0,
		nextEdgeID: 1,
	}
	for _, option := range options {
		option(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	if sr, ok := g.rules.(*StandardRules); ok {
		sr.Validate()
	}
	return g
}

func (g *Graph) Rand() *rand.Rand { return g.rng }

func (g *Graph) Rules() Rules { return g.rules }

// Subscribe registers an observer called after every structural change.
func (g *Graph) Subscribe(observer Observer) {
	if observer != nil {
		g.observers = append(g.observers, observer)
	}
}

func (g *Graph) notify() {
	if g.notifying {
		panic("observer mutated the graph during notification")
	}
	g.notifying = true
	defer func() { g.notifying = false }()
	for _, observer := range g.observers {
		observer()
	}
}

// Nodes returns the nodes in creation order.
func (g *Graph) Nodes() []*Node {
	nodes := make([]*Node, len(g.nodes))
	copy(nodes, g.nodes)
	return nodes
}

// Edges returns the edges in creation order.
func (g *Graph) Edges() []*Edge {
	edges := make([]*Edge, len(g.edges))
	copy(edges, g.edges)
	return edges
}

// Locations returns every node followed by every edge.
func (g *Graph) Locations() []Location {
	locations := make([]Location, 0, len(g.nodes)+len(g.edges))
	for _, node := range g.nodes {
		locations = append(locations, node)
	}
	for _, edge := range g.edges {
		locations = append(locations, edge)
	}
	return locations
}

func (g *Graph) Node(id int) *Node {
	for _, node := range g.nodes {
		if node.id == id {
			return node
		}
	}
	return nil
}

func (g *Graph) Edge(id int) *Edge {
	for _, edge := range g.edges {
		if edge.id == id {
			return edge
		}
	}
	return nil
}

// Location finds a node or edge by kind and id.
func (g *Graph) Location(kind LocationKind, id int) (Location, error) {
	switch kind {
	case NodeLocation:
		if node := g.Node(id); node != nil {
			return node, nil
		}
	case EdgeLocation:
		if edge := g.Edge(id); edge != nil {
			return edge, nil
		}
	}
	return nil, fmt.Errorf("cannot find %s %d: %w", kind, id, ErrUnknownLocation)
}

// LocationByName finds the first node, then edge, carrying name.
func (g *Graph) LocationByName(name string) (Location, error) {
	for _, loc := range g.Locations() {
		if loc.Name() == name {
			return loc, nil
		}
	}
	return nil, fmt.Errorf("cannot find location %q: %w", name, ErrUnknownLocation)
}

// Armies returns every army on the graph, nodes first.
func (g *Graph) Armies() []*Army {
	var armies []*Army
	for _, loc := range g.Locations() {
		armies = append(armies, loc.occupancy().armies...)
	}
	return armies
}

func (g *Graph) owns(loc Location) bool {
	return utils.FindIndex(g.Locations(), loc) >= 0
}

// CreateNode adds a node named after its id at pos.
func (g *Graph) CreateNode(pos Point) *Node {
	id := g.nextNodeID
	g.nextNodeID++
	node := &Node{
		site: site{graph: g, id: id, name: fmt.Sprintf("node%d", id)},
		pos:  pos,
	}
	g.nodes = append(g.nodes, node)
	g.notify()
	return node
}

// RemoveNode removes the node with all incident edges. Armies on them are disbanded.
func (g *Graph) RemoveNode(node *Node) {
	if !g.owns(node) {
		return
	}
	for _, edge := range node.Edges() {
		g.detachEdge(edge)
	}
	node.disband()
	g.nodes, _ = utils.Remove(g.nodes, node)
	g.notify()
}

// CreateEdge connects two distinct nodes. Only one edge may join a pair of nodes.
func (g *Graph) CreateEdge(a, b *Node) (*Edge, error) {
	if !g.owns(a) || !g.owns(b) {
		return nil, fmt.Errorf("cannot create edge: %w", ErrForeignNode)
	}
	if a == b {
		return nil, fmt.Errorf("cannot create edge: %w", ErrSameNode)
	}
	if a.IsConnected(b) {
		return nil, fmt.Errorf("cannot create edge between %s and %s: %w", a.name, b.name, ErrDuplicateEdge)
	}
	id := g.nextEdgeID
	g.nextEdgeID++
	edge := &Edge{
		site:   site{graph: g, id: id, name: fmt.Sprintf("edge%d", id)},
		first:  a,
		second: b,
	}
	a.edges = append(a.edges, edge)
	b.edges = append(b.edges, edge)
	g.edges = append(g.edges, edge)
	g.notify()
	return edge, nil
}

func (g *Graph) RemoveEdge(edge *Edge) {
	if !g.owns(edge) {
		return
	}
	g.detachEdge(edge)
	g.notify()
}

func (g *Graph) detachEdge(edge *Edge) {
	edge.first.edges, _ = utils.Remove(edge.first.edges, edge)
	edge.second.edges, _ = utils.Remove(edge.second.edges, edge)
	edge.disband()
	g.edges, _ = utils.Remove(g.edges, edge)
}

func (g *Graph) MoveNode(node *Node, pos Point) {
	node.pos = pos
	g.notify()
}

// EdgeBetween returns the edge joining a and b, or nil.
func (g *Graph) EdgeBetween(a, b *Node) *Edge {
	if a == nil || b == nil {
		return nil
	}
	return a.EdgeTo(b)
}

// Deploy creates an army of faction with the given number of units at loc. An army
// deployed on an edge is given one of its endpoints as destination.
func (g *Graph) Deploy(loc Location, faction Faction, units int) (*Army, error) {
	if !g.owns(loc) {
		return nil, fmt.Errorf("cannot deploy army: %w", ErrUnknownLocation)
	}
	if int(faction) < 0 || int(faction) >= len(factions) {
		return nil, fmt.Errorf("cannot deploy army: %w", ErrUnknownFaction)
	}
	if units <= 0 {
		return nil, fmt.Errorf("cannot deploy army of %d units: %w", units, ErrNoUnits)
	}
	army := newArmy(g, faction, loc, units)
	if edge, ok := loc.(*Edge); ok {
		// Armies placed in transit march to a random endpoint.
		first, second := edge.Nodes()
		army.destination = first
		if g.rng.Intn(2) == 1 {
			army.destination = second
		}
	}
	loc.AddArmy(army)
	log.Debug().Msgf("deployed %d %s units at %s", units, faction, describe(loc))
	return army, nil
}

// AttachEvent attaches the event registered under name to loc.
func (g *Graph) AttachEvent(loc Location, name string) (Event, error) {
	if !g.owns(loc) {
		return 0, fmt.Errorf("cannot attach event: %w", ErrUnknownLocation)
	}
	event := CreateEvent(name)
	loc.AddEvent(event)
	return event, nil
}

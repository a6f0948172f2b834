package game

import (
	"fmt"

	"rts/utils"
)

type LocationKind int

const (
	NodeLocation LocationKind = iota
	EdgeLocation
)

func (k LocationKind) String() string {
	if k == NodeLocation {
		return "node"
	}
	return "edge"
}

// Location is a node or an edge: anything able to host armies and events.
type Location interface {
	ID() int
	Name() string
	SetName(name string)
	Kind() LocationKind
	AddArmy(army *Army)
	RemoveArmy(army *Army)
	AddEvent(event Event)
	RemoveEvent(event Event)
	Armies() []*Army
	Events() []Event
	Adjacent() []Location
	occupancy() *site
}

// site holds the state shared by nodes and edges.
type site struct {
	graph  *Graph
	id     int
	name   string
	armies []*Army
	events []Event
}

func (s *site) occupancy() *site { return s }

func (s *site) ID() int { return s.id }

func (s *site) Name() string { return s.name }

func (s *site) SetName(name string) {
	s.name = name
	s.graph.notify()
}

func (s *site) AddArmy(army *Army) {
	s.armies = append(s.armies, army)
	s.graph.notify()
}

// RemoveArmy is a no-op when the army is not present.
func (s *site) RemoveArmy(army *Army) {
	var removed bool
	s.armies, removed = utils.Remove(s.armies, army)
	if removed {
		s.graph.notify()
	}
}

func (s *site) AddEvent(event Event) {
	s.events = append(s.events, event)
	s.graph.notify()
}

func (s *site) RemoveEvent(event Event) {
	var removed bool
	s.events, removed = utils.Remove(s.events, event)
	if removed {
		s.graph.notify()
	}
}

// Armies returns the armies present in arrival order.
func (s *site) Armies() []*Army {
	armies := make([]*Army, len(s.armies))
	copy(armies, s.armies)
	return armies
}

func (s *site) Events() []Event {
	events := make([]Event, len(s.events))
	copy(events, s.events)
	return events
}

// disband drops every army present, used when the location leaves the graph.
func (s *site) disband() {
	for _, army := range s.armies {
		army.units = nil
		army.dead = true
	}
	s.armies = nil
}

func describe(loc Location) string {
	return fmt.Sprintf("%s %d (%s)", loc.Kind(), loc.ID(), loc.Name())
}

// Point is a position on the editor canvas.
type Point struct {
	X, Y int
}

type Node struct {
	site
	pos   Point
	edges []*Edge
}

func (n *Node) Kind() LocationKind { return NodeLocation }

func (n *Node) Position() Point { return n.pos }

func (n *Node) Edges() []*Edge {
	edges := make([]*Edge, len(n.edges))
	copy(edges, n.edges)
	return edges
}

// Neighbors returns the nodes reachable through the incident edges.
func (n *Node) Neighbors() []*Node {
	neighbors := make([]*Node, 0, len(n.edges))
	for _, edge := range n.edges {
		neighbors = append(neighbors, edge.Other(n))
	}
	return neighbors
}

func (n *Node) Adjacent() []Location {
	adjacent := make([]Location, 0, len(n.edges))
	for _, neighbor := range n.Neighbors() {
		adjacent = append(adjacent, neighbor)
	}
	return adjacent
}

// EdgeTo returns the edge connecting n to other, or nil.
func (n *Node) EdgeTo(other *Node) *Edge {
	for _, edge := range n.edges {
		if edge.Connects(other) {
			return edge
		}
	}
	return nil
}

func (n *Node) IsConnected(other *Node) bool {
	return n.EdgeTo(other) != nil
}

// Edge connects two distinct nodes and hosts armies in transit between them.
type Edge struct {
	site
	first  *Node
	second *Node
}

func (e *Edge) Kind() LocationKind { return EdgeLocation }

func (e *Edge) Nodes() (*Node, *Node) { return e.first, e.second }

func (e *Edge) Connects(n *Node) bool {
	return e.first == n || e.second == n
}

// Other returns the endpoint opposite to n.
func (e *Edge) Other(n *Node) *Node {
	if e.first == n {
		return e.second
	}
	return e.first
}

func (e *Edge) Adjacent() []Location {
	return []Location{e.first, e.second}
}

// canEnter reports whether an army at from may move to to in one step.
func canEnter(from, to Location) bool {
	switch from := from.(type) {
	case *Node:
		edge, ok := to.(*Edge)
		return ok && edge.Connects(from)
	case *Edge:
		node, ok := to.(*Node)
		return ok && from.Connects(node)
	default:
		return false
	}
}

// HostsBothTeams reports whether armies of both teams are present at loc.
func HostsBothTeams(loc Location) bool {
	armies := loc.occupancy().armies
	if len(armies) < 2 {
		return false
	}
	team := armies[0].Team()
	for _, army := range armies[1:] {
		if army.Team() != team {
			return true
		}
	}
	return false
}

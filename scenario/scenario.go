// Package scenario loads battle setups from YAML files.
package scenario

import (
	"fmt"
	"os"

	"rts/game"

	"gopkg.in/yaml.v3"
)

type Scenario struct {
	Name   string  `yaml:"name"`
	Nodes  []Node  `yaml:"nodes"`
	Edges  []Edge  `yaml:"edges"`
	Armies []Army  `yaml:"armies"`
	Events []Event `yaml:"events"`
}

type Node struct {
	Name string `yaml:"name"`
	X    int    `yaml:"x"`
	Y    int    `yaml:"y"`
}

type Edge struct {
	Name string `yaml:"name"` // Optional, defaults to edge<id>
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

type Army struct {
	At      string `yaml:"at"` // Node or edge name
	Faction string `yaml:"faction"`
	Units   int    `yaml:"units"`
}

type Event struct {
	At    string `yaml:"at"`
	Event string `yaml:"event"`
}

func Load(path string) (*Scenario, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read scenario: %w", err)
	}
	return Parse(b)
}

func Parse(b []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("cannot parse scenario: %w", err)
	}
	return &s, nil
}

// Build adds the scenario's nodes, edges, armies and events to g, in that order.
func (s *Scenario) Build(g *game.Graph) error {
	nodes := make(map[string]*game.Node, len(s.Nodes))
	for _, n := range s.Nodes {
		if _, ok := nodes[n.Name]; ok {
			return fmt.Errorf("cannot build scenario: duplicate node %q", n.Name)
		}
		node := g.CreateNode(game.Point{X: n.X, Y: n.Y})
		if n.Name != "" {
			node.SetName(n.Name)
		}
		nodes[node.Name()] = node
	}

	for _, e := range s.Edges {
		from, ok := nodes[e.From]
		if !ok {
			return fmt.Errorf("cannot build edge %s-%s: node %q: %w", e.From, e.To, e.From, game.ErrUnknownLocation)
		}
		to, ok := nodes[e.To]
		if !ok {
			return fmt.Errorf("cannot build edge %s-%s: node %q: %w", e.From, e.To, e.To, game.ErrUnknownLocation)
		}
		edge, err := g.CreateEdge(from, to)
		if err != nil {
			return err
		}
		if e.Name != "" {
			edge.SetName(e.Name)
		}
	}

	for _, a := range s.Armies {
		loc, err := g.LocationByName(a.At)
		if err != nil {
			return err
		}
		faction, ok := game.FactionByName(a.Faction)
		if !ok {
			return fmt.Errorf("cannot deploy %q: %w", a.Faction, game.ErrUnknownFaction)
		}
		if _, err := g.Deploy(loc, faction, a.Units); err != nil {
			return err
		}
	}

	for _, e := range s.Events {
		loc, err := g.LocationByName(e.At)
		if err != nil {
			return err
		}
		if _, err := g.AttachEvent(loc, e.Event); err != nil {
			return err
		}
	}
	return nil
}

// Package export writes a one-way JSON snapshot of a graph for external inspection.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"rts/game"
)

// Document is the exported graph. Field order and key names are part of the format.
type Document struct {
	Nodes []Node `json:"Nodes"`
	Edges []Edge `json:"Edges"`
}

type Node struct {
	ID     int      `json:"Id"`
	Name   string   `json:"Name"`
	Armies []Army   `json:"Armies"`
	Events []string `json:"Events"`
}

type Edge struct {
	ID     int      `json:"Id"`
	Name   string   `json:"Name"`
	Node1  int      `json:"Node1"`
	Node2  int      `json:"Node2"`
	Armies []Army   `json:"Armies"`
	Events []string `json:"Events"`
}

type Army struct {
	Faction string `json:"Faction"`
	Team    int    `json:"Team"`
	Units   []Unit `json:"Units"`
}

type Unit struct {
	Name     string `json:"Name"`
	Strength int    `json:"Strength"`
	Health   int    `json:"Health"`
}

// Build snapshots g. Empty lists are kept non-nil so they encode as [].
func Build(g *game.Graph) Document {
	doc := Document{Nodes: []Node{}, Edges: []Edge{}}
	for _, node := range g.Nodes() {
		doc.Nodes = append(doc.Nodes, Node{
			ID:     node.ID(),
			Name:   node.Name(),
			Armies: armies(node),
			Events: events(node),
		})
	}
	for _, edge := range g.Edges() {
		first, second := edge.Nodes()
		doc.Edges = append(doc.Edges, Edge{
			ID:     edge.ID(),
			Name:   edge.Name(),
			Node1:  first.ID(),
			Node2:  second.ID(),
			Armies: armies(edge),
			Events: events(edge),
		})
	}
	return doc
}

func armies(loc game.Location) []Army {
	out := []Army{}
	for _, army := range loc.Armies() {
		units := []Unit{}
		for _, unit := range army.Units() {
			units = append(units, Unit{Name: unit.Name(), Strength: unit.Damage(), Health: unit.Health()})
		}
		out = append(out, Army{Faction: army.Faction().Name(), Team: int(army.Team()), Units: units})
	}
	return out
}

func events(loc game.Location) []string {
	out := []string{}
	for _, event := range loc.Events() {
		out = append(out, event.Name())
	}
	return out
}

// Encode writes the snapshot of g as indented JSON.
func Encode(w io.Writer, g *game.Graph) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Build(g)); err != nil {
		return fmt.Errorf("cannot encode graph: %w", err)
	}
	return nil
}

// WriteFile creates or truncates path with the snapshot of g.
func WriteFile(path string, g *game.Graph) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot export graph: %w", err)
	}
	defer f.Close()

	if err := Encode(f, g); err != nil {
		return err
	}
	return f.Close()
}

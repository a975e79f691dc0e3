package navgraph

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/gocarina/gocsv"
)

// SnapshotNode is one live node with its outgoing edges.
type SnapshotNode struct {
	ID       NodeID   `json:"id"`
	Position Position `json:"position"`
	Edges    []Edge   `json:"edges"`
}

// GraphSnapshot is a serialisable dump of a graph for debugging and external renderers.
type GraphSnapshot struct {
	BakeID string         `json:"bakeId"`
	Nodes  []SnapshotNode `json:"nodes"`
}

// Snapshot copies the live part of g.
func Snapshot(g *Graph) GraphSnapshot {
	s := GraphSnapshot{Nodes: make([]SnapshotNode, 0, g.NodeCount())}
	if g == nil {
		return s
	}
	s.BakeID = g.BakeID.String()
	for id, pos := range g.Nodes() {
		edges := make([]Edge, len(g.Neighbors(id)))
		copy(edges, g.Neighbors(id))
		s.Nodes = append(s.Nodes, SnapshotNode{ID: id, Position: pos, Edges: edges})
	}
	return s
}

// SaveSnapshot writes the graph snapshot to a JSON file.
func SaveSnapshot(g *Graph, filename string) error {
	log.Printf("💾 Saving navigation graph to %s...\n", filename)

	data, err := json.MarshalIndent(Snapshot(g), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal graph: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	log.Printf("   ✅ Graph saved (%d bytes)\n", len(data))
	return nil
}

// Lines returns every connected pair once as a two-point segment, for drawing.
func Lines(g *Graph) [][2]Position {
	lines := make([][2]Position, 0)

	// Edges usually come in both directions; keep one segment per pair.
	seen := make(map[[2]NodeID]bool)
	for id, pos := range g.Nodes() {
		for _, e := range g.Neighbors(id) {
			key := [2]NodeID{id, e.To}
			if e.To < id {
				key = [2]NodeID{e.To, id}
			}
			if seen[key] {
				continue
			}
			seen[key] = true
			lines = append(lines, [2]Position{pos, g.Position(e.To)})
		}
	}
	return lines
}

// nodeRecord is one CSV row of the node dump.
type nodeRecord struct {
	ID     int `csv:"id"`
	X      int `csv:"x"`
	Y      int `csv:"y"`
	Degree int `csv:"degree"`
}

// edgeRecord is one CSV row of the edge dump.
type edgeRecord struct {
	From  int     `csv:"from"`
	FromX int     `csv:"from_x"`
	FromY int     `csv:"from_y"`
	To    int     `csv:"to"`
	ToX   int     `csv:"to_x"`
	ToY   int     `csv:"to_y"`
	Cost  float64 `csv:"cost"`
}

// WriteNodesCSV writes one row per live node.
func WriteNodesCSV(g *Graph, w io.Writer) error {
	records := make([]*nodeRecord, 0, g.NodeCount())
	for id, pos := range g.Nodes() {
		records = append(records, &nodeRecord{ID: int(id), X: pos.X, Y: pos.Y, Degree: len(g.Neighbors(id))})
	}
	if err := gocsv.Marshal(records, w); err != nil {
		return fmt.Errorf("writing node csv: %w", err)
	}
	return nil
}

// WriteEdgesCSV writes one row per directed edge.
func WriteEdgesCSV(g *Graph, w io.Writer) error {
	records := make([]*edgeRecord, 0, g.EdgeCount())
	for id, pos := range g.Nodes() {
		for _, e := range g.Neighbors(id) {
			to := g.Position(e.To)
			records = append(records, &edgeRecord{
				From: int(id), FromX: pos.X, FromY: pos.Y,
				To: int(e.To), ToX: to.X, ToY: to.Y,
				Cost: e.Cost,
			})
		}
	}
	if err := gocsv.Marshal(records, w); err != nil {
		return fmt.Errorf("writing edge csv: %w", err)
	}
	return nil
}

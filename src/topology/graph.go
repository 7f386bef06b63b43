package topology

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
)

// Edge is a directed, weighted link between two peers.
type Edge struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Weight float64 `json:"weight"`
}

type jsonEdge struct {
	From   string          `json:"from"`
	To     string          `json:"to"`
	Weight json.RawMessage `json:"weight,omitempty"`
}

// MarshalJSON encodes the weight as a number, or as one of the strings "NaN",
// "+Inf" and "-Inf" when it is not finite.
func (e Edge) MarshalJSON() ([]byte, error) {
	var w interface{} = e.Weight
	if math.IsNaN(e.Weight) || math.IsInf(e.Weight, 0) {
		w = strconv.FormatFloat(e.Weight, 'g', -1, 64)
	}

	weight, err := json.Marshal(w)
	if err != nil {
		return nil, err
	}

	return json.Marshal(jsonEdge{From: e.From, To: e.To, Weight: weight})
}

// UnmarshalJSON decodes the output of MarshalJSON.
func (e *Edge) UnmarshalJSON(data []byte) error {
	var raw jsonEdge
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	e.From = raw.From
	e.To = raw.To
	e.Weight = 0

	if len(raw.Weight) == 0 {
		return nil
	}

	var s string
	if err := json.Unmarshal(raw.Weight, &s); err == nil {
		w, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		e.Weight = w
		return nil
	}

	return json.Unmarshal(raw.Weight, &e.Weight)
}

// Graph is a directed weighted graph over peer ids. It is not safe for
// concurrent use.
type Graph struct {
	out   map[string]map[string]float64
	edges int
}

// NewGraph creates an empty Graph.
func NewGraph() *Graph {
	return &Graph{
		out: make(map[string]map[string]float64),
	}
}

// AddEdge inserts the edge from -> to, or updates its weight if it exists.
func (g *Graph) AddEdge(from, to string, weight float64) {
	neighbors, ok := g.out[from]
	if !ok {
		neighbors = make(map[string]float64)
		g.out[from] = neighbors
	}

	if _, ok := neighbors[to]; !ok {
		g.edges++
	}

	neighbors[to] = weight
}

// Neighbors returns the sorted outgoing neighbours of peer. It never returns
// nil.
func (g *Graph) Neighbors(peer string) []string {
	neighbors := g.out[peer]

	res := make([]string, 0, len(neighbors))
	for to := range neighbors {
		res = append(res, to)
	}
	sort.Strings(res)

	return res
}

// Weight returns the weight of the edge from -> to, and whether it exists.
func (g *Graph) Weight(from, to string) (float64, bool) {
	w, ok := g.out[from][to]
	return w, ok
}

// Edges returns a copy of every edge, sorted by source then destination.
func (g *Graph) Edges() []Edge {
	res := make([]Edge, 0, g.edges)
	for from, neighbors := range g.out {
		for to, w := range neighbors {
			res = append(res, Edge{From: from, To: to, Weight: w})
		}
	}

	sort.Slice(res, func(i, j int) bool {
		if res[i].From != res[j].From {
			return res[i].From < res[j].From
		}
		return res[i].To < res[j].To
	})

	return res
}

// Len returns the number of distinct edges.
func (g *Graph) Len() int {
	return g.edges
}

// Load adds a list of edges to the graph.
func (g *Graph) Load(edges []Edge) {
	for _, e := range edges {
		g.AddEdge(e.From, e.To, e.Weight)
	}
}

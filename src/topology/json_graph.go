package topology

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"sync"
)

// JSONGraphFile is the name of the topology file inside a data directory.
const JSONGraphFile = "topology.json"

// JSONGraph is used to persist the edges of a Graph on disk in the form of a
// JSON file.
type JSONGraph struct {
	l    sync.Mutex
	path string
}

// NewJSONGraph creates a new JSONGraph with reference to a base directory
// where the JSON file resides.
func NewJSONGraph(base string) *JSONGraph {
	return NewJSONGraphFile(filepath.Join(base, JSONGraphFile))
}

// NewJSONGraphFile creates a new JSONGraph reading and writing the file at
// path.
func NewJSONGraphFile(path string) *JSONGraph {
	return &JSONGraph{
		path: path,
	}
}

// Path returns the location of the JSON file.
func (j *JSONGraph) Path() string {
	return j.path
}

// Edges parses the underlying JSON file and returns the edges it contains. A
// missing or empty file yields no edges and no error.
func (j *JSONGraph) Edges() ([]Edge, error) {
	j.l.Lock()
	defer j.l.Unlock()

	buf, err := ioutil.ReadFile(j.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	if len(bytes.TrimSpace(buf)) == 0 {
		return nil, nil
	}

	var edges []Edge
	dec := json.NewDecoder(bytes.NewReader(buf))
	if err := dec.Decode(&edges); err != nil {
		return nil, err
	}

	return edges, nil
}

// Graph reads the file into a new Graph.
func (j *JSONGraph) Graph() (*Graph, error) {
	edges, err := j.Edges()
	if err != nil {
		return nil, err
	}

	g := NewGraph()
	g.Load(edges)

	return g, nil
}

// Write persists a list of edges, replacing the previous content of the file.
func (j *JSONGraph) Write(edges []Edge) error {
	j.l.Lock()
	defer j.l.Unlock()

	if edges == nil {
		edges = []Edge{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "\t")
	if err := enc.Encode(edges); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(j.path), 0700); err != nil {
		return err
	}

	return ioutil.WriteFile(j.path, buf.Bytes(), 0600)
}

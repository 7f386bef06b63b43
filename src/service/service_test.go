package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"sync"
	"testing"

	"github.com/ecoblock/ecoblock/src/common"
	"github.com/ecoblock/ecoblock/src/node"
	"github.com/sirupsen/logrus"
)

func newTestServer(t *testing.T) (*httptest.Server, *node.Guard) {
	logger := common.NewTestEntry(t, logrus.DebugLevel)

	guard := node.NewGuard(logger)
	service := NewService("127.0.0.1:0", guard, logger)

	server := httptest.NewServer(service.Handler())
	t.Cleanup(server.Close)

	return server, guard
}

func TestStats(t *testing.T) {
	server, guard := newTestServer(t)

	guard.CreateBlock([]byte("a"), nil)

	resp, err := http.Get(server.URL + "/stats")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status should be 200, not %d", resp.StatusCode)
	}
	if resp.Header.Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("CORS header should be set")
	}

	var stats node.Stats
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		t.Fatal(err)
	}

	if stats.NodeID != guard.NodeID() || stats.TangleSize != 1 {
		t.Fatalf("unexpected stats %+v", stats)
	}
}

func TestCreateAndGetBlock(t *testing.T) {
	server, guard := newTestServer(t)

	resp, err := http.Post(server.URL+"/blocks?parent=0XBB&parent=0XAA", "application/octet-stream", bytes.NewBufferString("reading"))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status should be 201, not %d", resp.StatusCode)
	}

	var created map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatal(err)
	}

	if guard.TangleSize() != 1 {
		t.Fatalf("TangleSize should be 1, not %d", guard.TangleSize())
	}

	resp, err = http.Get(server.URL + "/block/" + created["id"])
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var block BlockView
	if err := json.NewDecoder(resp.Body).Decode(&block); err != nil {
		t.Fatal(err)
	}

	if block.ID != created["id"] || string(block.Payload) != "reading" {
		t.Fatalf("unexpected block %+v", block)
	}
	if !reflect.DeepEqual(block.Parents, []string{"0XAA", "0XBB"}) {
		t.Fatalf("parents should be [0XAA 0XBB], not %v", block.Parents)
	}
	if block.Creator != guard.NodeID() {
		t.Fatalf("creator should be the node")
	}

	resp, err = http.Get(server.URL + "/block/0XMISSING")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("missing block should give 404, not %d", resp.StatusCode)
	}
}

func TestEdgesAndPeers(t *testing.T) {
	server, _ := newTestServer(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			body := fmt.Sprintf(`{"from":"A","to":"P%02d","weight":0.5}`, i)
			resp, err := http.Post(server.URL+"/edges", "application/json", bytes.NewBufferString(body))
			if err != nil {
				t.Error(err)
				return
			}
			resp.Body.Close()

			if resp.StatusCode != http.StatusNoContent {
				t.Errorf("status should be 204, not %d", resp.StatusCode)
			}
		}(i)
	}
	wg.Wait()

	resp, err := http.Get(server.URL + "/peers/A")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var peers []string
	if err := json.NewDecoder(resp.Body).Decode(&peers); err != nil {
		t.Fatal(err)
	}
	if len(peers) != 20 {
		t.Fatalf("A should have 20 peers, not %d", len(peers))
	}

	resp, err = http.Get(server.URL + "/peers/C")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	peers = nil
	if err := json.NewDecoder(resp.Body).Decode(&peers); err != nil {
		t.Fatal(err)
	}
	if peers == nil || len(peers) != 0 {
		t.Fatalf("unknown peer should give an empty list, not %#v", peers)
	}
}

func TestBadRequests(t *testing.T) {
	server, _ := newTestServer(t)

	resp, err := http.Post(server.URL+"/edges", "application/json", bytes.NewBufferString("{"))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("malformed edge should give 400, not %d", resp.StatusCode)
	}

	resp, err = http.Post(server.URL+"/edges", "application/json", bytes.NewBufferString(`{"from":"A"}`))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("edge without destination should give 400, not %d", resp.StatusCode)
	}

	resp, err = http.Get(server.URL + "/blocks")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("GET /blocks should give 405, not %d", resp.StatusCode)
	}
}

package service

import (
	"context"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"strings"

	"github.com/ecoblock/ecoblock/src/common"
	"github.com/ecoblock/ecoblock/src/node"
	"github.com/sirupsen/logrus"
)

// maxPayload bounds the body of POST /blocks.
const maxPayload = 1 << 20

// Service ...
type Service struct {
	bindAddress string
	guard       *node.Guard
	mux         *http.ServeMux
	server      *http.Server
	logger      *logrus.Entry
}

// NewService ...
func NewService(bindAddress string, guard *node.Guard, logger *logrus.Entry) *Service {
	service := Service{
		bindAddress: bindAddress,
		guard:       guard,
		mux:         http.NewServeMux(),
		logger:      logger,
	}

	service.registerHandlers()

	service.server = &http.Server{
		Addr:    bindAddress,
		Handler: service.mux,
	}

	return &service
}

func (s *Service) registerHandlers() {
	s.logger.Debug("Registering EcoBlock API handlers")
	s.mux.HandleFunc("/stats", s.makeHandler(http.MethodGet, s.GetStats))
	s.mux.HandleFunc("/block/", s.makeHandler(http.MethodGet, s.GetBlock))
	s.mux.HandleFunc("/peers/", s.makeHandler(http.MethodGet, s.GetPeers))
	s.mux.HandleFunc("/blocks", s.makeHandler(http.MethodPost, s.CreateBlock))
	s.mux.HandleFunc("/edges", s.makeHandler(http.MethodPost, s.AddEdge))
}

func (s *Service) makeHandler(method string, fn func(http.ResponseWriter, *http.Request)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// enable CORS
		w.Header().Set("Access-Control-Allow-Origin", "*")

		if r.Method != method {
			w.Header().Set("Allow", method)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		fn(w, r)
	}
}

// Handler returns the HTTP handler serving the API.
func (s *Service) Handler() http.Handler {
	return s.mux
}

// Serve calls ListenAndServe. This is a blocking call which returns when the
// server fails or is shut down.
func (s *Service) Serve() {
	s.logger.WithField("bind_address", s.bindAddress).Debug("Serving EcoBlock API")

	err := s.server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		s.logger.Error(err)
	}
}

// Shutdown stops the server gracefully.
func (s *Service) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// GetStats ...
func (s *Service) GetStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.guard.Stats())
}

// BlockView is the JSON representation of a block.
type BlockView struct {
	ID        string   `json:"id"`
	Payload   []byte   `json:"payload"`
	Parents   []string `json:"parents"`
	Creator   string   `json:"creator"`
	Signature string   `json:"signature"`
}

// GetBlock ...
func (s *Service) GetBlock(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/block/")

	block, err := s.guard.GetBlock(id)
	if err != nil {
		s.logger.WithError(err).Debugf("Retrieving block %s", id)

		status := http.StatusInternalServerError
		if common.IsStore(err, common.KeyNotFound) {
			status = http.StatusNotFound
		}

		http.Error(w, err.Error(), status)

		return
	}

	writeJSON(w, http.StatusOK, BlockView{
		ID:        block.Hex(),
		Payload:   block.Payload(),
		Parents:   block.Parents(),
		Creator:   common.EncodeToString(block.Creator),
		Signature: block.Signature,
	})
}

// GetPeers ...
func (s *Service) GetPeers(w http.ResponseWriter, r *http.Request) {
	peer := strings.TrimPrefix(r.URL.Path, "/peers/")

	writeJSON(w, http.StatusOK, s.guard.ListPeers(peer))
}

// CreateBlock ...
func (s *Service) CreateBlock(w http.ResponseWriter, r *http.Request) {
	payload, err := ioutil.ReadAll(http.MaxBytesReader(w, r.Body, maxPayload))
	if err != nil {
		s.logger.WithError(err).Debug("Reading block payload")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	id := s.guard.CreateBlock(payload, r.URL.Query()["parent"])

	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// EdgeRequest is the body of POST /edges.
type EdgeRequest struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Weight float64 `json:"weight"`
}

// AddEdge ...
func (s *Service) AddEdge(w http.ResponseWriter, r *http.Request) {
	var req EdgeRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.logger.WithError(err).Debug("Decoding edge")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.From == "" || req.To == "" {
		http.Error(w, "from and to are required", http.StatusBadRequest)
		return
	}

	s.guard.AddPeerConnection(req.From, req.To, req.Weight)

	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	json.NewEncoder(w).Encode(v)
}

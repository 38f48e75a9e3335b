package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/poiesic/kgraph/core"
	"github.com/poiesic/kgraph/graphstore"
)

type ingestRequest struct {
	Text     string           `json:"text"`
	Source   string           `json:"source"`
	Filename string           `json:"filename"`
	Summary  string           `json:"summary"`
	Keywords core.KeywordList `json:"keywords"`
}

type queryRequest struct {
	Query string `json:"query"`
	Mode  string `json:"mode"`
}

type queryResponse struct {
	Response string `json:"response"`
	Mode     string `json:"mode"`
}

type healthResponse struct {
	Status        string `json:"status"`
	EngineReady   bool   `json:"engine_ready"`
	Workdir       string `json:"workdir"`
	WorkdirExists bool   `json:"workdir_exists"`
	Timestamp     string `json:"timestamp"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// handleIngest validates the document and queues it for background
// indexing. A 202 response means accepted, not indexed.
func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	var req ingestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := core.ValidateIngestText(req.Text); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	md := &core.DocumentMetadata{
		Source:   req.Source,
		Filename: req.Filename,
		Summary:  req.Summary,
		Keywords: req.Keywords,
	}
	if err := s.ingestor.Submit(req.Text, md); err != nil {
		s.logger.Error("failed to queue document", "source", req.Source, "err", err)
		writeError(w, http.StatusServiceUnavailable, "ingestion queue unavailable")
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
}

// handleQuery answers a question against the knowledge base.
func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := core.ValidateQueryText(req.Query); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	mode, err := core.ParseQueryMode(req.Mode)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	engine, err := s.source.Engine(r.Context())
	if err != nil {
		s.logger.Error("engine unavailable", "err", err)
		writeError(w, http.StatusServiceUnavailable, "engine unavailable")
		return
	}

	answer, err := engine.Query(r.Context(), req.Query, mode)
	if err != nil {
		s.logger.Error("query failed", "err", err)
		writeError(w, http.StatusInternalServerError, "query failed")
		return
	}

	writeJSON(w, http.StatusOK, queryResponse{Response: answer, Mode: string(mode)})
}

// handleDelete removes an indexed document and its chunk vectors.
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	docID := r.PathValue("id")
	if docID == "" {
		writeError(w, http.StatusBadRequest, "document id required")
		return
	}

	engine, err := s.source.Engine(r.Context())
	if err != nil {
		s.logger.Error("engine unavailable", "err", err)
		writeError(w, http.StatusServiceUnavailable, "engine unavailable")
		return
	}

	if err := engine.DeleteDocument(r.Context(), docID); err != nil {
		if errors.Is(err, graphstore.ErrNotFound) {
			writeError(w, http.StatusNotFound, "document not found")
			return
		}
		s.logger.Error("failed to delete document", "doc", docID, "err", err)
		writeError(w, http.StatusInternalServerError, "delete failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted", "id": docID})
}

// handleHealth reports service status without forcing engine construction.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	workdir := s.source.Workdir()
	exists := false
	if workdir != "" {
		if info, err := os.Stat(workdir); err == nil && info.IsDir() {
			exists = true
		}
	}

	status := "ok"
	if !s.source.Ready() {
		status = "degraded"
	}

	writeJSON(w, http.StatusOK, healthResponse{
		Status:        status,
		EngineReady:   s.source.Ready(),
		Workdir:       workdir,
		WorkdirExists: exists,
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
	})
}

package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/linguflow/linguflow/pkg/invoker"
	"github.com/linguflow/linguflow/pkg/repository"
)

type asyncRunRequest struct {
	// VersionID may be omitted to run the application's active version;
	// invoker.Invoke returns ErrNoActiveVersion if none is set.
	VersionID string      `json:"version_id,omitempty"`
	User      string      `json:"user"`
	SessionID string      `json:"session_id"`
	Payload   interface{} `json:"payload"`
}

// handleAsyncRun starts a run and returns immediately with the interaction
// id a client polls via handleGetInteraction; it never waits for the run to
// settle, matching invoker.Invoke's own asynchronous contract.
func (s *Server) handleAsyncRun(w http.ResponseWriter, r *http.Request) {
	appID := r.PathValue("id")
	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxRequestBodySize)
	var req asyncRunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeErrorResponse(w, "invalid request body", http.StatusBadRequest, err)
		return
	}

	interactionID, err := s.inv.Invoke(r.Context(), invoker.InvokeRequest{
		AppID:     appID,
		VersionID: req.VersionID,
		User:      req.User,
		SessionID: req.SessionID,
		Payload:   req.Payload,
	})
	if err != nil {
		ierr := invoker.ClassifyError(err)
		s.writeErrorResponse(w, "failed to start run", ierr.StatusCode, err)
		return
	}
	s.writeJSONResponse(w, http.StatusAccepted, map[string]interface{}{
		"interaction_id": interactionID,
	})
}

// handleGetInteraction reports an Interaction's current state: still
// running (no Output/Error yet), succeeded, or failed. There is no separate
// status field — a client distinguishes these the same way invoker.Poll's
// caller does, by inspecting Output/Error.
func (s *Server) handleGetInteraction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	interaction, err := s.inv.Poll(r.Context(), id)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, repository.ErrInteractionNotFound) {
			status = http.StatusNotFound
		}
		s.writeErrorResponse(w, fmt.Sprintf("failed to poll interaction %q", id), status, err)
		return
	}
	s.writeJSONResponse(w, http.StatusOK, interaction)
}

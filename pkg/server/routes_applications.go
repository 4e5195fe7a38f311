package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/linguflow/linguflow/pkg/construct"
	"github.com/linguflow/linguflow/pkg/repository"
	"github.com/linguflow/linguflow/pkg/types"
	"github.com/linguflow/linguflow/pkg/validate"
)

type createApplicationRequest struct {
	Name string `json:"name"`
	User string `json:"user"`
}

func (s *Server) handleCreateApplication(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxRequestBodySize)
	var req createApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeErrorResponse(w, "invalid request body", http.StatusBadRequest, err)
		return
	}
	app, err := s.repo.CreateApplication(req.Name, req.User)
	if err != nil {
		s.writeErrorResponse(w, "failed to create application", http.StatusBadRequest, err)
		return
	}
	s.writeJSONResponse(w, http.StatusCreated, app)
}

func (s *Server) handleListApplications(w http.ResponseWriter, r *http.Request) {
	user := r.URL.Query().Get("user")
	apps, err := s.repo.ListApplications(user)
	if err != nil {
		s.writeErrorResponse(w, "failed to list applications", http.StatusInternalServerError, err)
		return
	}
	s.writeJSONResponse(w, http.StatusOK, apps)
}

func (s *Server) handleDeleteApplication(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.repo.DeleteApplication(id); err != nil {
		s.writeErrorResponse(w, "failed to delete application", statusFor(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type createVersionRequest struct {
	User   string                 `json:"user"`
	Name   string                 `json:"name"`
	Parent *string                `json:"parent_id"`
	Meta   map[string]interface{} `json:"meta"`
	DAG    types.DAGSpec          `json:"configuration"`
}

// handleCreateVersion validates the submitted graph before it is ever
// persisted, the same construct.Build + validate.Run pair the invoker runs
// before an interaction, so a broken DAG is rejected at save time rather
// than surfacing as a run failure later.
func (s *Server) handleCreateVersion(w http.ResponseWriter, r *http.Request) {
	appID := r.PathValue("id")
	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxRequestBodySize)
	var req createVersionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeErrorResponse(w, "invalid request body", http.StatusBadRequest, err)
		return
	}

	g, err := construct.Build(req.DAG, s.resolver)
	if err != nil {
		s.writeErrorResponse(w, "graph construction failed", http.StatusBadRequest, err)
		return
	}
	if err := validate.Run(g, s.resolver, nil); err != nil {
		s.writeErrorResponse(w, "graph validation failed", http.StatusBadRequest, err)
		return
	}

	version, err := s.repo.CreateVersion(appID, req.User, req.Name, req.Parent, req.Meta, req.DAG)
	if err != nil {
		s.writeErrorResponse(w, "failed to create version", statusFor(err), err)
		return
	}
	s.writeJSONResponse(w, http.StatusCreated, version)
}

func (s *Server) handleListVersions(w http.ResponseWriter, r *http.Request) {
	appID := r.PathValue("id")
	versions, err := s.repo.ListVersions(appID)
	if err != nil {
		s.writeErrorResponse(w, "failed to list versions", statusFor(err), err)
		return
	}
	s.writeJSONResponse(w, http.StatusOK, versions)
}

func (s *Server) handleActivateVersion(w http.ResponseWriter, r *http.Request) {
	appID := r.PathValue("id")
	versionID := r.PathValue("version_id")
	if err := s.repo.SetActiveVersion(appID, versionID); err != nil {
		s.writeErrorResponse(w, "failed to activate version", statusFor(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// statusFor maps a repository sentinel error to the HTTP status a client
// should see; anything unrecognized falls back to 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, repository.ErrApplicationNotFound),
		errors.Is(err, repository.ErrVersionNotFound),
		errors.Is(err, repository.ErrInteractionNotFound),
		errors.Is(err, repository.ErrParentVersionNotFound):
		return http.StatusNotFound
	case errors.Is(err, repository.ErrApplicationNameRequired),
		errors.Is(err, repository.ErrVersionNameRequired),
		errors.Is(err, repository.ErrParentVersionMismatch),
		errors.Is(err, repository.ErrVersionTreeTooDeep):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

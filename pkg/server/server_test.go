package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/linguflow/linguflow/pkg/blocks"
	"github.com/linguflow/linguflow/pkg/config"
	"github.com/linguflow/linguflow/pkg/invoker"
	"github.com/linguflow/linguflow/pkg/logging"
	"github.com/linguflow/linguflow/pkg/observer"
	"github.com/linguflow/linguflow/pkg/registry"
	"github.com/linguflow/linguflow/pkg/repository"
	"github.com/linguflow/linguflow/pkg/scheduler"
	"github.com/linguflow/linguflow/pkg/types"
)

func strPtr(s string) *string { return &s }

func newTestServer(t *testing.T) *Server {
	t.Helper()
	reg, caller, err := blocks.Build()
	if err != nil {
		t.Fatalf("blocks.Build() error = %v", err)
	}
	resolver := registry.MustNewResolver(reg)
	cfg := config.Testing()
	repo := repository.NewInMemoryRepository(cfg)
	logger := logging.New(logging.DefaultConfig())
	sched := scheduler.New(resolver, cfg, logger, observer.NewManager())
	inv := invoker.New(repo, resolver, sched, cfg, logger, nil)
	caller.Wire(repo, inv, cfg)

	return New(DefaultConfig(), repo, inv, resolver, nil)
}

func passthroughDAG() types.DAGSpec {
	return types.DAGSpec{
		Nodes: []types.NodeSpec{
			{ID: "in", Name: "Input"},
			{ID: "out", Name: "Output"},
		},
		Edges: []types.EdgeSpec{
			{SrcBlock: "in", DstBlock: "out", DstPort: strPtr("value")},
		},
	}
}

func doRequest(t *testing.T, s *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json.Marshal() error = %v", err)
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	rr := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rr, req)
	return rr
}

func TestCreateAndListApplications(t *testing.T) {
	s := newTestServer(t)

	rr := doRequest(t, s, http.MethodPost, "/applications", createApplicationRequest{Name: "demo", User: "alice"})
	if rr.Code != http.StatusCreated {
		t.Fatalf("create: status = %d, body = %s", rr.Code, rr.Body.String())
	}
	var app types.Application
	if err := json.Unmarshal(rr.Body.Bytes(), &app); err != nil {
		t.Fatalf("unmarshal() error = %v", err)
	}
	if app.ID == "" {
		t.Fatal("create: expected a non-empty id")
	}

	rr = doRequest(t, s, http.MethodGet, "/applications?user=alice", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("list: status = %d, body = %s", rr.Code, rr.Body.String())
	}
	var apps []types.Application
	if err := json.Unmarshal(rr.Body.Bytes(), &apps); err != nil {
		t.Fatalf("unmarshal() error = %v", err)
	}
	if len(apps) != 1 {
		t.Fatalf("list: got %d applications, want 1", len(apps))
	}
}

func TestCreateVersionRejectsAnInvalidGraph(t *testing.T) {
	s := newTestServer(t)

	rr := doRequest(t, s, http.MethodPost, "/applications", createApplicationRequest{Name: "demo", User: "alice"})
	var app types.Application
	json.Unmarshal(rr.Body.Bytes(), &app)

	badDAG := types.DAGSpec{
		Nodes: []types.NodeSpec{{ID: "in", Name: "Input"}},
	}
	rr = doRequest(t, s, http.MethodPost, "/applications/"+app.ID+"/versions", createVersionRequest{
		User: "alice",
		Name: "v1",
		DAG:  badDAG,
	})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body = %s, want 400", rr.Code, rr.Body.String())
	}
}

func TestEndToEndApplicationVersionActivateRunPoll(t *testing.T) {
	s := newTestServer(t)

	rr := doRequest(t, s, http.MethodPost, "/applications", createApplicationRequest{Name: "demo", User: "alice"})
	var app types.Application
	json.Unmarshal(rr.Body.Bytes(), &app)

	rr = doRequest(t, s, http.MethodPost, "/applications/"+app.ID+"/versions", createVersionRequest{
		User: "alice",
		Name: "v1",
		DAG:  passthroughDAG(),
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("create version: status = %d, body = %s", rr.Code, rr.Body.String())
	}
	var version types.Version
	json.Unmarshal(rr.Body.Bytes(), &version)

	rr = doRequest(t, s, http.MethodPost, "/applications/"+app.ID+"/versions/"+version.ID+"/activate", nil)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("activate: status = %d, body = %s", rr.Code, rr.Body.String())
	}

	rr = doRequest(t, s, http.MethodPost, "/applications/"+app.ID+"/async_run", asyncRunRequest{
		VersionID: version.ID,
		User:      "alice",
		SessionID: "sess1",
		Payload:   "hello",
	})
	if rr.Code != http.StatusAccepted {
		t.Fatalf("async_run: status = %d, body = %s", rr.Code, rr.Body.String())
	}
	var accepted map[string]string
	json.Unmarshal(rr.Body.Bytes(), &accepted)
	interactionID := accepted["interaction_id"]
	if interactionID == "" {
		t.Fatal("async_run: expected a non-empty interaction_id")
	}

	var interaction types.Interaction
	for i := 0; i < 50; i++ {
		rr = doRequest(t, s, http.MethodGet, "/interactions/"+interactionID, nil)
		if rr.Code != http.StatusOK {
			t.Fatalf("poll: status = %d, body = %s", rr.Code, rr.Body.String())
		}
		json.Unmarshal(rr.Body.Bytes(), &interaction)
		if interaction.Output != nil || interaction.Error != nil {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if interaction.Output != "hello" {
		t.Errorf("interaction.Output = %v, want %q", interaction.Output, "hello")
	}
}

func TestHealthAndMetricsEndpoints(t *testing.T) {
	s := newTestServer(t)

	rr := doRequest(t, s, http.MethodGet, "/health/live", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("health/live: status = %d", rr.Code)
	}

	rr = doRequest(t, s, http.MethodGet, "/metrics", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("metrics: status = %d", rr.Code)
	}
}

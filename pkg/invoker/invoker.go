package invoker

import (
	"context"
	"fmt"
	"sync"

	"github.com/linguflow/linguflow/pkg/config"
	"github.com/linguflow/linguflow/pkg/construct"
	"github.com/linguflow/linguflow/pkg/graph"
	"github.com/linguflow/linguflow/pkg/logging"
	"github.com/linguflow/linguflow/pkg/registry"
	"github.com/linguflow/linguflow/pkg/repository"
	"github.com/linguflow/linguflow/pkg/scheduler"
	"github.com/linguflow/linguflow/pkg/state"
	"github.com/linguflow/linguflow/pkg/telemetry"
	"github.com/linguflow/linguflow/pkg/types"
	"github.com/linguflow/linguflow/pkg/validate"
)

// InvokeRequest is the keyword-style argument bundle Invoke takes,
// preferred over a long positional signature.
type InvokeRequest struct {
	AppID     string
	VersionID string
	User      string
	SessionID string
	Payload   interface{}
}

// Invoker builds and runs a Version's graph asynchronously, persisting
// progress and the final result through a Repository.
type Invoker struct {
	repo      repository.Repository
	resolver  *registry.Resolver
	scheduler *scheduler.Scheduler
	cfg       *config.Config
	logger    *logging.Logger
	decorator telemetry.Decorator
}

// New builds an Invoker. cfg and logger default to config.Default() and a
// fresh logging.Logger when nil; decorator may be nil, in which case a
// run proceeds with no tracing/metrics wrapping.
func New(repo repository.Repository, resolver *registry.Resolver, sched *scheduler.Scheduler, cfg *config.Config, logger *logging.Logger, decorator telemetry.Decorator) *Invoker {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = logging.New(logging.DefaultConfig())
	}
	return &Invoker{
		repo:      repo,
		resolver:  resolver,
		scheduler: sched,
		cfg:       cfg,
		logger:    logger,
		decorator: decorator,
	}
}

// Invoke loads req.AppID, resolves the target version (req.VersionID if
// given, else the Application's active version, else ErrNoActiveVersion),
// constructs and validates that version's graph, persists a new
// Interaction row, and returns its id once the graph is known runnable —
// the run itself happens in a background goroutine. Every pre-flight
// failure (application/version lookup, construction, validation) is
// returned synchronously and never produces an Interaction row, since the
// graph never became runnable.
func (inv *Invoker) Invoke(ctx context.Context, req InvokeRequest) (string, error) {
	app, err := inv.repo.GetApplication(req.AppID)
	if err != nil {
		return "", err
	}

	versionID := req.VersionID
	if versionID == "" {
		if app.ActiveVersion == nil {
			return "", types.ErrNoActiveVersion
		}
		versionID = *app.ActiveVersion
	}

	version, err := inv.repo.GetVersion(versionID)
	if err != nil {
		return "", err
	}
	if version.AppID != req.AppID {
		return "", fmt.Errorf("invoker: version %q does not belong to application %q", versionID, req.AppID)
	}

	g, err := construct.Build(version.Configuration, inv.resolver)
	if err != nil {
		return "", err
	}
	if err := validate.Run(g, inv.resolver, nil); err != nil {
		return "", err
	}

	interaction, err := inv.repo.CreateInteraction(req.AppID, versionID, req.User, req.SessionID)
	if err != nil {
		return "", err
	}

	go inv.run(g, interaction.ID, req, version.ID)

	return interaction.ID, nil
}

// Poll is a thin read of an Interaction's current state, whether still
// running (no Output/Error yet), succeeded, or failed.
func (inv *Invoker) Poll(ctx context.Context, interactionID string) (*types.Interaction, error) {
	return inv.repo.GetInteraction(interactionID)
}

// run drives one background execution: it evaluates the graph, persisting
// Interaction.Data wholesale after every node completes rather than
// merging individual fields in, and records the final Output/Error once
// the run settles.
func (inv *Invoker) run(g *graph.Graph, interactionID string, req InvokeRequest, versionID string) {
	runCtx, cancel := context.WithTimeout(context.Background(), inv.cfg.MaxExecutionTime)
	defer cancel()

	rc := state.New(req.AppID, versionID, interactionID, req.User, req.SessionID)

	var mu sync.Mutex
	data := make(map[string]interface{})
	callback := func(nodeID string, value interface{}) {
		mu.Lock()
		data[nodeID] = value
		snapshot := cloneData(data)
		mu.Unlock()

		if err := inv.repo.UpdateInteractionResult(interactionID, nil, snapshot, nil); err != nil {
			inv.logger.WithInteractionID(interactionID).WithError(err).Warn("invoker: failed to persist intermediate node result")
		}
	}

	runFn := func(ctx context.Context) (interface{}, error) {
		return inv.scheduler.Run(ctx, g, req.Payload, rc, callback)
	}

	var result interface{}
	var runErr error
	if inv.decorator != nil {
		result, runErr = inv.decorator.DecorateRun(runCtx, interactionID, versionID, runFn)
	} else {
		result, runErr = runFn(runCtx)
	}

	mu.Lock()
	snapshot := cloneData(data)
	mu.Unlock()

	if err := inv.repo.UpdateInteractionResult(interactionID, result, snapshot, ClassifyError(runErr)); err != nil {
		inv.logger.WithInteractionID(interactionID).WithError(err).Error("invoker: failed to persist final interaction result")
	}
}

func cloneData(m map[string]interface{}) map[string]interface{} {
	cp := make(map[string]interface{}, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return cp
}

package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/linguflow/linguflow/pkg/block"
	"github.com/linguflow/linguflow/pkg/config"
	"github.com/linguflow/linguflow/pkg/graph"
	"github.com/linguflow/linguflow/pkg/logging"
	"github.com/linguflow/linguflow/pkg/observer"
	"github.com/linguflow/linguflow/pkg/registry"
)

// Callback is invoked after each node's value has been memoized and
// before its downstream consumer proceeds, including for the output
// node after every upstream callback has already fired.
type Callback func(nodeID string, value interface{})

// Scheduler evaluates graphs demand-driven from their output node. One
// Scheduler may run many graphs, concurrently or sequentially; all
// per-run state lives on the run value a single Run call constructs,
// never on the Scheduler itself.
type Scheduler struct {
	resolver    *registry.Resolver
	cfg         *config.Config
	logger      *logging.Logger
	observerMgr *observer.Manager
}

// New builds a Scheduler. cfg, logger, and observerMgr default to
// config.Default(), a fresh logging.Logger, and an empty observer.Manager
// respectively when nil.
func New(resolver *registry.Resolver, cfg *config.Config, logger *logging.Logger, observerMgr *observer.Manager) *Scheduler {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = logging.New(logging.DefaultConfig())
	}
	if observerMgr == nil {
		observerMgr = observer.NewManager()
	}
	return &Scheduler{resolver: resolver, cfg: cfg, logger: logger, observerMgr: observerMgr}
}

// cell is a node's memo slot: computed distinguishes "not yet evaluated"
// from "evaluated to nil" so a null result is never mistaken for an empty
// slot.
type cell struct {
	computed bool
	value    interface{}
}

// run holds everything scoped to one Run call: the memo table, the
// node-execution protection counter, and the node-scoped logger/observer
// wiring. It is discarded after Run returns.
type run struct {
	scheduler *Scheduler
	ctx       context.Context
	g         *graph.Graph
	rc        block.RunContext
	callback  Callback
	runLogger *logging.Logger

	memo               map[string]*cell
	nodeExecutionCount int
}

// Run resets all memoization, binds payload to the graph's unique input
// node, evaluates the unique output node, and returns its value. callback
// fires once per node as its value is memoized, in dependency order, and
// fires last for the output node itself. The run's scoped state does not
// outlive this call.
func (s *Scheduler) Run(ctx context.Context, g *graph.Graph, payload interface{}, rc block.RunContext, callback Callback) (interface{}, error) {
	inputs := g.InputNodes()
	if len(inputs) == 0 {
		return nil, ErrNoInputNode
	}
	outputs := g.OutputNodes()
	if len(outputs) == 0 {
		return nil, ErrNoOutputNode
	}
	if callback == nil {
		callback = func(string, interface{}) {}
	}

	inputNode := g.GetNode(inputs[0])
	setter, ok := inputNode.(block.InputSetter)
	if !ok {
		return nil, fmt.Errorf("scheduler: input node %q does not accept a payload", inputs[0])
	}
	setter.SetInput(payload)

	r := &run{
		scheduler: s,
		ctx:       ctx,
		g:         g,
		rc:        rc,
		callback:  callback,
		memo:      make(map[string]*cell),
		runLogger: s.logger.WithInteractionID(rc.InteractionID()).WithVersionID(rc.VersionID()),
	}

	startTime := time.Now()
	r.runLogger.Info("interaction run started")
	r.notifyRunStart(startTime)

	value, err := r.eval(outputs[0])

	if err != nil {
		r.runLogger.WithError(err).Error("interaction run failed")
		r.notifyRunEnd(startTime, nil, err)
		return nil, err
	}

	r.runLogger.
		WithField("duration_ms", time.Since(startTime).Milliseconds()).
		Info("interaction run completed successfully")
	r.notifyRunEnd(startTime, value, nil)

	return value, nil
}

// eval returns node id's value, computing it at most once per run.
func (r *run) eval(id string) (interface{}, error) {
	if c, ok := r.memo[id]; ok && c.computed {
		return c.value, nil
	}

	node := r.g.GetNode(id)
	if node == nil {
		return nil, fmt.Errorf("scheduler: node %q not found in graph", id)
	}

	inEdges := r.g.InputEdges(id)

	var (
		value interface{}
		err   error
	)
	if len(inEdges) == 0 {
		value, err = r.invoke(node, id, nil)
	} else {
		value, err = r.evalBound(node, id, inEdges)
	}
	if err != nil {
		return nil, err
	}

	r.memo[id] = &cell{computed: true, value: value}
	r.callback(id, value)
	return value, nil
}

// evalBound builds the bound-argument map for node from its incoming
// edges and demand-computed upstream values, then invokes it — or
// returns nil without invoking it when an upstream required value is
// null or a required port is left unfilled.
func (r *run) evalBound(node block.Instance, id string, inEdges []graph.Edge) (interface{}, error) {
	declared := r.scheduler.resolver.Inports(node.TypeName())
	declaredByName := make(map[string]registry.Param, len(declared))
	for _, p := range declared {
		if p.Kind != registry.KindVariadicKeyword {
			declaredByName[p.Name] = p
		}
	}

	bindings := make(map[string]interface{})
	for _, p := range declared {
		if p.Kind != registry.KindVariadicKeyword && p.HasDefault {
			bindings[p.Name] = p.Default
		}
	}

	for _, e := range inEdges {
		upstream, err := r.eval(e.Source)
		if err != nil {
			return nil, err
		}

		if e.Case != nil && !caseMatches(e.Case, upstream) {
			continue
		}

		known := false
		if e.Port != nil {
			_, known = declaredByName[*e.Port]
		}

		if e.Port == nil || !known {
			if upstream == nil {
				return nil, nil
			}
			if e.Port != nil {
				bindings[*e.Port] = upstream
			}
			continue
		}

		if upstream != nil {
			bindings[*e.Port] = upstream
		}
	}

	for _, p := range declared {
		if p.Kind == registry.KindVariadicKeyword {
			continue
		}
		if _, bound := bindings[p.Name]; !bound {
			return nil, nil
		}
	}

	return r.invoke(node, id, bindings)
}

// invoke dispatches to node.Invoke, wrapping any failure as a
// NodeException and surrounding the call with the same
// logging/observer/protection-counter instrumentation every node gets,
// whether it was reached via evalBound or as a zero-incoming-edge leaf.
func (r *run) invoke(node block.Instance, id string, bindings map[string]interface{}) (interface{}, error) {
	startTime := time.Now()
	nodeLogger := r.runLogger.WithNodeID(id).WithNodeType(node.TypeName())

	nodeLogger.Debug("node execution started")
	r.notifyNodeStart(id, node.TypeName(), startTime)

	if err := r.incrementNodeExecution(); err != nil {
		wrapped := nodeException(id, err)
		nodeLogger.WithError(wrapped).Error("node execution limit exceeded")
		r.notifyNodeFailure(id, node.TypeName(), startTime, wrapped)
		return nil, wrapped
	}

	value, err := node.Invoke(r.rc, bindings)
	if err != nil {
		wrapped := nodeException(id, err)
		nodeLogger.WithError(wrapped).Error("node execution failed")
		r.notifyNodeFailure(id, node.TypeName(), startTime, wrapped)
		return nil, wrapped
	}

	nodeLogger.
		WithField("duration_ms", time.Since(startTime).Milliseconds()).
		Info("node execution completed successfully")
	r.notifyNodeSuccess(id, node.TypeName(), startTime, value)

	return value, nil
}

// incrementNodeExecution enforces config.MaxNodeExecutions. The
// scheduler evaluates one node at a time within a run (no internal
// parallelism), so the counter needs no locking.
func (r *run) incrementNodeExecution() error {
	r.nodeExecutionCount++
	if r.scheduler.cfg.MaxNodeExecutions > 0 && r.nodeExecutionCount > r.scheduler.cfg.MaxNodeExecutions {
		return fmt.Errorf("maximum node executions exceeded: %d (limit: %d)", r.nodeExecutionCount, r.scheduler.cfg.MaxNodeExecutions)
	}
	return nil
}

// caseMatches reports whether an edge's case label matches a computed
// upstream value. Case labels and runtime values both travel through
// interface{} from JSON decoding or block output, so numeric types are
// normalized before comparison to avoid a json.Number/float64/int
// mismatch masking an otherwise-equal case.
func caseMatches(caseVal, value interface{}) bool {
	if cf, ok := asFloat(caseVal); ok {
		if vf, ok := asFloat(value); ok {
			return cf == vf
		}
		return false
	}
	return caseVal == value
}

func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

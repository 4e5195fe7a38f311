package subapp

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/linguflow/linguflow/pkg/block"
	"github.com/linguflow/linguflow/pkg/config"
	"github.com/linguflow/linguflow/pkg/invoker"
	"github.com/linguflow/linguflow/pkg/registry"
	"github.com/linguflow/linguflow/pkg/repository"
)

// Caller is the shared collaborator every sub-application invocation
// block closes over. It is constructed empty and registered into a
// Registry before the Resolver, Invoker, or Repository it ultimately
// needs exist — building those requires a frozen Registry, so Wire must
// be called once they are built, before any sub-application block is
// invoked.
type Caller struct {
	repo repository.Repository
	inv  *invoker.Invoker
	cfg  *config.Config
}

// NewCaller returns an unwired Caller, ready to be passed to Register.
func NewCaller() *Caller {
	return &Caller{}
}

// Wire supplies the Repository, Invoker, and Config that every
// subsequent invocation of a sub-application block dispatches through.
func (c *Caller) Wire(repo repository.Repository, inv *invoker.Invoker, cfg *config.Config) {
	c.repo = repo
	c.inv = inv
	c.cfg = cfg
}

// call resolves appID's active version, invokes it with input as the
// payload, and waits for the sub-interaction to settle. Identical
// (appID, input) pairs are memoized for the lifetime of rc's run, so a
// diamond-shaped DAG that reaches the same sub-application invocation
// twice only ever triggers it once.
func (c *Caller) call(rc block.RunContext, appID string, input interface{}) (interface{}, error) {
	key, err := memoKey(appID, input)
	if err != nil {
		return nil, fmt.Errorf("subapp: canonicalizing input: %w", err)
	}
	return rc.Memoize(key, func() (interface{}, error) {
		return c.invokeAndWait(rc, appID, input)
	})
}

func (c *Caller) invokeAndWait(rc block.RunContext, appID string, input interface{}) (interface{}, error) {
	if c.inv == nil {
		return nil, fmt.Errorf("subapp: Caller is not wired to a running invoker yet")
	}

	app, err := c.repo.GetApplication(appID)
	if err != nil {
		return nil, fmt.Errorf("subapp: %w", err)
	}
	if app.ActiveVersion == nil {
		return nil, fmt.Errorf("subapp: application %q has no active version", appID)
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.cfg.SubAppInvokeTimeout)
	defer cancel()

	interactionID, err := c.inv.Invoke(ctx, invoker.InvokeRequest{
		AppID:     appID,
		VersionID: *app.ActiveVersion,
		User:      rc.User(),
		SessionID: rc.SessionID(),
		Payload:   input,
	})
	if err != nil {
		return nil, fmt.Errorf("subapp: %w", err)
	}

	ticker := time.NewTicker(c.cfg.SubAppPollInterval)
	defer ticker.Stop()

	for {
		interaction, err := c.inv.Poll(ctx, interactionID)
		if err != nil {
			return nil, fmt.Errorf("subapp: %w", err)
		}
		if interaction.Error != nil {
			return nil, fmt.Errorf("subapp: application %q failed: %s", appID, interaction.Error.Content)
		}
		if interaction.Output != nil {
			return interaction.Output, nil
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("subapp: application %q timed out waiting for a result: %w", appID, ctx.Err())
		case <-ticker.C:
		}
	}
}

// memoKey canonicalizes appID and input into a stable cache key.
// encoding/json sorts map[string]interface{} keys on marshal, so two
// structurally identical inputs always hash the same regardless of the
// order their keys were built in.
func memoKey(appID string, input interface{}) (string, error) {
	payload, err := json.Marshal(input)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(append([]byte(appID+"\x00"), payload...))
	return hex.EncodeToString(sum[:]), nil
}

// Register adds all three sub-application invocation block descriptors
// to reg, each closing over c. c must be Wired before any of them is
// invoked, but may still be unwired at registration time.
func Register(reg *registry.Registry, c *Caller) error {
	if err := registerSubAppText(reg, c); err != nil {
		return err
	}
	if err := registerSubAppList(reg, c); err != nil {
		return err
	}
	return registerSubAppDict(reg, c)
}

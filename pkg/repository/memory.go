package repository

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/linguflow/linguflow/pkg/config"
	"github.com/linguflow/linguflow/pkg/types"
)

// InMemoryRepository implements Repository using process memory, secondary
// indexes kept as maps to give ListVersions/ListInteractions/VersionChildren
// the "indexed on app_id"-style access pattern a real table would offer
// through a DATABASE_URL-backed store.
type InMemoryRepository struct {
	cfg *config.Config

	mu           sync.RWMutex
	applications map[string]*types.Application
	versions     map[string]*types.Version
	interactions map[string]*types.Interaction

	versionsByApp     map[string][]string
	interactionsByVer map[string][]string
}

// NewInMemoryRepository builds an empty store. cfg defaults to
// config.Default() when nil.
func NewInMemoryRepository(cfg *config.Config) *InMemoryRepository {
	if cfg == nil {
		cfg = config.Default()
	}
	return &InMemoryRepository{
		cfg:               cfg,
		applications:      make(map[string]*types.Application),
		versions:          make(map[string]*types.Version),
		interactions:      make(map[string]*types.Interaction),
		versionsByApp:     make(map[string][]string),
		interactionsByVer: make(map[string][]string),
	}
}

var _ Repository = (*InMemoryRepository)(nil)

// ---- Applications -----------------------------------------------------

func (r *InMemoryRepository) CreateApplication(name, user string) (*types.Application, error) {
	if name == "" {
		return nil, ErrApplicationNameRequired
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	app := &types.Application{
		ID:        uuid.New().String(),
		Name:      name,
		User:      user,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.applications[app.ID] = app
	return cloneApplication(app), nil
}

func (r *InMemoryRepository) GetApplication(id string) (*types.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	app, ok := r.applications[id]
	if !ok || app.DeletedAt != nil {
		return nil, ErrApplicationNotFound
	}
	return cloneApplication(app), nil
}

func (r *InMemoryRepository) ListApplications(user string) ([]*types.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*types.Application
	for _, app := range r.applications {
		if app.DeletedAt != nil || app.User != user {
			continue
		}
		out = append(out, cloneApplication(app))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *InMemoryRepository) SetActiveVersion(appID, versionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	app, ok := r.applications[appID]
	if !ok || app.DeletedAt != nil {
		return ErrApplicationNotFound
	}
	version, ok := r.versions[versionID]
	if !ok || version.DeletedAt != nil {
		return ErrVersionNotFound
	}
	if version.AppID != appID {
		return ErrParentVersionMismatch
	}

	v := versionID
	app.ActiveVersion = &v
	app.UpdatedAt = time.Now()
	return nil
}

func (r *InMemoryRepository) DeleteApplication(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	app, ok := r.applications[id]
	if !ok || app.DeletedAt != nil {
		return ErrApplicationNotFound
	}
	now := time.Now()
	app.DeletedAt = &now
	app.UpdatedAt = now
	return nil
}

// ---- Versions -----------------------------------------------------------

func (r *InMemoryRepository) CreateVersion(appID, user, name string, parentID *string, meta map[string]interface{}, cfg types.DAGSpec) (*types.Version, error) {
	if name == "" {
		return nil, ErrVersionNameRequired
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if app, ok := r.applications[appID]; !ok || app.DeletedAt != nil {
		return nil, ErrApplicationNotFound
	}

	if parentID != nil {
		parent, ok := r.versions[*parentID]
		if !ok || parent.DeletedAt != nil {
			return nil, ErrParentVersionNotFound
		}
		if parent.AppID != appID {
			return nil, ErrParentVersionMismatch
		}
	}

	now := time.Now()
	version := &types.Version{
		ID:            uuid.New().String(),
		AppID:         appID,
		Name:          name,
		User:          user,
		ParentID:      parentID,
		Meta:          cloneMeta(meta),
		Configuration: cfg,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	r.versions[version.ID] = version
	r.versionsByApp[appID] = append(r.versionsByApp[appID], version.ID)
	return cloneVersion(version), nil
}

func (r *InMemoryRepository) GetVersion(id string) (*types.Version, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	version, ok := r.versions[id]
	if !ok || version.DeletedAt != nil {
		return nil, ErrVersionNotFound
	}
	return cloneVersion(version), nil
}

func (r *InMemoryRepository) ListVersions(appID string) ([]*types.Version, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*types.Version
	for _, id := range r.versionsByApp[appID] {
		version := r.versions[id]
		if version.DeletedAt != nil {
			continue
		}
		out = append(out, cloneVersion(version))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *InMemoryRepository) VersionAncestors(id string) ([]*types.Version, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	version, ok := r.versions[id]
	if !ok || version.DeletedAt != nil {
		return nil, ErrVersionNotFound
	}

	var chain []*types.Version
	depth := 0
	for version.ParentID != nil {
		if r.cfg.MaxVersionTreeDepth > 0 && depth >= r.cfg.MaxVersionTreeDepth {
			return nil, ErrVersionTreeTooDeep
		}
		parent, ok := r.versions[*version.ParentID]
		if !ok {
			break
		}
		chain = append(chain, cloneVersion(parent))
		version = parent
		depth++
	}
	return chain, nil
}

func (r *InMemoryRepository) VersionChildren(id string) ([]*types.Version, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.versions[id]; !ok {
		return nil, ErrVersionNotFound
	}

	var out []*types.Version
	for _, version := range r.versions {
		if version.DeletedAt != nil || version.ParentID == nil || *version.ParentID != id {
			continue
		}
		out = append(out, cloneVersion(version))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *InMemoryRepository) DeleteVersion(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	version, ok := r.versions[id]
	if !ok || version.DeletedAt != nil {
		return ErrVersionNotFound
	}
	now := time.Now()
	version.DeletedAt = &now
	version.UpdatedAt = now
	return nil
}

// ---- Interactions ---------------------------------------------------------

func (r *InMemoryRepository) CreateInteraction(appID, versionID, user, sessionID string) (*types.Interaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	version, ok := r.versions[versionID]
	if !ok || version.DeletedAt != nil {
		return nil, ErrVersionNotFound
	}
	if version.AppID != appID {
		return nil, fmt.Errorf("repository: version %q does not belong to application %q", versionID, appID)
	}

	now := time.Now()
	interaction := &types.Interaction{
		ID:        uuid.New().String(),
		AppID:     appID,
		VersionID: versionID,
		User:      user,
		SessionID: sessionID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.interactions[interaction.ID] = interaction
	r.interactionsByVer[versionID] = append(r.interactionsByVer[versionID], interaction.ID)
	return cloneInteraction(interaction), nil
}

func (r *InMemoryRepository) GetInteraction(id string) (*types.Interaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	interaction, ok := r.interactions[id]
	if !ok {
		return nil, ErrInteractionNotFound
	}
	return cloneInteraction(interaction), nil
}

func (r *InMemoryRepository) UpdateInteractionResult(id string, output interface{}, data map[string]interface{}, ierr *types.InteractionError) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	interaction, ok := r.interactions[id]
	if !ok {
		return ErrInteractionNotFound
	}
	interaction.Output = output
	interaction.Data = cloneMeta(data)
	interaction.Error = ierr
	interaction.UpdatedAt = time.Now()
	return nil
}

func (r *InMemoryRepository) ListInteractions(versionID string) ([]*types.Interaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*types.Interaction
	for _, id := range r.interactionsByVer[versionID] {
		out = append(out, cloneInteraction(r.interactions[id]))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// ---- copy helpers -----------------------------------------------------

// Clones prevent a caller from mutating repository state through a
// returned pointer.

func cloneApplication(app *types.Application) *types.Application {
	cp := *app
	if app.ActiveVersion != nil {
		v := *app.ActiveVersion
		cp.ActiveVersion = &v
	}
	if app.DeletedAt != nil {
		d := *app.DeletedAt
		cp.DeletedAt = &d
	}
	return &cp
}

func cloneVersion(version *types.Version) *types.Version {
	cp := *version
	if version.ParentID != nil {
		p := *version.ParentID
		cp.ParentID = &p
	}
	if version.DeletedAt != nil {
		d := *version.DeletedAt
		cp.DeletedAt = &d
	}
	cp.Meta = cloneMeta(version.Meta)
	return &cp
}

func cloneInteraction(interaction *types.Interaction) *types.Interaction {
	cp := *interaction
	cp.Data = cloneMeta(interaction.Data)
	if interaction.Error != nil {
		e := *interaction.Error
		cp.Error = &e
	}
	return &cp
}

func cloneMeta(m map[string]interface{}) map[string]interface{} {
	if m == nil {
		return nil
	}
	cp := make(map[string]interface{}, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return cp
}

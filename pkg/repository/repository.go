package repository

import (
	"github.com/linguflow/linguflow/pkg/types"
)

// Repository is the storage facade every Application/Version/Interaction
// operation goes through. All deletes are soft: a deleted row keeps
// existing, with DeletedAt set, and is excluded from Get/List thereafter.
type Repository interface {
	// CreateApplication creates a new Application owned by user.
	CreateApplication(name, user string) (*types.Application, error)

	// GetApplication returns an Application by id, or ErrApplicationNotFound
	// if it does not exist or has been deleted.
	GetApplication(id string) (*types.Application, error)

	// ListApplications returns every non-deleted Application owned by user,
	// newest first.
	ListApplications(user string) ([]*types.Application, error)

	// SetActiveVersion points an Application's ActiveVersion at a Version
	// that belongs to it.
	SetActiveVersion(appID, versionID string) error

	// DeleteApplication soft-deletes an Application.
	DeleteApplication(id string) error

	// CreateVersion creates a new Version under appID. parentID, if
	// non-nil, must reference an existing, non-deleted Version of the
	// same Application.
	CreateVersion(appID, user, name string, parentID *string, meta map[string]interface{}, cfg types.DAGSpec) (*types.Version, error)

	// GetVersion returns a Version by id, or ErrVersionNotFound.
	GetVersion(id string) (*types.Version, error)

	// ListVersions returns every non-deleted Version of appID, newest first.
	ListVersions(appID string) ([]*types.Version, error)

	// VersionAncestors walks a Version's parent_id chain up to the root,
	// nearest ancestor first, bounded by the repository's configured
	// maximum tree depth.
	VersionAncestors(id string) ([]*types.Version, error)

	// VersionChildren returns the direct, non-deleted children of a
	// Version (no further descendants).
	VersionChildren(id string) ([]*types.Version, error)

	// DeleteVersion soft-deletes a Version.
	DeleteVersion(id string) error

	// CreateInteraction creates a new Interaction record for a run of
	// versionID, with no output/data/error yet recorded.
	CreateInteraction(appID, versionID, user, sessionID string) (*types.Interaction, error)

	// GetInteraction returns an Interaction by id, or ErrInteractionNotFound.
	GetInteraction(id string) (*types.Interaction, error)

	// UpdateInteractionResult overwrites an Interaction's Output/Data/Error
	// wholesale and refreshes UpdatedAt. data is the full map for this
	// update, not a patch to merge into the existing one.
	UpdateInteractionResult(id string, output interface{}, data map[string]interface{}, ierr *types.InteractionError) error

	// ListInteractions returns every Interaction of versionID, newest first.
	ListInteractions(versionID string) ([]*types.Interaction, error)
}

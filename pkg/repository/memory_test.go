package repository

import (
	"testing"

	"github.com/linguflow/linguflow/pkg/config"
	"github.com/linguflow/linguflow/pkg/types"
)

func TestCreateAndGetApplication(t *testing.T) {
	repo := NewInMemoryRepository(nil)

	app, err := repo.CreateApplication("chatbot", "alice")
	if err != nil {
		t.Fatalf("CreateApplication() error = %v", err)
	}
	if app.ID == "" {
		t.Fatal("CreateApplication() did not assign an ID")
	}

	got, err := repo.GetApplication(app.ID)
	if err != nil {
		t.Fatalf("GetApplication() error = %v", err)
	}
	if got.Name != "chatbot" || got.User != "alice" {
		t.Errorf("GetApplication() = %+v", got)
	}
}

func TestCreateApplicationRequiresName(t *testing.T) {
	repo := NewInMemoryRepository(nil)
	if _, err := repo.CreateApplication("", "alice"); err != ErrApplicationNameRequired {
		t.Errorf("err = %v, want ErrApplicationNameRequired", err)
	}
}

func TestDeleteApplicationIsSoft(t *testing.T) {
	repo := NewInMemoryRepository(nil)
	app, _ := repo.CreateApplication("chatbot", "alice")

	if err := repo.DeleteApplication(app.ID); err != nil {
		t.Fatalf("DeleteApplication() error = %v", err)
	}
	if _, err := repo.GetApplication(app.ID); err != ErrApplicationNotFound {
		t.Errorf("GetApplication() after delete = %v, want ErrApplicationNotFound", err)
	}

	list, err := repo.ListApplications("alice")
	if err != nil {
		t.Fatalf("ListApplications() error = %v", err)
	}
	if len(list) != 0 {
		t.Errorf("ListApplications() after delete = %v, want empty", list)
	}
}

func TestListApplicationsScopedByUser(t *testing.T) {
	repo := NewInMemoryRepository(nil)
	repo.CreateApplication("a", "alice")
	repo.CreateApplication("b", "bob")
	repo.CreateApplication("c", "alice")

	list, err := repo.ListApplications("alice")
	if err != nil {
		t.Fatalf("ListApplications() error = %v", err)
	}
	if len(list) != 2 {
		t.Errorf("ListApplications(alice) returned %d apps, want 2", len(list))
	}
}

func TestSetActiveVersion(t *testing.T) {
	repo := NewInMemoryRepository(nil)
	app, _ := repo.CreateApplication("chatbot", "alice")
	version, _ := repo.CreateVersion(app.ID, "alice", "v1", nil, nil, types.DAGSpec{})

	if err := repo.SetActiveVersion(app.ID, version.ID); err != nil {
		t.Fatalf("SetActiveVersion() error = %v", err)
	}

	got, _ := repo.GetApplication(app.ID)
	if got.ActiveVersion == nil || *got.ActiveVersion != version.ID {
		t.Errorf("ActiveVersion = %v, want %v", got.ActiveVersion, version.ID)
	}
}

func TestSetActiveVersionRejectsForeignVersion(t *testing.T) {
	repo := NewInMemoryRepository(nil)
	app1, _ := repo.CreateApplication("a", "alice")
	app2, _ := repo.CreateApplication("b", "alice")
	version, _ := repo.CreateVersion(app2.ID, "alice", "v1", nil, nil, types.DAGSpec{})

	if err := repo.SetActiveVersion(app1.ID, version.ID); err != ErrParentVersionMismatch {
		t.Errorf("err = %v, want ErrParentVersionMismatch", err)
	}
}

func TestVersionTreeAncestorsAndChildren(t *testing.T) {
	repo := NewInMemoryRepository(nil)
	app, _ := repo.CreateApplication("chatbot", "alice")

	root, _ := repo.CreateVersion(app.ID, "alice", "v1", nil, nil, types.DAGSpec{})
	child, _ := repo.CreateVersion(app.ID, "alice", "v2", &root.ID, nil, types.DAGSpec{})
	grandchild, _ := repo.CreateVersion(app.ID, "alice", "v3", &child.ID, nil, types.DAGSpec{})

	ancestors, err := repo.VersionAncestors(grandchild.ID)
	if err != nil {
		t.Fatalf("VersionAncestors() error = %v", err)
	}
	if len(ancestors) != 2 || ancestors[0].ID != child.ID || ancestors[1].ID != root.ID {
		t.Fatalf("VersionAncestors() = %v, want [child, root]", ancestors)
	}

	children, err := repo.VersionChildren(root.ID)
	if err != nil {
		t.Fatalf("VersionChildren() error = %v", err)
	}
	if len(children) != 1 || children[0].ID != child.ID {
		t.Fatalf("VersionChildren(root) = %v, want [child]", children)
	}

	grandchildren, err := repo.VersionChildren(child.ID)
	if err != nil {
		t.Fatalf("VersionChildren() error = %v", err)
	}
	if len(grandchildren) != 1 || grandchildren[0].ID != grandchild.ID {
		t.Fatalf("VersionChildren(child) = %v, want [grandchild]", grandchildren)
	}
}

func TestCreateVersionRejectsForeignParent(t *testing.T) {
	repo := NewInMemoryRepository(nil)
	app1, _ := repo.CreateApplication("a", "alice")
	app2, _ := repo.CreateApplication("b", "alice")
	foreignParent, _ := repo.CreateVersion(app2.ID, "alice", "v1", nil, nil, types.DAGSpec{})

	if _, err := repo.CreateVersion(app1.ID, "alice", "v2", &foreignParent.ID, nil, types.DAGSpec{}); err != ErrParentVersionMismatch {
		t.Errorf("err = %v, want ErrParentVersionMismatch", err)
	}
}

func TestVersionAncestorsDepthLimit(t *testing.T) {
	cfg := config.Default()
	cfg.MaxVersionTreeDepth = 1
	repo := NewInMemoryRepository(cfg)

	app, _ := repo.CreateApplication("chatbot", "alice")
	root, _ := repo.CreateVersion(app.ID, "alice", "v1", nil, nil, types.DAGSpec{})
	child, _ := repo.CreateVersion(app.ID, "alice", "v2", &root.ID, nil, types.DAGSpec{})
	grandchild, _ := repo.CreateVersion(app.ID, "alice", "v3", &child.ID, nil, types.DAGSpec{})

	if _, err := repo.VersionAncestors(grandchild.ID); err != ErrVersionTreeTooDeep {
		t.Errorf("err = %v, want ErrVersionTreeTooDeep", err)
	}
}

func TestDeleteVersionIsSoft(t *testing.T) {
	repo := NewInMemoryRepository(nil)
	app, _ := repo.CreateApplication("chatbot", "alice")
	version, _ := repo.CreateVersion(app.ID, "alice", "v1", nil, nil, types.DAGSpec{})

	if err := repo.DeleteVersion(version.ID); err != nil {
		t.Fatalf("DeleteVersion() error = %v", err)
	}
	if _, err := repo.GetVersion(version.ID); err != ErrVersionNotFound {
		t.Errorf("GetVersion() after delete = %v, want ErrVersionNotFound", err)
	}
}

func TestInteractionLifecycle(t *testing.T) {
	repo := NewInMemoryRepository(nil)
	app, _ := repo.CreateApplication("chatbot", "alice")
	version, _ := repo.CreateVersion(app.ID, "alice", "v1", nil, nil, types.DAGSpec{})

	interaction, err := repo.CreateInteraction(app.ID, version.ID, "alice", "session-1")
	if err != nil {
		t.Fatalf("CreateInteraction() error = %v", err)
	}
	if interaction.Output != nil || interaction.Error != nil {
		t.Errorf("new interaction should have no output/error, got %+v", interaction)
	}

	err = repo.UpdateInteractionResult(interaction.ID, "hello", map[string]interface{}{"node": "hello"}, nil)
	if err != nil {
		t.Fatalf("UpdateInteractionResult() error = %v", err)
	}

	got, err := repo.GetInteraction(interaction.ID)
	if err != nil {
		t.Fatalf("GetInteraction() error = %v", err)
	}
	if got.Output != "hello" || got.Data["node"] != "hello" {
		t.Errorf("GetInteraction() = %+v", got)
	}

	list, err := repo.ListInteractions(version.ID)
	if err != nil {
		t.Fatalf("ListInteractions() error = %v", err)
	}
	if len(list) != 1 || list[0].ID != interaction.ID {
		t.Errorf("ListInteractions() = %v", list)
	}
}

func TestUpdateInteractionResultOverwritesDataWholesale(t *testing.T) {
	repo := NewInMemoryRepository(nil)
	app, _ := repo.CreateApplication("chatbot", "alice")
	version, _ := repo.CreateVersion(app.ID, "alice", "v1", nil, nil, types.DAGSpec{})
	interaction, _ := repo.CreateInteraction(app.ID, version.ID, "alice", "session-1")

	repo.UpdateInteractionResult(interaction.ID, "first", map[string]interface{}{"a": 1, "b": 2}, nil)
	repo.UpdateInteractionResult(interaction.ID, "second", map[string]interface{}{"c": 3}, nil)

	got, _ := repo.GetInteraction(interaction.ID)
	if _, ok := got.Data["a"]; ok {
		t.Errorf("Data retained a stale key from the first update: %+v", got.Data)
	}
	if got.Data["c"] != 3 {
		t.Errorf("Data = %+v, want only {c: 3}", got.Data)
	}
}

func TestCreateInteractionRequiresMatchingApplication(t *testing.T) {
	repo := NewInMemoryRepository(nil)
	app1, _ := repo.CreateApplication("a", "alice")
	app2, _ := repo.CreateApplication("b", "alice")
	version, _ := repo.CreateVersion(app2.ID, "alice", "v1", nil, nil, types.DAGSpec{})

	if _, err := repo.CreateInteraction(app1.ID, version.ID, "alice", "session-1"); err == nil {
		t.Fatal("CreateInteraction() across applications should fail")
	}
}

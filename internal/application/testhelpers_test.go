package application

import (
	"testing"
	"time"

	"github.com/linskybing/moderation-platform/internal/domain/user"
	"github.com/linskybing/moderation-platform/internal/workflow"
	"github.com/stretchr/testify/require"
)

const testInstitution = "North College"

func testPipeline(t *testing.T) *workflow.Pipeline {
	t.Helper()
	p, err := workflow.Default()
	require.NoError(t, err)
	return p
}

func actorFor(id string, role user.Role) workflow.Actor {
	return workflow.Actor{
		UserID:      id,
		Email:       id + "@example.org",
		Name:        id,
		Role:        role,
		Institution: testInstitution,
		IPAddress:   "127.0.0.1",
		UserAgent:   "test",
	}
}

var (
	instructor  = actorFor("ins-1", user.RoleInstructor)
	langExpert  = actorFor("le-1", user.RoleLanguageExpert)
	subjExpert  = actorFor("se-1", user.RoleSubjectExpert)
	seniorInst  = actorFor("si-1", user.RoleSeniorInstructor)
	coordinator = actorFor("pc-1", user.RoleCoordinator)
	finalMod    = actorFor("amo-1", user.RoleFinalModerator)
	instManager = actorFor("im-1", user.RoleInstitutionManager)
	headOfProgs = actorFor("hop-1", user.RoleHeadOfPrograms)
)

type harness struct {
	store  *memStore
	files  *fakeFileStore
	events *EventHub
	svc    *Services
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	store := newMemStore()
	files := newFakeFileStore()
	events := NewEventHub(64)
	svc := New(store.repos(), Options{
		Pipeline:       testPipeline(t),
		Events:         events,
		Files:          files,
		StorageTimeout: time.Second,
	})
	return &harness{store: store, files: files, events: events, svc: svc}
}

func (h *harness) addUser(a workflow.Actor, status user.ApprovalStatus) {
	h.store.users[a.UserID] = user.User{
		ID:             a.UserID,
		Email:          a.Email,
		FullName:       a.Name,
		Role:           a.Role,
		Institution:    a.Institution,
		ApprovalStatus: status,
	}
}

package application

import (
	"context"
	"strings"
	"time"

	"github.com/linskybing/moderation-platform/internal/domain/audit"
	"github.com/linskybing/moderation-platform/internal/domain/user"
	apperrors "github.com/linskybing/moderation-platform/internal/errors"
	"github.com/linskybing/moderation-platform/internal/repository"
	"github.com/linskybing/moderation-platform/internal/workflow"
)

const (
	ActionApprove = "approve"
	ActionReject  = "reject"
)

// UserService administers accounts created by the identity provider.
// Heads of programs manage everyone; institution managers manage their own
// institution only.
type UserService struct {
	Repos   *repository.Repos
	Timeout time.Duration
}

func NewUserService(repos *repository.Repos, timeout time.Duration) *UserService {
	return &UserService{
		Repos:   repos,
		Timeout: timeout,
	}
}

func isUserAdmin(actor workflow.Actor) bool {
	return actor.Role.In(user.RoleHeadOfPrograms, user.RoleInstitutionManager)
}

func (s *UserService) ListUsers(ctx context.Context, actor workflow.Actor) ([]user.User, error) {
	if !isUserAdmin(actor) {
		return nil, apperrors.Authorization("role %s cannot list users", actor.Role)
	}

	ctx, cancel := storageContext(ctx, s.Timeout)
	defer cancel()

	var institution *string
	if actor.Role != user.RoleHeadOfPrograms {
		inst := actor.Institution
		institution = &inst
	}
	users, err := s.Repos.User.List(ctx, institution)
	if err != nil {
		return nil, classify(err, "list users")
	}
	return users, nil
}

// loadManaged fetches the target user and checks actor may manage them.
func (s *UserService) loadManaged(ctx context.Context, actor workflow.Actor, userID string) (user.User, error) {
	if !isUserAdmin(actor) {
		return user.User{}, apperrors.Authorization("role %s cannot manage users", actor.Role)
	}
	id := strings.TrimSpace(userID)
	if id == "" {
		return user.User{}, apperrors.InvalidArgument("userId is required")
	}
	target, err := s.Repos.User.GetByID(ctx, id)
	if err != nil {
		return user.User{}, classify(err, "load user %s", id)
	}
	if actor.Role == user.RoleInstitutionManager {
		if target.Institution != actor.Institution {
			return user.User{}, apperrors.Authorization("user %s belongs to another institution", id)
		}
		if target.Role == user.RoleHeadOfPrograms {
			return user.User{}, apperrors.Authorization("institution managers cannot manage a head of programs")
		}
	}
	return target, nil
}

func (s *UserService) UpdateRole(ctx context.Context, actor workflow.Actor, in user.UpdateRoleDTO) (user.User, error) {
	role := user.Role(strings.TrimSpace(in.Role))
	if !role.Valid() {
		return user.User{}, apperrors.InvalidArgument("unknown role %q", in.Role)
	}
	if actor.Role == user.RoleInstitutionManager && role == user.RoleHeadOfPrograms {
		return user.User{}, apperrors.Authorization("institution managers cannot grant %s", role)
	}

	ctx, cancel := storageContext(ctx, s.Timeout)
	defer cancel()

	target, err := s.loadManaged(ctx, actor, in.UserID)
	if err != nil {
		return user.User{}, err
	}
	before := target
	target.Role = role

	err = s.Repos.ExecTx(ctx, func(tx *repository.Repos) error {
		if err := tx.User.Save(ctx, &target); err != nil {
			return err
		}
		if err := tx.Audit.CreateAuditLog(ctx, newAuditLog(actor, audit.ActionUpdateRole, audit.ResourceUser, target.ID,
			before, target, "role "+string(before.Role)+" -> "+string(role))); err != nil {
			return err
		}
		if before.Role == role {
			return nil
		}
		return releaseReviewer(ctx, tx, actor, target.ID, "reviewer "+target.ID+" changed role to "+string(role))
	})
	if err != nil {
		return user.User{}, classify(err, "update role of %s", target.ID)
	}
	return target, nil
}

func (s *UserService) ApproveUser(ctx context.Context, actor workflow.Actor, in user.ApproveUserDTO) (user.User, error) {
	action := strings.ToLower(strings.TrimSpace(in.Action))
	if action != ActionApprove && action != ActionReject {
		return user.User{}, apperrors.InvalidArgument("action must be %q or %q", ActionApprove, ActionReject)
	}

	ctx, cancel := storageContext(ctx, s.Timeout)
	defer cancel()

	target, err := s.loadManaged(ctx, actor, in.UserID)
	if err != nil {
		return user.User{}, err
	}
	before := target

	auditAction := audit.ActionApproveUser
	if action == ActionApprove {
		target.ApprovalStatus = user.ApprovalApproved
		target.RejectedReason = nil
	} else {
		auditAction = audit.ActionRejectUser
		target.ApprovalStatus = user.ApprovalRejected
		reason := strings.TrimSpace(in.Reason)
		target.RejectedReason = &reason
	}

	err = s.Repos.ExecTx(ctx, func(tx *repository.Repos) error {
		if err := tx.User.Save(ctx, &target); err != nil {
			return err
		}
		return tx.Audit.CreateAuditLog(ctx, newAuditLog(actor, auditAction, audit.ResourceUser, target.ID,
			before, target, strings.TrimSpace(in.Reason)))
	})
	if err != nil {
		return user.User{}, classify(err, "%s user %s", action, target.ID)
	}
	return target, nil
}

// RemoveUser soft-deletes the account and releases any submission bound to
// it. The reason goes to the audit trail.
func (s *UserService) RemoveUser(ctx context.Context, actor workflow.Actor, in user.RemoveUserDTO) error {
	if strings.TrimSpace(in.UserID) == actor.UserID {
		return apperrors.InvalidArgument("you cannot remove your own account")
	}

	ctx, cancel := storageContext(ctx, s.Timeout)
	defer cancel()

	target, err := s.loadManaged(ctx, actor, in.UserID)
	if err != nil {
		return err
	}

	err = s.Repos.ExecTx(ctx, func(tx *repository.Repos) error {
		if err := tx.User.Delete(ctx, target.ID); err != nil {
			return err
		}
		if err := tx.Audit.CreateAuditLog(ctx, newAuditLog(actor, audit.ActionRemoveUser, audit.ResourceUser, target.ID,
			target, nil, strings.TrimSpace(in.Reason))); err != nil {
			return err
		}
		return releaseReviewer(ctx, tx, actor, target.ID, "reviewer "+target.ID+" was removed")
	})
	if err != nil {
		return classify(err, "remove user %s", target.ID)
	}
	return nil
}

// releaseReviewer unbinds userID from every submission waiting on them, so
// any holder of the stage role can pick the work up. Status is unchanged.
func releaseReviewer(ctx context.Context, tx *repository.Repos, actor workflow.Actor, userID, desc string) error {
	bound, err := tx.Submission.LockByReviewer(ctx, userID)
	if err != nil {
		return err
	}
	for _, sub := range bound {
		released, err := tx.Submission.UpdateStatus(ctx, repository.StatusChange{
			ID:              sub.ID,
			ExpectedVersion: sub.Version,
			Status:          sub.Status,
		})
		if err != nil {
			return err
		}
		if err := tx.Audit.CreateAuditLog(ctx, newAuditLog(actor, audit.ActionReleaseReviewer, audit.ResourceSubmission, sub.ID,
			statusSnapshot(sub), statusSnapshot(released), desc)); err != nil {
			return err
		}
	}
	return nil
}

package service

import (
	"time"

	"github.com/aussiebroadwan/aicatalog/internal/catalog/domain"
)

// Every operation takes the acting user explicitly. The zero User is an
// anonymous caller.

func requireAuthenticated(actor domain.User) error {
	if actor.ID == "" {
		return ErrUnauthenticated
	}
	return nil
}

func requireApproved(actor domain.User) error {
	if err := requireAuthenticated(actor); err != nil {
		return err
	}
	if !actor.IsApproved() {
		return ErrUnauthorized
	}
	return nil
}

func requireOwner(actor domain.User) error {
	if err := requireAuthenticated(actor); err != nil {
		return err
	}
	if !actor.IsApprovedOwner() {
		return ErrUnauthorized
	}
	return nil
}

// canEditTool covers the non-moderation fields of a tool.
func canEditTool(actor domain.User, t domain.Tool) bool {
	if actor.IsApprovedOwner() {
		return true
	}
	return actor.ID != "" && actor.ID == t.CreatedBy && actor.IsApproved()
}

// canViewTool hides anything that is not active from everyone but owners.
func canViewTool(viewer domain.User, t domain.Tool) bool {
	return t.Status == domain.ToolActive || viewer.IsApprovedOwner()
}

func nowFrom(fn func() time.Time) time.Time {
	if fn != nil {
		return fn().UTC()
	}
	return time.Now().UTC()
}

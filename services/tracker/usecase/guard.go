package usecase

import (
	"babycare/domain"
	"context"

	"github.com/pkg/errors"
)

// OwnershipGuard binds child scoped work to the child's owner.
type OwnershipGuard struct {
	children domain.ChildRepo
}

func NewOwnershipGuard(children domain.ChildRepo) *OwnershipGuard {
	return &OwnershipGuard{children: children}
}

// VerifyChildOwnership resolves the child in one lookup constrained to
// userID. Missing and foreign children both come back as "Child not found".
func (g *OwnershipGuard) VerifyChildOwnership(ctx context.Context, childID, userID int) (*domain.Child, error) {
	if childID <= 0 || userID <= 0 {
		return nil, domain.NotFound("Child")
	}
	child, err := g.children.FindOwned(ctx, childID, userID)
	if err != nil {
		return nil, storageFault(err, "failed to verify child ownership")
	}
	return child, nil
}

// ownedRecord loads a record addressed by its own id, then checks the owner
// of the child it belongs to. A missing record fails before the ownership
// check runs.
func ownedRecord[T any](ctx context.Context, g *OwnershipGuard, userID, id int,
	find func(context.Context, int) (*T, error), childOf func(*T) int, resource string) (*T, error) {
	if id <= 0 {
		return nil, domain.NotFound(resource)
	}
	record, err := find(ctx, id)
	if err != nil {
		return nil, storageFault(err, "failed to load "+resource)
	}
	if _, err := g.VerifyChildOwnership(ctx, childOf(record), userID); err != nil {
		return nil, err
	}
	return record, nil
}

// storageFault passes classified errors through and wraps everything else.
func storageFault(err error, msg string) error {
	var de *domain.Error
	if errors.As(err, &de) {
		return err
	}
	return errors.Wrap(err, msg)
}

package repository

import (
	"context"

	"github.com/jhoicas/leads-api/internal/domain/entity"
	"github.com/jhoicas/leads-api/internal/domain/leadfilter"
)

// LeadRepository is the persistence port for leads. Every operation is scoped
// to an owner: a lead is never visible, mutable or deletable through any other
// user's id, and "absent" and "not owned" are indistinguishable (ErrNotFound).
type LeadRepository interface {
	// Create persists a new lead. A (user_id, email) unique violation is
	// reported as domain.ErrLeadEmailExists.
	Create(ctx context.Context, lead *entity.Lead) error

	// FindByOwnerAndEmail returns the owner's lead with that email, or (nil, nil).
	FindByOwnerAndEmail(ctx context.Context, ownerID, email string) (*entity.Lead, error)

	// List executes the compiled filter and returns one page ordered by
	// created_at DESC, id DESC, plus the total count of all matching rows.
	List(ctx context.Context, f leadfilter.Filter, limit, offset int) ([]*entity.Lead, int, error)

	// GetByID returns the lead, or domain.ErrNotFound when it does not exist
	// or belongs to another owner.
	GetByID(ctx context.Context, ownerID, id string) (*entity.Lead, error)

	// Update replaces the mutable fields of lead.ID for lead.UserID.
	// Returns domain.ErrNotFound when nothing matched, domain.ErrLeadEmailExists
	// on a duplicate email within the owner.
	Update(ctx context.Context, lead *entity.Lead) error

	// Delete removes the owner's lead. Returns domain.ErrNotFound when nothing matched.
	Delete(ctx context.Context, ownerID, id string) error
}

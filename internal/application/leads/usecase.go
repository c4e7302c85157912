// Package leads implements the lead CRUD and filtered listing usecases.
package leads

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/leads-api/internal/application/dto"
	"github.com/jhoicas/leads-api/internal/domain"
	"github.com/jhoicas/leads-api/internal/domain/entity"
	"github.com/jhoicas/leads-api/internal/domain/leadfilter"
	"github.com/jhoicas/leads-api/internal/domain/repository"
)

const storeTimeout = 5 * time.Second

// reportMaxRows caps the PDF export to keep the document bounded.
const reportMaxRows = 500

// ReportGenerator renders a leads report document.
type ReportGenerator interface {
	GenerateLeadsReport(ctx context.Context, ownerName string, items []*entity.Lead, total int) ([]byte, error)
}

// UseCase lead CRUD and listing, always scoped to the calling owner.
type UseCase struct {
	leads  repository.LeadRepository
	report ReportGenerator
}

// NewUseCase builds the leads usecase.
func NewUseCase(leads repository.LeadRepository, report ReportGenerator) *UseCase {
	return &UseCase{leads: leads, report: report}
}

// Create persists a new lead for ownerID. The FindByOwnerAndEmail pre-check
// fails fast with a friendly duplicate error; the (user_id, email) unique
// index resolves the remaining race, and the repository maps its violation to
// the same domain.ErrLeadEmailExists.
func (uc *UseCase) Create(ctx context.Context, ownerID string, in dto.CreateLeadRequest) (*entity.Lead, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}

	now := time.Now()
	lead := &entity.Lead{
		ID:             uuid.New().String(),
		UserID:         ownerID,
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		Email:          in.Email,
		Phone:          in.Phone,
		Company:        in.Company,
		City:           in.City,
		State:          in.State,
		Source:         entity.LeadSource(in.Source),
		Status:         entity.StatusNew,
		Score:          *in.Score,
		LeadValue:      *in.LeadValue,
		LastActivityAt: in.LastActivityAt,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if in.Status != "" {
		lead.Status = entity.LeadStatus(in.Status)
	}
	if in.IsQualified != nil {
		lead.IsQualified = *in.IsQualified
	}
	if err := lead.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	existing, err := uc.leads.FindByOwnerAndEmail(ctx, ownerID, lead.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrLeadEmailExists
	}
	if err := uc.leads.Create(ctx, lead); err != nil {
		return nil, err
	}
	return lead, nil
}

// List compiles the filter parameters, runs the page query and returns the
// page plus pagination metadata. params is the full query-parameter map; page
// and limit are picked out of it here.
func (uc *UseCase) List(ctx context.Context, ownerID string, params map[string][]string) (*dto.LeadListResponse, error) {
	filter, err := leadfilter.Compile(params, ownerID)
	if err != nil {
		return nil, err
	}
	page := NewPage(firstValue(params, "page"), firstValue(params, "limit"))

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	items, total, err := uc.leads.List(ctx, filter, page.Limit, page.Skip())
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*entity.Lead{}
	}
	return &dto.LeadListResponse{
		Data:       items,
		Page:       page.Page,
		Limit:      page.Limit,
		Total:      total,
		TotalPages: page.TotalPages(total),
	}, nil
}

// Get returns the owner's lead. Absent and not-owned are the same ErrNotFound.
func (uc *UseCase) Get(ctx context.Context, ownerID, id string) (*entity.Lead, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	return uc.leads.GetByID(ctx, ownerID, id)
}

// Update applies the present fields of in onto the owner's lead. Owner and id
// never change; an email change colliding with another lead of the same owner
// is a duplicate error.
func (uc *UseCase) Update(ctx context.Context, ownerID, id string, in dto.UpdateLeadRequest) (*entity.Lead, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	lead, err := uc.leads.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	applyString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	applyString(&lead.FirstName, in.FirstName)
	applyString(&lead.LastName, in.LastName)
	applyString(&lead.Phone, in.Phone)
	applyString(&lead.Company, in.Company)
	applyString(&lead.City, in.City)
	applyString(&lead.State, in.State)
	emailChanged := false
	if in.Email != nil && *in.Email != lead.Email {
		lead.Email = *in.Email
		emailChanged = true
	}
	if in.Source != nil {
		lead.Source = entity.LeadSource(*in.Source)
	}
	if in.Status != nil {
		lead.Status = entity.LeadStatus(*in.Status)
	}
	if in.Score != nil {
		lead.Score = *in.Score
	}
	if in.LeadValue != nil {
		lead.LeadValue = *in.LeadValue
	}
	if in.LastActivityAt != nil {
		lead.LastActivityAt = in.LastActivityAt
	}
	if in.IsQualified != nil {
		lead.IsQualified = *in.IsQualified
	}
	lead.UpdatedAt = time.Now()

	if err := lead.Validate(); err != nil {
		return nil, err
	}
	if emailChanged {
		other, err := uc.leads.FindByOwnerAndEmail(ctx, ownerID, lead.Email)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != lead.ID {
			return nil, domain.ErrLeadEmailExists
		}
	}
	if err := uc.leads.Update(ctx, lead); err != nil {
		return nil, err
	}
	return lead, nil
}

// Delete removes the owner's lead; deleting it again is ErrNotFound.
func (uc *UseCase) Delete(ctx context.Context, ownerID, id string) error {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	return uc.leads.Delete(ctx, ownerID, id)
}

// Report renders a PDF of the caller's leads under the same filter grammar as
// List, capped at the first reportMaxRows matches in listing order.
func (uc *UseCase) Report(ctx context.Context, ownerID, ownerName string, params map[string][]string) ([]byte, error) {
	filter, err := leadfilter.Compile(params, ownerID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	items, total, err := uc.leads.List(ctx, filter, reportMaxRows, 0)
	if err != nil {
		return nil, err
	}
	return uc.report.GenerateLeadsReport(ctx, ownerName, items, total)
}

func firstValue(params map[string][]string, key string) string {
	if vs := params[key]; len(vs) > 0 {
		return vs[0]
	}
	return ""
}

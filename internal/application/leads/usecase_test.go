package leads_test

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/leads-api/internal/application/dto"
	"github.com/jhoicas/leads-api/internal/application/leads"
	"github.com/jhoicas/leads-api/internal/domain"
	"github.com/jhoicas/leads-api/internal/domain/entity"
	"github.com/jhoicas/leads-api/internal/domain/leadfilter"
)

// memLeads is an in-memory LeadRepository. It enforces the same (user_id,
// email) uniqueness and owner scoping contract as the PostgreSQL adapter.
type memLeads struct {
	byID map[string]*entity.Lead
}

func newMemLeads() *memLeads {
	return &memLeads{byID: make(map[string]*entity.Lead)}
}

func (m *memLeads) Create(ctx context.Context, lead *entity.Lead) error {
	for _, l := range m.byID {
		if l.UserID == lead.UserID && l.Email == lead.Email {
			return domain.ErrLeadEmailExists
		}
	}
	cp := *lead
	m.byID[lead.ID] = &cp
	return nil
}

func (m *memLeads) FindByOwnerAndEmail(ctx context.Context, ownerID, email string) (*entity.Lead, error) {
	for _, l := range m.byID {
		if l.UserID == ownerID && l.Email == email {
			cp := *l
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memLeads) GetByID(ctx context.Context, ownerID, id string) (*entity.Lead, error) {
	l, ok := m.byID[id]
	if !ok || l.UserID != ownerID {
		return nil, domain.ErrNotFound
	}
	cp := *l
	return &cp, nil
}

func (m *memLeads) List(ctx context.Context, f leadfilter.Filter, limit, offset int) ([]*entity.Lead, int, error) {
	var matched []*entity.Lead
	for _, l := range m.byID {
		if l.UserID == f.OwnerID {
			cp := *l
			matched = append(matched, &cp)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})
	total := len(matched)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

func (m *memLeads) Update(ctx context.Context, lead *entity.Lead) error {
	existing, ok := m.byID[lead.ID]
	if !ok || existing.UserID != lead.UserID {
		return domain.ErrNotFound
	}
	for _, l := range m.byID {
		if l.ID != lead.ID && l.UserID == lead.UserID && l.Email == lead.Email {
			return domain.ErrLeadEmailExists
		}
	}
	cp := *lead
	m.byID[lead.ID] = &cp
	return nil
}

func (m *memLeads) Delete(ctx context.Context, ownerID, id string) error {
	l, ok := m.byID[id]
	if !ok || l.UserID != ownerID {
		return domain.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

// noReport panics if a CRUD test reaches the report generator.
type noReport struct{}

func (noReport) GenerateLeadsReport(ctx context.Context, ownerName string, items []*entity.Lead, total int) ([]byte, error) {
	panic("report generator should not be called")
}

const (
	ownerA = "owner-a"
	ownerB = "owner-b"
)

func intPtr(n int) *int                      { return &n }
func strPtr(s string) *string                { return &s }
func decPtr(d decimal.Decimal) *decimal.Decimal { return &d }

func createReq(email string) dto.CreateLeadRequest {
	return dto.CreateLeadRequest{
		FirstName: "Laura",
		LastName:  "Mendez",
		Email:     email,
		Phone:     "+57 300 1234567",
		Company:   "Acme Corp",
		City:      "Bogota",
		State:     "Cundinamarca",
		Source:    "website",
		Score:     intPtr(50),
		LeadValue: decPtr(decimal.NewFromInt(2500)),
	}
}

func TestCreate_DefaultsAndPersistence(t *testing.T) {
	store := newMemLeads()
	uc := leads.NewUseCase(store, noReport{})

	lead, err := uc.Create(context.Background(), ownerA, createReq("laura@acme.test"))
	require.NoError(t, err)

	assert.NotEmpty(t, lead.ID)
	assert.Equal(t, ownerA, lead.UserID)
	assert.Equal(t, entity.StatusNew, lead.Status)
	assert.False(t, lead.IsQualified)
	assert.Equal(t, 50, lead.Score)
	assert.True(t, lead.LeadValue.Equal(decimal.NewFromInt(2500)))

	stored, err := store.GetByID(context.Background(), ownerA, lead.ID)
	require.NoError(t, err)
	assert.Equal(t, "laura@acme.test", stored.Email)
}

func TestCreate_DuplicateEmailSameOwner(t *testing.T) {
	uc := leads.NewUseCase(newMemLeads(), noReport{})

	_, err := uc.Create(context.Background(), ownerA, createReq("laura@acme.test"))
	require.NoError(t, err)

	_, err = uc.Create(context.Background(), ownerA, createReq("laura@acme.test"))
	assert.ErrorIs(t, err, domain.ErrLeadEmailExists)
}

// The same email is fine under a different owner: uniqueness is per owner.
func TestCreate_SameEmailDifferentOwner(t *testing.T) {
	uc := leads.NewUseCase(newMemLeads(), noReport{})

	_, err := uc.Create(context.Background(), ownerA, createReq("laura@acme.test"))
	require.NoError(t, err)

	_, err = uc.Create(context.Background(), ownerB, createReq("laura@acme.test"))
	assert.NoError(t, err)
}

func TestCreate_InvalidInput(t *testing.T) {
	uc := leads.NewUseCase(newMemLeads(), noReport{})

	in := createReq("laura@acme.test")
	in.Source = "carrier_pigeon"
	_, err := uc.Create(context.Background(), ownerA, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = createReq("laura@acme.test")
	in.Score = intPtr(150)
	_, err = uc.Create(context.Background(), ownerA, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGet_CrossOwnerIsNotFound(t *testing.T) {
	uc := leads.NewUseCase(newMemLeads(), noReport{})

	lead, err := uc.Create(context.Background(), ownerA, createReq("laura@acme.test"))
	require.NoError(t, err)

	_, err = uc.Get(context.Background(), ownerB, lead.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := uc.Get(context.Background(), ownerA, lead.ID)
	require.NoError(t, err)
	assert.Equal(t, lead.ID, got.ID)
}

func TestUpdate_PartialPatch(t *testing.T) {
	uc := leads.NewUseCase(newMemLeads(), noReport{})

	lead, err := uc.Create(context.Background(), ownerA, createReq("laura@acme.test"))
	require.NoError(t, err)

	got, err := uc.Update(context.Background(), ownerA, lead.ID, dto.UpdateLeadRequest{
		Status: strPtr("contacted"),
		Score:  intPtr(80),
	})
	require.NoError(t, err)

	assert.Equal(t, entity.StatusContacted, got.Status)
	assert.Equal(t, 80, got.Score)
	// Untouched fields survive.
	assert.Equal(t, "laura@acme.test", got.Email)
	assert.Equal(t, "Acme Corp", got.Company)
}

func TestUpdate_EmailConflictWithinOwner(t *testing.T) {
	uc := leads.NewUseCase(newMemLeads(), noReport{})

	_, err := uc.Create(context.Background(), ownerA, createReq("first@acme.test"))
	require.NoError(t, err)
	second, err := uc.Create(context.Background(), ownerA, createReq("second@acme.test"))
	require.NoError(t, err)

	_, err = uc.Update(context.Background(), ownerA, second.ID, dto.UpdateLeadRequest{
		Email: strPtr("first@acme.test"),
	})
	assert.ErrorIs(t, err, domain.ErrLeadEmailExists)

	// Re-submitting the lead's own email is not a conflict.
	_, err = uc.Update(context.Background(), ownerA, second.ID, dto.UpdateLeadRequest{
		Email: strPtr("second@acme.test"),
	})
	assert.NoError(t, err)
}

func TestUpdate_CrossOwnerIsNotFound(t *testing.T) {
	uc := leads.NewUseCase(newMemLeads(), noReport{})

	lead, err := uc.Create(context.Background(), ownerA, createReq("laura@acme.test"))
	require.NoError(t, err)

	_, err = uc.Update(context.Background(), ownerB, lead.ID, dto.UpdateLeadRequest{
		Status: strPtr("won"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete_SecondDeleteIsNotFound(t *testing.T) {
	uc := leads.NewUseCase(newMemLeads(), noReport{})

	lead, err := uc.Create(context.Background(), ownerA, createReq("laura@acme.test"))
	require.NoError(t, err)

	require.NoError(t, uc.Delete(context.Background(), ownerA, lead.ID))
	assert.ErrorIs(t, uc.Delete(context.Background(), ownerA, lead.ID), domain.ErrNotFound)
}

func TestList_PaginationMetadata(t *testing.T) {
	store := newMemLeads()
	uc := leads.NewUseCase(store, noReport{})

	base := time.Now()
	for i := 0; i < 25; i++ {
		lead := &entity.Lead{
			ID:        fmt.Sprintf("lead-%02d", i),
			UserID:    ownerA,
			FirstName: "Laura",
			LastName:  "Mendez",
			Email:     fmt.Sprintf("lead%d@acme.test", i),
			Phone:     "+57 300 1234567",
			Company:   "Acme Corp",
			City:      "Bogota",
			State:     "Cundinamarca",
			Source:    entity.SourceWebsite,
			Status:    entity.StatusNew,
			Score:     10,
			LeadValue: decimal.NewFromInt(100),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
			UpdatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, store.Create(context.Background(), lead))
	}

	out, err := uc.List(context.Background(), ownerA, map[string][]string{
		"page":  {"2"},
		"limit": {"10"},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, out.Page)
	assert.Equal(t, 10, out.Limit)
	assert.Equal(t, 25, out.Total)
	assert.Equal(t, 3, out.TotalPages)
	assert.Len(t, out.Data, 10)
	// Newest first: page 2 starts at the 11th newest lead.
	assert.Equal(t, "lead-14", out.Data[0].ID)
}

func TestList_EmptyPageIsEmptySliceNotNil(t *testing.T) {
	uc := leads.NewUseCase(newMemLeads(), noReport{})

	out, err := uc.List(context.Background(), ownerA, map[string][]string{})
	require.NoError(t, err)

	assert.NotNil(t, out.Data)
	assert.Len(t, out.Data, 0)
	assert.Equal(t, 0, out.Total)
	assert.Equal(t, 0, out.TotalPages)
}

func TestList_BadFilterValueIsFieldError(t *testing.T) {
	uc := leads.NewUseCase(newMemLeads(), noReport{})

	_, err := uc.List(context.Background(), ownerA, map[string][]string{
		"score_gt": {"banana"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestList_ScopedToOwner(t *testing.T) {
	uc := leads.NewUseCase(newMemLeads(), noReport{})

	_, err := uc.Create(context.Background(), ownerA, createReq("a@acme.test"))
	require.NoError(t, err)
	_, err = uc.Create(context.Background(), ownerB, createReq("b@acme.test"))
	require.NoError(t, err)

	out, err := uc.List(context.Background(), ownerA, map[string][]string{})
	require.NoError(t, err)
	require.Len(t, out.Data, 1)
	assert.Equal(t, ownerA, out.Data[0].UserID)
}

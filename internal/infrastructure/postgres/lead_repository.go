package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/leads-api/internal/domain"
	"github.com/jhoicas/leads-api/internal/domain/entity"
	"github.com/jhoicas/leads-api/internal/domain/leadfilter"
	"github.com/jhoicas/leads-api/internal/domain/repository"
)

var _ repository.LeadRepository = (*LeadRepo)(nil)

const leadColumns = `id, user_id, first_name, last_name, email, phone, company, city, state,
		source, status, score, lead_value, last_activity_at, is_qualified, created_at, updated_at`

// LeadRepo implementation of the LeadRepository port over PostgreSQL.
type LeadRepo struct {
	q Querier
}

// NewLeadRepository builds the persistence adapter for leads. Pass a pool or tx (Querier).
func NewLeadRepository(q Querier) *LeadRepo {
	return &LeadRepo{q: q}
}

// Create persists a new lead. The (user_id, email) unique index is the
// authoritative duplicate guard behind the usecase pre-check; its violation
// maps to domain.ErrLeadEmailExists, never a generic error.
func (r *LeadRepo) Create(ctx context.Context, lead *entity.Lead) error {
	query := `
		INSERT INTO leads (` + leadColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(ctx, query,
		lead.ID, lead.UserID, lead.FirstName, lead.LastName, lead.Email, lead.Phone,
		lead.Company, lead.City, lead.State, lead.Source, lead.Status, lead.Score,
		lead.LeadValue, lead.LastActivityAt, lead.IsQualified, lead.CreatedAt, lead.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrLeadEmailExists
		}
		return fmt.Errorf("insert lead: %w", err)
	}
	return nil
}

// FindByOwnerAndEmail returns the owner's lead with that email, or (nil, nil).
func (r *LeadRepo) FindByOwnerAndEmail(ctx context.Context, ownerID, email string) (*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE user_id = $1 AND email = $2`
	var l entity.Lead
	err := scanLead(r.q.QueryRow(ctx, query, ownerID, email), &l)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lead by email: %w", err)
	}
	return &l, nil
}

// GetByID returns the owner's lead; a missing row and another owner's row are
// the same domain.ErrNotFound.
func (r *LeadRepo) GetByID(ctx context.Context, ownerID, id string) (*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE user_id = $1 AND id = $2`
	var l entity.Lead
	err := scanLead(r.q.QueryRow(ctx, query, ownerID, id), &l)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get lead: %w", err)
	}
	return &l, nil
}

// List runs the compiled predicate and returns one page in listing order
// (created_at DESC, id DESC: total order, so pages never overlap) plus the
// total count of matching rows.
func (r *LeadRepo) List(ctx context.Context, f leadfilter.Filter, limit, offset int) ([]*entity.Lead, int, error) {
	where, args := buildLeadPredicate(f)

	var total int
	countQuery := `SELECT count(*) FROM leads WHERE ` + where
	if err := r.q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count leads: %w", err)
	}

	pageQuery := fmt.Sprintf(`SELECT `+leadColumns+` FROM leads WHERE %s
		ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`,
		where, len(args)+1, len(args)+2)
	rows, err := r.q.Query(ctx, pageQuery, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	var list []*entity.Lead
	for rows.Next() {
		var l entity.Lead
		if err := scanLead(rows, &l); err != nil {
			return nil, 0, fmt.Errorf("scan lead: %w", err)
		}
		list = append(list, &l)
	}
	return list, total, rows.Err()
}

// Update replaces the mutable fields, scoped to the owner. Zero affected rows
// is domain.ErrNotFound (absent or not owned, indistinguishable).
func (r *LeadRepo) Update(ctx context.Context, lead *entity.Lead) error {
	query := `
		UPDATE leads SET first_name = $3, last_name = $4, email = $5, phone = $6,
			company = $7, city = $8, state = $9, source = $10, status = $11,
			score = $12, lead_value = $13, last_activity_at = $14, is_qualified = $15,
			updated_at = $16
		WHERE user_id = $1 AND id = $2`
	cmd, err := r.q.Exec(ctx, query,
		lead.UserID, lead.ID, lead.FirstName, lead.LastName, lead.Email, lead.Phone,
		lead.Company, lead.City, lead.State, lead.Source, lead.Status, lead.Score,
		lead.LeadValue, lead.LastActivityAt, lead.IsQualified, lead.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrLeadEmailExists
		}
		return fmt.Errorf("update lead: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes the owner's lead. Zero affected rows is domain.ErrNotFound.
func (r *LeadRepo) Delete(ctx context.Context, ownerID, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM leads WHERE user_id = $1 AND id = $2`, ownerID, id)
	if err != nil {
		return fmt.Errorf("delete lead: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanLead(row pgx.Row, l *entity.Lead) error {
	return row.Scan(
		&l.ID, &l.UserID, &l.FirstName, &l.LastName, &l.Email, &l.Phone,
		&l.Company, &l.City, &l.State, &l.Source, &l.Status, &l.Score,
		&l.LeadValue, &l.LastActivityAt, &l.IsQualified, &l.CreatedAt, &l.UpdatedAt,
	)
}

// leadColumn whitelists the filterable fields. The compiler only emits these
// names, but SQL identifiers are never interpolated from input without this map.
var leadColumn = map[string]string{
	"email":            "email",
	"company":          "company",
	"city":             "city",
	"first_name":       "first_name",
	"last_name":        "last_name",
	"state":            "state",
	"status":           "status",
	"source":           "source",
	"score":            "score",
	"lead_value":       "lead_value",
	"created_at":       "created_at",
	"last_activity_at": "last_activity_at",
}

// buildLeadPredicate renders a compiled filter as a WHERE clause with
// positional args. The owner constraint is always the first conjunct.
func buildLeadPredicate(f leadfilter.Filter) (string, []any) {
	clauses := []string{"user_id = $1"}
	args := []any{f.OwnerID}

	add := func(clause string, arg any) {
		args = append(args, arg)
		clauses = append(clauses, fmt.Sprintf(clause, len(args)))
	}

	for _, c := range f.Text {
		col, ok := leadColumn[c.Field]
		if !ok {
			continue
		}
		if c.Exact {
			add(col+" = $%d", c.Value)
		} else {
			add(col+" ILIKE $%d", "%"+escapeLike(c.Value)+"%")
		}
	}
	for _, c := range f.Enum {
		col, ok := leadColumn[c.Field]
		if !ok {
			continue
		}
		if len(c.Values) == 1 {
			add(col+" = $%d", c.Values[0])
		} else {
			add(col+" = ANY($%d)", c.Values)
		}
	}
	for _, c := range f.Number {
		col, ok := leadColumn[c.Field]
		if !ok {
			continue
		}
		if c.Eq != nil {
			add(col+" = $%d", *c.Eq)
		}
		if c.Gt != nil {
			add(col+" > $%d", *c.Gt)
		}
		if c.Lt != nil {
			add(col+" < $%d", *c.Lt)
		}
		if c.Gte != nil {
			add(col+" >= $%d", *c.Gte)
		}
		if c.Lte != nil {
			add(col+" <= $%d", *c.Lte)
		}
	}
	for _, c := range f.Date {
		col, ok := leadColumn[c.Field]
		if !ok {
			continue
		}
		if c.Gt != nil {
			add(col+" > $%d", *c.Gt)
		}
		if c.Gte != nil {
			add(col+" >= $%d", *c.Gte)
		}
		if c.Lt != nil {
			add(col+" < $%d", *c.Lt)
		}
		if c.Lte != nil {
			add(col+" <= $%d", *c.Lte)
		}
	}
	if f.IsQualified != nil {
		add("is_qualified = $%d", *f.IsQualified)
	}

	return strings.Join(clauses, " AND "), args
}

// escapeLike neutralizes LIKE metacharacters so a filter value is matched
// literally inside the %...% pattern.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

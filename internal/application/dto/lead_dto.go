package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/leads-api/internal/domain/entity"
)

// CreateLeadRequest body of POST /api/leads. Status defaults to "new" and
// is_qualified to false when omitted.
type CreateLeadRequest struct {
	FirstName      string           `json:"first_name" validate:"required"`
	LastName       string           `json:"last_name" validate:"required"`
	Email          string           `json:"email" validate:"required,email"`
	Phone          string           `json:"phone" validate:"required"`
	Company        string           `json:"company" validate:"required"`
	City           string           `json:"city" validate:"required"`
	State          string           `json:"state" validate:"required"`
	Source         string           `json:"source" validate:"required,oneof=website facebook_ads google_ads referral events other"`
	Status         string           `json:"status" validate:"omitempty,oneof=new contacted qualified lost won"`
	Score          *int             `json:"score" validate:"required,min=0,max=100"`
	LeadValue      *decimal.Decimal `json:"lead_value" validate:"required"`
	LastActivityAt *time.Time       `json:"last_activity_at"`
	IsQualified    *bool            `json:"is_qualified"`
}

// UpdateLeadRequest body of PUT /api/leads/:id. All fields are optional;
// only the ones present replace the stored values. Owner and id are immutable.
type UpdateLeadRequest struct {
	FirstName      *string          `json:"first_name"`
	LastName       *string          `json:"last_name"`
	Email          *string          `json:"email" validate:"omitempty,email"`
	Phone          *string          `json:"phone"`
	Company        *string          `json:"company"`
	City           *string          `json:"city"`
	State          *string          `json:"state"`
	Source         *string          `json:"source" validate:"omitempty,oneof=website facebook_ads google_ads referral events other"`
	Status         *string          `json:"status" validate:"omitempty,oneof=new contacted qualified lost won"`
	Score          *int             `json:"score" validate:"omitempty,min=0,max=100"`
	LeadValue      *decimal.Decimal `json:"lead_value"`
	LastActivityAt *time.Time       `json:"last_activity_at"`
	IsQualified    *bool            `json:"is_qualified"`
}

// LeadListResponse body of GET /api/leads: one page plus pagination metadata.
// Total counts every matching row, not just the page.
type LeadListResponse struct {
	Data       []*entity.Lead `json:"data"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	Total      int            `json:"total"`
	TotalPages int            `json:"totalPages"`
}

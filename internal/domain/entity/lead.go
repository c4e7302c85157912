package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/leads-api/internal/domain"
)

// LeadSource is the closed set of acquisition channels.
type LeadSource string

const (
	SourceWebsite     LeadSource = "website"
	SourceFacebookAds LeadSource = "facebook_ads"
	SourceGoogleAds   LeadSource = "google_ads"
	SourceReferral    LeadSource = "referral"
	SourceEvents      LeadSource = "events"
	SourceOther       LeadSource = "other"
)

// Sources lists every valid LeadSource.
func Sources() []LeadSource {
	return []LeadSource{SourceWebsite, SourceFacebookAds, SourceGoogleAds, SourceReferral, SourceEvents, SourceOther}
}

// Valid reports whether s is a member of the closed set.
func (s LeadSource) Valid() bool {
	switch s {
	case SourceWebsite, SourceFacebookAds, SourceGoogleAds, SourceReferral, SourceEvents, SourceOther:
		return true
	}
	return false
}

// LeadStatus is the closed set of pipeline states.
type LeadStatus string

const (
	StatusNew       LeadStatus = "new"
	StatusContacted LeadStatus = "contacted"
	StatusQualified LeadStatus = "qualified"
	StatusLost      LeadStatus = "lost"
	StatusWon       LeadStatus = "won"
)

// Statuses lists every valid LeadStatus.
func Statuses() []LeadStatus {
	return []LeadStatus{StatusNew, StatusContacted, StatusQualified, StatusLost, StatusWon}
}

// Valid reports whether s is a member of the closed set.
func (s LeadStatus) Valid() bool {
	switch s {
	case StatusNew, StatusContacted, StatusQualified, StatusLost, StatusWon:
		return true
	}
	return false
}

// Lead is a sales-prospect contact owned by a single user. (UserID, Email) is
// unique: one user cannot hold two leads with the same email, but two users
// can each hold a lead with it.
type Lead struct {
	ID             string          `json:"id"`
	UserID         string          `json:"user_id"`
	FirstName      string          `json:"first_name"`
	LastName       string          `json:"last_name"`
	Email          string          `json:"email"`
	Phone          string          `json:"phone"`
	Company        string          `json:"company"`
	City           string          `json:"city"`
	State          string          `json:"state"`
	Source         LeadSource      `json:"source"`
	Status         LeadStatus      `json:"status"`
	Score          int             `json:"score"`
	LeadValue      decimal.Decimal `json:"lead_value"`
	LastActivityAt *time.Time      `json:"last_activity_at"`
	IsQualified    bool            `json:"is_qualified"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// Validate checks the entity invariants before persistence. It is the last
// line of defense behind the DTO-level validation.
func (l *Lead) Validate() error {
	if l.UserID == "" {
		return domain.NewFieldError("user_id", "is required")
	}
	required := []struct{ field, value string }{
		{"first_name", l.FirstName},
		{"last_name", l.LastName},
		{"email", l.Email},
		{"phone", l.Phone},
		{"company", l.Company},
		{"city", l.City},
		{"state", l.State},
	}
	for _, r := range required {
		if r.value == "" {
			return domain.NewFieldError(r.field, "is required")
		}
	}
	if !l.Source.Valid() {
		return domain.NewFieldError("source", "must be one of: website, facebook_ads, google_ads, referral, events, other")
	}
	if !l.Status.Valid() {
		return domain.NewFieldError("status", "must be one of: new, contacted, qualified, lost, won")
	}
	if l.Score < 0 || l.Score > 100 {
		return domain.NewFieldError("score", "must be between 0 and 100")
	}
	if l.LeadValue.IsNegative() {
		return domain.NewFieldError("lead_value", "must not be negative")
	}
	return nil
}

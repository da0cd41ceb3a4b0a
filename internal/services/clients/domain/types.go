// Package domain holds the client entity, filter/sort vocabulary, and bulk outcome types
package domain

import (
	"strconv"
	"time"
)

// Client is the persisted client record plus the activity fields maintained
// by database triggers. This code never writes TotalSpent, TotalVisits or
// LastVisitDate; they arrive read-only with every fetch
type Client struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Phone    string     `json:"phone"`
	Birthday *time.Time `json:"birthday,omitempty"`
	Notes    string     `json:"notes,omitempty"`

	// ReferrerID points at another client, never at itself
	ReferrerID *string `json:"referrer_id,omitempty"`

	WhatsappLink  string `json:"whatsapp_link,omitempty"`
	FacebookLink  string `json:"facebook_link,omitempty"`
	InstagramLink string `json:"instagram_link,omitempty"`
	TiktokLink    string `json:"tiktok_link,omitempty"`

	// TotalSpent is kept as the raw text the store hands back. Legacy rows
	// carry values like "150.00" or "" so comparisons go through SpentAmount
	TotalSpent    string     `json:"total_spent"`
	TotalVisits   int        `json:"total_visits"`
	LastVisitDate *time.Time `json:"last_visit_date,omitempty"`

	CreatedByUserID *string   `json:"created_by_user_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`

	// TagIDs is the resolved tag assignment set, loaded with the client
	TagIDs []string `json:"tag_ids,omitempty"`
}

// SpentAmount coerces TotalSpent to a number. Anything unparseable counts as 0
func (c Client) SpentAmount() float64 {
	if c.TotalSpent == "" {
		return 0
	}
	v, err := strconv.ParseFloat(c.TotalSpent, 64)
	if err != nil {
		return 0
	}
	return v
}

// Preset names one of the fixed list filters
type Preset string

// Preset values
const (
	PresetAll        Preset = "all"
	PresetWithVisits Preset = "with_visits"
	PresetWithSales  Preset = "with_sales"
	PresetReferred   Preset = "referred"
)

// Matches reports whether a client passes the preset predicate
func (p Preset) Matches(c Client) bool {
	switch p {
	case PresetWithVisits:
		return c.TotalVisits > 0
	case PresetWithSales:
		return c.SpentAmount() > 0
	case PresetReferred:
		return c.ReferrerID != nil
	default:
		return true
	}
}

// SortField names a sortable column
type SortField string

// SortField values
const (
	SortByName          SortField = "name"
	SortByTotalSpent    SortField = "total_spent"
	SortByTotalVisits   SortField = "total_visits"
	SortByLastVisitDate SortField = "last_visit_date"
	SortByCreatedAt     SortField = "created_at"
)

// Valid reports whether f is one of the sortable columns
func (f SortField) Valid() bool {
	switch f {
	case SortByName, SortByTotalSpent, SortByTotalVisits, SortByLastVisitDate, SortByCreatedAt:
		return true
	}
	return false
}

// SortDirection is asc or desc
type SortDirection string

// SortDirection values
const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Flip returns the opposite direction
func (d SortDirection) Flip() SortDirection {
	if d == SortDesc {
		return SortAsc
	}
	return SortDesc
}

// Criteria is the full filter state. All fields combine with AND
type Criteria struct {
	Preset Preset
	Search string

	// TagIDs is what the user picked; TagClientIDs is the externally resolved
	// membership set. When TagIDs is non-empty but TagClientIDs is still empty
	// the resolution is in flight and the tag filter is skipped (fail open)
	TagIDs       []string
	TagClientIDs []string
}

// PresetCounts are the per-preset badge numbers over the unfiltered collection
type PresetCounts struct {
	All        int `json:"all"`
	WithVisits int `json:"with_visits"`
	WithSales  int `json:"with_sales"`
	Referred   int `json:"referred"`
}

// BulkStatus classifies a bulk operation result
type BulkStatus string

// BulkStatus values
const (
	BulkFull    BulkStatus = "succeeded"
	BulkPartial BulkStatus = "partially_succeeded"
	BulkNone    BulkStatus = "none_affected"
)

// DeleteOutcome reports a batched delete. A partial result is a value here,
// never an error; callers build their own status message from the counts
type DeleteOutcome struct {
	Requested int        `json:"requested"`
	Affected  int        `json:"affected"`
	Status    BulkStatus `json:"status"`

	// UndoHint is informational only. Deletion is already committed by the
	// store; the hint just tells the caller an undo toast may be shown
	UndoHint bool `json:"undo_hint,omitempty"`
}

// ItemFailure is one failed item inside an otherwise independent batch
type ItemFailure struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

// DuplicateOutcome reports per-item duplication results. Items are independent;
// one failure never rolls back the others
type DuplicateOutcome struct {
	Requested int           `json:"requested"`
	Created   []Client      `json:"created,omitempty"`
	Failures  []ItemFailure `json:"failures,omitempty"`
	Status    BulkStatus    `json:"status"`
}

// ReassignOutcome reports a batched referrer update
type ReassignOutcome struct {
	Requested int        `json:"requested"`
	Status    BulkStatus `json:"status"`
}

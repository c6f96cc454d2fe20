package model

import (
	"fmt"
	"strings"

	"github.com/remedian-lab/remedian/pkg/domain/types"
)

// previewTruncateLen is the maximum rune length of long text fields in
// preview rendering
const previewTruncateLen = 200

func truncateForPreview(s string) string {
	runes := []rune(s)
	if len(runes) <= previewTruncateLen {
		return s
	}
	return string(runes[:previewTruncateLen]) + "..."
}

// writeCategory renders the category tier chain ("Tier1 > Tier2 > Tier3")
func writeCategory(sb *strings.Builder, tier1, tier2, tier3 string) {
	if tier1 == "" {
		return
	}
	sb.WriteString("**Category:** ")
	sb.WriteString(tier1)
	if tier2 != "" {
		sb.WriteString(" > ")
		sb.WriteString(tier2)
	}
	if tier3 != "" {
		sb.WriteString(" > ")
		sb.WriteString(tier3)
	}
	sb.WriteString("\n")
}

func writeRequester(sb *strings.Builder, first, last string) {
	if first == "" && last == "" {
		return
	}
	sb.WriteString("**Requester:** ")
	sb.WriteString(strings.TrimSpace(first + " " + last))
	sb.WriteString("\n")
}

// IncidentCreateRequest carries the fields for creating a new incident in
// the backing ITSM system. Summary, description, impact, and urgency are
// required; the remaining fields are optional.
type IncidentCreateRequest struct {
	Summary     string
	Description string
	Impact      types.Impact
	Urgency     types.Urgency

	RequesterFirstName string
	RequesterLastName  string
	RequesterCompany   string
	CategoryTier1      string
	CategoryTier2      string
	CategoryTier3      string
	AssignedGroup      string
	ServiceType        string
}

// ActionType returns the action type of the request
func (r *IncidentCreateRequest) ActionType() types.ActionType {
	return types.ActionTypeIncidentCreate
}

// Validate checks required fields and enum ranges
func (r *IncidentCreateRequest) Validate() error {
	if r.Summary == "" {
		return fmt.Errorf("summary is required")
	}
	if r.Description == "" {
		return fmt.Errorf("description is required")
	}
	if !r.Impact.IsValid() {
		return fmt.Errorf("impact must be between 1 (Extensive) and 4 (Minor), got %d", r.Impact)
	}
	if !r.Urgency.IsValid() {
		return fmt.Errorf("urgency must be between 1 (Critical) and 4 (Low), got %d", r.Urgency)
	}
	return nil
}

// Preview renders the field-by-field confirmation preview. Field ordering
// is stable so prompts stay diffable across releases.
func (r *IncidentCreateRequest) Preview() string {
	var sb strings.Builder
	sb.WriteString("**New Incident Preview**\n\n")
	sb.WriteString("**Summary:** " + r.Summary + "\n\n")
	sb.WriteString("**Description:** " + truncateForPreview(r.Description) + "\n\n")
	sb.WriteString("**Impact:** " + r.Impact.Label() + "\n")
	sb.WriteString("**Urgency:** " + r.Urgency.Label() + "\n")

	writeRequester(&sb, r.RequesterFirstName, r.RequesterLastName)
	writeCategory(&sb, r.CategoryTier1, r.CategoryTier2, r.CategoryTier3)

	if r.AssignedGroup != "" {
		sb.WriteString("**Assigned Group:** " + r.AssignedGroup + "\n")
	}
	if r.ServiceType != "" {
		sb.WriteString("**Service Type:** " + r.ServiceType + "\n")
	}

	return sb.String()
}

// SearchText returns the text used for duplicate similarity search
func (r *IncidentCreateRequest) SearchText() string {
	return r.Summary + " " + r.Description
}

// IncidentUpdateRequest carries an update to an existing incident. All fields
// except the incident number are optional; nil means "leave unchanged".
type IncidentUpdateRequest struct {
	IncidentNumber string

	Summary       *string
	Description   *string
	Impact        *types.Impact
	Urgency       *types.Urgency
	Status        *types.IncidentStatus
	Resolution    *string
	WorkLog       *string
	AssignedGroup *string
	CategoryTier1 *string
	CategoryTier2 *string
	CategoryTier3 *string
}

// ActionType returns the action type of the request
func (r *IncidentUpdateRequest) ActionType() types.ActionType {
	return types.ActionTypeIncidentUpdate
}

// Validate checks the incident number, enum ranges, and that at least one
// field is being updated
func (r *IncidentUpdateRequest) Validate() error {
	if r.IncidentNumber == "" {
		return fmt.Errorf("incident number is required")
	}
	if r.Impact != nil && !r.Impact.IsValid() {
		return fmt.Errorf("impact must be between 1 and 4, got %d", *r.Impact)
	}
	if r.Urgency != nil && !r.Urgency.IsValid() {
		return fmt.Errorf("urgency must be between 1 and 4, got %d", *r.Urgency)
	}
	if r.Status != nil && !r.Status.IsValid() {
		return fmt.Errorf("status must be between 0 (New) and 5 (Closed), got %d", *r.Status)
	}
	if r.Summary == nil && r.Description == nil && r.Impact == nil && r.Urgency == nil &&
		r.Status == nil && r.Resolution == nil && r.WorkLog == nil && r.AssignedGroup == nil &&
		r.CategoryTier1 == nil {
		return fmt.Errorf("at least one field to update is required")
	}
	return nil
}

// Preview renders the update preview, showing only the fields being changed
func (r *IncidentUpdateRequest) Preview() string {
	var sb strings.Builder
	sb.WriteString("**Incident Update Preview**\n\n")
	sb.WriteString("**Incident:** " + r.IncidentNumber + "\n\n")

	if r.Summary != nil {
		sb.WriteString("**Summary:** " + *r.Summary + "\n")
	}
	if r.Description != nil {
		sb.WriteString("**Description:** " + truncateForPreview(*r.Description) + "\n")
	}
	if r.Impact != nil {
		sb.WriteString("**Impact:** " + r.Impact.Label() + "\n")
	}
	if r.Urgency != nil {
		sb.WriteString("**Urgency:** " + r.Urgency.Label() + "\n")
	}
	if r.Status != nil {
		sb.WriteString("**Status:** " + r.Status.Label() + "\n")
	}
	if r.Resolution != nil {
		sb.WriteString("**Resolution:** " + truncateForPreview(*r.Resolution) + "\n")
	}
	if r.WorkLog != nil {
		sb.WriteString("**Work Log:** " + truncateForPreview(*r.WorkLog) + "\n")
	}
	if r.AssignedGroup != nil {
		sb.WriteString("**Assigned Group:** " + *r.AssignedGroup + "\n")
	}

	var tier1, tier2, tier3 string
	if r.CategoryTier1 != nil {
		tier1 = *r.CategoryTier1
	}
	if r.CategoryTier2 != nil {
		tier2 = *r.CategoryTier2
	}
	if r.CategoryTier3 != nil {
		tier3 = *r.CategoryTier3
	}
	writeCategory(&sb, tier1, tier2, tier3)

	return sb.String()
}

// SearchText returns the text used for duplicate similarity search. Updates
// never trigger duplicate checks, but the payload contract requires it.
func (r *IncidentUpdateRequest) SearchText() string {
	var parts []string
	if r.Summary != nil {
		parts = append(parts, *r.Summary)
	}
	if r.Description != nil {
		parts = append(parts, *r.Description)
	}
	return strings.Join(parts, " ")
}

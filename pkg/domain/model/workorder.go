package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/remedian-lab/remedian/pkg/domain/types"
)

// WorkOrderCreateRequest carries the fields for creating a new work order in
// the backing ITSM system.
type WorkOrderCreateRequest struct {
	Summary     string
	Description string
	Type        types.WorkOrderType
	Priority    types.Priority

	RequesterFirstName string
	RequesterLastName  string
	LocationCompany    string
	CategoryTier1      string
	CategoryTier2      string
	CategoryTier3      string
	AssignedGroup      string
	ScheduledStart     *time.Time
	ScheduledEnd       *time.Time
}

// ActionType returns the action type of the request
func (r *WorkOrderCreateRequest) ActionType() types.ActionType {
	return types.ActionTypeWorkOrderCreate
}

// Validate checks required fields and enum ranges
func (r *WorkOrderCreateRequest) Validate() error {
	if r.Summary == "" {
		return fmt.Errorf("summary is required")
	}
	if r.Description == "" {
		return fmt.Errorf("description is required")
	}
	if !r.Type.IsValid() {
		return fmt.Errorf("work order type must be between 1 (General) and 4 (Project), got %d", r.Type)
	}
	if !r.Priority.IsValid() {
		return fmt.Errorf("priority must be between 1 (Critical) and 4 (Low), got %d", r.Priority)
	}
	if r.ScheduledStart != nil && r.ScheduledEnd != nil && r.ScheduledEnd.Before(*r.ScheduledStart) {
		return fmt.Errorf("scheduled end must not precede scheduled start")
	}
	return nil
}

// Preview renders the field-by-field confirmation preview
func (r *WorkOrderCreateRequest) Preview() string {
	var sb strings.Builder
	sb.WriteString("**New Work Order Preview**\n\n")
	sb.WriteString("**Summary:** " + r.Summary + "\n\n")
	sb.WriteString("**Description:** " + truncateForPreview(r.Description) + "\n\n")
	sb.WriteString("**Type:** " + r.Type.Label() + "\n")
	sb.WriteString("**Priority:** " + r.Priority.Label() + "\n")

	writeRequester(&sb, r.RequesterFirstName, r.RequesterLastName)
	writeCategory(&sb, r.CategoryTier1, r.CategoryTier2, r.CategoryTier3)

	if r.AssignedGroup != "" {
		sb.WriteString("**Assigned Group:** " + r.AssignedGroup + "\n")
	}
	if r.ScheduledStart != nil {
		sb.WriteString("**Scheduled Start:** " + r.ScheduledStart.UTC().Format(time.RFC3339) + "\n")
	}
	if r.ScheduledEnd != nil {
		sb.WriteString("**Scheduled End:** " + r.ScheduledEnd.UTC().Format(time.RFC3339) + "\n")
	}

	return sb.String()
}

// SearchText returns the text used for duplicate similarity search
func (r *WorkOrderCreateRequest) SearchText() string {
	return r.Summary + " " + r.Description
}

// WorkOrderUpdateRequest carries an update to an existing work order. All
// fields except the work order number are optional; nil means "leave
// unchanged".
type WorkOrderUpdateRequest struct {
	WorkOrderNumber string

	Summary       *string
	Description   *string
	Type          *types.WorkOrderType
	Priority      *types.Priority
	AssignedGroup *string
	WorkLog       *string
}

// ActionType returns the action type of the request
func (r *WorkOrderUpdateRequest) ActionType() types.ActionType {
	return types.ActionTypeWorkOrderUpdate
}

// Validate checks the work order number, enum ranges, and that at least one
// field is being updated
func (r *WorkOrderUpdateRequest) Validate() error {
	if r.WorkOrderNumber == "" {
		return fmt.Errorf("work order number is required")
	}
	if r.Type != nil && !r.Type.IsValid() {
		return fmt.Errorf("work order type must be between 1 and 4, got %d", *r.Type)
	}
	if r.Priority != nil && !r.Priority.IsValid() {
		return fmt.Errorf("priority must be between 1 and 4, got %d", *r.Priority)
	}
	if r.Summary == nil && r.Description == nil && r.Type == nil && r.Priority == nil &&
		r.AssignedGroup == nil && r.WorkLog == nil {
		return fmt.Errorf("at least one field to update is required")
	}
	return nil
}

// Preview renders the update preview, showing only the fields being changed
func (r *WorkOrderUpdateRequest) Preview() string {
	var sb strings.Builder
	sb.WriteString("**Work Order Update Preview**\n\n")
	sb.WriteString("**Work Order:** " + r.WorkOrderNumber + "\n\n")

	if r.Summary != nil {
		sb.WriteString("**Summary:** " + *r.Summary + "\n")
	}
	if r.Description != nil {
		sb.WriteString("**Description:** " + truncateForPreview(*r.Description) + "\n")
	}
	if r.Type != nil {
		sb.WriteString("**Type:** " + r.Type.Label() + "\n")
	}
	if r.Priority != nil {
		sb.WriteString("**Priority:** " + r.Priority.Label() + "\n")
	}
	if r.WorkLog != nil {
		sb.WriteString("**Work Log:** " + truncateForPreview(*r.WorkLog) + "\n")
	}
	if r.AssignedGroup != nil {
		sb.WriteString("**Assigned Group:** " + *r.AssignedGroup + "\n")
	}

	return sb.String()
}

// SearchText returns the text used for duplicate similarity search
func (r *WorkOrderUpdateRequest) SearchText() string {
	var parts []string
	if r.Summary != nil {
		parts = append(parts, *r.Summary)
	}
	if r.Description != nil {
		parts = append(parts, *r.Description)
	}
	return strings.Join(parts, " ")
}

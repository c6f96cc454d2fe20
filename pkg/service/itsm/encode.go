package itsm

import (
	"time"

	"github.com/remedian-lab/remedian/pkg/domain/model"
)

// Wire types for the ITSM adapter. Optional fields are omitted when unset so
// that PATCH bodies only carry the fields being changed.

type incidentCreateBody struct {
	Summary            string `json:"summary"`
	Description        string `json:"description"`
	Impact             int    `json:"impact"`
	Urgency            int    `json:"urgency"`
	RequesterFirstName string `json:"requester_first_name,omitempty"`
	RequesterLastName  string `json:"requester_last_name,omitempty"`
	RequesterCompany   string `json:"requester_company,omitempty"`
	CategoryTier1      string `json:"category_tier1,omitempty"`
	CategoryTier2      string `json:"category_tier2,omitempty"`
	CategoryTier3      string `json:"category_tier3,omitempty"`
	AssignedGroup      string `json:"assigned_group,omitempty"`
	ServiceType        string `json:"service_type,omitempty"`
}

func encodeIncidentCreate(r *model.IncidentCreateRequest) incidentCreateBody {
	return incidentCreateBody{
		Summary:            r.Summary,
		Description:        r.Description,
		Impact:             int(r.Impact),
		Urgency:            int(r.Urgency),
		RequesterFirstName: r.RequesterFirstName,
		RequesterLastName:  r.RequesterLastName,
		RequesterCompany:   r.RequesterCompany,
		CategoryTier1:      r.CategoryTier1,
		CategoryTier2:      r.CategoryTier2,
		CategoryTier3:      r.CategoryTier3,
		AssignedGroup:      r.AssignedGroup,
		ServiceType:        r.ServiceType,
	}
}

type incidentUpdateBody struct {
	Summary       *string `json:"summary,omitempty"`
	Description   *string `json:"description,omitempty"`
	Impact        *int    `json:"impact,omitempty"`
	Urgency       *int    `json:"urgency,omitempty"`
	Status        *int    `json:"status,omitempty"`
	Resolution    *string `json:"resolution,omitempty"`
	WorkLog       *string `json:"work_log,omitempty"`
	AssignedGroup *string `json:"assigned_group,omitempty"`
	CategoryTier1 *string `json:"category_tier1,omitempty"`
	CategoryTier2 *string `json:"category_tier2,omitempty"`
	CategoryTier3 *string `json:"category_tier3,omitempty"`
}

func encodeIncidentUpdate(r *model.IncidentUpdateRequest) incidentUpdateBody {
	body := incidentUpdateBody{
		Summary:       r.Summary,
		Description:   r.Description,
		Resolution:    r.Resolution,
		WorkLog:       r.WorkLog,
		AssignedGroup: r.AssignedGroup,
		CategoryTier1: r.CategoryTier1,
		CategoryTier2: r.CategoryTier2,
		CategoryTier3: r.CategoryTier3,
	}
	if r.Impact != nil {
		v := int(*r.Impact)
		body.Impact = &v
	}
	if r.Urgency != nil {
		v := int(*r.Urgency)
		body.Urgency = &v
	}
	if r.Status != nil {
		v := int(*r.Status)
		body.Status = &v
	}
	return body
}

type workOrderCreateBody struct {
	Summary            string  `json:"summary"`
	Description        string  `json:"description"`
	Type               int     `json:"type"`
	Priority           int     `json:"priority"`
	RequesterFirstName string  `json:"requester_first_name,omitempty"`
	RequesterLastName  string  `json:"requester_last_name,omitempty"`
	LocationCompany    string  `json:"location_company,omitempty"`
	CategoryTier1      string  `json:"category_tier1,omitempty"`
	CategoryTier2      string  `json:"category_tier2,omitempty"`
	CategoryTier3      string  `json:"category_tier3,omitempty"`
	AssignedGroup      string  `json:"assigned_group,omitempty"`
	ScheduledStart     *string `json:"scheduled_start,omitempty"`
	ScheduledEnd       *string `json:"scheduled_end,omitempty"`
}

func encodeWorkOrderCreate(r *model.WorkOrderCreateRequest) workOrderCreateBody {
	return workOrderCreateBody{
		Summary:            r.Summary,
		Description:        r.Description,
		Type:               int(r.Type),
		Priority:           int(r.Priority),
		RequesterFirstName: r.RequesterFirstName,
		RequesterLastName:  r.RequesterLastName,
		LocationCompany:    r.LocationCompany,
		CategoryTier1:      r.CategoryTier1,
		CategoryTier2:      r.CategoryTier2,
		CategoryTier3:      r.CategoryTier3,
		AssignedGroup:      r.AssignedGroup,
		ScheduledStart:     formatTime(r.ScheduledStart),
		ScheduledEnd:       formatTime(r.ScheduledEnd),
	}
}

type workOrderUpdateBody struct {
	Summary       *string `json:"summary,omitempty"`
	Description   *string `json:"description,omitempty"`
	Type          *int    `json:"type,omitempty"`
	Priority      *int    `json:"priority,omitempty"`
	AssignedGroup *string `json:"assigned_group,omitempty"`
	WorkLog       *string `json:"work_log,omitempty"`
}

func encodeWorkOrderUpdate(r *model.WorkOrderUpdateRequest) workOrderUpdateBody {
	body := workOrderUpdateBody{
		Summary:       r.Summary,
		Description:   r.Description,
		AssignedGroup: r.AssignedGroup,
		WorkLog:       r.WorkLog,
	}
	if r.Type != nil {
		v := int(*r.Type)
		body.Type = &v
	}
	if r.Priority != nil {
		v := int(*r.Priority)
		body.Priority = &v
	}
	return body
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}

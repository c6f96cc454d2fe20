package itsm

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/remedian-lab/remedian/pkg/agent/tool"
	"github.com/remedian-lab/remedian/pkg/domain/model"
	"github.com/remedian-lab/remedian/pkg/domain/types"
	"github.com/remedian-lab/remedian/pkg/usecase"
)

// stageIncidentTool stages a new incident for user confirmation
type stageIncidentTool struct {
	confirmation *usecase.ConfirmationUseCase
	sessionID    string
	userID       string
}

func (t *stageIncidentTool) Spec() gollem.ToolSpec {
	return gollem.ToolSpec{
		Name:        "itsm__stage_incident",
		Description: "Stage a new incident for user confirmation. Nothing is created until the user confirms. Relay the confirmation_prompt to the user verbatim.",
		Parameters: map[string]*gollem.Parameter{
			"summary": {
				Type:        gollem.TypeString,
				Description: "Short summary of the incident (max 255 characters)",
				Required:    true,
			},
			"description": {
				Type:        gollem.TypeString,
				Description: "Detailed description of the incident",
				Required:    true,
			},
			"impact": {
				Type:        gollem.TypeInteger,
				Description: "Impact level: 1=Extensive/Widespread, 2=Significant/Large, 3=Moderate/Limited, 4=Minor/Localized",
				Required:    true,
			},
			"urgency": {
				Type:        gollem.TypeInteger,
				Description: "Urgency level: 1=Critical, 2=High, 3=Medium, 4=Low",
				Required:    true,
			},
			"requester_first_name": {
				Type:        gollem.TypeString,
				Description: "First name of the person affected",
			},
			"requester_last_name": {
				Type:        gollem.TypeString,
				Description: "Last name of the person affected",
			},
			"category_tier1": {
				Type:        gollem.TypeString,
				Description: "Top-level operational category",
			},
			"category_tier2": {
				Type:        gollem.TypeString,
				Description: "Second-level operational category",
			},
			"category_tier3": {
				Type:        gollem.TypeString,
				Description: "Third-level operational category",
			},
			"assigned_group": {
				Type:        gollem.TypeString,
				Description: "Support group to assign the incident to",
			},
		},
	}
}

func (t *stageIncidentTool) Run(ctx context.Context, args map[string]any) (map[string]any, error) {
	summary, err := extractString(args, "summary")
	if err != nil {
		return nil, err
	}
	description, err := extractString(args, "description")
	if err != nil {
		return nil, err
	}
	impact, err := extractInt(args, "impact")
	if err != nil {
		return nil, err
	}
	urgency, err := extractInt(args, "urgency")
	if err != nil {
		return nil, err
	}

	payload := &model.IncidentCreateRequest{
		Summary:     summary,
		Description: description,
		Impact:      types.Impact(impact),
		Urgency:     types.Urgency(urgency),
	}
	if v := optionalString(args, "requester_first_name"); v != nil {
		payload.RequesterFirstName = *v
	}
	if v := optionalString(args, "requester_last_name"); v != nil {
		payload.RequesterLastName = *v
	}
	if v := optionalString(args, "category_tier1"); v != nil {
		payload.CategoryTier1 = *v
	}
	if v := optionalString(args, "category_tier2"); v != nil {
		payload.CategoryTier2 = *v
	}
	if v := optionalString(args, "category_tier3"); v != nil {
		payload.CategoryTier3 = *v
	}
	if v := optionalString(args, "assigned_group"); v != nil {
		payload.AssignedGroup = *v
	}

	tool.Update(ctx, "Preparing incident for confirmation...")
	result, err := t.confirmation.Stage(ctx, t.sessionID, t.userID, payload)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to stage incident")
	}
	return stageResultToMap(result), nil
}

// stageIncidentUpdateTool stages an update to an existing incident
type stageIncidentUpdateTool struct {
	confirmation *usecase.ConfirmationUseCase
	sessionID    string
	userID       string
}

func (t *stageIncidentUpdateTool) Spec() gollem.ToolSpec {
	return gollem.ToolSpec{
		Name:        "itsm__stage_incident_update",
		Description: "Stage an update to an existing incident for user confirmation. Provide only the fields to change.",
		Parameters: map[string]*gollem.Parameter{
			"incident_number": {
				Type:        gollem.TypeString,
				Description: "Incident number, e.g. INC000000000101",
				Required:    true,
			},
			"summary": {
				Type:        gollem.TypeString,
				Description: "New summary",
			},
			"description": {
				Type:        gollem.TypeString,
				Description: "New description",
			},
			"impact": {
				Type:        gollem.TypeInteger,
				Description: "New impact level (1-4)",
			},
			"urgency": {
				Type:        gollem.TypeInteger,
				Description: "New urgency level (1-4)",
			},
			"status": {
				Type:        gollem.TypeInteger,
				Description: "New status: 0=New, 1=Assigned, 2=In Progress, 3=Pending, 4=Resolved, 5=Closed",
			},
			"resolution": {
				Type:        gollem.TypeString,
				Description: "Resolution text, required when setting status to Resolved",
			},
			"work_log": {
				Type:        gollem.TypeString,
				Description: "Work log entry to append",
			},
			"assigned_group": {
				Type:        gollem.TypeString,
				Description: "Support group to reassign the incident to",
			},
		},
	}
}

func (t *stageIncidentUpdateTool) Run(ctx context.Context, args map[string]any) (map[string]any, error) {
	incidentNumber, err := extractString(args, "incident_number")
	if err != nil {
		return nil, err
	}

	payload := &model.IncidentUpdateRequest{
		IncidentNumber: incidentNumber,
		Summary:        optionalString(args, "summary"),
		Description:    optionalString(args, "description"),
		Resolution:     optionalString(args, "resolution"),
		WorkLog:        optionalString(args, "work_log"),
		AssignedGroup:  optionalString(args, "assigned_group"),
	}
	if _, ok := args["impact"]; ok {
		n, err := extractInt(args, "impact")
		if err != nil {
			return nil, err
		}
		v := types.Impact(n)
		payload.Impact = &v
	}
	if _, ok := args["urgency"]; ok {
		n, err := extractInt(args, "urgency")
		if err != nil {
			return nil, err
		}
		v := types.Urgency(n)
		payload.Urgency = &v
	}
	if _, ok := args["status"]; ok {
		n, err := extractInt(args, "status")
		if err != nil {
			return nil, err
		}
		v := types.IncidentStatus(n)
		payload.Status = &v
	}

	tool.Update(ctx, fmt.Sprintf("Preparing update to %s for confirmation...", incidentNumber))
	result, err := t.confirmation.Stage(ctx, t.sessionID, t.userID, payload)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to stage incident update",
			goerr.V("incidentNumber", incidentNumber))
	}
	return stageResultToMap(result), nil
}

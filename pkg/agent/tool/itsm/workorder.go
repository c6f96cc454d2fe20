package itsm

import (
	"context"
	"fmt"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/remedian-lab/remedian/pkg/agent/tool"
	"github.com/remedian-lab/remedian/pkg/domain/model"
	"github.com/remedian-lab/remedian/pkg/domain/types"
	"github.com/remedian-lab/remedian/pkg/usecase"
)

// stageWorkOrderTool stages a new work order for user confirmation
type stageWorkOrderTool struct {
	confirmation *usecase.ConfirmationUseCase
	sessionID    string
	userID       string
}

func (t *stageWorkOrderTool) Spec() gollem.ToolSpec {
	return gollem.ToolSpec{
		Name:        "itsm__stage_work_order",
		Description: "Stage a new work order for user confirmation. Nothing is created until the user confirms. Relay the confirmation_prompt to the user verbatim.",
		Parameters: map[string]*gollem.Parameter{
			"summary": {
				Type:        gollem.TypeString,
				Description: "Short summary of the work order (max 255 characters)",
				Required:    true,
			},
			"description": {
				Type:        gollem.TypeString,
				Description: "Detailed description of the requested work",
				Required:    true,
			},
			"type": {
				Type:        gollem.TypeInteger,
				Description: "Work order type: 1=General, 2=Change, 3=Service Request, 4=Project",
				Required:    true,
			},
			"priority": {
				Type:        gollem.TypeInteger,
				Description: "Priority: 1=Critical, 2=High, 3=Medium, 4=Low",
				Required:    true,
			},
			"requester_first_name": {
				Type:        gollem.TypeString,
				Description: "First name of the requester",
			},
			"requester_last_name": {
				Type:        gollem.TypeString,
				Description: "Last name of the requester",
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
				Description: "Support group to assign the work order to",
			},
			"scheduled_start": {
				Type:        gollem.TypeString,
				Description: "Scheduled start time in RFC3339 format",
			},
			"scheduled_end": {
				Type:        gollem.TypeString,
				Description: "Scheduled end time in RFC3339 format",
			},
		},
	}
}

func (t *stageWorkOrderTool) Run(ctx context.Context, args map[string]any) (map[string]any, error) {
	summary, err := extractString(args, "summary")
	if err != nil {
		return nil, err
	}
	description, err := extractString(args, "description")
	if err != nil {
		return nil, err
	}
	woType, err := extractInt(args, "type")
	if err != nil {
		return nil, err
	}
	priority, err := extractInt(args, "priority")
	if err != nil {
		return nil, err
	}

	payload := &model.WorkOrderCreateRequest{
		Summary:     summary,
		Description: description,
		Type:        types.WorkOrderType(woType),
		Priority:    types.Priority(priority),
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
	if v := optionalString(args, "scheduled_start"); v != nil {
		ts, err := time.Parse(time.RFC3339, *v)
		if err != nil {
			return nil, goerr.Wrap(err, "scheduled_start must be RFC3339")
		}
		payload.ScheduledStart = &ts
	}
	if v := optionalString(args, "scheduled_end"); v != nil {
		ts, err := time.Parse(time.RFC3339, *v)
		if err != nil {
			return nil, goerr.Wrap(err, "scheduled_end must be RFC3339")
		}
		payload.ScheduledEnd = &ts
	}

	tool.Update(ctx, "Preparing work order for confirmation...")
	result, err := t.confirmation.Stage(ctx, t.sessionID, t.userID, payload)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to stage work order")
	}
	return stageResultToMap(result), nil
}

// stageWorkOrderUpdateTool stages an update to an existing work order
type stageWorkOrderUpdateTool struct {
	confirmation *usecase.ConfirmationUseCase
	sessionID    string
	userID       string
}

func (t *stageWorkOrderUpdateTool) Spec() gollem.ToolSpec {
	return gollem.ToolSpec{
		Name:        "itsm__stage_work_order_update",
		Description: "Stage an update to an existing work order for user confirmation. Provide only the fields to change.",
		Parameters: map[string]*gollem.Parameter{
			"work_order_number": {
				Type:        gollem.TypeString,
				Description: "Work order number, e.g. WO0000000000301",
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
			"type": {
				Type:        gollem.TypeInteger,
				Description: "New work order type (1-4)",
			},
			"priority": {
				Type:        gollem.TypeInteger,
				Description: "New priority (1-4)",
			},
			"work_log": {
				Type:        gollem.TypeString,
				Description: "Work log entry to append",
			},
			"assigned_group": {
				Type:        gollem.TypeString,
				Description: "Support group to reassign the work order to",
			},
		},
	}
}

func (t *stageWorkOrderUpdateTool) Run(ctx context.Context, args map[string]any) (map[string]any, error) {
	workOrderNumber, err := extractString(args, "work_order_number")
	if err != nil {
		return nil, err
	}

	payload := &model.WorkOrderUpdateRequest{
		WorkOrderNumber: workOrderNumber,
		Summary:         optionalString(args, "summary"),
		Description:     optionalString(args, "description"),
		WorkLog:         optionalString(args, "work_log"),
		AssignedGroup:   optionalString(args, "assigned_group"),
	}
	if _, ok := args["type"]; ok {
		n, err := extractInt(args, "type")
		if err != nil {
			return nil, err
		}
		v := types.WorkOrderType(n)
		payload.Type = &v
	}
	if _, ok := args["priority"]; ok {
		n, err := extractInt(args, "priority")
		if err != nil {
			return nil, err
		}
		v := types.Priority(n)
		payload.Priority = &v
	}

	tool.Update(ctx, fmt.Sprintf("Preparing update to %s for confirmation...", workOrderNumber))
	result, err := t.confirmation.Stage(ctx, t.sessionID, t.userID, payload)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to stage work order update",
			goerr.V("workOrderNumber", workOrderNumber))
	}
	return stageResultToMap(result), nil
}

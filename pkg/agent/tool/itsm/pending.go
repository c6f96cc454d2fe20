package itsm

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/remedian-lab/remedian/pkg/agent/tool"
	"github.com/remedian-lab/remedian/pkg/domain/interfaces"
	"github.com/remedian-lab/remedian/pkg/usecase"
)

// searchSimilarTool finds existing records similar to a description, for
// checking duplicates before staging a new one
type searchSimilarTool struct {
	advisor interfaces.DuplicateAdvisor
}

func (t *searchSimilarTool) Spec() gollem.ToolSpec {
	return gollem.ToolSpec{
		Name:        "itsm__search_similar_incidents",
		Description: "Search existing records for ones similar to the given text. Use before staging a new incident or work order to check whether one already exists.",
		Parameters: map[string]*gollem.Parameter{
			"text": {
				Type:        gollem.TypeString,
				Description: "Free text describing the issue",
				Required:    true,
			},
			"record_type": {
				Type:        gollem.TypeString,
				Description: "Record family to search: incident or work_order",
				Required:    true,
			},
		},
	}
}

func (t *searchSimilarTool) Run(ctx context.Context, args map[string]any) (map[string]any, error) {
	text, err := extractString(args, "text")
	if err != nil {
		return nil, err
	}
	recordType, err := extractString(args, "record_type")
	if err != nil {
		return nil, err
	}

	tool.Update(ctx, "Searching for similar records...")
	candidates, err := t.advisor.Search(ctx, text, recordType, 5)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to search similar records",
			goerr.V("recordType", recordType))
	}

	items := make([]map[string]any, len(candidates))
	for i, c := range candidates {
		items[i] = map[string]any{
			"record_id":  c.ID,
			"title":      c.Title,
			"similarity": c.Score,
		}
	}
	return map[string]any{"results": items}, nil
}

// listPendingTool lists the session's unresolved staged actions
type listPendingTool struct {
	confirmation *usecase.ConfirmationUseCase
	sessionID    string
}

func (t *listPendingTool) Spec() gollem.ToolSpec {
	return gollem.ToolSpec{
		Name:        "itsm__list_pending_actions",
		Description: "List staged actions in this session that are awaiting confirmation",
		Parameters: map[string]*gollem.Parameter{
			"record_type": {
				Type:        gollem.TypeString,
				Description: "Optional filter by record family: incident or work_order",
			},
		},
	}
}

func (t *listPendingTool) Run(ctx context.Context, args map[string]any) (map[string]any, error) {
	family, _ := args["record_type"].(string)

	actions, err := t.confirmation.ListPendingActions(ctx, t.sessionID, family)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list pending actions")
	}

	items := make([]map[string]any, len(actions))
	for i, a := range actions {
		items[i] = map[string]any{
			"action_id":   a.ActionID.String(),
			"action_type": a.ActionType.String(),
			"preview":     a.Preview,
			"expires_at":  a.ExpiresAt.String(),
		}
	}
	return map[string]any{"pending_actions": items}, nil
}

// confirmActionTool executes a staged action. Only to be called after the
// user has explicitly confirmed.
type confirmActionTool struct {
	confirmation *usecase.ConfirmationUseCase
	sessionID    string
}

func (t *confirmActionTool) Spec() gollem.ToolSpec {
	return gollem.ToolSpec{
		Name:        "itsm__confirm_action",
		Description: "Execute a staged action after the user explicitly confirmed it. Never call this without an explicit confirmation from the user.",
		Parameters: map[string]*gollem.Parameter{
			"action_id": {
				Type:        gollem.TypeString,
				Description: "The action ID from the confirmation prompt",
				Required:    true,
			},
		},
	}
}

func (t *confirmActionTool) Run(ctx context.Context, args map[string]any) (map[string]any, error) {
	id, err := actionID(args)
	if err != nil {
		return nil, err
	}

	tool.Update(ctx, fmt.Sprintf("Executing action %s...", id))
	result, err := t.confirmation.Confirm(ctx, t.sessionID, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to confirm action",
			goerr.V("actionID", id))
	}
	return resolveResultToMap(result), nil
}

// cancelActionTool discards a staged action
type cancelActionTool struct {
	confirmation *usecase.ConfirmationUseCase
	sessionID    string
}

func (t *cancelActionTool) Spec() gollem.ToolSpec {
	return gollem.ToolSpec{
		Name:        "itsm__cancel_action",
		Description: "Discard a staged action without executing it",
		Parameters: map[string]*gollem.Parameter{
			"action_id": {
				Type:        gollem.TypeString,
				Description: "The action ID from the confirmation prompt",
				Required:    true,
			},
		},
	}
}

func (t *cancelActionTool) Run(ctx context.Context, args map[string]any) (map[string]any, error) {
	id, err := actionID(args)
	if err != nil {
		return nil, err
	}

	result, err := t.confirmation.Cancel(ctx, t.sessionID, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to cancel action",
			goerr.V("actionID", id))
	}
	return resolveResultToMap(result), nil
}

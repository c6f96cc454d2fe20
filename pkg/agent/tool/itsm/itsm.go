package itsm

import (
	"fmt"

	"github.com/m-mizutani/gollem"
	"github.com/remedian-lab/remedian/pkg/domain/interfaces"
	"github.com/remedian-lab/remedian/pkg/domain/model"
	"github.com/remedian-lab/remedian/pkg/usecase"
)

// New builds the ITSM tool set for one agent session. Every mutating tool
// goes through the confirmation engine: the agent can stage and resolve
// actions, never apply them directly.
func New(confirmation *usecase.ConfirmationUseCase, advisor interfaces.DuplicateAdvisor, sessionID, userID string) []gollem.Tool {
	tools := []gollem.Tool{
		&stageIncidentTool{confirmation: confirmation, sessionID: sessionID, userID: userID},
		&stageIncidentUpdateTool{confirmation: confirmation, sessionID: sessionID, userID: userID},
		&stageWorkOrderTool{confirmation: confirmation, sessionID: sessionID, userID: userID},
		&stageWorkOrderUpdateTool{confirmation: confirmation, sessionID: sessionID, userID: userID},
		&listPendingTool{confirmation: confirmation, sessionID: sessionID},
		&confirmActionTool{confirmation: confirmation, sessionID: sessionID},
		&cancelActionTool{confirmation: confirmation, sessionID: sessionID},
	}
	if advisor != nil {
		tools = append(tools, &searchSimilarTool{advisor: advisor})
	}
	return tools
}

// stageResultToMap converts a StageResult to a tool response. The prompt is
// what the agent must relay to the user verbatim.
func stageResultToMap(result *usecase.StageResult) map[string]any {
	resp := map[string]any{
		"status": result.Status.String(),
	}
	if result.Action != nil {
		resp["action_id"] = result.Action.ActionID.String()
		resp["confirmation_prompt"] = result.Prompt
		resp["expires_at"] = result.Action.ExpiresAt.String()
	}
	if len(result.Errors) > 0 {
		resp["errors"] = result.Errors
	}
	if len(result.Warnings) > 0 {
		resp["warnings"] = result.Warnings
	}
	return resp
}

func resolveResultToMap(result *usecase.ResolveResult) map[string]any {
	resp := map[string]any{
		"status":  result.Status.String(),
		"message": result.Message,
	}
	if result.RecordID != "" {
		resp["record_id"] = result.RecordID
	}
	return resp
}

// extractString extracts a required string argument
func extractString(args map[string]any, key string) (string, error) {
	s, ok := args[key].(string)
	if !ok || s == "" {
		return "", fmt.Errorf("%s is required", key)
	}
	return s, nil
}

// extractInt extracts a required integer argument, accepting the float64
// that JSON decoding produces
func extractInt(args map[string]any, key string) (int, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return 0, fmt.Errorf("%s is required", key)
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	default:
		return 0, fmt.Errorf("%s must be an integer, got %T", key, v)
	}
}

// optionalString returns a pointer to the argument value when present and
// non-empty, nil otherwise
func optionalString(args map[string]any, key string) *string {
	if s, ok := args[key].(string); ok && s != "" {
		return &s
	}
	return nil
}

func actionID(args map[string]any) (model.ActionID, error) {
	s, err := extractString(args, "action_id")
	if err != nil {
		return "", err
	}
	return model.ActionID(s), nil
}

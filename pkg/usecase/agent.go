package usecase

import (
	"bytes"
	"context"
	_ "embed"
	"strings"
	"text/template"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/remedian-lab/remedian/pkg/utils/logging"
)

//go:embed prompt/agent_system.md
var agentSystemPromptTmpl string

var agentSystemPrompt = template.Must(template.New("agent_system").Parse(agentSystemPromptTmpl))

// ToolFactory builds the tool set bound to one session. Injected to keep the
// tool packages layered above the use cases.
type ToolFactory func(confirmation *ConfirmationUseCase, sessionID, userID string) []gollem.Tool

// AgentUseCase runs the LLM agent for one chat turn. All ITSM mutations the
// agent proposes go through the confirmation engine via its tools.
type AgentUseCase struct {
	confirmation *ConfirmationUseCase
	llmClient    gollem.LLMClient
	newTools     ToolFactory
}

// NewAgentUseCase creates a new AgentUseCase instance
func NewAgentUseCase(confirmation *ConfirmationUseCase, llmClient gollem.LLMClient) *AgentUseCase {
	return &AgentUseCase{
		confirmation: confirmation,
		llmClient:    llmClient,
	}
}

// SetToolFactory installs the session tool builder
func (uc *AgentUseCase) SetToolFactory(factory ToolFactory) {
	uc.newTools = factory
}

type agentPromptData struct {
	SessionID string
	Now       string
}

// Chat processes one user message in the given session and returns the
// agent's response text.
func (uc *AgentUseCase) Chat(ctx context.Context, sessionID, userID, message string) (string, error) {
	logger := logging.From(ctx)

	if uc.llmClient == nil {
		return "", goerr.New("LLM client is not configured")
	}
	if uc.newTools == nil {
		return "", goerr.New("tool factory is not configured")
	}
	if sessionID == "" {
		return "", goerr.Wrap(ErrMissingSession, "cannot run agent chat")
	}
	if userID == "" {
		return "", goerr.Wrap(ErrMissingUser, "cannot run agent chat")
	}

	var promptBuf bytes.Buffer
	if err := agentSystemPrompt.Execute(&promptBuf, agentPromptData{
		SessionID: sessionID,
		Now:       time.Now().UTC().Format(time.RFC3339),
	}); err != nil {
		return "", goerr.Wrap(err, "failed to build agent system prompt")
	}

	tools := uc.newTools(uc.confirmation, sessionID, userID)

	agent := gollem.New(uc.llmClient,
		gollem.WithSystemPrompt(promptBuf.String()),
		gollem.WithTools(tools...),
		gollem.WithToolMiddleware(
			func(next gollem.ToolHandler) gollem.ToolHandler {
				return func(ctx context.Context, req *gollem.ToolExecRequest) (*gollem.ToolExecResponse, error) {
					logger.Debug("agent tool call", "tool", req.Tool.Name, "session_id", sessionID)
					resp, err := next(ctx, req)
					if resp != nil && resp.Error != nil {
						logger.Warn("agent tool failed", "tool", req.Tool.Name, "error", resp.Error.Error())
					}
					return resp, err
				}
			},
		),
	)

	resp, err := agent.Execute(ctx, gollem.Text(message))
	if err != nil {
		return "", goerr.Wrap(err, "failed to execute agent",
			goerr.V(SessionIDKey, sessionID))
	}

	return strings.Join(resp.Texts, "\n"), nil
}

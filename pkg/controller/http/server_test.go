package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"
	httpctrl "github.com/remedian-lab/remedian/pkg/controller/http"
	"github.com/remedian-lab/remedian/pkg/domain/interfaces"
	"github.com/remedian-lab/remedian/pkg/domain/model"
	"github.com/remedian-lab/remedian/pkg/domain/types"
	"github.com/remedian-lab/remedian/pkg/repository/memory"
	"github.com/remedian-lab/remedian/pkg/service/ratelimit"
	"github.com/remedian-lab/remedian/pkg/service/staging"
	"github.com/remedian-lab/remedian/pkg/service/validate"
	"github.com/remedian-lab/remedian/pkg/usecase"
)

type stubAdvisor struct{}

func (s *stubAdvisor) Search(ctx context.Context, text string, recordType string, limit int) ([]interfaces.Candidate, error) {
	return nil, nil
}

type stubExecutor struct{}

func (s *stubExecutor) Apply(ctx context.Context, actionType types.ActionType, payload model.ActionPayload) (*model.ExecutionResult, error) {
	return &model.ExecutionResult{Success: true, RecordID: "INC000000000201", RecordType: actionType.Family()}, nil
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	repo := memory.New()
	uc := usecase.New(
		repo,
		staging.NewStore(),
		ratelimit.New(10),
		validate.New(),
		&stubAdvisor{},
		&stubExecutor{},
		nil,
	)

	srv := httptest.NewServer(httpctrl.New(uc, repo))
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, srv *httptest.Server, method, path string, body any, headers map[string]string) (*http.Response, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		gt.NoError(t, err).Required()
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, srv.URL+path, reader)
	gt.NoError(t, err).Required()
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := http.DefaultClient.Do(req)
	gt.NoError(t, err).Required()
	t.Cleanup(func() { _ = resp.Body.Close() })

	var decoded map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp, decoded
}

func sessionHeaders(sessionID, userID string) map[string]string {
	return map[string]string{
		"X-Session-ID": sessionID,
		"X-User-ID":    userID,
	}
}

func stageBody(summary string) map[string]any {
	return map[string]any{
		"action_type": "INCIDENT_CREATE",
		"incident": map[string]any{
			"summary":     summary,
			"description": "Printer on floor 3 is unreachable from all workstations",
			"impact":      3,
			"urgency":     3,
		},
	}
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	gt.NoError(t, err).Required()
	defer resp.Body.Close()
	gt.Value(t, resp.StatusCode).Equal(http.StatusOK)
}

func TestIdentityHeadersRequired(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := doJSON(t, srv, http.MethodPost, "/api/actions", stageBody("Printer offline"), nil)
	gt.Value(t, resp.StatusCode).Equal(http.StatusBadRequest)
}

func TestStageConfirmFlow(t *testing.T) {
	srv := newTestServer(t)
	headers := sessionHeaders("session-1", "user-1")

	resp, staged := doJSON(t, srv, http.MethodPost, "/api/actions", stageBody("Printer offline"), headers)
	gt.Value(t, resp.StatusCode).Equal(http.StatusCreated)
	gt.Value(t, staged["status"]).Equal("STAGED")

	actionID, ok := staged["action_id"].(string)
	gt.Bool(t, ok).True()
	gt.String(t, staged["confirmation_prompt"].(string)).Contains("confirm " + actionID)

	resp, resolved := doJSON(t, srv, http.MethodPost, "/api/actions/"+actionID+"/confirm", nil, headers)
	gt.Value(t, resp.StatusCode).Equal(http.StatusOK)
	gt.Value(t, resolved["status"]).Equal("EXECUTED")
	gt.Value(t, resolved["record_id"]).Equal("INC000000000201")

	// the audit trail is visible to the session
	resp, audits := doJSON(t, srv, http.MethodGet, "/api/audit", nil, headers)
	gt.Value(t, resp.StatusCode).Equal(http.StatusOK)
	items := audits["audits"].([]any)
	gt.Array(t, items).Length(1)
	gt.Value(t, items[0].(map[string]any)["outcome"]).Equal("EXECUTED")
}

func TestStageCancelFlow(t *testing.T) {
	srv := newTestServer(t)
	headers := sessionHeaders("session-1", "user-1")

	_, staged := doJSON(t, srv, http.MethodPost, "/api/actions", stageBody("Printer offline"), headers)
	actionID := staged["action_id"].(string)

	resp, resolved := doJSON(t, srv, http.MethodPost, "/api/actions/"+actionID+"/cancel", nil, headers)
	gt.Value(t, resp.StatusCode).Equal(http.StatusOK)
	gt.Value(t, resolved["status"]).Equal("CANCELLED")

	// confirming a cancelled action yields 404
	resp, resolved = doJSON(t, srv, http.MethodPost, "/api/actions/"+actionID+"/confirm", nil, headers)
	gt.Value(t, resp.StatusCode).Equal(http.StatusNotFound)
	gt.Value(t, resolved["status"]).Equal("NOT_FOUND")
}

func TestConfirmFromForeignSession(t *testing.T) {
	srv := newTestServer(t)

	_, staged := doJSON(t, srv, http.MethodPost, "/api/actions", stageBody("Printer offline"), sessionHeaders("session-1", "user-1"))
	actionID := staged["action_id"].(string)

	resp, resolved := doJSON(t, srv, http.MethodPost, "/api/actions/"+actionID+"/confirm", nil, sessionHeaders("session-2", "user-2"))
	gt.Value(t, resp.StatusCode).Equal(http.StatusNotFound)
	gt.Value(t, resolved["status"]).Equal("NOT_FOUND")
}

func TestStageValidationErrorStatus(t *testing.T) {
	srv := newTestServer(t)

	body := stageBody("Printer offline")
	body["incident"].(map[string]any)["impact"] = 9

	resp, staged := doJSON(t, srv, http.MethodPost, "/api/actions", body, sessionHeaders("session-1", "user-1"))
	gt.Value(t, resp.StatusCode).Equal(http.StatusBadRequest)
	gt.Value(t, staged["status"]).Equal("VALIDATION_ERROR")
}

func TestListPendingActionsEndpoint(t *testing.T) {
	srv := newTestServer(t)
	headers := sessionHeaders("session-1", "user-1")

	_, _ = doJSON(t, srv, http.MethodPost, "/api/actions", stageBody("Printer offline"), headers)

	resp, listed := doJSON(t, srv, http.MethodGet, "/api/actions", nil, headers)
	gt.Value(t, resp.StatusCode).Equal(http.StatusOK)
	gt.Array(t, listed["pending_actions"].([]any)).Length(1)

	// family filter
	resp, listed = doJSON(t, srv, http.MethodGet, "/api/actions?record_type=work_order", nil, headers)
	gt.Value(t, resp.StatusCode).Equal(http.StatusOK)
	gt.Array(t, listed["pending_actions"].([]any)).Length(0)
}

func TestRateLimitEndpoint(t *testing.T) {
	srv := newTestServer(t)
	headers := sessionHeaders("session-1", "user-1")

	_, _ = doJSON(t, srv, http.MethodPost, "/api/actions", stageBody("Printer offline"), headers)

	resp, status := doJSON(t, srv, http.MethodGet, "/api/ratelimit", nil, headers)
	gt.Value(t, resp.StatusCode).Equal(http.StatusOK)
	gt.Value(t, status["limit"]).Equal(float64(10))
	gt.Value(t, status["remaining"]).Equal(float64(9))
	gt.Value(t, status["limited"]).Equal(false)
}

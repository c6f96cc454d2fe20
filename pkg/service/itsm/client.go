package itsm

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/remedian-lab/remedian/pkg/domain/interfaces"
	"github.com/remedian-lab/remedian/pkg/domain/model"
	"github.com/remedian-lab/remedian/pkg/domain/types"
	"github.com/remedian-lab/remedian/pkg/utils/safe"
)

// Client applies confirmed actions against the ITSM REST adapter. It
// implements interfaces.Executor. A non-2xx response from the adapter is a
// failed execution, not a transport error; the caller receives a result with
// the backend's error detail either way.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

var _ interfaces.Executor = &Client{}

// Option is a functional option for Client configuration
type Option func(*Client)

// WithHTTPClient overrides the HTTP client. Intended for tests.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithAPIKey sets the bearer token sent with each request
func WithAPIKey(apiKey string) Option {
	return func(c *Client) {
		c.apiKey = apiKey
	}
}

// New creates a client for the ITSM adapter at baseURL
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, goerr.New("ITSM adapter base URL is required")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, goerr.Wrap(err, "invalid ITSM adapter base URL", goerr.V("baseURL", baseURL))
	}

	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Apply dispatches the payload to the adapter endpoint for its action type
func (c *Client) Apply(ctx context.Context, actionType types.ActionType, payload model.ActionPayload) (*model.ExecutionResult, error) {
	switch actionType {
	case types.ActionTypeIncidentCreate:
		req, ok := payload.(*model.IncidentCreateRequest)
		if !ok {
			return nil, goerr.New("payload type mismatch", goerr.V("actionType", actionType))
		}
		return c.do(ctx, http.MethodPost, "/api/v1/incidents", encodeIncidentCreate(req), actionType)

	case types.ActionTypeIncidentUpdate:
		req, ok := payload.(*model.IncidentUpdateRequest)
		if !ok {
			return nil, goerr.New("payload type mismatch", goerr.V("actionType", actionType))
		}
		path := "/api/v1/incidents/" + url.PathEscape(req.IncidentNumber)
		return c.do(ctx, http.MethodPatch, path, encodeIncidentUpdate(req), actionType)

	case types.ActionTypeWorkOrderCreate:
		req, ok := payload.(*model.WorkOrderCreateRequest)
		if !ok {
			return nil, goerr.New("payload type mismatch", goerr.V("actionType", actionType))
		}
		return c.do(ctx, http.MethodPost, "/api/v1/workorders", encodeWorkOrderCreate(req), actionType)

	case types.ActionTypeWorkOrderUpdate:
		req, ok := payload.(*model.WorkOrderUpdateRequest)
		if !ok {
			return nil, goerr.New("payload type mismatch", goerr.V("actionType", actionType))
		}
		path := "/api/v1/workorders/" + url.PathEscape(req.WorkOrderNumber)
		return c.do(ctx, http.MethodPatch, path, encodeWorkOrderUpdate(req), actionType)

	default:
		return nil, goerr.New("unsupported action type", goerr.V("actionType", actionType))
	}
}

type adapterResponse struct {
	RecordID string `json:"record_id"`
	Message  string `json:"message"`
	Error    string `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, body any, actionType types.ActionType) (*model.ExecutionResult, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to marshal adapter request", goerr.V("actionType", actionType))
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create adapter request")
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to call ITSM adapter",
			goerr.V("actionType", actionType), goerr.V("path", path))
	}
	defer safe.Close(ctx, resp.Body)

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))

	var parsed adapterResponse
	_ = json.Unmarshal(raw, &parsed)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail := parsed.Error
		if detail == "" {
			detail = string(raw)
		}
		return &model.ExecutionResult{
			Success:     false,
			RecordType:  actionType.Family(),
			ErrorDetail: detail,
		}, nil
	}

	return &model.ExecutionResult{
		Success:    true,
		RecordID:   parsed.RecordID,
		RecordType: actionType.Family(),
		Message:    parsed.Message,
	}, nil
}

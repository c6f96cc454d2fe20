package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/remedian-lab/remedian/pkg/domain/model"
	"github.com/remedian-lab/remedian/pkg/domain/types"
	"github.com/remedian-lab/remedian/pkg/usecase"
	"github.com/remedian-lab/remedian/pkg/utils/errutil"
)

// stageRequest is the wire form of a staging call. Exactly one payload block
// must be set, matching action_type.
type stageRequest struct {
	ActionType      string               `json:"action_type"`
	Incident        *incidentCreateBody  `json:"incident,omitempty"`
	IncidentUpdate  *incidentUpdateBody  `json:"incident_update,omitempty"`
	WorkOrder       *workOrderCreateBody `json:"work_order,omitempty"`
	WorkOrderUpdate *workOrderUpdateBody `json:"work_order_update,omitempty"`
}

type incidentCreateBody struct {
	Summary            string `json:"summary"`
	Description        string `json:"description"`
	Impact             int    `json:"impact"`
	Urgency            int    `json:"urgency"`
	RequesterFirstName string `json:"requester_first_name"`
	RequesterLastName  string `json:"requester_last_name"`
	RequesterCompany   string `json:"requester_company"`
	CategoryTier1      string `json:"category_tier1"`
	CategoryTier2      string `json:"category_tier2"`
	CategoryTier3      string `json:"category_tier3"`
	AssignedGroup      string `json:"assigned_group"`
	ServiceType        string `json:"service_type"`
}

type incidentUpdateBody struct {
	IncidentNumber string  `json:"incident_number"`
	Summary        *string `json:"summary"`
	Description    *string `json:"description"`
	Impact         *int    `json:"impact"`
	Urgency        *int    `json:"urgency"`
	Status         *int    `json:"status"`
	Resolution     *string `json:"resolution"`
	WorkLog        *string `json:"work_log"`
	AssignedGroup  *string `json:"assigned_group"`
	CategoryTier1  *string `json:"category_tier1"`
	CategoryTier2  *string `json:"category_tier2"`
	CategoryTier3  *string `json:"category_tier3"`
}

type workOrderCreateBody struct {
	Summary            string     `json:"summary"`
	Description        string     `json:"description"`
	Type               int        `json:"type"`
	Priority           int        `json:"priority"`
	RequesterFirstName string     `json:"requester_first_name"`
	RequesterLastName  string     `json:"requester_last_name"`
	LocationCompany    string     `json:"location_company"`
	CategoryTier1      string     `json:"category_tier1"`
	CategoryTier2      string     `json:"category_tier2"`
	CategoryTier3      string     `json:"category_tier3"`
	AssignedGroup      string     `json:"assigned_group"`
	ScheduledStart     *time.Time `json:"scheduled_start"`
	ScheduledEnd       *time.Time `json:"scheduled_end"`
}

type workOrderUpdateBody struct {
	WorkOrderNumber string  `json:"work_order_number"`
	Summary         *string `json:"summary"`
	Description     *string `json:"description"`
	Type            *int    `json:"type"`
	Priority        *int    `json:"priority"`
	WorkLog         *string `json:"work_log"`
	AssignedGroup   *string `json:"assigned_group"`
}

// toPayload converts the wire form to the domain payload for its action type
func (req *stageRequest) toPayload() (model.ActionPayload, error) {
	actionType, err := types.ParseActionType(req.ActionType)
	if err != nil {
		return nil, err
	}

	switch actionType {
	case types.ActionTypeIncidentCreate:
		if req.Incident == nil {
			return nil, goerr.New("incident block is required for INCIDENT_CREATE")
		}
		b := req.Incident
		return &model.IncidentCreateRequest{
			Summary:            b.Summary,
			Description:        b.Description,
			Impact:             types.Impact(b.Impact),
			Urgency:            types.Urgency(b.Urgency),
			RequesterFirstName: b.RequesterFirstName,
			RequesterLastName:  b.RequesterLastName,
			RequesterCompany:   b.RequesterCompany,
			CategoryTier1:      b.CategoryTier1,
			CategoryTier2:      b.CategoryTier2,
			CategoryTier3:      b.CategoryTier3,
			AssignedGroup:      b.AssignedGroup,
			ServiceType:        b.ServiceType,
		}, nil

	case types.ActionTypeIncidentUpdate:
		if req.IncidentUpdate == nil {
			return nil, goerr.New("incident_update block is required for INCIDENT_UPDATE")
		}
		b := req.IncidentUpdate
		payload := &model.IncidentUpdateRequest{
			IncidentNumber: b.IncidentNumber,
			Summary:        b.Summary,
			Description:    b.Description,
			Resolution:     b.Resolution,
			WorkLog:        b.WorkLog,
			AssignedGroup:  b.AssignedGroup,
			CategoryTier1:  b.CategoryTier1,
			CategoryTier2:  b.CategoryTier2,
			CategoryTier3:  b.CategoryTier3,
		}
		if b.Impact != nil {
			v := types.Impact(*b.Impact)
			payload.Impact = &v
		}
		if b.Urgency != nil {
			v := types.Urgency(*b.Urgency)
			payload.Urgency = &v
		}
		if b.Status != nil {
			v := types.IncidentStatus(*b.Status)
			payload.Status = &v
		}
		return payload, nil

	case types.ActionTypeWorkOrderCreate:
		if req.WorkOrder == nil {
			return nil, goerr.New("work_order block is required for WORK_ORDER_CREATE")
		}
		b := req.WorkOrder
		return &model.WorkOrderCreateRequest{
			Summary:            b.Summary,
			Description:        b.Description,
			Type:               types.WorkOrderType(b.Type),
			Priority:           types.Priority(b.Priority),
			RequesterFirstName: b.RequesterFirstName,
			RequesterLastName:  b.RequesterLastName,
			LocationCompany:    b.LocationCompany,
			CategoryTier1:      b.CategoryTier1,
			CategoryTier2:      b.CategoryTier2,
			CategoryTier3:      b.CategoryTier3,
			AssignedGroup:      b.AssignedGroup,
			ScheduledStart:     b.ScheduledStart,
			ScheduledEnd:       b.ScheduledEnd,
		}, nil

	case types.ActionTypeWorkOrderUpdate:
		if req.WorkOrderUpdate == nil {
			return nil, goerr.New("work_order_update block is required for WORK_ORDER_UPDATE")
		}
		b := req.WorkOrderUpdate
		payload := &model.WorkOrderUpdateRequest{
			WorkOrderNumber: b.WorkOrderNumber,
			Summary:         b.Summary,
			Description:     b.Description,
			WorkLog:         b.WorkLog,
			AssignedGroup:   b.AssignedGroup,
		}
		if b.Type != nil {
			v := types.WorkOrderType(*b.Type)
			payload.Type = &v
		}
		if b.Priority != nil {
			v := types.Priority(*b.Priority)
			payload.Priority = &v
		}
		return payload, nil

	default:
		return nil, goerr.New("unsupported action type", goerr.V("actionType", actionType))
	}
}

type duplicateBody struct {
	RecordID   string  `json:"record_id"`
	Title      string  `json:"title"`
	Similarity float64 `json:"similarity"`
}

type stageResponse struct {
	Status             string          `json:"status"`
	ActionID           string          `json:"action_id,omitempty"`
	ConfirmationPrompt string          `json:"confirmation_prompt,omitempty"`
	ExpiresAt          string          `json:"expires_at,omitempty"`
	Duplicates         []duplicateBody `json:"duplicates,omitempty"`
	Errors             []string        `json:"errors,omitempty"`
	Warnings           []string        `json:"warnings,omitempty"`
}

// stageStatusCode maps a staging outcome to an HTTP status
func stageStatusCode(status types.StagingStatus) int {
	switch status {
	case types.StagingStatusStaged, types.StagingStatusDuplicateWarning:
		return http.StatusCreated
	case types.StagingStatusRateLimited:
		return http.StatusTooManyRequests
	case types.StagingStatusValidationError:
		return http.StatusBadRequest
	case types.StagingStatusSessionLimit:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) handleStageAction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req stageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to decode stage request"), http.StatusBadRequest)
		return
	}

	payload, err := req.toPayload()
	if err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "invalid stage request"), http.StatusBadRequest)
		return
	}

	result, err := s.uc.Confirmation.Stage(ctx, sessionIDFrom(ctx), userIDFrom(ctx), payload)
	if err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to stage action"), http.StatusInternalServerError)
		return
	}

	resp := stageResponse{
		Status:   result.Status.String(),
		Errors:   result.Errors,
		Warnings: result.Warnings,
	}
	if result.Action != nil {
		resp.ActionID = result.Action.ActionID.String()
		resp.ConfirmationPrompt = result.Prompt
		resp.ExpiresAt = result.Action.ExpiresAt.UTC().Format(time.RFC3339)
		for _, d := range result.Action.DuplicateCandidates {
			resp.Duplicates = append(resp.Duplicates, duplicateBody{
				RecordID:   d.RecordID,
				Title:      d.Title,
				Similarity: d.Score,
			})
		}
	}

	writeJSON(ctx, w, stageStatusCode(result.Status), resp)
}

type resolveResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	RecordID string `json:"record_id,omitempty"`
}

// resolveStatusCode maps a resolution outcome to an HTTP status
func resolveStatusCode(status types.StagingStatus) int {
	switch status {
	case types.StagingStatusExecuted, types.StagingStatusCancelled:
		return http.StatusOK
	case types.StagingStatusNotFound:
		return http.StatusNotFound
	case types.StagingStatusExpired:
		return http.StatusGone
	case types.StagingStatusFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) handleConfirmAction(w http.ResponseWriter, r *http.Request) {
	s.handleResolve(w, r, s.uc.Confirmation.Confirm)
}

func (s *Server) handleCancelAction(w http.ResponseWriter, r *http.Request) {
	s.handleResolve(w, r, s.uc.Confirmation.Cancel)
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request, resolve func(ctx context.Context, sessionID string, actionID model.ActionID) (*usecase.ResolveResult, error)) {
	ctx := r.Context()
	actionID := model.ActionID(chi.URLParam(r, "actionID"))

	result, err := resolve(ctx, sessionIDFrom(ctx), actionID)
	if err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to resolve action"), http.StatusInternalServerError)
		return
	}

	writeJSON(ctx, w, resolveStatusCode(result.Status), resolveResponse{
		Status:   result.Status.String(),
		Message:  result.Message,
		RecordID: result.RecordID,
	})
}

type pendingActionBody struct {
	ActionID   string          `json:"action_id"`
	ActionType string          `json:"action_type"`
	Preview    string          `json:"preview"`
	CreatedAt  string          `json:"created_at"`
	ExpiresAt  string          `json:"expires_at"`
	Duplicates []duplicateBody `json:"duplicates,omitempty"`
}

func (s *Server) handleListActions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	family := r.URL.Query().Get("record_type")

	actions, err := s.uc.Confirmation.ListPendingActions(ctx, sessionIDFrom(ctx), family)
	if err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to list pending actions"), http.StatusInternalServerError)
		return
	}

	items := make([]pendingActionBody, len(actions))
	for i, a := range actions {
		items[i] = pendingActionBody{
			ActionID:   a.ActionID.String(),
			ActionType: a.ActionType.String(),
			Preview:    a.Preview,
			CreatedAt:  a.CreatedAt.UTC().Format(time.RFC3339),
			ExpiresAt:  a.ExpiresAt.UTC().Format(time.RFC3339),
		}
		for _, d := range a.DuplicateCandidates {
			items[i].Duplicates = append(items[i].Duplicates, duplicateBody{
				RecordID:   d.RecordID,
				Title:      d.Title,
				Similarity: d.Score,
			})
		}
	}

	writeJSON(ctx, w, http.StatusOK, map[string]any{"pending_actions": items})
}

func (s *Server) handleRateLimitStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	status := s.uc.Confirmation.RateLimitStatus(userIDFrom(ctx))

	writeJSON(ctx, w, http.StatusOK, map[string]any{
		"limit":     status.Limit,
		"remaining": status.Remaining,
		"limited":   status.Limited,
	})
}

type auditBody struct {
	ActionID   string `json:"action_id"`
	ActionType string `json:"action_type"`
	Outcome    string `json:"outcome"`
	RecordID   string `json:"record_id,omitempty"`
	ErrorNote  string `json:"error_note,omitempty"`
	StagedAt   string `json:"staged_at"`
	ResolvedAt string `json:"resolved_at,omitempty"`
}

func (s *Server) handleListAudit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			errutil.HandleHTTP(ctx, w, goerr.New("limit must be a positive integer"), http.StatusBadRequest)
			return
		}
		limit = n
	}

	audits, err := s.repo.ActionAudit().ListBySession(ctx, sessionIDFrom(ctx), limit)
	if err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to list audit records"), http.StatusInternalServerError)
		return
	}

	items := make([]auditBody, len(audits))
	for i, a := range audits {
		items[i] = auditBody{
			ActionID:   a.ActionID.String(),
			ActionType: a.ActionType.String(),
			Outcome:    a.Outcome.String(),
			RecordID:   a.RecordID,
			ErrorNote:  a.ErrorNote,
			StagedAt:   a.StagedAt.UTC().Format(time.RFC3339),
		}
		if a.ResolvedAt != nil {
			items[i].ResolvedAt = a.ResolvedAt.UTC().Format(time.RFC3339)
		}
	}

	writeJSON(ctx, w, http.StatusOK, map[string]any{"audits": items})
}

func writeJSON(ctx context.Context, w http.ResponseWriter, code int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(data)
}

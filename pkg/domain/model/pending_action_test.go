package model_test

import (
	"strings"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/remedian-lab/remedian/pkg/domain/model"
	"github.com/remedian-lab/remedian/pkg/domain/types"
)

func testIncident() *model.IncidentCreateRequest {
	return &model.IncidentCreateRequest{
		Summary:     "Printer offline",
		Description: "The 3rd floor printer does not respond to jobs",
		Impact:      types.ImpactModerate,
		Urgency:     types.UrgencyMedium,
	}
}

func TestNewPendingAction(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	action := model.NewPendingAction("session-1", "user-1", testIncident(), now, 5*time.Minute)

	gt.Value(t, action.ActionType).Equal(types.ActionTypeIncidentCreate)
	gt.Value(t, action.SessionID).Equal("session-1")
	gt.Value(t, action.UserID).Equal("user-1")
	gt.Value(t, action.CreatedAt).Equal(now)
	gt.Value(t, action.ExpiresAt).Equal(now.Add(5 * time.Minute))
	gt.String(t, action.ActionID.String()).NotEqual("")
	gt.String(t, action.Preview).Contains("**Summary:** Printer offline")
}

func TestActionIDsAreUnique(t *testing.T) {
	seen := make(map[model.ActionID]bool)
	for range 100 {
		id := model.NewActionID()
		gt.Bool(t, seen[id]).False()
		seen[id] = true
	}
}

func TestPendingActionExpired(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	action := model.NewPendingAction("session-1", "user-1", testIncident(), now, 5*time.Minute)

	gt.Bool(t, action.Expired(now)).False()
	gt.Bool(t, action.Expired(now.Add(5*time.Minute))).False()
	gt.Bool(t, action.Expired(now.Add(5*time.Minute+time.Second))).True()
}

func TestPendingActionBelongsTo(t *testing.T) {
	now := time.Now()
	action := model.NewPendingAction("session-1", "user-1", testIncident(), now, time.Minute)

	gt.Bool(t, action.BelongsTo("session-1")).True()
	gt.Bool(t, action.BelongsTo("session-2")).False()
	gt.Bool(t, action.BelongsTo("")).False()
}

func TestPendingActionStatus(t *testing.T) {
	now := time.Now()
	action := model.NewPendingAction("session-1", "user-1", testIncident(), now, time.Minute)
	gt.Value(t, action.Status()).Equal(types.StagingStatusStaged)

	action.DuplicateCandidates = []model.DuplicateCandidate{
		{RecordID: "INC000123", Title: "Printer offline on 3F", Score: 0.91},
	}
	gt.Value(t, action.Status()).Equal(types.StagingStatusDuplicateWarning)
}

func TestConfirmationPrompt(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	action := model.NewPendingAction("session-1", "user-1", testIncident(), now, 5*time.Minute)
	action.DuplicateCandidates = []model.DuplicateCandidate{
		{RecordID: "INC000123", Title: "Printer offline on 3F", Score: 0.91},
	}

	prompt := action.ConfirmationPrompt()
	gt.String(t, prompt).Contains("**Summary:** Printer offline")
	gt.String(t, prompt).Contains("confirm " + action.ActionID.String())
	gt.String(t, prompt).Contains("cancel " + action.ActionID.String())
	gt.String(t, prompt).Contains("INC000123")
	gt.String(t, prompt).Contains("(91% similar)")
	gt.String(t, prompt).Contains("2025-06-01T10:05:00Z")
}

func TestIncidentCreatePreviewTruncatesDescription(t *testing.T) {
	req := testIncident()
	req.Description = strings.Repeat("x", 300)

	preview := req.Preview()
	gt.String(t, preview).Contains(strings.Repeat("x", 200) + "...")
	gt.Bool(t, strings.Contains(preview, strings.Repeat("x", 201))).False()
}

func TestIncidentCreatePreviewCategoryChain(t *testing.T) {
	req := testIncident()
	req.CategoryTier1 = "Hardware"
	req.CategoryTier2 = "Printer"
	req.CategoryTier3 = "Laser"
	req.RequesterFirstName = "Alex"
	req.RequesterLastName = "Kim"

	preview := req.Preview()
	gt.String(t, preview).Contains("**Category:** Hardware > Printer > Laser")
	gt.String(t, preview).Contains("**Requester:** Alex Kim")
}

func TestIncidentCreateValidate(t *testing.T) {
	req := testIncident()
	gt.NoError(t, req.Validate())

	req.Summary = ""
	gt.Error(t, req.Validate())

	req = testIncident()
	req.Impact = types.Impact(9)
	gt.Error(t, req.Validate())
}

func TestIncidentUpdateValidate(t *testing.T) {
	summary := "Updated summary"
	req := &model.IncidentUpdateRequest{IncidentNumber: "INC000123", Summary: &summary}
	gt.NoError(t, req.Validate())

	// Missing incident number
	req = &model.IncidentUpdateRequest{Summary: &summary}
	gt.Error(t, req.Validate())

	// No fields to update
	req = &model.IncidentUpdateRequest{IncidentNumber: "INC000123"}
	gt.Error(t, req.Validate())

	badStatus := types.IncidentStatus(9)
	req = &model.IncidentUpdateRequest{IncidentNumber: "INC000123", Status: &badStatus}
	gt.Error(t, req.Validate())
}

func TestIncidentUpdatePreviewShowsOnlyChangedFields(t *testing.T) {
	resolution := "Replaced the fuser unit"
	status := types.IncidentStatusResolved
	req := &model.IncidentUpdateRequest{
		IncidentNumber: "INC000123",
		Resolution:     &resolution,
		Status:         &status,
	}

	preview := req.Preview()
	gt.String(t, preview).Contains("**Incident:** INC000123")
	gt.String(t, preview).Contains("**Status:** Resolved")
	gt.String(t, preview).Contains("**Resolution:** Replaced the fuser unit")
	gt.Bool(t, strings.Contains(preview, "**Summary:**")).False()
}

func TestWorkOrderCreateValidate(t *testing.T) {
	start := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	end := start.Add(-time.Hour)
	req := &model.WorkOrderCreateRequest{
		Summary:        "Provision laptop",
		Description:    "New hire starting Monday needs a laptop",
		Type:           types.WorkOrderTypeServiceRequest,
		Priority:       types.PriorityMedium,
		ScheduledStart: &start,
		ScheduledEnd:   &end,
	}
	gt.Error(t, req.Validate())

	end = start.Add(time.Hour)
	req.ScheduledEnd = &end
	gt.NoError(t, req.Validate())
}

func TestWorkOrderCreatePreview(t *testing.T) {
	start := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	req := &model.WorkOrderCreateRequest{
		Summary:        "Provision laptop",
		Description:    "New hire starting Monday needs a laptop",
		Type:           types.WorkOrderTypeServiceRequest,
		Priority:       types.PriorityMedium,
		ScheduledStart: &start,
	}

	preview := req.Preview()
	gt.String(t, preview).Contains("**Type:** Service Request")
	gt.String(t, preview).Contains("**Priority:** Medium")
	gt.String(t, preview).Contains("**Scheduled Start:** 2025-06-02T09:00:00Z")
}

func TestWorkOrderUpdateValidate(t *testing.T) {
	workLog := "Called the requester, waiting for a reply"
	req := &model.WorkOrderUpdateRequest{WorkOrderNumber: "WO0000042", WorkLog: &workLog}
	gt.NoError(t, req.Validate())

	req = &model.WorkOrderUpdateRequest{WorkOrderNumber: "WO0000042"}
	gt.Error(t, req.Validate())

	badType := types.WorkOrderType(9)
	req = &model.WorkOrderUpdateRequest{WorkOrderNumber: "WO0000042", Type: &badType}
	gt.Error(t, req.Validate())
}

func TestSearchText(t *testing.T) {
	req := testIncident()
	gt.Value(t, req.SearchText()).Equal("Printer offline The 3rd floor printer does not respond to jobs")

	summary := "Updated"
	update := &model.IncidentUpdateRequest{IncidentNumber: "INC000123", Summary: &summary}
	gt.Value(t, update.SearchText()).Equal("Updated")
}

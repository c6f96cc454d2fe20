package itsm_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/remedian-lab/remedian/pkg/domain/model"
	"github.com/remedian-lab/remedian/pkg/domain/types"
	"github.com/remedian-lab/remedian/pkg/service/itsm"
)

func TestApplyIncidentCreate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gt.Value(t, r.Method).Equal(http.MethodPost)
		gt.Value(t, r.URL.Path).Equal("/api/v1/incidents")

		var body map[string]any
		gt.NoError(t, json.NewDecoder(r.Body).Decode(&body)).Required()
		gt.Value(t, body["summary"]).Equal("Printer offline")
		gt.Value(t, body["impact"]).Equal(float64(3))

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"record_id": "INC000000000201", "message": "Incident created"}`))
	}))
	defer srv.Close()

	client, err := itsm.New(srv.URL)
	gt.NoError(t, err).Required()

	payload := &model.IncidentCreateRequest{
		Summary:     "Printer offline",
		Description: "Printer on floor 3 is unreachable",
		Impact:      types.ImpactModerate,
		Urgency:     types.UrgencyMedium,
	}

	result, err := client.Apply(context.Background(), types.ActionTypeIncidentCreate, payload)
	gt.NoError(t, err).Required()
	gt.Bool(t, result.Success).True()
	gt.Value(t, result.RecordID).Equal("INC000000000201")
	gt.Value(t, result.RecordType).Equal("incident")
}

func TestApplyIncidentUpdate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gt.Value(t, r.Method).Equal(http.MethodPatch)
		gt.Value(t, r.URL.Path).Equal("/api/v1/incidents/INC000000000101")

		var body map[string]any
		gt.NoError(t, json.NewDecoder(r.Body).Decode(&body)).Required()
		gt.Value(t, body["status"]).Equal(float64(4))
		gt.Value(t, body["resolution"]).Equal("Replaced toner cartridge")

		// unset fields stay out of the PATCH body
		_, hasSummary := body["summary"]
		gt.Bool(t, hasSummary).False()

		_, _ = w.Write([]byte(`{"record_id": "INC000000000101", "message": "Incident updated"}`))
	}))
	defer srv.Close()

	client, err := itsm.New(srv.URL)
	gt.NoError(t, err).Required()

	status := types.IncidentStatusResolved
	resolution := "Replaced toner cartridge"
	payload := &model.IncidentUpdateRequest{
		IncidentNumber: "INC000000000101",
		Status:         &status,
		Resolution:     &resolution,
	}

	result, err := client.Apply(context.Background(), types.ActionTypeIncidentUpdate, payload)
	gt.NoError(t, err).Required()
	gt.Bool(t, result.Success).True()
	gt.Value(t, result.RecordID).Equal("INC000000000101")
}

func TestApplyWorkOrderCreate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gt.Value(t, r.Method).Equal(http.MethodPost)
		gt.Value(t, r.URL.Path).Equal("/api/v1/workorders")

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"record_id": "WO0000000000301"}`))
	}))
	defer srv.Close()

	client, err := itsm.New(srv.URL)
	gt.NoError(t, err).Required()

	payload := &model.WorkOrderCreateRequest{
		Summary:     "Provision laptop",
		Description: "New hire starting Monday needs a standard laptop",
		Type:        types.WorkOrderTypeServiceRequest,
		Priority:    types.PriorityMedium,
	}

	result, err := client.Apply(context.Background(), types.ActionTypeWorkOrderCreate, payload)
	gt.NoError(t, err).Required()
	gt.Bool(t, result.Success).True()
	gt.Value(t, result.RecordID).Equal("WO0000000000301")
	gt.Value(t, result.RecordType).Equal("work_order")
}

func TestApplyBackendRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"error": "assigned group does not exist"}`))
	}))
	defer srv.Close()

	client, err := itsm.New(srv.URL)
	gt.NoError(t, err).Required()

	payload := &model.IncidentCreateRequest{
		Summary:     "Printer offline",
		Description: "Printer on floor 3 is unreachable",
		Impact:      types.ImpactModerate,
		Urgency:     types.UrgencyMedium,
	}

	result, err := client.Apply(context.Background(), types.ActionTypeIncidentCreate, payload)
	gt.NoError(t, err).Required()
	gt.Bool(t, result.Success).False()
	gt.Value(t, result.ErrorDetail).Equal("assigned group does not exist")
}

func TestApplyPayloadTypeMismatch(t *testing.T) {
	client, err := itsm.New("http://localhost:1")
	gt.NoError(t, err).Required()

	payload := &model.WorkOrderCreateRequest{}
	_, err = client.Apply(context.Background(), types.ActionTypeIncidentCreate, payload)
	gt.Value(t, err).NotNil()
}

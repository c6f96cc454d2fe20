package types_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/remedian-lab/remedian/pkg/domain/types"
)

func TestActionTypeIsValid(t *testing.T) {
	for _, at := range types.AllActionTypes() {
		gt.Bool(t, at.IsValid()).True()
	}
	gt.Bool(t, types.ActionType("INCIDENT_DELETE").IsValid()).False()
	gt.Bool(t, types.ActionType("").IsValid()).False()
}

func TestActionTypeIsCreate(t *testing.T) {
	gt.Bool(t, types.ActionTypeIncidentCreate.IsCreate()).True()
	gt.Bool(t, types.ActionTypeWorkOrderCreate.IsCreate()).True()
	gt.Bool(t, types.ActionTypeIncidentUpdate.IsCreate()).False()
	gt.Bool(t, types.ActionTypeWorkOrderUpdate.IsCreate()).False()
}

func TestActionTypeFamily(t *testing.T) {
	gt.Value(t, types.ActionTypeIncidentCreate.Family()).Equal("incident")
	gt.Value(t, types.ActionTypeIncidentUpdate.Family()).Equal("incident")
	gt.Value(t, types.ActionTypeWorkOrderCreate.Family()).Equal("work_order")
	gt.Value(t, types.ActionTypeWorkOrderUpdate.Family()).Equal("work_order")
	gt.Value(t, types.ActionType("bogus").Family()).Equal("")
}

func TestParseActionType(t *testing.T) {
	at, err := types.ParseActionType("WORK_ORDER_CREATE")
	gt.NoError(t, err).Required()
	gt.Value(t, at).Equal(types.ActionTypeWorkOrderCreate)

	_, err = types.ParseActionType("work_order_create")
	gt.Error(t, err)
}

func TestStagingStatusIsValid(t *testing.T) {
	for _, s := range types.AllStagingStatuses() {
		gt.Bool(t, s.IsValid()).True()
	}
	gt.Bool(t, types.StagingStatus("PENDING").IsValid()).False()
}

func TestImpactBounds(t *testing.T) {
	gt.Bool(t, types.ImpactExtensive.IsValid()).True()
	gt.Bool(t, types.ImpactMinor.IsValid()).True()
	gt.Bool(t, types.Impact(0).IsValid()).False()
	gt.Bool(t, types.Impact(5).IsValid()).False()
	gt.Value(t, types.ImpactModerate.Label()).Equal("Moderate/Limited")
}

func TestUrgencyBounds(t *testing.T) {
	gt.Bool(t, types.UrgencyCritical.IsValid()).True()
	gt.Bool(t, types.UrgencyLow.IsValid()).True()
	gt.Bool(t, types.Urgency(0).IsValid()).False()
	gt.Value(t, types.UrgencyMedium.Label()).Equal("Medium")
}

func TestWorkOrderTypeAndPriority(t *testing.T) {
	gt.Bool(t, types.WorkOrderTypeGeneral.IsValid()).True()
	gt.Bool(t, types.WorkOrderTypeProject.IsValid()).True()
	gt.Bool(t, types.WorkOrderType(0).IsValid()).False()
	gt.Value(t, types.WorkOrderTypeServiceRequest.Label()).Equal("Service Request")

	gt.Bool(t, types.PriorityCritical.IsValid()).True()
	gt.Bool(t, types.Priority(5).IsValid()).False()
	gt.Value(t, types.PriorityHigh.Label()).Equal("High")
}

func TestIncidentStatusRange(t *testing.T) {
	gt.Bool(t, types.IncidentStatusNew.IsValid()).True()
	gt.Bool(t, types.IncidentStatusClosed.IsValid()).True()
	gt.Bool(t, types.IncidentStatus(6).IsValid()).False()
	gt.Value(t, types.IncidentStatusInProgress.Label()).Equal("In Progress")
}

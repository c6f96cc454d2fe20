package types

import "fmt"

// ActionType represents the kind of mutation a staged action will perform
// against the backing ITSM system. The set is closed per deployment.
type ActionType string

const (
	ActionTypeIncidentCreate  ActionType = "INCIDENT_CREATE"
	ActionTypeIncidentUpdate  ActionType = "INCIDENT_UPDATE"
	ActionTypeWorkOrderCreate ActionType = "WORK_ORDER_CREATE"
	ActionTypeWorkOrderUpdate ActionType = "WORK_ORDER_UPDATE"
)

// AllActionTypes returns all valid action types
func AllActionTypes() []ActionType {
	return []ActionType{
		ActionTypeIncidentCreate,
		ActionTypeIncidentUpdate,
		ActionTypeWorkOrderCreate,
		ActionTypeWorkOrderUpdate,
	}
}

// IsValid checks if the action type is valid
func (t ActionType) IsValid() bool {
	switch t {
	case ActionTypeIncidentCreate,
		ActionTypeIncidentUpdate,
		ActionTypeWorkOrderCreate,
		ActionTypeWorkOrderUpdate:
		return true
	default:
		return false
	}
}

// IsCreate reports whether the action type creates a new record.
// Only create actions are subject to duplicate advisory checks.
func (t ActionType) IsCreate() bool {
	return t == ActionTypeIncidentCreate || t == ActionTypeWorkOrderCreate
}

// Family returns the record family of the action type ("incident" or
// "work_order"), used to filter pending-action listings.
func (t ActionType) Family() string {
	switch t {
	case ActionTypeIncidentCreate, ActionTypeIncidentUpdate:
		return "incident"
	case ActionTypeWorkOrderCreate, ActionTypeWorkOrderUpdate:
		return "work_order"
	default:
		return ""
	}
}

// Label returns a human-readable label for the action type
func (t ActionType) Label() string {
	switch t {
	case ActionTypeIncidentCreate:
		return "Incident"
	case ActionTypeIncidentUpdate:
		return "Incident Update"
	case ActionTypeWorkOrderCreate:
		return "Work Order"
	case ActionTypeWorkOrderUpdate:
		return "Work Order Update"
	default:
		return "Unknown"
	}
}

// String returns the string representation of the action type
func (t ActionType) String() string {
	return string(t)
}

// ParseActionType parses a string into an ActionType
func ParseActionType(s string) (ActionType, error) {
	t := ActionType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid action type: %s", s)
	}
	return t, nil
}

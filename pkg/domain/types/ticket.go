package types

// Enumerated ticket field values mirror the backing ITSM system's field
// constraints. They are plain ints on the wire; the helpers here provide
// range checks and display labels for preview rendering.

// Impact levels for incidents (1=Extensive ... 4=Minor)
type Impact int

const (
	ImpactExtensive   Impact = 1
	ImpactSignificant Impact = 2
	ImpactModerate    Impact = 3
	ImpactMinor       Impact = 4
)

// IsValid checks if the impact level is within the allowed range
func (i Impact) IsValid() bool {
	return i >= ImpactExtensive && i <= ImpactMinor
}

// Label returns a human-readable label for the impact level
func (i Impact) Label() string {
	switch i {
	case ImpactExtensive:
		return "Extensive/Widespread"
	case ImpactSignificant:
		return "Significant/Large"
	case ImpactModerate:
		return "Moderate/Limited"
	case ImpactMinor:
		return "Minor/Localized"
	default:
		return "Unknown"
	}
}

// Urgency levels for incidents (1=Critical ... 4=Low)
type Urgency int

const (
	UrgencyCritical Urgency = 1
	UrgencyHigh     Urgency = 2
	UrgencyMedium   Urgency = 3
	UrgencyLow      Urgency = 4
)

// IsValid checks if the urgency level is within the allowed range
func (u Urgency) IsValid() bool {
	return u >= UrgencyCritical && u <= UrgencyLow
}

// Label returns a human-readable label for the urgency level
func (u Urgency) Label() string {
	switch u {
	case UrgencyCritical:
		return "Critical"
	case UrgencyHigh:
		return "High"
	case UrgencyMedium:
		return "Medium"
	case UrgencyLow:
		return "Low"
	default:
		return "Unknown"
	}
}

// IncidentStatus values for incident updates (0=New ... 5=Closed)
type IncidentStatus int

const (
	IncidentStatusNew        IncidentStatus = 0
	IncidentStatusAssigned   IncidentStatus = 1
	IncidentStatusInProgress IncidentStatus = 2
	IncidentStatusPending    IncidentStatus = 3
	IncidentStatusResolved   IncidentStatus = 4
	IncidentStatusClosed     IncidentStatus = 5
)

// IsValid checks if the incident status is within the allowed range
func (s IncidentStatus) IsValid() bool {
	return s >= IncidentStatusNew && s <= IncidentStatusClosed
}

// Label returns a human-readable label for the incident status
func (s IncidentStatus) Label() string {
	switch s {
	case IncidentStatusNew:
		return "New"
	case IncidentStatusAssigned:
		return "Assigned"
	case IncidentStatusInProgress:
		return "In Progress"
	case IncidentStatusPending:
		return "Pending"
	case IncidentStatusResolved:
		return "Resolved"
	case IncidentStatusClosed:
		return "Closed"
	default:
		return "Unknown"
	}
}

// WorkOrderType values (1=General ... 4=Project)
type WorkOrderType int

const (
	WorkOrderTypeGeneral        WorkOrderType = 1
	WorkOrderTypeChange         WorkOrderType = 2
	WorkOrderTypeServiceRequest WorkOrderType = 3
	WorkOrderTypeProject        WorkOrderType = 4
)

// IsValid checks if the work order type is within the allowed range
func (t WorkOrderType) IsValid() bool {
	return t >= WorkOrderTypeGeneral && t <= WorkOrderTypeProject
}

// Label returns a human-readable label for the work order type
func (t WorkOrderType) Label() string {
	switch t {
	case WorkOrderTypeGeneral:
		return "General"
	case WorkOrderTypeChange:
		return "Change"
	case WorkOrderTypeServiceRequest:
		return "Service Request"
	case WorkOrderTypeProject:
		return "Project"
	default:
		return "Unknown"
	}
}

// Priority levels for work orders (1=Critical ... 4=Low)
type Priority int

const (
	PriorityCritical Priority = 1
	PriorityHigh     Priority = 2
	PriorityMedium   Priority = 3
	PriorityLow      Priority = 4
)

// IsValid checks if the priority level is within the allowed range
func (p Priority) IsValid() bool {
	return p >= PriorityCritical && p <= PriorityLow
}

// Label returns a human-readable label for the priority level
func (p Priority) Label() string {
	switch p {
	case PriorityCritical:
		return "Critical"
	case PriorityHigh:
		return "High"
	case PriorityMedium:
		return "Medium"
	case PriorityLow:
		return "Low"
	default:
		return "Unknown"
	}
}

package common

// AuthorizationHeaderName is the HTTP header carrying the bearer token.
const AuthorizationHeaderName = "Authorization"

// BearerScheme is the only accepted authorization scheme.
const BearerScheme = "Bearer"

// Event types accepted by the calendar.
const (
	EventTypeExam         = "Exam"
	EventTypePresentation = "Presentation"
	EventTypeAssignment   = "Assignment"
	EventTypeProject      = "Project"
	EventTypeOther        = "Other"
)

// EventTypes lists every accepted event type in display order.
var EventTypes = []string{
	EventTypeExam,
	EventTypePresentation,
	EventTypeAssignment,
	EventTypeProject,
	EventTypeOther,
}

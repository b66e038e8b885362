package domain

import "errors"

// Sentinel errors shared by repositories and use cases.
var (
	ErrNotFound    = errors.New("not found")
	ErrForbidden   = errors.New("forbidden")
	ErrEventExists = errors.New("event already exists")
)

// Rule names a business rule checked by the Event aggregate or its value objects.
type Rule string

// Validation rules in the order the aggregate checks them.
const (
	RuleEventID     Rule = "event_id"
	RuleOrganizerID Rule = "organizer_id"
	RuleName        Rule = "name"
	RuleDescription Rule = "description"
	RuleDateOrder   Rule = "date_order"
	RuleDateInPast  Rule = "date_in_past"
	RuleEventType   Rule = "event_type"
	RuleTicketType  Rule = "ticket_type"
	RuleTicketPrice Rule = "ticket_price"
	RuleMoneyAmount Rule = "money_amount"
	RuleLocation    Rule = "location"
)

// ValidationError reports a violated business rule.
type ValidationError struct {
	Rule    Rule
	Message string
}

// NewValidationError returns a *ValidationError for rule.
func NewValidationError(rule Rule, message string) *ValidationError {
	return &ValidationError{Rule: rule, Message: message}
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsValidationError reports whether err wraps a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

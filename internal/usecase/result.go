package usecase

import (
	"errors"

	"eventcatalog/internal/domain"
)

// FailureKind classifies a failed CommandResult for callers that map it to a transport
// status.
type FailureKind string

const (
	FailureValidation FailureKind = "validation"
	FailureNotFound   FailureKind = "not_found"
	FailureForbidden  FailureKind = "forbidden"
	FailureConflict   FailureKind = "conflict"
	FailureInternal   FailureKind = "internal"
)

// MsgEventNotFound is the error text of a command naming an unknown event.
const MsgEventNotFound = "Event not found"

// CommandResult is what every command handler returns. Business failures are reported
// here and never as Go errors.
type CommandResult struct {
	Success bool        `json:"success"`
	Data    any         `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Kind    FailureKind `json:"-"`
}

type CreateEventResult struct {
	EventID string `json:"event_id"`
}

type UpdateEventResult struct {
	EventID string   `json:"event_id"`
	Changes []string `json:"changes"`
}

type PublishEventResult struct {
	EventID   string `json:"event_id"`
	Published bool   `json:"published"`
}

type CancelEventResult struct {
	EventID   string `json:"event_id"`
	Cancelled bool   `json:"cancelled"`
}

func succeeded(data any) CommandResult {
	return CommandResult{Success: true, Data: data}
}

func failed(kind FailureKind, message string) CommandResult {
	return CommandResult{Success: false, Error: message, Kind: kind}
}

// failedFrom maps a domain or store error to a result. ok is false for errors that are
// not business outcomes; the caller logs those.
func failedFrom(err error) (result CommandResult, ok bool) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		return failed(FailureValidation, ve.Message), true
	case errors.Is(err, domain.ErrNotFound):
		return failed(FailureNotFound, MsgEventNotFound), true
	case errors.Is(err, domain.ErrForbidden):
		return failed(FailureForbidden, "event belongs to another organizer"), true
	case errors.Is(err, domain.ErrEventExists):
		return failed(FailureConflict, domain.ErrEventExists.Error()), true
	}
	return failed(FailureInternal, "internal error"), false
}

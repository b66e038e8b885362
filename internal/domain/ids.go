package domain

import (
	"strings"

	"github.com/google/uuid"
)

// EventID identifies an Event aggregate.
type EventID string

// NewEventID returns a fresh random EventID.
func NewEventID() EventID {
	return EventID(uuid.NewString())
}

// ParseEventID trims s and rejects an empty value.
func ParseEventID(s string) (EventID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", NewValidationError(RuleEventID, "event id is required")
	}
	return EventID(s), nil
}

func (id EventID) String() string { return string(id) }

// OrganizerID identifies the owner of an event.
type OrganizerID string

// NewOrganizerID returns a fresh random OrganizerID.
func NewOrganizerID() OrganizerID {
	return OrganizerID(uuid.NewString())
}

// ParseOrganizerID trims s and rejects an empty value.
func ParseOrganizerID(s string) (OrganizerID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", NewValidationError(RuleOrganizerID, "organizer id is required")
	}
	return OrganizerID(s), nil
}

func (id OrganizerID) String() string { return string(id) }

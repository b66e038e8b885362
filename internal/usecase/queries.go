package usecase

import "eventcatalog/internal/domain"

// Query is implemented only by the query types of this package.
type Query interface {
	queryName() string
}

// GetEventByID yields *domain.EventDTO, nil when the event is unknown.
type GetEventByID struct {
	EventID domain.EventID
}

// GetEventsByOrganizer yields []domain.EventDTO, newest first.
type GetEventsByOrganizer struct {
	OrganizerID domain.OrganizerID
}

// GetPublishedEvents yields []domain.EventDTO, soonest first.
type GetPublishedEvents struct{}

// GetAllEvents yields []domain.EventDTO, newest first.
type GetAllEvents struct{}

// GetEventStats yields domain.EventStats.
type GetEventStats struct{}

func (GetEventByID) queryName() string         { return "GetEventByID" }
func (GetEventsByOrganizer) queryName() string { return "GetEventsByOrganizer" }
func (GetPublishedEvents) queryName() string   { return "GetPublishedEvents" }
func (GetAllEvents) queryName() string         { return "GetAllEvents" }
func (GetEventStats) queryName() string        { return "GetEventStats" }

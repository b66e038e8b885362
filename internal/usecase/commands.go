package usecase

import (
	"strings"
	"time"

	"eventcatalog/internal/domain"
)

// Command is implemented only by the command types of this package.
type Command interface {
	commandName() string
}

// EventFields are the organizer-supplied attributes shared by create and update.
type EventFields struct {
	Name        string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	Address     *string
	IsOnline    bool
	EventType   domain.EventType
	TicketType  domain.TicketType
	TicketPrice *float64
	Currency    string
}

// details converts the fields into aggregate input. A price is rejected here when it is
// negative; every other rule is left to the aggregate so its check order holds.
func (f EventFields) details() (domain.EventDetails, error) {
	d := domain.EventDetails{
		Name:        f.Name,
		Description: f.Description,
		StartDate:   f.StartDate,
		EndDate:     f.EndDate,
		Location:    domain.Location{IsOnline: f.IsOnline},
		EventType:   f.EventType,
		TicketType:  f.TicketType,
	}
	if f.Address != nil {
		if a := strings.TrimSpace(*f.Address); a != "" {
			d.Location.Address = &a
		}
	}
	if f.TicketPrice != nil {
		price, err := domain.NewMoney(*f.TicketPrice, f.Currency)
		if err != nil {
			return domain.EventDetails{}, err
		}
		d.TicketPrice = &price
	}
	return d, nil
}

type CreateEvent struct {
	OrganizerID domain.OrganizerID
	EventFields
}

// UpdateEvent replaces every editable field. A non-empty ActorID must own the event.
type UpdateEvent struct {
	EventID domain.EventID
	ActorID domain.OrganizerID
	EventFields
}

type PublishEvent struct {
	EventID domain.EventID
	ActorID domain.OrganizerID
}

type CancelEvent struct {
	EventID domain.EventID
	ActorID domain.OrganizerID
	Reason  string
}

func (CreateEvent) commandName() string  { return "CreateEvent" }
func (UpdateEvent) commandName() string  { return "UpdateEvent" }
func (PublishEvent) commandName() string { return "PublishEvent" }
func (CancelEvent) commandName() string  { return "CancelEvent" }

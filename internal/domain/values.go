package domain

import "strings"

// DefaultCurrency is used when a price is given without a currency.
const DefaultCurrency = "PLN"

// EventType controls who can see an event.
type EventType string

const (
	EventTypePublic  EventType = "public"
	EventTypePrivate EventType = "private"
)

// Valid reports whether t is a known event type.
func (t EventType) Valid() bool {
	return t == EventTypePublic || t == EventTypePrivate
}

// TicketType tells whether attendance is paid.
type TicketType string

const (
	TicketTypeFree TicketType = "free"
	TicketTypePaid TicketType = "paid"
)

// Valid reports whether t is a known ticket type.
func (t TicketType) Valid() bool {
	return t == TicketTypeFree || t == TicketTypePaid
}

// Money is a non-negative amount in a currency.
type Money struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// NewMoney validates amount and defaults an empty currency to DefaultCurrency.
func NewMoney(amount float64, currency string) (Money, error) {
	if amount < 0 {
		return Money{}, NewValidationError(RuleMoneyAmount, "amount cannot be negative")
	}
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		currency = DefaultCurrency
	}
	return Money{Amount: amount, Currency: currency}, nil
}

// Equal compares amount and currency.
func (m Money) Equal(other Money) bool {
	return m.Amount == other.Amount && m.Currency == other.Currency
}

// Location is where an event takes place. An event is either held at an address,
// online, or both.
type Location struct {
	Address  *string `json:"address,omitempty"`
	IsOnline bool    `json:"is_online"`
}

// NewLocation trims address and rejects a location with neither an address nor online flag.
func NewLocation(address *string, isOnline bool) (Location, error) {
	loc := Location{IsOnline: isOnline}
	if address != nil {
		if a := strings.TrimSpace(*address); a != "" {
			loc.Address = &a
		}
	}
	if err := loc.Validate(); err != nil {
		return Location{}, err
	}
	return loc, nil
}

// Validate checks the address-or-online rule.
func (l Location) Validate() error {
	if (l.Address == nil || strings.TrimSpace(*l.Address) == "") && !l.IsOnline {
		return NewValidationError(RuleLocation, "event must have either address or be online")
	}
	return nil
}

// Equal compares address values and the online flag.
func (l Location) Equal(other Location) bool {
	if l.IsOnline != other.IsOnline {
		return false
	}
	if l.Address == nil || other.Address == nil {
		return l.Address == nil && other.Address == nil
	}
	return *l.Address == *other.Address
}

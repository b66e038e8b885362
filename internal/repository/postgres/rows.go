package postgres

import (
	"database/sql"

	"eventcatalog/internal/domain"
)

type rowScanner interface {
	Scan(dest ...any) error
}

// scanEventRow reads one row selected with eventColumns.
func scanEventRow(s rowScanner) (domain.EventDTO, error) {
	var row domain.EventDTO
	var eventType, ticketType string
	var addressNull, currencyNull sql.NullString
	var amountNull sql.NullFloat64
	err := s.Scan(
		&row.ID, &row.OrganizerID, &row.Name, &row.Description, &row.StartDate, &row.EndDate,
		&addressNull, &row.IsOnline, &eventType, &ticketType, &amountNull, &currencyNull,
		&row.IsPublished, &row.CreatedAt, &row.UpdatedAt,
	)
	if err != nil {
		return domain.EventDTO{}, err
	}
	row.EventType = domain.EventType(eventType)
	row.TicketType = domain.TicketType(ticketType)
	if addressNull.Valid {
		row.Address = &addressNull.String
	}
	if amountNull.Valid {
		row.TicketPriceAmount = &amountNull.Float64
	}
	if currencyNull.Valid {
		row.TicketPriceCurrency = &currencyNull.String
	}
	return row, nil
}

func scanEventRows(rows *sql.Rows) ([]domain.EventDTO, error) {
	defer rows.Close()
	out := make([]domain.EventDTO, 0)
	for rows.Next() {
		row, err := scanEventRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// snapshotFromRow rebuilds aggregate state from a stored row.
func snapshotFromRow(row domain.EventDTO) domain.EventSnapshot {
	s := domain.EventSnapshot{
		ID:          domain.EventID(row.ID),
		OrganizerID: domain.OrganizerID(row.OrganizerID),
		Name:        row.Name,
		Description: row.Description,
		StartDate:   row.StartDate,
		EndDate:     row.EndDate,
		Location:    domain.Location{Address: row.Address, IsOnline: row.IsOnline},
		EventType:   row.EventType,
		TicketType:  row.TicketType,
		IsPublished: row.IsPublished,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
	if row.TicketPriceAmount != nil {
		price := domain.Money{Amount: *row.TicketPriceAmount, Currency: domain.DefaultCurrency}
		if row.TicketPriceCurrency != nil {
			price.Currency = *row.TicketPriceCurrency
		}
		s.TicketPrice = &price
	}
	return s
}

// mutableArgs are the values bound to columns 3 to 13 of eventColumns.
func mutableArgs(row domain.EventDTO) []any {
	return []any{
		row.Name, row.Description, row.StartDate, row.EndDate, row.Address, row.IsOnline,
		string(row.EventType), string(row.TicketType), row.TicketPriceAmount, row.TicketPriceCurrency,
		row.IsPublished,
	}
}

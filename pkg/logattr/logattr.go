package logattr

import "log/slog"

func ServiceName(serviceName string) slog.Attr {
	return slog.String("service_name", serviceName)
}

func Component(component string) slog.Attr {
	return slog.String("component", component)
}

func EventID(eventID string) slog.Attr {
	return slog.String("event_id", eventID)
}

func OrganizerID(organizerID string) slog.Attr {
	return slog.String("organizer_id", organizerID)
}

func AggregateID(aggregateID string) slog.Attr {
	return slog.String("aggregate_id", aggregateID)
}

func DomainEventID(domainEventID string) slog.Attr {
	return slog.String("domain_event_id", domainEventID)
}

func DomainEventType(eventType string) slog.Attr {
	return slog.String("domain_event_type", eventType)
}

func Command(command string) slog.Attr {
	return slog.String("command", command)
}

func Query(query string) slog.Attr {
	return slog.String("query", query)
}

func Subscriber(index int) slog.Attr {
	return slog.Int("subscriber", index)
}

func Error(err string) slog.Attr {
	return slog.String("error", err)
}

func Recipient(address string) slog.Attr {
	return slog.String("recipient", address)
}

func MessageID(id string) slog.Attr {
	return slog.String("message_id", id)
}

func RequestID(id string) slog.Attr {
	return slog.String("request_id", id)
}

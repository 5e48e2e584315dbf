package event

import "github.com/bryce-dotcom/og-dealer-app-sub001/internal/domain/ledger"

// RegisterAllEvents registers every event type the outbox may hold
func RegisterAllEvents(serializer *EventSerializer) {
	serializer.Register(ledger.EventTypeManualExpenseCreated, &ledger.ManualExpenseCreatedEvent{})
}

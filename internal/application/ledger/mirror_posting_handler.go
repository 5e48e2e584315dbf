package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/domain/ledger"
	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/domain/shared"
	"go.uber.org/zap"
)

// MirrorPostingHandler handles ManualExpenseCreatedEvent by booking the
// expense into the company ledger
type MirrorPostingHandler struct {
	vehicleRepo ledger.VehicleRepository
	poster      *LedgerPoster
	logger      *zap.Logger
}

// NewMirrorPostingHandler creates a new handler for manual expense events
func NewMirrorPostingHandler(vehicleRepo ledger.VehicleRepository, poster *LedgerPoster, logger *zap.Logger) *MirrorPostingHandler {
	return &MirrorPostingHandler{vehicleRepo: vehicleRepo, poster: poster, logger: logger}
}

// EventTypes returns the event types this handler is interested in
func (h *MirrorPostingHandler) EventTypes() []string {
	return []string{ledger.EventTypeManualExpenseCreated}
}

// Handle posts the expense carried by the event. The vehicle is looked up
// for its label only; a vehicle deleted since does not block the posting.
func (h *MirrorPostingHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	created, ok := event.(*ledger.ManualExpenseCreatedEvent)
	if !ok {
		h.logger.Error("unexpected event type",
			zap.String("expected", ledger.EventTypeManualExpenseCreated),
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			ledger.EventTypeManualExpenseCreated, event.EventType())
	}

	vehicle, err := h.vehicleRepo.FindByIDForDealer(ctx, created.DealerID(), created.VehicleID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return shared.NewMirrorPostingFailure(fmt.Errorf("load vehicle: %w", err))
		}
		vehicle = nil
	}

	_, err = h.poster.PostToCompanyLedger(ctx, vehicle, created.Expense())
	return err
}

var _ shared.EventHandler = (*MirrorPostingHandler)(nil)

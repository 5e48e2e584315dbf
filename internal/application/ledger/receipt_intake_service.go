package ledger

import (
	"context"
	"time"

	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/domain/ledger"
	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/domain/shared"
	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// ReceiptIntakeService turns receipt images into expense suggestions. It
// never fails: extraction problems degrade to an empty suggestion.
type ReceiptIntakeService struct {
	extractor ledger.ReceiptExtractor
	timeout   time.Duration
	logger    *zap.Logger
}

// NewReceiptIntakeService creates a new ReceiptIntakeService. timeout <= 0 disables the deadline.
func NewReceiptIntakeService(extractor ledger.ReceiptExtractor, timeout time.Duration, logger *zap.Logger) *ReceiptIntakeService {
	return &ReceiptIntakeService{extractor: extractor, timeout: timeout, logger: logger}
}

// Suggest extracts what it can from image
func (s *ReceiptIntakeService) Suggest(ctx context.Context, image ledger.ReceiptImage) *ledger.ReceiptSuggestion {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	suggestion, err := s.extractor.Extract(ctx, image)
	if err != nil {
		logger.Enrich(ctx, s.logger).Warn("receipt extraction degraded to manual entry",
			zap.String("filename", image.Filename),
			zap.Int("bytes", len(image.Data)),
			zap.Error(shared.NewExtractionFailure(err)),
		)
		return &ledger.ReceiptSuggestion{Degraded: true}
	}
	if suggestion == nil {
		return &ledger.ReceiptSuggestion{Degraded: true}
	}
	suggestion.Sanitize()
	return suggestion
}

// Extract is the HTTP-facing form of Suggest
func (s *ReceiptIntakeService) Extract(ctx context.Context, image ledger.ReceiptImage) ReceiptSuggestionResponse {
	return ToReceiptSuggestionResponse(s.Suggest(ctx, image))
}

// Prefill fills the empty fields of req from image and reports whether
// extraction degraded. Fields the user entered are never replaced.
func (s *ReceiptIntakeService) Prefill(ctx context.Context, image ledger.ReceiptImage, req *CreateExpenseRequest) bool {
	suggestion := s.Suggest(ctx, image)
	draft := ledger.ExpenseDraft{
		Description: req.Description,
		Amount:      req.Amount,
		Category:    req.Category,
	}
	suggestion.ApplyTo(&draft)
	req.Description = draft.Description
	req.Amount = draft.Amount
	req.Category = draft.Category
	return suggestion.Degraded
}

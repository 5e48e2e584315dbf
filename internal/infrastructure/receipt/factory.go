package receipt

import (
	"context"

	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/domain/ledger"
	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/infrastructure/config"
	"go.uber.org/zap"
)

// NewExtractor builds the extractor selected by cfg. A gemini provider
// without an API key falls back to NoopExtractor with a warning.
func NewExtractor(ctx context.Context, cfg config.ReceiptConfig, logger *zap.Logger) (ledger.ReceiptExtractor, error) {
	if cfg.Provider != "gemini" {
		logger.Info("receipt extraction disabled", zap.String("provider", cfg.Provider))
		return NoopExtractor{}, nil
	}
	if cfg.APIKey == "" {
		logger.Warn("receipt.api_key not set, receipt extraction will always degrade")
		return NoopExtractor{}, nil
	}

	client, err := NewGeminiClient(ctx, cfg.APIKey)
	if err != nil {
		return nil, err
	}
	logger.Info("receipt extraction enabled",
		zap.String("provider", cfg.Provider),
		zap.String("model", cfg.Model),
		zap.Int("max_dimension", cfg.MaxDimension),
	)
	return NewGeminiExtractor(client.Models, cfg.Model, NewPreprocessor(cfg.MaxDimension, cfg.MaxImageBytes), logger), nil
}

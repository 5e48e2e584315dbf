package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/domain/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type slowExtractor struct{}

func (slowExtractor) Extract(ctx context.Context, _ ledger.ReceiptImage) (*ledger.ReceiptSuggestion, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func strPtr(s string) *string { return &s }

func categoryPtr(c ledger.ExpenseCategory) *ledger.ExpenseCategory { return &c }

func TestReceiptIntakeService_Suggest(t *testing.T) {
	ctx := context.Background()
	image := ledger.ReceiptImage{Data: []byte{0xff, 0xd8}, ContentType: "image/jpeg", Filename: "receipt.jpg"}

	t.Run("sanitizes a successful extraction", func(t *testing.T) {
		extractor := new(MockReceiptExtractor)
		extractor.On("Extract", mock.Anything, image).Return(&ledger.ReceiptSuggestion{
			Description: strPtr("  AutoZone brake pads "),
			Amount:      decPtr("-129.999"),
			Category:    categoryPtr("parts"),
		}, nil)
		svc := NewReceiptIntakeService(extractor, time.Second, zap.NewNop())

		s := svc.Suggest(ctx, image)
		require.False(t, s.Degraded)
		assert.Equal(t, "AutoZone brake pads", *s.Description)
		assert.True(t, dec("130").Equal(*s.Amount))
		assert.Equal(t, ledger.ExpenseCategoryParts, *s.Category)
	})

	t.Run("extractor error degrades", func(t *testing.T) {
		core, logs := observer.New(zap.WarnLevel)
		extractor := new(MockReceiptExtractor)
		extractor.On("Extract", mock.Anything, image).Return(nil, errors.New("quota exceeded"))
		svc := NewReceiptIntakeService(extractor, time.Second, zap.New(core))

		s := svc.Suggest(ctx, image)
		assert.True(t, s.Degraded)
		assert.True(t, s.IsEmpty())
		assert.Equal(t, 1, logs.FilterMessage("receipt extraction degraded to manual entry").Len())
	})

	t.Run("timeout degrades", func(t *testing.T) {
		svc := NewReceiptIntakeService(slowExtractor{}, 10*time.Millisecond, zap.NewNop())
		s := svc.Suggest(ctx, image)
		assert.True(t, s.Degraded)
	})

	t.Run("nil suggestion degrades", func(t *testing.T) {
		extractor := new(MockReceiptExtractor)
		extractor.On("Extract", mock.Anything, image).Return(nil, nil)
		svc := NewReceiptIntakeService(extractor, 0, zap.NewNop())
		assert.True(t, svc.Suggest(ctx, image).Degraded)
	})

	t.Run("unknown category is dropped", func(t *testing.T) {
		extractor := new(MockReceiptExtractor)
		extractor.On("Extract", mock.Anything, image).Return(&ledger.ReceiptSuggestion{
			Category: categoryPtr("Groceries"),
		}, nil)
		svc := NewReceiptIntakeService(extractor, 0, zap.NewNop())

		resp := svc.Extract(ctx, image)
		assert.Nil(t, resp.Category)
		assert.False(t, resp.Degraded)
	})
}

func TestReceiptIntakeService_Prefill(t *testing.T) {
	ctx := context.Background()
	image := ledger.ReceiptImage{Data: []byte("img"), Filename: "r.png"}

	t.Run("fills only empty fields", func(t *testing.T) {
		extractor := new(MockReceiptExtractor)
		extractor.On("Extract", mock.Anything, image).Return(&ledger.ReceiptSuggestion{
			Description: strPtr("Chevron"),
			Amount:      decPtr("48.20"),
			Category:    categoryPtr(ledger.ExpenseCategoryFuel),
		}, nil)
		svc := NewReceiptIntakeService(extractor, 0, zap.NewNop())

		req := CreateExpenseRequest{Description: "Fill-up before delivery", Category: ""}
		degraded := svc.Prefill(ctx, image, &req)
		assert.False(t, degraded)
		assert.Equal(t, "Fill-up before delivery", req.Description)
		require.NotNil(t, req.Amount)
		assert.True(t, dec("48.20").Equal(*req.Amount))
		assert.Equal(t, "Fuel", req.Category)
	})

	t.Run("degraded extraction leaves the form untouched", func(t *testing.T) {
		extractor := new(MockReceiptExtractor)
		extractor.On("Extract", mock.Anything, image).Return(nil, errors.New("unreadable"))
		svc := NewReceiptIntakeService(extractor, 0, zap.NewNop())

		req := CreateExpenseRequest{Description: "Tires", Amount: decPtr("400")}
		degraded := svc.Prefill(ctx, image, &req)
		assert.True(t, degraded)
		assert.Equal(t, "Tires", req.Description)
		assert.True(t, dec("400").Equal(*req.Amount))
		assert.Empty(t, req.Category)
	})
}

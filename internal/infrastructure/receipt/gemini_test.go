package receipt

import (
	"context"
	"errors"
	"testing"

	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/domain/ledger"
	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/infrastructure/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

type fakeGenerator struct {
	text   string
	err    error
	model  string
	config *genai.GenerateContentConfig
	parts  []*genai.Part
}

func (f *fakeGenerator) GenerateContent(_ context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.model = model
	f.config = config
	if len(contents) > 0 {
		f.parts = contents[0].Parts
	}
	if f.err != nil {
		return nil, f.err
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: f.text}}, Role: genai.RoleModel},
		}},
	}, nil
}

func TestGeminiExtractor_Extract(t *testing.T) {
	ctx := context.Background()
	image := ledger.ReceiptImage{Data: []byte("raw"), ContentType: "image/png"}

	t.Run("decodes constrained JSON", func(t *testing.T) {
		gen := &fakeGenerator{text: `{"description":"Chevron","amount":48.2,"category":"Fuel"}`}
		x := NewGeminiExtractor(gen, "gemini-2.5-flash", nil, zap.NewNop())

		s, err := x.Extract(ctx, image)
		require.NoError(t, err)
		assert.Equal(t, "Chevron", *s.Description)
		assert.True(t, decimal.RequireFromString("48.2").Equal(*s.Amount))
		assert.Equal(t, ledger.ExpenseCategoryFuel, *s.Category)

		assert.Equal(t, "gemini-2.5-flash", gen.model)
		assert.Equal(t, "application/json", gen.config.ResponseMIMEType)
		require.NotNil(t, gen.config.ResponseSchema)
		assert.Contains(t, gen.config.ResponseSchema.Properties["category"].Enum, "Inspection")
		require.Len(t, gen.parts, 2)
		require.NotNil(t, gen.parts[1].InlineData)
		assert.Equal(t, "image/png", gen.parts[1].InlineData.MIMEType)
	})

	t.Run("falls back to text parsing", func(t *testing.T) {
		gen := &fakeGenerator{text: "Joe's Towing\nTOTAL 95.00"}
		x := NewGeminiExtractor(gen, "m", nil, zap.NewNop())

		s, err := x.Extract(ctx, image)
		require.NoError(t, err)
		assert.True(t, decimal.RequireFromString("95").Equal(*s.Amount))
	})

	t.Run("empty JSON is no fields", func(t *testing.T) {
		gen := &fakeGenerator{text: `{"description":"","amount":null,"category":""}`}
		x := NewGeminiExtractor(gen, "m", nil, zap.NewNop())

		_, err := x.Extract(ctx, image)
		assert.ErrorIs(t, err, ErrNoFields)
	})

	t.Run("model error is returned", func(t *testing.T) {
		gen := &fakeGenerator{err: errors.New("429 quota")}
		x := NewGeminiExtractor(gen, "m", nil, zap.NewNop())

		_, err := x.Extract(ctx, image)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "429 quota")
	})

	t.Run("preprocessing failure stops before the model call", func(t *testing.T) {
		gen := &fakeGenerator{text: "{}"}
		x := NewGeminiExtractor(gen, "m", NewPreprocessor(1600, 0), zap.NewNop())

		_, err := x.Extract(ctx, image)
		assert.ErrorIs(t, err, ErrUnsupportedImage)
		assert.Empty(t, gen.model)
	})
}

func TestNewExtractor(t *testing.T) {
	ctx := context.Background()

	x, err := NewExtractor(ctx, config.ReceiptConfig{Provider: "none"}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, NoopExtractor{}, x)

	x, err = NewExtractor(ctx, config.ReceiptConfig{Provider: "gemini"}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, NoopExtractor{}, x)

	_, err = x.Extract(ctx, ledger.ReceiptImage{})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

package receipt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/domain/ledger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

const extractionPrompt = `You read photos of receipts for a used car dealership.
Return the merchant or a short description of what was bought, the final total
paid, and the best matching category. Leave a field empty when you cannot read it.`

// ContentGenerator is the slice of the genai models API the extractor uses
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiExtractor reads receipts with a Gemini vision model
type GeminiExtractor struct {
	models ContentGenerator
	model  string
	prep   *Preprocessor
	logger *zap.Logger
}

// NewGeminiClient creates a genai client for the Gemini API
func NewGeminiClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	if apiKey == "" {
		return nil, ErrNotConfigured
	}
	return genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
}

// NewGeminiExtractor creates an extractor. prep may be nil to send images as uploaded.
func NewGeminiExtractor(models ContentGenerator, model string, prep *Preprocessor, logger *zap.Logger) *GeminiExtractor {
	return &GeminiExtractor{models: models, model: model, prep: prep, logger: logger}
}

// extraction is the JSON shape the model is constrained to
type extraction struct {
	Description string   `json:"description"`
	Amount      *float64 `json:"amount"`
	Category    string   `json:"category"`
}

func responseSchema() *genai.Schema {
	categories := make([]string, 0, len(ledger.ManualCategories))
	for _, c := range ledger.ManualCategories {
		categories = append(categories, c.String())
	}
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"description": {
				Type:        genai.TypeString,
				Description: "Merchant name or a short description of the purchase",
			},
			"amount": {
				Type:        genai.TypeNumber,
				Description: "Final total paid, in the receipt currency",
				Nullable:    genai.Ptr(true),
			},
			"category": {
				Type: genai.TypeString,
				Enum: categories,
			},
		},
	}
}

// Extract implements ledger.ReceiptExtractor
func (g *GeminiExtractor) Extract(ctx context.Context, image ledger.ReceiptImage) (*ledger.ReceiptSuggestion, error) {
	if g.prep != nil {
		prepared, err := g.prep.Prepare(image)
		if err != nil {
			return nil, err
		}
		image = prepared
	}
	mime := image.ContentType
	if mime == "" {
		mime = "image/jpeg"
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(extractionPrompt),
			genai.NewPartFromBytes(image.Data, mime),
		}, genai.RoleUser),
	}
	config := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr[float32](0),
		ResponseMIMEType: "application/json",
		ResponseSchema:   responseSchema(),
	}

	resp, err := g.models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("gemini generate: %w", err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return nil, ErrNoFields
	}

	suggestion, err := decodeExtraction(text)
	if errors.Is(err, ErrNoFields) {
		return nil, err
	}
	if err != nil {
		g.logger.Debug("model answered without JSON, parsing as text", zap.Error(err))
		return ParseReceiptText(text)
	}
	return suggestion, nil
}

func decodeExtraction(text string) (*ledger.ReceiptSuggestion, error) {
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	var out extraction
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &out); err != nil {
		return nil, err
	}

	s := &ledger.ReceiptSuggestion{}
	if d := strings.TrimSpace(out.Description); d != "" {
		s.Description = &d
	}
	if out.Amount != nil {
		a := decimal.NewFromFloat(*out.Amount)
		s.Amount = &a
	}
	if c := strings.TrimSpace(out.Category); c != "" {
		category := ledger.ExpenseCategory(c)
		s.Category = &category
	}
	if s.IsEmpty() {
		return nil, ErrNoFields
	}
	return s, nil
}

// NoopExtractor stands in when no extraction provider is configured. Every
// call degrades to manual entry.
type NoopExtractor struct{}

// Extract implements ledger.ReceiptExtractor
func (NoopExtractor) Extract(context.Context, ledger.ReceiptImage) (*ledger.ReceiptSuggestion, error) {
	return nil, ErrNotConfigured
}

var (
	_ ledger.ReceiptExtractor = (*GeminiExtractor)(nil)
	_ ledger.ReceiptExtractor = NoopExtractor{}
)

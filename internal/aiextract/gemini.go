package aiextract

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/akpradhn/nitiArthik/internal/logging"
)

// extractionPrompt instructs the model to return the canonical record
// shape directly. The strict output contract keeps the response decodable
// without prose stripping beyond code fences.
const extractionPrompt = `You are a bank statement parser. Extract every transaction from the attached bank statement PDF.

Return ONLY a JSON array, no other text. Each element must be an object with exactly these fields:
- "date": the transaction date in YYYY-MM-DD format
- "description": the transaction narration as printed
- "amount": the transaction amount as a positive number
- "direction": "credit" if money came into the account, "debit" if it went out
- "balance_after": the balance after the transaction as a number, or null if not shown

Do not invent transactions. Skip summary or subtotal lines. If the statement contains no transactions, return [].`

// GeminiClient talks to the Gemini API. A fresh API client is created per
// call so the context deadline bounds connection setup as well.
type GeminiClient struct {
	apiKey string
	model  string
	log    logging.Logger
}

// NewGeminiClient returns a client for the given model name.
func NewGeminiClient(apiKey, model string, log logging.Logger) *GeminiClient {
	if log == nil {
		log = logging.NewLogrusAdapter("info", "text")
	}
	return &GeminiClient{apiKey: apiKey, model: model, log: log}
}

// ExtractTransactions uploads the PDF bytes alongside the extraction
// prompt and returns the model's raw text response.
func (c *GeminiClient) ExtractTransactions(ctx context.Context, pdfData []byte) (string, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(c.apiKey))
	if err != nil {
		return "", fmt.Errorf("creating Gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(c.model)
	resp, err := model.GenerateContent(ctx,
		genai.Text(extractionPrompt),
		genai.Blob{MIMEType: "application/pdf", Data: pdfData},
	)
	if err != nil {
		return "", fmt.Errorf("generating content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty response from model %s", c.model)
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}

	c.log.Debug("received model response",
		logging.Field{Key: "model", Value: c.model},
		logging.Field{Key: "bytes", Value: sb.Len()})

	return sb.String(), nil
}

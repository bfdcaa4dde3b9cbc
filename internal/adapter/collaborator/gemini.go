// Package collaborator talks to the external AI services. Calls are
// best-effort: every failure is wrapped in a CollaboratorError at this
// boundary and never reaches ledger state.
package collaborator

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/shopspring/decimal"

	"github.com/luminafin/lumina/internal/domain"
	"github.com/luminafin/lumina/internal/usecase"
)

const receiptPrompt = "Analyze this receipt image. Extract the total amount, date, " +
	"merchant name, and suggest a category from: Food, Transportation, Shopping, " +
	"Entertainment, Housing, Utilities, Others. " +
	"Reply as JSON with keys total, date, merchant, category, summary."

const insightPrompt = "You are a financial advisor. Analyze these recent transactions " +
	"and provide 3 brief, actionable insights or warnings in markdown format. " +
	"Be encouraging but realistic.\n\nData:\n"

// GeminiClient implements usecase.ReceiptAnalyzer and
// usecase.InsightGenerator against the Gemini REST API.
type GeminiClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
}

// NewGeminiClient creates a new GeminiClient.
func NewGeminiClient(baseURL, apiKey, model string, timeout time.Duration) *GeminiClient {
	return &GeminiClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

type receiptPayload struct {
	Total    *decimal.Decimal `json:"total"`
	Date     *string          `json:"date"`
	Merchant *string          `json:"merchant"`
	Category *string          `json:"category"`
	Summary  *string          `json:"summary"`
}

// Analyze implements usecase.ReceiptAnalyzer.
func (c *GeminiClient) Analyze(ctx context.Context, image []byte) (usecase.ReceiptResult, error) {
	req := generateRequest{Contents: []content{{Parts: []part{
		{InlineData: &inlineData{
			MimeType: "image/png",
			Data:     base64.StdEncoding.EncodeToString(image),
		}},
		{Text: receiptPrompt},
	}}}}

	text, err := c.generate(ctx, req)
	if err != nil {
		return usecase.ReceiptResult{}, &domain.CollaboratorError{Collaborator: "receipt", Err: err}
	}

	var payload receiptPayload
	if err := json.Unmarshal([]byte(extractJSON(text)), &payload); err != nil {
		return usecase.ReceiptResult{}, &domain.CollaboratorError{
			Collaborator: "receipt",
			Err:          fmt.Errorf("unusable reply: %w", err),
		}
	}

	return usecase.ReceiptResult{
		Total:    payload.Total,
		Date:     payload.Date,
		Merchant: payload.Merchant,
		Category: payload.Category,
		Summary:  payload.Summary,
	}, nil
}

// Insights implements usecase.InsightGenerator.
func (c *GeminiClient) Insights(ctx context.Context, lines []string) (string, error) {
	req := generateRequest{Contents: []content{{Parts: []part{
		{Text: insightPrompt + strings.Join(lines, "\n")},
	}}}}

	text, err := c.generate(ctx, req)
	if err != nil {
		return "", &domain.CollaboratorError{Collaborator: "insight", Err: err}
	}
	if strings.TrimSpace(text) == "" {
		return "", &domain.CollaboratorError{Collaborator: "insight", Err: fmt.Errorf("empty reply")}
	}
	return text, nil
}

// generate posts a generateContent request, retrying transient HTTP
// failures with exponential backoff. Retrying lives here, at the
// boundary, because the ledger core itself never retries.
func (c *GeminiClient) generate(ctx context.Context, reqBody generateRequest) (string, error) {
	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("encoding request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)

	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = 30 * time.Second

	var text string
	err = backoff.Retry(func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		if err != nil {
			return err
		}

		switch {
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			return fmt.Errorf("status %d", resp.StatusCode)
		case resp.StatusCode != http.StatusOK:
			return backoff.Permanent(fmt.Errorf("status %d: %s", resp.StatusCode, respBody))
		}

		var parsed generateResponse
		if err := json.Unmarshal(respBody, &parsed); err != nil {
			return backoff.Permanent(fmt.Errorf("decoding response: %w", err))
		}
		if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
			return backoff.Permanent(fmt.Errorf("no candidates in response"))
		}

		text = parsed.Candidates[0].Content.Parts[0].Text
		return nil
	}, backoff.WithContext(b, ctx))

	return text, err
}

// extractJSON strips markdown code fences the model sometimes wraps
// around JSON replies.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)
	if after, ok := strings.CutPrefix(text, "```json"); ok {
		text = after
	} else if after, ok := strings.CutPrefix(text, "```"); ok {
		text = after
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}

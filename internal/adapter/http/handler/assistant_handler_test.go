package handler

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luminafin/lumina/internal/adapter/http/dto"
	"github.com/luminafin/lumina/internal/domain"
	"github.com/luminafin/lumina/internal/usecase"
	"github.com/luminafin/lumina/internal/usecase/mocks"
)

func TestAssistantHandler_ScanReceipt(t *testing.T) {
	ledger := newTestLedger(t)

	total := decimal.RequireFromString("23.10")
	merchant := "Mario's"
	analyzer := mocks.NewMockReceiptAnalyzer()
	analyzer.AnalyzeFunc = func(ctx context.Context, image []byte) (usecase.ReceiptResult, error) {
		return usecase.ReceiptResult{Total: &total, Merchant: &merchant}, nil
	}

	assistant := usecase.NewAssistantUseCase(ledger, analyzer, mocks.NewMockInsightGenerator())
	h := NewAssistantHandler(assistant, testMetrics)

	body, err := json.Marshal(dto.ScanReceiptRequest{
		Image: base64.StdEncoding.EncodeToString([]byte{0x89, 0x50}),
		Draft: dto.CommitTransactionRequest{WalletID: "w1"},
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/assistant/receipt", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.ScanReceipt(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.ScanReceiptResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Draft.Amount.Equal(total))
	assert.Equal(t, "Mario's", resp.Draft.Note)
	assert.Equal(t, domain.TypeExpense, resp.Draft.Type)
	assert.Equal(t, "w1", resp.Draft.WalletID, "caller's wallet selection is preserved")
}

func TestAssistantHandler_ScanReceipt_CollaboratorFailure(t *testing.T) {
	ledger := newTestLedger(t)

	analyzer := mocks.NewMockReceiptAnalyzer()
	analyzer.AnalyzeFunc = func(ctx context.Context, image []byte) (usecase.ReceiptResult, error) {
		return usecase.ReceiptResult{}, &domain.CollaboratorError{Collaborator: "receipt", Err: errors.New("boom")}
	}

	assistant := usecase.NewAssistantUseCase(ledger, analyzer, mocks.NewMockInsightGenerator())
	h := NewAssistantHandler(assistant, testMetrics)

	body, err := json.Marshal(dto.ScanReceiptRequest{Image: base64.StdEncoding.EncodeToString([]byte{0x1})})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/assistant/receipt", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.ScanReceipt(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestAssistantHandler_Insights(t *testing.T) {
	ledger := newTestLedger(t)

	generator := mocks.NewMockInsightGenerator()
	generator.InsightsFunc = func(ctx context.Context, lines []string) (string, error) {
		return "1. Cook at home more often.", nil
	}

	assistant := usecase.NewAssistantUseCase(ledger, mocks.NewMockReceiptAnalyzer(), generator)
	h := NewAssistantHandler(assistant, testMetrics)

	rec := httptest.NewRecorder()
	h.Insights(rec, httptest.NewRequest(http.MethodPost, "/api/v1/assistant/insights", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.InsightsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "1. Cook at home more often.", resp.Insights)
}

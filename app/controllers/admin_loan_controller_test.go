package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wizardApp() *fiber.App {
	app := fiber.New()
	app.Post("/recalculate", HandleImportRecalculate)
	app.Post("/generate", HandleImportGenerate)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, payload any) (*http.Response, map[string]any) {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func TestImportRecalculateSplitsAgainstDecliningBalance(t *testing.T) {
	app := wizardApp()

	resp, body := postJSON(t, app, "/recalculate", map[string]any{
		"terms": map[string]any{"principal": "4099", "annual_rate": "12"},
		"payments": []map[string]any{
			{"date": "2023-01-15T00:00:00Z", "amount": "136.12"},
			{"date": "2023-02-15T00:00:00Z", "amount": "136.12"},
		},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	payments := body["payments"].([]any)
	require.Len(t, payments, 2)

	first := payments[0].(map[string]any)
	assert.Equal(t, "40.99", first["interest"])
	assert.Equal(t, "95.13", first["principal"])

	// Second split runs against the balance the first one left behind.
	second := payments[1].(map[string]any)
	assert.Equal(t, "40.04", second["interest"])
	assert.Equal(t, "96.08", second["principal"])

	assert.Equal(t, "3907.79", body["balance"])
}

func TestImportRecalculateRequiresLoanContext(t *testing.T) {
	app := wizardApp()

	resp, body := postJSON(t, app, "/recalculate", map[string]any{
		"terms": map[string]any{"principal": "0", "annual_rate": "0"},
		"payments": []map[string]any{
			{"date": "2023-01-15T00:00:00Z", "amount": "100"},
		},
	})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "missing_loan_context", body["error"])
}

func TestImportRecalculateRejectsNonPositiveAmount(t *testing.T) {
	app := wizardApp()

	resp, body := postJSON(t, app, "/recalculate", map[string]any{
		"terms": map[string]any{"principal": "1000", "annual_rate": "12"},
		"payments": []map[string]any{
			{"date": "2023-01-15T00:00:00Z", "amount": "0"},
		},
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "bad_request", body["error"])
}

func TestImportGenerateSynthesizesMonthlyRun(t *testing.T) {
	app := wizardApp()

	resp, body := postJSON(t, app, "/generate", map[string]any{
		"terms":  map[string]any{"principal": "1000", "annual_rate": "12"},
		"start":  "2024-03-01T00:00:00Z",
		"count":  3,
		"amount": "100",
		"tax":    "10",
		"hoa":    "5",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	payments := body["payments"].([]any)
	require.Len(t, payments, 3)

	first := payments[0].(map[string]any)
	assert.Equal(t, "2024-03-01T00:00:00Z", first["date"])
	assert.Equal(t, "100", first["amount"])
	assert.Equal(t, "10", first["tax"])
	assert.Equal(t, "5", first["hoa"])
	assert.Equal(t, "10", first["interest"])
	assert.Equal(t, "90", first["principal"])

	second := payments[1].(map[string]any)
	assert.Equal(t, "2024-04-01T00:00:00Z", second["date"])
	assert.Equal(t, "9.1", second["interest"])
	assert.Equal(t, "90.9", second["principal"])
}

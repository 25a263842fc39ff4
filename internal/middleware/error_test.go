package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRespondWithError_Envelope(t *testing.T) {
	w := httptest.NewRecorder()

	RespondWithError(w, http.StatusNotFound, "product not found")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Not Found", resp.Error.Code)
	assert.Equal(t, "product not found", resp.Error.Message)
	assert.NotEmpty(t, resp.Error.Timestamp)
	assert.Nil(t, resp.Error.Details)
}

func TestRespondWithErrorDetails_CarriesDetails(t *testing.T) {
	w := httptest.NewRecorder()

	RespondWithErrorDetails(w, http.StatusConflict, "insufficient stock", map[string]interface{}{
		"requested": 5,
		"available": 2,
	})

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Conflict", resp.Error.Code)
	assert.EqualValues(t, 5, resp.Error.Details["requested"])
	assert.EqualValues(t, 2, resp.Error.Details["available"])
}

func TestRespondWithValidationErrors(t *testing.T) {
	w := httptest.NewRecorder()

	RespondWithValidationErrors(w, []ValidationError{
		{Field: "name", Message: "name is required"},
		{Field: "phone", Message: "phone is required"},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "validation failed", resp.Error.Message)

	raw, ok := resp.Error.Details["validation_errors"].([]interface{})
	require.True(t, ok)
	assert.Len(t, raw, 2)
}

func TestErrorHandlingMiddleware_RecoversPanics(t *testing.T) {
	handler := ErrorHandlingMiddleware(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("something went very wrong")
	}))

	req := httptest.NewRequest("GET", "/api/products", nil)
	w := httptest.NewRecorder()

	require.NotPanics(t, func() { handler.ServeHTTP(w, req) })

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "internal server error", resp.Error.Message)
}

func TestRespondWithJSON(t *testing.T) {
	w := httptest.NewRecorder()

	RespondWithJSON(w, http.StatusCreated, map[string]string{"message": "created"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"message":"created"}`, w.Body.String())
}

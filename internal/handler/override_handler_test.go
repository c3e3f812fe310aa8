package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/apaulliao/classboard-api/internal/dto"
	"github.com/apaulliao/classboard-api/internal/models"
	"github.com/apaulliao/classboard-api/internal/service"
)

func overrideRequest(t *testing.T, handler gin.HandlerFunc, method, target string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}
	c.Request, _ = http.NewRequest(method, target, body)
	c.Request.Header.Set("Content-Type", "application/json")
	handler(c)
	return w
}

func TestOverrideHandlerManualEco(t *testing.T) {
	overrides := service.NewOverrideService(nil)
	handler := NewOverrideHandler(overrides)

	w := overrideRequest(t, handler.SetManualEco, http.MethodPut, "/overrides/eco", dto.ToggleRequest{Enabled: true})
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, overrides.Flags().ManualEco)

	var resp dto.OverrideResponse
	decodeEnvelope(t, w, &resp)
	require.True(t, resp.Flags.ManualEco)
}

func TestOverrideHandlerSpecialLifecycle(t *testing.T) {
	overrides := service.NewOverrideService(nil)
	handler := NewOverrideHandler(overrides)

	w := overrideRequest(t, handler.SetSpecial, http.MethodPost, "/overrides/special", dto.SpecialRequest{
		Submode: models.SubmodeMarquee,
		Payload: json.RawMessage(`{"text":"Sports day tomorrow"}`),
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, overrides.Flags().Special)
	require.Equal(t, models.SubmodeMarquee, overrides.Flags().Special.Submode)

	w = overrideRequest(t, handler.ClearSpecial, http.MethodDelete, "/overrides/special", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Nil(t, overrides.Flags().Special)
}

func TestOverrideHandlerSpecialRejectsUnknownSubmode(t *testing.T) {
	overrides := service.NewOverrideService(nil)
	handler := NewOverrideHandler(overrides)

	w := overrideRequest(t, handler.SetSpecial, http.MethodPost, "/overrides/special", dto.SpecialRequest{
		Submode: models.SpecialSubmode("BLINKING"),
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Nil(t, overrides.Flags().Special)
}

func TestOverrideHandlerGet(t *testing.T) {
	overrides := service.NewOverrideService(nil)
	overrides.SetAutoEcoOverride(true)
	handler := NewOverrideHandler(overrides)

	w := overrideRequest(t, handler.Get, http.MethodGet, "/overrides", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.OverrideResponse
	decodeEnvelope(t, w, &resp)
	require.True(t, resp.Flags.AutoEcoOverride)
	require.False(t, resp.Flags.ManualEco)
}

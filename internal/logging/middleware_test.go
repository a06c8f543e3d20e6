package logging

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedactHeaders(t *testing.T) {
	h := http.Header{}
	h.Set("Authorization", "Bearer sk-1")
	h.Set("X-Llm-Api-Key", "sk-2")
	h.Add("Accept", "application/json")
	h.Add("Accept", "text/plain")

	out := RedactHeaders(h)
	assert.Equal(t, redacted, out["Authorization"])
	assert.Equal(t, redacted, out["X-Llm-Api-Key"])
	assert.Equal(t, "application/json, text/plain", out["Accept"])
}

func TestRequestLoggerNeverLogsSecrets(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	Configure(&buf, "debug", false)
	t.Cleanup(func() { Configure(&bytes.Buffer{}, "info", false) })

	r := gin.New()
	r.Use(RequestLogger())
	r.POST("/x", func(c *gin.Context) { c.Status(http.StatusTeapot) })

	req := httptest.NewRequest(http.MethodPost, "/x", bytes.NewBufferString(`{"llm":{"apiKey":"sk-body"}}`))
	req.Header.Set("x-llm-api-key", "sk-header")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	id := w.Header().Get(RequestIDHeader)
	_, err := uuid.Parse(id)
	require.NoError(t, err)

	logs := buf.String()
	assert.Contains(t, logs, id)
	assert.Contains(t, logs, `"status":418`)
	assert.Contains(t, logs, redacted)
	assert.NotContains(t, logs, "sk-header")
	assert.NotContains(t, logs, "sk-body")
}

func TestCORSPreflight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS())
	r.POST("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "x-llm-api-key")
}

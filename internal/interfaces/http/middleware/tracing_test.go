package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newTracedRouter(t *testing.T, mw ...gin.HandlerFunc) (*gin.Engine, *tracetest.SpanRecorder) {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(t.Context()) })

	router := gin.New()
	router.Use(RequestID(), TracingWithConfig(TracingConfig{
		Enabled:        true,
		ServiceName:    "storefront-test",
		TracerProvider: tp,
	}), SpanAttributes(), SpanErrorMarker())
	router.Use(mw...)
	return router, sr
}

func spanNamed(t *testing.T, sr *tracetest.SpanRecorder, name string) sdktrace.ReadOnlySpan {
	t.Helper()
	for _, span := range sr.Ended() {
		if span.Name() == name {
			return span
		}
	}
	require.FailNow(t, "span not found", name)
	return nil
}

func attrValue(span sdktrace.ReadOnlySpan, key attribute.Key) string {
	for _, kv := range span.Attributes() {
		if kv.Key == key {
			return kv.Value.Emit()
		}
	}
	return ""
}

func TestTracingWithConfig_Disabled(t *testing.T) {
	router := newTestRouter(TracingWithConfig(TracingConfig{Enabled: false}))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTracing_SpanUsesRoutePattern(t *testing.T) {
	router, sr := newTracedRouter(t)
	router.GET("/api/v1/tags/targets/:kind/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tags/targets/product/1", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	router.ServeHTTP(httptest.NewRecorder(), req)

	span := spanNamed(t, sr, "GET /api/v1/tags/targets/:kind/:id")
	assert.Equal(t, "req-42", attrValue(span, "request_id"))
	assert.Equal(t, codes.Unset, span.Status().Code)
}

func TestTracing_SubjectAttribute(t *testing.T) {
	router, sr := newTracedRouter(t, func(c *gin.Context) {
		c.Set(JWTUsernameKey, "admin")
		c.Next()
	})
	router.POST("/api/v1/tags", func(c *gin.Context) { c.Status(http.StatusCreated) })

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/v1/tags", nil))

	span := spanNamed(t, sr, "POST /api/v1/tags")
	assert.Equal(t, "admin", attrValue(span, "enduser.id"))
}

func TestSpanErrorMarker(t *testing.T) {
	router, sr := newTracedRouter(t)
	router.GET("/boom", func(c *gin.Context) {
		_ = c.Error(assert.AnError)
		c.Status(http.StatusInternalServerError)
	})
	router.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))

	boom := spanNamed(t, sr, "GET /boom")
	assert.Equal(t, codes.Error, boom.Status().Code)

	missing := spanNamed(t, sr, "GET /missing")
	assert.NotEqual(t, codes.Error, missing.Status().Code)
}

package errors

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

var errSentinel = errors.New("sentinel")

type fieldError struct{ fields map[string]string }

func (e *fieldError) Error() string { return "invalid fields" }

func respondWith(t *testing.T, req *http.Request, respond func(c *gin.Context)) (*httptest.ResponseRecorder, ProblemDetail) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	if req == nil {
		req = httptest.NewRequest(http.MethodGet, "/listings/42", nil)
	}
	c.Request = req
	respond(c)
	var problem ProblemDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	return rec, problem
}

func TestRespondErrorUsesFirstMatchingMapper(t *testing.T) {
	responder := NewResponder("", nil,
		Is(ErrDuplicateName, errSentinel),
		Is(ErrConflict, errSentinel),
	)

	rec, problem := respondWith(t, nil, func(c *gin.Context) {
		responder.RespondError(c, fmt.Errorf("create: %w", errSentinel))
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, ContentTypeProblemJSON, rec.Header().Get("Content-Type"))
	assert.Equal(t, TypeDuplicateName, problem.Type)
	assert.Equal(t, "create: sentinel", problem.Detail)
	assert.Equal(t, "/listings/42", problem.Instance)
}

func TestRespondErrorTypedMapper(t *testing.T) {
	responder := NewResponder("", nil, As(func(e *fieldError) ProblemDetail {
		return NewValidationProblem(e.fields)
	}))

	_, problem := respondWith(t, nil, func(c *gin.Context) {
		responder.RespondError(c, fmt.Errorf("wrapped: %w", &fieldError{fields: map[string]string{"price": "is required"}}))
	})

	assert.Equal(t, TypeValidation, problem.Type)
	assert.Equal(t, map[string]any{"price": "is required"}, problem.Extensions[FieldsMember])
}

func TestRespondErrorHidesUnmappedCause(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))
	responder := NewResponder("https://errors.example.com/", logger)

	rec, problem := respondWith(t, nil, func(c *gin.Context) {
		responder.RespondError(c, errors.New("dial tcp: connection refused"))
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "https://errors.example.com"+TypeInternal, problem.Type)
	assert.NotContains(t, problem.Detail, "connection refused")
	assert.Contains(t, logs.String(), "connection refused")
}

func TestRespondAddsTraceID(t *testing.T) {
	tp := sdktrace.NewTracerProvider()
	ctx, span := tp.Tracer("test").Start(t.Context(), "request")
	defer span.End()
	req := httptest.NewRequest(http.MethodGet, "/orders", nil).WithContext(ctx)

	_, problem := respondWith(t, req, func(c *gin.Context) {
		NewResponder("", nil).Respond(c, ErrNotFound)
	})

	assert.Equal(t, span.SpanContext().TraceID().String(), problem.Extensions[TraceIDMember])
}

func TestProblemDetailFlattensExtensions(t *testing.T) {
	problem := NewValidationProblem(map[string]string{"name": "is required"}).
		WithExtension("type", "ignored").
		WithDetail("bad listing")

	raw, err := json.Marshal(problem)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, TypeValidation, doc["type"])
	assert.Equal(t, "bad listing", doc["detail"])
	assert.Equal(t, map[string]any{"name": "is required"}, doc[FieldsMember])
	assert.NotContains(t, doc, "instance")
}

func TestWithExtensionDoesNotShareMaps(t *testing.T) {
	base := ErrNotFound.WithExtension("a", 1)
	_ = base.WithExtension("b", 2)
	assert.NotContains(t, base.Extensions, "b")
}

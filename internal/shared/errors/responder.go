package errors

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ContentTypeProblemJSON is the media type for problem documents.
const ContentTypeProblemJSON = "application/problem+json"

// TraceIDMember carries the active trace id so clients can quote it.
const TraceIDMember = "traceId"

// ErrorMapper turns a known error into a problem. ok is false for errors
// the mapper does not recognise.
type ErrorMapper func(err error) (problem ProblemDetail, ok bool)

// Is maps any error matching one of targets onto template.
func Is(template ProblemDetail, targets ...error) ErrorMapper {
	return func(err error) (ProblemDetail, bool) {
		for _, target := range targets {
			if errors.Is(err, target) {
				return template.WithDetail(err.Error()), true
			}
		}
		return ProblemDetail{}, false
	}
}

// As maps errors of type E through build.
func As[E error](build func(E) ProblemDetail) ErrorMapper {
	return func(err error) (ProblemDetail, bool) {
		var target E
		if errors.As(err, &target) {
			return build(target), true
		}
		return ProblemDetail{}, false
	}
}

// Responder writes problem documents and resolves errors through its mappers.
type Responder struct {
	baseURI string
	logger  *slog.Logger
	mappers []ErrorMapper
}

// NewResponder builds a responder. Relative problem types are prefixed with
// baseURI when it is set. A nil logger resolves slog.Default per call.
func NewResponder(baseURI string, logger *slog.Logger, mappers ...ErrorMapper) *Responder {
	return &Responder{
		baseURI: strings.TrimSuffix(baseURI, "/"),
		logger:  logger,
		mappers: mappers,
	}
}

// Resolve returns the problem for err. Unmapped errors become a generic
// internal error whose detail does not echo the cause.
func (r *Responder) Resolve(err error) (ProblemDetail, bool) {
	var problem ProblemDetail
	if errors.As(err, &problem) {
		return problem, true
	}
	for _, mapper := range r.mappers {
		if problem, ok := mapper(err); ok {
			return problem, true
		}
	}
	return ErrInternal.WithDetail("the server could not complete the request"), false
}

// Respond writes problem with the request path as instance.
func (r *Responder) Respond(c *gin.Context, problem ProblemDetail) {
	if r.baseURI != "" && strings.HasPrefix(problem.Type, "/") {
		problem.Type = r.baseURI + problem.Type
	}
	if problem.Instance == "" {
		problem.Instance = c.Request.URL.Path
	}
	if sc := trace.SpanContextFromContext(c.Request.Context()); sc.HasTraceID() {
		problem = problem.WithExtension(TraceIDMember, sc.TraceID().String())
	}
	c.Header("Content-Type", ContentTypeProblemJSON)
	c.JSON(problem.Status, problem)
}

// RespondError resolves err and writes it. Unmapped errors are logged and
// recorded on the request span.
func (r *Responder) RespondError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	problem, known := r.Resolve(err)
	if !known {
		ctx := c.Request.Context()
		span := trace.SpanFromContext(ctx)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		r.log().ErrorContext(ctx, "unhandled request error",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.String("error", err.Error()),
		)
	}
	_ = c.Error(err)
	r.Respond(c, problem)
}

func (r *Responder) log() *slog.Logger {
	if r.logger == nil {
		return slog.Default()
	}
	return r.logger
}

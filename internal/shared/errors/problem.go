// Package errors renders RFC 7807 problem documents for the HTTP layer.
package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ProblemDetail is an RFC 7807 problem document. Extension members are
// serialised next to the standard members, not nested.
type ProblemDetail struct {
	Type       string
	Title      string
	Status     int
	Detail     string
	Instance   string
	Extensions map[string]any
}

var reservedMembers = map[string]struct{}{
	"type": {}, "title": {}, "status": {}, "detail": {}, "instance": {},
}

func (p ProblemDetail) Error() string {
	if p.Detail != "" {
		return fmt.Sprintf("%s: %s", p.Title, p.Detail)
	}
	return p.Title
}

// WithDetail returns a copy with the given detail message.
func (p ProblemDetail) WithDetail(detail string) ProblemDetail {
	p.Detail = detail
	return p
}

// WithExtension returns a copy carrying one more extension member.
// Standard member names are ignored.
func (p ProblemDetail) WithExtension(key string, value any) ProblemDetail {
	if _, reserved := reservedMembers[key]; reserved {
		return p
	}
	ext := make(map[string]any, len(p.Extensions)+1)
	for k, v := range p.Extensions {
		ext[k] = v
	}
	ext[key] = value
	p.Extensions = ext
	return p
}

func (p ProblemDetail) MarshalJSON() ([]byte, error) {
	doc := make(map[string]any, len(p.Extensions)+5)
	for k, v := range p.Extensions {
		doc[k] = v
	}
	doc["type"] = p.Type
	doc["title"] = p.Title
	doc["status"] = p.Status
	if p.Detail != "" {
		doc["detail"] = p.Detail
	}
	if p.Instance != "" {
		doc["instance"] = p.Instance
	}
	return json.Marshal(doc)
}

func (p *ProblemDetail) UnmarshalJSON(data []byte) error {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	*p = ProblemDetail{}
	for key, raw := range doc {
		var err error
		switch key {
		case "type":
			err = json.Unmarshal(raw, &p.Type)
		case "title":
			err = json.Unmarshal(raw, &p.Title)
		case "status":
			err = json.Unmarshal(raw, &p.Status)
		case "detail":
			err = json.Unmarshal(raw, &p.Detail)
		case "instance":
			err = json.Unmarshal(raw, &p.Instance)
		default:
			var v any
			if err = json.Unmarshal(raw, &v); err == nil {
				if p.Extensions == nil {
					p.Extensions = map[string]any{}
				}
				p.Extensions[key] = v
			}
		}
		if err != nil {
			return fmt.Errorf("problem member %q: %w", key, err)
		}
	}
	return nil
}

const (
	TypeValidation    = "/problems/validation-error"
	TypeNotFound      = "/problems/not-found"
	TypeConflict      = "/problems/conflict"
	TypeDuplicateName = "/problems/duplicate-name"
	TypeInternal      = "/problems/internal-error"
	TypeBadRequest    = "/problems/bad-request"
)

var (
	ErrNotFound = ProblemDetail{
		Type:   TypeNotFound,
		Title:  "Resource Not Found",
		Status: http.StatusNotFound,
	}

	ErrValidation = ProblemDetail{
		Type:   TypeValidation,
		Title:  "Validation Error",
		Status: http.StatusBadRequest,
	}

	ErrBadRequest = ProblemDetail{
		Type:   TypeBadRequest,
		Title:  "Bad Request",
		Status: http.StatusBadRequest,
	}

	// ErrDuplicateName is returned when another listing already uses the name.
	ErrDuplicateName = ProblemDetail{
		Type:   TypeDuplicateName,
		Title:  "Duplicate Name",
		Status: http.StatusBadRequest,
	}

	ErrConflict = ProblemDetail{
		Type:   TypeConflict,
		Title:  "Conflict",
		Status: http.StatusConflict,
	}

	ErrInternal = ProblemDetail{
		Type:   TypeInternal,
		Title:  "Internal Server Error",
		Status: http.StatusInternalServerError,
	}
)

// FieldsMember is the extension member listing per-field validation failures.
const FieldsMember = "fields"

// NewValidationProblem reports one message per offending request field.
func NewValidationProblem(fieldErrors map[string]string) ProblemDetail {
	return ErrValidation.WithExtension(FieldsMember, fieldErrors)
}

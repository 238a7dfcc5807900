package bizrecipeserver

import (
	"encoding/json"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	listingapp "github.com/Apurer/bizrecipe-api/internal/domains/listings/application"
	listingports "github.com/Apurer/bizrecipe-api/internal/domains/listings/ports"
	userapp "github.com/Apurer/bizrecipe-api/internal/domains/users/application"
	userports "github.com/Apurer/bizrecipe-api/internal/domains/users/ports"
	apierrors "github.com/Apurer/bizrecipe-api/internal/shared/errors"
)

var responder = apierrors.NewResponder("", nil,
	apierrors.As(func(err *listingapp.ValidationError) apierrors.ProblemDetail {
		return apierrors.NewValidationProblem(err.Fields).WithDetail(err.Error())
	}),
	apierrors.Is(apierrors.ErrDuplicateName, listingports.ErrDuplicateName),
	apierrors.Is(apierrors.ErrNotFound, listingports.ErrNotFound, listingports.ErrOrderNotFound, userports.ErrNotFound),
	apierrors.Is(apierrors.ErrConflict, userports.ErrDuplicateUsername),
	apierrors.Is(apierrors.ErrValidation, listingapp.ErrInvalidInput, userapp.ErrInvalidInput),
)

func respondProblem(c *gin.Context, problem apierrors.ProblemDetail) {
	responder.Respond(c, problem)
}

// respondError translates service errors into RFC 7807 responses.
func respondError(c *gin.Context, err error) {
	responder.RespondError(c, err)
}

// decodeStrict decodes a JSON body, rejecting keys that dst does not declare.
// Unknown keys surface as a validation problem naming the offending field.
func decodeStrict(c *gin.Context, dst any) bool {
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	err := dec.Decode(dst)
	if err == nil {
		return true
	}
	if errors.Is(err, io.EOF) {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail("request body is empty"))
		return false
	}
	if field, ok := unknownField(err); ok {
		respondProblem(c, apierrors.NewValidationProblem(map[string]string{field: "is not an updatable field"}).
			WithDetail(err.Error()))
		return false
	}
	respondProblem(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
	return false
}

// bindJSON decodes a JSON body leniently, as gin's binding does.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return false
	}
	return true
}

func unknownField(err error) (string, bool) {
	const prefix = "json: unknown field "
	msg := err.Error()
	if !strings.HasPrefix(msg, prefix) {
		return "", false
	}
	name, unquoteErr := strconv.Unquote(strings.TrimPrefix(msg, prefix))
	if unquoteErr != nil {
		return "", false
	}
	return name, true
}

package server

import (
	"errors"
	"net/http"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/devnzo/finance-calc/internal/contact"
	"github.com/devnzo/finance-calc/internal/logger"
	"github.com/devnzo/finance-calc/internal/tools"
	"github.com/devnzo/finance-calc/internal/validators"
)

const (
	codeInvalidInput     = "INVALID_INPUT"
	codeOutOfBounds      = "RESULT_OUT_OF_BOUNDS"
	codeNotFound         = "NOT_FOUND"
	codeRateLimited      = "RATE_LIMITED"
	codeDeliveryFailed   = "DELIVERY_FAILED"
	codeInternal         = "INTERNAL_ERROR"
	internalErrorMessage = "internal server error"
)

func errorBody(code, message, field string) gin.H {
	body := gin.H{"code": code, "message": message}
	if field != "" {
		body["field"] = field
	}
	return gin.H{"error": body}
}

// respondWithError maps err to a status code and the JSON error body.
// Unexpected errors are logged, reported to Sentry and hidden from the client.
func respondWithError(c *gin.Context, err error) {
	var inputErr *validators.InvalidInputError
	if errors.As(err, &inputErr) {
		c.JSON(http.StatusBadRequest, errorBody(codeInvalidInput, inputErr.Error(), inputErr.Field))
		return
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		c.JSON(http.StatusBadRequest, errorBody(codeInvalidInput, fe.Field()+": failed "+fe.Tag()+" check", fe.Field()))
		return
	}

	switch {
	case errors.Is(err, tools.ErrResultOutOfBounds):
		c.JSON(http.StatusUnprocessableEntity, errorBody(codeOutOfBounds, err.Error(), ""))
		return
	case errors.Is(err, contact.ErrDelivery):
		c.JSON(http.StatusBadGateway, errorBody(codeDeliveryFailed, "message could not be delivered, please try again later", ""))
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	if hub := sentrygin.GetHubFromContext(c); hub != nil {
		hub.CaptureException(err)
	} else {
		sentry.CaptureException(err)
	}
	c.JSON(http.StatusInternalServerError, errorBody(codeInternal, internalErrorMessage, ""))
}

package handlers

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/prudvireddyNS/mentor/api/http/presenter"
	"github.com/prudvireddyNS/mentor/pkg/auth"
)

const internalDetail = "Internal server error"

// ErrorHandler is the app-wide fallback: fiber errors keep their status,
// anything else is logged and answered with 500.
func ErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return presenter.Error(c, fe.Code, fe.Message)
		}
		logger.Error("request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return presenter.Error(c, http.StatusInternalServerError, internalDetail)
	}
}

// writeAuthError maps a classified auth failure to its HTTP answer.
// Unclassified errors are returned for ErrorHandler.
func writeAuthError(c *fiber.Ctx, err error) error {
	switch auth.KindOf(err) {
	case auth.KindInvalidCredentials, auth.KindUnauthorized:
		return presenter.Unauthorized(c, auth.DetailOf(err))
	case auth.KindInvalidAssertion:
		return presenter.Error(c, http.StatusUnauthorized, auth.DetailOf(err))
	case auth.KindForbidden:
		return presenter.Error(c, http.StatusForbidden, auth.DetailOf(err))
	case auth.KindConflict:
		return presenter.Error(c, http.StatusConflict, auth.DetailOf(err))
	case auth.KindValidation:
		return presenter.Error(c, http.StatusBadRequest, auth.DetailOf(err))
	default:
		return err
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report fields by their wire names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "form", "query"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})
	return v
}

// bind parses the request body into dst and validates it. The returned
// *fiber.Error is rendered by ErrorHandler.
func bind(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return fiber.NewError(http.StatusUnprocessableEntity, "invalid request body")
	}
	return check(dst)
}

func check(v any) error {
	if err := validate.Struct(v); err != nil {
		return fiber.NewError(http.StatusUnprocessableEntity, validationDetail(err))
	}
	return nil
}

func validationDetail(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "invalid request"
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return fe.Field() + " must be a valid email address"
	default:
		return fe.Field() + " is invalid"
	}
}

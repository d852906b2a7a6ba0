package handler

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"autoparts/internal/apierror"
	"autoparts/internal/middleware"
	"autoparts/internal/repository"
	"autoparts/internal/service"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0 work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds the JSON body and runs the validator tags.
// On failure it writes the response and returns false.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid JSON: "+err.Error()))
		return false
	}
	return runValidation(c, req)
}

// bindQuery is bindAndValidate for query strings.
func bindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid query: "+err.Error()))
		return false
	}
	return runValidation(c, req)
}

func runValidation(c *gin.Context, req interface{}) bool {
	if err := validate.Struct(req); err != nil {
		var ve validator.ValidationErrors
		if !errors.As(err, &ve) {
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
			return false
		}
		fields := make(map[string]string)
		for _, fe := range ve {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// respondError maps service and store errors onto HTTP statuses.
// Anything unrecognised is logged and answered with a generic 500.
func respondError(c *gin.Context, err error, notFoundMsg string) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(map[string]string{ve.Field: ve.Msg}))
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, apierror.New(notFoundMsg))
	case errors.Is(err, service.ErrDuplicateInventory):
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
	case errors.Is(err, service.ErrInvalidTransition), errors.Is(err, repository.ErrStaleStatus):
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
	case errors.Is(err, repository.ErrRejected):
		c.JSON(http.StatusConflict, apierror.New("Request conflicts with stored data"))
	default:
		log.Error().
			Err(err).
			Str("request_id", c.GetString(middleware.RequestIDKey)).
			Str("path", c.FullPath()).
			Msg("request failed")
		c.JSON(http.StatusInternalServerError, apierror.New("Internal server error"))
	}
}

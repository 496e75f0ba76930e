package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pot-code/regform/internal/domain"
	infra "github.com/pot-code/regform/internal/infrastructure"
	"github.com/pot-code/regform/internal/infrastructure/validate"
)

// RegistrationHandler registration form validation
type RegistrationHandler struct {
	registrationUseCase domain.RegistrationUseCase
	validator           validate.Validator
}

// NewRegistrationHandler create a registration controller instance
func NewRegistrationHandler(
	RegistrationUseCase domain.RegistrationUseCase,
	Validator validate.Validator,
) *RegistrationHandler {
	return &RegistrationHandler{RegistrationUseCase, Validator}
}

type submitResponse struct {
	*domain.FormResult
	Summary *domain.Summary `json:"summary"`
}

// HandleValidate submit gate, every field is validated and reported
func (rh *RegistrationHandler) HandleValidate(c echo.Context) (err error) {
	snapshot := new(domain.Snapshot)
	if err = c.Bind(snapshot); err != nil {
		return bindFailed(c, err)
	}

	result, summary := rh.registrationUseCase.Submit(c.Request().Context(), snapshot)
	if !result.Valid {
		return c.JSON(http.StatusBadRequest,
			infra.NewRESTValidationError(http.StatusBadRequest, "Failed to validate fields", result.FieldErrors()).
				SetFields(result.Fields).
				SetTraceID(traceID(c)))
	}
	return c.JSON(http.StatusOK, &submitResponse{result, summary})
}

// HandleValidateField validate the field named in the path, usually on blur
func (rh *RegistrationHandler) HandleValidateField(c echo.Context) (err error) {
	name := c.Param("field")
	if errs := rh.validator.Empty("field", name); errs != nil {
		return c.JSON(http.StatusBadRequest,
			infra.NewRESTValidationError(http.StatusBadRequest, "Failed to validate params", errs).SetTraceID(traceID(c)))
	}
	field, err := domain.ParseField(name)
	if err != nil {
		return c.JSON(http.StatusBadRequest,
			infra.NewRESTValidationError(http.StatusBadRequest, "Failed to validate params", []*domain.FieldError{
				validate.NewFieldError("field", err.Error()),
			}).SetTraceID(traceID(c)))
	}

	snapshot := new(domain.Snapshot)
	if err = c.Bind(snapshot); err != nil {
		return bindFailed(c, err)
	}
	return c.JSON(http.StatusOK, rh.registrationUseCase.CheckField(c.Request().Context(), field, snapshot))
}

func bindFailed(c echo.Context, err error) error {
	detail := err.Error()
	if he, ok := err.(*echo.HTTPError); ok && he.Internal != nil {
		detail = he.Internal.Error()
	}
	return c.JSON(http.StatusUnprocessableEntity,
		infra.NewRESTStandardError(http.StatusUnprocessableEntity, "Failed to bind registration snapshot: "+detail).
			SetTraceID(traceID(c)))
}

func traceID(c echo.Context) string {
	return c.Response().Header().Get(echo.HeaderXRequestID)
}

package usecase

import (
	"context"

	"github.com/pot-code/regform/internal/domain"
	"github.com/pot-code/regform/internal/infrastructure/logging"
	"github.com/pot-code/regform/internal/registration"
	"go.elastic.co/apm"
	"go.uber.org/zap"
)

// RegistrationUseCase ...
type RegistrationUseCase struct {
	Validator domain.FormValidator
}

var _ domain.RegistrationUseCase = &RegistrationUseCase{}

// NewRegistrationUseCase ...
func NewRegistrationUseCase(Validator domain.FormValidator) *RegistrationUseCase {
	return &RegistrationUseCase{
		Validator: Validator,
	}
}

// Submit validate the whole form, summary is nil unless the form is valid
func (ru *RegistrationUseCase) Submit(ctx context.Context, snapshot *domain.Snapshot) (*domain.FormResult, *domain.Summary) {
	apmSpan, _ := apm.StartSpan(ctx, "RegistrationUseCase.Submit", "service")
	defer apmSpan.End()

	logger := logging.ExtractLoggerFromContext(ctx)
	result := ru.Validator.ValidateForm(snapshot)
	logResults(logger, result.Fields)
	if !result.Valid {
		logger.Debug("Form validation failed", zap.Int("registration.invalid_count", len(result.FieldErrors())))
		return result, nil
	}

	logger.Debug("Form validation successful", zap.Int("registration.valid_count", len(result.Fields)))
	return result, registration.Summarize(snapshot)
}

// CheckField validate a single field
func (ru *RegistrationUseCase) CheckField(ctx context.Context, field domain.Field, snapshot *domain.Snapshot) *domain.Result {
	apmSpan, _ := apm.StartSpan(ctx, "RegistrationUseCase.CheckField", "service")
	defer apmSpan.End()

	result := ru.Validator.ValidateField(field, snapshot)
	if result != nil {
		logResults(logging.ExtractLoggerFromContext(ctx), []*domain.Result{result})
	}
	return result
}

// Live validate the fields triggered by a form event
func (ru *RegistrationUseCase) Live(ctx context.Context, event domain.Event, field domain.Field, snapshot *domain.Snapshot) []*domain.Result {
	apmSpan, _ := apm.StartSpan(ctx, "RegistrationUseCase.Live", "service")
	defer apmSpan.End()

	fields := registration.Triggered(event, field, snapshot)
	results := make([]*domain.Result, 0, len(fields))
	for _, f := range fields {
		if r := ru.Validator.ValidateField(f, snapshot); r != nil {
			results = append(results, r)
		}
	}
	logResults(logging.ExtractLoggerFromContext(ctx), results)
	return results
}

// values never reach the log, only verdicts
func logResults(logger *zap.Logger, results []*domain.Result) {
	for _, r := range results {
		logger.Debug("Validated field",
			zap.String("registration.field", string(r.Field)),
			zap.Bool("registration.valid", r.Valid),
			zap.String("registration.reason", string(r.Reason)),
		)
	}
}

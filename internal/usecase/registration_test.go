package usecase

import (
	"context"
	"testing"

	"github.com/pot-code/regform/internal/domain"
	"github.com/pot-code/regform/internal/infrastructure/logging"
	"github.com/pot-code/regform/internal/registration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func validSnapshot() *domain.Snapshot {
	return &domain.Snapshot{
		FullName:        "Ada Lovelace",
		Email:           "ada@example.com",
		Password:        "Engine#1!",
		ConfirmPassword: "Engine#1!",
	}
}

func newUseCase() *RegistrationUseCase {
	return NewRegistrationUseCase(registration.MustNewValidator())
}

func TestRegistrationUseCase_Submit(t *testing.T) {
	uc := newUseCase()

	t.Run("valid", func(t *testing.T) {
		result, summary := uc.Submit(context.Background(), validSnapshot())
		assert.True(t, result.Valid)
		require.NotNil(t, summary)
		assert.Equal(t, "Ada Lovelace", summary.FullName)
		assert.Equal(t, registration.NotProvided, summary.Phone)
	})

	t.Run("invalid", func(t *testing.T) {
		s := validSnapshot()
		s.Age = "150"
		result, summary := uc.Submit(context.Background(), s)
		assert.False(t, result.Valid)
		assert.Nil(t, summary)
		assert.Equal(t, domain.ReasonOutOfRange, result.Get(domain.FieldAge).Reason)
	})
}

func TestRegistrationUseCase_NeverLogsValues(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	ctx := logging.SetLoggerInContext(context.Background(), zap.New(core))

	s := validSnapshot()
	s.Password = "Secret#123"
	newUseCase().Submit(ctx, s)

	require.NotZero(t, logs.Len())
	for _, entry := range logs.All() {
		for _, f := range entry.Context {
			assert.NotContains(t, f.String, "Secret#123")
			assert.NotContains(t, f.String, "Engine#1!")
			assert.NotContains(t, f.String, "Ada Lovelace")
			assert.NotContains(t, f.String, "ada@example.com")
		}
	}
	assert.Equal(t, 1, logs.FilterMessage("Form validation successful").Len())
	assert.Equal(t, len(domain.Fields), logs.FilterMessage("Validated field").Len())
}

func TestRegistrationUseCase_CheckField(t *testing.T) {
	uc := newUseCase()
	s := validSnapshot()
	s.ConfirmPassword = "other"

	r := uc.CheckField(context.Background(), domain.FieldConfirmPassword, s)
	require.NotNil(t, r)
	assert.Equal(t, domain.ReasonMismatch, r.Reason)

	assert.Nil(t, uc.CheckField(context.Background(), "nickname", s))
}

func TestRegistrationUseCase_Live(t *testing.T) {
	uc := newUseCase()
	s := validSnapshot()
	s.Password = "weak"

	results := uc.Live(context.Background(), domain.EventInput, domain.FieldPassword, s)
	require.Len(t, results, 2)
	assert.Equal(t, domain.FieldPassword, results[0].Field)
	assert.Equal(t, domain.ReasonTooShort, results[0].Reason)
	assert.Equal(t, domain.FieldConfirmPassword, results[1].Field)
	assert.Equal(t, domain.ReasonMismatch, results[1].Reason)

	assert.Empty(t, uc.Live(context.Background(), domain.EventInput, domain.FieldAge, s))
	assert.Len(t, uc.Live(context.Background(), domain.EventSubmit, "", s), len(domain.Fields))
}

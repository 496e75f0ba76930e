package main

import (
	"fmt"
	"os/signal"
	"syscall"

	infra "github.com/pot-code/regform/internal/infrastructure"
	"github.com/pot-code/regform/internal/infrastructure/logging"
	ihttp "github.com/pot-code/regform/internal/interfaces/http"
	"github.com/pot-code/regform/internal/registration"
	"github.com/pot-code/regform/internal/usecase"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the registration validators over HTTP",
	RunE:  runServe,
}

func init() {
	infra.RegisterFlags(serveCmd.Flags())
}

func runServe(cmd *cobra.Command, args []string) error {
	option, err := infra.InitConfig(cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := logging.NewLogger(&logging.Config{
		FilePath: option.Logging.FilePath,
		Level:    option.Logging.Level,
		AppID:    option.AppID,
		Env:      option.Env,
	})
	if err != nil {
		return fmt.Errorf("Failed to create logger: %w", err)
	}
	defer logger.Sync()

	validator, err := registration.NewValidator()
	if err != nil {
		logger.Error("Failed to create registration validator", zap.Error(err))
		return err
	}
	RegistrationUseCase := usecase.NewRegistrationUseCase(validator)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := ihttp.Serve(ctx, option, RegistrationUseCase, logger); err != nil {
		logger.Error("Server stopped", zap.Error(err))
		return err
	}
	return nil
}

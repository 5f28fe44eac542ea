package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"chronicle/pkg/config"
	"chronicle/pkg/gemini"
	"chronicle/pkg/handlers"
	"chronicle/pkg/logging"
	"chronicle/pkg/studio"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web studio",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	seed, err := loadSeed()
	if err != nil {
		return err
	}

	requester, err := gemini.NewRequester(ctx, gemini.RequesterOptions{
		APIKey:  config.GeminiAPIKey,
		BaseURL: config.GeminiBaseURL,
		RPS:     config.ModelRPS,
		Burst:   config.ModelBurst,
	})
	if err != nil {
		return err
	}

	s := studio.New(seed,
		gemini.NewInsightClient(requester, config.InsightModel),
		gemini.NewImageClient(requester, config.ImageModel),
		gemini.NewLocationClient(requester, config.LocationModel),
	)

	if logging.Log.IsLevelEnabled(logrus.DebugLevel) {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	r, err := handlers.NewRouter(s, handlers.RouterOptions{
		SessionSecret:  config.SessionSecret,
		CORSOrigins:    config.CORSOrigins,
		ToolsRPS:       config.ToolsRPS,
		ToolsBurst:     config.ToolsBurst,
		MaxUploadBytes: config.MaxUploadBytes,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{Addr: config.ListenAddr, Handler: r}
	errCh := make(chan error, 1)
	go func() {
		logging.Log.WithField("addr", config.ListenAddr).Info("chronicle listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logging.Log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

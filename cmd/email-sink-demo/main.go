// Package main exercises the email sink end to end: it loads the
// configuration, picks a delivery transport, and emits one demonstration
// batch of log events.
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	emailsink "github.com/Etogy/serilog-sinks-email"
	"github.com/Etogy/serilog-sinks-email/internal/config"
	"github.com/Etogy/serilog-sinks-email/transport/ses"
	"github.com/Etogy/serilog-sinks-email/transport/writer"
)

func main() {
	configPath := flag.String("config", "", "path to YAML configuration file (optional)")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		errLogger := zerolog.New(os.Stderr)
		errLogger.Error().Err(err).Msg("failed to load configuration")
		os.Exit(1)
	}

	logger := setupLogger(cfg.Logging.Level)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	settings := &emailsink.ConnectionSettings{
		Host:       cfg.Email.Host,
		Port:       cfg.Email.Port,
		EnableSSL:  cfg.Email.SSL,
		Username:   cfg.Email.Username,
		Password:   cfg.Email.Password,
		From:       cfg.Email.From,
		To:         cfg.Email.To,
		IsBodyHTML: cfg.Email.BodyHTML,
		Timeout:    cfg.Email.Timeout,
	}

	opts := []emailsink.Option{emailsink.WithDiagnostics(logger)}
	if t, err := selectTransport(ctx, cfg); err != nil {
		logger.Error().Err(err).Msg("failed to create transport")
		os.Exit(1)
	} else if t != nil {
		opts = append(opts, emailsink.WithTransport(t))
	}

	sink, err := emailsink.New(settings, opts...)
	if err != nil {
		logger.Error().Err(err).Msg("failed to create email sink")
		os.Exit(1)
	}
	defer sink.Close()

	logger.Info().
		Str("from", cfg.Email.From).
		Str("to", cfg.Email.To).
		Msg("sending demonstration batch")

	batch := []*emailsink.Event{
		{
			Timestamp: time.Now(),
			Level:     emailsink.LevelInformation,
			Message:   "demo batch started",
			Properties: map[string]any{
				"pid": os.Getpid(),
			},
		},
		{
			Timestamp: time.Now(),
			Level:     emailsink.LevelError,
			Message:   "something went wrong in the demo",
			Err:       errors.New("synthetic failure"),
		},
	}

	if err := sink.EmitBatch(ctx, batch); err != nil {
		logger.Error().Err(err).Msg("demonstration batch failed")
		os.Exit(1)
	}

	logger.Info().Msg("demonstration batch delivered")
}

// loadConfig loads configuration from the specified path (YAML + env
// override) or from environment variables only if no path is given.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}

// setupLogger builds the console logger used both for the demo's own
// output and as the sink's diagnostics channel.
func setupLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}

// selectTransport chooses the delivery backend based on configuration.
// A nil result with nil error means the sink's default SMTP transport.
func selectTransport(ctx context.Context, cfg *config.Config) (emailsink.Transport, error) {
	switch cfg.Transport {
	case "", "smtp":
		return nil, nil

	case "ses":
		if !cfg.SESConfigured() {
			return nil, errors.New("ses transport selected but SES_REGION is required")
		}
		return ses.New(ctx, ses.Config{
			Region:          cfg.SES.Region,
			AccessKeyID:     cfg.SES.AccessKeyID,
			SecretAccessKey: cfg.SES.SecretAccessKey,
		})

	case "writer":
		return writer.New(), nil

	default:
		return nil, errors.New("unknown transport: " + cfg.Transport)
	}
}

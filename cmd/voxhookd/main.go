// SPDX-License-Identifier: MIT

// Command voxhookd runs a demonstration webhook service: a small set of
// intent handlers behind the full HTTP stack. It doubles as the reference
// deployment wiring for the library.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/voxhook/voxhook"
	"github.com/voxhook/voxhook/config"
	"github.com/voxhook/voxhook/dedupe"
	"github.com/voxhook/voxhook/internal/log"
	"github.com/voxhook/voxhook/rich"
	"github.com/voxhook/voxhook/server"
	"github.com/voxhook/voxhook/telemetry"
)

var (
	version   = "v0.1.0"
	commit    = "none"
	buildDate = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	configPath := flag.String("config", "", "path to config file (YAML)")
	flag.Parse()

	if *showVersion {
		fmt.Printf("%s (commit: %s, built: %s)\n", version, commit, buildDate)
		os.Exit(0)
	}

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, "voxhookd:", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	loader := config.NewLoader(configPath)
	cfg, err := loader.Load()
	if err != nil {
		return err
	}

	log.Configure(log.Config{Level: cfg.LogLevel, Service: "voxhookd"})
	logger := log.WithComponent("main")
	logger.Info().
		Str("version", version).
		Str("listen", cfg.Listen).
		Msg("starting")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	provider, err := telemetry.NewProvider(ctx, telemetry.Config{
		Enabled:        cfg.Telemetry.Enabled,
		ServiceName:    "voxhookd",
		ServiceVersion: version,
		ExporterType:   cfg.Telemetry.Protocol,
		Endpoint:       cfg.Telemetry.Endpoint,
		SamplingRate:   cfg.Telemetry.SampleRatio,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := provider.Shutdown(context.Background()); err != nil {
			logger.Warn().Err(err).Msg("telemetry shutdown failed")
		}
	}()

	opts := []voxhook.Option{}
	if cfg.Dedupe.Backend != "" {
		store, err := dedupe.Open(dedupe.Config{
			Backend: cfg.Dedupe.Backend,
			DSN:     cfg.Dedupe.DSN,
			TTL:     cfg.Dedupe.TTL,
		})
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()
		opts = append(opts, voxhook.WithReplayStore(store))
	}

	holder := config.NewHolder(cfg, loader, configPath)
	opts = append(opts, voxhook.WithVerificationSource(func() (string, string) {
		c := holder.Get()
		return c.VerifyHeader, c.VerifyValue
	}))

	app := voxhook.New(voxhook.Config{
		DedupeTTL: cfg.Dedupe.TTL,
	}, opts...)
	registerHandlers(app)

	if err := holder.StartWatcher(ctx); err != nil {
		logger.Warn().Err(err).Msg("config watcher unavailable")
	}
	updates := make(chan config.Config, 1)
	holder.Subscribe(updates)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case next := <-updates:
				log.SetLevel(next.LogLevel)
			}
		}
	}()

	return server.New(cfg, app).Run(ctx)
}

// registerHandlers installs a minimal demonstration dialog.
func registerHandlers(app *voxhook.App) {
	app.HandleIntent("actions.intent.MAIN", func(ctx context.Context, conv *voxhook.Conversation) error {
		conv.SetState("greeted")
		return conv.AskSimple("Hello! Ask me anything, or say goodbye.",
			"Are you still there?")
	})
	app.HandleStateIntent("greeted", "actions.intent.TEXT", func(ctx context.Context, conv *voxhook.Conversation) error {
		resp := rich.NewResponse().
			AddSimple(fmt.Sprintf("You said: %s", conv.Query()), "").
			AddSuggestions("goodbye")
		return conv.Ask(resp)
	})
	app.HandleIntent("goodbye", func(ctx context.Context, conv *voxhook.Conversation) error {
		return conv.TellText("Goodbye!")
	})
	app.HandleFallback(func(ctx context.Context, conv *voxhook.Conversation) error {
		return conv.AskSimple("Sorry, I did not get that. Could you rephrase?")
	})
}

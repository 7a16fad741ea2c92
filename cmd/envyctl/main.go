// Command envyctl connects to a madVR Envy, keeps the session synced,
// and logs every reduced notification plus the derived bridge events.
// It is a diagnostic harness for the library, not a full CLI.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/envyctl/go-envy/adapter"
	"github.com/envyctl/go-envy/bridge"
	"github.com/envyctl/go-envy/client"
	"github.com/envyctl/go-envy/config"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(".")
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}
	if cfg.Host == "" {
		slog.Error("no device host configured; set ENVY_HOST")
		os.Exit(1)
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(cfg.LogLevel),
	}))
	slog.SetDefault(log)

	c := client.New(client.Config{
		Host:                    cfg.Host,
		Port:                    cfg.Port,
		ConnectTimeout:          cfg.ConnectTimeout(),
		CommandTimeout:          cfg.CommandTimeout(),
		ReadTimeout:             cfg.ReadTimeout(),
		HeartbeatInterval:       cfg.HeartbeatInterval(),
		LivenessTimeout:         cfg.LivenessTimeout(),
		ReconnectInitialBackoff: cfg.ReconnectInitialBackoff(),
		ReconnectMaxBackoff:     cfg.ReconnectMaxBackoff(),
		ReconnectJitter:         cfg.ReconnectJitter,
		DisableAutoReconnect:    cfg.DisableAutoReconnect,
		MaxLineLength:           cfg.MaxLineLength,
		Logger:                  log,
	})

	tracker := adapter.New()
	dispatcher := bridge.NewDispatcher(func(eventType string, data map[string]any) {
		log.Info("bus event", "type", eventType, "data", data)
	})

	c.Subscribe(func(ev client.Event) {
		switch ev.Kind {
		case client.EventConnected:
			log.Info("connected", "host", cfg.Host, "port", cfg.Port)
		case client.EventDisconnected:
			log.Warn("disconnected")
		case client.EventMessage:
			log.Debug("message", "kind", ev.Message.Kind().String(), "msg", ev.Message)
		}
		snap, deltas, events := tracker.Update(ev.State)
		update := dispatcher.HandleAdapterUpdate(snap, deltas, events)
		if len(update.ChangedFields) > 0 {
			log.Info("state changed", "fields", update.ChangedFields, "power", snap.Power.String())
		}
	})

	if err := c.Start(ctx); err != nil {
		log.Error("start", "err", err)
		os.Exit(1)
	}
	defer c.Stop()

	if err := c.WaitSynced(ctx, 0); err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		log.Error("sync", "err", err)
		os.Exit(1)
	}
	log.Info("synced", "version", c.State().Version)

	if _, err := c.GetMacAddress(ctx); err != nil {
		log.Warn("query mac address", "err", err)
	}
	if _, err := c.GetTemperatures(ctx); err != nil {
		log.Warn("query temperatures", "err", err)
	}

	<-ctx.Done()
	log.Info("shutting down")
}

func logLevel(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

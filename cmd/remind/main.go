// The remind binary is the alarm-callback entry point: the OS scheduler
// (cron, launchd, a platform alarm) invokes it, it opens its own store,
// decides whether a reminder is due, emits it, and exits. It shares no
// state with a running server process.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/studydeck/backend/internal/infrastructure/config"
	"github.com/studydeck/backend/internal/reminder"
	"github.com/studydeck/backend/internal/store"
)

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	db, err := store.NewSQLite(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	quiet, err := reminder.ParseWindow(cfg.QuietHoursStart, cfg.QuietHoursEnd)
	if err != nil {
		logger.Error("invalid quiet hours", "error", err)
		os.Exit(1)
	}

	st, err := db.GetStreak()
	if err != nil {
		logger.Error("failed to load streak", "error", err)
		os.Exit(1)
	}

	notification, due := reminder.Plan(st, time.Now(), quiet)
	if !due {
		logger.Info("no reminder due")
		return
	}

	payload, err := json.Marshal(notification)
	if err != nil {
		logger.Error("failed to encode notification", "error", err)
		os.Exit(1)
	}

	// stdout carries the payload for the platform notifier to pick up.
	fmt.Println(string(payload))

	if cfg.WebhookURL != "" {
		if err := postWebhook(cfg.WebhookURL, payload); err != nil {
			logger.Error("webhook delivery failed", "error", err)
			os.Exit(1)
		}
		logger.Info("reminder delivered", "webhook", cfg.WebhookURL)
	}
}

func postWebhook(url string, payload []byte) error {
	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned %s", resp.Status)
	}
	return nil
}

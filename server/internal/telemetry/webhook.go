package telemetry

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/bpcalc/bpcalc/pkg/bp"
	"github.com/bpcalc/bpcalc/server/internal/config"
)

// deliver sends ev to every webhook in hooks.
// Errors are logged but never reach the form caller.
func (t *Tracker) deliver(hooks []config.WebhookConfig, ev Event) {
	for _, wh := range hooks {
		url := wh.URL()
		if url == "" {
			continue
		}

		var err error
		switch wh.Type {
		case "slack":
			err = t.sendSlack(url, ev)
		case "teams":
			err = t.sendTeams(url, ev)
		case "http":
			err = t.sendHTTP(url, ev)
		default:
			slog.Warn("telemetry: unknown webhook type, skipping", "type", wh.Type)
			continue
		}

		if err != nil {
			slog.Error("telemetry: webhook delivery failed",
				"type", wh.Type,
				"event_id", ev.ID,
				"err", err,
			)
		} else {
			slog.Debug("telemetry: webhook delivered",
				"type", wh.Type,
				"event_id", ev.ID,
			)
		}
	}
}

func (t *Tracker) sendSlack(url string, ev Event) error {
	body, _ := json.Marshal(map[string]string{
		"text": fmt.Sprintf("*%s* %d/%d mmHg → %s", ev.Name, ev.Systolic, ev.Diastolic, ev.Category.DisplayName()),
	})
	return t.post(url, body)
}

func (t *Tracker) sendTeams(url string, ev Event) error {
	payload := map[string]interface{}{
		"@type":      "MessageCard",
		"@context":   "http://schema.org/extensions",
		"themeColor": categoryColor(ev.Category),
		"summary":    ev.Name,
		"title":      fmt.Sprintf("%s: %s", ev.Name, ev.Category.DisplayName()),
		"text": fmt.Sprintf("Systolic %d, diastolic %d. %s",
			ev.Systolic, ev.Diastolic, bp.HeartRiskMessage(ev.Category)),
	}
	body, _ := json.Marshal(payload)
	return t.post(url, body)
}

func (t *Tracker) sendHTTP(url string, ev Event) error {
	body, err := json.Marshal(map[string]interface{}{
		"event":      ev,
		"properties": ev.Properties(),
	})
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	return t.post(url, body)
}

func (t *Tracker) post(url string, body []byte) error {
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("http post: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook returned HTTP %d", resp.StatusCode)
	}
	return nil
}

func categoryColor(c bp.Category) string {
	switch c {
	case bp.High:
		return "FF4F6A"
	case bp.PreHigh:
		return "FFAB40"
	case bp.Low:
		return "00D4FF"
	default:
		return "3FB950"
	}
}

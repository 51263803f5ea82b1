package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/fintrack/fintrack-backend/internal/apperrors"
	"github.com/fintrack/fintrack-backend/internal/model"
)

// WebhookNotifier delivers alerts as JSON POSTs to a configured webhook
// endpoint. The payload carries the alert variant and the objective
// identifiers; composing a human-readable message body is the
// receiver's job.
type WebhookNotifier struct {
	url        string
	httpClient *http.Client
}

// NewWebhookNotifier creates a notifier posting to the given URL with
// default HTTP settings.
func NewWebhookNotifier(url string) *WebhookNotifier {
	return &WebhookNotifier{
		url: url,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// webhookPayload is the wire format posted for every alert.
type webhookPayload struct {
	Alert          string `json:"alert"`
	ObjectiveID    string `json:"objectiveId"`
	Description    string `json:"description"`
	Kind           string `json:"kind"`
	Period         string `json:"period"`
	TargetAmount   string `json:"targetAmount"`
	RecipientEmail string `json:"recipientEmail"`
	RecipientName  string `json:"recipientName"`
}

// SendYellowAlert posts a yellow (80% threshold) alert.
func (n *WebhookNotifier) SendYellowAlert(ctx context.Context, objective model.Objective, recipient model.User) error {
	return n.post(ctx, "yellow_alert", objective, recipient)
}

// SendRedAlert posts a red (spending limit exceeded) alert.
func (n *WebhookNotifier) SendRedAlert(ctx context.Context, objective model.Objective, recipient model.User) error {
	return n.post(ctx, "red_alert", objective, recipient)
}

// SendGoalAchieved posts a goal-achieved notification.
func (n *WebhookNotifier) SendGoalAchieved(ctx context.Context, objective model.Objective, recipient model.User) error {
	return n.post(ctx, "goal_achieved", objective, recipient)
}

func (n *WebhookNotifier) post(ctx context.Context, alert string, objective model.Objective, recipient model.User) error {
	payload := webhookPayload{
		Alert:          alert,
		ObjectiveID:    objective.ID,
		Description:    objective.Description,
		Kind:           string(objective.Kind),
		Period:         objective.Period,
		TargetAmount:   objective.TargetAmount.String(),
		RecipientEmail: recipient.Email,
		RecipientName:  recipient.Name,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrNotificationDeliveryFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrNotificationDeliveryFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrNotificationDeliveryFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: webhook returned status %d", apperrors.ErrNotificationDeliveryFailed, resp.StatusCode)
	}

	return nil
}

package notify

import (
	"context"
	"log"

	"github.com/fintrack/fintrack-backend/internal/model"
)

// LogNotifier writes alerts to the application log. Used when no
// webhook URL is configured, so evaluation still records crossings in
// development setups.
type LogNotifier struct{}

// NewLogNotifier creates a log-backed notifier.
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

// SendYellowAlert logs a yellow alert.
func (n *LogNotifier) SendYellowAlert(_ context.Context, objective model.Objective, recipient model.User) error {
	log.Printf("yellow alert: objective %s (%s) for %s", objective.ID, objective.Description, recipient.Email)
	return nil
}

// SendRedAlert logs a red alert.
func (n *LogNotifier) SendRedAlert(_ context.Context, objective model.Objective, recipient model.User) error {
	log.Printf("red alert: objective %s (%s) for %s", objective.ID, objective.Description, recipient.Email)
	return nil
}

// SendGoalAchieved logs a goal-achieved notification.
func (n *LogNotifier) SendGoalAchieved(_ context.Context, objective model.Objective, recipient model.User) error {
	log.Printf("goal achieved: objective %s (%s) for %s", objective.ID, objective.Description, recipient.Email)
	return nil
}

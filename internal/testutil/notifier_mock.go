package testutil

import (
	"context"
	"sync"

	"github.com/fintrack/fintrack-backend/internal/model"
)

// SentAlert records a single dispatched notification.
type SentAlert struct {
	Level       model.AlertLevel
	ObjectiveID string
	Recipient   string
}

// RecordingNotifier captures notifications instead of delivering them.
// When Err is set every send returns it, simulating delivery failure.
type RecordingNotifier struct {
	mu   sync.Mutex
	Sent []SentAlert
	Err  error
}

// NewRecordingNotifier creates an empty RecordingNotifier.
func NewRecordingNotifier() *RecordingNotifier {
	return &RecordingNotifier{}
}

func (n *RecordingNotifier) record(level model.AlertLevel, objective model.Objective, recipient model.User) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.Err != nil {
		return n.Err
	}
	n.Sent = append(n.Sent, SentAlert{
		Level:       level,
		ObjectiveID: objective.ID,
		Recipient:   recipient.Email,
	})
	return nil
}

// SendYellowAlert records a yellow alert.
func (n *RecordingNotifier) SendYellowAlert(_ context.Context, objective model.Objective, recipient model.User) error {
	return n.record(model.AlertLevelYellow, objective, recipient)
}

// SendRedAlert records a red alert.
func (n *RecordingNotifier) SendRedAlert(_ context.Context, objective model.Objective, recipient model.User) error {
	return n.record(model.AlertLevelRed, objective, recipient)
}

// SendGoalAchieved records an achieved notification.
func (n *RecordingNotifier) SendGoalAchieved(_ context.Context, objective model.Objective, recipient model.User) error {
	return n.record(model.AlertLevelAchieved, objective, recipient)
}

// Levels returns the levels sent, in dispatch order.
func (n *RecordingNotifier) Levels() []model.AlertLevel {
	n.mu.Lock()
	defer n.mu.Unlock()
	levels := make([]model.AlertLevel, len(n.Sent))
	for i, s := range n.Sent {
		levels[i] = s.Level
	}
	return levels
}

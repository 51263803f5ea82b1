// Package notify defines the outbound notification port for objective
// alerts and its default implementations. Message transport is all this
// package owns; deciding when an alert fires happens in the service
// layer, and duplicate suppression is by the persisted alert level, not
// here.
package notify

import (
	"context"

	"github.com/fintrack/fintrack-backend/internal/model"
)

// Notifier is the notification port consumed by objective evaluation.
// One method per alert variant so that a new level forces a
// compiler-visible update in every implementation.
//
// Implementations report delivery failures to the caller and never
// swallow them; retry policy belongs to the caller.
type Notifier interface {
	SendYellowAlert(ctx context.Context, objective model.Objective, recipient model.User) error
	SendRedAlert(ctx context.Context, objective model.Objective, recipient model.User) error
	SendGoalAchieved(ctx context.Context, objective model.Objective, recipient model.User) error
}

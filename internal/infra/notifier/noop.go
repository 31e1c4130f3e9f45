package notifier

import (
	"context"

	"daily-briefing/internal/domain/entity"
)

// NoOpNotifier is used when no webhook is configured.
type NoOpNotifier struct{}

// NewNoOpNotifier creates a NoOpNotifier.
func NewNoOpNotifier() *NoOpNotifier {
	return &NoOpNotifier{}
}

// NotifyBriefing does nothing.
func (n *NoOpNotifier) NotifyBriefing(context.Context, *entity.DailyBriefing) error {
	return nil
}

package job

import (
	"context"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/notetoc/internal/service"
)

// HistoryTrimJob bounds the webhook history to the newest maxEntries.
type HistoryTrimJob struct {
	history    *service.WebhookHistory
	maxEntries int
}

func NewHistoryTrimJob(history *service.WebhookHistory, maxEntries int) *HistoryTrimJob {
	return &HistoryTrimJob{history: history, maxEntries: maxEntries}
}

func (j *HistoryTrimJob) Name() string {
	return "history_trim"
}

func (j *HistoryTrimJob) Run(ctx context.Context) error {
	if j.history == nil || j.maxEntries <= 0 {
		return nil
	}
	if dropped := j.history.Trim(j.maxEntries); dropped > 0 {
		logutil.GetLogger(ctx).Info("webhook history trimmed", zap.Int("dropped", dropped), zap.Int("kept", j.history.Len()))
	}
	return nil
}

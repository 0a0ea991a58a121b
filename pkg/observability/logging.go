package observability

import (
	"log/slog"

	"github.com/aretw0/reorder/pkg/domain"
)

// LogHooks logs transitions and intents at debug and aborts at info.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStateEnter: func(e *domain.StateEvent) {
			logger.Debug("state_enter", "from", e.From, "to", e.To, "generation", e.Generation)
		},
		OnIntent: func(e *domain.IntentEvent) {
			attrs := []any{"intent", e.Intent, "prevented", e.Prevented}
			if e.Detail != nil {
				attrs = append(attrs, "splice_index", e.Detail.SpliceIndex, "original_index", e.Detail.OriginalIndex)
			}
			logger.Debug("intent", attrs...)
		},
		OnAbort: func(e *domain.AbortEvent) {
			logger.Info("gesture_aborted", "reason", e.Reason, "state", e.State)
		},
	}
}

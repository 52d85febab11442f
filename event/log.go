package event

import (
	"context"
	"log/slog"
)

// LogEmitter writes every event as one structured slog record.
//
// Successful searches and recompute passes log at Info; search failures log
// at Warn, since in an interactive session they usually mean "mid-edit
// board", not "broken system".
type LogEmitter struct {
	log *slog.Logger
}

// NewLogEmitter wraps the given logger. A nil logger falls back to
// slog.Default.
func NewLogEmitter(log *slog.Logger) *LogEmitter {
	if log == nil {
		log = slog.Default()
	}

	return &LogEmitter{log: log}
}

// Emit writes the event.
func (l *LogEmitter) Emit(e Event) {
	attrs := []any{
		slog.String("run_id", e.RunID),
		slog.String("type", string(e.Type)),
	}
	if e.Type == TypePathFound {
		attrs = append(attrs,
			slog.Any("path", e.Path),
			slog.Int64("total_cost", e.Cost),
		)
	}
	if e.Type == TypeCostsRecomputed {
		attrs = append(attrs, slog.Int64("wires", e.Cost))
	}

	level := slog.LevelInfo
	if e.Type.Failure() {
		level = slog.LevelWarn
	}
	l.log.Log(context.Background(), level, "search event", attrs...)
}

// Package filter decides, per listed file, whether it should be transferred
// and under which destination key.
package filter

import (
	"context"

	"go.uber.org/zap"

	"drivesync/internal/model"
)

// Oracle answers destination existence checks.
type Oracle interface {
	Exists(ctx context.Context, key string) (bool, error)
}

type Config struct {
	MaxFileSizeBytes int64
	SkipExisting     bool
}

type Decision struct {
	Keep   bool
	Reason string
}

var keep = Decision{Keep: true}

func skip(reason string) Decision {
	return Decision{Reason: reason}
}

type Filter struct {
	cfg    Config
	oracle Oracle
	log    *zap.Logger
}

func New(cfg Config, oracle Oracle, log *zap.Logger) *Filter {
	return &Filter{cfg: cfg, oracle: oracle, log: log}
}

// Evaluate applies the skip rules in order; the first match wins.
func (f *Filter) Evaluate(ctx context.Context, rec model.FileRecord, key string) Decision {
	if rec.IsWorkspaceDoc() {
		return skip(model.ReasonRequiresExport)
	}

	// The listing query already excludes folders; re-checked here in case a
	// caller-supplied custom query let one through.
	if rec.IsFolder() {
		return skip(model.ReasonIsFolder)
	}

	if rec.SizeKnown() && f.cfg.MaxFileSizeBytes > 0 && rec.Size > f.cfg.MaxFileSizeBytes {
		return skip(model.ReasonExceedsSize)
	}

	if f.cfg.SkipExisting {
		exists, err := f.oracle.Exists(ctx, key)
		if err != nil {
			// Availability over caution: a broken metadata check must not
			// block the run, so the file is assumed absent.
			f.log.Warn("existence check failed, assuming object is absent",
				zap.String("key", key),
				zap.Error(err))
		} else if exists {
			return skip(model.ReasonAlreadyExists)
		}
	}

	return keep
}

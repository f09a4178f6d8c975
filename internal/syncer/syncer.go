// Package syncer runs the batch sync: list the source, filter, then copy in
// fixed-size sequential batches with a pause in between.
package syncer

import (
	"context"
	"io"
	"time"

	"go.uber.org/zap"

	"drivesync/internal/filter"
	"drivesync/internal/model"
)

type Lister interface {
	ListAll(ctx context.Context) ([]model.FileRecord, error)
	Partial() bool
}

type Fetcher interface {
	Fetch(ctx context.Context, fileID string) (io.ReadCloser, error)
}

type Store interface {
	Exists(ctx context.Context, key string) (bool, error)
	Put(ctx context.Context, key string, body io.Reader, contentType string) (int64, error)
}

// Recorder persists per-file outcomes. Persistence failures are logged, never
// fail the run.
type Recorder interface {
	Save(outcome model.Outcome) error
}

type Config struct {
	BatchSize        int
	Delay            time.Duration
	MaxFileSizeBytes int64
	SkipExisting     bool
	DryRun           bool
}

type Syncer struct {
	lister  Lister
	fetcher Fetcher
	store   Store
	filter  *filter.Filter
	keys    *filter.KeyBuilder
	cfg     Config
	history Recorder
	sleep   func(time.Duration)
	log     *zap.Logger
}

type Option func(*Syncer)

// WithHistory enables outcome persistence.
func WithHistory(r Recorder) Option {
	return func(s *Syncer) { s.history = r }
}

// WithSleep replaces the inter-batch wait, for tests.
func WithSleep(fn func(time.Duration)) Option {
	return func(s *Syncer) { s.sleep = fn }
}

func New(lister Lister, fetcher Fetcher, store Store, keys *filter.KeyBuilder, cfg Config, log *zap.Logger, opts ...Option) *Syncer {
	s := &Syncer{
		lister:  lister,
		fetcher: fetcher,
		store:   store,
		keys:    keys,
		cfg:     cfg,
		sleep:   time.Sleep,
		log:     log,
	}

	s.filter = filter.New(filter.Config{
		MaxFileSizeBytes: cfg.MaxFileSizeBytes,
		SkipExisting:     cfg.SkipExisting,
	}, store, log)

	for _, opt := range opts {
		opt(s)
	}

	return s
}

type candidate struct {
	rec model.FileRecord
	key string
}

// Run drives one full sync. Every listed file ends up with exactly one
// outcome in the report; per-file failures never abort the run. The only
// fatal case is the source being unreachable before the first page, which
// still returns the (empty) report alongside the error.
func (s *Syncer) Run(ctx context.Context) (*model.Report, error) {
	report := model.NewReport()

	s.log.Info("fetching file list from source")
	files, err := s.lister.ListAll(ctx)
	if err != nil {
		s.log.Error("listing failed", zap.Error(err))
		return report, err
	}

	report.Found = len(files)
	report.PartialList = s.lister.Partial()
	s.log.Info("listing complete",
		zap.Int("found", report.Found),
		zap.Bool("partial", report.PartialList))

	if len(files) == 0 {
		return report, nil
	}

	var kept []candidate
	for _, rec := range files {
		key := s.keys.Key(ctx, rec)

		decision := s.filter.Evaluate(ctx, rec, key)
		if !decision.Keep {
			s.log.Debug("skipping file",
				zap.String("name", rec.Name),
				zap.String("reason", decision.Reason))
			s.record(report, model.Skipped(rec, key, decision.Reason))
			continue
		}

		kept = append(kept, candidate{rec: rec, key: key})
	}

	if s.cfg.DryRun {
		for _, c := range kept {
			s.log.Info("would sync",
				zap.String("name", c.rec.Name),
				zap.String("key", c.key))
			s.record(report, model.WouldSync(c.rec, c.key))
		}
		return report, nil
	}

	totalBatches := (len(kept) + s.cfg.BatchSize - 1) / s.cfg.BatchSize

	for start := 0; start < len(kept); start += s.cfg.BatchSize {
		end := min(start+s.cfg.BatchSize, len(kept))
		batch := kept[start:end]

		s.log.Info("processing batch",
			zap.Int("batch", start/s.cfg.BatchSize+1),
			zap.Int("total_batches", totalBatches),
			zap.Int("files", len(batch)))

		for _, c := range batch {
			s.record(report, s.transfer(ctx, c.rec, c.key))
		}
		report.Batches++

		if end < len(kept) && s.cfg.Delay > 0 {
			s.log.Info("waiting before next batch",
				zap.Duration("delay", s.cfg.Delay))
			s.sleep(s.cfg.Delay)
		}
	}

	return report, nil
}

// transfer copies one file: fetch the source bytes, then stream them to the
// destination. A fetch failure never reaches the upload step.
func (s *Syncer) transfer(ctx context.Context, rec model.FileRecord, key string) model.Outcome {
	body, err := s.fetcher.Fetch(ctx, rec.ID)
	if err != nil {
		s.log.Error("failed to fetch file",
			zap.String("name", rec.Name),
			zap.Error(err))
		return model.Failed(rec, key, err)
	}

	defer func(body io.ReadCloser) {
		_ = body.Close()
	}(body)

	bytes, err := s.store.Put(ctx, key, body, rec.MimeType)
	if err != nil {
		s.log.Error("failed to upload file",
			zap.String("name", rec.Name),
			zap.String("key", key),
			zap.Error(err))
		return model.Failed(rec, key, err)
	}

	s.log.Info("synced",
		zap.String("name", rec.Name),
		zap.String("key", key),
		zap.Int64("bytes", bytes))

	return model.Synced(rec, key, bytes)
}

func (s *Syncer) record(report *model.Report, outcome model.Outcome) {
	report.Record(outcome)

	if s.history != nil {
		if err := s.history.Save(outcome); err != nil {
			s.log.Warn("failed to save history",
				zap.Error(err))
		}
	}
}

package source

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"drivesync/internal/model"
)

// PagePolicy decides what happens when a page after the first fails.
type PagePolicy string

const (
	// PolicyKeepPartial stops pagination and syncs what was listed so far.
	PolicyKeepPartial PagePolicy = "keep-partial"
	// PolicyAbort fails the run.
	PolicyAbort PagePolicy = "abort"
)

// Lister walks the paginated listing and materializes it. It remembers the
// continuation token it stopped at, so a caller could resume from there.
type Lister struct {
	src     Source
	scope   Scope
	policy  PagePolicy
	log     *zap.Logger
	token   string
	partial bool
}

func NewLister(src Source, scope Scope, policy PagePolicy, log *zap.Logger) *Lister {
	return &Lister{
		src:    src,
		scope:  scope,
		policy: policy,
		log:    log,
	}
}

// ListAll drains the listing. A failure on the very first page returns
// ErrUnavailable; later failures follow the configured page policy.
func (l *Lister) ListAll(ctx context.Context) ([]model.FileRecord, error) {
	var files []model.FileRecord
	l.partial = false

	first := true
	for {
		page, err := l.src.ListPage(ctx, l.scope, l.token)
		if err != nil {
			if first {
				return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
			}
			if l.policy == PolicyAbort {
				return nil, fmt.Errorf("%w: %v", ErrPage, err)
			}

			l.partial = true
			l.log.Warn("listing failed mid-pagination, keeping partial results",
				zap.Int("listed", len(files)),
				zap.Error(err))
			return files, nil
		}

		first = false
		files = append(files, page.Files...)

		l.token = page.NextPageToken
		if l.token == "" {
			return files, nil
		}
	}
}

// Partial reports whether the last ListAll stopped early on a page error.
func (l *Lister) Partial() bool {
	return l.partial
}

// Token returns the continuation token of the next unread page, empty when
// the listing was drained.
func (l *Lister) Token() string {
	return l.token
}

package filter

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"drivesync/internal/model"
)

type fakeResolver struct {
	folders map[string][2]string // id -> {name, parentID}
	err     error
	calls   int
}

func (r *fakeResolver) FolderName(ctx context.Context, folderID string) (string, string, error) {
	r.calls++
	if r.err != nil {
		return "", "", r.err
	}

	f, ok := r.folders[folderID]
	if !ok {
		return "", "", errors.New("folder not found: " + folderID)
	}
	return f[0], f[1], nil
}

func TestKeyBareName(t *testing.T) {
	b := NewKeyBuilder(false, "", nil, zap.NewNop())

	rec := model.FileRecord{Name: "report's \"final\".pdf", Parents: []string{"p1"}}
	if got := b.Key(context.Background(), rec); got != rec.Name {
		t.Errorf("Key() = %q, want display name unchanged", got)
	}
}

func TestKeyPreserveStructure(t *testing.T) {
	resolver := &fakeResolver{folders: map[string][2]string{
		"sub":  {"reports", "root"},
		"root": {"archive", ""},
	}}
	b := NewKeyBuilder(true, "", resolver, zap.NewNop())

	rec := model.FileRecord{Name: "x.pdf", Parents: []string{"sub"}}
	if got := b.Key(context.Background(), rec); got != "archive/reports/x.pdf" {
		t.Errorf("Key() = %q, want archive/reports/x.pdf", got)
	}
}

func TestKeyPreserveStopsAtScopedFolder(t *testing.T) {
	resolver := &fakeResolver{folders: map[string][2]string{
		"sub": {"reports", "scoped"},
	}}
	b := NewKeyBuilder(true, "scoped", resolver, zap.NewNop())

	rec := model.FileRecord{Name: "x.pdf", Parents: []string{"sub"}}
	if got := b.Key(context.Background(), rec); got != "reports/x.pdf" {
		t.Errorf("Key() = %q, want reports/x.pdf", got)
	}
}

func TestKeyPreserveCachesFolders(t *testing.T) {
	resolver := &fakeResolver{folders: map[string][2]string{
		"sub": {"reports", ""},
	}}
	b := NewKeyBuilder(true, "", resolver, zap.NewNop())

	rec := model.FileRecord{Name: "x.pdf", Parents: []string{"sub"}}
	b.Key(context.Background(), rec)
	b.Key(context.Background(), rec)

	if resolver.calls != 1 {
		t.Errorf("resolver called %d times, want 1 (cached)", resolver.calls)
	}
}

func TestKeyPreserveFallsBackOnError(t *testing.T) {
	resolver := &fakeResolver{err: errors.New("api unavailable")}
	b := NewKeyBuilder(true, "", resolver, zap.NewNop())

	rec := model.FileRecord{Name: "x.pdf", Parents: []string{"sub"}}
	if got := b.Key(context.Background(), rec); got != "x.pdf" {
		t.Errorf("Key() = %q, want bare name fallback", got)
	}
}

func TestKeyPreserveNoParents(t *testing.T) {
	b := NewKeyBuilder(true, "", &fakeResolver{}, zap.NewNop())

	rec := model.FileRecord{Name: "x.pdf"}
	if got := b.Key(context.Background(), rec); got != "x.pdf" {
		t.Errorf("Key() = %q, want bare name", got)
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

const validSupabase = `"supabase": {
	"endpoint_url": "https://example.storage.supabase.co/storage/v1/s3",
	"region": "ca-central-1",
	"bucket_name": "backups",
	"access_key_id": "key",
	"secret_access_key": "secret"
}`

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `{`+validSupabase+`}`)

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() returned error: %v", err)
	}

	if cfg.GoogleDrive.AuthMode != "oauth" {
		t.Errorf("AuthMode = %q, want oauth", cfg.GoogleDrive.AuthMode)
	}
	if cfg.GoogleDrive.MaxFileSizeMB != 100 {
		t.Errorf("MaxFileSizeMB = %v, want 100", cfg.GoogleDrive.MaxFileSizeMB)
	}
	if cfg.GoogleDrive.PageSize != 100 {
		t.Errorf("PageSize = %d, want 100", cfg.GoogleDrive.PageSize)
	}
	if cfg.GoogleDrive.OnPageError != "keep-partial" {
		t.Errorf("OnPageError = %q, want keep-partial", cfg.GoogleDrive.OnPageError)
	}
	if cfg.Sync.BatchSize != 10 {
		t.Errorf("BatchSize = %d, want 10", cfg.Sync.BatchSize)
	}
	if cfg.Sync.Delay() != time.Second {
		t.Errorf("Delay() = %v, want 1s", cfg.Sync.Delay())
	}
	if !cfg.Sync.SkipExisting {
		t.Error("SkipExisting default = false, want true")
	}
	if cfg.Sync.PreserveFolderStructure {
		t.Error("PreserveFolderStructure default = true, want false")
	}
	if !cfg.History.Enabled || cfg.History.DBPath != "drivesync.db" {
		t.Errorf("history defaults = %+v", cfg.History)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}
}

func TestLoadMissingDestinationFieldFails(t *testing.T) {
	path := writeConfig(t, `{
		"supabase": {
			"endpoint_url": "https://example.storage.supabase.co/storage/v1/s3",
			"region": "ca-central-1",
			"access_key_id": "key",
			"secret_access_key": "secret"
		}
	}`)

	if _, err := LoadFromFile(path); err == nil {
		t.Fatal("expected validation error for missing bucket_name")
	}
}

func TestLoadSessionModeRequiresToken(t *testing.T) {
	path := writeConfig(t, `{`+validSupabase+`,
		"google_drive": {"auth_mode": "session"}
	}`)

	if _, err := LoadFromFile(path); err == nil {
		t.Fatal("expected validation error for session mode without token")
	}

	path = writeConfig(t, `{`+validSupabase+`,
		"google_drive": {"auth_mode": "session", "session_token": "tok"}
	}`)

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() returned error: %v", err)
	}
	if cfg.GoogleDrive.SessionToken != "tok" {
		t.Errorf("SessionToken = %q, want tok", cfg.GoogleDrive.SessionToken)
	}
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `{`+validSupabase+`,
		"google_drive": {
			"folder_id": "abc",
			"query": "name contains 'report'",
			"max_file_size_mb": 50,
			"page_size": 200
		},
		"sync": {
			"batch_size": 5,
			"delay_between_batches": 2.5,
			"skip_existing": false
		}
	}`)

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() returned error: %v", err)
	}

	if cfg.GoogleDrive.FolderID != "abc" {
		t.Errorf("FolderID = %q, want abc", cfg.GoogleDrive.FolderID)
	}
	if cfg.GoogleDrive.MaxFileSizeBytes() != 50*1024*1024 {
		t.Errorf("MaxFileSizeBytes() = %d, want 50 MiB", cfg.GoogleDrive.MaxFileSizeBytes())
	}
	if cfg.Sync.BatchSize != 5 {
		t.Errorf("BatchSize = %d, want 5", cfg.Sync.BatchSize)
	}
	if cfg.Sync.Delay() != 2500*time.Millisecond {
		t.Errorf("Delay() = %v, want 2.5s", cfg.Sync.Delay())
	}
	if cfg.Sync.SkipExisting {
		t.Error("SkipExisting = true, want false")
	}
}

func TestLoadMissingFileFails(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoadInvalidBatchSizeFails(t *testing.T) {
	path := writeConfig(t, `{`+validSupabase+`,
		"sync": {"batch_size": 0}
	}`)

	if _, err := LoadFromFile(path); err == nil {
		t.Fatal("expected validation error for batch_size 0")
	}
}

package model

import (
	"strings"
	"time"
)

const (
	FolderMimeType          = "application/vnd.google-apps.folder"
	WorkspaceMimeTypePrefix = "application/vnd.google-apps."
)

// FileRecord is one entry from the source listing. Size is -1 when the
// provider does not report one (native workspace documents).
type FileRecord struct {
	ID           string
	Name         string
	MimeType     string
	Size         int64
	Parents      []string
	ModifiedTime time.Time
}

func (f FileRecord) IsFolder() bool {
	return f.MimeType == FolderMimeType
}

// IsWorkspaceDoc reports whether the file is a Drive-native document that has
// no byte content without an export conversion. Folders share the mime prefix
// but are handled as their own case.
func (f FileRecord) IsWorkspaceDoc() bool {
	return !f.IsFolder() && strings.HasPrefix(f.MimeType, WorkspaceMimeTypePrefix)
}

func (f FileRecord) SizeKnown() bool {
	return f.Size >= 0
}

// Package source lists and fetches files from Google Drive. Two
// implementations exist: Drive, backed by the official API client with
// stored OAuth credentials, and Session, which speaks the REST API directly
// with a pre-authenticated bearer token.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"drivesync/internal/model"
)

var (
	ErrUnavailable = errors.New("source unavailable")
	ErrPage        = errors.New("listing page failed")
	ErrFetch       = errors.New("file fetch failed")
)

// Scope narrows a listing to a folder and/or a custom Drive query.
type Scope struct {
	FolderID string
	Query    string
	PageSize int64
}

type Page struct {
	Files         []model.FileRecord
	NextPageToken string
}

type Source interface {
	// ListPage fetches one page of the listing. An empty pageToken requests
	// the first page; an empty NextPageToken in the result means no more
	// pages.
	ListPage(ctx context.Context, scope Scope, pageToken string) (*Page, error)

	// Fetch returns the full byte content of a file by identifier.
	Fetch(ctx context.Context, fileID string) (io.ReadCloser, error)

	// FolderName resolves a folder identifier to its display name and first
	// parent identifier.
	FolderName(ctx context.Context, folderID string) (name, parentID string, err error)
}

const listFields = "nextPageToken, files(id, name, size, mimeType, parents, modifiedTime)"

// buildQuery always excludes trashed items and folders, then conjoins the
// caller's folder scope and custom query.
func buildQuery(scope Scope) string {
	parts := []string{
		"trashed=false",
		fmt.Sprintf("mimeType != '%s'", model.FolderMimeType),
	}

	if scope.FolderID != "" {
		parts = append(parts, fmt.Sprintf("'%s' in parents", escapeQueryValue(scope.FolderID)))
	}
	if scope.Query != "" {
		parts = append(parts, scope.Query)
	}

	return strings.Join(parts, " and ")
}

func escapeQueryValue(s string) string {
	return strings.ReplaceAll(s, "'", "\\'")
}

package source

import (
	"context"
	"fmt"
	"io"
	"time"

	"google.golang.org/api/drive/v3"

	"drivesync/internal/auth"
	"drivesync/internal/model"
)

// Drive lists and fetches through the official Drive v3 client.
type Drive struct {
	svc *drive.Service
}

func NewDrive(ctx context.Context) (*Drive, error) {
	svc, err := auth.NewDriveService(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return &Drive{svc: svc}, nil
}

func (d *Drive) ListPage(ctx context.Context, scope Scope, pageToken string) (*Page, error) {
	call := d.svc.Files.List().
		Q(buildQuery(scope)).
		PageSize(scope.PageSize).
		Fields(listFields).
		Context(ctx)

	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	res, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	page := &Page{NextPageToken: res.NextPageToken}
	for _, f := range res.Files {
		page.Files = append(page.Files, toRecord(f))
	}

	return page, nil
}

func (d *Drive) Fetch(ctx context.Context, fileID string) (io.ReadCloser, error) {
	resp, err := d.svc.Files.Get(fileID).Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}

	return resp.Body, nil
}

func (d *Drive) FolderName(ctx context.Context, folderID string) (string, string, error) {
	f, err := d.svc.Files.Get(folderID).Fields("id, name, parents").Context(ctx).Do()
	if err != nil {
		return "", "", fmt.Errorf("failed to resolve folder %s: %w", folderID, err)
	}

	parentID := ""
	if len(f.Parents) > 0 {
		parentID = f.Parents[0]
	}

	return f.Name, parentID, nil
}

func toRecord(f *drive.File) model.FileRecord {
	modified, _ := time.Parse(time.RFC3339, f.ModifiedTime)

	rec := model.FileRecord{
		ID:           f.Id,
		Name:         f.Name,
		MimeType:     f.MimeType,
		Size:         f.Size,
		Parents:      f.Parents,
		ModifiedTime: modified,
	}

	// Workspace documents report no byte size.
	if rec.Size == 0 && rec.IsWorkspaceDoc() {
		rec.Size = -1
	}

	return rec
}

package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"drivesync/internal/model"
)

const driveAPIBase = "https://www.googleapis.com/drive/v3"

// Session speaks the Drive REST API directly with a pre-authenticated bearer
// token. No token refresh happens; the session is expected to outlive the
// run.
type Session struct {
	client  *http.Client
	token   string
	baseURL string
}

func NewSession(token string) *Session {
	return &Session{
		client:  &http.Client{Timeout: 5 * time.Minute},
		token:   token,
		baseURL: driveAPIBase,
	}
}

type sessionFile struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	MimeType     string   `json:"mimeType"`
	Size         string   `json:"size"`
	Parents      []string `json:"parents"`
	ModifiedTime string   `json:"modifiedTime"`
}

type sessionFileList struct {
	NextPageToken string        `json:"nextPageToken"`
	Files         []sessionFile `json:"files"`
}

func (s *Session) ListPage(ctx context.Context, scope Scope, pageToken string) (*Page, error) {
	params := url.Values{}
	params.Set("q", buildQuery(scope))
	params.Set("pageSize", strconv.FormatInt(scope.PageSize, 10))
	params.Set("fields", listFields)
	if pageToken != "" {
		params.Set("pageToken", pageToken)
	}

	var list sessionFileList
	if err := s.getJSON(ctx, "/files?"+params.Encode(), &list); err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	page := &Page{NextPageToken: list.NextPageToken}
	for _, f := range list.Files {
		page.Files = append(page.Files, f.toRecord())
	}

	return page, nil
}

func (s *Session) Fetch(ctx context.Context, fileID string) (io.ReadCloser, error) {
	resp, err := s.get(ctx, "/files/"+url.PathEscape(fileID)+"?alt=media")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}

	return resp.Body, nil
}

func (s *Session) FolderName(ctx context.Context, folderID string) (string, string, error) {
	var f sessionFile
	path := "/files/" + url.PathEscape(folderID) + "?fields=" + url.QueryEscape("id, name, parents")
	if err := s.getJSON(ctx, path, &f); err != nil {
		return "", "", fmt.Errorf("failed to resolve folder %s: %w", folderID, err)
	}

	parentID := ""
	if len(f.Parents) > 0 {
		parentID = f.Parents[0]
	}

	return f.Name, parentID, nil
}

func (s *Session) get(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+s.token)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		_ = resp.Body.Close()
		return nil, fmt.Errorf("drive api returned %d: %s", resp.StatusCode, body)
	}

	return resp, nil
}

func (s *Session) getJSON(ctx context.Context, path string, out any) error {
	resp, err := s.get(ctx, path)
	if err != nil {
		return err
	}

	defer func(body io.ReadCloser) {
		_ = body.Close()
	}(resp.Body)

	return json.NewDecoder(resp.Body).Decode(out)
}

func (f sessionFile) toRecord() model.FileRecord {
	modified, _ := time.Parse(time.RFC3339, f.ModifiedTime)

	rec := model.FileRecord{
		ID:           f.ID,
		Name:         f.Name,
		MimeType:     f.MimeType,
		Size:         -1,
		Parents:      f.Parents,
		ModifiedTime: modified,
	}

	// The REST API serializes size as a decimal string and omits it for
	// workspace documents.
	if f.Size != "" {
		if n, err := strconv.ParseInt(f.Size, 10, 64); err == nil {
			rec.Size = n
		}
	}

	return rec
}

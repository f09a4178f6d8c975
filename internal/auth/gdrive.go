package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

const (
	credentialsFile = "gdrive_credentials.json"
	tokenFile       = "gdrive_token.json"
)

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, ".drivesync"), nil
}

func loadOAuthConfig() (*oauth2.Config, error) {
	dir, err := configDir()
	if err != nil {
		return nil, err
	}

	b, err := os.ReadFile(filepath.Join(dir, credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("gdrive_credentials.json not found in ~/.drivesync: %w", err)
	}

	cfg, err := google.ConfigFromJSON(b, drive.DriveReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse credentials: %w", err)
	}

	return cfg, nil
}

func saveToken(token *oauth2.Token) error {
	dir, err := configDir()
	if err != nil {
		return err
	}

	b, err := json.Marshal(token)
	if err != nil {
		return err
	}

	if err := os.WriteFile(filepath.Join(dir, tokenFile), b, 0600); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}

	return nil
}

func loadToken() (*oauth2.Token, error) {
	dir, err := configDir()
	if err != nil {
		return nil, err
	}

	b, err := os.ReadFile(filepath.Join(dir, tokenFile))
	if err != nil {
		return nil, fmt.Errorf("gdrive token not found, place gdrive_token.json in ~/.drivesync: %w", err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(b, &token); err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	return &token, nil
}

// NewDriveService builds a Drive client from the stored OAuth credentials,
// refreshing and persisting the token when it has rotated.
func NewDriveService(ctx context.Context) (*drive.Service, error) {
	cfg, err := loadOAuthConfig()
	if err != nil {
		return nil, err
	}

	token, err := loadToken()
	if err != nil {
		return nil, err
	}

	tokenSource := cfg.TokenSource(ctx, token)

	newToken, err := tokenSource.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to refresh token: %w", err)
	}

	if newToken.AccessToken != token.AccessToken {
		_ = saveToken(newToken)
	}

	svc, err := drive.NewService(ctx, option.WithTokenSource(tokenSource))
	if err != nil {
		return nil, fmt.Errorf("failed to create gdrive service: %w", err)
	}

	return svc, nil
}

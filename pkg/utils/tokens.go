package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"
)

const (
	tokenDirName   = ".seat-arranger/tokens"
	tokenFilePerms = 0600
	tokenDirPerms  = 0700
)

// tokenFilePath returns the token file for an environment, under the user's home directory
func tokenFilePath(env string) (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, tokenDirName, fmt.Sprintf("token-%s.json", env)), nil
}

// LoadTokenFromFile loads the stored token for an environment.
// Returns nil without error when no token has been stored yet.
func LoadTokenFromFile(env string) (*oauth2.Token, error) {
	tokenPath, err := tokenFilePath(env)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(tokenPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read token file: %w", err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("failed to parse token file: %w", err)
	}
	return &token, nil
}

// SaveTokenToFile stores a token for an environment, readable by the owner only
func SaveTokenToFile(env string, token *oauth2.Token) error {
	tokenPath, err := tokenFilePath(env)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(tokenPath), tokenDirPerms); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}

	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}
	if err := os.WriteFile(tokenPath, data, tokenFilePerms); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}

// DeleteTokenFile deletes the stored token for an environment, if any
func DeleteTokenFile(env string) error {
	tokenPath, err := tokenFilePath(env)
	if err != nil {
		return err
	}
	if err := os.Remove(tokenPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete token file: %w", err)
	}
	return nil
}

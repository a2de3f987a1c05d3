// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads credentials from a directory of plain-text files.
// Each file holds one secret: the filename is the key name and the trimmed
// contents are the value.
//
// Supported key files: uspto-api-key.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// APIKeyFile holds the USPTO x-api-key.
const APIKeyFile = "uspto-api-key"

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory or missing files are not errors; Load returns an empty map.
// Unreadable files are logged as warnings and skipped.
func Load(dir string, log *zap.SugaredLogger) (map[string]string, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			log.Warnw("could not read secret", "name", name, "err", err)
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// APIKey picks the USPTO key: the flag value first, then the configured
// value (file or USPTO_LOOKUP_API_KEY), then dir/uspto-api-key. An empty
// result is not an error here; the search reports the missing credential.
func APIKey(flag, configured, dir string, log *zap.SugaredLogger) (string, error) {
	for _, v := range []string{flag, configured} {
		if v = strings.TrimSpace(v); v != "" {
			return v, nil
		}
	}
	if dir == "" {
		return "", nil
	}
	s, err := Load(dir, log)
	if err != nil {
		return "", err
	}
	return s[APIKeyFile], nil
}

// Package iofs prepares the directories and files the application
// needs on disk: its own config and log directories, and the
// per-user output directories datasets are written into.
package iofs

import (
	"os"
	"path/filepath"

	"github.com/cdrkit/dfextract/pkg/config"
	"github.com/cdrkit/dfextract/pkg/templates"
)

// EnsureDirs creates the application's config and log directories if
// they are missing.
func EnsureDirs(homeDir string) error {
	dirs := []string{
		config.ConfigDir(homeDir),
		config.LogDir(homeDir),
	}
	for _, v := range dirs {
		if err := touchDir(v); err != nil {
			return err
		}
	}
	return nil
}

func touchDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil && info.IsDir() {
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return CreateDirError(dir, err)
	}

	return nil
}

// EnsureConfigFile writes the default config file if none exists.
func EnsureConfigFile(homeDir string) error {
	configPath := config.ConfigFilePath(homeDir)

	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	if err := os.WriteFile(
		configPath, []byte(templates.ConfigYAML), 0644,
	); err != nil {
		return CopyFileError(configPath, err)
	}

	return nil
}

// EnsureUserDir creates the per-user output directory under homeDirs
// and returns its path. An already existing directory is fine;
// concurrent jobs for the same user may race to create it.
func EnsureUserDir(homeDirs, username string) (string, error) {
	dir := filepath.Join(homeDirs, username)

	err := os.Mkdir(dir, 0755)
	if err == nil {
		return dir, nil
	}
	if os.IsExist(err) {
		if info, statErr := os.Stat(dir); statErr == nil && info.IsDir() {
			return dir, nil
		}
	}
	return "", CreateDirError(dir, err)
}

package config

import "path/filepath"

// projectConfigDir is the per-project directory holding configuration and
// fragment files.
const projectConfigDir = ".changeset"

// ProjectConfigPath returns the default project config path.
func ProjectConfigPath() string {
	return filepath.Join(projectConfigDir, "config.yml")
}

// LegacyProjectConfigPath returns the deprecated JSON project config path.
func LegacyProjectConfigPath() string {
	return filepath.Join(projectConfigDir, "config.json")
}

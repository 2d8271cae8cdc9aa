// Package storage resolves the user and project directories layerkit reads
// configuration from.
package storage

import (
	"os"
	"path/filepath"
	"sync"
)

// AppName names the per-user and per-project directories.
const AppName = "layerkit"

// Dirs holds platform-native user directories.
type Dirs struct {
	Config string // User configuration
}

// ProjectDirs holds directories local to a project checkout.
type ProjectDirs struct {
	Root   string // .layerkit/
	Config string // .layerkit/config.yaml (committed)
	Local  string // .layerkit/local/ (gitignored)
}

var (
	globalDirs     *Dirs
	globalDirsOnce sync.Once
)

// ResolveDirs returns platform-appropriate directories, honouring
// XDG_CONFIG_HOME. Results are cached after the first call.
func ResolveDirs() *Dirs {
	globalDirsOnce.Do(func() {
		globalDirs = &Dirs{
			Config: resolveDir("XDG_CONFIG_HOME", platformConfigDefault()),
		}
	})
	return globalDirs
}

func resolveDir(envVar, fallback string) string {
	if dir := os.Getenv(envVar); dir != "" {
		return filepath.Join(dir, AppName)
	}
	return fallback
}

// ResolveProjectDirs returns the directories of the project rooted at projectRoot.
func ResolveProjectDirs(projectRoot string) *ProjectDirs {
	root := filepath.Join(projectRoot, "."+AppName)
	return &ProjectDirs{
		Root:   root,
		Config: filepath.Join(root, "config.yaml"),
		Local:  filepath.Join(root, "local"),
	}
}

// ConfigDir joins subpath onto the user config directory.
func (d *Dirs) ConfigDir(subpath ...string) string {
	return filepath.Join(append([]string{d.Config}, subpath...)...)
}

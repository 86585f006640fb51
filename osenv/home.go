// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package osenv

import (
	"os"
	"path/filepath"
	"sync"
)

var (
	dataHomeMu sync.Mutex
	dataHome   string
)

// SetDataHome overrides the data directory for the running process.
// An empty dir restores resolution from the environment.
func SetDataHome(dir string) {
	dataHomeMu.Lock()
	defer dataHomeMu.Unlock()
	dataHome = dir
}

// DataHome returns the directory holding the preference document, the
// settings database and the file backed secure storage.
//
// Resolution order is SetDataHome, $ROOTSTORE_DATA,
// $XDG_DATA_HOME/rootstore and finally ~/.local/share/rootstore.
// An empty string is returned if none of those can be determined.
func DataHome() string {
	dataHomeMu.Lock()
	dir := dataHome
	dataHomeMu.Unlock()
	if dir != "" {
		return dir
	}
	return DataHomeDir()
}

// DataHomeDir returns the data directory derived from the environment,
// ignoring any process override.
func DataHomeDir() string {
	if dir := os.Getenv(DataEnvKey); dir != "" {
		return dir
	}
	if xdg := os.Getenv(XDGDataHomeEnvKey); xdg != "" {
		return filepath.Join(xdg, "rootstore")
	}
	home := Home()
	if home == "" {
		return ""
	}
	return filepath.Join(home, ".local", "share", "rootstore")
}

// Home returns the current user's home directory.
func Home() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home
}

// SettingsDatabasePath is the sqlite database under dataDir used when
// preferences are kept in a database rather than a YAML file.
func SettingsDatabasePath(dataDir string) string {
	return filepath.Join(dataDir, "settings.db")
}

// SecureStoragePath is the encrypted secrets file under dataDir used by
// the file backed vault.
func SecureStoragePath(dataDir string) string {
	return filepath.Join(dataDir, "vault", "secrets")
}

// MasterKeyPath is the key file protecting SecureStoragePath.
func MasterKeyPath(dataDir string) string {
	return filepath.Join(dataDir, "vault", "master.key")
}

// MetadataPath returns the packaged application metadata file, which
// lives under dataDir unless $ROOTSTORE_METADATA says otherwise.
func MetadataPath(dataDir string) string {
	if path := os.Getenv(MetadataEnvKey); path != "" {
		return path
	}
	return filepath.Join(dataDir, "metadata.ini")
}

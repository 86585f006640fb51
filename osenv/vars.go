// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package osenv

const (
	// DataEnvKey overrides the directory holding all client state.
	DataEnvKey = "ROOTSTORE_DATA"

	// MetadataEnvKey overrides the location of the packaged
	// application metadata file.
	MetadataEnvKey = "ROOTSTORE_METADATA"

	// LoggingConfigEnvKey holds a loggo specification applied at startup.
	LoggingConfigEnvKey = "ROOTSTORE_LOGGING_CONFIG"

	// XDGDataHomeEnvKey is the freedesktop data home variable.
	XDGDataHomeEnvKey = "XDG_DATA_HOME"
)

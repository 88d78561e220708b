// Package constants provides shared constants used throughout the mhccurate codebase.
// This includes curation defaults, file permissions, and other configuration values
// that should be consistent across the application.
package constants

// Curation defaults
const (
	// DefaultMinMassSpecProbability is the minimum SystemHC-Atlas search
	// probability a mass-spec hit must reach to be kept
	DefaultMinMassSpecProbability = 0.99

	// DefaultIncludeIEDBMassSpec controls whether IEDB mass-spec derived
	// qualitative rows are kept by default
	DefaultIncludeIEDBMassSpec = false
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Buffer constants
const (
	// WriteBufferSize is the default buffer size for write operations
	WriteBufferSize = 4096
)

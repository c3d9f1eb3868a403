package migrations

import "embed"

// Files stores forward-only SQL migrations per dialect, embedded into the binary.
//
//go:embed sqlite/*.sql postgres/*.sql
var Files embed.FS

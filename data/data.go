// Package data bundles the hand-authored supply-chain content.
package data

import "embed"

// FS holds every TOML content file.
//
//go:embed *.toml
var FS embed.FS

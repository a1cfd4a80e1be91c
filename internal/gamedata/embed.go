// Package gamedata provides embedded game content and utilities for loading it.
// Everything in here is tunable content: changing a number must never
// require a code change.
package gamedata

import "embed"

// dataFS embeds all JSON files from this directory at build time.
//
//go:embed *.json
var dataFS embed.FS

// Package data embeds the default card dataset.
package data

import _ "embed"

//go:embed players.yaml
var Players []byte

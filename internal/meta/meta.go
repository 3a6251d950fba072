// Where: internal/meta/meta.go
// What: CLI-local metadata constants.
// Why: Keep naming and environment prefixes in one place.
package meta

const (
	AppName   = "layerline"
	EnvPrefix = "LAYERLINE"
)

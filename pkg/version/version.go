// Package version exposes the build version of producttable.
package version

// version is overridden at build time via
// -ldflags "-X github.com/rshade/producttable/pkg/version.version=v1.2.3".
var version = "dev" //nolint:gochecknoglobals // Set by the linker.

// GetVersion returns the build version, or "dev" for local builds.
func GetVersion() string {
	return version
}

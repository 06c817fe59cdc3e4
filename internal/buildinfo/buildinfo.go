package buildinfo

import "runtime/debug"

// version is set at build time:
//
//	go build -ldflags "-X github.com/MikeSquared-Agency/namepal/internal/buildinfo.version=1.4.0"
var version string

// Version returns the linked version, then the main module version recorded
// by the toolchain, then "dev".
func Version() string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		if v := info.Main.Version; v != "" && v != "(devel)" {
			return v
		}
	}
	return "dev"
}

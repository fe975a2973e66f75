// Package version provides the pyimports tool version.
package version

// Version is the pyimports tool version.
// Can be overridden at build time with:
//   go build -ldflags "-X github.com/pyimports/pyimports/pkg/version.Version=1.0.0"
var Version = "dev"

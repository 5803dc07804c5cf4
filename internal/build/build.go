// Package build holds build-time metadata injected via ldflags.
package build

// Version is the application version, overridden at build time with
// -ldflags "-X go.trai.ch/agraph/internal/build.Version=...".
var Version = "dev"

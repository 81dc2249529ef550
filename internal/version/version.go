// Package version exposes the forge release version.
package version

// Version is the semantic version of the forge CLI.
// It is overridable at build time via -ldflags "-X ...".
var Version = "0.1.2"

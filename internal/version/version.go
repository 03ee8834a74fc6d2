// internal/version/version.go
package version

// Version is set at build time with -ldflags "-X fabin/internal/version.Version=...".
var Version = "dev"

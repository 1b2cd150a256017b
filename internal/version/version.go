package version

// Version is the application version, overridable at build time via
// -ldflags "-X github.com/mphinance/ulty-tracker/internal/version.Version=...".
var Version = "dev"

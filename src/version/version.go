package version

// Version is the opti2025 release version. Overridable at build time via
// -ldflags "-X opti2025/src/version.Version=...".
var Version = "0.3.0"

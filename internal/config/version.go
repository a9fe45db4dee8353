package config

// Version is the graphkernel binary version.
// Set at build time via: -ldflags "-X github.com/persistorai/graphkernel/internal/config.Version=<tag>"
// Defaults to "dev" when built without ldflags.
var Version = "dev"

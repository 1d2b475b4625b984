package tutor

// Version is the library version reported by the CLI and the HTTP info
// endpoint. Overridden at build time via -ldflags.
var Version = "0.1.0"

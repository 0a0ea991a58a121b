package reorder

// Version is the library release, overridden at build time via -ldflags.
var Version = "0.4.0"

// Package settings provides build metadata, per-run configuration, and the
// context helpers that carry them through the nmosnav CLI.
package settings

// CliBinaryName is the canonical binary name for this tool.
const CliBinaryName = "nmosnav"

// DefaultPort is used when the node address carries no explicit port.
const DefaultPort = "80"

// VersionInformation is populated at build time via ldflags and holds the
// commit hash, semantic version, and build timestamp of the running binary.
var VersionInformation = VersionInfo{
	Commit:       "unknown",
	BuildVersion: "v0.0.0-nightly",
	BuildTime:    "unknown",
}

// VersionInfo holds metadata about the build, including the commit hash,
// build version, and build timestamp.
type VersionInfo struct {
	Commit       string
	BuildVersion string
	BuildTime    string
}

// Run holds configuration settings for a single browsing session.
type Run struct {
	MinLogLevel int8
	NodeAddr    string
	LogFile     string
	ConfigFile  string
	NoColor     bool
}

// NewCliParams returns the defaults used by the CLI before flags are applied:
// info level logging, color enabled, no log file and no config file.
func NewCliParams() *Run {
	return &Run{
		MinLogLevel: 0,
		NoColor:     false,
	}
}

// Package version reports the build of the running binary
package version

// BuildInfo describes one build
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Info returns the build stamped into the binary with
//
//	-ldflags "-X eltranslit/internal/core/version.version=v0.1.0 -X eltranslit/internal/core/version.commit=abcd"
func Info() BuildInfo {
	return BuildInfo{
		Service: service,
		Version: version,
		Commit:  commit,
		Date:    date,
	}
}

// SetService names the binary reporting the build; empty names are ignored
func SetService(name string) {
	if name != "" {
		service = name
	}
}

var (
	service = "eltranslit"
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Package buildinfo holds release metadata set through -ldflags, e.g.
//
//	go build -ldflags "-X github.com/aidanlsb/snip/internal/buildinfo.Version=v0.3.0"
//
// The values are empty for local builds.
package buildinfo

var (
	Version = ""
	Commit  = ""
	Date    = ""
)

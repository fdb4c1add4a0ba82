// Package version holds the build metadata stamped in with -ldflags.
//
//	go build -ldflags "-X github.com/theboringdotapp/newsletter-builder/internal/version.Version=v0.3.0"
package version

import (
	"fmt"
	"runtime"
	"time"
)

// Name is the product name used in logs and outgoing User-Agent headers.
const Name = "newsletter-builder"

var (
	Version   = "dev"                           // ex: v0.3.0
	Commit    = "none"                          // ex: abcd123
	BuildDate = time.Now().Format(time.RFC3339) // ex: 2025-03-10T18:42:00Z
	GoVersion = runtime.Version()
)

// Info is the build metadata reported by /healthz.
type Info struct {
	Version   string `json:"version,omitempty"`
	Commit    string `json:"commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
	GoVersion string `json:"go_version,omitempty"`
}

// Get returns the metadata of the running binary.
func Get() Info {
	return Info{Version: Version, Commit: Commit, BuildDate: BuildDate, GoVersion: GoVersion}
}

// String renders the metadata on one line, as printed by --version.
func (i Info) String() string {
	return fmt.Sprintf("%s (commit=%s, built=%s, go=%s)", i.Version, i.Commit, i.BuildDate, i.GoVersion)
}

// UserAgent identifies outgoing requests. purpose is appended as a comment
// when set.
// Ex: UserAgent("link summarizer") -> "newsletter-builder/v0.3.0 (+link summarizer)"
func UserAgent(purpose string) string {
	if purpose == "" {
		return Name + "/" + Version
	}
	return fmt.Sprintf("%s/%s (+%s)", Name, Version, purpose)
}

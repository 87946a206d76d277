// Package buildinfo holds the learnpath version stamped in at link time.
//
//	go build -ldflags "-X github.com/matzehuels/learnpath/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/learnpath/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/matzehuels/learnpath/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" \
//	    ./cmd/learnpath
package buildinfo

import "fmt"

var (
	// Version is the release tag, or "dev" for local builds.
	Version = "dev"

	// Commit is the short git SHA.
	Commit = "none"

	// Date is the UTC build time.
	Date = "unknown"
)

// Info is the build metadata reported by the CLI and the /healthz endpoint.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"built"`
}

// Current returns the linked-in build metadata.
func Current() Info {
	return Info{Version: Version, Commit: Commit, Date: Date}
}

// Template returns the version template for the root command.
func Template() string {
	return fmt.Sprintf("learnpath {{.Version}} (commit %s, built %s)\n", Commit, Date)
}

// Package version carries build metadata for the bazaar gatherer.
//
// Set at link time:
//
//	go build -ldflags "-X github.com/rickgao/bazaar-data/internal/version.Version=0.3.0 \
//	                   -X github.com/rickgao/bazaar-data/internal/version.Commit=$(git rev-parse --short HEAD)" \
//	    ./cmd/gatherer
package version

import "runtime"

var (
	Version = "dev"
	Commit  = "unknown"
)

// product names this binary in banners and outbound requests.
const product = "bazaar-gatherer"

// String returns "<version> (<commit>, <go version>)".
func String() string {
	return Version + " (" + Commit + ", " + runtime.Version() + ")"
}

// UserAgent is sent on every upstream request.
func UserAgent() string {
	return product + "/" + Version
}

// Package version provides build-time version information.
//
// Variables are set at build time via ldflags:
//
//	go build -ldflags "-X github.com/rickgao/woo-sync/internal/version.Version=1.0.0 \
//	                   -X github.com/rickgao/woo-sync/internal/version.Commit=$(git rev-parse --short HEAD)" ./cmd/...
package version

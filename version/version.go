// Package version holds build-time version information.
// The Git variables are populated at build time via ldflags:
//
//	go build -ldflags "-X github.com/jsklabs/labelsort/version.GitRelease=v1.0.0"
package version

import (
	"fmt"
	"runtime"
)

var (
	// GitRelease is the release tag this binary was built from.
	GitRelease = "dev"
	// GitCommit is the commit hash this binary was built from.
	GitCommit = "unknown"
	// GitCommitDate is the commit date this binary was built from.
	GitCommitDate = "unknown"
	// GoInfo describes the Go toolchain and platform.
	GoInfo = fmt.Sprintf("%s %s/%s", runtime.Version(), runtime.GOOS, runtime.GOARCH)
)

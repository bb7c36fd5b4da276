// Package buildinfo exposes build metadata stamped in via -ldflags, e.g.
//
//	go build -ldflags "-X nutridiary/internal/buildinfo.Version=v1.2.0 \
//	  -X nutridiary/internal/buildinfo.Date=2025-11-02 \
//	  -X nutridiary/internal/buildinfo.Commit=abc1234"
package buildinfo

import (
	"fmt"
	"io"
)

var (
	Version = "N/A"
	Date    = "N/A"
	Commit  = "N/A"
)

// PrintBuildData writes the stamped build information to w.
func PrintBuildData(w io.Writer) {
	fmt.Fprintf(w, "Build version: %s\n", Version)
	fmt.Fprintf(w, "Build date: %s\n", Date)
	fmt.Fprintf(w, "Build commit: %s\n", Commit)
}

// Package buildinfo reports how the running binary was built, so pipeline
// logs record the provenance of every generated plate map.
package buildinfo

import (
	"fmt"
	"os"
	"runtime/debug"
)

type BuildInfo struct {
	Main       string
	GoVersion  string
	Revision   string
	CommitTime string
	Dirty      bool
}

func (b BuildInfo) String() string {
	dirty := ""
	if b.Dirty {
		dirty = " The working tree had uncommitted changes."
	}

	return fmt.Sprintf("%s built with %s from commit %s (%s).%s", b.Main, b.GoVersion, b.Revision, b.CommitTime, dirty)
}

// Get reads the build metadata stamped into the running binary. The VCS
// fields are empty when the binary was built outside a checkout.
func Get() BuildInfo {
	out := BuildInfo{}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return out
	}

	out.Main = bi.Path
	out.GoVersion = bi.GoVersion
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			out.Revision = s.Value
		case "vcs.time":
			out.CommitTime = s.Value
		case "vcs.modified":
			out.Dirty = s.Value == "true"
		}
	}

	return out
}

// PrintToStderr keeps the report out of stdout, which belongs to the
// rendered plate output.
func PrintToStderr() {
	fmt.Fprintf(os.Stderr, "%s\n", Get())
}

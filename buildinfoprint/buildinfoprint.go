// Package buildinfoprint is imported for its side effect: it prints the
// binary's build provenance to stderr at startup.
package buildinfoprint

import "github.com/plateworks/platemap/buildinfo"

func init() {
	buildinfo.PrintToStderr()
}

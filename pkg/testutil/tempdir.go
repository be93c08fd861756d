package testutil

import (
	"os"
	"path/filepath"

	"github.com/victor23k/shush/pkg/must"
)

// TempDir creates a temporary directory for testing that will be removed
// after the test finishes. Symlinks in the path are resolved, so that the
// result can be compared with what os.Getwd returns after changing into it.
func TempDir(c Cleanuper) string {
	dir := must.OK1(os.MkdirTemp("", "shushtest"))
	dir = must.OK1(filepath.EvalSymlinks(dir))
	c.Cleanup(func() {
		if err := os.RemoveAll(dir); err != nil {
			println("failed to remove temp dir", dir)
		}
	})
	return dir
}

// InTempDir is like TempDir, but also changes into the directory, and changes
// back to the working directory when the test finishes.
func InTempDir(c Cleanuper) string {
	dir := TempDir(c)
	Chdir(c, dir)
	return dir
}

// Chdir changes into a directory for the duration of a test.
func Chdir(c Cleanuper, dir string) string {
	old := must.OK1(os.Getwd())
	must.Chdir(dir)
	c.Cleanup(func() { must.Chdir(old) })
	return dir
}

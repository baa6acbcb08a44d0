package version

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetAndString(t *testing.T) {
	oldVersion, oldCommit := Version, Commit
	t.Cleanup(func() { Version, Commit = oldVersion, oldCommit })

	Version = "2.1.0"
	Commit = "abc123"

	info := Get()
	assert.Equal(t, "2.1.0", info.Version)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Contains(t, info.String(), "projinspect version 2.1.0 (commit: abc123)")
	assert.Contains(t, info.String(), runtime.GOOS+"/"+runtime.GOARCH)
}

package version_test

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/latoulicious/dexbox/internal/version"
)

func TestGet(t *testing.T) {
	info := version.Get()

	assert.Equal(t, version.Version, info.Version)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Contains(t, info.String(), "dexbox v"+version.Version)
}

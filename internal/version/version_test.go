package version

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	info := Get()

	assert.Equal(t, Version, info.Version)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, info.Platform)
	assert.Equal(t, BatchAPIVersion, info.BatchAPI)
}

func TestInfo_Full(t *testing.T) {
	info := Info{
		Version:   "1.2.3",
		Commit:    "abc123",
		BuildDate: "2024-01-01",
		GoVersion: "go1.25",
		Platform:  "linux/amd64",
		BatchAPI:  "1.0.0",
	}

	assert.Equal(t, "1.2.3", info.String())
	assert.Equal(t, "1.2.3 (abc123) built 2024-01-01 go1.25 linux/amd64, batch apiVersion 1.0.0", info.Full())
}

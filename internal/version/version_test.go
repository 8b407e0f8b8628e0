package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersionHasDefaultValue(t *testing.T) {
	assert.NotEmpty(t, Version)
	assert.Empty(t, GitCommit)
	assert.Empty(t, GitMessage)
	assert.Empty(t, BuildDate)
}

func TestVersionCanBeOverridden(t *testing.T) {
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	defer func() {
		Version, GitCommit, BuildDate = origVersion, origCommit, origDate
	}()

	Version = "1.2.3"
	GitCommit = "abc123def456"
	BuildDate = "2024-01-15T10:30:00Z"

	assert.Equal(t, "1.2.3", Version)
	assert.Equal(t, "abc123def456", GitCommit)
	assert.Equal(t, "2024-01-15T10:30:00Z", BuildDate)
}

func TestVersionSemanticVersionFormats(t *testing.T) {
	origVersion := Version
	defer func() { Version = origVersion }()

	for _, v := range []string{
		"0.1.0",
		"1.0.0",
		"2.0.0-alpha",
		"1.0.0-beta.1",
		"0.1.0-dev",
		"1.2.3-rc.1+build.123",
	} {
		Version = v
		assert.Equal(t, v, Version)
	}
}

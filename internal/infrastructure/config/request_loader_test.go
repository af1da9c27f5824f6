package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/dunjia/qimen/internal/application/errors"
)

const validYAML = `
apiVersion: "1.0.0"
defaults:
  year: 戊子
  month: 壬戌
  day: 戊申
  term: 霜降
charts:
  - label: noon
    hour_token: 午时
    hour: 戊午
  - label: dawn
    hour: 甲寅
    term: 立冬
`

const validTOML = `
apiVersion = "1.2.0"

[defaults]
year = "戊子"
month = "壬戌"
day = "戊申"
term = "霜降"

[[charts]]
label = "noon"
hour_token = "午时"
hour = "戊午"
`

func TestLoadFromReader_YAML(t *testing.T) {
	loader := NewRequestLoader()
	req, err := loader.LoadFromReader(strings.NewReader(validYAML), FormatYAML)

	require.NoError(t, err)
	assert.Equal(t, "1.0.0", req.APIVersion)
	require.Len(t, req.Charts, 2)

	assert.Equal(t, "noon", req.Charts[0].Label)
	assert.Equal(t, "午时", req.Charts[0].HourToken)
	assert.Equal(t, "戊子", req.Charts[0].Year)
	assert.Equal(t, "戊申", req.Charts[0].Day)
	assert.Equal(t, "霜降", req.Charts[0].Term)

	// Chart values win over defaults.
	assert.Equal(t, "立冬", req.Charts[1].Term)
	assert.Equal(t, "壬戌", req.Charts[1].Month)
}

func TestLoadFromReader_TOML(t *testing.T) {
	loader := NewRequestLoader()
	req, err := loader.LoadFromReader(strings.NewReader(validTOML), FormatTOML)

	require.NoError(t, err)
	assert.Equal(t, "1.2.0", req.APIVersion)
	require.Len(t, req.Charts, 1)
	assert.Equal(t, "戊午", req.Charts[0].Hour)
	assert.Equal(t, "壬戌", req.Charts[0].Month)
}

func TestLoadFromReader_JSON(t *testing.T) {
	doc := `{"apiVersion":"1.0.0","charts":[{"year":"戊子","month":"壬戌","day":"戊申","hour":"戊午","term":"霜降"}]}`

	req, err := NewRequestLoader().LoadFromReader(strings.NewReader(doc), FormatJSON)

	require.NoError(t, err)
	require.Len(t, req.Charts, 1)
	assert.Nil(t, req.Defaults)
	assert.Equal(t, "戊申", req.Charts[0].Day)
}

func TestLoadFromReader_Rejects(t *testing.T) {
	tests := []struct {
		name        string
		doc         string
		format      Format
		aspect      string
		errContains string
	}{
		{
			name:        "invalid yaml",
			doc:         `apiVersion: [[[`,
			format:      FormatYAML,
			aspect:      "request",
			errContains: "failed to decode yaml",
		},
		{
			name:        "invalid toml",
			doc:         `apiVersion = `,
			format:      FormatTOML,
			aspect:      "request",
			errContains: "failed to decode toml",
		},
		{
			name:        "missing charts",
			doc:         "apiVersion: \"1.0.0\"\n",
			format:      FormatYAML,
			aspect:      "schema",
			errContains: "charts",
		},
		{
			name:        "empty charts",
			doc:         "apiVersion: \"1.0.0\"\ncharts: []\n",
			format:      FormatYAML,
			aspect:      "schema",
			errContains: "/charts",
		},
		{
			name:        "malformed pillar",
			doc:         "apiVersion: \"1.0.0\"\ncharts:\n  - hour: 午戊\n",
			format:      FormatYAML,
			aspect:      "schema",
			errContains: "/charts/0/hour",
		},
		{
			name:        "unknown field",
			doc:         "apiVersion: \"1.0.0\"\ncharts:\n  - minute: 30\n",
			format:      FormatYAML,
			aspect:      "schema",
			errContains: "minute",
		},
		{
			name:        "non-string apiVersion",
			doc:         "apiVersion: 1\ncharts:\n  - hour: 戊午\n",
			format:      FormatYAML,
			aspect:      "schema",
			errContains: "/apiVersion",
		},
		{
			name:        "unsupported major version",
			doc:         "apiVersion: \"2.0.0\"\ncharts:\n  - hour: 戊午\n",
			format:      FormatYAML,
			aspect:      "apiVersion",
			errContains: "not supported",
		},
		{
			name:        "garbage version",
			doc:         "apiVersion: latest\ncharts:\n  - hour: 戊午\n",
			format:      FormatYAML,
			aspect:      "apiVersion",
			errContains: "invalid apiVersion",
		},
	}

	loader := NewRequestLoader()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loader.LoadFromReader(strings.NewReader(tt.doc), tt.format)
			require.Error(t, err)

			var cfgErr *apperrors.ConfigurationError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.aspect, cfgErr.Aspect)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "batch.yaml")
	tomlPath := filepath.Join(dir, "batch.toml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(validYAML), 0o600))
	require.NoError(t, os.WriteFile(tomlPath, []byte(validTOML), 0o600))

	loader := NewRequestLoader()

	req, err := loader.Load(yamlPath)
	require.NoError(t, err)
	assert.Len(t, req.Charts, 2)

	req, err = loader.Load(tomlPath)
	require.NoError(t, err)
	assert.Len(t, req.Charts, 1)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	loader := NewRequestLoader()

	_, err := loader.Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open document")

	_, err = loader.Load(filepath.Join(dir, "batch.ini"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported document extension")
}

func TestFormatForPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"charts.yaml", FormatYAML, false},
		{"charts.YML", FormatYAML, false},
		{"charts.toml", FormatTOML, false},
		{"dir/charts.json", FormatJSON, false},
		{"charts", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatForPath(tt.path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

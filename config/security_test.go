package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckConfigPath(t *testing.T) {
	tests := []struct {
		path    string
		wantErr bool
	}{
		{"hyppo.yaml", false},
		{"conf/hyppo.yml", false},
		{"/etc/hyppo/hyppo.json", false},
		{"", true},
		{"../hyppo.yaml", true},
		{"conf/../../hyppo.yaml", true},
		{"hyppo.toml", true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			err := checkConfigPath(tt.path)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestReadConfigFile(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "hyppo.yaml")
	require.NoError(t, os.WriteFile(path, []byte("title: Zoo\n"), 0o600))
	data, err := readConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, "title: Zoo\n", string(data))

	_, err = readConfigFile(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	asDir := filepath.Join(dir, "dir.yaml")
	require.NoError(t, os.Mkdir(asDir, 0o755))
	_, err = readConfigFile(asDir)
	assert.ErrorContains(t, err, "not a regular file")
}

func TestCheckJSONDepth(t *testing.T) {
	assert.NoError(t, checkJSONDepth([]byte(`{"build": {"workers": [1, 2]}, "s": "{[{["}`)))

	deep := strings.Repeat("[", maxJSONDepth+1) + strings.Repeat("]", maxJSONDepth+1)
	assert.ErrorContains(t, checkJSONDepth([]byte(deep)), "nesting depth")

	assert.Error(t, checkJSONDepth([]byte(`{"title": `)))
}

func TestCheckEnvValue(t *testing.T) {
	assert.NoError(t, checkEnvValue("HYPPO_TITLE", "Zoo"))
	assert.Error(t, checkEnvValue("HYPPO_TITLE", "Zoo\x00"))
	assert.Error(t, checkEnvValue("HYPPO_TITLE", strings.Repeat("a", maxEnvVarLen+1)))
}

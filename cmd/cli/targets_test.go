package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/portsight/portsight/internal/errors"
)

func TestParseTargetList(t *testing.T) {
	tests := []struct {
		name string
		list string
		want []string
	}{
		{"empty", "", nil},
		{"single", "example.com", []string{"example.com"}},
		{"multiple", "a.com,b.com,10.0.0.1", []string{"a.com", "b.com", "10.0.0.1"}},
		{"whitespace", " a.com , b.com ", []string{"a.com", "b.com"}},
		{"empty elements", "a.com,,b.com,", []string{"a.com", "b.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseTargetList(tt.list))
		})
	}
}

func TestLoadTargetFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "targets.txt")
	content := `# production hosts
web1.example.com
web2.example.com  # decommission pending

10.0.0.1
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	targets, err := loadTargetFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"web1.example.com", "web2.example.com", "10.0.0.1"}, targets)
}

func TestLoadTargetFileMissing(t *testing.T) {
	_, err := loadTargetFile(filepath.Join(t.TempDir(), "absent.txt"))
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeFileNotFound))
}

func TestDedupeTargetsPreservesOrder(t *testing.T) {
	targets := []string{"b.com", "a.com", "b.com", "c.com", "a.com"}
	assert.Equal(t, []string{"b.com", "a.com", "c.com"}, dedupeTargets(targets))
}

func TestGatherTargetsMergesFlagAndFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "targets.txt")
	require.NoError(t, os.WriteFile(path, []byte("b.com\nc.com\n"), 0o644))

	origTargets, origFile := scanTargets, scanTargetFile
	defer func() { scanTargets, scanTargetFile = origTargets, origFile }()

	scanTargets = "a.com,b.com"
	scanTargetFile = path

	targets, err := gatherTargets()
	require.NoError(t, err)
	assert.Equal(t, []string{"a.com", "b.com", "c.com"}, targets)
}

package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cmd := NewRootCommand()
	var out, errBuf bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errBuf.String(), err
}

func TestValidateDefaultsPass(t *testing.T) {
	stdout, _, err := execute(t, "validate")
	require.NoError(t, err)
	assert.Contains(t, stdout, "configuration valid")
}

func TestValidateBrokenConfigFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.json")
	require.NoError(t, os.WriteFile(path, []byte(`{ "source": { "encoding": "ebcdic" } }`), 0o644))

	stdout, _, err := execute(t, "validate", "--config", path)
	require.Error(t, err)
	assert.Contains(t, stdout, "source.encoding")
}

func TestValidateMissingConfigFileFails(t *testing.T) {
	_, _, err := execute(t, "validate", "--config", filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}

func TestRunMissingInputFails(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "run.json")
	cfg := `{
	  "source": { "path": "` + filepath.ToSlash(filepath.Join(dir, "absent.csv")) + `" },
	  "report": { "out_dir": "` + filepath.ToSlash(filepath.Join(dir, "out")) + `" },
	  "log":    { "path": "` + filepath.ToSlash(filepath.Join(dir, "run.log")) + `" }
	}`
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))

	_, _, err := execute(t, "run", "--config", cfgPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestRunConfigErrorsBlockExecution(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.json")
	require.NoError(t, os.WriteFile(path, []byte(`{ "source": { "delimiter": ";;" } }`), 0o644))

	_, stderr, err := execute(t, "run", "--config", path)
	require.Error(t, err)
	assert.Contains(t, stderr, "source.delimiter")
}

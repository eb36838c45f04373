package cmd

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListDefaultTools(t *testing.T) {
	out, _, err := execute(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "rsdd (family: rsdd, mandatory) ./rsdd")
	assert.Contains(t, out, "sdd (family: sdd, optional) ./sdd")

	var bestBDD string
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "best-bdd") {
			bestBDD = line
		}
	}
	require.NotEmpty(t, bestBDD)
	fields := strings.Fields(bestBDD)
	// best-bdd | best fit (bdd) | rsdd | sdd | cnf2obdd
	assert.Equal(t, []string{"best-bdd", "best", "fit", "(bdd)", "bdd_dtree_minfill", "-", "(no", "flag)"}, fields)
	assert.Contains(t, out, "right (default)")
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir, map[string]string{
		"rsdd": writeTool(t, dir, "rsdd", rsddScript),
		"sdd":  filepath.Join(dir, "no-sdd"),
	})

	out, _, err := execute(t, "validate", "--config", cfg)
	require.NoError(t, err, "a missing optional tool is not fatal")
	assert.Contains(t, out, "TOOL")
	assert.Regexp(t, `rsdd\s+mandatory\s+\S+\s+ok`, out)
	assert.Regexp(t, `sdd\s+optional\s+\S+\s+.*not an executable file`, out)

	cfg = writeConfig(t, dir, map[string]string{"rsdd": filepath.Join(dir, "no-rsdd")})
	_, _, err = execute(t, "validate", "--config", cfg)
	assert.ErrorContains(t, err, "mandatory tools unavailable")
}

func TestReportRerendersOutput(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir, map[string]string{
		"rsdd": writeTool(t, dir, "rsdd", rsddScript),
		"sdd":  writeTool(t, dir, "sdd", sddScript),
	})
	file := writeCNF(t, dir, "a.cnf")
	path := filepath.Join(dir, "report.json")

	runOut, _, err := execute(t, "run", "--config", cfg, "-f", file, "-o", path)
	require.NoError(t, err)

	out, _, err := execute(t, "report", path)
	require.NoError(t, err)
	assert.Contains(t, runOut, out)

	out, _, err = execute(t, "report", "--format", "markdown", path)
	require.NoError(t, err)
	assert.Contains(t, out, "| "+file+" | right linear | rsdd | sdd | 2.00x | 2.00x |")

	_, _, err = execute(t, "report", filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// Helpers
// ============================================================================

type cliResult struct {
	code   int
	stdout string
	stderr string
}

func runCLI(args ...string) cliResult {
	var stdout, stderr bytes.Buffer
	code := execute(args, &stdout, &stderr)
	return cliResult{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

type workspace struct {
	dir       string
	catalogue string
	sales     string
	out       string
}

func newWorkspace(t *testing.T) workspace {
	t.Helper()
	dir := t.TempDir()
	ws := workspace{
		dir:       dir,
		catalogue: filepath.Join(dir, "catalogue.json"),
		sales:     filepath.Join(dir, "sales.json"),
		out:       filepath.Join(dir, "out"),
	}
	require.NoError(t, os.WriteFile(ws.catalogue, []byte(`[
		{"title": "Apple", "price": 1.5},
		{"title": "Banana", "price": 0.5}
	]`), 0o644))
	require.NoError(t, os.WriteFile(ws.sales, []byte(`[
		{"Product": "Apple", "Quantity": 4},
		{"Product": "Banana", "Quantity": 2},
		{"Product": "Mango", "Quantity": 1},
		{"Product": "", "Quantity": 1},
		{"Product": "Apple", "Quantity": "two"}
	]`), 0o644))
	return ws
}

// ============================================================================
// Compute
// ============================================================================

func TestCompute_Success(t *testing.T) {
	ws := newWorkspace(t)

	res := runCLI(ws.catalogue, ws.sales, "--output-dir", ws.out)

	require.Equal(t, 0, res.code, res.stderr)
	assert.True(t, strings.HasPrefix(res.stdout, "Total Sales: $7.00\nExecution Time: "))
	assert.Contains(t, res.stdout, " seconds\n\nWarnings and Errors:\n")
	assert.True(t, strings.HasSuffix(res.stdout,
		"Warning: 'Mango' is not listed in the price catalogue.\n"+
			"Warning: Sale record with a missing product name.\n"+
			"Error: Invalid price format for 'Apple'.\n"))

	data, err := os.ReadFile(filepath.Join(ws.out, "SalesResults.txt"))
	require.NoError(t, err)
	assert.Equal(t, res.stdout, string(data))
}

func TestCompute_FlagsOverrideOutput(t *testing.T) {
	ws := newWorkspace(t)

	res := runCLI(ws.catalogue, ws.sales,
		"--output-dir", ws.out,
		"--output", "report.txt",
		"--format", "xlsx",
		"--format", "xml",
		"--quiet")

	require.Equal(t, 0, res.code, res.stderr)
	assert.Empty(t, res.stdout)
	for _, name := range []string{"report.txt", "report.xlsx", "report.xml"} {
		_, err := os.Stat(filepath.Join(ws.out, name))
		assert.NoError(t, err, name)
	}
}

func TestCompute_ConfigFile(t *testing.T) {
	ws := newWorkspace(t)
	cfgPath := filepath.Join(ws.dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(
		"output_dir: "+ws.out+"\nresults_file: from-config.txt\nquiet: true\n"), 0o644))

	res := runCLI(ws.catalogue, ws.sales, "--config", cfgPath)

	require.Equal(t, 0, res.code, res.stderr)
	assert.Empty(t, res.stdout)
	_, err := os.Stat(filepath.Join(ws.out, "from-config.txt"))
	assert.NoError(t, err)
}

func TestCompute_MissingInput(t *testing.T) {
	ws := newWorkspace(t)
	missing := filepath.Join(ws.dir, "nope.json")

	res := runCLI(missing, ws.sales, "--output-dir", ws.out)

	assert.Equal(t, 1, res.code)
	assert.Empty(t, res.stdout)
	assert.Equal(t, "Error: The file '"+missing+"' was not found.\n", res.stderr)
}

func TestCompute_RejectDuplicates(t *testing.T) {
	ws := newWorkspace(t)
	require.NoError(t, os.WriteFile(ws.catalogue, []byte(`[{"title": "A", "price": 1}, {"title": "A", "price": 2}]`), 0o644))

	res := runCLI(ws.catalogue, ws.sales, "--output-dir", ws.out, "--duplicates", "reject")

	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "duplicate titles")
}

func TestCompute_WriteFailure(t *testing.T) {
	ws := newWorkspace(t)

	// The output directory is an existing regular file.
	res := runCLI(ws.catalogue, ws.sales, "--output-dir", ws.sales)

	assert.Equal(t, 3, res.code)
	assert.Contains(t, res.stderr, "Error: ")
}

func TestCompute_UsageErrors(t *testing.T) {
	ws := newWorkspace(t)

	tests := map[string][]string{
		"no arguments":         {},
		"one argument":         {ws.catalogue},
		"three arguments":      {ws.catalogue, ws.sales, ws.sales},
		"unknown flag":         {ws.catalogue, ws.sales, "--nope"},
		"bad duplicate policy": {ws.catalogue, ws.sales, "--duplicates", "merge"},
		"bad report format":    {ws.catalogue, ws.sales, "--format", "pdf"},
		"missing config file":  {ws.catalogue, ws.sales, "--config", filepath.Join(ws.dir, "absent.yaml")},
	}

	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			res := runCLI(args...)
			assert.Equal(t, 2, res.code)
			assert.Contains(t, res.stderr, "Error: ")
			assert.Contains(t, res.stderr, "--help")
		})
	}
}

func TestCompute_VerboseLogsToStderr(t *testing.T) {
	ws := newWorkspace(t)

	res := runCLI(ws.catalogue, ws.sales, "--output-dir", ws.out, "-v", "--log-format", "json")

	require.Equal(t, 0, res.code)
	assert.Contains(t, res.stderr, `"msg":"sales accumulated"`)
	assert.Contains(t, res.stderr, `"run_id"`)
	assert.NotContains(t, res.stdout, `"msg"`)
}

// ============================================================================
// Validate / Version
// ============================================================================

func TestValidate(t *testing.T) {
	ws := newWorkspace(t)

	res := runCLI("validate", ws.catalogue, ws.sales)

	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "(2 entries)")
	assert.Contains(t, res.stdout, "(5 records)")
	assert.NotContains(t, res.stdout, "Duplicate titles")
}

func TestValidate_LoadFailure(t *testing.T) {
	ws := newWorkspace(t)
	require.NoError(t, os.WriteFile(ws.sales, []byte(`not json`), 0o644))

	res := runCLI("validate", ws.catalogue, ws.sales)

	assert.Equal(t, 1, res.code)
	assert.Empty(t, res.stdout)
	assert.Contains(t, res.stderr, "contains invalid JSON.")
}

func TestValidate_RejectedDuplicates(t *testing.T) {
	ws := newWorkspace(t)
	require.NoError(t, os.WriteFile(ws.catalogue, []byte(`[{"title": "A", "price": 1}, {"title": "A", "price": 2}]`), 0o644))

	res := runCLI("validate", ws.catalogue, ws.sales, "--duplicates", "reject")

	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stdout, "Duplicate titles: A")
	assert.Contains(t, res.stderr, "duplicate catalogue title")
}

func TestVersion(t *testing.T) {
	res := runCLI("version")

	require.Equal(t, 0, res.code)
	assert.Contains(t, res.stdout, "Sales Calculator")
	assert.Contains(t, res.stdout, "Version:    "+Version)
}

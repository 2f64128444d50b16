package tests

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/Beastly713/hashira/cmd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCase1 = `{
    "keys": { "n": 4, "k": 3 },
    "1": { "base": "10", "value": "4" },
    "2": { "base": "2", "value": "111" },
    "3": { "base": "10", "value": "12" },
    "6": { "base": "4", "value": "213" }
}`

const testCase2 = `{
    "keys": { "n": 10, "k": 7 },
    "1": { "base": "6", "value": "13444211440455345511" },
    "2": { "base": "15", "value": "aed7015a346d63" },
    "3": { "base": "15", "value": "6aeeb69631c227c" },
    "4": { "base": "16", "value": "e1b5e05623d881f" },
    "5": { "base": "8", "value": "316034514573652620673" },
    "6": { "base": "3", "value": "2122212201122002221120200210011020220200" },
    "7": { "base": "3", "value": "20120221122211000100210021102001201112121" },
    "8": { "base": "6", "value": "20220554335330240002224253" },
    "9": { "base": "12", "value": "45153788322a1255483" },
    "10": { "base": "7", "value": "1101613130313526312514143" }
}`

// run executes the CLI with args and returns its combined output.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	root := cmd.GetRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

// TestSolveWorkedExamples runs both test vectors of the original assignment.
func TestSolveWorkedExamples(t *testing.T) {
	tmpDir := t.TempDir()
	first := filepath.Join(tmpDir, "testcase1.json")
	second := filepath.Join(tmpDir, "testcase2.json")
	require.NoError(t, os.WriteFile(first, []byte(testCase1), 0644))
	require.NoError(t, os.WriteFile(second, []byte(testCase2), 0644))

	out, err := run(t, "solve", first, second, "--termwise=false", "--fingerprint=false")
	require.NoError(t, err, "Solve command failed: %s", out)

	assert.Contains(t, out, first+": 3\n")
	assert.Contains(t, out, second+": 79836264049851\n")
}

// TestConvertThenSolve simulates the full user journey: legacy JSON -> YAML.gz and CBOR -> solve directory
func TestConvertThenSolve(t *testing.T) {
	tmpDir := t.TempDir()
	source := filepath.Join(tmpDir, "legacy", "testcase1.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(source), 0755))
	require.NoError(t, os.WriteFile(source, []byte(testCase1), 0644))

	setsDir := filepath.Join(tmpDir, "sets")
	yamlOut := filepath.Join(setsDir, "testcase1.yaml.gz")
	cborOut := filepath.Join(setsDir, "testcase1.cbor")

	// 1. Convert
	out, err := run(t, "convert", source, yamlOut, "--gzip=false", "--overwrite=false")
	require.NoError(t, err, "Convert command failed: %s", out)
	assert.Contains(t, out, "as yaml")

	out, err = run(t, "convert", source, cborOut, "--gzip=false", "--overwrite=false")
	require.NoError(t, err, "Convert command failed: %s", out)

	// 2. The YAML output is gzipped because of its extension
	content, err := os.ReadFile(yamlOut)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x1f, 0x8b}, content[:2])

	// 3. Refuse to clobber without --overwrite
	_, err = run(t, "convert", source, cborOut, "--gzip=false", "--overwrite=false")
	assert.Error(t, err)

	// 4. Solve the whole directory
	out, err = run(t, "solve", setsDir, "--termwise=false", "--fingerprint=false")
	require.NoError(t, err, "Solve command failed: %s", out)
	assert.Contains(t, out, yamlOut+": 3\n")
	assert.Contains(t, out, cborOut+": 3\n")
}

// TestFingerprintHidesSecret checks that --fingerprint never prints the value.
func TestFingerprintHidesSecret(t *testing.T) {
	tmpDir := t.TempDir()
	second := filepath.Join(tmpDir, "testcase2.json")
	require.NoError(t, os.WriteFile(second, []byte(testCase2), 0644))

	out, err := run(t, "solve", second, "--termwise=false", "--fingerprint=true")
	require.NoError(t, err)

	assert.NotContains(t, out, "79836264049851")
	assert.Contains(t, out, "blake3:")
	assert.Contains(t, out, "(k=7 of n=10)")
}

// TestSolveReportsFailures checks that a broken set fails the command but others still print.
func TestSolveReportsFailures(t *testing.T) {
	tmpDir := t.TempDir()
	good := filepath.Join(tmpDir, "good.json")
	duplicate := filepath.Join(tmpDir, "duplicate.json")
	require.NoError(t, os.WriteFile(good, []byte(testCase1), 0644))
	require.NoError(t, os.WriteFile(duplicate, []byte(`{
    "keys": { "n": 2, "k": 2 },
    "shares": [
        { "x": "1", "base": "10", "value": "4" },
        { "x": "01", "base": "10", "value": "5" }
    ]
}`), 0644))

	out, err := run(t, "solve", good, duplicate, filepath.Join(tmpDir, "missing.json"), "--termwise=false", "--fingerprint=false")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 of 3 share sets failed")

	assert.Contains(t, out, good+": 3\n")
	assert.Contains(t, out, "duplicate x-coordinate")
}

// TestSolveDirectoryCountsInvalidDocuments checks that a scan still fails when one document cannot be loaded.
func TestSolveDirectoryCountsInvalidDocuments(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "good.json"), []byte(testCase1), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "bad.json"), []byte(`{
    "keys": { "n": 2, "k": 3 },
    "1": { "base": "10", "value": "4" },
    "2": { "base": "10", "value": "7" }
}`), 0644))

	out, err := run(t, "solve", tmpDir, "--termwise=false", "--fingerprint=false")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 share sets failed")

	assert.Contains(t, out, "Skipping invalid document bad.json")
	assert.Contains(t, out, filepath.Join(tmpDir, "good.json")+": 3\n")
}

// TestTermwiseRejectsFractionalCoefficients shows the difference between both division strategies.
func TestTermwiseRejectsFractionalCoefficients(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "spread.json")
	// x^2 + 3 at 1, 2 and 6
	require.NoError(t, os.WriteFile(path, []byte(`{
    "keys": { "n": 3, "k": 3 },
    "1": { "base": "10", "value": "4" },
    "2": { "base": "10", "value": "7" },
    "6": { "base": "10", "value": "39" }
}`), 0644))

	out, err := run(t, "solve", path, "--termwise=false", "--fingerprint=false")
	require.NoError(t, err)
	assert.Contains(t, out, path+": 3\n")

	out, err = run(t, "solve", path, "--termwise=true", "--fingerprint=false")
	require.Error(t, err)
	assert.Contains(t, out, "inconsistent shares")
}

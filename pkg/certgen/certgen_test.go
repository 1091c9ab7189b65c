package certgen

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gardar/certgen/pkg/batch"
	"github.com/gardar/certgen/pkg/layout"
	"github.com/gardar/certgen/pkg/render"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Defaults = layout.Defaulter{
		Now:   func() time.Time { return time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC) },
		NewID: func() string { return "aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee" },
	}
	return cfg
}

func isPDF(t *testing.T, path string) bool {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return bytes.HasPrefix(data, []byte("%PDF-"))
}

func TestGenerate(t *testing.T) {
	dir := t.TempDir()

	out, err := Generate(testConfig(), map[string]string{
		layout.KeyName:   "A/B:C*D",
		layout.KeyCourse: "Algorithms",
		layout.KeyDate:   "2024-01-01",
		layout.KeyCertID: "CERT-1",
	}, dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "Certificate_A_B_C_D.pdf"), out)
	assert.True(t, isPDF(t, out))
}

func TestGenerateDefaults(t *testing.T) {
	dir := t.TempDir()

	out, err := Generate(testConfig(), nil, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Certificate_Student_Name.pdf"), out)
}

func TestGenerateKeepsExplicitEmptyValues(t *testing.T) {
	dir := t.TempDir()

	out, err := Generate(testConfig(), map[string]string{layout.KeyName: ""}, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Certificate_.pdf"), out)
}

func TestGenerateUsesConfiguredOutputDir(t *testing.T) {
	cfg := testConfig()
	cfg.OutputDir = filepath.Join(t.TempDir(), "configured")

	out, err := Generate(cfg, map[string]string{layout.KeyName: "Eve"}, "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cfg.OutputDir, "Certificate_Eve.pdf"), out)
}

func TestGenerateMissingFont(t *testing.T) {
	cfg := testConfig()
	cfg.Font = "/fonts/NotoSerif-Regular.ttf"
	dir := t.TempDir()

	_, err := Generate(cfg, nil, dir)
	assert.ErrorIs(t, err, render.ErrMissingFont)

	entries, _ := os.ReadDir(dir)
	assert.Empty(t, entries)
}

func TestGenerateFilesystemResources(t *testing.T) {
	dir := t.TempDir()
	font := filepath.Join(dir, "copy.ttf")
	data, _, err := DefaultResolver().ReadAll("/fonts/go-regular.ttf")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(font, data, 0o644))

	cfg := testConfig()
	cfg.Font = font
	cfg.Template = filepath.Join(dir, "no-template.png")

	out, err := Generate(cfg, map[string]string{layout.KeyName: "Fay"}, dir)
	require.NoError(t, err)
	assert.True(t, isPDF(t, out))
}

func TestGenerateInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Fields = nil

	_, err := Generate(cfg, nil, t.TempDir())
	assert.ErrorContains(t, err, "invalid config")
}

func TestGenerateDoesNotShareFields(t *testing.T) {
	cfg := testConfig()
	before := cfg.Fields.Clone()

	_, err := Generate(cfg, nil, t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, before, cfg.Fields)
}

func TestCalibrate(t *testing.T) {
	dir := t.TempDir()

	out, err := Calibrate(testConfig(), dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "calibrate.pdf"), out)
	assert.True(t, isPDF(t, out))
}

func TestCalibrateIgnoresTemplate(t *testing.T) {
	cfg := testConfig()
	cfg.Template = "/templates/missing.png"

	_, err := Calibrate(cfg, t.TempDir())
	assert.NoError(t, err)
}

func TestRunBatch(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "people.csv")
	require.NoError(t, os.WriteFile(src, []byte("name,course,date,certId\nAlice,Algorithms,2024-01-01,CERT-1\n"), 0o644))
	out := filepath.Join(dir, "out")

	result, err := RunBatch(testConfig(), src, out)
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(out, "Certificate_Alice.pdf")}, result.Written)
	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Certificate_Alice.pdf", entries[0].Name())
}

func TestRunBatchMissingColumn(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "people.csv")
	require.NoError(t, os.WriteFile(src, []byte("name,course,date\nAlice,Algorithms,2024-01-01\n"), 0o644))
	out := filepath.Join(dir, "out")

	_, err := RunBatch(testConfig(), src, out)
	assert.ErrorIs(t, err, batch.ErrMissingColumn)
	assert.NoDirExists(t, out)
}

func TestRunBatchRejectPolicy(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "people.csv")
	require.NoError(t, os.WriteFile(src, []byte("name,course,date,certId\nAlice,,2024-01-01,1\n"), 0o644))

	cfg := testConfig()
	cfg.RowPolicy = batch.RejectRow

	_, err := RunBatch(cfg, src, filepath.Join(dir, "out"))
	assert.ErrorIs(t, err, batch.ErrRowFieldMissing)
}

func TestRunBatchMissingSource(t *testing.T) {
	_, err := RunBatch(testConfig(), filepath.Join(t.TempDir(), "none.csv"), t.TempDir())
	assert.ErrorContains(t, err, "failed to open source")
}

func TestRunBatchNamesOutsideBMP(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "people.csv")
	csv := "name,course,date,certId\n" +
		"Alice,Algorithms,2024-01-01,1\n" +
		"Bob 🎓,Graduation,2024-01-01,2\n" +
		"\xff\xfe,Bytes,2024-01-01,3\n"
	require.NoError(t, os.WriteFile(src, []byte(csv), 0o644))
	out := filepath.Join(dir, "out")

	result, err := RunBatch(testConfig(), src, out)
	require.NoError(t, err)
	require.Len(t, result.Written, 3)

	for _, path := range result.Written {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.NotZero(t, info.Size(), path)
		assert.True(t, isPDF(t, path))
	}
	assert.Equal(t, filepath.Join(out, "Certificate_Bob__.pdf"), result.Written[1])
}

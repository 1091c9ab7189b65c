package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gardar/certgen/pkg/batch"
	"github.com/gardar/certgen/pkg/layout"
)

func TestRunSingle(t *testing.T) {
	dir := t.TempDir()

	err := run(options{
		outDir: dir,
		values: map[string]string{layout.KeyName: "Ada Lovelace", layout.KeyCourse: "Engines"},
	})
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "Certificate_Ada_Lovelace.pdf"))
}

func TestRunCalibrate(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, run(options{calibrate: true, outDir: dir}))
	assert.FileExists(t, filepath.Join(dir, "calibrate.pdf"))
}

func TestRunCSV(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "people.csv")
	require.NoError(t, os.WriteFile(src, []byte("name,course,date,certId\nAlice,Go,2024-01-01,1\nBob,Go,2024-01-01,2\n"), 0o644))
	out := filepath.Join(dir, "out")

	require.NoError(t, run(options{csvSource: src, outDir: out}))
	assert.FileExists(t, filepath.Join(out, "Certificate_Alice.pdf"))
	assert.FileExists(t, filepath.Join(out, "Certificate_Bob.pdf"))
}

func TestRunRejectBlank(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "people.csv")
	require.NoError(t, os.WriteFile(src, []byte("name,course,date,certId\nAlice,,2024-01-01,1\n"), 0o644))

	err := run(options{csvSource: src, outDir: dir, rejectBlank: true})
	assert.ErrorIs(t, err, batch.ErrRowFieldMissing)
}

func TestRunConfigAndOverrides(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "certgen.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("paper: letter\nanchors:\n  name: {y: 300}\n"), 0o644))

	err := run(options{
		configPath: cfgPath,
		template:   "/templates/none.png",
		outDir:     dir,
		values:     map[string]string{layout.KeyName: "Eve"},
	})
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "Certificate_Eve.pdf"))
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()

	assert.Error(t, run(options{configPath: filepath.Join(dir, "missing.yml")}))
	assert.Error(t, run(options{font: "/fonts/missing.ttf", outDir: dir}))
	assert.Error(t, run(options{csvSource: filepath.Join(dir, "missing.csv"), outDir: dir}))
}

func TestRunModeConflict(t *testing.T) {
	dir := t.TempDir()

	err := run(options{calibrate: true, csvSource: "people.csv", outDir: dir})
	assert.ErrorIs(t, err, errModeConflict)
	assert.NoFileExists(t, filepath.Join(dir, "calibrate.pdf"))
}

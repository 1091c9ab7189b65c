// certgen is a command-line tool for generating personalized certificates.
//
// Each certificate is a single landscape page: a background template with the
// recipient name, course, date and certificate ID drawn at configurable
// anchors. Certificates can be generated one at a time or in bulk from a CSV
// file, and a calibration sheet helps tune the anchors against a template.
//
// Usage:
//
//	certgen [mode] [options]
//
// Modes:
//
//	-calibrate        Write calibrate.pdf with a coordinate grid and anchor markers
//	-csv string       Generate one certificate per row of a CSV file
//	(none)            Generate a single certificate from -name, -course, -date, -id
//
// Single certificate fields:
//
//	-name string      Recipient name (default "Student Name")
//	-course string    Course title (default "Course Title")
//	-date string      Date awarded (default today, YYYY-MM-DD)
//	-id string        Certificate ID (default a random UUID)
//
// Options:
//
//	-out string       Output directory (default "out")
//	-config string    YAML config file with paper size, resources and anchors
//	-template string  Template image or PDF (path or bundled resource)
//	-font string      TrueType .ttf font (path or bundled resource); CFF .otf is not supported
//	-reject-blank     Fail a CSV run on a blank cell instead of using defaults
//	-v                Verbose logging
//
// The CSV header must name the columns name, course, date and certId (any
// order, case-insensitive); extra columns are ignored.
//
// Examples:
//
// Single certificate:
//
//	certgen -name "Ada Lovelace" -course "Analytical Engines" -out certificates
//
// Bulk generation:
//
//	certgen -csv recipients.csv -out certificates
//
// Calibration sheet against a custom template:
//
//	certgen -calibrate -template templates/award.png
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/gardar/certgen/pkg/batch"
	"github.com/gardar/certgen/pkg/certgen"
	"github.com/gardar/certgen/pkg/layout"
	"github.com/gardar/certgen/pkg/logging"
)

type options struct {
	calibrate   bool
	csvSource   string
	outDir      string
	configPath  string
	template    string
	font        string
	rejectBlank bool
	values      map[string]string
}

func main() {
	calibrate := flag.Bool("calibrate", false, "Write a calibration sheet")
	csvSource := flag.String("csv", "", "CSV file to generate certificates from")
	name := flag.String("name", "", "Recipient name")
	course := flag.String("course", "", "Course title")
	date := flag.String("date", "", "Date awarded (YYYY-MM-DD)")
	id := flag.String("id", "", "Certificate ID")
	outDir := flag.String("out", "", "Output directory (default \"out\")")
	configPath := flag.String("config", "", "Path to a YAML config file")
	template := flag.String("template", "", "Template image or PDF")
	font := flag.String("font", "", "TrueType (.ttf) font; OpenType CFF (.otf) fonts are not supported")
	rejectBlank := flag.Bool("reject-blank", false, "Fail on blank CSV cells instead of using defaults")
	verbose := flag.Bool("v", false, "Verbose logging")
	flag.Parse()

	logging.SetLogger(logging.NewText(os.Stderr, *verbose))

	// Only fields given on the command line override the defaults.
	fieldFlags := map[string]*string{
		"name":   name,
		"course": course,
		"date":   date,
		"id":     id,
	}
	fieldKeys := map[string]string{
		"name":   layout.KeyName,
		"course": layout.KeyCourse,
		"date":   layout.KeyDate,
		"id":     layout.KeyCertID,
	}
	values := make(map[string]string)
	flag.Visit(func(f *flag.Flag) {
		if v, ok := fieldFlags[f.Name]; ok {
			values[fieldKeys[f.Name]] = *v
		}
	})

	err := run(options{
		calibrate:   *calibrate,
		csvSource:   *csvSource,
		outDir:      *outDir,
		configPath:  *configPath,
		template:    *template,
		font:        *font,
		rejectBlank: *rejectBlank,
		values:      values,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		os.Exit(1)
	}
}

// errModeConflict is returned when more than one mode is selected.
var errModeConflict = errors.New("-calibrate and -csv cannot be combined")

func run(opts options) error {
	if opts.calibrate && opts.csvSource != "" {
		return errModeConflict
	}

	cfg := certgen.DefaultConfig()
	if opts.configPath != "" {
		loaded, err := certgen.LoadConfig(opts.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if opts.template != "" {
		cfg.Template = opts.template
	}
	if opts.font != "" {
		cfg.Font = opts.font
	}
	if opts.rejectBlank {
		cfg.RowPolicy = batch.RejectRow
	}

	switch {
	case opts.calibrate:
		out, err := certgen.Calibrate(cfg, opts.outDir)
		if err != nil {
			return err
		}
		fmt.Println("Calibration sheet written to", out)

	case opts.csvSource != "":
		result, err := certgen.RunBatch(cfg, opts.csvSource, opts.outDir)
		for _, path := range result.Written {
			fmt.Println("Saved:", path)
		}
		if err != nil {
			return err
		}
		fmt.Printf("Bulk generation complete: %d certificates\n", len(result.Written))

	default:
		out, err := certgen.Generate(cfg, opts.values, opts.outDir)
		if err != nil {
			return err
		}
		fmt.Println("Saved:", out)
	}
	return nil
}

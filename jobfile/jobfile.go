// Package jobfile reads and writes schedule.Job descriptions as YAML or
// JSON, picked by file extension.
package jobfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/purgeplan/schedule"
)

// Format is a job encoding.
type Format string

const (
	YAML Format = "yaml"
	JSON Format = "json"
)

// ErrUnknownFormat is returned for unsupported extensions.
var ErrUnknownFormat = errors.New("jobfile: unknown format")

// FormatOf maps .yaml/.yml to YAML and .json to JSON.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".json":
		return JSON, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
}

// Load reads the job at path.
func Load(path string) (schedule.Job, error) {
	format, err := FormatOf(path)
	if err != nil {
		return schedule.Job{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		return schedule.Job{}, err
	}
	defer f.Close()

	job, err := Decode(f, format)
	if err != nil {
		return schedule.Job{}, fmt.Errorf("%s: %w", path, err)
	}
	return job, nil
}

// Decode reads one job; unknown fields are rejected.
func Decode(r io.Reader, format Format) (schedule.Job, error) {
	var job schedule.Job
	switch format {
	case YAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&job); err != nil {
			return schedule.Job{}, fmt.Errorf("jobfile: yaml: %w", err)
		}
	case JSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&job); err != nil {
			return schedule.Job{}, fmt.Errorf("jobfile: json: %w", err)
		}
	default:
		return schedule.Job{}, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return job, nil
}

// Encode writes job in format.
func Encode(w io.Writer, job schedule.Job, format Format) error {
	switch format {
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(job); err != nil {
			return err
		}
		return enc.Close()
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(job)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// Save writes job to path in the format of its extension.
func Save(path string, job schedule.Job) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(f, job, format); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

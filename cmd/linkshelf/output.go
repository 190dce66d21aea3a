package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"
)

type signResult struct {
	Path      string    `json:"path" yaml:"path"`
	URL       string    `json:"url" yaml:"url"`
	Token     string    `json:"token" yaml:"token"`
	ExpiresAt int64     `json:"expires_at" yaml:"expires_at"`
	Expires   time.Time `json:"expires" yaml:"expires"`
}

type verifyResult struct {
	URL    string `json:"url" yaml:"url"`
	Valid  bool   `json:"valid" yaml:"valid"`
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// Formatter formats command results for output.
type Formatter interface {
	FormatLink(w io.Writer, r signResult) error
	FormatVerify(w io.Writer, r verifyResult) error
}

func newFormatter(format string) (Formatter, error) {
	switch format {
	case "", "text":
		return &HumanFormatter{}, nil
	case "json":
		return &JSONFormatter{}, nil
	case "yaml":
		return &YAMLFormatter{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (valid: text, json, yaml)", format)
	}
}

// HumanFormatter outputs human-readable text.
type HumanFormatter struct{}

func (f *HumanFormatter) FormatLink(w io.Writer, r signResult) error {
	_, _ = fmt.Fprintln(w, r.URL)
	_, _ = fmt.Fprintf(w, "  Path:    %s\n", r.Path)
	_, _ = fmt.Fprintf(w, "  Expires: %s (%d, %s)\n", r.Expires.Format(time.RFC3339), r.ExpiresAt, humanize.Time(r.Expires))
	return nil
}

func (f *HumanFormatter) FormatVerify(w io.Writer, r verifyResult) error {
	if r.Valid {
		_, _ = fmt.Fprintf(w, "Valid: %s\n", r.URL)
		return nil
	}
	_, _ = fmt.Fprintf(w, "Invalid: %s\n  Reason: %s\n", r.URL, r.Reason)
	return nil
}

// JSONFormatter outputs indented JSON.
type JSONFormatter struct{}

func (f *JSONFormatter) FormatLink(w io.Writer, r signResult) error {
	return writeJSON(w, r)
}

func (f *JSONFormatter) FormatVerify(w io.Writer, r verifyResult) error {
	return writeJSON(w, r)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// YAMLFormatter outputs YAML documents.
type YAMLFormatter struct{}

func (f *YAMLFormatter) FormatLink(w io.Writer, r signResult) error {
	return writeYAML(w, r)
}

func (f *YAMLFormatter) FormatVerify(w io.Writer, r verifyResult) error {
	return writeYAML(w, r)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	defer func() { _ = enc.Close() }()
	enc.SetIndent(2)
	return enc.Encode(v)
}

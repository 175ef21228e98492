// Package report renders the outcome of a download run.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/handiism/catalog-photo-downloader/internal/model"
)

// Summary returns the one-line result, e.g. "2/2 success, 0 failed".
func Summary(r *model.Report) string {
	return fmt.Sprintf("%d/%d success, %d failed", r.Succeeded(), r.Total, len(r.Failed))
}

// Print writes the human-readable report to w.
func Print(w io.Writer, r *model.Report) {
	fmt.Fprintln(w)
	if r.Cancelled {
		fmt.Fprintf(w, "Download cancelled after %d/%d photos\n", r.Attempted, r.Total)
	} else {
		fmt.Fprintln(w, "Download complete!")
	}
	fmt.Fprintf(w, "Result: %s\n", Summary(r))

	if len(r.Failed) > 0 {
		fmt.Fprintf(w, "Failed to download %d photos:\n", len(r.Failed))
		for _, f := range r.Failed {
			fmt.Fprintf(w, "  - %s\n", f.Name)
		}
	}

	fmt.Fprintf(w, "Photos saved to: %s\n", r.Location)
}

type yamlFailure struct {
	Name  string `yaml:"name"`
	Error string `yaml:"error"`
}

type yamlReport struct {
	RunID      string        `yaml:"run_id"`
	StartedAt  time.Time     `yaml:"started_at"`
	FinishedAt time.Time     `yaml:"finished_at"`
	Location   string        `yaml:"location"`
	Total      int           `yaml:"total"`
	Succeeded  int           `yaml:"succeeded"`
	Failed     []yamlFailure `yaml:"failed"`
	Cancelled  bool          `yaml:"cancelled"`
}

// MarshalYAML encodes the report as YAML.
func MarshalYAML(r *model.Report) ([]byte, error) {
	out := yamlReport{
		RunID:      r.RunID,
		StartedAt:  r.StartedAt,
		FinishedAt: r.FinishedAt,
		Location:   r.Location,
		Total:      r.Total,
		Succeeded:  r.Succeeded(),
		Failed:     make([]yamlFailure, 0, len(r.Failed)),
		Cancelled:  r.Cancelled,
	}
	for _, f := range r.Failed {
		msg := ""
		if f.Err != nil {
			msg = f.Err.Error()
		}
		out.Failed = append(out.Failed, yamlFailure{Name: f.Name, Error: msg})
	}
	return yaml.Marshal(out)
}

// WriteYAML writes the report to path as YAML.
func WriteYAML(path string, r *model.Report) error {
	data, err := MarshalYAML(r)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

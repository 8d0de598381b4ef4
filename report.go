package hshex

import (
	"bufio"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// ReportFormat selects how WriteReport renders a histogram.
type ReportFormat int

const (
	// ReportText prints "Value {bucket}: {count} pixels" per non-empty bucket.
	ReportText ReportFormat = iota
	// ReportYAML prints a YAML document with the non-empty buckets and total.
	ReportYAML
)

func (f ReportFormat) String() string {
	switch f {
	case ReportText:
		return "text"
	case ReportYAML:
		return "yaml"
	}
	return fmt.Sprintf("ReportFormat(%d)", int(f))
}

// ParseReportFormat maps "text" or "yaml" to a ReportFormat.
func ParseReportFormat(s string) (ReportFormat, error) {
	switch s {
	case "text":
		return ReportText, nil
	case "yaml":
		return ReportYAML, nil
	}
	return 0, fmt.Errorf("%w: unknown report format %q", ErrInvalidArgument, s)
}

type yamlReport struct {
	Buckets map[int]uint64 `yaml:"buckets"`
	Total   uint64         `yaml:"total"`
}

// WriteReport renders the non-empty buckets of h to w in ascending order.
func WriteReport(w io.Writer, h Histogram, format ReportFormat) error {
	switch format {
	case ReportText:
		bw := bufio.NewWriter(w)
		for _, b := range h.NonZero() {
			fmt.Fprintf(bw, "Value %d: %d pixels\n", b.Bucket, b.Count)
		}
		if err := bw.Flush(); err != nil {
			return &IOError{Op: "write report", Err: err}
		}
		return nil

	case ReportYAML:
		rep := yamlReport{Buckets: make(map[int]uint64), Total: h.Total()}
		for _, b := range h.NonZero() {
			rep.Buckets[int(b.Bucket)] = b.Count
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rep); err != nil {
			return &IOError{Op: "write report", Err: err}
		}
		if err := enc.Close(); err != nil {
			return &IOError{Op: "write report", Err: err}
		}
		return nil
	}
	return fmt.Errorf("%w: unknown report format %v", ErrInvalidArgument, format)
}

package sources

import "sort"

// Report is the structured diagnostics record a loader returns alongside
// its records. It replaces console-printed progress output: callers decide
// whether to log it, serialize it, or both.
type Report struct {
	Source   ID     `yaml:"source" json:"source"`
	Path     string `yaml:"path" json:"path"`
	RowsRead int    `yaml:"rows_read" json:"rows_read"`
	RowsKept int    `yaml:"rows_kept" json:"rows_kept"`

	// Stages lists per-stage drop counts in pipeline order.
	Stages []Stage `yaml:"stages,omitempty" json:"stages,omitempty"`

	// UnparseableAlleles holds the distinct raw allele names that failed
	// normalization, sorted for deterministic output.
	UnparseableAlleles []string `yaml:"unparseable_alleles,omitempty" json:"unparseable_alleles,omitempty"`

	unparseable map[string]struct{}
}

// Stage is one named filter step and the number of rows it removed.
type Stage struct {
	Name    string `yaml:"name" json:"name"`
	Dropped int    `yaml:"dropped" json:"dropped"`
}

// NewReport creates a Report for one source file.
func NewReport(source ID, path string) *Report {
	return &Report{
		Source:      source,
		Path:        path,
		unparseable: make(map[string]struct{}),
	}
}

// Drop records that a pipeline stage removed n rows. Stages that drop
// nothing are still recorded, so reports list every stage that ran.
func (r *Report) Drop(stage string, n int) {
	r.Stages = append(r.Stages, Stage{Name: stage, Dropped: n})
}

// Unparseable records one raw allele name that failed normalization.
// Duplicate names are collapsed.
func (r *Report) Unparseable(raw string) {
	if _, ok := r.unparseable[raw]; ok {
		return
	}
	r.unparseable[raw] = struct{}{}
	r.UnparseableAlleles = append(r.UnparseableAlleles, raw)
	sort.Strings(r.UnparseableAlleles)
}

// Dropped returns the total number of rows removed across all stages.
func (r *Report) Dropped() int {
	total := 0
	for _, s := range r.Stages {
		total += s.Dropped
	}
	return total
}

// Package dataset defines the standardized peptide-MHC measurement record
// produced by every source loader, together with the fixed vocabulary
// (measurement types, censoring inequalities, the qualitative affinity
// table) and the record-list operations the merge step is built on.
package dataset

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// MeasurementType distinguishes direct numeric assay readings from
// categorical binding calls.
type MeasurementType string

// Measurement types.
const (
	Quantitative MeasurementType = "quantitative"
	Qualitative  MeasurementType = "qualitative"
)

// Inequality is the censoring direction on a measurement value.
type Inequality string

// Censoring inequalities. Less means the true affinity is at most the
// recorded value (binder evidence), Greater at least the recorded value
// (non-binder evidence), Equal an exact reading.
const (
	Less    Inequality = "<"
	Equal   Inequality = "="
	Greater Inequality = ">"
)

// Unknown is the sentinel allele name that marks a record for dropping.
const Unknown = "UNKNOWN"

// Measurement is the standardized record every loader produces. A record
// is born fully formed from one raw input row and is never mutated
// afterwards; it either survives to the final table or is discarded.
type Measurement struct {
	Allele         string
	OriginalAllele string
	Peptide        string
	Value          float64 // affinity in nanomolar; NaN when missing
	Inequality     Inequality
	Type           MeasurementType
	Source         string
}

// Pair identifies a (allele, peptide) combination, the key used for
// within-source dedup and cross-source suppression.
type Pair struct {
	Allele  string
	Peptide string
}

// Pair returns the record's (allele, peptide) key.
func (m Measurement) Pair() Pair {
	return Pair{Allele: m.Allele, Peptide: m.Peptide}
}

// Complete reports whether every one of the seven output columns has a
// value. Incomplete records are silently dropped at the final cleaning
// step, never treated as errors.
func (m Measurement) Complete() bool {
	return m.Allele != "" &&
		m.OriginalAllele != "" &&
		m.Peptide != "" &&
		!math.IsNaN(m.Value) &&
		m.Inequality != "" &&
		m.Type != "" &&
		m.Source != ""
}

// peptideAlphabet is the canonical 20-letter amino-acid alphabet.
var peptideAlphabet = regexp.MustCompile(`^[ACDEFGHIKLMNPQRSTVWY]+$`)

// ValidPeptide reports whether s consists solely of the 20 standard
// one-letter amino-acid codes.
func ValidPeptide(s string) bool {
	return peptideAlphabet.MatchString(s)
}

// Columns is the exact output column order of the final table.
var Columns = []string{
	"allele",
	"peptide",
	"measurement_value",
	"measurement_inequality",
	"measurement_type",
	"measurement_source",
	"original_allele",
}

// Strings renders the record as one output row in Columns order.
func (m Measurement) Strings() []string {
	return []string{
		m.Allele,
		m.Peptide,
		FormatValue(m.Value),
		string(m.Inequality),
		string(m.Type),
		m.Source,
		m.OriginalAllele,
	}
}

// FormatValue renders an affinity with the shortest representation that
// round-trips through ParseFloat.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// keySep never occurs in allele names, peptides or source tags.
const keySep = "\x1f"

// tripleKey is the global dedup key (allele, peptide, measurement_value).
func (m Measurement) tripleKey() string {
	return strings.Join([]string{m.Allele, m.Peptide, FormatValue(m.Value)}, keySep)
}

// rowKey covers all seven columns, for exact full-row dedup.
func (m Measurement) rowKey() string {
	return strings.Join([]string{
		m.Allele,
		m.OriginalAllele,
		m.Peptide,
		FormatValue(m.Value),
		string(m.Inequality),
		string(m.Type),
		m.Source,
	}, keySep)
}

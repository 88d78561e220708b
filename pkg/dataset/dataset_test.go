package dataset

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func rec(allele, peptide string, value float64) Measurement {
	return Measurement{
		Allele:         allele,
		OriginalAllele: allele,
		Peptide:        peptide,
		Value:          value,
		Inequality:     Equal,
		Type:           Quantitative,
		Source:         "kim2014",
	}
}

func TestValidPeptide(t *testing.T) {
	tests := []struct {
		peptide string
		valid   bool
	}{
		{"SLLMWITQC", true},
		{"RPPIFIRRL", true},
		{"ACDEFGHIKLMNPQRSTVWY", true},
		{"", false},
		{"SLLMWITQX", false}, // X is not a standard residue
		{"sllmwitqc", false},
		{"SLLMW ITQC", false},
		{"SLLMWITQB", false},
		{"PEPTIDE+1", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.valid, ValidPeptide(tt.peptide), "peptide %q", tt.peptide)
	}
}

func TestQualitativeAffinities(t *testing.T) {
	tests := []struct {
		measure    string
		value      float64
		inequality Inequality
	}{
		{"Negative", 5000.0, Greater},
		{"Positive", 500.0, Less},
		{"Positive-High", 100.0, Less},
		{"Positive-Intermediate", 1000.0, Less},
		{"Positive-Low", 5000.0, Less},
	}
	for _, tt := range tests {
		aff, ok := QualitativeAffinities[tt.measure]
		assert.True(t, ok, tt.measure)
		assert.Equal(t, tt.value, aff.Value)
		assert.Equal(t, tt.inequality, aff.Inequality)
	}

	_, ok := QualitativeAffinities["Positive-Very-High"]
	assert.False(t, ok)

	assert.Equal(t, Affinity{Value: 500.0, Inequality: Less}, PositiveAffinity())
}

func TestComplete(t *testing.T) {
	m := rec("HLA-A*02:01", "SLLMWITQC", 12.3)
	assert.True(t, m.Complete())

	missingValue := m
	missingValue.Value = math.NaN()
	assert.False(t, missingValue.Complete())

	missingInequality := m
	missingInequality.Inequality = ""
	assert.False(t, missingInequality.Complete())

	missingSource := m
	missingSource.Source = ""
	assert.False(t, missingSource.Complete())
}

func TestDedupByPair(t *testing.T) {
	rs := Records{
		rec("HLA-A*02:01", "SLLMWITQC", 12.3),
		rec("HLA-A*02:01", "SLLMWITQC", 99.0), // same pair, different value
		rec("HLA-B*07:02", "RPPIFIRRL", 500.0),
	}
	got := rs.DedupByPair()
	assert.Len(t, got, 2)
	assert.Equal(t, 12.3, got[0].Value, "first occurrence wins")
}

func TestDedupByTriple(t *testing.T) {
	rs := Records{
		rec("HLA-A*02:01", "SLLMWITQC", 12.3),
		rec("HLA-A*02:01", "SLLMWITQC", 12.3), // exact triple duplicate
		rec("HLA-A*02:01", "SLLMWITQC", 99.0), // same pair, new value survives
	}
	got := rs.DedupByTriple()
	assert.Len(t, got, 2)
}

func TestDedupRows(t *testing.T) {
	a := rec("HLA-A*02:01", "SLLMWITQC", 12.3)
	b := a
	b.Source = "other - purified MHC"
	rs := Records{a, a, b}
	got := rs.DedupRows()
	if diff := cmp.Diff(Records{a, b}, got); diff != "" {
		t.Errorf("DedupRows mismatch (-want +got):\n%s", diff)
	}
}

func TestSortStable(t *testing.T) {
	first := rec("HLA-B*07:02", "RPPIFIRRL", 500.0)
	second := rec("HLA-B*07:02", "RPPIFIRRL", 100.0)
	rs := Records{
		first,
		rec("HLA-A*02:01", "SLLMWITQC", 12.3),
		second,
	}
	rs.Sort()
	assert.Equal(t, "HLA-A*02:01", rs[0].Allele)
	// Stable: equal keys keep list order.
	assert.Equal(t, 500.0, rs[1].Value)
	assert.Equal(t, 100.0, rs[2].Value)
}

func TestStringsColumnOrder(t *testing.T) {
	m := Measurement{
		Allele:         "HLA-A*02:01",
		OriginalAllele: "HLA-A*0201",
		Peptide:        "SLLMWITQC",
		Value:          12.3,
		Inequality:     Equal,
		Type:           Quantitative,
		Source:         "kim2014",
	}
	want := []string{"HLA-A*02:01", "SLLMWITQC", "12.3", "=", "quantitative", "kim2014", "HLA-A*0201"}
	assert.Equal(t, want, m.Strings())
	assert.Len(t, Columns, len(want))
}

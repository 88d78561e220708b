package curator_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openvax/mhccurate/pkg/curator"
	"github.com/openvax/mhccurate/pkg/dataset"
	"github.com/openvax/mhccurate/pkg/errors"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func kimFile(t *testing.T, rows string) string {
	t.Helper()
	return writeFile(t, "bdata.tsv", "mhc\tsequence\tmeas\tinequality\n"+rows)
}

func iedbFile(t *testing.T, rows string) string {
	t.Helper()
	return writeFile(t, "iedb.csv",
		"grouping line\n"+
			"MHC allele class,Allele Name,Units,Qualitative Measure,"+
			"Quantitative measurement,Method/Technique,Description,Authors\n"+rows)
}

func TestRunKim2014EndToEnd(t *testing.T) {
	in := curator.Inputs{
		Kim2014: []string{kimFile(t, "HLA-A*02:01\tSLLMWITQC\t12.3\t=\n")},
	}

	result, err := curator.New().Run(context.Background(), in)
	require.NoError(t, err)

	require.Len(t, result.Records, 1)
	m := result.Records[0]
	assert.Equal(t, "HLA-A*02:01", m.Allele)
	assert.Equal(t, "SLLMWITQC", m.Peptide)
	assert.Equal(t, 12.3, m.Value)
	assert.Equal(t, dataset.Equal, m.Inequality)
	assert.Equal(t, dataset.Quantitative, m.Type)
	assert.Equal(t, "kim2014", m.Source)
}

func TestRunAbelinEndToEnd(t *testing.T) {
	in := curator.Inputs{
		AbelinMassSpec: []string{writeFile(t, "abelin.csv",
			"allele,peptide\nHLA-B*07:02,RPPIFIRRL\n")},
	}

	result, err := curator.New().Run(context.Background(), in)
	require.NoError(t, err)

	require.Len(t, result.Records, 1)
	m := result.Records[0]
	assert.Equal(t, 500.0, m.Value)
	assert.Equal(t, dataset.Less, m.Inequality)
	assert.Equal(t, dataset.Qualitative, m.Type)
	assert.Equal(t, "abelin-mass-spec", m.Source)
}

func TestRunIEDBPrecedenceOverKim2014(t *testing.T) {
	in := curator.Inputs{
		IEDB: []string{iedbFile(t,
			"I,HLA-A*02:01,nM,,42.0,purified MHC,SLLMWITQC,Doe J\n")},
		Kim2014: []string{kimFile(t,
			"HLA-A*02:01\tSLLMWITQC\t12.3\t=\n"+
				"HLA-B*07:02\tRPPIFIRRL\t77.0\t=\n")},
	}

	result, err := curator.New().Run(context.Background(), in)
	require.NoError(t, err)

	require.Len(t, result.Records, 2)
	bySource := map[string]dataset.Measurement{}
	for _, m := range result.Records {
		bySource[m.Source] = m
		assert.NotEqual(t, 12.3, m.Value, "suppressed Kim2014 value must not appear")
	}
	// The Kim2014 record for the shared pair is gone; the IEDB value stands.
	assert.Equal(t, 42.0, bySource["J - purified MHC"].Value)
	assert.Equal(t, "RPPIFIRRL", bySource["kim2014"].Peptide)
	assert.Equal(t, 1, result.Merge.Kim2014Suppressed)
}

func TestRunNoIEDBKeepsKim2014(t *testing.T) {
	in := curator.Inputs{
		Kim2014: []string{kimFile(t, "HLA-A*02:01\tSLLMWITQC\t12.3\t=\n")},
	}

	result, err := curator.New().Run(context.Background(), in)
	require.NoError(t, err)
	assert.Len(t, result.Records, 1)
	assert.Zero(t, result.Merge.Kim2014Suppressed)
}

func TestRunGlobalDedupAcrossSources(t *testing.T) {
	// SysteMHC Atlas and Abelin record the same hit at the same fixed
	// affinity; the earlier-listed source's row survives.
	in := curator.Inputs{
		SystemHCAtlas: []string{writeFile(t, "systemhc.csv",
			"top_allele,search_hit,prob\nHLA-B*07:02,RPPIFIRRL,0.999\n")},
		AbelinMassSpec: []string{writeFile(t, "abelin.csv",
			"allele,peptide\nHLA-B*07:02,RPPIFIRRL\n")},
	}

	result, err := curator.New().Run(context.Background(), in)
	require.NoError(t, err)

	require.Len(t, result.Records, 1)
	assert.Equal(t, "systemhc-atlas", result.Records[0].Source)
	assert.Equal(t, 1, result.Merge.DuplicatesRemoved)
}

func TestRunSamePairDifferentValuesBothSurvive(t *testing.T) {
	// The global dedup key includes the value, so a censored Kim2014
	// row and a mass-spec positive for the same pair both remain.
	in := curator.Inputs{
		Kim2014: []string{kimFile(t, "HLA-B*07:02\tRPPIFIRRL\t20000\t>\n")},
		AbelinMassSpec: []string{writeFile(t, "abelin.csv",
			"allele,peptide\nHLA-B*07:02,RPPIFIRRL\n")},
	}

	result, err := curator.New().Run(context.Background(), in)
	require.NoError(t, err)
	assert.Len(t, result.Records, 2)
}

func TestRunOutputSortedAndClean(t *testing.T) {
	in := curator.Inputs{
		Kim2014: []string{kimFile(t,
			"HLA-B*07:02\tRPPIFIRRL\t77.0\t=\n"+
				"HLA-A*02:01\tTLIMWITQC\t5.0\t=\n"+
				"HLA-A*02:01\tSLLMWITQC\t12.3\t=\n"+
				"hopeless name\tAAAAAAAAA\t1.0\t=\n")},
	}

	result, err := curator.New().Run(context.Background(), in)
	require.NoError(t, err)

	require.Len(t, result.Records, 3)
	seen := map[string]bool{}
	for i, m := range result.Records {
		assert.NotEqual(t, dataset.Unknown, m.Allele)
		assert.True(t, dataset.ValidPeptide(m.Peptide))
		assert.True(t, m.Complete())
		key := m.Allele + " " + m.Peptide + " " + dataset.FormatValue(m.Value)
		assert.False(t, seen[key], "duplicate triple %s", key)
		seen[key] = true
		if i > 0 {
			prev := result.Records[i-1]
			ordered := prev.Allele < m.Allele ||
				(prev.Allele == m.Allele && prev.Peptide <= m.Peptide)
			assert.True(t, ordered, "rows sorted by (allele, peptide)")
		}
	}
	assert.Equal(t, "SLLMWITQC", result.Records[0].Peptide)
}

func TestRunClassIIExcludedEndToEnd(t *testing.T) {
	in := curator.Inputs{
		IEDB: []string{iedbFile(t,
			"II,HLA-A*02:01,nM,,42.0,purified MHC,SLLMWITQC,Doe J\n")},
	}

	result, err := curator.New().Run(context.Background(), in)
	require.NoError(t, err)
	assert.Empty(t, result.Records)
}

func TestRunMassSpecOptionFlowsToIEDB(t *testing.T) {
	file := iedbFile(t,
		"I,HLA-A*02:01,,Positive,,mass spectrometry,SLLMWITQC,Doe J\n")

	result, err := curator.New().Run(context.Background(), curator.Inputs{IEDB: []string{file}})
	require.NoError(t, err)
	assert.Empty(t, result.Records)

	file = iedbFile(t,
		"I,HLA-A*02:01,,Positive,,mass spectrometry,SLLMWITQC,Doe J\n")
	result, err = curator.New(curator.WithIncludeIEDBMassSpec(true)).
		Run(context.Background(), curator.Inputs{IEDB: []string{file}})
	require.NoError(t, err)
	assert.Len(t, result.Records, 1)
}

func TestRunEmptyInputs(t *testing.T) {
	_, err := curator.New().Run(context.Background(), curator.Inputs{})
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestRunMissingFileAborts(t *testing.T) {
	in := curator.Inputs{
		Kim2014: []string{filepath.Join(t.TempDir(), "missing.tsv")},
	}
	_, err := curator.New().Run(context.Background(), in)
	require.Error(t, err)
}

func TestRunReportsPerFile(t *testing.T) {
	in := curator.Inputs{
		Kim2014: []string{
			kimFile(t, "HLA-A*02:01\tSLLMWITQC\t12.3\t=\n"),
			kimFile(t, "HLA-B*07:02\tRPPIFIRRL\t77.0\t=\n"),
		},
	}

	result, err := curator.New().Run(context.Background(), in)
	require.NoError(t, err)
	assert.Len(t, result.Sources, 2)
	assert.Equal(t, 2, result.Merge.Final)
}

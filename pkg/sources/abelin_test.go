package sources_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openvax/mhccurate/pkg/dataset"
	"github.com/openvax/mhccurate/pkg/mhcnames"
	"github.com/openvax/mhccurate/pkg/sources"
)

func TestAbelinLoad(t *testing.T) {
	path := writeFile(t, "abelin.csv",
		"allele,peptide\n"+
			"HLA-B*07:02,RPPIFIRRL\n"+
			"HLA-B*07:02,RPPIFIRRL\n"+ // duplicate pair
			"HLA class I,AAAAAAAAA\n")

	loader := sources.NewAbelin(mhcnames.New())
	records, report, err := loader.Load(context.Background(), path)
	require.NoError(t, err)

	require.Len(t, records, 1)
	m := records[0]
	assert.Equal(t, "HLA-B*07:02", m.Allele)
	assert.Equal(t, "RPPIFIRRL", m.Peptide)
	assert.Equal(t, 500.0, m.Value)
	assert.Equal(t, dataset.Less, m.Inequality)
	assert.Equal(t, dataset.Qualitative, m.Type)
	assert.Equal(t, "abelin-mass-spec", m.Source)

	assert.Equal(t, 3, report.RowsRead)
	assert.Equal(t, 1, report.RowsKept)
	assert.Equal(t, []string{"HLA class I"}, report.UnparseableAlleles)
}

func TestReportStages(t *testing.T) {
	report := sources.NewReport(sources.AbelinID, "abelin.csv")
	report.Drop("unparseable-allele", 2)
	report.Drop("duplicate-pair", 1)
	report.Unparseable("b")
	report.Unparseable("a")
	report.Unparseable("b") // duplicate collapses

	assert.Equal(t, 3, report.Dropped())
	assert.Equal(t, []string{"a", "b"}, report.UnparseableAlleles)
	assert.Equal(t, "unparseable-allele", report.Stages[0].Name)
}

func TestSourceIDs(t *testing.T) {
	assert.Equal(t, []sources.ID{
		sources.IEDBID,
		sources.Kim2014ID,
		sources.SystemHCAtlasID,
		sources.AbelinID,
	}, sources.IDs(), "precedence order")

	assert.True(t, sources.Kim2014ID.IsValid())
	assert.False(t, sources.ID("netmhc").IsValid())
}

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

func TestSystemHCAtlasLoad(t *testing.T) {
	path := writeFile(t, "systemhc.csv",
		"top_allele,search_hit,prob\n"+
			"HLA-A*02:01,SLLMWITQC,0.999\n"+
			"HLA-A*02:01,AAAAAAAAA,0.95\n"+ // below threshold
			"garbage,CCCCCCCCC,1.0\n"+
			"HLA-B*07:02,RPPIFIRRL,0.99\n")

	loader := sources.NewSystemHCAtlas(mhcnames.New(), 0.99)
	records, report, err := loader.Load(context.Background(), path)
	require.NoError(t, err)

	require.Len(t, records, 2)
	for _, m := range records {
		assert.Equal(t, 500.0, m.Value)
		assert.Equal(t, dataset.Less, m.Inequality)
		assert.Equal(t, dataset.Qualitative, m.Type)
		assert.Equal(t, "systemhc-atlas", m.Source)
	}
	assert.Equal(t, "SLLMWITQC", records[0].Peptide)
	assert.Equal(t, "RPPIFIRRL", records[1].Peptide)

	assert.Equal(t, 4, report.RowsRead)
	assert.Equal(t, 2, report.RowsKept)
	assert.Equal(t, []string{"garbage"}, report.UnparseableAlleles)
}

func TestSystemHCAtlasThresholdBoundary(t *testing.T) {
	path := writeFile(t, "systemhc.csv",
		"top_allele,search_hit,prob\nHLA-A*02:01,SLLMWITQC,0.99\n")

	loader := sources.NewSystemHCAtlas(mhcnames.New(), 0.99)
	records, _, err := loader.Load(context.Background(), path)
	require.NoError(t, err)
	assert.Len(t, records, 1, "prob == threshold is kept")
}

func TestSystemHCAtlasConfigurableThreshold(t *testing.T) {
	path := writeFile(t, "systemhc.csv",
		"top_allele,search_hit,prob\nHLA-A*02:01,SLLMWITQC,0.5\n")

	loader := sources.NewSystemHCAtlas(mhcnames.New(), 0.4)
	records, _, err := loader.Load(context.Background(), path)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestSystemHCAtlasPairDedupKeepsFirst(t *testing.T) {
	path := writeFile(t, "systemhc.csv",
		"top_allele,search_hit,prob\n"+
			"HLA-A*02:01,SLLMWITQC,0.991\n"+
			"HLA-A*0201,SLLMWITQC,0.995\n") // same pair after normalization

	loader := sources.NewSystemHCAtlas(mhcnames.New(), 0.99)
	records, _, err := loader.Load(context.Background(), path)
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, "HLA-A*02:01", records[0].OriginalAllele, "first occurrence in file order wins")
}

func TestSystemHCAtlasBadProbDropped(t *testing.T) {
	path := writeFile(t, "systemhc.csv",
		"top_allele,search_hit,prob\nHLA-A*02:01,SLLMWITQC,n/a\n")

	loader := sources.NewSystemHCAtlas(mhcnames.New(), 0.99)
	records, _, err := loader.Load(context.Background(), path)
	require.NoError(t, err)
	assert.Empty(t, records)
}

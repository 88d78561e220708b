package sources

import (
	"context"

	"github.com/openvax/mhccurate/pkg/dataset"
	"github.com/openvax/mhccurate/pkg/logging"
	"github.com/openvax/mhccurate/pkg/mhcnames"
	"github.com/openvax/mhccurate/pkg/tabular"
)

// Abelin loads the Abelin Immunity 2017 mono-allelic mass-spec hits:
// comma-separated rows of allele and peptide. Every hit is a qualitative
// positive at the fixed 500 nM censored affinity.
type Abelin struct {
	normalizer mhcnames.Normalizer
}

// NewAbelin creates an Abelin mass-spec loader.
func NewAbelin(n mhcnames.Normalizer) *Abelin {
	return &Abelin{normalizer: n}
}

// ID returns the identity of this source.
func (a *Abelin) ID() ID {
	return AbelinID
}

// Load reads one Abelin mass-spec CSV file.
func (a *Abelin) Load(ctx context.Context, path string) (dataset.Records, *Report, error) {
	log := logging.Ctx(ctx)
	report := NewReport(AbelinID, path)

	tbl, err := tabular.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	if err := tbl.Require("allele", "peptide"); err != nil {
		return nil, nil, err
	}

	report.RowsRead = tbl.Len()
	log.Info().Str("path", path).Int("rows", tbl.Len()).Msg("Loaded Abelin mass-spec data")

	positive := dataset.PositiveAffinity()

	records := make(dataset.Records, 0, tbl.Len())
	droppedAlleles := 0
	for i := 0; i < tbl.Len(); i++ {
		rawAllele := tbl.Field(i, "allele")
		allele := a.normalizer.Normalize(rawAllele)
		if allele.Unparseable() {
			report.Unparseable(rawAllele)
			droppedAlleles++
			continue
		}
		records = append(records, dataset.Measurement{
			Allele:         allele.String(),
			OriginalAllele: rawAllele,
			Peptide:        tbl.Field(i, "peptide"),
			Value:          positive.Value,
			Inequality:     positive.Inequality,
			Type:           dataset.Qualitative,
			Source:         AbelinID.String(),
		})
	}
	report.Drop("unparseable-allele", droppedAlleles)
	if len(report.UnparseableAlleles) > 0 {
		log.Warn().
			Strs("alleles", report.UnparseableAlleles).
			Msg("Dropping un-parseable alleles")
	}

	deduped := records.DedupByPair()
	report.Drop("duplicate-pair", len(records)-len(deduped))
	report.RowsKept = len(deduped)
	log.Info().Int("rows", len(deduped)).Msg("Abelin mass-spec data now")

	return deduped, report, nil
}

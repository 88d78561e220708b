package sources

import (
	"context"
	"strconv"
	"strings"

	"github.com/openvax/mhccurate/pkg/dataset"
	"github.com/openvax/mhccurate/pkg/logging"
	"github.com/openvax/mhccurate/pkg/mhcnames"
	"github.com/openvax/mhccurate/pkg/tabular"
)

// SystemHCAtlas loads SysteMHC Atlas mass-spec hits: comma-separated
// rows of top_allele, search_hit and prob. Every surviving hit is
// recorded as a qualitative positive at the fixed 500 nM censored
// affinity; hits below the search probability threshold are dropped.
type SystemHCAtlas struct {
	normalizer     mhcnames.Normalizer
	minProbability float64
}

// NewSystemHCAtlas creates a SysteMHC Atlas loader keeping hits with
// prob >= minProbability.
func NewSystemHCAtlas(n mhcnames.Normalizer, minProbability float64) *SystemHCAtlas {
	return &SystemHCAtlas{normalizer: n, minProbability: minProbability}
}

// ID returns the identity of this source.
func (s *SystemHCAtlas) ID() ID {
	return SystemHCAtlasID
}

// Load reads one SysteMHC Atlas CSV file.
func (s *SystemHCAtlas) Load(ctx context.Context, path string) (dataset.Records, *Report, error) {
	log := logging.Ctx(ctx)
	report := NewReport(SystemHCAtlasID, path)

	tbl, err := tabular.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	if err := tbl.Require("top_allele", "search_hit", "prob"); err != nil {
		return nil, nil, err
	}

	report.RowsRead = tbl.Len()
	log.Info().Str("path", path).Int("rows", tbl.Len()).Msg("Loaded systemhc atlas data")

	positive := dataset.PositiveAffinity()

	records := make(dataset.Records, 0, tbl.Len())
	probs := make([]float64, 0, tbl.Len())
	droppedAlleles := 0
	for i := 0; i < tbl.Len(); i++ {
		rawAllele := tbl.Field(i, "top_allele")
		allele := s.normalizer.Normalize(rawAllele)
		if allele.Unparseable() {
			report.Unparseable(rawAllele)
			droppedAlleles++
			continue
		}
		records = append(records, dataset.Measurement{
			Allele:         allele.String(),
			OriginalAllele: rawAllele,
			Peptide:        tbl.Field(i, "search_hit"),
			Value:          positive.Value,
			Inequality:     positive.Inequality,
			Type:           dataset.Qualitative,
			Source:         SystemHCAtlasID.String(),
		})
		probs = append(probs, parseProbability(tbl.Field(i, "prob")))
	}
	report.Drop("unparseable-allele", droppedAlleles)
	if len(report.UnparseableAlleles) > 0 {
		log.Warn().
			Strs("alleles", report.UnparseableAlleles).
			Msg("Dropping un-parseable alleles")
	}

	// Probability threshold. An unparseable prob cell never reaches the
	// threshold and is dropped with the low-probability hits.
	kept := records[:0]
	lowProbability := 0
	for i, m := range records {
		if probs[i] < s.minProbability {
			lowProbability++
			continue
		}
		kept = append(kept, m)
	}
	records = kept
	report.Drop("low-probability", lowProbability)
	log.Info().
		Float64("min_probability", s.minProbability).
		Int("rows", len(records)).
		Msg("Dropped data points below probability threshold")

	deduped := records.DedupByPair()
	report.Drop("duplicate-pair", len(records)-len(deduped))
	report.RowsKept = len(deduped)
	log.Info().Int("rows", len(deduped)).Msg("Systemhc atlas data now")

	return deduped, report, nil
}

// parseProbability parses a prob cell; failures map to -1, below any
// usable threshold.
func parseProbability(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return -1
	}
	return v
}

package sources

import (
	"context"
	"strconv"

	"github.com/openvax/mhccurate/pkg/dataset"
	"github.com/openvax/mhccurate/pkg/errors"
	"github.com/openvax/mhccurate/pkg/logging"
	"github.com/openvax/mhccurate/pkg/mhcnames"
	"github.com/openvax/mhccurate/pkg/tabular"
)

// Kim2014 loads the Kim 2014 BD2013 affinity benchmark: tab-separated
// rows of mhc, sequence, meas and inequality columns. Rows with an
// inequality of "=" are quantitative readings; censored rows ("<", ">")
// are carried as qualitative with the inequality passed through.
type Kim2014 struct {
	normalizer mhcnames.Normalizer
}

// NewKim2014 creates a Kim2014 loader using the given allele normalizer.
func NewKim2014(n mhcnames.Normalizer) *Kim2014 {
	return &Kim2014{normalizer: n}
}

// ID returns the identity of this source.
func (k *Kim2014) ID() ID {
	return Kim2014ID
}

// Load reads one Kim 2014 TSV file.
func (k *Kim2014) Load(ctx context.Context, path string) (dataset.Records, *Report, error) {
	log := logging.Ctx(ctx)
	report := NewReport(Kim2014ID, path)

	tbl, err := tabular.ReadFile(path, tabular.WithDelimiter('\t'))
	if err != nil {
		return nil, nil, err
	}
	if err := tbl.Require("mhc", "sequence", "meas", "inequality"); err != nil {
		return nil, nil, err
	}

	report.RowsRead = tbl.Len()
	log.Info().Str("path", path).Int("rows", tbl.Len()).Msg("Loaded kim2014 data")

	records := make(dataset.Records, 0, tbl.Len())
	droppedAlleles := 0
	for i := 0; i < tbl.Len(); i++ {
		rawAllele := tbl.Field(i, "mhc")
		allele := k.normalizer.Normalize(rawAllele)
		if allele.Unparseable() {
			report.Unparseable(rawAllele)
			droppedAlleles++
			continue
		}

		meas, err := strconv.ParseFloat(tbl.Field(i, "meas"), 64)
		if err != nil {
			return nil, nil, errors.NewParseError("tsv", path,
				"non-numeric meas value "+strconv.Quote(tbl.Field(i, "meas")), err)
		}

		inequality := dataset.Inequality(tbl.Field(i, "inequality"))
		measurementType := dataset.Qualitative
		if inequality == dataset.Equal {
			measurementType = dataset.Quantitative
		}

		records = append(records, dataset.Measurement{
			Allele:         allele.String(),
			OriginalAllele: rawAllele,
			Peptide:        tbl.Field(i, "sequence"),
			Value:          meas,
			Inequality:     inequality,
			Type:           measurementType,
			Source:         Kim2014ID.String(),
		})
	}
	report.Drop("unparseable-allele", droppedAlleles)
	report.RowsKept = len(records)

	if len(report.UnparseableAlleles) > 0 {
		log.Warn().
			Strs("alleles", report.UnparseableAlleles).
			Msg("Dropping un-parseable alleles")
	}
	log.Info().Int("rows", len(records)).Msg("Kim2014 data now")

	return records, report, nil
}

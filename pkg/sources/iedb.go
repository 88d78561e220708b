package sources

import (
	"context"
	"math"
	"strconv"
	"strings"

	"github.com/openvax/mhccurate/pkg/dataset"
	"github.com/openvax/mhccurate/pkg/logging"
	"github.com/openvax/mhccurate/pkg/mhcnames"
	"github.com/openvax/mhccurate/pkg/tabular"
)

// excludedIEDBAlleles are class-level labels that name no usable allele.
var excludedIEDBAlleles = []string{
	"HLA class I",
	"HLA class II",
}

// iedbColumns are the columns the loader reads from an mhc_ligand_full
// style export.
var iedbColumns = []string{
	"MHC allele class",
	"Allele Name",
	"Units",
	"Qualitative Measure",
	"Quantitative measurement",
	"Method/Technique",
	"Description",
	"Authors",
}

// IEDB loads IEDB MHC ligand exports. The filter pipeline is strictly
// ordered: class I selection, allele-name exclusions, normalization,
// the quantitative/qualitative split on Units, the optional mass-spec
// gate, the qualitative affinity mapping, and only then the peptide
// restriction and provenance annotation over the recombined rows.
// Reordering these steps changes the result.
type IEDB struct {
	normalizer      mhcnames.Normalizer
	includeMassSpec bool
}

// NewIEDB creates an IEDB loader. When includeMassSpec is false,
// qualitative rows whose assay method mentions mass spectrometry are
// dropped (they re-enter the training set through the dedicated
// mass-spec sources instead).
func NewIEDB(n mhcnames.Normalizer, includeMassSpec bool) *IEDB {
	return &IEDB{normalizer: n, includeMassSpec: includeMassSpec}
}

// ID returns the identity of this source.
func (l *IEDB) ID() ID {
	return IEDBID
}

// iedbRow carries one surviving row through the pipeline stages.
type iedbRow struct {
	idx        int // row index into the table
	allele     string
	value      float64
	inequality dataset.Inequality
	mtype      dataset.MeasurementType
}

// Load reads one IEDB CSV export. The first line of the file is a
// grouping line, not the header.
func (l *IEDB) Load(ctx context.Context, path string) (dataset.Records, *Report, error) {
	log := logging.Ctx(ctx)
	report := NewReport(IEDBID, path)

	tbl, err := tabular.ReadFile(path, tabular.WithSkipLines(1))
	if err != nil {
		return nil, nil, err
	}
	if err := tbl.Require(iedbColumns...); err != nil {
		return nil, nil, err
	}

	report.RowsRead = tbl.Len()
	log.Info().Str("path", path).Int("rows", tbl.Len()).Msg("Loaded iedb data")

	// Class I only.
	rows := make([]iedbRow, 0, tbl.Len())
	for i := 0; i < tbl.Len(); i++ {
		class := strings.ToUpper(strings.TrimSpace(tbl.Field(i, "MHC allele class")))
		if class == "I" {
			rows = append(rows, iedbRow{idx: i})
		}
	}
	report.Drop("non-class-i", tbl.Len()-len(rows))
	log.Info().Int("rows", len(rows)).Msg("Selected class I")

	// Known unusable allele names.
	rows, dropped := l.filterAlleleNames(tbl, rows)
	report.Drop("excluded-allele-name", dropped)

	// Normalize alleles, dropping unparseable names.
	kept := rows[:0]
	for _, row := range rows {
		res := l.normalizer.Normalize(tbl.Field(row.idx, "Allele Name"))
		if res.Unparseable() {
			report.Unparseable(res.Raw())
			continue
		}
		row.allele = res.String()
		kept = append(kept, row)
	}
	report.Drop("unparseable-allele", len(rows)-len(kept))
	rows = kept
	if len(report.UnparseableAlleles) > 0 {
		log.Warn().
			Strs("alleles", report.UnparseableAlleles).
			Msg("Dropping un-parseable alleles")
	}

	// Split on Units. Quantitative readings take their value directly
	// from the measurement column; a value that fails to parse stays
	// missing and falls out at the final cleaning step.
	var quantitative, qualitative []iedbRow
	for _, row := range rows {
		if tbl.Field(row.idx, "Units") == "nM" {
			row.mtype = dataset.Quantitative
			row.inequality = dataset.Equal
			row.value = parseValue(tbl.Field(row.idx, "Quantitative measurement"))
			quantitative = append(quantitative, row)
		} else {
			row.mtype = dataset.Qualitative
			qualitative = append(qualitative, row)
		}
	}
	log.Info().
		Int("quantitative", len(quantitative)).
		Int("qualitative", len(qualitative)).
		Msg("Split measurements on units")

	if !l.includeMassSpec {
		kept := qualitative[:0]
		for _, row := range qualitative {
			if strings.Contains(tbl.Field(row.idx, "Method/Technique"), "mass spec") {
				continue
			}
			kept = append(kept, row)
		}
		report.Drop("mass-spec", len(qualitative)-len(kept))
		qualitative = kept
	} else {
		report.Drop("mass-spec", 0)
	}

	// Map qualitative categories to censored affinities. Unmapped
	// categories yield missing values, removed later by the final
	// cleaning step.
	for i, row := range qualitative {
		aff, ok := dataset.QualitativeAffinities[tbl.Field(row.idx, "Qualitative Measure")]
		if ok {
			qualitative[i].value = aff.Value
			qualitative[i].inequality = aff.Inequality
		} else {
			qualitative[i].value = math.NaN()
			qualitative[i].inequality = ""
		}
	}

	combined := append(quantitative, qualitative...)

	// Restrict to valid peptides.
	records := make(dataset.Records, 0, len(combined))
	invalidPeptides := 0
	for _, row := range combined {
		peptide := strings.TrimSpace(tbl.Field(row.idx, "Description"))
		if !dataset.ValidPeptide(peptide) {
			invalidPeptides++
			continue
		}
		method := tbl.Field(row.idx, "Method/Technique")
		records = append(records, dataset.Measurement{
			Allele:         row.allele,
			OriginalAllele: tbl.Field(row.idx, "Allele Name"),
			Peptide:        peptide,
			Value:          row.value,
			Inequality:     row.inequality,
			Type:           row.mtype,
			Source:         lastAuthor(tbl.Field(row.idx, "Authors")) + " - " + method,
		})
	}
	report.Drop("invalid-peptide", invalidPeptides)
	log.Info().Int("rows", len(records)).Msg("Subselected to valid peptides")

	deduped := records.DedupRows()
	report.Drop("duplicate-row", len(records)-len(deduped))
	report.RowsKept = len(deduped)
	log.Info().Int("rows", len(deduped)).Msg("IEDB data now")

	return deduped, report, nil
}

// filterAlleleNames drops rows whose allele name is a bare class label
// or names a mutant or CD1 molecule.
func (l *IEDB) filterAlleleNames(tbl *tabular.Table, rows []iedbRow) ([]iedbRow, int) {
	kept := rows[:0]
	for _, row := range rows {
		name := tbl.Field(row.idx, "Allele Name")
		if excludedAlleleName(name) {
			continue
		}
		kept = append(kept, row)
	}
	return kept, len(rows) - len(kept)
}

func excludedAlleleName(name string) bool {
	for _, excluded := range excludedIEDBAlleles {
		if name == excluded {
			return true
		}
	}
	return strings.Contains(name, "mutant") || strings.Contains(name, "CD1")
}

// parseValue parses a numeric cell, mapping failures to missing.
func parseValue(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// lastAuthor extracts the last author's family name from an IEDB
// Authors cell: the last ";"-separated author, the last ","-separated
// segment of that, the last whitespace-separated token of that, with
// any "*" markers stripped.
func lastAuthor(authors string) string {
	s := authors
	if i := strings.LastIndex(s, ";"); i >= 0 {
		s = s[i+1:]
	}
	if i := strings.LastIndex(s, ","); i >= 0 {
		s = s[i+1:]
	}
	if i := strings.LastIndex(s, " "); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSpace(s)
	return strings.ReplaceAll(s, "*", "")
}

package cmd

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gonum.org/v1/gonum/stat"

	"github.com/openvax/mhccurate/pkg/dataset"
	"github.com/openvax/mhccurate/pkg/tabular"
)

// statsCmd summarizes a previously curated training table.
var statsCmd = &cobra.Command{
	Use:   "stats CSV",
	Short: "Summarize a curated training table",
	Long: `Summarize a curated training table: row counts per measurement type
and source, distinct alleles and peptides, and the affinity distribution.`,
	Args: cobra.ExactArgs(1),
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	tbl, err := tabular.ReadFile(args[0])
	if err != nil {
		return err
	}
	if err := tbl.Require(dataset.Columns...); err != nil {
		return err
	}

	alleles := map[string]struct{}{}
	peptides := map[string]struct{}{}
	types := map[string]int{}
	srcs := map[string]int{}
	values := make([]float64, 0, tbl.Len())

	for i := 0; i < tbl.Len(); i++ {
		alleles[tbl.Field(i, "allele")] = struct{}{}
		peptides[tbl.Field(i, "peptide")] = struct{}{}
		types[tbl.Field(i, "measurement_type")]++
		srcs[tbl.Field(i, "measurement_source")]++
		if v, err := strconv.ParseFloat(tbl.Field(i, "measurement_value"), 64); err == nil {
			values = append(values, v)
		}
	}

	out := cmd.OutOrStdout()
	title := cases.Title(language.English)

	fmt.Fprintf(out, "Rows: %d\n", tbl.Len())
	fmt.Fprintf(out, "Distinct alleles: %d\n", len(alleles))
	fmt.Fprintf(out, "Distinct peptides: %d\n", len(peptides))

	fmt.Fprintf(out, "\nMeasurement types:\n")
	for _, name := range sortedKeys(types) {
		fmt.Fprintf(out, "  %-14s %d\n", title.String(name), types[name])
	}

	fmt.Fprintf(out, "\nSources:\n")
	for _, name := range keysByCount(srcs) {
		fmt.Fprintf(out, "  %-40s %d\n", name, srcs[name])
	}

	if len(values) > 0 {
		sort.Float64s(values)
		fmt.Fprintf(out, "\nAffinity (nM):\n")
		fmt.Fprintf(out, "  geometric mean: %.1f\n", stat.GeometricMean(values, nil))
		fmt.Fprintf(out, "  quartiles: %.1f / %.1f / %.1f\n",
			stat.Quantile(0.25, stat.Empirical, values, nil),
			stat.Quantile(0.50, stat.Empirical, values, nil),
			stat.Quantile(0.75, stat.Empirical, values, nil))
	}

	return nil
}

// sortedKeys returns map keys in lexical order.
func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// keysByCount returns map keys ordered by descending count, ties lexical.
func keysByCount(m map[string]int) []string {
	keys := sortedKeys(m)
	sort.SliceStable(keys, func(i, j int) bool {
		return m[keys[i]] > m[keys[j]]
	})
	return keys
}

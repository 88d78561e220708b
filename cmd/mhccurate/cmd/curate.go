package cmd

import (
	"os"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/openvax/mhccurate/pkg/constants"
	"github.com/openvax/mhccurate/pkg/curator"
	"github.com/openvax/mhccurate/pkg/errors"
	"github.com/openvax/mhccurate/pkg/logging"
	"github.com/openvax/mhccurate/pkg/tabular"
)

// curateFlags holds the pipeline flag values.
type curateFlags struct {
	kim2014             []string
	iedb                []string
	systemhcAtlas       []string
	abelinMassSpec      []string
	includeIEDBMassSpec bool
	minProbability      float64
	outCSV              string
	reportPath          string
}

var curation curateFlags

// addCurateFlags registers the pipeline flags on the root command.
func addCurateFlags(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&curation.kim2014, "data-kim2014", nil,
		"Path to Kim 2014-style affinity data (repeatable)")
	cmd.Flags().StringArrayVar(&curation.iedb, "data-iedb", nil,
		"Path to IEDB-style affinity data, e.g. mhc_ligand_full.csv (repeatable)")
	cmd.Flags().StringArrayVar(&curation.systemhcAtlas, "data-systemhc-atlas", nil,
		"Path to SysteMHC Atlas-style mass-spec data (repeatable)")
	cmd.Flags().StringArrayVar(&curation.abelinMassSpec, "data-abelin-mass-spec", nil,
		"Path to Abelin Immunity 2017 mass-spec hits (repeatable)")
	cmd.Flags().BoolVar(&curation.includeIEDBMassSpec, "include-iedb-mass-spec", constants.DefaultIncludeIEDBMassSpec,
		"Include mass-spec observations in IEDB")
	cmd.Flags().Float64Var(&curation.minProbability, "min-mass-spec-probability", constants.DefaultMinMassSpecProbability,
		"Minimum SysteMHC Atlas search probability to keep a hit")
	cmd.Flags().StringVar(&curation.outCSV, "out-csv", "",
		"Result file (required)")
	cmd.Flags().StringVar(&curation.reportPath, "report", "",
		"Optional path for a YAML diagnostics report")

	if err := viper.BindPFlag("min-mass-spec-probability",
		cmd.Flags().Lookup("min-mass-spec-probability")); err != nil {
		panic("Failed to bind min-mass-spec-probability flag: " + err.Error())
	}
}

// runCurate executes the full curation pipeline.
func runCurate(cmd *cobra.Command, _ []string) error {
	if curation.outCSV == "" {
		return errors.NewValidationError("out-csv", "", "result file is required")
	}

	minProbability := viper.GetFloat64("min-mass-spec-probability")
	if minProbability < 0 || minProbability > 1 {
		return errors.NewValidationError("min-mass-spec-probability", minProbability,
			"must be in [0, 1]")
	}

	log := logging.Default()
	ctx := logging.WithLogger(cmd.Context(), log)

	c := curator.New(
		curator.WithIncludeIEDBMassSpec(curation.includeIEDBMassSpec),
		curator.WithMinMassSpecProbability(minProbability),
	)

	result, err := c.Run(ctx, curator.Inputs{
		IEDB:           curation.iedb,
		Kim2014:        curation.kim2014,
		SystemHCAtlas:  curation.systemhcAtlas,
		AbelinMassSpec: curation.abelinMassSpec,
	})
	if err != nil {
		log.Error().Err(err).Msg("Curation failed")
		return err
	}

	if err := tabular.WriteMeasurementsFile(curation.outCSV, result.Records); err != nil {
		log.Error().Err(err).Msg("Writing result failed")
		return err
	}
	log.Info().
		Str("path", curation.outCSV).
		Int("rows", len(result.Records)).
		Msg("Wrote curated training data")

	if curation.reportPath != "" {
		if err := writeReport(curation.reportPath, result); err != nil {
			log.Error().Err(err).Msg("Writing report failed")
			return err
		}
		log.Info().Str("path", curation.reportPath).Msg("Wrote diagnostics report")
	}

	return nil
}

// writeReport serializes the diagnostics report as YAML.
func writeReport(path string, result *curator.Result) error {
	data, err := yaml.Marshal(result)
	if err != nil {
		return errors.WrapParse("yaml", path, err)
	}
	if err := os.WriteFile(path, data, constants.FilePermissions); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}

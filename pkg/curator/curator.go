// Package curator combines the per-source loader outputs into the final
// training table. Source precedence is an explicit ordered list: IEDB,
// then Kim2014, then SysteMHC Atlas, then Abelin mass-spec. Precedence
// is enforced two ways: Kim2014 (allele, peptide) pairs already covered
// by IEDB are suppressed outright, and the global dedup keeps the first
// occurrence in precedence order whenever values coincide.
package curator

import (
	"context"

	"github.com/openvax/mhccurate/pkg/dataset"
	"github.com/openvax/mhccurate/pkg/errors"
	"github.com/openvax/mhccurate/pkg/logging"
	"github.com/openvax/mhccurate/pkg/sources"
)

// Inputs lists the raw data files per source, each in CLI order.
type Inputs struct {
	IEDB           []string
	Kim2014        []string
	SystemHCAtlas  []string
	AbelinMassSpec []string
}

// Empty reports whether no input files were given.
func (in Inputs) Empty() bool {
	return len(in.IEDB) == 0 &&
		len(in.Kim2014) == 0 &&
		len(in.SystemHCAtlas) == 0 &&
		len(in.AbelinMassSpec) == 0
}

// MergeStats summarizes the cross-source merge for the diagnostics report.
type MergeStats struct {
	Loaded            int `yaml:"loaded" json:"loaded"`
	Kim2014Suppressed int `yaml:"kim2014_suppressed" json:"kim2014_suppressed"`
	DuplicatesRemoved int `yaml:"duplicates_removed" json:"duplicates_removed"`
	IncompleteDropped int `yaml:"incomplete_dropped" json:"incomplete_dropped"`
	Final             int `yaml:"final" json:"final"`
}

// Result is the curated table plus the structured diagnostics gathered
// along the way.
type Result struct {
	Records dataset.Records   `yaml:"-" json:"-"`
	Sources []*sources.Report `yaml:"sources" json:"sources"`
	Merge   MergeStats        `yaml:"merge" json:"merge"`
}

// Curator runs the full curation pipeline: load every file, assemble in
// precedence order, cross-filter, dedup, sort and clean.
type Curator struct {
	options *options
}

// New creates a Curator with the given options.
func New(opts ...Option) *Curator {
	return &Curator{options: newOptions(opts...)}
}

// Run executes the pipeline over the given inputs. Loading is
// sequential and deterministic; the whole run is one pass with no
// shared state between loaders. Any I/O or schema error aborts the run
// before any output could be derived.
func (c *Curator) Run(ctx context.Context, in Inputs) (*Result, error) {
	if in.Empty() {
		return nil, errors.NewValidationError("inputs", in, "no input files given")
	}

	log := logging.Ctx(ctx)
	result := &Result{}

	iedb := sources.NewIEDB(c.options.normalizer, c.options.includeIEDBMassSpec)
	var iedbRecords dataset.Records
	for _, path := range in.IEDB {
		records, report, err := iedb.Load(ctx, path)
		if err != nil {
			return nil, err
		}
		iedbRecords = append(iedbRecords, records...)
		result.Sources = append(result.Sources, report)
	}

	combined := make(dataset.Records, 0, len(iedbRecords))
	combined = append(combined, iedbRecords...)

	// IEDB has precedence over Kim2014 for the same (allele, peptide).
	iedbPairs := iedbRecords.Pairs()
	kim := sources.NewKim2014(c.options.normalizer)
	for _, path := range in.Kim2014 {
		records, report, err := kim.Load(ctx, path)
		if err != nil {
			return nil, err
		}
		if len(iedbPairs) > 0 {
			kept := make(dataset.Records, 0, len(records))
			for _, m := range records {
				if _, ok := iedbPairs[m.Pair()]; ok {
					result.Merge.Kim2014Suppressed++
					continue
				}
				kept = append(kept, m)
			}
			log.Info().
				Int("suppressed", len(records)-len(kept)).
				Str("path", path).
				Msg("Dropping kim2014 data present in IEDB")
			records = kept
		}
		combined = append(combined, records...)
		result.Sources = append(result.Sources, report)
	}

	systemhc := sources.NewSystemHCAtlas(c.options.normalizer, c.options.minMassSpecProbability)
	for _, path := range in.SystemHCAtlas {
		records, report, err := systemhc.Load(ctx, path)
		if err != nil {
			return nil, err
		}
		combined = append(combined, records...)
		result.Sources = append(result.Sources, report)
	}

	abelin := sources.NewAbelin(c.options.normalizer)
	for _, path := range in.AbelinMassSpec {
		records, report, err := abelin.Load(ctx, path)
		if err != nil {
			return nil, err
		}
		combined = append(combined, records...)
		result.Sources = append(result.Sources, report)
	}

	result.Merge.Loaded = len(combined)
	log.Info().Int("rows", len(combined)).Msg("Combined data")

	deduped := combined.DedupByTriple()
	result.Merge.DuplicatesRemoved = len(combined) - len(deduped)
	log.Info().Int("rows", len(deduped)).Msg("Removed combined duplicates")

	deduped.Sort()

	final := deduped.DropIncomplete()
	result.Merge.IncompleteDropped = len(deduped) - len(final)
	result.Merge.Final = len(final)
	log.Info().Int("rows", len(final)).Msg("Final combined data")

	result.Records = final
	return result, nil
}

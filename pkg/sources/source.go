// Package sources converts raw experimental data files into standardized
// measurement records. Each source has its own loader with its own filter
// pipeline; loaders share no state and each file is consumed in one pass.
//
// Example usage:
//
//	loader := sources.NewKim2014(mhcnames.New())
//	records, report, err := loader.Load(ctx, "bdata.2013.mhci.public.tsv")
//	if err != nil {
//	    log.Fatal().Err(err).Msg("load failed")
//	}
package sources

import (
	"context"
	"slices"

	"github.com/openvax/mhccurate/pkg/dataset"
)

// ID identifies a data source.
type ID string

// String returns the string representation of a source ID.
func (id ID) String() string {
	return string(id)
}

// Known source IDs, in merge precedence order.
const (
	IEDBID          ID = "iedb"
	Kim2014ID       ID = "kim2014"
	SystemHCAtlasID ID = "systemhc-atlas"
	AbelinID        ID = "abelin-mass-spec"
)

// IDs returns all source IDs in merge precedence order.
func IDs() []ID {
	return []ID{IEDBID, Kim2014ID, SystemHCAtlasID, AbelinID}
}

// IsValid returns true if the ID is one of the defined constants.
func (id ID) IsValid() bool {
	return slices.Contains(IDs(), id)
}

// Source loads one raw data file into standardized measurement records.
// Load returns the surviving records together with a Report describing
// what was dropped along the way. Unparseable allele names are reported
// and dropped; I/O and schema failures are returned as errors and abort
// the run.
type Source interface {
	// ID returns the identity of this source
	ID() ID

	// Load reads and filters one file
	Load(ctx context.Context, path string) (dataset.Records, *Report, error)
}

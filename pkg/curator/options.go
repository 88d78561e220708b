package curator

import (
	"github.com/openvax/mhccurate/pkg/constants"
	"github.com/openvax/mhccurate/pkg/mhcnames"
)

// options holds the configurable pieces of a pipeline run.
type options struct {
	normalizer             mhcnames.Normalizer
	includeIEDBMassSpec    bool
	minMassSpecProbability float64
}

func newOptions(opts ...Option) *options {
	o := &options{
		normalizer:             mhcnames.New(),
		includeIEDBMassSpec:    constants.DefaultIncludeIEDBMassSpec,
		minMassSpecProbability: constants.DefaultMinMassSpecProbability,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Option configures a Curator.
type Option func(*options)

// WithNormalizer overrides the allele normalizer.
func WithNormalizer(n mhcnames.Normalizer) Option {
	return func(o *options) {
		if n != nil {
			o.normalizer = n
		}
	}
}

// WithIncludeIEDBMassSpec keeps IEDB qualitative rows derived from mass
// spectrometry instead of dropping them.
func WithIncludeIEDBMassSpec(include bool) Option {
	return func(o *options) {
		o.includeIEDBMassSpec = include
	}
}

// WithMinMassSpecProbability sets the SysteMHC Atlas search probability
// threshold.
func WithMinMassSpecProbability(p float64) Option {
	return func(o *options) {
		o.minMassSpecProbability = p
	}
}

// Package mhcnames canonicalizes free-text MHC allele names.
// Experimental datasets spell the same allele many ways ("HLA-A*02:01",
// "HLA-A*0201", "A0201"); downstream grouping requires one canonical
// form per allele. Normalization is a total function: names that cannot
// be parsed are carried as an explicit Unparseable result rather than
// an error, and render as the Unknown sentinel.
package mhcnames

import (
	"fmt"
	"regexp"
	"strings"
)

// Unknown is the sentinel string form of an unparseable allele name.
// The curation pipeline treats it as an unconditional drop signal.
const Unknown = "UNKNOWN"

// Result is the outcome of normalizing one raw allele name. It is either
// canonical or unparseable; an unparseable result retains the raw text
// for diagnostics.
type Result struct {
	name string
	raw  string
}

// Canonical returns the canonical allele name and true when parsing succeeded.
func (r Result) Canonical() (string, bool) {
	return r.name, r.name != ""
}

// Unparseable reports whether the raw name could not be parsed.
func (r Result) Unparseable() bool {
	return r.name == ""
}

// Raw returns the original input text.
func (r Result) Raw() string {
	return r.raw
}

// String returns the canonical name, or Unknown for an unparseable result.
func (r Result) String() string {
	if r.name == "" {
		return Unknown
	}
	return r.name
}

// Normalizer canonicalizes allele names. Implementations must be total:
// any input yields a Result, never an error.
type Normalizer interface {
	Normalize(raw string) Result
}

// New returns the default Normalizer covering human (HLA), mouse (H-2)
// and other four-digit class I nomenclatures.
func New() Normalizer {
	return &normalizer{}
}

type normalizer struct{}

var (
	// H-2-Kb, H2-Db, "H-2 Kb"
	mouseRe = regexp.MustCompile(`^[Hh]-?2[-\s]([A-Za-z])([A-Za-z])$`)

	// PREFIX-GENE*GG:PP with optional prefix, star and colon:
	// HLA-A*02:01, HLA-A*0201, Mamu-A*01:01, SLA-1*04:01, A0201
	classIRe = regexp.MustCompile(`^(?:([A-Za-z]{1,4})-)?([A-Za-z0-9][A-Za-z]?[0-9]{0,2})\*?([0-9]{2,3}):?([0-9]{2,3})$`)
)

// speciesPrefixes maps lowercase species prefixes to canonical capitalization.
var speciesPrefixes = map[string]string{
	"hla":  "HLA",
	"mamu": "Mamu",
	"patr": "Patr",
	"gogo": "Gogo",
	"mane": "Mane",
	"sla":  "SLA",
	"bola": "BoLA",
	"dla":  "DLA",
	"eqca": "Eqca",
}

// humanGenes are the classical and non-classical HLA class I genes that
// may appear with no species prefix at all.
var humanGenes = map[string]bool{
	"A": true, "B": true, "C": true, "E": true, "F": true, "G": true,
}

// Normalize parses raw into canonical form. It never returns an error;
// unparseable names yield a Result whose String is Unknown.
func (n *normalizer) Normalize(raw string) Result {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Result{raw: raw}
	}

	if m := mouseRe.FindStringSubmatch(s); m != nil {
		name := fmt.Sprintf("H-2-%s%s", strings.ToUpper(m[1]), strings.ToLower(m[2]))
		return Result{name: name, raw: raw}
	}

	m := classIRe.FindStringSubmatch(s)
	if m == nil {
		return Result{raw: raw}
	}
	prefix, gene, group, protein := m[1], strings.ToUpper(m[2]), m[3], m[4]

	if prefix == "" {
		// Bare gene names are only unambiguous for human class I.
		if !humanGenes[gene] {
			return Result{raw: raw}
		}
		prefix = "HLA"
	} else {
		canonical, ok := speciesPrefixes[strings.ToLower(prefix)]
		if !ok {
			return Result{raw: raw}
		}
		prefix = canonical
		if prefix == "HLA" && !humanGenes[gene] {
			return Result{raw: raw}
		}
	}

	return Result{
		name: fmt.Sprintf("%s-%s*%s:%s", prefix, gene, group, protein),
		raw:  raw,
	}
}

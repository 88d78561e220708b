package dataset

import "sort"

// Records is an ordered list of measurements. Order is significant:
// dedup operations keep the first occurrence, so list order encodes
// source precedence.
type Records []Measurement

// Pairs returns the set of (allele, peptide) keys present.
func (rs Records) Pairs() map[Pair]struct{} {
	pairs := make(map[Pair]struct{}, len(rs))
	for _, m := range rs {
		pairs[m.Pair()] = struct{}{}
	}
	return pairs
}

// DedupByPair removes later records sharing an (allele, peptide) pair,
// keeping the first occurrence.
func (rs Records) DedupByPair() Records {
	seen := make(map[Pair]struct{}, len(rs))
	out := make(Records, 0, len(rs))
	for _, m := range rs {
		if _, ok := seen[m.Pair()]; ok {
			continue
		}
		seen[m.Pair()] = struct{}{}
		out = append(out, m)
	}
	return out
}

// DedupByTriple removes later records sharing the same
// (allele, peptide, measurement_value), keeping the first occurrence.
func (rs Records) DedupByTriple() Records {
	seen := make(map[string]struct{}, len(rs))
	out := make(Records, 0, len(rs))
	for _, m := range rs {
		key := m.tripleKey()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, m)
	}
	return out
}

// DedupRows removes exact duplicates across all seven columns, keeping
// the first occurrence.
func (rs Records) DedupRows() Records {
	seen := make(map[string]struct{}, len(rs))
	out := make(Records, 0, len(rs))
	for _, m := range rs {
		key := m.rowKey()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, m)
	}
	return out
}

// DropIncomplete removes records with a missing value in any output column.
func (rs Records) DropIncomplete() Records {
	out := make(Records, 0, len(rs))
	for _, m := range rs {
		if m.Complete() {
			out = append(out, m)
		}
	}
	return out
}

// Sort orders records ascending by (allele, peptide) using ordinary
// string comparison. The sort is stable so ties preserve precedence order.
func (rs Records) Sort() {
	sort.SliceStable(rs, func(i, j int) bool {
		if rs[i].Allele != rs[j].Allele {
			return rs[i].Allele < rs[j].Allele
		}
		return rs[i].Peptide < rs[j].Peptide
	})
}

package sctp

// MarkDup records tsn as received more than once so it is reported in the
// Duplicate TSN list of the next SACK. Only the first [MaxDupTSNs] duplicates
// since the last SACK are kept.
func (m *TSNMap) MarkDup(tsn TSN) {
	if m.numDups < MaxDupTSNs {
		m.dups[m.numDups] = tsn
		m.numDups++
	}
}

// CheckAndRecord classifies tsn like [TSNMap.Check] and records it as
// duplicate when it was already received. The map is otherwise unmodified.
func (m *TSNMap) CheckAndRecord(tsn TSN) Lookup {
	lookup := m.Check(tsn)
	if lookup == LookupSeen {
		m.MarkDup(tsn)
	}
	return lookup
}

// NumDupTSNs returns the amount of duplicate TSNs pending report.
func (m *TSNMap) NumDupTSNs() int { return int(m.numDups) }

// DupTSNs returns the duplicate TSNs pending report in order of arrival.
// The returned slice aliases the map and is valid until the next call to
// MarkDup, ResetDupTSNs or AppendSACK.
func (m *TSNMap) DupTSNs() []TSN { return m.dups[:m.numDups] }

// ResetDupTSNs drops all duplicate TSNs pending report.
func (m *TSNMap) ResetDupTSNs() { m.numDups = 0 }

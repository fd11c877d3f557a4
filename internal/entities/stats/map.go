package stats

import "sort"

// Map holds integer stat values. Equality is by key and value only.
type Map map[Stat]int

// Clone returns an independent copy. A nil map clones to an empty map.
func (m Map) Clone() Map {
	out := make(Map, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Equal reports whether both maps hold the same keys and values
func (m Map) Equal(other Map) bool {
	if len(m) != len(other) {
		return false
	}
	for k, v := range m {
		ov, ok := other[k]
		if !ok || ov != v {
			return false
		}
	}
	return true
}

// Merge returns a copy of m updated with the values of other
func (m Map) Merge(other Map) Map {
	out := m.Clone()
	for k, v := range other {
		out[k] = v
	}
	return out
}

// Has reports whether the stat is present
func (m Map) Has(s Stat) bool {
	_, ok := m[s]
	return ok
}

// Keys returns the present stats in display order
func (m Map) Keys() []Stat {
	keys := make([]Stat, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		oi, iok := statOrder[keys[i]]
		oj, jok := statOrder[keys[j]]
		switch {
		case iok && jok:
			return oi < oj
		case iok != jok:
			return iok
		default:
			return keys[i] < keys[j]
		}
	})
	return keys
}

package pack

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"

	"github.com/KirkDiggler/mech-arsenal/internal/entities/stats"
)

// rawStats is a stat block as written in the feed: scalar values or
// [value, addon] pairs, keyed by feed names
type rawStats map[string]interface{}

type rawMeta struct {
	Key         string `json:"key" yaml:"key"`
	Name        string `json:"name,omitempty" yaml:"name,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

type rawPack struct {
	Version     string    `json:"version,omitempty" yaml:"version,omitempty"`
	Key         string    `json:"key,omitempty" yaml:"key,omitempty"`
	Name        string    `json:"name,omitempty" yaml:"name,omitempty"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Custom      bool      `json:"custom,omitempty" yaml:"custom,omitempty"`
	Config      *rawMeta  `json:"config,omitempty" yaml:"config,omitempty"`
	Powers      rawPowers `json:"powers,omitempty" yaml:"powers,omitempty"`
	Items       []rawItem `json:"items" yaml:"items"`
}

// rawPowers maps a bank name to cumulative power per level, keyed by tier
type rawPowers map[string]map[string][]int

// meta returns the pack identity, which v1 packs keep under "config"
func (p *rawPack) meta() rawMeta {
	if p.Config != nil && (p.Version == "" || p.Version == "1") {
		return *p.Config
	}
	return rawMeta{Key: p.Key, Name: p.Name, Description: p.Description}
}

type rawItem struct {
	ID             int      `json:"id" yaml:"id"`
	Name           string   `json:"name" yaml:"name"`
	Type           string   `json:"type" yaml:"type"`
	Element        string   `json:"element" yaml:"element"`
	TransformRange string   `json:"transform_range" yaml:"transform_range"`
	Tags           []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	PowerBank      string   `json:"power_bank,omitempty" yaml:"power_bank,omitempty"`

	Stats rawStats `json:"stats,omitempty" yaml:"stats,omitempty"`

	Common       rawStats `json:"common,omitempty" yaml:"common,omitempty"`
	MaxCommon    rawStats `json:"max_common,omitempty" yaml:"max_common,omitempty"`
	Rare         rawStats `json:"rare,omitempty" yaml:"rare,omitempty"`
	MaxRare      rawStats `json:"max_rare,omitempty" yaml:"max_rare,omitempty"`
	Epic         rawStats `json:"epic,omitempty" yaml:"epic,omitempty"`
	MaxEpic      rawStats `json:"max_epic,omitempty" yaml:"max_epic,omitempty"`
	Legendary    rawStats `json:"legendary,omitempty" yaml:"legendary,omitempty"`
	MaxLegendary rawStats `json:"max_legendary,omitempty" yaml:"max_legendary,omitempty"`
	Mythical     rawStats `json:"mythical,omitempty" yaml:"mythical,omitempty"`
	MaxMythical  rawStats `json:"max_mythical,omitempty" yaml:"max_mythical,omitempty"`
	Divine       rawStats `json:"divine,omitempty" yaml:"divine,omitempty"`
	MaxDivine    rawStats `json:"max_divine,omitempty" yaml:"max_divine,omitempty"`

	MaxLevels map[string]int                 `json:"max_levels,omitempty" yaml:"max_levels,omitempty"`
	Overrides map[string]map[string]rawStats `json:"overrides,omitempty" yaml:"overrides,omitempty"`
}

// blocks returns the base and max-level blocks of a tier
func (it *rawItem) blocks(t stats.Tier) (rawStats, rawStats) {
	switch t {
	case stats.Common:
		return it.Common, it.MaxCommon
	case stats.Rare:
		return it.Rare, it.MaxRare
	case stats.Epic:
		return it.Epic, it.MaxEpic
	case stats.Legendary:
		return it.Legendary, it.MaxLegendary
	case stats.Mythical:
		return it.Mythical, it.MaxMythical
	case stats.Divine:
		return it.Divine, it.MaxDivine
	default:
		return nil, nil
	}
}

// toStats converts a feed block, reporting bad keys and values under path.
// Null values mean "unknown" and are left out.
func (r rawStats) toStats(path string, p *problems) stats.Map {
	out := make(stats.Map, len(r))

	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := r[key]
		where := path + "." + key

		if stat, ok := scalarKeys[key]; ok {
			n, present, err := toInt(value)
			if err != nil {
				p.add(where, err.Error())
				continue
			}
			if present {
				out[stat] = n
			}
			continue
		}

		if pair, ok := pairKeys[key]; ok {
			list, ok := value.([]interface{})
			if !ok || len(list) != 2 {
				p.addf(where, "expected a [value, addon] pair, got %v", value)
				continue
			}
			for i, elem := range list {
				n, present, err := toInt(elem)
				if err != nil {
					p.addf(fmt.Sprintf("%s[%d]", where, i), "%s", err.Error())
					continue
				}
				if present {
					out[pair[i]] = n
				}
			}
			continue
		}

		p.add(where, "unknown stat")
	}
	return out
}

// toInt accepts the integer encodings produced by the JSON and YAML decoders
func toInt(v interface{}) (int, bool, error) {
	switch n := v.(type) {
	case nil:
		return 0, false, nil
	case int:
		return n, true, nil
	case int64:
		return int(n), true, nil
	case uint64:
		if n > math.MaxInt32 {
			return 0, false, fmt.Errorf("value %d out of range", n)
		}
		return int(n), true, nil
	case float64:
		if n != math.Trunc(n) {
			return 0, false, fmt.Errorf("expected an integer, got %v", n)
		}
		return int(n), true, nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false, fmt.Errorf("expected an integer, got %s", n)
		}
		return int(i), true, nil
	default:
		return 0, false, fmt.Errorf("expected an integer, got %v", v)
	}
}

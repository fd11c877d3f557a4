package stats_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/mech-arsenal/internal/entities/stats"
)

type StatsTestSuite struct {
	suite.Suite
}

func TestStatsSuite(t *testing.T) {
	suite.Run(t, new(StatsTestSuite))
}

func (s *StatsTestSuite) TestStatFromString() {
	stat, ok := stats.StatFromString("physical_damage")
	s.True(ok)
	s.Equal(stats.PhysicalDamage, stat)

	_, ok = stats.StatFromString("phyDmg")
	s.False(ok)

	s.Len(stats.AllStats(), 41)
	for _, st := range stats.AllStats() {
		s.True(st.IsValid(), st.String())
	}
}

func (s *StatsTestSuite) TestTierOrdering() {
	tiers := stats.AllTiers()
	for i := 1; i < len(tiers); i++ {
		s.Less(tiers[i-1], tiers[i])
	}
	s.False(stats.TierUnspecified.IsValid())
}

func (s *StatsTestSuite) TestTierParsing() {
	testCases := []struct {
		name     string
		input    string
		initial  bool
		expected stats.Tier
		ok       bool
	}{
		{name: "upper name", input: "LEGENDARY", expected: stats.Legendary, ok: true},
		{name: "lower name", input: "mythical", expected: stats.Mythical, ok: true},
		{name: "unknown name", input: "ancient", ok: false},
		{name: "initial", input: "L", initial: true, expected: stats.Legendary, ok: true},
		{name: "lower initial", input: "d", initial: true, expected: stats.Divine, ok: true},
		{name: "too long initial", input: "LM", initial: true, ok: false},
		{name: "unknown initial", input: "X", initial: true, ok: false},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			var (
				tier stats.Tier
				ok   bool
			)
			if tc.initial {
				tier, ok = stats.TierFromInitial(tc.input)
			} else {
				tier, ok = stats.TierFromString(tc.input)
			}
			s.Equal(tc.ok, ok)
			if tc.ok {
				s.Equal(tc.expected, tier)
			}
		})
	}
}

func (s *StatsTestSuite) TestTierText() {
	s.Equal("E", stats.Epic.Initial())
	s.Equal("epic", stats.Epic.Lower())

	data, err := json.Marshal(map[string]stats.Tier{"tier": stats.Rare})
	s.Require().NoError(err)
	s.JSONEq(`{"tier":"RARE"}`, string(data))

	var decoded map[string]stats.Tier
	s.Require().NoError(json.Unmarshal(data, &decoded))
	s.Equal(stats.Rare, decoded["tier"])

	s.Error(json.Unmarshal([]byte(`{"tier":"SHINY"}`), &decoded))
}

func (s *StatsTestSuite) TestMap() {
	m := stats.Map{stats.Range: 1, stats.Weight: 63, stats.PhysicalDamage: 103}

	clone := m.Clone()
	clone[stats.Weight] = 1
	s.Equal(63, m[stats.Weight])

	s.True(m.Equal(stats.Map{stats.Weight: 63, stats.PhysicalDamage: 103, stats.Range: 1}))
	s.False(m.Equal(stats.Map{stats.Weight: 63}))
	s.False(m.Equal(stats.Map{stats.Weight: 63, stats.PhysicalDamage: 104, stats.Range: 1}))

	merged := m.Merge(stats.Map{stats.PhysicalDamage: 154, stats.Push: 2})
	s.Equal(154, merged[stats.PhysicalDamage])
	s.Equal(2, merged[stats.Push])
	s.Equal(103, m[stats.PhysicalDamage])

	s.Equal([]stats.Stat{stats.Weight, stats.PhysicalDamage, stats.Range}, m.Keys())
	s.True(m.Has(stats.Range))
	s.False(m.Has(stats.Walk))

	var nilMap stats.Map
	s.NotNil(nilMap.Clone())
}

func (s *StatsTestSuite) TestDivRound() {
	testCases := []struct {
		num, den, want int
	}{
		{7, 2, 4},
		{5, 2, 2},
		{-5, 2, -2},
		{-7, 2, -4},
		{10, 3, 3},
		{11, 3, 4},
		{-11, 3, -4},
		{12, 4, 3},
		{0, 9, 0},
	}
	for _, tc := range testCases {
		s.Equal(tc.want, stats.DivRound(tc.num, tc.den), "%d/%d", tc.num, tc.den)
	}
}

package progression_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/mech-arsenal/internal/entities/stats"
	"github.com/KirkDiggler/mech-arsenal/internal/errors"
	"github.com/KirkDiggler/mech-arsenal/internal/progression"
)

type ChainTestSuite struct {
	suite.Suite
}

func TestChainSuite(t *testing.T) {
	suite.Run(t, new(ChainTestSuite))
}

func epicToDivine() []progression.StageSpec {
	return []progression.StageSpec{
		{
			Tier:     stats.Epic,
			Base:     stats.Map{stats.Weight: 40, stats.HitPoints: 100},
			Diff:     stats.Map{stats.HitPoints: 30},
			MaxLevel: 29,
		},
		{
			Tier:     stats.Legendary,
			Base:     stats.Map{stats.Weight: 40, stats.HitPoints: 140},
			Diff:     stats.Map{stats.HitPoints: 40},
			MaxLevel: 39,
		},
		{
			Tier:     stats.Mythical,
			Base:     stats.Map{stats.Weight: 40, stats.HitPoints: 190},
			Diff:     stats.Map{stats.HitPoints: 50},
			MaxLevel: 49,
		},
		{
			Tier: stats.Divine,
			Base: stats.Map{stats.Weight: 40, stats.HitPoints: 260},
		},
	}
}

func (s *ChainTestSuite) TestBuildChain() {
	head, err := progression.BuildChain(epicToDivine())
	s.Require().NoError(err)

	stages := head.Stages()
	s.Require().Len(stages, 4)
	s.Equal(stats.Epic, head.Tier())
	s.Equal(29, head.MaxLevel())
	s.False(head.IsTerminal())
	s.Equal(stages[1], head.Next())

	final := head.Final()
	s.Equal(stats.Divine, final.Tier())
	s.True(final.IsTerminal())
	s.Nil(final.Next())
	s.Equal(0, final.MaxLevel())
	s.IsType(&progression.Static{}, final.Stats())

	for i := 1; i < len(stages); i++ {
		s.Less(stages[i-1].Tier(), stages[i].Tier())
	}
}

func (s *ChainTestSuite) TestFindTier() {
	head, err := progression.BuildChain(epicToDivine())
	s.Require().NoError(err)

	mythical, err := head.FindTier(stats.Mythical)
	s.Require().NoError(err)
	s.Equal(stats.Mythical, mythical.Tier())

	_, err = head.FindTier(stats.Common)
	s.True(errors.Is(err, progression.ErrTierNotFound))

	// traversal only walks forward
	_, err = mythical.FindTier(stats.Epic)
	s.True(errors.Is(err, progression.ErrTierNotFound))
}

func (s *ChainTestSuite) TestBuildChainMalformed() {
	base := stats.Map{stats.Weight: 10, stats.Push: 1}

	testCases := []struct {
		name  string
		specs []progression.StageSpec
	}{
		{
			name: "empty chain",
		},
		{
			name: "tiers not increasing",
			specs: []progression.StageSpec{
				{Tier: stats.Epic, Base: base, MaxLevel: 29},
				{Tier: stats.Legendary, Base: base, MaxLevel: 39},
				{Tier: stats.Epic, Base: base},
			},
		},
		{
			name: "duplicate tier",
			specs: []progression.StageSpec{
				{Tier: stats.Rare, Base: base, MaxLevel: 19},
				{Tier: stats.Rare, Base: base},
			},
		},
		{
			name: "invalid tier",
			specs: []progression.StageSpec{
				{Base: base},
			},
		},
		{
			name: "diff key missing from base",
			specs: []progression.StageSpec{
				{Tier: stats.Rare, Base: base, Diff: stats.Map{stats.Pull: 1}, MaxLevel: 19},
			},
		},
		{
			name: "static stage with diff",
			specs: []progression.StageSpec{
				{Tier: stats.Divine, Base: base, Diff: stats.Map{stats.Push: 1}},
			},
		},
		{
			name: "negative max level",
			specs: []progression.StageSpec{
				{Tier: stats.Common, Base: base, MaxLevel: -1},
			},
		},
		{
			name: "override level out of range",
			specs: []progression.StageSpec{
				{
					Tier:      stats.Common,
					Base:      base,
					MaxLevel:  9,
					Overrides: map[int]stats.Map{10: {stats.Push: 2}},
				},
			},
		},
		{
			name: "power curve length differs from max level",
			specs: []progression.StageSpec{
				{Tier: stats.Common, Base: base, MaxLevel: 3, Power: []int{10, 20}},
			},
		},
		{
			name: "power curve not increasing",
			specs: []progression.StageSpec{
				{Tier: stats.Common, Base: base, MaxLevel: 3, Power: []int{10, 10, 30}},
			},
		},
		{
			name: "power curve starts at zero",
			specs: []progression.StageSpec{
				{Tier: stats.Common, Base: base, MaxLevel: 2, Power: []int{0, 5}},
			},
		},
		{
			name: "override stat missing from base",
			specs: []progression.StageSpec{
				{
					Tier:      stats.Common,
					Base:      base,
					MaxLevel:  9,
					Overrides: map[int]stats.Map{3: {stats.Pull: 2}},
				},
			},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			head, err := progression.BuildChain(tc.specs)
			s.Nil(head)
			s.True(errors.Is(err, progression.ErrMalformedChain), "got %v", err)
			s.Equal(errors.CodeInvalidArgument, errors.GetCode(err))
		})
	}
}

func (s *ChainTestSuite) TestOverridesWinOverInterpolation() {
	head, err := progression.BuildChain([]progression.StageSpec{
		{
			Tier:     stats.Legendary,
			Base:     stats.Map{stats.Weight: 63, stats.PhysicalDamage: 103},
			Diff:     stats.Map{stats.PhysicalDamage: 51},
			MaxLevel: 9,
			Overrides: map[int]stats.Map{
				4: {stats.PhysicalDamage: 130},
				7: {stats.Weight: 60},
			},
		},
	})
	s.Require().NoError(err)
	s.Equal([]int{4, 7}, head.OverrideLevels())

	at4, err := head.Resolve(4)
	s.Require().NoError(err)
	s.Equal(130, at4[stats.PhysicalDamage])
	s.Equal(63, at4[stats.Weight])

	raw, err := head.Stats().Resolve(4)
	s.Require().NoError(err)
	s.Equal(126, raw[stats.PhysicalDamage], "the bare snapshot only interpolates") // 103 + round(22.67)

	at7, err := head.Resolve(7)
	s.Require().NoError(err)
	s.Equal(60, at7[stats.Weight])
	s.Equal(143, at7[stats.PhysicalDamage]) // 103 + round(39.67)

	at5, err := head.Resolve(5)
	s.Require().NoError(err)
	s.Equal(131, at5[stats.PhysicalDamage]) // 103 + round(28.33)

	_, err = head.Resolve(10)
	s.True(errors.Is(err, progression.ErrInvalidLevel))
}

func (s *ChainTestSuite) TestSpecsAreCopied() {
	specs := epicToDivine()
	head, err := progression.BuildChain(specs)
	s.Require().NoError(err)

	specs[0].Base[stats.HitPoints] = 1
	got, err := head.Resolve(0)
	s.Require().NoError(err)
	s.Equal(100, got[stats.HitPoints])
}

func (s *ChainTestSuite) TestPowerCurve() {
	head, err := progression.BuildChain([]progression.StageSpec{
		{
			Tier:     stats.Rare,
			Base:     stats.Map{stats.Weight: 10, stats.Push: 1},
			Diff:     stats.Map{stats.Push: 4},
			MaxLevel: 4,
			Power:    []int{10, 30, 60, 100},
		},
		{Tier: stats.Epic, Base: stats.Map{stats.Weight: 10, stats.Push: 6}},
	})
	s.Require().NoError(err)

	s.True(head.HasPowerCurve())
	s.Equal(100, head.MaxPower())
	s.False(head.Next().HasPowerCurve())
	s.Equal(0, head.Next().MaxPower())
	s.Nil(head.Next().PowerCurve())

	levels := map[int]int{0: 0, 9: 0, 10: 1, 29: 1, 30: 2, 99: 3, 100: 4, 150: 4}
	for power, level := range levels {
		s.Equal(level, head.LevelForPower(power), "power %d", power)
	}

	s.Equal(0, head.PowerForLevel(0))
	s.Equal(30, head.PowerForLevel(2))
	s.Equal(100, head.PowerForLevel(7))

	curve := head.PowerCurve()
	curve[0] = 999
	s.Equal([]int{10, 30, 60, 100}, head.PowerCurve())
}

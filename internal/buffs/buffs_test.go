package buffs_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/mech-arsenal/internal/buffs"
	"github.com/KirkDiggler/mech-arsenal/internal/entities/stats"
	"github.com/KirkDiggler/mech-arsenal/internal/errors"
)

type BuffsTestSuite struct {
	suite.Suite
}

func TestBuffsSuite(t *testing.T) {
	suite.Run(t, new(BuffsTestSuite))
}

func (s *BuffsTestSuite) TestMaxLevels() {
	s.Equal(10, buffs.PhysicalDamage.MaxLevel())
	s.Equal(10, buffs.ElectricResistance.MaxLevel())
	s.Equal(11, buffs.TotalHP.MaxLevel())
	s.Equal(0, buffs.Category("titan_damage").MaxLevel())
	s.Len(buffs.AllCategories(), 14)

	maxed := buffs.Max()
	s.Equal(11, maxed[buffs.TotalHP])
	s.Equal(10, maxed[buffs.HeatCooling])
	s.NoError(maxed.Validate())
	s.False(maxed.IsZero())
	s.True(buffs.Levels{buffs.HeatDamage: 0}.IsZero())
}

func (s *BuffsTestSuite) TestModifier() {
	testCases := []struct {
		name     string
		category buffs.Category
		level    int
		value    int
		absolute bool
	}{
		{"damage", buffs.PhysicalDamage, 10, 20, false},
		{"resistance doubles", buffs.ExplosiveResistance, 4, 14, false},
		{"backfire shrinks", buffs.BackfireReduction, 10, -20, false},
		{"hit points are flat", buffs.TotalHP, 11, 350, true},
		{"level zero", buffs.HeatCapacity, 0, 0, false},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			value, absolute, err := tc.category.Modifier(tc.level)
			s.Require().NoError(err)
			s.Equal(tc.value, value)
			s.Equal(tc.absolute, absolute)
		})
	}

	_, _, err := buffs.PhysicalDamage.Modifier(11)
	s.True(errors.Is(err, buffs.ErrInvalidLevel))
	_, _, err = buffs.Category("titan_damage").Modifier(1)
	s.True(errors.Is(err, buffs.ErrUnknownCategory))
}

func (s *BuffsTestSuite) TestApply() {
	base := stats.Map{
		stats.Weight:              63,
		stats.PhysicalDamage:      154,
		stats.PhysicalDamageAddon: 15,
		stats.PhysicalResistance:  10,
		stats.Backfire:            25,
		stats.HitPoints:           300,
		stats.Regeneration:        13,
	}

	got, err := buffs.Apply(base, buffs.Max())
	s.Require().NoError(err)
	s.Equal(63, got[stats.Weight], "weight has no buff")
	s.Equal(185, got[stats.PhysicalDamage], "154 * 1.2 = 184.8")
	s.Equal(18, got[stats.PhysicalDamageAddon], "the addon end of the range moves too")
	s.Equal(14, got[stats.PhysicalResistance], "10 * 1.4")
	s.Equal(20, got[stats.Backfire], "25 * 0.8")
	s.Equal(300, got[stats.HitPoints], "hit points are skipped by default")
	s.Equal(16, got[stats.Regeneration], "13 * 1.2 = 15.6")
	s.Equal(154, base[stats.PhysicalDamage], "input is not modified")

	got, err = buffs.Apply(base, buffs.Max(), buffs.WithHitPoints())
	s.Require().NoError(err)
	s.Equal(650, got[stats.HitPoints])
}

func (s *BuffsTestSuite) TestApplyRoundsHalfToEven() {
	// 50 * 1.01 = 50.5 and 150 * 1.01 = 151.5
	got, err := buffs.Apply(
		stats.Map{stats.HeatDamage: 50, stats.EnergyDamage: 150},
		buffs.Levels{buffs.HeatDamage: 1, buffs.EnergyDamage: 1},
	)
	s.Require().NoError(err)
	s.Equal(50, got[stats.HeatDamage])
	s.Equal(152, got[stats.EnergyDamage])
}

func (s *BuffsTestSuite) TestApplyRejectsBadLevels() {
	testCases := []struct {
		name   string
		levels buffs.Levels
		want   error
	}{
		{"over max", buffs.Levels{buffs.PhysicalDamage: 11}, buffs.ErrInvalidLevel},
		{"negative", buffs.Levels{buffs.TotalHP: -1}, buffs.ErrInvalidLevel},
		{"unknown category", buffs.Levels{"titan_damage": 1}, buffs.ErrUnknownCategory},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			got, err := buffs.Apply(stats.Map{stats.PhysicalDamage: 10}, tc.levels)
			s.Nil(got)
			s.True(errors.Is(err, tc.want), "got %v", err)
		})
	}
}

func (s *BuffsTestSuite) TestCategoryFromString() {
	c, ok := buffs.CategoryFromString("heat_cooling")
	s.True(ok)
	s.Equal(buffs.HeatCooling, c)

	_, ok = buffs.CategoryFromString("cooling")
	s.False(ok)
}

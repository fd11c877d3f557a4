package progression_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/mech-arsenal/internal/entities/items"
	"github.com/KirkDiggler/mech-arsenal/internal/entities/stats"
	"github.com/KirkDiggler/mech-arsenal/internal/errors"
	"github.com/KirkDiggler/mech-arsenal/internal/progression"
)

type InstanceTestSuite struct {
	suite.Suite
	sword *progression.Definition
	legs  *progression.Definition
}

func TestInstanceSuite(t *testing.T) {
	suite.Run(t, new(InstanceTestSuite))
}

func (s *InstanceTestSuite) SetupTest() {
	var err error
	s.sword, err = progression.NewDefinition(progression.DefinitionInput{
		ID:      187,
		PackKey: "@Eneg",
		Name:    "Bulwark Cleaver",
		Type:    items.TypeSideWeapon,
		Element: items.ElementPhysical,
		Tags:    items.Tags{Premium: true, Melee: true, Sword: true},
		Stages: []progression.StageSpec{
			{
				Tier:     stats.Legendary,
				Base:     stats.Map{stats.Weight: 63, stats.PhysicalDamage: 103},
				Diff:     stats.Map{stats.PhysicalDamage: 51},
				MaxLevel: 9,
			},
			{
				Tier: stats.Mythical,
				Base: stats.Map{stats.Weight: 63, stats.PhysicalDamage: 154},
			},
		},
	})
	s.Require().NoError(err)

	s.legs, err = progression.NewDefinition(progression.DefinitionInput{
		ID:      12,
		PackKey: "@Eneg",
		Name:    "Strider",
		Type:    items.TypeLegs,
		Element: items.ElementPhysical,
		Stages:  epicToDivine()[:3],
	})
	s.Require().NoError(err)
}

func (s *InstanceTestSuite) TestScenario() {
	inst := progression.NewInstance(s.sword)
	s.Equal(stats.Legendary, inst.Tier())
	s.Equal(0, inst.Level())
	s.True(stats.Map{stats.Weight: 63, stats.PhysicalDamage: 103}.Equal(inst.CurrentStats()))

	s.Require().NoError(inst.LevelUp(9))
	s.Equal(stats.Legendary, inst.Tier())
	s.Equal(9, inst.Level())
	s.True(stats.Map{stats.Weight: 63, stats.PhysicalDamage: 154}.Equal(inst.CurrentStats()))

	s.Require().NoError(inst.Transform())
	s.Equal(stats.Mythical, inst.Tier())
	s.Equal(0, inst.Level())
	s.True(stats.Map{stats.Weight: 63, stats.PhysicalDamage: 154}.Equal(inst.CurrentStats()))

	err := inst.Transform()
	s.True(errors.Is(err, progression.ErrAlreadyMaxed))

	err = inst.LevelUp(1)
	s.True(errors.Is(err, progression.ErrLevelCapExceeded))

	s.Equal(stats.Mythical, inst.Tier())
	s.Equal(0, inst.Level())
	s.True(inst.IsMaxed())
}

func (s *InstanceTestSuite) TestLevelUpIsAtomic() {
	inst := progression.NewInstance(s.sword)
	s.Require().NoError(inst.LevelUp(4))

	testCases := []struct {
		name string
		by   int
		kind error
	}{
		{"zero", 0, progression.ErrInvalidLevel},
		{"negative", -2, progression.ErrInvalidLevel},
		{"past cap", 6, progression.ErrLevelCapExceeded},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := inst.LevelUp(tc.by)
			s.True(errors.Is(err, tc.kind), "got %v", err)
			s.Equal(4, inst.Level())
			s.Equal(stats.Legendary, inst.Tier())
		})
	}

	s.Require().NoError(inst.LevelUp(5))
	s.Equal(9, inst.Level())
}

func (s *InstanceTestSuite) TestTransformErrors() {
	inst := progression.NewInstance(s.sword)
	s.Require().NoError(inst.LevelUp(3))

	err := inst.Transform()
	s.True(errors.Is(err, progression.ErrNotFullyLeveled))
	s.False(errors.Is(err, progression.ErrAlreadyMaxed))
	s.Equal(stats.Legendary, inst.Tier())
	s.Equal(3, inst.Level())
	s.False(inst.CanTransform())

	s.Require().NoError(inst.LevelUp(6))
	s.True(inst.CanTransform())
}

// AlreadyMaxed is reported before NotFullyLeveled on a levelable final stage.
func (s *InstanceTestSuite) TestTerminalInterpolatedStage() {
	inst := progression.NewInstance(s.legs)
	for !inst.Stage().IsTerminal() {
		s.Require().NoError(inst.LevelUp(inst.Stage().MaxLevel()))
		s.Require().NoError(inst.Transform())
	}
	s.Equal(stats.Mythical, inst.Tier())
	s.Equal(49, inst.Stage().MaxLevel())
	s.False(inst.IsMaxed())

	err := inst.Transform()
	s.True(errors.Is(err, progression.ErrAlreadyMaxed))

	s.Require().NoError(inst.LevelUp(49))
	s.True(inst.IsMaxed())
	s.Equal(240, inst.CurrentStats()[stats.HitPoints])
	s.Equal("max", inst.DisplayLevel())
}

func (s *InstanceTestSuite) TestTransformVisitsEveryStageOnce() {
	for _, def := range []*progression.Definition{s.sword, s.legs} {
		inst := progression.NewInstance(def)
		visited := []stats.Tier{inst.Tier()}
		for {
			if gap := inst.Stage().MaxLevel() - inst.Level(); gap > 0 {
				s.Require().NoError(inst.LevelUp(gap), "level up %s", inst)
			}
			s.Require().True(errors.Is(inst.LevelUp(1), progression.ErrLevelCapExceeded))
			if err := inst.Transform(); err != nil {
				s.True(errors.Is(err, progression.ErrAlreadyMaxed))
				break
			}
			s.LessOrEqual(inst.Level(), inst.Stage().MaxLevel())
			visited = append(visited, inst.Tier())
		}

		var expected []stats.Tier
		for _, stage := range def.Stages() {
			expected = append(expected, stage.Tier())
		}
		s.Equal(expected, visited)
		s.Equal(def.FinalStage(), inst.Stage())

		maxed := progression.MaxedFrom(def)
		s.Equal(maxed.Stage(), inst.Stage())
		s.Equal(maxed.Level(), inst.Level())
		s.True(maxed.CurrentStats().Equal(inst.CurrentStats()))
	}
}

func (s *InstanceTestSuite) TestMaxedFrom() {
	maxed := progression.MaxedFrom(s.sword)
	s.Equal(stats.Mythical, maxed.Tier())
	s.Equal(0, maxed.Level())
	s.True(maxed.IsMaxed())
	s.Equal("[M] Bulwark Cleaver lvl max", maxed.String())
}

func (s *InstanceTestSuite) TestRestoreInstance() {
	inst, err := progression.RestoreInstance(s.legs, stats.Legendary, 12, "crimson")
	s.Require().NoError(err)
	s.Equal(stats.Legendary, inst.Tier())
	s.Equal(12, inst.Level())
	s.Equal("crimson", inst.Paint())
	s.Equal("[L] Strider lvl 13", inst.String())

	_, err = progression.RestoreInstance(s.legs, stats.Divine, 0, "")
	s.True(errors.Is(err, progression.ErrTierNotFound))

	_, err = progression.RestoreInstance(s.legs, stats.Epic, 30, "")
	s.True(errors.Is(err, progression.ErrInvalidLevel))

	_, err = progression.RestoreInstance(s.legs, stats.Epic, -1, "")
	s.True(errors.Is(err, progression.ErrInvalidLevel))
}

func (s *InstanceTestSuite) TestPaintAndDisplay() {
	inst := progression.NewInstance(s.sword)
	s.Equal("1", inst.DisplayLevel())
	s.Equal("[L] Bulwark Cleaver lvl 1", inst.String())

	inst.SetPaint("gold")
	s.Equal("gold", inst.Paint())
	s.Same(s.sword, inst.Definition())
}

func (s *InstanceTestSuite) TestCurrentStatsIsFresh() {
	inst := progression.NewInstance(s.sword)
	got := inst.CurrentStats()
	got[stats.Weight] = 0
	s.Equal(63, inst.CurrentStats()[stats.Weight])
}

func (s *InstanceTestSuite) poweredDrone() *progression.Definition {
	def, err := progression.NewDefinition(progression.DefinitionInput{
		ID:      41,
		PackKey: "@Eneg",
		Name:    "Volt Drone",
		Type:    items.TypeDrone,
		Element: items.ElementElectric,
		Stages: []progression.StageSpec{
			{
				Tier:     stats.Rare,
				Base:     stats.Map{stats.Weight: 20, stats.ElectricDamage: 30},
				Diff:     stats.Map{stats.ElectricDamage: 12},
				MaxLevel: 3,
				Power:    []int{100, 250, 450},
			},
			{
				Tier: stats.Epic,
				Base: stats.Map{stats.Weight: 20, stats.ElectricDamage: 48},
			},
		},
	})
	s.Require().NoError(err)
	return def
}

func (s *InstanceTestSuite) TestAddPower() {
	inst := progression.NewInstance(s.poweredDrone())
	s.Equal(450, inst.MaxPower())

	overflow, err := inst.AddPower(120)
	s.Require().NoError(err)
	s.Equal(0, overflow)
	s.Equal(120, inst.Power())
	s.Equal(1, inst.Level())

	overflow, err = inst.AddPower(129)
	s.Require().NoError(err)
	s.Equal(0, overflow)
	s.Equal(1, inst.Level())

	overflow, err = inst.AddPower(1000)
	s.Require().NoError(err)
	s.Equal(799, overflow)
	s.Equal(450, inst.Power())
	s.Equal(3, inst.Level())
	s.True(inst.CanTransform())
	s.True(stats.Map{stats.Weight: 20, stats.ElectricDamage: 42}.Equal(inst.CurrentStats()))

	_, err = inst.AddPower(1)
	s.True(errors.Is(err, progression.ErrMaxPower), "got %v", err)

	s.Require().NoError(inst.Transform())
	s.Equal(0, inst.Power())
	s.Equal(stats.Epic, inst.Tier())

	_, err = inst.AddPower(10)
	s.True(errors.Is(err, progression.ErrNoPowerCurve), "got %v", err)
}

func (s *InstanceTestSuite) TestAddPowerRejectsBadAmounts() {
	inst := progression.NewInstance(s.poweredDrone())

	for _, amount := range []int{0, -5} {
		_, err := inst.AddPower(amount)
		s.True(errors.Is(err, progression.ErrInvalidPower), "amount %d got %v", amount, err)
		s.Equal(errors.CodeOutOfRange, errors.GetCode(err))
	}
	s.Equal(0, inst.Power())

	_, err := progression.NewInstance(s.sword).AddPower(5)
	s.True(errors.Is(err, progression.ErrNoPowerCurve))
	s.Equal(errors.CodeFailedPrecondition, errors.GetCode(err))
}

func (s *InstanceTestSuite) TestLevelUpKeepsPowerInStep() {
	inst := progression.NewInstance(s.poweredDrone())
	s.Require().NoError(inst.LevelUp(2))
	s.Equal(250, inst.Power())

	overflow, err := inst.AddPower(200)
	s.Require().NoError(err)
	s.Equal(0, overflow)
	s.Equal(3, inst.Level())
}

func (s *InstanceTestSuite) TestRestorePower() {
	def := s.poweredDrone()

	testCases := []struct {
		name  string
		level int
		power int
		ok    bool
	}{
		{"start of level band", 1, 100, true},
		{"inside level band", 1, 249, true},
		{"level zero", 0, 99, true},
		{"below level band", 2, 120, false},
		{"above level band", 1, 250, false},
		{"past max", 3, 451, false},
		{"negative", 0, -1, false},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			inst, err := progression.RestoreInstance(def, stats.Rare, tc.level, "")
			s.Require().NoError(err)
			err = inst.RestorePower(tc.power)
			if tc.ok {
				s.NoError(err)
				s.Equal(tc.power, inst.Power())
				return
			}
			s.True(errors.Is(err, progression.ErrInvalidPower), "got %v", err)
			s.Equal(0, inst.Power())
		})
	}

	inst := progression.NewInstance(s.sword)
	s.NoError(inst.RestorePower(0))
	s.True(errors.Is(inst.RestorePower(3), progression.ErrInvalidPower))
}

func (s *InstanceTestSuite) TestMaxedFromFillsPower() {
	def, err := progression.NewDefinition(progression.DefinitionInput{
		ID:      42,
		PackKey: "@Eneg",
		Name:    "Spark",
		Type:    items.TypeDrone,
		Element: items.ElementElectric,
		Stages: []progression.StageSpec{
			{
				Tier:     stats.Rare,
				Base:     stats.Map{stats.Weight: 20, stats.ElectricDamage: 30},
				Diff:     stats.Map{stats.ElectricDamage: 12},
				MaxLevel: 2,
				Power:    []int{5, 15},
			},
		},
	})
	s.Require().NoError(err)

	maxed := progression.MaxedFrom(def)
	s.Equal(15, maxed.Power())
	s.True(maxed.IsMaxed())
}

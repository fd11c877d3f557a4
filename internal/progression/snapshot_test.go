package progression_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/mech-arsenal/internal/entities/stats"
	"github.com/KirkDiggler/mech-arsenal/internal/errors"
	"github.com/KirkDiggler/mech-arsenal/internal/progression"
)

type SnapshotTestSuite struct {
	suite.Suite
}

func TestSnapshotSuite(t *testing.T) {
	suite.Run(t, new(SnapshotTestSuite))
}

func (s *SnapshotTestSuite) TestStaticResolve() {
	base := stats.Map{stats.Weight: 63, stats.PhysicalDamage: 154}
	snap := progression.NewStatic(base)

	s.Equal(0, snap.MaxLevel())

	got, err := snap.Resolve(0)
	s.Require().NoError(err)
	s.True(base.Equal(got))

	got[stats.Weight] = 1
	again, err := snap.Resolve(0)
	s.Require().NoError(err)
	s.Equal(63, again[stats.Weight], "resolve must return a fresh map")

	base[stats.Weight] = 2
	s.Equal(63, snap.Base()[stats.Weight], "constructor must copy base")

	_, err = snap.Resolve(1)
	s.True(errors.Is(err, progression.ErrInvalidLevel))
}

func (s *SnapshotTestSuite) TestNewInterpolatedValidation() {
	testCases := []struct {
		name     string
		base     stats.Map
		diff     stats.Map
		maxLevel int
		wantErr  bool
	}{
		{
			name:     "valid",
			base:     stats.Map{stats.Weight: 63, stats.PhysicalDamage: 103},
			diff:     stats.Map{stats.PhysicalDamage: 51},
			maxLevel: 9,
		},
		{
			name:     "empty diff",
			base:     stats.Map{stats.Weight: 63},
			maxLevel: 3,
		},
		{
			name:     "diff key missing from base",
			base:     stats.Map{stats.Weight: 63},
			diff:     stats.Map{stats.HeatDamage: 4},
			maxLevel: 9,
			wantErr:  true,
		},
		{
			name:     "zero max level",
			base:     stats.Map{stats.Weight: 63},
			maxLevel: 0,
			wantErr:  true,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			snap, err := progression.NewInterpolated(tc.base, tc.diff, tc.maxLevel)
			if tc.wantErr {
				s.True(errors.Is(err, progression.ErrMalformedChain))
				s.Nil(snap)
				return
			}
			s.Require().NoError(err)
			s.Equal(tc.maxLevel, snap.MaxLevel())
		})
	}
}

func (s *SnapshotTestSuite) TestInterpolatedResolve() {
	snap, err := progression.NewInterpolated(
		stats.Map{stats.Weight: 63, stats.PhysicalDamage: 103},
		stats.Map{stats.PhysicalDamage: 51},
		9,
	)
	s.Require().NoError(err)

	testCases := []struct {
		level    int
		expected int
	}{
		{0, 103},
		{1, 109}, // 5.67 rounds up
		{3, 120},
		{4, 126}, // 22.67
		{8, 148}, // 45.33
		{9, 154},
	}

	for _, tc := range testCases {
		got, err := snap.Resolve(tc.level)
		s.Require().NoError(err)
		s.Equal(tc.expected, got[stats.PhysicalDamage], "level %d", tc.level)
		s.Equal(63, got[stats.Weight], "stats outside diff stay constant")
	}

	for _, level := range []int{-1, 10} {
		_, err := snap.Resolve(level)
		s.True(errors.Is(err, progression.ErrInvalidLevel), "level %d", level)
	}
}

func (s *SnapshotTestSuite) TestRoundHalfToEven() {
	testCases := []struct {
		name     string
		diff     int
		level    int
		maxLevel int
		expected int
	}{
		{"half rounds down to even", 1, 1, 2, 0},
		{"half rounds up to even", 3, 1, 2, 2},
		{"five halves", 5, 1, 2, 2},
		{"negative half to zero", -1, 1, 2, 0},
		{"negative half to even", -3, 1, 2, -2},
		{"negative above half", -5, 1, 3, -2},
		{"negative below half", -4, 1, 3, -1},
		{"exact", 10, 2, 4, 5},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			snap, err := progression.NewInterpolated(
				stats.Map{stats.Range: 100},
				stats.Map{stats.Range: tc.diff},
				tc.maxLevel,
			)
			s.Require().NoError(err)
			got, err := snap.Resolve(tc.level)
			s.Require().NoError(err)
			s.Equal(100+tc.expected, got[stats.Range])
		})
	}
}

// Endpoints are exact and values stay monotonic inside [base, base+diff].
func (s *SnapshotTestSuite) TestInterpolationProperties() {
	const base = 50
	for maxLevel := 1; maxLevel <= 49; maxLevel += 3 {
		for diff := -40; diff <= 40; diff += 7 {
			snap, err := progression.NewInterpolated(
				stats.Map{stats.HitPoints: base, stats.Weight: 10},
				stats.Map{stats.HitPoints: diff},
				maxLevel,
			)
			s.Require().NoError(err)

			start, err := snap.Resolve(0)
			s.Require().NoError(err)
			s.Equal(base, start[stats.HitPoints])

			end, err := snap.Resolve(maxLevel)
			s.Require().NoError(err)
			s.Equal(base+diff, end[stats.HitPoints])

			lo, hi := base, base+diff
			if diff < 0 {
				lo, hi = hi, lo
			}
			prev := start[stats.HitPoints]
			for level := 1; level <= maxLevel; level++ {
				got, err := snap.Resolve(level)
				s.Require().NoError(err)
				v := got[stats.HitPoints]
				if diff >= 0 {
					s.GreaterOrEqual(v, prev)
				} else {
					s.LessOrEqual(v, prev)
				}
				s.GreaterOrEqual(v, lo)
				s.LessOrEqual(v, hi)
				s.Equal(10, got[stats.Weight])
				prev = v
			}
		}
	}
}

func (s *SnapshotTestSuite) TestSnapshotVariants() {
	interp, err := progression.NewInterpolated(stats.Map{stats.Walk: 1}, nil, 2)
	s.Require().NoError(err)

	for _, snap := range []progression.Snapshot{progression.NewStatic(stats.Map{stats.Walk: 1}), interp} {
		switch v := snap.(type) {
		case *progression.Static:
			s.Equal(0, v.MaxLevel())
		case *progression.Interpolated:
			s.Empty(v.Diff())
			s.Equal(2, v.MaxLevel())
		default:
			s.Failf("unexpected snapshot", "%T", v)
		}
	}
}

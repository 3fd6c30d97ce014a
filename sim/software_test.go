package sim

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tycoon-sim/tycoon/sim/bounded"
	"github.com/tycoon-sim/tycoon/sim/calendar"
)

func TestNewSoftware_Defaults(t *testing.T) {
	s := NewSoftware(10, 20, 30, 40)

	assert.Equal(t, uint32(10), s.LinesOfCode())
	assert.Equal(t, uint32(20), s.AgeOfCode())
	assert.Equal(t, bounded.Percent(30), s.ComplexityOfCode())
	assert.Equal(t, uint32(40), s.CostOfService())
	assert.Equal(t, ProofOfConcept, s.Architecture())
	assert.Equal(t, Proprietary, s.MonetizationModel())
	assert.Equal(t, bounded.Max, s.Reliability())
	assert.Equal(t, calendar.New(2000, 1), s.LastReleaseYearWeek())
	assert.Zero(t, s.Customers())
	assert.Zero(t, s.ActiveUsers())
	assert.Zero(t, s.Releases())
	assert.Zero(t, s.TechnicalDebt())
}

func TestNewSoftware_InvalidComplexityPanics(t *testing.T) {
	assert.Panics(t, func() { NewSoftware(0, 0, bounded.Percent(101), 0) })
}

func TestSoftware_Lines(t *testing.T) {
	s := NewSoftware(0, 0, 0, 0)

	require.NoError(t, s.AddLines(100))
	assert.Equal(t, uint32(100), s.LinesOfCode())

	require.NoError(t, s.RemoveLines(50))
	assert.Equal(t, uint32(50), s.LinesOfCode())
}

func TestSoftware_RemoveLines_BelowZeroFails(t *testing.T) {
	s := NewSoftware(10, 0, 0, 0)

	err := s.RemoveLines(11)

	assert.ErrorIs(t, err, ErrInvariantViolation)
	assert.Equal(t, uint32(10), s.LinesOfCode(), "failed removal must not change lines")
}

func TestSoftware_Age(t *testing.T) {
	s := NewSoftware(0, 0, 0, 0)

	require.NoError(t, s.AddAge(100))

	assert.Equal(t, uint32(100), s.AgeOfCode())
}

func TestSoftware_AddLines_OverflowFails(t *testing.T) {
	tests := []struct {
		name      string
		start     uint32
		add       uint32
		wantErr   bool
		wantLines uint32
	}{
		{"exact fit at max", math.MaxUint32 - 10, 10, false, math.MaxUint32},
		{"one past max", math.MaxUint32 - 10, 11, true, math.MaxUint32 - 10},
		{"far past max", math.MaxUint32 - 10, 100, true, math.MaxUint32 - 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSoftware(tt.start, 0, 0, 0)

			err := s.AddLines(tt.add)

			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvariantViolation)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantLines, s.LinesOfCode())
		})
	}
}

func TestSoftware_AddAge_OverflowFails(t *testing.T) {
	s := NewSoftware(0, math.MaxUint32-1, 0, 0)

	require.NoError(t, s.AddAge(1))
	err := s.AddAge(1)

	assert.ErrorIs(t, err, ErrInvariantViolation)
	assert.Equal(t, uint32(math.MaxUint32), s.AgeOfCode(), "failed aging must not wrap")
}

func TestSoftware_Complexity(t *testing.T) {
	s := NewSoftware(0, 0, 0, 0)

	require.NoError(t, s.AddComplexity(100))
	assert.Equal(t, bounded.Percent(100), s.ComplexityOfCode())

	require.NoError(t, s.RemoveComplexity(50))
	assert.Equal(t, bounded.Percent(50), s.ComplexityOfCode())
}

func TestSoftware_Complexity_OutOfRangeFails(t *testing.T) {
	s := NewSoftware(0, 0, 40, 0)

	err := s.RemoveComplexity(41)
	assert.ErrorIs(t, err, ErrInvariantViolation)
	assert.ErrorIs(t, err, bounded.ErrOutOfRange)

	err = s.AddComplexity(61)
	assert.ErrorIs(t, err, ErrInvariantViolation)

	assert.Equal(t, bounded.Percent(40), s.ComplexityOfCode())
}

func TestSoftware_AddCustomers_B2C_IsOneToOne(t *testing.T) {
	s := NewSoftware(0, 0, 0, 0)

	require.NoError(t, s.AddCustomers(20, false))

	assert.Equal(t, uint32(20), s.Customers())
	assert.Equal(t, uint64(20), s.ActiveUsers())
}

func TestSoftware_AddCustomers_OverflowFails(t *testing.T) {
	// GIVEN a product already at the customer limit
	s := NewSoftware(0, 0, 0, 0)
	require.NoError(t, s.AddCustomers(math.MaxUint32, false))

	// WHEN more customers are added
	err := s.AddCustomers(5, false)

	// THEN the call fails and neither counter wraps
	assert.ErrorIs(t, err, ErrInvariantViolation)
	assert.Equal(t, uint32(math.MaxUint32), s.Customers())
	assert.Equal(t, uint64(math.MaxUint32), s.ActiveUsers())
}

func TestSoftware_AddCustomers_B2BOverflowDoesNotDraw(t *testing.T) {
	s := NewSoftware(0, 0, 0, 0, WithRNG(rand.New(rand.NewSource(3))))
	ref := rand.New(rand.NewSource(3))
	require.NoError(t, s.AddCustomers(math.MaxUint32, false))

	require.ErrorIs(t, s.AddCustomers(1, true), ErrInvariantViolation)
	require.NoError(t, s.RemoveCustomers(math.MaxUint32))
	require.NoError(t, s.AddCustomers(10, true))

	r1, r2 := ref.Float64(), ref.Float64()
	assert.Equal(t, uint64(float64(10)*r1*r2*20), s.ActiveUsers(), "rejected call must not consume draws")
}

func TestSoftware_AddCustomers_B2B_UsesTwoDraws(t *testing.T) {
	// GIVEN a software and a reference RNG with the same seed
	s := NewSoftware(0, 0, 0, 0, WithRNG(rand.New(rand.NewSource(7))))
	ref := rand.New(rand.NewSource(7))

	// WHEN B2B customers are added
	require.NoError(t, s.AddCustomers(50, true))

	// THEN active users follow count*r1*r2*20 truncated
	r1, r2 := ref.Float64(), ref.Float64()
	assert.Equal(t, uint32(50), s.Customers())
	assert.Equal(t, uint64(float64(50)*r1*r2*20), s.ActiveUsers())
}

func TestSoftware_AddCustomers_B2B_BoundedByTwentyPerCustomer(t *testing.T) {
	s := NewSoftware(0, 0, 0, 0, WithRNG(rand.New(rand.NewSource(1))))
	var prev uint64
	for i := 0; i < 200; i++ {
		require.NoError(t, s.AddCustomers(10, true))
		added := s.ActiveUsers() - prev
		if added >= 200 {
			t.Fatalf("call %d added %d active users for 10 customers, want < 200", i, added)
		}
		prev = s.ActiveUsers()
	}
	assert.Equal(t, uint32(2000), s.Customers())
}

func TestSoftware_AddCustomers_DeterministicPerSeed(t *testing.T) {
	run := func(seed int64) uint64 {
		rng := NewPartitionedRNG(NewSimulationKey(seed))
		s := NewSoftware(0, 0, 0, 0, WithRNG(rng.ForSubsystem(SubsystemCustomers)))
		for i := 0; i < 10; i++ {
			require.NoError(t, s.AddCustomers(100, true))
		}
		return s.ActiveUsers()
	}
	assert.Equal(t, run(99), run(99))
}

func TestSoftware_RemoveCustomers_NotMoreThanCustomersWipesAccount(t *testing.T) {
	s := NewSoftware(0, 0, 0, 0)
	require.NoError(t, s.AddCustomers(20, false))

	require.NoError(t, s.RemoveCustomers(5))

	assert.Zero(t, s.Customers())
	assert.Zero(t, s.ActiveUsers())
}

func TestSoftware_RemoveCustomers_MoreThanCustomers(t *testing.T) {
	tests := []struct {
		name      string
		customers uint32
		remove    uint32
		wantErr   error
	}{
		{"no customers", 0, 1, ErrDivisionByZero},
		{"ratio over existing customers underflows", 10, 15, ErrInvariantViolation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSoftware(0, 0, 0, 0)
			if tt.customers > 0 {
				require.NoError(t, s.AddCustomers(tt.customers, false))
			}
			beforeCustomers, beforeUsers := s.Customers(), s.ActiveUsers()

			err := s.RemoveCustomers(tt.remove)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, beforeCustomers, s.Customers())
			assert.Equal(t, beforeUsers, s.ActiveUsers())
		})
	}
}

func TestSoftware_RemoveCustomers_ZeroActiveUsersIsDivisionByZero(t *testing.T) {
	// GIVEN B2B customers whose random draws produced no active users
	s := NewSoftware(0, 0, 0, 0, WithRNG(rand.New(zeroSource{})))
	require.NoError(t, s.AddCustomers(3, true))
	require.Zero(t, s.ActiveUsers())

	// WHEN more customers than exist are removed
	err := s.RemoveCustomers(4)

	// THEN the active-user ratio cannot be formed
	assert.ErrorIs(t, err, ErrDivisionByZero)
	assert.Equal(t, uint32(3), s.Customers())
}

func TestSoftware_WorkOnFeatures(t *testing.T) {
	tests := []struct {
		name      string
		devs      uint16
		focus     bounded.Percent
		days      uint16
		wantLines uint32
	}{
		{"full focus", 3, 100, 5, 3 * 250 * 5},
		{"half focus two devs", 2, 50, 4, 1 * 250 * 4},
		{"partial developer rounds down", 1, 50, 10, 0},
		{"seventy percent of ten devs", 10, 70, 1, 7 * 250},
		{"no days", 4, 100, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSoftware(1000, 0, 5, 0)

			require.NoError(t, s.WorkOnFeatures(tt.devs, tt.focus, tt.days))

			assert.Equal(t, 1000+tt.wantLines, s.LinesOfCode())
			assert.Equal(t, bounded.Percent(50), s.ComplexityOfCode(), "feature work resets complexity")
		})
	}
}

func TestSoftware_WorkOnFeatures_OverflowFails(t *testing.T) {
	tests := []struct {
		name  string
		start uint32
		devs  uint16
		focus bounded.Percent
		days  uint16
	}{
		{"largest inputs from empty", 0, math.MaxUint16, 100, math.MaxUint16},
		{"one line past max", math.MaxUint32 - 249, 1, 100, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSoftware(tt.start, 0, 5, 0)

			err := s.WorkOnFeatures(tt.devs, tt.focus, tt.days)

			assert.ErrorIs(t, err, ErrInvariantViolation)
			assert.Equal(t, tt.start, s.LinesOfCode(), "failed work must not change lines")
			assert.Equal(t, bounded.Percent(5), s.ComplexityOfCode(), "failed work must not reset complexity")
		})
	}
}

func TestSoftware_WorkOnFeatures_ExactFitAtMax(t *testing.T) {
	s := NewSoftware(math.MaxUint32-250, 0, 5, 0)

	require.NoError(t, s.WorkOnFeatures(1, 100, 1))

	assert.Equal(t, uint32(math.MaxUint32), s.LinesOfCode())
}

func TestSoftware_RefactorAndBugFixAreNoOps(t *testing.T) {
	s := NewSoftware(123, 4, 56, 7)
	require.NoError(t, s.AddCustomers(8, false))

	s.Refactor()
	s.BugFix()

	assert.Equal(t, uint32(123), s.LinesOfCode())
	assert.Equal(t, uint32(4), s.AgeOfCode())
	assert.Equal(t, bounded.Percent(56), s.ComplexityOfCode())
	assert.Equal(t, uint32(8), s.Customers())
}

func TestSoftware_Quality(t *testing.T) {
	tests := []struct {
		name       string
		complexity bounded.Percent
		services   uint16
		components uint16
		want       bounded.Percent
	}{
		{"low complexity", 9, 10, 10, 100},
		{"few services", 50, 1, 10, 100},
		{"few components", 50, 10, 4, 100},
		{"fresh defaults", 0, 0, 0, 100},
		{"at all thresholds", 10, 2, 5, 0},
		{"large system", 90, 40, 60, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSoftware(0, 0, tt.complexity, 0)
			s.SetServices(tt.services)
			s.SetComponents(tt.components)
			assert.Equal(t, tt.want, s.Quality())
		})
	}
}

func TestSoftware_Quality_LowComplexityAlwaysHundred(t *testing.T) {
	for c := 0; c < 10; c++ {
		s := NewSoftware(0, 0, bounded.Percent(c), 0)
		s.SetServices(100)
		s.SetComponents(100)
		assert.Equal(t, bounded.Max, s.Quality(), "complexity=%d", c)
	}
}

func TestSoftware_UsabilityFactor(t *testing.T) {
	s := NewSoftware(0, 0, 0, 0)
	require.NoError(t, s.SetEaseOfUse(80))
	require.NoError(t, s.SetFeatureRichness(60))
	require.NoError(t, s.SetTechnicalDebt(20))

	// Unreleased software has no usability regardless of the other fields.
	assert.Zero(t, s.UsabilityFactor())

	s.Release(calendar.New(2000, 1))
	assert.Equal(t, uint(50), s.UsabilityFactor())

	// Debt larger than the average floors at zero.
	require.NoError(t, s.SetTechnicalDebt(90))
	assert.Zero(t, s.UsabilityFactor())
}

func TestSoftware_MarketPopularity_UnreleasedIsZero(t *testing.T) {
	s := NewSoftware(0, 0, 0, 0)
	require.NoError(t, s.AddCustomers(500, false))
	require.NoError(t, s.SetCapacityPercentageActiveUsers(90))

	assert.Zero(t, s.MarketPopularity(calendar.New(2000, 5)))
}

func TestSoftware_MarketPopularity_AdjustsByWeeksSinceRelease(t *testing.T) {
	release := calendar.New(2001, 10)
	tests := []struct {
		name    string
		current calendar.YearWeek
		want    uint
	}{
		{"release week", calendar.New(2001, 10), 60},
		{"before release", calendar.New(2001, 5), 60},
		{"one week", calendar.New(2001, 11), 75},
		{"nine weeks", calendar.New(2001, 19), 75},
		{"ten weeks", calendar.New(2001, 20), 65},
		{"nineteen weeks", calendar.New(2001, 29), 65},
		{"twenty weeks", calendar.New(2001, 30), 30},
		{"thirty nine weeks", calendar.New(2001, 49), 30},
		{"forty weeks", calendar.New(2001, 50), 15},
		{"years later", calendar.New(2010, 1), 15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSoftware(0, 0, 0, 0)
			require.NoError(t, s.AddCustomers(100, false))
			require.NoError(t, s.SetCapacityPercentageActiveUsers(20))
			s.Release(release)

			// base = (100 + 20) / 2 = 60
			assert.Equal(t, tt.want, s.MarketPopularity(tt.current))
			// Recomputed from the base on every call.
			assert.Equal(t, tt.want, s.MarketPopularity(tt.current))
		})
	}
}

func TestSoftware_Release(t *testing.T) {
	s := NewSoftware(0, 0, 0, 0)

	s.Release(calendar.New(2000, 3))
	s.Release(calendar.New(2000, 7))

	assert.Equal(t, uint32(2), s.Releases())
	assert.Equal(t, calendar.New(2000, 7), s.LastReleaseYearWeek())
}

func TestSoftware_ReduceReliability(t *testing.T) {
	s := NewSoftware(0, 0, 0, 0)

	require.NoError(t, s.ReduceReliability(30))
	assert.Equal(t, bounded.Percent(70), s.Reliability())

	assert.ErrorIs(t, s.ReduceReliability(71), ErrInvariantViolation)
	assert.Equal(t, bounded.Percent(70), s.Reliability())
}

func TestSoftware_Setters_RejectInvalidValues(t *testing.T) {
	s := NewSoftware(0, 0, 0, 0)

	assert.ErrorIs(t, s.SetEaseOfUse(bounded.Percent(120)), ErrInvariantViolation)
	assert.ErrorIs(t, s.SetCapacityPercentageActiveUsers(bounded.Percent(101)), bounded.ErrOutOfRange)
	assert.ErrorIs(t, s.SetArchitecture("serverless"), ErrInvariantViolation)
	assert.ErrorIs(t, s.SetMonetizationModel("ads"), ErrInvariantViolation)

	require.NoError(t, s.SetArchitecture(Microservices))
	require.NoError(t, s.SetMonetizationModel(Freemium))
	require.NoError(t, s.SetPercentageFreeUsers(35))
	require.NoError(t, s.SetCustomerSatisfaction(64))
	s.SetDependencies(12)

	assert.Equal(t, Microservices, s.Architecture())
	assert.Equal(t, Freemium, s.MonetizationModel())
	assert.Equal(t, bounded.Percent(35), s.PercentageFreeUsers())
	assert.Equal(t, bounded.Percent(64), s.CustomerSatisfaction())
	assert.Equal(t, uint16(12), s.Dependencies())
	assert.Zero(t, s.EaseOfUse())
}

// zeroSource always yields 0, so every Float64 draw is 0.
type zeroSource struct{}

func (zeroSource) Int63() int64 { return 0 }
func (zeroSource) Seed(int64)   {}

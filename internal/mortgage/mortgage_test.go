package mortgage

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

func TestFixedScheduleReferenceValue(t *testing.T) {
	// P=500000, D=100000, 30 years at 10.5% a.a.
	sim := Simulate(500000, 100000, 30, 10.5, ScheduleFixed)

	financed := 400000.0
	i := 10.5 / 12 / 100 // 0.00875
	expected := financed * i / (1 - math.Pow(1+i, -360))

	require.Equal(t, financed, sim.Financed)
	require.Equal(t, 360, sim.Months)
	require.Equal(t, round2(expected), round2(sim.FixedPayment))
	require.Zero(t, sim.FirstPayment)
	require.Zero(t, sim.LastPayment)
}

func TestDecreasingScheduleFirstAndLast(t *testing.T) {
	sim := Simulate(500000, 100000, 30, 10.5, ScheduleDecreasing)

	financed := 400000.0
	i := 0.00875
	amort := financed / 360

	require.Equal(t, round2(amort+financed*i), round2(sim.FirstPayment))
	require.Equal(t, round2(amort+amort*i), round2(sim.LastPayment))
	require.Greater(t, sim.FirstPayment, sim.LastPayment)

	// Interest delta: first charges the full balance, last exactly one
	// amortization unit.
	require.InDelta(t, financed*i-amort*i, sim.FirstPayment-sim.LastPayment, 1e-9)
	require.Zero(t, sim.FixedPayment)
}

func TestNothingFinancedYieldsZero(t *testing.T) {
	for _, sched := range []Schedule{ScheduleFixed, ScheduleDecreasing} {
		for _, down := range []float64{500000, 600000} {
			sim := Simulate(500000, down, 30, 10.5, sched)
			require.Zero(t, sim.FixedPayment)
			require.Zero(t, sim.FirstPayment)
			require.Zero(t, sim.LastPayment)
			require.False(t, math.IsNaN(sim.FixedPayment))
			require.False(t, math.IsInf(sim.FirstPayment, 0))
		}
	}
}

func TestZeroTermYieldsZero(t *testing.T) {
	sim := Simulate(500000, 100000, 0, 10.5, ScheduleFixed)
	require.Zero(t, sim.FixedPayment)
	require.Zero(t, sim.Months)
}

func TestZeroRateFixedIsNotComputable(t *testing.T) {
	// i = 0 makes the FIXED denominator vanish; the quote degrades to zero
	// instead of propagating Inf.
	sim := Simulate(300000, 0, 20, 0, ScheduleFixed)
	require.Zero(t, sim.FixedPayment)
	require.False(t, math.IsInf(sim.FixedPayment, 0))
}

func TestZeroRateDecreasingIsPlainAmortization(t *testing.T) {
	sim := Simulate(240000, 0, 20, 0, ScheduleDecreasing)
	require.Equal(t, 1000.0, sim.FirstPayment)
	require.Equal(t, 1000.0, sim.LastPayment)
}

func TestScheduleParseRoundTrip(t *testing.T) {
	for _, s := range []Schedule{ScheduleFixed, ScheduleDecreasing} {
		parsed, err := ParseSchedule(s.String())
		require.NoError(t, err)
		require.Equal(t, s, parsed)
	}
	_, err := ParseSchedule("PRICE")
	require.Error(t, err)
}

// Package mortgage computes financing installments for the public
// simulator. Pure math, no I/O; presentation-layer rounding is the
// caller's concern.
package mortgage

import (
	"encoding/json"
	"fmt"
	"math"
)

// Schedule selects the amortization method.
type Schedule int

const (
	// ScheduleFixed is the French/Price table: one constant installment.
	ScheduleFixed Schedule = iota
	// ScheduleDecreasing is the constant-amortization (SAC) table:
	// installments shrink as interest is charged on a falling balance.
	ScheduleDecreasing
)

func (s Schedule) String() string {
	switch s {
	case ScheduleFixed:
		return "FIXED"
	case ScheduleDecreasing:
		return "DECREASING"
	default:
		return "UNKNOWN"
	}
}

func ParseSchedule(s string) (Schedule, error) {
	switch s {
	case "FIXED":
		return ScheduleFixed, nil
	case "DECREASING":
		return ScheduleDecreasing, nil
	default:
		return -1, fmt.Errorf("invalid schedule: %q", s)
	}
}

func (s Schedule) MarshalJSON() ([]byte, error) { return json.Marshal(s.String()) }

func (s *Schedule) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return err
	}
	parsed, err := ParseSchedule(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Simulation is the quote for one schedule. FIXED fills FixedPayment;
// DECREASING fills FirstPayment/LastPayment. A zero value means the input
// was not computable (nothing financed, zero term, degenerate rate).
type Simulation struct {
	Schedule     Schedule `json:"schedule"`
	Financed     float64  `json:"financed"`
	Months       int      `json:"months"`
	FixedPayment float64  `json:"fixed_payment,omitempty"`
	FirstPayment float64  `json:"first_payment,omitempty"`
	LastPayment  float64  `json:"last_payment,omitempty"`
}

// Simulate quotes a loan of (price - downPayment) over years*12 months at
// the given nominal annual rate (percent). Inputs that would produce a
// non-finite installment yield an all-zero quote rather than NaN/Inf.
func Simulate(price, downPayment float64, years int, annualRatePct float64, schedule Schedule) Simulation {
	out := Simulation{Schedule: schedule}

	financed := price - downPayment
	months := years * 12
	monthlyRate := annualRatePct / 12 / 100

	if financed <= 0 || months <= 0 || !isFinite(monthlyRate) {
		return out
	}
	out.Financed = financed
	out.Months = months

	switch schedule {
	case ScheduleFixed:
		payment := financed * monthlyRate / (1 - math.Pow(1+monthlyRate, float64(-months)))
		if !isFinite(payment) {
			return Simulation{Schedule: schedule}
		}
		out.FixedPayment = payment
	case ScheduleDecreasing:
		amort := financed / float64(months)
		first := amort + financed*monthlyRate
		last := amort + amort*monthlyRate
		if !isFinite(first) || !isFinite(last) {
			return Simulation{Schedule: schedule}
		}
		out.FirstPayment = first
		out.LastPayment = last
	}
	return out
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

package dtos

// MortgageSimulateRequest feeds the amortization calculator. The rate is
// the annual nominal percentage (e.g. 10.5).
type MortgageSimulateRequest struct {
	PropertyPrice  float64 `json:"property_price" validate:"required,gt=0"`
	DownPayment    float64 `json:"down_payment" validate:"min=0"`
	TermYears      int     `json:"term_years" validate:"required,gt=0,max=50"`
	AnnualRatePct  float64 `json:"annual_rate_pct" validate:"min=0"`
	Schedule       string  `json:"schedule" validate:"required,oneof=FIXED DECREASING"`
}

type MortgageSimulateResponse struct {
	Schedule     string  `json:"schedule"`
	Financed     float64 `json:"financed"`
	Months       int     `json:"months"`
	FixedPayment float64 `json:"fixed_payment,omitempty"`
	FirstPayment float64 `json:"first_payment,omitempty"`
	LastPayment  float64 `json:"last_payment,omitempty"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

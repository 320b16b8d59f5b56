package billing

import "math"

// Plan is a subscription tier shown on the pricing page.
type Plan struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	MonthlyPrice float64  `json:"monthlyPrice"`
	YearlyPrice  float64  `json:"yearlyPrice"`
	Features     []string `json:"features"`
	// PriceIDs maps a billing cycle to the payment provider price id.
	PriceIDs map[string]string `json:"priceIds,omitempty"`
}

const (
	CycleMonthly = "monthly"
	CycleYearly  = "yearly"
)

var plans = []Plan{
	{
		ID:           "free",
		Name:         "Free",
		MonthlyPrice: 0,
		YearlyPrice:  0,
		Features: []string{
			"1 resume download per month",
			"Basic templates",
			"Standard formatting",
			"Email support",
		},
	},
	{
		ID:           "professional",
		Name:         "Professional",
		MonthlyPrice: 9.99,
		YearlyPrice:  99.99,
		Features: []string{
			"Unlimited resume downloads",
			"Premium templates",
			"AI-powered content suggestions",
			"ATS optimization",
			"Cover letter builder",
			"Priority support",
		},
		PriceIDs: map[string]string{
			CycleMonthly: "price_professional_monthly",
			CycleYearly:  "price_professional_yearly",
		},
	},
	{
		ID:           "executive",
		Name:         "Executive",
		MonthlyPrice: 19.99,
		YearlyPrice:  199.99,
		Features: []string{
			"Everything in Professional",
			"Executive templates",
			"Personal branding consultation",
			"LinkedIn profile optimization",
			"Interview preparation guide",
			"Dedicated success manager",
		},
		PriceIDs: map[string]string{
			CycleMonthly: "price_executive_monthly",
			CycleYearly:  "price_executive_yearly",
		},
	},
}

// Plans returns a copy of the plan catalog.
func Plans() []Plan {
	out := make([]Plan, len(plans))
	copy(out, plans)
	return out
}

// FindPlan looks up a plan by id.
func FindPlan(id string) (Plan, bool) {
	for _, p := range plans {
		if p.ID == id {
			return p, true
		}
	}
	return Plan{}, false
}

// YearlyDiscountPercent is the rounded saving of yearly over twelve monthly
// payments. Free plans report 0.
func (p Plan) YearlyDiscountPercent() int {
	if p.MonthlyPrice <= 0 {
		return 0
	}
	return int(math.Round((1 - p.YearlyPrice/(p.MonthlyPrice*12)) * 100))
}

package billing

import (
	"errors"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrUnknownPlan    = errors.New("unknown plan")
	ErrInvalidCycle   = errors.New("invalid billing cycle")
	ErrNotPurchasable = errors.New("plan is not purchasable")
)

// CheckoutSession is the mock payment session handed to the UI.
type CheckoutSession struct {
	SessionID string  `json:"sessionId"`
	URL       string  `json:"url"`
	PlanID    string  `json:"planId"`
	Cycle     string  `json:"billingCycle"`
	Amount    float64 `json:"amount"`
}

// Service creates checkout sessions. No payment is taken.
type Service struct {
	NewID func() string
}

func NewService() *Service {
	return &Service{NewID: uuid.NewString}
}

// Checkout validates the plan and cycle and returns a session whose URL
// points at the success page.
func (s *Service) Checkout(planID, cycle string) (CheckoutSession, error) {
	planID = strings.ToLower(strings.TrimSpace(planID))
	cycle = strings.ToLower(strings.TrimSpace(cycle))
	if cycle == "" {
		cycle = CycleMonthly
	}

	plan, ok := FindPlan(planID)
	if !ok {
		return CheckoutSession{}, ErrUnknownPlan
	}
	if cycle != CycleMonthly && cycle != CycleYearly {
		return CheckoutSession{}, ErrInvalidCycle
	}
	if plan.MonthlyPrice == 0 {
		return CheckoutSession{}, ErrNotPurchasable
	}

	amount := plan.MonthlyPrice
	if cycle == CycleYearly {
		amount = plan.YearlyPrice
	}
	return CheckoutSession{
		SessionID: "cs_" + s.NewID(),
		URL:       "/checkout/success?plan=" + url.QueryEscape(plan.ID) + "&billing=" + cycle,
		PlanID:    plan.ID,
		Cycle:     cycle,
		Amount:    amount,
	}, nil
}

package billing

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/server/respond"
	"resume-builder/internal/shared/telemetry"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches billing routes. The plan list is public.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/plans", h.plans)
	rg.POST("/checkout", middleware.RequireUser(), h.checkout)
}

type planView struct {
	Plan
	YearlyDiscountPercent int `json:"yearlyDiscountPercent"`
}

func (h *Handler) plans(c *gin.Context) {
	all := Plans()
	items := make([]planView, 0, len(all))
	for _, p := range all {
		items = append(items, planView{Plan: p, YearlyDiscountPercent: p.YearlyDiscountPercent()})
	}
	respond.OK(c, gin.H{"plans": items})
}

type checkoutRequest struct {
	PlanID       string `json:"planId"`
	BillingCycle string `json:"billingCycle"`
}

func (h *Handler) checkout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "invalid request body", nil)
		return
	}
	session, err := h.Svc.Checkout(req.PlanID, req.BillingCycle)
	if err != nil {
		switch {
		case errors.Is(err, ErrUnknownPlan):
			respond.Error(c, http.StatusBadRequest, "validation_error", "unknown plan", nil)
		case errors.Is(err, ErrInvalidCycle):
			respond.Error(c, http.StatusBadRequest, "validation_error", "billingCycle must be monthly or yearly", nil)
		case errors.Is(err, ErrNotPurchasable):
			respond.Error(c, http.StatusBadRequest, "plan_not_purchasable", "the free plan needs no checkout", nil)
		default:
			respond.Internal(c, err, "failed to create checkout session")
		}
		return
	}
	telemetry.Info("billing.checkout_created", map[string]any{
		"user_id":    middleware.UserIDFromContext(c),
		"plan_id":    session.PlanID,
		"cycle":      session.Cycle,
		"session_id": session.SessionID,
	})
	respond.OK(c, session)
}

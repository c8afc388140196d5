package handlers

import (
	"net/http"

	"github.com/dealbridge/billing-engine/interfaces"
	"github.com/dealbridge/billing-engine/services"
	"github.com/dealbridge/billing-engine/types/business"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// BillingHandler handles opportunity preview HTTP requests.
type BillingHandler struct {
	engine   *services.BillingEngine
	review   *services.ReviewService
	provider interfaces.BillingProvider
	logger   *zap.Logger
}

// NewBillingHandler creates a handler over the billing engine.
func NewBillingHandler(engine *services.BillingEngine, review *services.ReviewService, provider interfaces.BillingProvider, logger *zap.Logger) *BillingHandler {
	if logger == nil {
		logger = zap.L()
	}
	return &BillingHandler{
		engine:   engine,
		review:   review,
		provider: provider,
		logger:   logger,
	}
}

// PreviewRequest is the body for the opportunity preview endpoint. When
// AccountState is omitted the handler looks the snapshot up from the billing
// provider by account code.
type PreviewRequest struct {
	Opportunity  business.Opportunity   `json:"opportunity" binding:"required"`
	AccountState *business.AccountState `json:"account_state,omitempty"`
}

// PreviewResponse carries the generated actions plus the review summary.
type PreviewResponse struct {
	Actions     []business.BillingAction `json:"actions"`
	ReviewSheet *business.ReviewSheet    `json:"review_sheet"`
	Risk        *business.RiskAssessment `json:"risk,omitempty"`
}

// PreviewOpportunity generates the billing-action list for one opportunity.
func (h *BillingHandler) PreviewOpportunity(c *gin.Context) {
	var req PreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	opp := &req.Opportunity
	state := req.AccountState

	if state == nil && opp.OrderType != business.OrderTypeNewBusiness && opp.AccountCode != "" {
		found, err := h.provider.GetAccountState(c.Request.Context(), opp.AccountCode)
		switch {
		case errors.Is(err, interfaces.ErrAccountNotFound):
			// Absent state is a generator-level precondition failure, not an
			// HTTP error.
		case err != nil:
			h.logger.Error("failed to fetch account state",
				zap.String("account_code", opp.AccountCode),
				zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "billing provider unavailable"})
			return
		default:
			state = found
		}
	}

	actions := h.engine.ProcessOpportunity(c.Request.Context(), opp, state)

	resp := PreviewResponse{
		Actions:     actions,
		ReviewSheet: h.review.BuildReviewSheet(opp, actions),
	}
	if risk, err := h.engine.AssessRisk(opp); err == nil {
		resp.Risk = risk
	}

	c.JSON(http.StatusOK, resp)
}

// HealthHandler reports process liveness.
type HealthHandler struct{}

// NewHealthHandler creates a health handler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Health returns a simple "ok" status.
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

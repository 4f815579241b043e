package api

import (
	"errors"
	"math/big"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"

	"github.com/cashlink-hq/cashlinkd/pkg/intentid"
	"github.com/cashlink-hq/cashlinkd/pkg/models"
	"github.com/cashlink-hq/cashlinkd/pkg/orchestrator"
	"github.com/cashlink-hq/cashlinkd/pkg/reconciler"
	"github.com/cashlink-hq/cashlinkd/pkg/store"
)

type createIntentRequest struct {
	ID          string `json:"id"`
	Sender      string `json:"sender" binding:"required"`
	Amount      string `json:"amount" binding:"required"`
	Description string `json:"description"`
}

type sendRequest struct {
	Amount      string `json:"amount" binding:"required"`
	Description string `json:"description"`
}

type executeClaimRequest struct {
	Recipient string `json:"recipient" binding:"required"`
}

// claimView is what a claim page renders
type claimView struct {
	ID              string        `json:"id"`
	Sender          string        `json:"sender"`
	SenderShort     string        `json:"sender_short"`
	Amount          string        `json:"amount"`
	FormattedAmount string        `json:"formatted_amount"`
	Description     string        `json:"description,omitempty"`
	Status          models.Status `json:"status"`
	Claimable       bool          `json:"claimable"`
}

// handleCreateIntent records a new pending intent. The caller may supply its
// own identifier (a sender that locked funds itself) or leave it blank to have
// one derived here.
func (s *Server) handleCreateIntent(c *gin.Context) {
	var req createIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	id := req.ID
	if id == "" && common.IsHexAddress(req.Sender) {
		id = intentid.New(common.HexToAddress(req.Sender), time.Now()).Hex()
	}

	intent, err := s.recon.CreateIntent(c.Request.Context(), id, req.Sender, req.Amount, req.Description)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrMalformed):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, store.ErrAlreadyExists):
			c.JSON(http.StatusConflict, gin.H{"error": "intent already exists"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create intent"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"intent":    intent,
		"claim_url": intentid.BuildClaimURL(s.origin, common.HexToHash(intent.ID), intent.Description),
	})
}

// handleGetIntent returns the reconciled record for an intent id
func (s *Server) handleGetIntent(c *gin.Context) {
	res, ok := s.resolve(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, res.Intent)
}

// handleMarkClaimed records that an intent was claimed. Repeats and unknown
// ids are accepted; the endpoint confirms the terminal state either way.
func (s *Server) handleMarkClaimed(c *gin.Context) {
	id := c.Param("id")
	if err := s.recon.MarkClaimed(c.Request.Context(), id); err != nil {
		if errors.Is(err, models.ErrMalformed) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to mark intent claimed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": common.HexToHash(id).Hex(), "status": models.StatusClaimed})
}

// handleResolveClaim serves the claim-page view for a shareable link. The
// description prefers the stored record and falls back to the m token carried
// in the link itself.
func (s *Server) handleResolveClaim(c *gin.Context) {
	res, ok := s.resolve(c)
	if !ok {
		return
	}

	description := res.Intent.Description
	if description == "" {
		description = intentid.DecodeDescription(c.Query("m"))
	}

	amount, _ := new(big.Int).SetString(res.Intent.Amount, 10)
	c.JSON(http.StatusOK, claimView{
		ID:              res.Intent.ID,
		Sender:          res.Intent.Sender,
		SenderShort:     models.FormatAddress(res.Intent.Sender),
		Amount:          res.Intent.Amount,
		FormattedAmount: models.FormatAmount(amount),
		Description:     description,
		Status:          res.Intent.Status,
		Claimable:       res.Claimable,
	})
}

// handleSend locks funds for a new intent using the service signer and
// returns the shareable claim link
func (s *Server) handleSend(c *gin.Context) {
	var req sendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	signer := s.orch.Signer()
	if signer == (common.Address{}) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no signer configured"})
		return
	}

	amount, ok := new(big.Int).SetString(req.Amount, 10)
	if !ok || amount.Sign() <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be a positive integer in minor units"})
		return
	}

	id := intentid.New(signer, time.Now())
	intent, err := s.recon.CreateIntent(c.Request.Context(), id.Hex(), signer.Hex(), req.Amount, req.Description)
	if err != nil {
		if errors.Is(err, models.ErrMalformed) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create intent"})
		return
	}

	if err := s.orch.Send(c.Request.Context(), id, amount); err != nil {
		s.renderFlowError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"intent":    intent,
		"claim_url": intentid.BuildClaimURL(s.origin, id, intent.Description),
	})
}

// handleExecuteClaim pays out an intent to the supplied recipient and records
// the claim
func (s *Server) handleExecuteClaim(c *gin.Context) {
	var req executeClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if !common.IsHexAddress(req.Recipient) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipient address"})
		return
	}

	res, ok := s.resolve(c)
	if !ok {
		return
	}
	if !res.Claimable {
		c.JSON(http.StatusConflict, gin.H{"error": "intent is not claimable"})
		return
	}

	id := common.HexToHash(res.Intent.ID)
	recipient := common.HexToAddress(req.Recipient)
	if err := s.orch.Claim(c.Request.Context(), id, recipient); err != nil {
		s.renderFlowError(c, err)
		return
	}

	if err := s.recon.MarkClaimed(c.Request.Context(), id.Hex()); err != nil {
		// The funds moved; a failed record update must not look like a failed
		// claim. Reconciliation heals the record on the next resolve.
		s.logger.Error("Failed to record claim for %s: %v", id.Hex(), err)
	}

	c.JSON(http.StatusOK, gin.H{
		"id":        id.Hex(),
		"recipient": recipient.Hex(),
		"status":    models.StatusClaimed,
	})
}

// resolve reconciles the id path parameter, writing the error response itself
// when resolution fails
func (s *Server) resolve(c *gin.Context) (reconciler.Resolution, bool) {
	res, err := s.recon.Resolve(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, models.ErrMalformed):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, reconciler.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "invalid or expired payment link"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve intent"})
		}
		return reconciler.Resolution{}, false
	}
	return res, true
}

// renderFlowError maps an orchestration failure onto an HTTP status
func (s *Server) renderFlowError(c *gin.Context, err error) {
	kind := orchestrator.Classify(err)

	status := http.StatusBadGateway
	switch kind {
	case orchestrator.KindNotFound:
		status = http.StatusNotFound
	case orchestrator.KindNoSigner, orchestrator.KindUnavailable:
		status = http.StatusServiceUnavailable
	case orchestrator.KindAlreadyClaimed:
		status = http.StatusConflict
	case orchestrator.KindInsufficientFunds:
		status = http.StatusUnprocessableEntity
	}

	var stepErr *orchestrator.StepError
	if errors.As(err, &stepErr) {
		c.JSON(status, gin.H{"error": err.Error(), "kind": kind, "step": stepErr.Step})
		return
	}
	c.JSON(status, gin.H{"error": err.Error(), "kind": kind})
}

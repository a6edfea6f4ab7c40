package handlers

import (
	"net/http"

	"github.com/instituteapps/coa_backend/internal/core/domain"
	"github.com/instituteapps/coa_backend/internal/core/services"
	"github.com/instituteapps/coa_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// ledgerHandler serves the hybrid ledger view and per-source balances.
type ledgerHandler struct {
	ledgerService *services.LedgerService
}

func newLedgerHandler(ls *services.LedgerService) *ledgerHandler {
	return &ledgerHandler{ledgerService: ls}
}

// registerLedgerRoutes registers the hybrid view routes.
func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService *services.LedgerService) {
	h := newLedgerHandler(ledgerService)

	ledger := rg.Group("/ledger")
	{
		ledger.GET("/accounts", h.getHybridAccounts)
		ledger.GET("/balances/:source", h.getSourceBalances)
	}
}

// getHybridAccounts returns the merged persisted + virtual account set.
// With ?tree=true the set is assembled into a forest for rendering.
func (h *ledgerHandler) getHybridAccounts(c *gin.Context) {
	if c.Query("tree") == "true" {
		forest, err := h.ledgerService.GetHybridForest(c.Request.Context())
		if err != nil {
			respondServiceError(c, err, "Failed to build hybrid account tree")
			return
		}
		c.JSON(http.StatusOK, toAccountTreeNodes(forest))
		return
	}

	accounts, err := h.ledgerService.GetHybridAccounts(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Failed to load hybrid accounts")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponses(accounts))
}

// toAccountTreeNodes converts the service-layer forest for rendering.
func toAccountTreeNodes(nodes []*services.AccountNode) []dto.AccountTreeNode {
	out := make([]dto.AccountTreeNode, 0, len(nodes))
	for _, n := range nodes {
		acc := n.Account
		out = append(out, dto.AccountTreeNode{
			AccountResponse: dto.ToAccountResponse(&acc),
			Children:        toAccountTreeNodes(n.Children),
		})
	}
	return out
}

// getSourceBalances returns the balanced virtual accounts of one source.
func (h *ledgerHandler) getSourceBalances(c *gin.Context) {
	kind := domain.SourceKind(c.Param("source"))
	accounts, err := h.ledgerService.GetSourceBalances(c.Request.Context(), kind)
	if err != nil {
		respondServiceError(c, err, "Failed to compute source balances")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponses(accounts))
}

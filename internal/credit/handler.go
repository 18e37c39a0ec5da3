package credit

import (
	"errors"
	"net/http"
	"strconv"

	"workbridge/internal/account"
	"workbridge/internal/api"
	"workbridge/internal/auth"
	"workbridge/internal/email"
	"workbridge/internal/metrics"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	repo         Repository
	accounts     account.Repository
	emailService *email.Service
}

func NewHandler(repo Repository, accounts account.Repository, emailService *email.Service) *Handler {
	return &Handler{
		repo:         repo,
		accounts:     accounts,
		emailService: emailService,
	}
}

// ListPackages godoc
// @Summary      Credit package catalog
// @Tags         credits
// @Produce      json
// @Success      200  {array}  Package
// @Router       /packages [get]
func (h *Handler) ListPackages(c *gin.Context) {
	c.JSON(http.StatusOK, Packages)
}

// GetBalance godoc
// @Summary      Current credit balance
// @Tags         credits
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  Wallet
// @Failure      401  {object}  api.ErrorResponse
// @Failure      500  {object}  api.ErrorResponse
// @Router       /credits/balance [get]
func (h *Handler) GetBalance(c *gin.Context) {
	accountID, ok := auth.GetAccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Account not authenticated"})
		return
	}

	w, err := h.repo.GetWallet(c.Request.Context(), accountID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to load wallet"})
		return
	}

	c.JSON(http.StatusOK, w)
}

// Purchase godoc
// @Summary      Purchase a credit package
// @Description  Credits the wallet and appends a completed purchase transaction. Always succeeds for a known package.
// @Tags         credits
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      PurchaseRequest  true  "Package id"
// @Success      200      {object}  PurchaseResponse
// @Failure      400      {object}  api.ErrorResponse
// @Failure      401      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /credits/purchase [post]
func (h *Handler) Purchase(c *gin.Context) {
	accountID, ok := auth.GetAccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Account not authenticated"})
		return
	}

	var req PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	pkg, err := PackageByID(req.PackageID)
	if err != nil {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Unknown credit package"})
		return
	}

	w, record, err := h.repo.Purchase(c.Request.Context(), accountID, pkg)
	if err != nil {
		if errors.Is(err, ErrWalletNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Wallet not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to purchase credits"})
		return
	}

	metrics.RecordCreditPurchase(pkg.ID)

	if acc, err := h.accounts.FindByID(c.Request.Context(), accountID); err == nil {
		// Receipt is best effort
		h.emailService.SendPurchaseReceipt(c.Request.Context(), acc.Email, acc.Name, pkg.Name, pkg.Credits, pkg.Price.StringFixed(2))
	}

	c.JSON(http.StatusOK, PurchaseResponse{
		Wallet:      w,
		Transaction: record,
	})
}

// ListTransactions godoc
// @Summary      Transaction history
// @Description  Append-only ledger entries, newest first.
// @Tags         credits
// @Produce      json
// @Security     BearerAuth
// @Param        limit   query  int  false  "Page size"   default(50)
// @Param        offset  query  int  false  "Page offset" default(0)
// @Success      200  {array}   Transaction
// @Failure      401  {object}  api.ErrorResponse
// @Failure      500  {object}  api.ErrorResponse
// @Router       /credits/transactions [get]
func (h *Handler) ListTransactions(c *gin.Context) {
	accountID, ok := auth.GetAccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Account not authenticated"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	txs, err := h.repo.GetTransactions(c.Request.Context(), accountID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to load transactions"})
		return
	}

	c.JSON(http.StatusOK, txs)
}

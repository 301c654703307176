package handler

import (
	"encoding/json"
	"ledger-lab/auth"
	"ledger-lab/domain"
	"ledger-lab/errors"
	"ledger-lab/repositories"
	"ledger-lab/services"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// AccountHandler exposes the accounts service over HTTP.
type AccountHandler struct {
	log     *slog.Logger
	service services.IAccountsService
}

type CreateAccountRequest struct {
	AccountID string           `json:"accountId" binding:"required,max=128"`
	Balance   *decimal.Decimal `json:"balance" binding:"required"`
}

type AmountTransferRequest struct {
	SourceAccountID      string           `json:"sourceAccountId" binding:"required,max=128"`
	DestinationAccountID string           `json:"destinationAccountId" binding:"required,max=128"`
	TransferAmount       *decimal.Decimal `json:"transferAmount" binding:"required"`
}

// AccountResponse renders the balance as a bare JSON number, e.g. 123.45.
type AccountResponse struct {
	AccountID string      `json:"accountId"`
	Balance   json.Number `json:"balance"`
}

type TransferResponse struct {
	ID           string      `json:"id"`
	TransferID   string      `json:"transferId"`
	Counterparty string      `json:"counterparty"`
	Direction    string      `json:"direction"`
	Amount       json.Number `json:"amount"`
	Description  string      `json:"description"`
	At           time.Time   `json:"at"`
}

type ListTransfersResponse struct {
	Transfers  []TransferResponse `json:"transfers"`
	NextCursor *string            `json:"nextCursor,omitempty"`
}

func NewAccountHandler(log *slog.Logger, service services.IAccountsService) *AccountHandler {
	return &AccountHandler{log: log, service: service}
}

// Register mounts the account routes on router, behind the given middlewares.
func (h *AccountHandler) Register(router gin.IRouter, middlewares ...gin.HandlerFunc) {
	v1 := router.Group("/v1/accounts", middlewares...)
	{
		v1.POST("", h.CreateAccount)
		v1.PUT("/amountTransfer", h.AmountTransfer)
		v1.GET("/:accountId", h.GetAccount)
		v1.GET("/:accountId/transfers", h.GetTransfers)
	}
}

func (h *AccountHandler) CreateAccount(c *gin.Context) {
	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithBindingError(c, err)
		return
	}
	h.log.Info("Creating account", "account", req.AccountID, "balance", req.Balance.String())

	err := h.service.CreateAccount(domain.NewAccount(domain.AccountID(req.AccountID), *req.Balance))
	if err != nil {
		h.respondWithDomainError(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

func (h *AccountHandler) GetAccount(c *gin.Context) {
	accountID := domain.AccountID(c.Param("accountId"))
	h.log.Debug("Retrieving account", "account", accountID)

	account, err := h.service.GetAccount(accountID)
	if err != nil {
		h.respondWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAccountResponse(account))
}

func (h *AccountHandler) AmountTransfer(c *gin.Context) {
	var req AmountTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithBindingError(c, err)
		return
	}
	operator, _ := auth.GetOperator(c)
	h.log.Info("Transferring amount",
		"operator", operator,
		"amount", req.TransferAmount.String(),
		"source", req.SourceAccountID,
		"destination", req.DestinationAccountID)

	cmd := domain.NewTransferCommand(
		domain.AccountID(req.SourceAccountID),
		domain.AccountID(req.DestinationAccountID),
		*req.TransferAmount)
	if _, err := h.service.AmountTransfer(c.Request.Context(), cmd); err != nil {
		h.respondWithDomainError(c, err)
		return
	}
	c.Status(http.StatusAccepted)
}

func (h *AccountHandler) GetTransfers(c *gin.Context) {
	accountID := domain.AccountID(c.Param("accountId"))
	var cursor *string
	if value, ok := c.GetQuery("cursor"); ok && value != "" {
		cursor = &value
	}

	records, next, err := h.service.GetTransfers(accountID, cursor)
	if err != nil {
		h.respondWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, ListTransfersResponse{
		Transfers:  lo.Map(records, func(r repositories.TransferRecord, _ int) TransferResponse { return toTransferResponse(r) }),
		NextCursor: next,
	})
}

// respondWithDomainError maps the ledger errors to HTTP statuses.
// A refused transfer is a 403 whatever the cause.
func (h *AccountHandler) respondWithDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errors.ErrInvalidPayload), errors.Is(err, errors.ErrInvalidAmount):
		RespondWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, errors.ErrDuplicateAccount):
		RespondWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, errors.ErrAccountNotFound):
		RespondWithError(c, http.StatusNotFound, "Account not found")
	case errors.Is(err, errors.ErrInsufficientFundsOrUnknownAccount):
		RespondWithError(c, http.StatusForbidden, err.Error())
	default:
		h.log.Error("Unexpected error", "path", c.FullPath(), "error", err)
		RespondWithError(c, http.StatusInternalServerError, "Internal error")
	}
}

func toAccountResponse(account domain.Account) AccountResponse {
	return AccountResponse{
		AccountID: account.ID.String(),
		Balance:   json.Number(account.Balance.String()),
	}
}

func toTransferResponse(record repositories.TransferRecord) TransferResponse {
	return TransferResponse{
		ID:           record.ID.String(),
		TransferID:   record.TransferID.String(),
		Counterparty: record.Counterparty.String(),
		Direction:    string(record.Direction),
		Amount:       json.Number(record.Amount.String()),
		Description:  record.Description,
		At:           record.At,
	}
}

package handler

import (
	"context"
	"net/http"

	"github.com/bankafrica/bankapp/internal/cqrs"
	"github.com/bankafrica/bankapp/internal/middleware"
	"github.com/bankafrica/bankapp/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// AccountCommander defines the write-side operations used by AccountHandler.
type AccountCommander interface {
	CreateAccount(context.Context, cqrs.CreateAccountCommand) (*models.Account, error)
	Deposit(context.Context, cqrs.DepositCommand) (*models.Account, error)
	Withdraw(context.Context, cqrs.WithdrawCommand) (*models.Account, error)
}

// AccountQuerier defines the read-side operations used by AccountHandler.
type AccountQuerier interface {
	GetAccount(context.Context, cqrs.GetAccountQuery) (*models.Account, error)
}

// AccountHandler handles account-related HTTP requests.
type AccountHandler struct {
	commands AccountCommander
	queries  AccountQuerier
}

// Amounts accept both JSON numbers and strings; decimal parses either
// exactly.
type TransactionRequest struct {
	AccountID string           `json:"accountId" validate:"required"`
	Amount    *decimal.Decimal `json:"amount" validate:"required"`
}

type CreateAccountRequest struct {
	Name           string           `json:"name" validate:"required"`
	InitialBalance *decimal.Decimal `json:"initialBalance"`
}

type TransactionResponse struct {
	Message    string `json:"message"`
	NewBalance string `json:"newBalance"`
	AccountID  string `json:"accountId"`
}

func NewAccountHandler(commands AccountCommander, queries AccountQuerier) *AccountHandler {
	return &AccountHandler{commands: commands, queries: queries}
}

func (h *AccountHandler) GetAccount(c *gin.Context) {
	accountID := c.Param("accountId")

	account, err := h.queries.GetAccount(c.Request.Context(), cqrs.GetAccountQuery{AccountID: accountID})
	if err != nil {
		middleware.RespondWithServiceError(c, "Error retrieving account: ", err)
		return
	}
	if account == nil {
		middleware.RespondWithError(c, http.StatusNotFound, "Account not found with ID: "+accountID)
		return
	}

	c.JSON(http.StatusOK, models.NewAccountView(account))
}

func (h *AccountHandler) Deposit(c *gin.Context) {
	req, ok := bindTransaction(c)
	if !ok {
		return
	}

	account, err := h.commands.Deposit(c.Request.Context(), cqrs.DepositCommand{
		AccountID: req.AccountID,
		Amount:    *req.Amount,
	})
	if err != nil {
		middleware.RespondWithServiceError(c, "Deposit failed: ", err)
		return
	}

	c.JSON(http.StatusOK, TransactionResponse{
		Message:    "Deposit successful",
		NewBalance: models.FormatMoney(account.Balance),
		AccountID:  account.ID,
	})
}

func (h *AccountHandler) Withdraw(c *gin.Context) {
	req, ok := bindTransaction(c)
	if !ok {
		return
	}

	account, err := h.commands.Withdraw(c.Request.Context(), cqrs.WithdrawCommand{
		AccountID: req.AccountID,
		Amount:    *req.Amount,
	})
	if err != nil {
		middleware.RespondWithServiceError(c, "Withdrawal failed: ", err)
		return
	}

	c.JSON(http.StatusOK, TransactionResponse{
		Message:    "Withdrawal successful",
		NewBalance: models.FormatMoney(account.Balance),
		AccountID:  account.ID,
	})
}

func (h *AccountHandler) CreateAccount(c *gin.Context) {
	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	account, err := h.commands.CreateAccount(c.Request.Context(), cqrs.CreateAccountCommand{
		HolderName:     req.Name,
		InitialBalance: req.InitialBalance,
	})
	if err != nil {
		middleware.RespondWithServiceError(c, "Account creation failed: ", err)
		return
	}

	c.JSON(http.StatusOK, models.NewAccountView(account))
}

func bindTransaction(c *gin.Context) (*TransactionRequest, bool) {
	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return nil, false
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return nil, false
	}
	return &req, true
}

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

// AuthCommander defines the write-side operations used by AuthHandler.
type AuthCommander interface {
	Register(context.Context, cqrs.RegisterUserCommand) (*models.User, error)
}

// AuthQuerier defines the read-side operations used by AuthHandler.
type AuthQuerier interface {
	Login(context.Context, cqrs.LoginCommand) (*models.User, string, error)
	RefreshToken(context.Context, cqrs.RefreshTokenCommand) (string, error)
	GetUserByID(context.Context, cqrs.GetUserQuery) (*models.User, error)
}

// AuthHandler handles registration, login and profile lookups.
type AuthHandler struct {
	commands AuthCommander
	queries  AuthQuerier
}

// RegisterRequest carries no validate tags: the registration rules and their
// order are owned by the command service.
type RegisterRequest struct {
	FirstName      string           `json:"firstName"`
	LastName       string           `json:"lastName"`
	Email          string           `json:"email"`
	IDNumber       string           `json:"idNumber"`
	PhoneNumber    string           `json:"phoneNumber"`
	Password       string           `json:"password"`
	InitialDeposit *decimal.Decimal `json:"initialDeposit"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshTokenRequest struct {
	Token string `json:"token" validate:"required"`
}

type RegisterResponse struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
	Email   string `json:"email"`
}

type LoginResponse struct {
	UserID        string `json:"userId"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Email         string `json:"email"`
	AccountID     string `json:"accountId"`
	AccountNumber string `json:"accountNumber"`
	Balance       string `json:"balance"`
	Token         string `json:"token"`
}

type AuthResponse struct {
	Token string `json:"token"`
}

func NewAuthHandler(commands AuthCommander, queries AuthQuerier) *AuthHandler {
	return &AuthHandler{commands: commands, queries: queries}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.commands.Register(c.Request.Context(), cqrs.RegisterUserCommand{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		IDNumber:       req.IDNumber,
		PhoneNumber:    req.PhoneNumber,
		Password:       req.Password,
		InitialDeposit: req.InitialDeposit,
	})
	if err != nil {
		middleware.RespondWithServiceError(c, "", err)
		return
	}

	c.JSON(http.StatusOK, RegisterResponse{
		Message: "Registration successful",
		UserID:  user.ID,
		Email:   user.Email,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, token, err := h.queries.Login(c.Request.Context(), cqrs.LoginCommand{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		middleware.RespondWithServiceError(c, "", err)
		return
	}

	resp := LoginResponse{
		UserID:    user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		AccountID: user.AccountID,
		Token:     token,
	}
	if user.Account != nil {
		resp.AccountNumber = user.Account.AccountNumber
		resp.Balance = models.FormatMoney(user.Account.Balance)
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	token, err := h.queries.RefreshToken(c.Request.Context(), cqrs.RefreshTokenCommand{
		Token: req.Token,
	})
	if err != nil {
		middleware.RespondWithError(c, http.StatusUnauthorized, "Invalid token")
		return
	}

	c.JSON(http.StatusOK, AuthResponse{Token: token})
}

func (h *AuthHandler) GetProfile(c *gin.Context) {
	h.respondWithProfile(c, c.Param("userId"))
}

// Me returns the profile of the authenticated caller.
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		middleware.RespondWithError(c, http.StatusUnauthorized, "Authorization header required")
		return
	}
	h.respondWithProfile(c, userID)
}

func (h *AuthHandler) respondWithProfile(c *gin.Context, userID string) {
	user, err := h.queries.GetUserByID(c.Request.Context(), cqrs.GetUserQuery{UserID: userID})
	if err != nil {
		middleware.RespondWithServiceError(c, "Error retrieving profile: ", err)
		return
	}
	if user == nil {
		middleware.RespondWithError(c, http.StatusNotFound, "User not found with ID: "+userID)
		return
	}

	c.JSON(http.StatusOK, models.NewProfileView(user))
}

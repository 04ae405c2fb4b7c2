package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bankafrica/bankapp/internal/auth"
	"github.com/bankafrica/bankapp/internal/command"
	"github.com/bankafrica/bankapp/internal/events"
	"github.com/bankafrica/bankapp/internal/query"
	"github.com/bankafrica/bankapp/internal/repository"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := zerolog.Nop()

	accounts := repository.NewMemoryAccountRepository()
	users := repository.NewMemoryUserRepository()
	readRepo := repository.NewAccountReadRepository(accounts, nil)
	tokens := auth.NewTokenIssuer([]byte("test-secret"), time.Hour)

	accountCommands := command.NewAccountCommandService(accounts, readRepo, events.NopPublisher{}, log)
	userCommands := command.NewUserCommandService(users, accountCommands, events.NopPublisher{}, log)

	return setupRouter(log, tokens,
		accountCommands, query.NewAccountQueryService(readRepo),
		userCommands, query.NewAuthQueryService(users, readRepo, tokens),
	)
}

func call(t *testing.T, router *gin.Engine, method, url, body string, header ...string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, url, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if len(header) == 2 {
		req.Header.Set(header[0], header[1])
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return w.Code, resp
}

func TestRegisterLoginAndBank(t *testing.T) {
	router := newTestServer(t)

	status, resp := call(t, router, http.MethodPost, "/api/auth/register", `{
		"firstName": "John", "lastName": "Doe", "email": "john.doe@example.com",
		"idNumber": "9001015000000", "phoneNumber": "0712345678",
		"password": "secret123", "initialDeposit": 1000.00
	}`)
	require.Equal(t, http.StatusOK, status, resp)
	assert.Equal(t, "Registration successful", resp["message"])
	userID := resp["userId"].(string)

	status, resp = call(t, router, http.MethodPost, "/api/auth/login",
		`{"email": "john.doe@example.com", "password": "secret123"}`)
	require.Equal(t, http.StatusOK, status, resp)
	assert.Equal(t, userID, resp["userId"])
	assert.Equal(t, "1000.00", resp["balance"])
	accountID := resp["accountId"].(string)
	token := resp["token"].(string)

	status, resp = call(t, router, http.MethodPost, "/api/deposit",
		`{"accountId": "`+accountID+`", "amount": 500.00}`)
	require.Equal(t, http.StatusOK, status, resp)
	assert.Equal(t, "1500.00", resp["newBalance"])

	status, resp = call(t, router, http.MethodPost, "/api/withdraw",
		`{"accountId": "`+accountID+`", "amount": "700.00"}`)
	require.Equal(t, http.StatusOK, status, resp)
	assert.Equal(t, "800.00", resp["newBalance"])

	status, resp = call(t, router, http.MethodPost, "/api/withdraw",
		`{"accountId": "`+accountID+`", "amount": 900}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Withdrawal failed: Insufficient funds. Current balance: 800.00", resp["error"])

	status, resp = call(t, router, http.MethodGet, "/api/accounts/"+accountID, "")
	require.Equal(t, http.StatusOK, status, resp)
	assert.Equal(t, "800.00", resp["balance"])
	assert.Equal(t, "John Doe", resp["accountHolderName"])

	status, resp = call(t, router, http.MethodGet, "/api/auth/profile/"+userID, "")
	require.Equal(t, http.StatusOK, status, resp)
	assert.Equal(t, "800.00", resp["balance"])

	status, resp = call(t, router, http.MethodGet, "/api/auth/me", "", "Authorization", "Bearer "+token)
	require.Equal(t, http.StatusOK, status, resp)
	assert.Equal(t, userID, resp["userId"])

	status, _ = call(t, router, http.MethodGet, "/api/auth/me", "")
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestDuplicateRegistrationAndBadLogin(t *testing.T) {
	router := newTestServer(t)
	body := `{
		"firstName": "John", "lastName": "Doe", "email": "john.doe@example.com",
		"idNumber": "9001015000000", "phoneNumber": "0712345678",
		"password": "secret123", "initialDeposit": "150.00"
	}`

	status, _ := call(t, router, http.MethodPost, "/api/auth/register", body)
	require.Equal(t, http.StatusOK, status)

	status, resp := call(t, router, http.MethodPost, "/api/auth/register", body)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Email already registered", resp["error"])

	status, resp = call(t, router, http.MethodPost, "/api/auth/login",
		`{"email": "john.doe@example.com", "password": "wrong-password"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid email or password", resp["error"])
}

func TestAccountEndpoints(t *testing.T) {
	router := newTestServer(t)

	status, resp := call(t, router, http.MethodPost, "/api/accounts", `{"name": "Jane Doe", "initialBalance": -20}`)
	require.Equal(t, http.StatusOK, status, resp)
	assert.Equal(t, "0.00", resp["balance"])
	assert.Len(t, resp["accountNumber"], 10)

	status, resp = call(t, router, http.MethodGet, "/api/accounts/acc-unknown", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Account not found with ID: acc-unknown", resp["error"])

	status, resp = call(t, router, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", resp["status"])
}

//go:build integration

package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sebuszqo/ExpenseTracker/internal/auth"
	database "github.com/sebuszqo/ExpenseTracker/internal/db"
	"github.com/sebuszqo/ExpenseTracker/internal/db/dbtest"
	emailService "github.com/sebuszqo/ExpenseTracker/internal/email"
	"github.com/sebuszqo/ExpenseTracker/internal/expense/application"
	"github.com/sebuszqo/ExpenseTracker/internal/expense/infrastructure"
	"github.com/sebuszqo/ExpenseTracker/internal/expense/interfaces"
	"github.com/sebuszqo/ExpenseTracker/internal/httputil"
	"github.com/sebuszqo/ExpenseTracker/internal/reference"
	"github.com/sebuszqo/ExpenseTracker/internal/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// capturingSender keeps activation links instead of mailing them.
type capturingSender struct {
	mu    sync.Mutex
	links map[string]string
}

func (c *capturingSender) QueueEmail(to string, data emailService.EmailData) {
	activation, ok := data.(emailService.ActivationEmailData)
	if !ok {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.links[to] = activation.ActivationLink
}

func (c *capturingSender) tokenFor(t *testing.T, email string) string {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	link, ok := c.links[email]
	require.True(t, ok, "no activation email for %s", email)
	return link[strings.LastIndex(link, "/")+1:]
}

func TestEndToEnd_RegisterActivateLoginList(t *testing.T) {
	ctx := context.Background()
	log := zaptest.NewLogger(t)

	dbService, err := database.NewDBService(ctx, dbtest.NewPostgres(t), log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = dbService.Close() })
	require.NoError(t, database.RunMigrations(dbService.DB))

	sender := &capturingSender{links: map[string]string{}}
	userService := user.NewUserService(user.NewUserRepository(dbService.DB), sender, user.Config{
		RequireActivation: true,
		ActivationTTL:     time.Hour,
		ActivationURL:     "http://localhost:8080/user/activate",
	}, log)
	jwtManager := auth.NewJWTManager("e2e-secret", time.Hour)
	cookie := auth.CookieConfig{Name: testCookieName}
	authService := auth.NewAuthService(userService, jwtManager, cookie, log)

	referenceService, err := reference.NewReferenceService(ctx, reference.NewReferenceRepository(dbService.DB), log)
	require.NoError(t, err)
	expenseService := application.NewExpenseService(infrastructure.NewExpenseRepository(dbService.DB), referenceService, log)
	transactionService := application.NewTransactionService(infrastructure.NewTransactionRepository(dbService.DB), expenseService, referenceService, log)

	s := NewServer(Handlers{
		Auth:        auth.NewHandler(authService, cookie, time.Hour, httputil.RespondJSON, httputil.RespondError),
		User:        user.NewHandler(userService, httputil.RespondJSON, httputil.RespondError),
		Expense:     interfaces.NewExpenseHandler(expenseService, httputil.RespondJSON, httputil.RespondError),
		Transaction: interfaces.NewTransactionHandler(transactionService, httputil.RespondJSON, httputil.RespondError),
		Reference:   reference.NewHandler(referenceService, httputil.RespondJSON, httputil.RespondError),
	}, authService, dbService, log)
	env := testEnv{handler: s.Handler(), jwtManager: jwtManager}

	register := func(email, username string) user.User {
		body := `{"email":"` + email + `","username":"` + username + `","password":"Secret1!","confirmPassword":"Secret1!"}`
		w := env.do(http.MethodPost, "/user/register", body, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var registered user.User
		require.NoError(t, json.NewDecoder(w.Body).Decode(&registered))
		return registered
	}
	login := func(email string) *http.Cookie {
		w := env.do(http.MethodPost, "/user/auth", `{"email":"`+email+`","password":"Secret1!"}`, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		return sessionCookie(t, w)
	}

	alice := register("a@x.com", "alice")
	assert.False(t, alice.Activated)
	assert.NotContains(t, env.do(http.MethodGet, "/health", "", nil).Body.String(), "down")

	w := env.do(http.MethodPost, "/user/register", `{"email":"a@x.com","username":"again","password":"Secret1!","confirmPassword":"Secret1!"}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(http.MethodPost, "/user/auth", `{"email":"a@x.com","password":"Secret1!"}`, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(http.MethodPost, "/user/activate/"+sender.tokenFor(t, "a@x.com"), "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = env.do(http.MethodPost, "/user/activate/"+sender.tokenFor(t, "a@x.com"), "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	aliceSession := login("a@x.com")

	w = env.do(http.MethodGet, "/user/me", "", aliceSession)
	require.Equal(t, http.StatusOK, w.Code)
	var me user.User
	require.NoError(t, json.NewDecoder(w.Body).Decode(&me))
	assert.Equal(t, alice.ID, me.ID)

	target := "/expense/" + jsonNumber(alice.ID)
	w = env.do(http.MethodGet, target, "", aliceSession)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	bob := register("b@x.com", "bob")
	require.Equal(t, http.StatusOK, env.do(http.MethodPost, "/user/activate/"+sender.tokenFor(t, "b@x.com"), "", nil).Code)
	bobSession := login("b@x.com")
	assert.NotEqual(t, alice.ID, bob.ID)

	w = env.do(http.MethodGet, target, "", bobSession)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// expense and transaction round trip through the real store
	w = env.do(http.MethodPost, "/expense", `{"name":"Rent","value":"150000","start_date":"01-02-2024","currency_type_id":1,"recurrence_type_id":1,"user_id":999}`, aliceSession)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&created))

	w = env.do(http.MethodPost, "/transaction", `{"donor_name":"Anna","value":"1000","date":"15-02-2024","currency_type_id":1,"expense_id":`+jsonNumber(created.ID)+`}`, bobSession)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(http.MethodPost, "/transaction", `{"donor_name":"Anna","value":"1000","date":"15-02-2024","currency_type_id":1,"expense_id":`+jsonNumber(created.ID)+`}`, aliceSession)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = env.do(http.MethodGet, target, "", aliceSession)
	require.Equal(t, http.StatusOK, w.Code)
	var listed []map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&listed))
	require.Len(t, listed, 1)
	assert.EqualValues(t, alice.ID, listed[0]["user_id"])
	assert.Equal(t, "1800000", listed[0]["annual_value"])

	w = env.do(http.MethodDelete, "/expense/"+jsonNumber(created.ID), "", aliceSession)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = env.do(http.MethodGet, "/expense/"+jsonNumber(created.ID)+"/transactions", "", aliceSession)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func jsonNumber(id int64) string {
	b, _ := json.Marshal(id)
	return string(b)
}

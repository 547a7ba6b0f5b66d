package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"scooter-rental/internal/logger"
	"scooter-rental/internal/repository/memory"
	store "scooter-rental/internal/redis"
)

// clock moves forward one second on every reading so tokens and code expiry
// never collide on the same instant.
type clock struct {
	mu sync.Mutex
	t  time.Time
}

func newClock() *clock {
	return &clock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Second)
	return c.t
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type sentMail struct {
	to, subject, body string
}

type fakeMailer struct {
	sent chan sentMail
}

func (m *fakeMailer) Send(to, subject, body string) error {
	m.sent <- sentMail{to: to, subject: subject, body: body}
	return nil
}

type harness struct {
	store    *memory.Store
	redis    *miniredis.Miniredis
	clock    *clock
	tokens   *TokenService
	accounts *AccountService
	orders   *OrderService
	products *ProductService
}

func newHarness(t *testing.T, opts AccountOptions) *harness {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb, err := store.New(context.Background(), mr.Addr(), "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })

	clk := newClock()
	st := memory.New()
	l := logger.Discard()

	tokens := NewTokenService("test-secret", time.Hour, store.NewRevocationList(rdb, time.Hour))
	tokens.now = clk.Now

	accounts := NewAccountService(st.Accounts(), tokens, store.NewAttemptCounter(rdb, 15*time.Minute), nil, l, opts)
	accounts.now = clk.Now

	orders := NewOrderService(st.Accounts(), st.Products(), st.Orders(), l)
	orders.now = clk.Now

	return &harness{
		store:    st,
		redis:    mr,
		clock:    clk,
		tokens:   tokens,
		accounts: accounts,
		orders:   orders,
		products: NewProductService(st.Products(), true),
	}
}

// code reads the current verification code straight from the store.
func (h *harness) code(t *testing.T, email string) int {
	t.Helper()
	a, err := h.store.Accounts().FindByEmail(context.Background(), email)
	require.NoError(t, err)
	return a.VerificationCode
}

// verifiedAccount signs up and verifies, returning a login token.
func (h *harness) verifiedAccount(t *testing.T, email, password string) string {
	t.Helper()
	ctx := context.Background()
	_, err := h.accounts.Signup(ctx, SignupInput{FirstName: "Ana", LastName: "Lee", Email: email, Password: password})
	require.NoError(t, err)
	_, err = h.accounts.VerifyCode(ctx, email, h.code(t, email))
	require.NoError(t, err)
	token, err := h.accounts.Login(ctx, email, password)
	require.NoError(t, err)
	return token
}

package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/household-market/internal/middleware"
	"github.com/iliyamo/household-market/internal/model"
	"github.com/iliyamo/household-market/internal/queue"
	"github.com/iliyamo/household-market/internal/repository"
	"github.com/iliyamo/household-market/internal/service"
)

// ----- fakes -----

type fakeUsers struct {
	mu     sync.Mutex
	rows   map[uint64]model.User
	nextID uint64
	err    error
}

func newFakeUsers() *fakeUsers { return &fakeUsers{rows: map[uint64]model.User{}} }

func (f *fakeUsers) Create(_ context.Context, u model.User) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	for _, r := range f.rows {
		if r.Email == u.Email {
			return 0, repository.ErrEmailExists
		}
	}
	f.nextID++
	u.ID = f.nextID
	f.rows[u.ID] = u
	return u.ID, nil
}

func (f *fakeUsers) EmailExists(_ context.Context, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return false, f.err
	}
	for _, r := range f.rows {
		if r.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.rows {
		if r.Email == email {
			return r, nil
		}
	}
	return model.User{}, repository.ErrNotFound
}

func (f *fakeUsers) GetByID(_ context.Context, id uint64) (model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.rows[id]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsers) List(context.Context) ([]model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []model.User{}
	for _, r := range f.rows {
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeUsers) Update(_ context.Context, u model.User, withPassword bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	old, ok := f.rows[u.ID]
	if !ok {
		return nil
	}
	if !withPassword {
		u.PasswordHash = old.PasswordHash
	}
	f.rows[u.ID] = u
	return nil
}

func (f *fakeUsers) Delete(_ context.Context, id uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.rows, id)
	return nil
}

// fakeStore is an in-memory MutableStore keyed by the id returned from Create.
type fakeStore[T any] struct {
	mu     sync.Mutex
	rows   map[uint64]T
	nextID uint64
	getID  func(T) uint64
	err    error
}

func newFakeStore[T any](getID func(T) uint64) *fakeStore[T] {
	return &fakeStore[T]{rows: map[uint64]T{}, getID: getID}
}

func (f *fakeStore[T]) Create(_ context.Context, item T) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	f.nextID++
	f.rows[f.nextID] = item
	return f.nextID, nil
}

func (f *fakeStore[T]) List(context.Context) ([]T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := make([]T, 0, len(f.rows))
	for _, r := range f.rows {
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeStore[T]) GetByID(_ context.Context, id uint64) (T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var zero T
	if f.err != nil {
		return zero, f.err
	}
	r, ok := f.rows[id]
	if !ok {
		return zero, repository.ErrNotFound
	}
	return r, nil
}

func (f *fakeStore[T]) Update(_ context.Context, item T) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	id := f.getID(item)
	if _, ok := f.rows[id]; !ok {
		return 0, nil
	}
	f.rows[id] = item
	return 1, nil
}

func (f *fakeStore[T]) Delete(_ context.Context, id uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	delete(f.rows, id)
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []queue.OrderEvent
}

func (p *recordingPublisher) PublishOrderEvent(_ context.Context, ev queue.OrderEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}

type countingInvalidator struct{ routes []string }

func (c *countingInvalidator) Invalidate(_ context.Context, routes ...string) error {
	c.routes = append(c.routes, routes...)
	return nil
}

// ----- helpers -----

func quietLog() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newTokens() *service.TokenService {
	return service.NewTokenService("test-secret", time.Hour, bcrypt.MinCost, nil)
}

func userServer(users UserStore, tokens *service.TokenService) *echo.Echo {
	log := quietLog()
	h := NewUserHandler(users, tokens, log)
	e := echo.New()
	auth := middleware.JWTAuth(tokens, log)
	e.POST("/api/users", h.Register)
	e.POST("/api/users/login", h.Login)
	g := e.Group("/api/users", auth)
	g.POST("/logout", h.Logout)
	g.GET("/me", h.Me)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	return e
}

func do(e *echo.Echo, method, path, body, token string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	return m
}

const ashaBody = `{"username":"asha","phone":"0712","email":"asha@x.com","password":"secret123","role":"admin"}`

func login(t *testing.T, e *echo.Echo, email, password string) string {
	t.Helper()
	rec := do(e, http.MethodPost, "/api/users/login", `{"email":"`+email+`","password":"`+password+`"}`, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	tok, _ := decode(t, rec)["token"].(string)
	require.NotEmpty(t, tok)
	return tok
}

// ----- users -----

func TestRegisterLoginAndFetch(t *testing.T) {
	users := newFakeUsers()
	e := userServer(users, newTokens())

	rec := do(e, http.MethodPost, "/api/users", ashaBody, "")
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.EqualValues(t, 1, decode(t, rec)["id"])

	stored := users.rows[1]
	assert.Equal(t, model.RoleCustomer, stored.Role)
	assert.NotEqual(t, "secret123", stored.PasswordHash)

	rec = do(e, http.MethodPost, "/api/users/login", `{"email":"asha@x.com","password":"secret123"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	user := body["user"].(map[string]any)
	assert.EqualValues(t, 1, user["user_id"])
	assert.Equal(t, "customer", user["role"])
	assert.NotContains(t, rec.Body.String(), "password")

	tok := body["token"].(string)
	rec = do(e, http.MethodGet, "/api/users/1", "", tok)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode(t, rec)
	assert.Equal(t, "asha", got["username"])
	assert.NotContains(t, got, "password")
}

func TestRegisterValidation(t *testing.T) {
	e := userServer(newFakeUsers(), newTokens())
	cases := []struct {
		name, body, msg string
	}{
		{"missing phone", `{"username":"a","email":"a@x.com","password":"secret123"}`, msgFillAllFields},
		{"bad email", `{"username":"a","phone":"1","email":"not-an-email","password":"secret123"}`, msgBadEmail},
		{"short password", `{"username":"a","phone":"1","email":"a@x.com","password":"short"}`, msgShortPassword},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(e, http.MethodPost, "/api/users", tc.body, "")
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tc.msg, decode(t, rec)["message"])
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users := newFakeUsers()
	e := userServer(users, newTokens())
	require.Equal(t, http.StatusCreated, do(e, http.MethodPost, "/api/users", ashaBody, "").Code)

	rec := do(e, http.MethodPost, "/api/users", ashaBody, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, msgEmailTaken, decode(t, rec)["message"])
	assert.Len(t, users.rows, 1)
}

func TestLoginFailures(t *testing.T) {
	e := userServer(newFakeUsers(), newTokens())
	require.Equal(t, http.StatusCreated, do(e, http.MethodPost, "/api/users", ashaBody, "").Code)

	rec := do(e, http.MethodPost, "/api/users/login", `{"email":"asha@x.com"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, msgLoginFields, decode(t, rec)["message"])

	rec = do(e, http.MethodPost, "/api/users/login", `{"email":"nobody@x.com","password":"secret123"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, msgUnknownEmail, decode(t, rec)["message"])

	rec = do(e, http.MethodPost, "/api/users/login", `{"email":"asha@x.com","password":"wrong-pass"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, msgBadCredentials, decode(t, rec)["message"])
}

func TestLogoutRevokesToken(t *testing.T) {
	e := userServer(newFakeUsers(), newTokens())
	require.Equal(t, http.StatusCreated, do(e, http.MethodPost, "/api/users", ashaBody, "").Code)
	tok := login(t, e, "asha@x.com", "secret123")

	require.Equal(t, http.StatusOK, do(e, http.MethodGet, "/api/users/me", "", tok).Code)

	rec := do(e, http.MethodPost, "/api/users/logout", "", tok)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, msgLoggedOut, decode(t, rec)["message"])

	rec = do(e, http.MethodGet, "/api/users/me", "", tok)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Token imebatilishwa, tafadhali ingia tena", decode(t, rec)["message"])

	// A fresh login is unaffected by the earlier revocation.
	time.Sleep(1100 * time.Millisecond)
	fresh := login(t, e, "asha@x.com", "secret123")
	assert.Equal(t, http.StatusOK, do(e, http.MethodGet, "/api/users/me", "", fresh).Code)
}

func TestProtectedUserRoutesNeedToken(t *testing.T) {
	e := userServer(newFakeUsers(), newTokens())
	rec := do(e, http.MethodGet, "/api/users", "", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = do(e, http.MethodGet, "/api/users", "", "garbage")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUpdateUserKeepsPasswordWhenOmitted(t *testing.T) {
	users := newFakeUsers()
	e := userServer(users, newTokens())
	require.Equal(t, http.StatusCreated, do(e, http.MethodPost, "/api/users", ashaBody, "").Code)
	tok := login(t, e, "asha@x.com", "secret123")
	oldHash := users.rows[1].PasswordHash

	rec := do(e, http.MethodPut, "/api/users/1", `{"username":"asha2","email":"asha@x.com","phone":"0713","role":"farmer"}`, tok)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "User updated successfully.", decode(t, rec)["message"])
	assert.Equal(t, oldHash, users.rows[1].PasswordHash)
	assert.Equal(t, model.RoleFarmer, users.rows[1].Role)

	rec = do(e, http.MethodPut, "/api/users/1", `{"username":"asha2","email":"asha@x.com","phone":"0713","role":"farmer","password":"another-secret"}`, tok)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEqual(t, oldHash, users.rows[1].PasswordHash)
	login(t, e, "asha@x.com", "another-secret")
}

func TestUpdateUserRejectsUnknownRole(t *testing.T) {
	e := userServer(newFakeUsers(), newTokens())
	require.Equal(t, http.StatusCreated, do(e, http.MethodPost, "/api/users", ashaBody, "").Code)
	tok := login(t, e, "asha@x.com", "secret123")

	rec := do(e, http.MethodPut, "/api/users/1", `{"username":"a","email":"asha@x.com","phone":"1","role":"king"}`, tok)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetUserNotFoundAndBadID(t *testing.T) {
	e := userServer(newFakeUsers(), newTokens())
	require.Equal(t, http.StatusCreated, do(e, http.MethodPost, "/api/users", ashaBody, "").Code)
	tok := login(t, e, "asha@x.com", "secret123")

	rec := do(e, http.MethodGet, "/api/users/99", "", tok)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, msgNotFound, decode(t, rec)["message"])

	rec = do(e, http.MethodGet, "/api/users/abc", "", tok)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ----- resources -----

func cropServer(store *fakeStore[model.Crop], cache Invalidator) *echo.Echo {
	h := NewCropHandler(store, cache, quietLog())
	e := echo.New()
	e.POST("/api/crops", h.Create)
	e.GET("/api/crops", h.List)
	e.GET("/api/crops/:id", h.Get)
	e.PUT("/api/crops/:id", h.Update)
	e.DELETE("/api/crops/:id", h.Delete)
	return e
}

func cropStore() *fakeStore[model.Crop] {
	return newFakeStore(func(c model.Crop) uint64 { return c.ID })
}

func TestCropLifecycle(t *testing.T) {
	store := cropStore()
	cache := &countingInvalidator{}
	e := cropServer(store, cache)

	rec := do(e, http.MethodGet, "/api/crops", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = do(e, http.MethodPost, "/api/crops", `{"farmer_id":2,"name":"Maize","description":"dry","price":12.5,"availability":"in stock"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.EqualValues(t, 1, decode(t, rec)["id"])
	assert.Equal(t, "Maize", store.rows[1].Name)

	rec = do(e, http.MethodPut, "/api/crops/1", `{"farmer_id":2,"name":"Maize","price":15,"availability":"sold out"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Crop updated successfully.", decode(t, rec)["message"])
	assert.Equal(t, 15.0, store.rows[1].Price)

	rec = do(e, http.MethodDelete, "/api/crops/1", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Crop deleted successfully.", decode(t, rec)["message"])

	// Deleting again still succeeds.
	rec = do(e, http.MethodDelete, "/api/crops/1", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(e, http.MethodGet, "/api/crops/1", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	assert.Len(t, cache.routes, 8)
	assert.Equal(t, CropsRoute, cache.routes[0])
	assert.Equal(t, CropByIDRoute, cache.routes[1])
}

func TestUpdateOfMissingRowStillSucceeds(t *testing.T) {
	store := newFakeStore(func(tx model.Transaction) uint64 { return tx.ID })
	h := NewTransactionHandler(store, quietLog())
	e := echo.New()
	e.PUT("/api/transactions/:id", h.Update)

	rec := do(e, http.MethodPut, "/api/transactions/42", `{"user_id":1,"amount":10,"transaction_type":"payment","status":"done"}`, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Transaction updated successfully.", decode(t, rec)["message"])
	assert.Empty(t, store.rows)
}

func TestDatabaseErrorIsGeneric500(t *testing.T) {
	store := cropStore()
	store.err = errors.New("dial tcp 10.0.0.1:3306: connection refused")
	cache := &countingInvalidator{}
	e := cropServer(store, cache)

	for _, tc := range []struct{ method, path, body string }{
		{http.MethodGet, "/api/crops", ""},
		{http.MethodGet, "/api/crops/1", ""},
		{http.MethodPost, "/api/crops", `{"name":"x"}`},
		{http.MethodDelete, "/api/crops/1", ""},
	} {
		rec := do(e, tc.method, tc.path, tc.body, "")
		assert.Equal(t, http.StatusInternalServerError, rec.Code, tc.method+" "+tc.path)
		assert.Equal(t, msgDatabase, decode(t, rec)["message"])
		assert.NotContains(t, rec.Body.String(), "10.0.0.1")
	}
	assert.Empty(t, cache.routes)
}

func orderServer(pub service.OrderPublisher) *echo.Echo {
	store := newFakeStore(func(o model.Order) uint64 { return o.ID })
	h := NewOrderHandler(store, pub, quietLog())
	e := echo.New()
	e.POST("/api/orders", h.Create)
	e.PUT("/api/orders/:id", h.Update)
	return e
}

func TestOrderEventsArePublished(t *testing.T) {
	pub := &recordingPublisher{}
	e := orderServer(pub)

	rec := do(e, http.MethodPost, "/api/orders", `{"customer_id":3,"crop_id":1,"quantity":2,"total_price":25,"order_status":"shipped"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = do(e, http.MethodPut, "/api/orders/1", `{"customer_id":3,"crop_id":1,"quantity":2,"total_price":25,"order_status":"shipped"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)

	require.Len(t, pub.events, 2)
	assert.Equal(t, queue.OrderPlaced, pub.events[0].Kind)
	assert.Equal(t, uint64(1), pub.events[0].OrderID)
	assert.Equal(t, model.OrderStatusPending, pub.events[0].Status)
	assert.Equal(t, queue.OrderUpdated, pub.events[1].Kind)
	assert.Equal(t, "shipped", pub.events[1].Status)
}

func TestOrderEventDecodesOnTheQueue(t *testing.T) {
	pub := &recordingPublisher{}
	e := orderServer(pub)
	before := time.Now().UTC().Truncate(time.Second)

	rec := do(e, http.MethodPost, "/api/orders", `{"customer_id":3,"crop_id":1,"quantity":2,"total_price":25}`, "")
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, pub.events, 1)

	body, err := json.Marshal(pub.events[0])
	require.NoError(t, err)
	var wire map[string]any
	require.NoError(t, json.Unmarshal(body, &wire))
	at, ok := wire["at"].(string)
	require.True(t, ok, "at must travel as a string")
	ts, err := time.Parse(time.RFC3339, at)
	require.NoError(t, err)
	assert.False(t, ts.Before(before))
	assert.Equal(t, "order.placed", wire["kind"])
	assert.Equal(t, "pending", wire["status"])
}

func TestOrderUpdateOfMissingRowPublishesNothing(t *testing.T) {
	pub := &recordingPublisher{}
	e := orderServer(pub)

	rec := do(e, http.MethodPut, "/api/orders/9", `{"customer_id":3,"crop_id":1,"quantity":2,"total_price":25,"order_status":"shipped"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Order updated successfully.", decode(t, rec)["message"])
	assert.Empty(t, pub.events)
}

func TestCropWritesInvalidateBothRoutes(t *testing.T) {
	for _, tc := range []struct{ name, method, path, body string }{
		{"create", http.MethodPost, "/api/crops", `{"farmer_id":2,"name":"Mtama","price":3}`},
		{"update", http.MethodPut, "/api/crops/1", `{"farmer_id":2,"name":"Mtama","price":4}`},
		{"delete", http.MethodDelete, "/api/crops/1", ""},
	} {
		t.Run(tc.name, func(t *testing.T) {
			store := cropStore()
			store.rows[1] = model.Crop{ID: 1, FarmerID: 2, Name: "Mtama", Price: 3}
			store.nextID = 1
			cache := &countingInvalidator{}
			e := cropServer(store, cache)

			rec := do(e, tc.method, tc.path, tc.body, "")
			require.Less(t, rec.Code, 300, rec.Body.String())
			assert.Equal(t, []string{CropsRoute, CropByIDRoute}, cache.routes)
		})
	}
}

func TestCropUpdateOfMissingRowKeepsCache(t *testing.T) {
	cache := &countingInvalidator{}
	e := cropServer(cropStore(), cache)

	rec := do(e, http.MethodPut, "/api/crops/5", `{"farmer_id":2,"name":"Mtama","price":4}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, cache.routes)
}

func TestChatHasNoUpdateButSupportsReadAndDelete(t *testing.T) {
	store := newFakeStore(func(m model.ChatMessage) uint64 { return m.ID })
	h := NewChatHandler(store, quietLog())
	e := echo.New()
	e.POST("/api/chat", h.Create)
	e.GET("/api/chat/:id", h.Get)
	e.DELETE("/api/chat/:id", h.Delete)

	rec := do(e, http.MethodPost, "/api/chat", `{"sender_id":1,"receiver_id":2,"message":"Habari"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(e, http.MethodGet, "/api/chat/1", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Habari", decode(t, rec)["message"])

	rec = do(e, http.MethodDelete, "/api/chat/1", "", "")
	assert.Equal(t, "Chat deleted successfully.", decode(t, rec)["message"])
}

func TestAdminWritesStampAdminFromToken(t *testing.T) {
	reports := newFakeStore(func(r model.Report) uint64 { return r.ID })
	settings := newFakeStore(func(s model.Setting) uint64 { return s.ID })
	tokens := newTokens()
	log := quietLog()
	h := NewAdminHandler(reports, settings, log)

	e := echo.New()
	admin := []echo.MiddlewareFunc{middleware.JWTAuth(tokens, log), middleware.RequireRole(model.RoleAdmin)}
	e.GET("/api/reports", h.ListReports)
	e.POST("/api/reports", h.CreateReport, admin...)
	e.POST("/api/settings", h.CreateSetting, admin...)

	adminTok, err := tokens.Issue(model.User{ID: 7, Role: model.RoleAdmin, Email: "root@x.com"})
	require.NoError(t, err)
	customerTok, err := tokens.Issue(model.User{ID: 8, Role: model.RoleCustomer, Email: "c@x.com"})
	require.NoError(t, err)

	rec := do(e, http.MethodPost, "/api/reports", `{"report_type":"sales","content":"ok"}`, customerTok.Token)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(e, http.MethodPost, "/api/reports", `{"report_type":"sales","content":"ok"}`, adminTok.Token)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, uint64(7), reports.rows[1].AdminID)

	rec = do(e, http.MethodPost, "/api/settings", `{"admin_id":3,"setting_name":"fee","setting_value":"2"}`, adminTok.Token)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, uint64(3), settings.rows[1].AdminID)

	rec = do(e, http.MethodGet, "/api/reports", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

type pingErr struct{ err error }

func (p pingErr) PingContext(context.Context) error { return p.err }

func TestHealth(t *testing.T) {
	e := echo.New()
	e.GET("/healthz", Health(pingErr{}))
	assert.Equal(t, http.StatusOK, do(e, http.MethodGet, "/healthz", "", "").Code)

	e = echo.New()
	e.GET("/healthz", Health(pingErr{err: errors.New("gone")}))
	assert.Equal(t, http.StatusServiceUnavailable, do(e, http.MethodGet, "/healthz", "", "").Code)
}

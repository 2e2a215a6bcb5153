package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aseid1997/rejeb-arabian-mejlis/internal/admin"
	"github.com/aseid1997/rejeb-arabian-mejlis/internal/catalog"
	"github.com/aseid1997/rejeb-arabian-mejlis/internal/checkout"
	"github.com/aseid1997/rejeb-arabian-mejlis/internal/contact"
	"github.com/aseid1997/rejeb-arabian-mejlis/internal/domain"
	"github.com/aseid1997/rejeb-arabian-mejlis/internal/logger"
	"github.com/aseid1997/rejeb-arabian-mejlis/internal/repository"
	"github.com/aseid1997/rejeb-arabian-mejlis/internal/session"
)

type mockSink struct {
	m         sync.Mutex
	available bool
	err       error
	orders    []domain.Order
	contacts  []domain.Contact
}

func (s *mockSink) IsAvailable() bool { return s.available }

func (s *mockSink) Submit(_ context.Context, order domain.Order) error {
	s.m.Lock()
	defer s.m.Unlock()
	if s.err != nil {
		return s.err
	}
	s.orders = append(s.orders, order)
	return nil
}

func (s *mockSink) SaveContact(_ context.Context, c domain.Contact) error {
	s.m.Lock()
	defer s.m.Unlock()
	if s.err != nil {
		return s.err
	}
	s.contacts = append(s.contacts, c)
	return nil
}

type testServer struct {
	t       *testing.T
	handler http.Handler
	cookie  *http.Cookie
}

func newTestServer(t *testing.T, sink *mockSink, store admin.Store) *testServer {
	t.Helper()
	sessions := session.NewMemoryStore(time.Hour)
	t.Cleanup(func() { sessions.Close() })

	mode := "demo"
	if sink.available {
		mode = "live"
	}
	h := NewRouter(RouterConfig{
		Mode:               mode,
		Catalog:            catalog.NewStatic(),
		Sessions:           session.NewManager(sessions),
		Checkout:           checkout.NewWorkflow(sink, checkout.WithLogger(logger.Discard())),
		Contact:            contact.NewService(sink, logger.Discard()),
		Admin:              admin.NewService(store, admin.WithLogger(logger.Discard())),
		RequestTimeout:     5 * time.Second,
		MaxRequestBodySize: 1 << 10,
		SessionTTL:         time.Hour,
		CORSAllowedOrigins: []string{"*"},
		ServiceName:        "storefront-test",
	})
	return &testServer{t: t, handler: h}
}

// do sends the request with the session cookie from earlier responses.
func (s *testServer) do(method, path string, body interface{}, headers ...string) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(s.t, json.NewEncoder(&buf).Encode(b))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	if s.cookie != nil {
		req.AddCookie(s.cookie)
	}

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	for _, c := range rec.Result().Cookies() {
		if c.Name == SessionCookie {
			s.cookie = c
		}
	}
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v), rec.Body.String())
	return v
}

var validCustomer = domain.CustomerInfo{
	Name:    "Abebe Kebede",
	Email:   "abebe@example.com",
	Phone:   "+251911000000",
	Address: "Bole, Addis Ababa",
}

func TestHealthAndStatus(t *testing.T) {
	s := newTestServer(t, &mockSink{}, admin.NewDemoStore())

	rec := s.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, "/api/v1/status", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	status := decode[StatusResponse](t, rec)
	assert.Equal(t, StatusResponse{Mode: "demo", Currency: "ETB"}, status)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestCatalog_LanguageResolution(t *testing.T) {
	s := newTestServer(t, &mockSink{}, admin.NewDemoStore())

	rec := s.do(http.MethodGet, "/api/v1/catalog/products", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[ProductsResponse](t, rec)
	require.Len(t, resp.Products, 4)
	assert.Equal(t, domain.LanguageEnglish, resp.Language)
	assert.Equal(t, "Royal Majlis Set", resp.Products[0].DisplayName)
	assert.Equal(t, "ETB 125,000", resp.Products[0].PriceDisplay)

	rec = s.do(http.MethodGet, "/api/v1/catalog/products", nil, "Accept-Language", "am-ET,am;q=0.9")
	resp = decode[ProductsResponse](t, rec)
	assert.Equal(t, domain.LanguageAmharic, resp.Language)
	assert.Equal(t, "ንጉሣዊ መጅሊስ ስብስብ", resp.Products[0].DisplayName)

	rec = s.do(http.MethodPut, "/api/v1/session/language", LanguageRequestDTO{Language: domain.LanguageAmharic})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, "/api/v1/catalog/products", nil, "Accept-Language", "en")
	resp = decode[ProductsResponse](t, rec)
	assert.Equal(t, domain.LanguageAmharic, resp.Language, "session choice beats Accept-Language")

	rec = s.do(http.MethodGet, "/api/v1/catalog/products?lang=en", nil)
	resp = decode[ProductsResponse](t, rec)
	assert.Equal(t, domain.LanguageEnglish, resp.Language, "?lang beats the session")
}

func TestCatalog_CategoryFilter(t *testing.T) {
	s := newTestServer(t, &mockSink{}, admin.NewDemoStore())

	rec := s.do(http.MethodGet, "/api/v1/catalog/products?category=curtains", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[ProductsResponse](t, rec)
	require.Len(t, resp.Products, 1)
	assert.Equal(t, "4", resp.Products[0].ID)

	rec = s.do(http.MethodGet, "/api/v1/catalog/products?category=lamps", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodGet, "/api/v1/catalog/categories", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	cats := decode[map[string][]domain.Category](t, rec)
	assert.Equal(t, domain.Categories(), cats["categories"])
}

func TestSession_LanguageValidation(t *testing.T) {
	s := newTestServer(t, &mockSink{}, admin.NewDemoStore())

	rec := s.do(http.MethodPut, "/api/v1/session/language", LanguageRequestDTO{Language: "fr"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPut, "/api/v1/session/language", "{broken")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSession_CookieIssuedAndKept(t *testing.T) {
	s := newTestServer(t, &mockSink{}, admin.NewDemoStore())

	rec := s.do(http.MethodGet, "/api/v1/session", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, s.cookie)
	first := s.cookie.Value
	assert.Equal(t, first, decode[SessionResponse](t, rec).ID)

	s.do(http.MethodGet, "/api/v1/session", nil)
	assert.Equal(t, first, s.cookie.Value)

	s.cookie = &http.Cookie{Name: SessionCookie, Value: "../../etc/passwd"}
	s.do(http.MethodGet, "/api/v1/session", nil)
	assert.NotEqual(t, "../../etc/passwd", s.cookie.Value)
}

func TestCart_Flow(t *testing.T) {
	s := newTestServer(t, &mockSink{}, admin.NewDemoStore())

	rec := s.do(http.MethodPost, "/api/v1/cart/items", AddItemRequestDTO{ProductID: "1"})
	require.Equal(t, http.StatusCreated, rec.Code)
	c := decode[CartResponse](t, rec)
	require.NotNil(t, c.Notification)
	assert.Equal(t, "Added to Cart", c.Notification.Title)
	assert.Equal(t, "Royal Majlis Set has been added to your cart.", c.Notification.Description)

	s.do(http.MethodPost, "/api/v1/cart/items", AddItemRequestDTO{ProductID: "4"})
	rec = s.do(http.MethodPost, "/api/v1/cart/items", AddItemRequestDTO{ProductID: "1"})
	c = decode[CartResponse](t, rec)
	require.Len(t, c.Items, 2)
	assert.Equal(t, "1", c.Items[0].ProductID)
	assert.Equal(t, 2, c.Items[0].Quantity)
	assert.Equal(t, 3, c.Count)
	assert.Equal(t, float64(285000), c.Total)
	assert.Equal(t, "ETB 285,000", c.TotalDisplay)

	rec = s.do(http.MethodPut, "/api/v1/cart/items/1", map[string]int{"quantity": 5})
	require.Equal(t, http.StatusOK, rec.Code)
	c = decode[CartResponse](t, rec)
	assert.Equal(t, "1", c.Items[0].ProductID, "line order is stable across quantity updates")
	assert.Equal(t, 5, c.Items[0].Quantity)

	rec = s.do(http.MethodPut, "/api/v1/cart/items/1", map[string]int{"quantity": 0})
	c = decode[CartResponse](t, rec)
	require.Len(t, c.Items, 1)
	assert.Equal(t, "4", c.Items[0].ProductID)

	rec = s.do(http.MethodPut, "/api/v1/cart/items/4", map[string]int{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodDelete, "/api/v1/cart/items/4", nil)
	c = decode[CartResponse](t, rec)
	assert.Empty(t, c.Items)

	s.do(http.MethodPost, "/api/v1/cart/items", AddItemRequestDTO{ProductID: "2"})
	rec = s.do(http.MethodDelete, "/api/v1/cart", nil)
	c = decode[CartResponse](t, rec)
	assert.Equal(t, 0, c.Count)

	rec = s.do(http.MethodGet, "/api/v1/cart", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[CartResponse](t, rec).Items)
}

func TestCart_AddUnknownProduct(t *testing.T) {
	s := newTestServer(t, &mockSink{}, admin.NewDemoStore())

	rec := s.do(http.MethodPost, "/api/v1/cart/items", AddItemRequestDTO{ProductID: "99"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodPost, "/api/v1/cart/items", AddItemRequestDTO{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCheckout_OpenEmptyCart(t *testing.T) {
	s := newTestServer(t, &mockSink{}, admin.NewDemoStore())

	rec := s.do(http.MethodPost, "/api/v1/checkout/open", nil)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	resp := decode[ErrorResponse](t, rec)
	assert.Equal(t, "empty_cart", resp.Code)
	require.NotNil(t, resp.Notification)
	assert.Equal(t, "Empty Cart", resp.Notification.Title)
	assert.Equal(t, domain.VariantDestructive, resp.Notification.Variant)
}

func TestCheckout_DemoOutcome(t *testing.T) {
	s := newTestServer(t, &mockSink{}, admin.NewDemoStore())

	s.do(http.MethodPost, "/api/v1/cart/items", AddItemRequestDTO{ProductID: "3"})
	rec := s.do(http.MethodPost, "/api/v1/checkout/open", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, checkout.StateCollecting, decode[CheckoutResponse](t, rec).State)

	rec = s.do(http.MethodPost, "/api/v1/checkout/submit", validCustomer)
	require.Equal(t, http.StatusAccepted, rec.Code)
	resp := decode[SubmitResponse](t, rec)
	assert.Equal(t, checkout.OutcomeDemo, resp.Outcome)
	assert.Equal(t, "Order Received (Demo Mode)", resp.Notification.Title)
	assert.Equal(t, float64(95000), resp.Order.TotalAmount)
	assert.Equal(t, checkout.StateIdle, resp.Checkout.State)
	assert.Empty(t, resp.Checkout.Cart.Items)
	assert.True(t, resp.Checkout.Customer.IsZero())
}

func TestCheckout_PlacedOutcome(t *testing.T) {
	sink := &mockSink{available: true}
	s := newTestServer(t, sink, admin.NewDemoStore())

	s.do(http.MethodPost, "/api/v1/cart/items", AddItemRequestDTO{ProductID: "2"})
	s.do(http.MethodPost, "/api/v1/checkout/open", nil)
	rec := s.do(http.MethodPut, "/api/v1/checkout/customer", validCustomer)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodPost, "/api/v1/checkout/submit", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	resp := decode[SubmitResponse](t, rec)
	assert.Equal(t, checkout.OutcomePlaced, resp.Outcome)
	assert.Equal(t, "Order Placed", resp.Notification.Title)
	require.Len(t, sink.orders, 1)
	assert.Equal(t, resp.Order.ID, sink.orders[0].ID)
	assert.Equal(t, validCustomer, sink.orders[0].Customer)
}

func TestCheckout_ValidationKeepsTypedDetails(t *testing.T) {
	sink := &mockSink{available: true}
	s := newTestServer(t, sink, admin.NewDemoStore())

	s.do(http.MethodPost, "/api/v1/cart/items", AddItemRequestDTO{ProductID: "2"})
	s.do(http.MethodPost, "/api/v1/checkout/open", nil)

	bad := validCustomer
	bad.Email = "not-an-email"
	rec := s.do(http.MethodPost, "/api/v1/checkout/submit", bad)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	resp := decode[ErrorResponse](t, rec)
	assert.Equal(t, "email", resp.Details)
	require.NotNil(t, resp.Notification)
	assert.Equal(t, "Invalid Email", resp.Notification.Title)

	rec = s.do(http.MethodGet, "/api/v1/checkout", nil)
	state := decode[CheckoutResponse](t, rec)
	assert.Equal(t, checkout.StateCollecting, state.State)
	assert.Equal(t, "not-an-email", state.Customer.Email)
	assert.Len(t, state.Cart.Items, 1)
	assert.Empty(t, sink.orders)
}

func TestCheckout_SubmitWhenIdle(t *testing.T) {
	s := newTestServer(t, &mockSink{}, admin.NewDemoStore())

	s.do(http.MethodPost, "/api/v1/cart/items", AddItemRequestDTO{ProductID: "2"})
	rec := s.do(http.MethodPost, "/api/v1/checkout/submit", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(http.MethodPost, "/api/v1/checkout/cancel", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCheckout_CancelKeepsCustomer(t *testing.T) {
	s := newTestServer(t, &mockSink{}, admin.NewDemoStore())

	s.do(http.MethodPost, "/api/v1/cart/items", AddItemRequestDTO{ProductID: "2"})
	s.do(http.MethodPost, "/api/v1/checkout/open", nil)
	s.do(http.MethodPut, "/api/v1/checkout/customer", validCustomer)

	rec := s.do(http.MethodPost, "/api/v1/checkout/cancel", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	state := decode[CheckoutResponse](t, rec)
	assert.Equal(t, checkout.StateIdle, state.State)
	assert.Equal(t, validCustomer, state.Customer)
}

func TestContact_Outcomes(t *testing.T) {
	s := newTestServer(t, &mockSink{}, admin.NewDemoStore())

	rec := s.do(http.MethodPost, "/api/v1/contact", contact.Request{Name: "Sara", Email: "sara@example.com", Message: "Do you deliver?"})
	require.Equal(t, http.StatusAccepted, rec.Code)
	res := decode[contact.Result](t, rec)
	assert.Equal(t, contact.OutcomeDemo, res.Outcome)

	rec = s.do(http.MethodPost, "/api/v1/contact", contact.Request{Name: "Sara", Email: "sara@", Message: "Hi"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	sink := &mockSink{available: true}
	live := newTestServer(t, sink, admin.NewDemoStore())
	live.do(http.MethodPut, "/api/v1/session/language", LanguageRequestDTO{Language: domain.LanguageAmharic})
	rec = live.do(http.MethodPost, "/api/v1/contact", contact.Request{Name: "Sara", Email: "sara@example.com", Message: "Do you deliver?"})
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, sink.contacts, 1)
	assert.Equal(t, domain.LanguageAmharic, sink.contacts[0].Language)
}

func TestBodyLimit(t *testing.T) {
	s := newTestServer(t, &mockSink{}, admin.NewDemoStore())

	huge := `{"product_id":"` + strings.Repeat("x", 4<<10) + `"}`
	rec := s.do(http.MethodPost, "/api/v1/cart/items", huge)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdmin_DemoMode(t *testing.T) {
	s := newTestServer(t, &mockSink{}, admin.NewDemoStore())

	rec := s.do(http.MethodGet, "/api/v1/admin/status", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	status := decode[AdminStatusResponse](t, rec)
	assert.Equal(t, "demo", status.Mode)
	require.NotNil(t, status.Notification)
	assert.Equal(t, "Demo Mode", status.Notification.Title)

	rec = s.do(http.MethodGet, "/api/v1/admin/products", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[map[string][]domain.Product](t, rec)["products"], 6)

	rec = s.do(http.MethodGet, "/api/v1/admin/items", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	items := decode[map[string][]domain.Item](t, rec)
	assert.NotNil(t, items["items"])
	assert.Empty(t, items["items"])

	rec = s.do(http.MethodPost, "/api/v1/admin/products", admin.ProductInput{Name: "Sofa", Category: domain.CategorySofas, Price: 10})
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	resp := decode[ErrorResponse](t, rec)
	assert.Equal(t, "demo_mode", resp.Code)
	require.NotNil(t, resp.Notification)
	assert.Equal(t, "Product management requires database configuration. This is a demo.", resp.Notification.Description)

	rec = s.do(http.MethodPatch, "/api/v1/admin/orders/missing/status", StatusRequestDTO{Status: domain.OrderStatusShipped})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = s.do(http.MethodGet, "/api/v1/admin/orders/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdmin_Live(t *testing.T) {
	creds := &repository.Credentials{
		Driver:            repository.DialectSQLite,
		Path:              ":memory:",
		MigrationsDirPath: "../repository/migrations",
	}
	repo, err := repository.NewRepository(creds)
	require.NoError(t, err)
	require.NoError(t, repo.RunMigrations(creds))
	t.Cleanup(func() { repo.Close() })

	s := newTestServer(t, &mockSink{available: true}, repo)

	rec := s.do(http.MethodPost, "/api/v1/admin/categories", admin.CategoryInput{Name: "Tables"})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[struct {
		Data         domain.ProductCategory `json:"data"`
		Notification domain.Notification    `json:"notification"`
	}](t, rec)
	assert.Equal(t, "Category Added", created.Notification.Title)

	rec = s.do(http.MethodPost, "/api/v1/admin/categories", admin.CategoryInput{Name: "Tables"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(http.MethodPut, "/api/v1/admin/categories/"+created.Data.ID, admin.CategoryInput{Name: "Dining Tables"})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodDelete, "/api/v1/admin/categories/"+created.Data.ID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodDelete, "/api/v1/admin/categories/"+created.Data.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodPost, "/api/v1/admin/products", admin.ProductInput{Name: "Sofa", Category: "lamps", Price: 10})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "category", decode[ErrorResponse](t, rec).Details)

	rec = s.do(http.MethodPut, "/api/v1/admin/products/1", admin.ProductInput{Name: "Royal Majlis Set", Category: domain.CategoryMajlis, Price: 130000})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, "/api/v1/admin/contacts", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[map[string][]domain.Contact](t, rec)["contacts"])
}

package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/mmeshcher/cafe-order-system/internal/middleware"
	"github.com/mmeshcher/cafe-order-system/internal/model"
	"github.com/mmeshcher/cafe-order-system/internal/service"
)

type stubService struct {
	registerUserID int64
	registerErr    error

	authUser *model.User
	authErr  error

	menuResp []model.MenuItem
	menuErr  error

	cartResp *model.Cart
	cartErr  error

	addToCartErr error

	promoResp *model.Promo
	promoErr  error

	checkoutOrderID int64
	checkoutErr     error

	ordersResp []model.Order
	ordersErr  error

	orderResp *model.Order
	orderErr  error

	updateStatusErr error

	qrPNG []byte
	qrErr error

	reviewID  int64
	reviewErr error

	favoriteOn  bool
	favoriteErr error
}

func (s *stubService) RegisterUser(ctx context.Context, username, password string) (int64, error) {
	return s.registerUserID, s.registerErr
}

func (s *stubService) CreateUser(ctx context.Context, username, password string, role model.Role) (int64, error) {
	return 0, nil
}

func (s *stubService) AuthenticateUser(ctx context.Context, username, password string) (*model.User, error) {
	return s.authUser, s.authErr
}

func (s *stubService) ListUsers(ctx context.Context) ([]model.User, error) { return nil, nil }

func (s *stubService) UpdateUserRole(ctx context.Context, username string, role model.Role) error {
	return nil
}

func (s *stubService) DeleteUser(ctx context.Context, username string) error { return nil }

func (s *stubService) ListMenu(ctx context.Context, search string, userID int64) ([]model.MenuItem, error) {
	return s.menuResp, s.menuErr
}

func (s *stubService) GetMenuItem(ctx context.Context, id int64) (*model.MenuItem, error) {
	return nil, nil
}

func (s *stubService) CreateMenuItem(ctx context.Context, item model.MenuItem, image []byte, imageName string) (int64, error) {
	return 0, nil
}

func (s *stubService) UpdateMenuItem(ctx context.Context, item model.MenuItem, image []byte, imageName string) error {
	return nil
}

func (s *stubService) DeleteMenuItem(ctx context.Context, id int64) error { return nil }

func (s *stubService) AddToCart(ctx context.Context, userID, menuID, qty int64) error {
	return s.addToCartErr
}

func (s *stubService) RemoveFromCart(ctx context.Context, userID, menuID int64) error { return nil }

func (s *stubService) ClearCart(ctx context.Context, userID int64) error { return nil }

func (s *stubService) GetCart(ctx context.Context, userID int64) (*model.Cart, error) {
	return s.cartResp, s.cartErr
}

func (s *stubService) ApplyPromo(ctx context.Context, userID int64, code string) (*model.Promo, error) {
	return s.promoResp, s.promoErr
}

func (s *stubService) Checkout(ctx context.Context, userID int64, payment model.PaymentMethod) (int64, error) {
	return s.checkoutOrderID, s.checkoutErr
}

func (s *stubService) ListPromos(ctx context.Context) ([]model.Promo, error) { return nil, nil }

func (s *stubService) CreatePromo(ctx context.Context, code string, discountAmount int64, active bool) (int64, error) {
	return 0, nil
}

func (s *stubService) UpdatePromo(ctx context.Context, p model.Promo) error { return nil }

func (s *stubService) DeletePromo(ctx context.Context, id int64) error { return nil }

func (s *stubService) GetOrdersByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	return s.ordersResp, s.ordersErr
}

func (s *stubService) GetAllOrders(ctx context.Context) ([]model.Order, error) {
	return s.ordersResp, s.ordersErr
}

func (s *stubService) GetOrder(ctx context.Context, orderID, userID int64, role model.Role) (*model.Order, error) {
	return s.orderResp, s.orderErr
}

func (s *stubService) UpdateOrderStatus(ctx context.Context, orderID int64, next model.OrderStatus) error {
	return s.updateStatusErr
}

func (s *stubService) OrderPaymentQR(ctx context.Context, orderID, userID int64, role model.Role) ([]byte, error) {
	return s.qrPNG, s.qrErr
}

func (s *stubService) SubmitReview(ctx context.Context, userID, menuID int64, rating int, text string) (int64, error) {
	return s.reviewID, s.reviewErr
}

func (s *stubService) GetMenuRating(ctx context.Context, menuID int64) (*model.MenuRating, error) {
	return &model.MenuRating{}, nil
}

func (s *stubService) GetReviewsForMenu(ctx context.Context, menuID int64) ([]model.Review, error) {
	return nil, nil
}

func (s *stubService) GetAllReviews(ctx context.Context) ([]model.Review, error) { return nil, nil }

func (s *stubService) ToggleFavorite(ctx context.Context, userID, menuID int64) (bool, error) {
	return s.favoriteOn, s.favoriteErr
}

func (s *stubService) ListFavorites(ctx context.Context, userID int64) ([]model.MenuItem, error) {
	return nil, nil
}

func (s *stubService) DailyRevenue(ctx context.Context) ([]model.DailyRevenue, error) {
	return nil, nil
}

func (s *stubService) TopSellingItems(ctx context.Context, limit int) ([]model.TopItem, error) {
	return nil, nil
}

func newTestHandler(t *testing.T, svc Service) *Handler {
	t.Helper()

	logger, err := zap.NewDevelopment()
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}

	auth := middleware.NewAuthMiddleware("test-secret")

	return NewHandler(svc, logger, auth)
}

func authCookie(t *testing.T, h *Handler, userID int64, role model.Role) *http.Cookie {
	t.Helper()

	rec := httptest.NewRecorder()
	h.authMiddleware.SetAuthCookie(rec, userID, role)

	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatalf("no cookies set by SetAuthCookie")
	}
	return cookies[0]
}

func TestRegister_Success(t *testing.T) {
	svc := &stubService{registerUserID: 42}
	h := newTestHandler(t, svc)

	body, _ := json.Marshal(credentialsRequest{
		Username: "budi",
		Password: "pass",
	})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Register(rec, req)

	res := rec.Result()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", res.StatusCode, http.StatusOK)
	}
	if len(res.Cookies()) == 0 {
		t.Fatalf("register must set auth cookie")
	}
}

func TestRegister_MissingFields(t *testing.T) {
	h := newTestHandler(t, &stubService{})

	body, _ := json.Marshal(credentialsRequest{Username: "budi"})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Register(rec, req)

	if rec.Result().StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Result().StatusCode, http.StatusBadRequest)
	}
}

func TestLogin_UnauthorizedOnBadCredentials(t *testing.T) {
	svc := &stubService{authErr: service.ErrInvalidCredentials}
	h := newTestHandler(t, svc)

	body, _ := json.Marshal(credentialsRequest{
		Username: "budi",
		Password: "wrong",
	})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	if rec.Result().StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Result().StatusCode, http.StatusUnauthorized)
	}
}

func TestGetOrders_NoContent(t *testing.T) {
	svc := &stubService{ordersResp: []model.Order{}}
	h := newTestHandler(t, svc)

	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	req.AddCookie(authCookie(t, h, 1, model.RoleUser))

	rec := httptest.NewRecorder()
	h.authMiddleware.Middleware(http.HandlerFunc(h.GetOrders)).ServeHTTP(rec, req)

	if rec.Result().StatusCode != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rec.Result().StatusCode, http.StatusNoContent)
	}
}

func TestGetCart_JSONResponse(t *testing.T) {
	svc := &stubService{
		cartResp: &model.Cart{
			Lines: []model.CartLine{
				{MenuItemID: 10, Name: "Nasi Goreng", Price: 25000, Qty: 2, LineTotal: 50000},
			},
			Subtotal:  50000,
			PromoCode: "HEMAT10",
			Discount:  10000,
			Total:     40000,
		},
	}
	h := newTestHandler(t, svc)

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.AddCookie(authCookie(t, h, 1, model.RoleUser))

	rec := httptest.NewRecorder()
	h.authMiddleware.Middleware(http.HandlerFunc(h.GetCart)).ServeHTTP(rec, req)

	res := rec.Result()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", res.StatusCode, http.StatusOK)
	}
	if ct := res.Header.Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content-type = %q, want application/json", ct)
	}

	var cart model.Cart
	if err := json.NewDecoder(res.Body).Decode(&cart); err != nil {
		t.Fatalf("decode cart: %v", err)
	}
	if cart.Total != 40000 {
		t.Fatalf("Total = %d, want 40000", cart.Total)
	}
}

func TestAddToCart_BadRequestOnInvalidQuantity(t *testing.T) {
	svc := &stubService{addToCartErr: service.ErrInvalidQuantity}
	h := newTestHandler(t, svc)

	body, _ := json.Marshal(addToCartRequest{MenuItemID: 10, Qty: 0})

	req := httptest.NewRequest(http.MethodPost, "/api/cart/items", bytes.NewReader(body))
	req.AddCookie(authCookie(t, h, 1, model.RoleUser))

	rec := httptest.NewRecorder()
	h.authMiddleware.Middleware(http.HandlerFunc(h.AddToCart)).ServeHTTP(rec, req)

	if rec.Result().StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Result().StatusCode, http.StatusBadRequest)
	}
}

func TestCheckout_Created(t *testing.T) {
	svc := &stubService{checkoutOrderID: 7}
	h := newTestHandler(t, svc)

	body, _ := json.Marshal(checkoutRequest{PaymentMethod: "QRIS"})

	req := httptest.NewRequest(http.MethodPost, "/api/cart/checkout", bytes.NewReader(body))
	req.AddCookie(authCookie(t, h, 1, model.RoleUser))

	rec := httptest.NewRecorder()
	h.authMiddleware.Middleware(http.HandlerFunc(h.Checkout)).ServeHTTP(rec, req)

	res := rec.Result()
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want %d", res.StatusCode, http.StatusCreated)
	}

	var resp checkoutResponse
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.OrderID != 7 {
		t.Fatalf("order_id = %d, want 7", resp.OrderID)
	}
}

func TestCheckout_ConflictOnEmptyCart(t *testing.T) {
	svc := &stubService{checkoutErr: service.ErrEmptyCart}
	h := newTestHandler(t, svc)

	body, _ := json.Marshal(checkoutRequest{PaymentMethod: "Cash"})

	req := httptest.NewRequest(http.MethodPost, "/api/cart/checkout", bytes.NewReader(body))
	req.AddCookie(authCookie(t, h, 1, model.RoleUser))

	rec := httptest.NewRecorder()
	h.authMiddleware.Middleware(http.HandlerFunc(h.Checkout)).ServeHTTP(rec, req)

	if rec.Result().StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Result().StatusCode, http.StatusBadRequest)
	}
}

func TestSubmitReview_ForbiddenWithoutCompletedOrder(t *testing.T) {
	svc := &stubService{reviewErr: service.ErrReviewNotAllowed}
	h := newTestHandler(t, svc)

	body, _ := json.Marshal(submitReviewRequest{Rating: 5, Text: "enak"})

	r := h.SetupRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/menu/10/reviews", bytes.NewReader(body))
	req.AddCookie(authCookie(t, h, 1, model.RoleUser))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Result().StatusCode != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", rec.Result().StatusCode, http.StatusForbidden)
	}
}

func TestUpdateOrderStatus_ConflictOnIllegalTransition(t *testing.T) {
	svc := &stubService{updateStatusErr: service.ErrIllegalTransition}
	h := newTestHandler(t, svc)

	body, _ := json.Marshal(updateStatusRequest{Status: "Processing"})

	r := h.SetupRouter()

	req := httptest.NewRequest(http.MethodPatch, "/api/admin/orders/1/status", bytes.NewReader(body))
	req.AddCookie(authCookie(t, h, 1, model.RoleAdmin))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Result().StatusCode != http.StatusConflict {
		t.Fatalf("status = %d, want %d", rec.Result().StatusCode, http.StatusConflict)
	}
}

func TestAdminRoutes_ForbiddenForUser(t *testing.T) {
	h := newTestHandler(t, &stubService{})
	r := h.SetupRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/admin/orders", nil)
	req.AddCookie(authCookie(t, h, 1, model.RoleUser))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Result().StatusCode != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", rec.Result().StatusCode, http.StatusForbidden)
	}
}

func TestProtectedRoutes_UnauthorizedWithoutCookie(t *testing.T) {
	h := newTestHandler(t, &stubService{})
	r := h.SetupRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Result().StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Result().StatusCode, http.StatusUnauthorized)
	}
}

func TestToggleFavorite_Response(t *testing.T) {
	svc := &stubService{favoriteOn: true}
	h := newTestHandler(t, svc)
	r := h.SetupRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/menu/10/favorite", nil)
	req.AddCookie(authCookie(t, h, 1, model.RoleUser))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	res := rec.Result()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", res.StatusCode, http.StatusOK)
	}

	var resp map[string]bool
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp["favorite"] {
		t.Fatalf("favorite = false, want true")
	}
}

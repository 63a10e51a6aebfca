package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/Shivansh-Bhushan-Dutt/Booking-system/internal/booking"
	"github.com/Shivansh-Bhushan-Dutt/Booking-system/internal/domain/bookings"
	"github.com/Shivansh-Bhushan-Dutt/Booking-system/internal/domain/tours"
	"github.com/Shivansh-Bhushan-Dutt/Booking-system/internal/infra/payments"
)

const testSecret = "test-secret"

type mockService struct {
	checkoutErr error
	confirmErr  error
	lastConfirm payments.Confirmation
}

func (m *mockService) Tour(_ context.Context, id int64) (*tours.Tour, error) {
	if id != 7 {
		return nil, tours.ErrNotFound
	}
	return &tours.Tour{ID: 7, Name: "Spiti Valley Circuit"}, nil
}

func (m *mockService) RoomRate() int64 { return 500 }

func (m *mockService) Quote(_ context.Context, s booking.Session) (booking.Quote, error) {
	q := booking.Quote{Session: s}
	q.Breakdown.TotalPrice = 50500
	return q, nil
}

func (m *mockService) Checkout(_ context.Context, s booking.Session) (booking.Checkout, error) {
	if m.checkoutErr != nil {
		return booking.Checkout{}, m.checkoutErr
	}
	return booking.Checkout{Reference: "ref-1", Order: payments.Order{Provider: "sandbox", OrderID: "sandbox-ref-1"}}, nil
}

func (m *mockService) ConfirmPayment(_ context.Context, c payments.Confirmation) (*bookings.Booking, error) {
	m.lastConfirm = c
	if m.confirmErr != nil {
		return nil, m.confirmErr
	}
	return &bookings.Booking{ID: 1, Reference: c.Reference, PaymentID: c.PaymentID}, nil
}

func (m *mockService) Booking(_ context.Context, ref string) (*bookings.Booking, error) {
	if ref != "ref-1" {
		return nil, bookings.ErrNotFound
	}
	return &bookings.Booking{ID: 1, Reference: ref}, nil
}

type mockTierStore struct{ updated map[int64]float64 }

func (m *mockTierStore) Get(_ context.Context, id int64) (*tours.Tour, error) {
	return &tours.Tour{ID: id}, nil
}
func (m *mockTierStore) ListTiers(context.Context, int64) ([]tours.TierRow, error) {
	return []tours.TierRow{{ID: 1, TourID: 7, Pax: 2, PricePerPerson: 25000}}, nil
}
func (m *mockTierStore) UpsertTier(context.Context, tours.TierRow) (int64, error) { return 2, nil }
func (m *mockTierStore) UpdateTierPrice(_ context.Context, _, id int64, price float64) error {
	m.updated[id] = price
	return nil
}
func (m *mockTierStore) DeleteTier(context.Context, int64, int64) error { return nil }

type mockLister struct{}

func (mockLister) ListCreated(context.Context, time.Time, time.Time) ([]bookings.Booking, error) {
	return []bookings.Booking{{Reference: "ref-1"}}, nil
}

type mockArchive struct{ key string }

func (m *mockArchive) Put(_ context.Context, key, _ string, _ []byte) (string, error) {
	m.key = key
	return "https://cdn.example.com/" + key, nil
}

func setupRouter(svc *mockService, tiers *mockTierStore, archive Archive) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewRouter(Deps{
		Log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		Service:   svc,
		Tiers:     tiers,
		Bookings:  mockLister{},
		Archive:   archive,
		JWTSecret: testSecret,
	})
}

func doJSON(r http.Handler, method, path, body string, header ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func adminHeader(t *testing.T, role string) []string {
	t.Helper()
	tok, err := IssueToken(testSecret, "ops@example.com", role, time.Hour)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return []string{"Authorization", "Bearer " + tok}
}

func TestGetTour(t *testing.T) {
	r := setupRouter(&mockService{}, nil, nil)

	if w := doJSON(r, http.MethodGet, "/api/tours/7", ""); w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if w := doJSON(r, http.MethodGet, "/api/tours/8", ""); w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	if w := doJSON(r, http.MethodGet, "/api/tours/abc", ""); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestRoomOptions(t *testing.T) {
	r := setupRouter(&mockService{}, nil, nil)
	w := doJSON(r, http.MethodGet, "/api/tours/7/rooms?adults=2&childrenWithBed=2", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body struct {
		Options     []map[string]any `json:"options"`
		Recommended []string         `json:"recommended"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if len(body.Options) != 6 || body.Recommended[0] != "s0-d2-t0" {
		t.Fatalf("unexpected body %+v", body)
	}
}

func TestQuote(t *testing.T) {
	r := setupRouter(&mockService{}, nil, nil)
	w := doJSON(r, http.MethodPost, "/api/tours/7/quote", `{"adults":2,"departureDate":"2026-11-20"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"totalPrice":50500`) || !strings.Contains(w.Body.String(), `"tourId":7`) {
		t.Fatalf("unexpected body %s", w.Body.String())
	}
	if w := doJSON(r, http.MethodPost, "/api/tours/7/quote", `{bad`); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for malformed body, got %d", w.Code)
	}
}

func TestCheckoutStatuses(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"created", nil, http.StatusCreated},
		{"validation", booking.ValidationErrors{{Field: "roomConfiguration", Message: "Please choose a room configuration."}}, http.StatusUnprocessableEntity},
		{"unknown provider", booking.ErrUnknownProvider, http.StatusBadRequest},
		{"tour missing", tours.ErrNotFound, http.StatusNotFound},
		{"gateway down", errors.New("create razorpay order: timeout"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := setupRouter(&mockService{checkoutErr: tt.err}, nil, nil)
			w := doJSON(r, http.MethodPost, "/api/bookings", `{"tourId":7,"adults":2}`)
			if w.Code != tt.code {
				t.Fatalf("expected %d, got %d: %s", tt.code, w.Code, w.Body.String())
			}
		})
	}
}

func TestCheckoutRequiresTour(t *testing.T) {
	r := setupRouter(&mockService{}, nil, nil)
	if w := doJSON(r, http.MethodPost, "/api/bookings", `{"adults":2}`); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestVerifyPayment(t *testing.T) {
	body := `{"reference":"ref-1","orderId":"order_1","paymentId":"pay_1","signature":"abc"}`

	r := setupRouter(&mockService{}, nil, nil)
	w := doJSON(r, http.MethodPost, "/api/payments/verify", body)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"status":"booked"`) {
		t.Fatalf("unexpected response %d %s", w.Code, w.Body.String())
	}

	r = setupRouter(&mockService{confirmErr: payments.ErrInvalidSignature}, nil, nil)
	if w := doJSON(r, http.MethodPost, "/api/payments/verify", body); w.Code != http.StatusPaymentRequired {
		t.Errorf("bad signature: expected 402, got %d", w.Code)
	}

	r = setupRouter(&mockService{confirmErr: fmt.Errorf("%w: ref-1 is failed", bookings.ErrNotPayable)}, nil, nil)
	if w := doJSON(r, http.MethodPost, "/api/payments/verify", body); w.Code != http.StatusConflict {
		t.Errorf("closed draft: expected 409, got %d", w.Code)
	}

	r = setupRouter(&mockService{confirmErr: &booking.SupportError{Reference: "ref-1", Err: errors.New("insert failed")}}, nil, nil)
	w = doJSON(r, http.MethodPost, "/api/payments/verify", body)
	if w.Code != http.StatusConflict {
		t.Fatalf("support state: expected 409, got %d", w.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp["status"] != "needs_support" || resp["reference"] != "ref-1" || !strings.Contains(resp["error"], "contact support") {
		t.Fatalf("unexpected support body %v", resp)
	}
}

func TestHDFCReturn(t *testing.T) {
	svc := &mockService{}
	r := setupRouter(svc, nil, nil)

	form := url.Values{"order_id": {"HDFC-ref-1"}, "status": {"CHARGED"}, "txn_id": {"txn-9"}, "signature": {"x"}}
	req := httptest.NewRequest(http.MethodPost, "/api/payments/hdfc/return", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if svc.lastConfirm.Reference != "ref-1" || svc.lastConfirm.PaymentID != "txn-9" || svc.lastConfirm.Fields["status"] != "CHARGED" {
		t.Fatalf("unexpected confirmation %+v", svc.lastConfirm)
	}
}

func TestGetBooking(t *testing.T) {
	r := setupRouter(&mockService{}, nil, nil)
	if w := doJSON(r, http.MethodGet, "/api/bookings/ref-1", ""); w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if w := doJSON(r, http.MethodGet, "/api/bookings/nope", ""); w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestAdminRequiresToken(t *testing.T) {
	r := setupRouter(&mockService{}, &mockTierStore{}, nil)

	if w := doJSON(r, http.MethodGet, "/api/admin/bookings.xlsx", ""); w.Code != http.StatusUnauthorized {
		t.Errorf("missing token: expected 401, got %d", w.Code)
	}
	if w := doJSON(r, http.MethodGet, "/api/admin/bookings.xlsx", "", "Authorization", "Bearer nope"); w.Code != http.StatusUnauthorized {
		t.Errorf("invalid token: expected 401, got %d", w.Code)
	}
	if w := doJSON(r, http.MethodGet, "/api/admin/bookings.xlsx", "", adminHeader(t, "guide")...); w.Code != http.StatusForbidden {
		t.Errorf("wrong role: expected 403, got %d", w.Code)
	}
	if w := doJSON(r, http.MethodGet, "/api/admin/bookings.xlsx", "", adminHeader(t, RoleAdmin)...); w.Code != http.StatusOK {
		t.Errorf("admin: expected 200, got %d", w.Code)
	}
}

func TestExportBookingsArchive(t *testing.T) {
	r := setupRouter(&mockService{}, &mockTierStore{}, nil)
	w := doJSON(r, http.MethodGet, "/api/admin/bookings.xlsx?archive=1", "", adminHeader(t, RoleAdmin)...)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("no archive: expected 503, got %d", w.Code)
	}

	arch := &mockArchive{}
	r = setupRouter(&mockService{}, &mockTierStore{}, arch)
	w = doJSON(r, http.MethodGet, "/api/admin/bookings.xlsx?from=2026-10-01&to=2026-11-01&archive=1", "", adminHeader(t, RoleAdmin)...)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if arch.key != "bookings/bookings_20261001_20261101.xlsx" {
		t.Fatalf("unexpected archive key %q", arch.key)
	}

	w = doJSON(r, http.MethodGet, "/api/admin/bookings.xlsx?from=yesterday", "", adminHeader(t, RoleAdmin)...)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad from: expected 400, got %d", w.Code)
	}
}

func TestTiersExportImport(t *testing.T) {
	store := &mockTierStore{updated: map[int64]float64{}}
	r := setupRouter(&mockService{}, store, nil)

	w := doJSON(r, http.MethodGet, "/api/admin/tours/7/tiers.xlsx", "", adminHeader(t, RoleAdmin)...)
	if w.Code != http.StatusOK {
		t.Fatalf("export: expected 200, got %d", w.Code)
	}

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	if err != nil {
		t.Fatalf("export is not xlsx: %v", err)
	}
	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	if err := f.SetCellValue(sheet, "D2", 24000); err != nil {
		t.Fatal(err)
	}
	edited := &bytes.Buffer{}
	if err := f.Write(edited); err != nil {
		t.Fatal(err)
	}
	_ = f.Close()

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	part, _ := mw.CreateFormFile("file", "tiers.xlsx")
	_, _ = part.Write(edited.Bytes())
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/admin/tours/7/tiers", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	hdr := adminHeader(t, RoleAdmin)
	req.Header.Set(hdr[0], hdr[1])
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("import: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if store.updated[1] != 24000 {
		t.Fatalf("expected tier 1 updated to 24000, got %v", store.updated)
	}
}

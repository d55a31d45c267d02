package paymentsession

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"navigator-backend/internal/domain/bookings"
	"navigator-backend/internal/domain/bootcamps"
	"navigator-backend/internal/domain/drafts"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
)

func newTestRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	newService = func() *Service { return svc }
	r := gin.New()
	r.GET("/api/payment/session/:sessionId", GetPaymentSession)
	r.POST("/api/payment/session/:sessionId/refresh", RefreshPaymentSession)
	return r
}

func doRequest(r *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestGetPaymentSession_StatusCodes(t *testing.T) {
	t.Run("unknown session returns 404", func(t *testing.T) {
		svc, _, _, _, _ := newTestService()
		r := newTestRouter(svc)

		w := doRequest(r, http.MethodGet, "/api/payment/session/cs_test_missing")
		if w.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", w.Code)
		}
	})

	t.Run("stale paid session returns 410 without payment details", func(t *testing.T) {
		svc, bs, _, _, _ := newTestService()
		bs.records = append(bs.records, &bookings.Booking{
			ID:              "bk-1",
			StripeSessionID: stripe.String("cs_test_old"),
			Status:          bookings.StatusPaid,
			PaidAt:          ago(2 * time.Hour),
			CustomerEmail:   "secret@example.com",
			Amount:          150,
		})
		r := newTestRouter(svc)

		w := doRequest(r, http.MethodGet, "/api/payment/session/cs_test_old")
		if w.Code != http.StatusGone {
			t.Fatalf("expected 410, got %d", w.Code)
		}
		var body map[string]interface{}
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if _, leaked := body["customerEmail"]; leaked {
			t.Errorf("rejection body must not carry customer PII")
		}
	})

	t.Run("already scheduled booking returns 409", func(t *testing.T) {
		svc, bs, _, _, _ := newTestService()
		bs.records = append(bs.records, &bookings.Booking{
			ID:                 "bk-2",
			StripeSessionID:    stripe.String("cs_test_used"),
			Status:             bookings.StatusPaid,
			PaidAt:             ago(5 * time.Minute),
			CalendlyInviteeURI: "https://calendly.com/invitees/abc",
		})
		r := newTestRouter(svc)

		w := doRequest(r, http.MethodGet, "/api/payment/session/cs_test_used")
		if w.Code != http.StatusConflict {
			t.Errorf("expected 409, got %d", w.Code)
		}
	})

	t.Run("valid paid booking returns the unified view with draft form data", func(t *testing.T) {
		svc, bs, _, ds, _ := newTestService()
		sid := "cs_test_ok"
		bs.records = append(bs.records, &bookings.Booking{
			ID:              "bk-3",
			StripeSessionID: stripe.String(sid),
			Status:          bookings.StatusPaid,
			PaidAt:          ago(30 * time.Minute),
			CustomerName:    "Amal K",
			CustomerEmail:   "amal@example.com",
			Amount:          150,
			Currency:        "usd",
		})
		ds.byID[sid] = &drafts.BookingDraft{
			StripeSessionID: sid,
			FullName:        "Amal K",
			Email:           "amal@example.com",
		}
		r := newTestRouter(svc)

		w := doRequest(r, http.MethodGet, "/api/payment/session/"+sid)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		var view SessionView
		if err := json.Unmarshal(w.Body.Bytes(), &view); err != nil {
			t.Fatalf("bad response body: %v", err)
		}
		if view.RecordType != "booking" || view.Status != bookings.StatusPaid {
			t.Errorf("unexpected view: %+v", view)
		}
		if view.FormData == nil || view.FormData.FullName != "Amal K" {
			t.Errorf("first resolution should carry the draft form data: %+v", view.FormData)
		}

		// Second poll: 200 again, but the draft is gone.
		w = doRequest(r, http.MethodGet, "/api/payment/session/"+sid)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 on repeat poll, got %d", w.Code)
		}
		var second SessionView
		_ = json.Unmarshal(w.Body.Bytes(), &second)
		if second.FormData != nil && second.FormData.Notes != "" {
			t.Errorf("repeat poll must not replay consumed draft details")
		}
		if ds.deletes != 1 {
			t.Errorf("draft should have been consumed exactly once, got %d deletes", ds.deletes)
		}
	})
}

func TestRefreshPaymentSession(t *testing.T) {
	t.Run("known session echoes status", func(t *testing.T) {
		svc, _, rs, _, _ := newTestService()
		rs.records = append(rs.records, &bootcamps.Registration{
			ID:              "reg-1",
			StripeSessionID: stripe.String("cs_test_refresh"),
			Status:          bookings.StatusPaid,
			PaymentStatus:   "paid",
			UpdatedAt:       testNow.Add(-time.Minute),
		})
		r := newTestRouter(svc)

		w := doRequest(r, http.MethodPost, "/api/payment/session/cs_test_refresh/refresh")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var echo RefreshView
		if err := json.Unmarshal(w.Body.Bytes(), &echo); err != nil {
			t.Fatalf("bad response body: %v", err)
		}
		if echo.Status != bookings.StatusPaid || echo.PaymentStatus != "paid" {
			t.Errorf("unexpected echo: %+v", echo)
		}
		if echo.LastUpdated.IsZero() {
			t.Errorf("lastUpdated must be populated")
		}
	})

	t.Run("refresh sweeps a lapsed pending registration", func(t *testing.T) {
		svc, _, rs, _, _ := newTestService()
		rs.records = append(rs.records, &bootcamps.Registration{
			ID:              "reg-2",
			StripeSessionID: stripe.String("cs_test_refresh2"),
			Status:          bookings.StatusPending,
			PaymentStatus:   "unpaid",
			ExpiresAt:       ago(24 * time.Hour),
		})
		r := newTestRouter(svc)

		w := doRequest(r, http.MethodPost, "/api/payment/session/cs_test_refresh2/refresh")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var echo RefreshView
		_ = json.Unmarshal(w.Body.Bytes(), &echo)
		if echo.Status != bookings.StatusExpired {
			t.Errorf("refresh should surface the swept state, got %q", echo.Status)
		}
	})

	t.Run("unknown session returns 404", func(t *testing.T) {
		svc, _, _, _, _ := newTestService()
		r := newTestRouter(svc)

		w := doRequest(r, http.MethodPost, "/api/payment/session/nope/refresh")
		if w.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", w.Code)
		}
	})
}

package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"ambulance-backend/internal/handlers"
	"ambulance-backend/internal/payment"
	"ambulance-backend/internal/routes"
	"ambulance-backend/internal/testutil"
	"ambulance-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testServerKey = "test-server-key"

type fakeGateway struct {
	mu    sync.Mutex
	err   error
	calls []payment.ChargeRequest
}

func (g *fakeGateway) CreateCharge(_ context.Context, req payment.ChargeRequest) (*payment.Charge, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, req)
	if g.err != nil {
		return nil, g.err
	}
	return &payment.Charge{Token: "snap-token", RedirectURL: "https://pay.example/" + req.OrderID}, nil
}

func (g *fakeGateway) VerifyNotification(n payment.Notification) bool {
	return payment.VerifySignature(n, testServerKey)
}

// signedNotification builds a webhook body signed with the test server key.
func signedNotification(orderID, status string) map[string]string {
	n := payment.Notification{
		OrderID:           orderID,
		TransactionStatus: status,
		StatusCode:        "200",
		GrossAmount:       "2500.00",
	}
	return map[string]string{
		"order_id":           n.OrderID,
		"transaction_status": n.TransactionStatus,
		"status_code":        n.StatusCode,
		"gross_amount":       n.GrossAmount,
		"signature_key":      payment.Signature(n, testServerKey),
	}
}

type testServer struct {
	t       *testing.T
	router  *gin.Engine
	db      *gorm.DB
	tokens  *utils.TokenManager
	gateway *fakeGateway
}

func newServer(t *testing.T) *testServer {
	t.Helper()
	db := testutil.NewDB(t)
	tokens := utils.NewTokenManager("test-secret", time.Hour, utils.NewRevocationStore())
	gateway := &fakeGateway{}
	router := routes.NewRouter(routes.Options{
		Handler: handlers.New(db, tokens, gateway, nil),
	})
	return &testServer{t: t, router: router, db: db, tokens: tokens, gateway: gateway}
}

func (s *testServer) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			s.t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

// signup registers a user and returns the access token and user id.
func (s *testServer) signup(name, email string) (string, uint64) {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/signup", "", map[string]string{
		"name": name, "email": email, "password": "secret123",
	})
	if rec.Code != http.StatusCreated {
		s.t.Fatalf("signup %s: %d %s", email, rec.Code, rec.Body.String())
	}
	var out struct {
		AccessToken string `json:"access_token"`
		User        struct {
			ID uint64 `json:"id"`
		} `json:"user"`
	}
	decode(s.t, rec, &out)
	return out.AccessToken, out.User.ID
}

func (s *testServer) createHospital(name string) uint64 {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/hospitals", "", map[string]interface{}{
		"name": name, "contact_info": "555-0100",
	})
	if rec.Code != http.StatusCreated {
		s.t.Fatalf("create hospital %s: %d %s", name, rec.Code, rec.Body.String())
	}
	var h struct {
		ID uint64 `json:"id"`
	}
	decode(s.t, rec, &h)
	return h.ID
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

func errorOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body utils.ErrorBody
	decode(t, rec, &body)
	return body.Error
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected %d, got %d: %s", want, rec.Code, rec.Body.String())
	}
}

var errGatewayDown = errors.New("gateway down")

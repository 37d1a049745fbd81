// Package payment charges card-paid ambulance requests through Midtrans Snap.
package payment

import (
	"context"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"errors"

	"ambulance-backend/internal/models"
)

// MethodCard is the payment_method value that goes through the gateway.
// Cash and insurance requests are settled off-line.
const MethodCard = "card"

var ErrGateway = errors.New("payment gateway error")

type ChargeRequest struct {
	OrderID       string
	Amount        int64
	CustomerName  string
	CustomerEmail string
	ItemName      string
}

type Charge struct {
	Token       string
	RedirectURL string
}

// Gateway creates a hosted payment page for one order and authenticates the
// notifications it later posts back.
type Gateway interface {
	CreateCharge(ctx context.Context, req ChargeRequest) (*Charge, error)
	VerifyNotification(n Notification) bool
}

// Notification is the subset of the Midtrans webhook body we act on.
type Notification struct {
	TransactionStatus string `json:"transaction_status" binding:"required"`
	OrderID           string `json:"order_id" binding:"required"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key" binding:"required"`
	FraudStatus       string `json:"fraud_status"`
}

// Signature is the Midtrans signature_key for n:
// hex(SHA512(order_id + status_code + gross_amount + server_key)).
func Signature(n Notification, serverKey string) string {
	sum := sha512.Sum512([]byte(n.OrderID + n.StatusCode + n.GrossAmount + serverKey))
	return hex.EncodeToString(sum[:])
}

// VerifySignature reports whether n was signed with serverKey.
func VerifySignature(n Notification, serverKey string) bool {
	if serverKey == "" || n.SignatureKey == "" {
		return false
	}
	want := Signature(n, serverKey)
	return subtle.ConstantTimeCompare([]byte(want), []byte(n.SignatureKey)) == 1
}

// StatusFor maps a gateway notification onto a request payment status.
func StatusFor(n Notification) string {
	switch n.TransactionStatus {
	case "capture":
		if n.FraudStatus == "challenge" {
			return models.PaymentPending
		}
		return models.PaymentPaid
	case "settlement":
		return models.PaymentPaid
	case "deny", "cancel", "expire", "failure":
		return models.PaymentFailed
	default:
		return models.PaymentPending
	}
}

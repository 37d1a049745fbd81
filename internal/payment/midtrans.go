package payment

import (
	"context"
	"fmt"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

type MidtransGateway struct {
	client    snap.Client
	serverKey string
}

func NewMidtransGateway(serverKey string, production bool) *MidtransGateway {
	env := midtrans.Sandbox
	if production {
		env = midtrans.Production
	}
	g := &MidtransGateway{serverKey: serverKey}
	g.client.New(serverKey, env)
	return g
}

func (g *MidtransGateway) CreateCharge(_ context.Context, req ChargeRequest) (*Charge, error) {
	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  req.OrderID,
			GrossAmt: req.Amount,
		},
		CreditCard: &snap.CreditCardDetails{
			Secure: true,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: req.CustomerName,
			Email: req.CustomerEmail,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:    req.OrderID,
				Name:  req.ItemName,
				Price: req.Amount,
				Qty:   1,
			},
		},
	}

	resp, snapErr := g.client.CreateTransaction(snapReq)
	if snapErr != nil {
		return nil, fmt.Errorf("%w: %s", ErrGateway, snapErr.GetMessage())
	}
	return &Charge{Token: resp.Token, RedirectURL: resp.RedirectURL}, nil
}

func (g *MidtransGateway) VerifyNotification(n Notification) bool {
	return VerifySignature(n, g.serverKey)
}

package payments

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

const ProviderSandbox = "sandbox"

// Sandbox тестовая платёжка: ссылка ведёт на наш же HTTP-сервер,
// который сразу подтверждает оплату (см. Handler).
type Sandbox struct {
	baseURL string
	secret  string
}

func NewSandbox(baseURL, secret string) *Sandbox {
	return &Sandbox{baseURL: strings.TrimRight(baseURL, "/"), secret: secret}
}

func (s *Sandbox) Name() string { return ProviderSandbox }

// PaymentURL ссылка на оплату брони.
func (s *Sandbox) PaymentURL(reference string) string {
	return fmt.Sprintf("%s/payments/pay?booking=%s", s.baseURL, url.QueryEscape(reference))
}

func (s *Sandbox) OrderID(reference string) string { return "sandbox-" + reference }

func (s *Sandbox) CreateOrder(_ context.Context, req OrderRequest) (Order, error) {
	return Order{
		Provider:    ProviderSandbox,
		OrderID:     s.OrderID(req.Reference),
		Amount:      req.Amount,
		Currency:    req.Currency,
		CheckoutURL: s.PaymentURL(req.Reference),
	}, nil
}

// Sign подпись в формате Razorpay, чтобы путь подтверждения был одинаковым.
func (s *Sandbox) Sign(orderID, paymentID string) string {
	return sign(s.secret, orderID+"|"+paymentID)
}

func (s *Sandbox) Verify(c Confirmation) error {
	if c.OrderID == "" || c.PaymentID == "" {
		return ErrInvalidSignature
	}
	return verifySignature(s.secret, c.OrderID+"|"+c.PaymentID, c.Signature)
}

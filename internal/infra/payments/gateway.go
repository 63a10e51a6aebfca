package payments

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrInvalidSignature = errors.New("payments: invalid signature")
	ErrNotCaptured      = errors.New("payments: payment not captured")
)

type Customer struct {
	Name  string
	Email string
	Phone string
}

// OrderRequest сумма в целых единицах валюты, как в Breakdown.TotalPrice.
type OrderRequest struct {
	Reference   string
	Amount      int64
	Currency    string
	Description string
	Customer    Customer
}

// Order то, что нужно клиенту чтобы открыть оплату.
type Order struct {
	Provider    string `json:"provider"`
	OrderID     string `json:"orderId"`
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
	KeyID       string `json:"keyId,omitempty"`
	CheckoutURL string `json:"checkoutUrl,omitempty"`
}

// Confirmation ответ платёжки после оплаты. Fields сырые поля колбэка (нужны HDFC).
type Confirmation struct {
	Reference string            `json:"reference"`
	OrderID   string            `json:"orderId"`
	PaymentID string            `json:"paymentId"`
	Signature string            `json:"signature"`
	Fields    map[string]string `json:"fields,omitempty"`
}

type Gateway interface {
	Name() string
	CreateOrder(ctx context.Context, req OrderRequest) (Order, error)
	Verify(c Confirmation) error
}

// Registry платёжки по имени.
type Registry map[string]Gateway

func NewRegistry(gws ...Gateway) Registry {
	r := make(Registry, len(gws))
	for _, g := range gws {
		if g != nil {
			r[g.Name()] = g
		}
	}
	return r
}

func (r Registry) Get(name string) (Gateway, bool) {
	g, ok := r[name]
	return g, ok
}

func (r Registry) Names() []string {
	out := make([]string, 0, len(r))
	for name := range r {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// sign hex(HMAC-SHA256(secret, msg))
func sign(secret, msg string) string {
	m := hmac.New(sha256.New, []byte(secret))
	m.Write([]byte(msg))
	return hex.EncodeToString(m.Sum(nil))
}

func verifySignature(secret, msg, got string) error {
	want := sign(secret, msg)
	if !hmac.Equal([]byte(want), []byte(strings.ToLower(got))) {
		return ErrInvalidSignature
	}
	return nil
}

// canonical key=value пары по алфавиту через '|', без поля signature.
func canonical(fields map[string]string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		if k == "signature" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%s", k, fields[k]))
	}
	return strings.Join(parts, "|")
}

package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	ProviderRazorpay       = "razorpay"
	DefaultRazorpayBaseURL = "https://api.razorpay.com"
)

// Razorpay создаёт заказ через Orders API, подпись проверяет локально.
type Razorpay struct {
	keyID     string
	keySecret string
	baseURL   string
	client    *http.Client
}

func NewRazorpay(keyID, keySecret, baseURL string) *Razorpay {
	if baseURL == "" {
		baseURL = DefaultRazorpayBaseURL
	}
	return &Razorpay{
		keyID:     keyID,
		keySecret: keySecret,
		baseURL:   strings.TrimRight(baseURL, "/"),
		client:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (r *Razorpay) Name() string { return ProviderRazorpay }

type razorpayOrder struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes,omitempty"`
}

func (r *Razorpay) CreateOrder(ctx context.Context, req OrderRequest) (Order, error) {
	currency := req.Currency
	if currency == "" {
		currency = "INR"
	}
	body, err := json.Marshal(razorpayOrder{
		// в минимальных единицах (пайсы)
		Amount:   req.Amount * 100,
		Currency: currency,
		Receipt:  req.Reference,
		Notes: map[string]string{
			"reference": req.Reference,
			"tour":      req.Description,
			"email":     req.Customer.Email,
		},
	})
	if err != nil {
		return Order{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/v1/orders", bytes.NewReader(body))
	if err != nil {
		return Order{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.SetBasicAuth(r.keyID, r.keySecret)

	resp, err := r.client.Do(httpReq)
	if err != nil {
		return Order{}, fmt.Errorf("razorpay create order: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode/100 != 2 {
		return Order{}, fmt.Errorf("razorpay create order: status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var out struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return Order{}, fmt.Errorf("razorpay decode order: %w", err)
	}
	if out.ID == "" {
		return Order{}, fmt.Errorf("razorpay create order: empty id")
	}

	return Order{
		Provider: ProviderRazorpay,
		OrderID:  out.ID,
		Amount:   req.Amount,
		Currency: currency,
		KeyID:    r.keyID,
	}, nil
}

// Verify подпись checkout: HMAC-SHA256(key_secret, order_id|payment_id).
func (r *Razorpay) Verify(c Confirmation) error {
	if c.OrderID == "" || c.PaymentID == "" {
		return ErrInvalidSignature
	}
	return verifySignature(r.keySecret, c.OrderID+"|"+c.PaymentID, c.Signature)
}

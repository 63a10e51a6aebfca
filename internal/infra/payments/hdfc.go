package payments

import (
	"context"
	"net/url"
	"strconv"
	"strings"
)

const ProviderHDFC = "hdfc"

// HDFC редирект на хостед-страницу банка. Параметры подписаны общим секретом,
// колбэк возвращает поля со своей подписью по той же схеме.
type HDFC struct {
	merchantID  string
	secret      string
	checkoutURL string
	returnURL   string
}

func NewHDFC(merchantID, secret, checkoutURL, returnURL string) *HDFC {
	return &HDFC{
		merchantID:  merchantID,
		secret:      secret,
		checkoutURL: strings.TrimRight(checkoutURL, "/"),
		returnURL:   returnURL,
	}
}

func (h *HDFC) Name() string { return ProviderHDFC }

func (h *HDFC) CreateOrder(_ context.Context, req OrderRequest) (Order, error) {
	currency := req.Currency
	if currency == "" {
		currency = "INR"
	}
	orderID := "HDFC-" + req.Reference

	fields := map[string]string{
		"merchant_id":    h.merchantID,
		"order_id":       orderID,
		"amount":         strconv.FormatInt(req.Amount, 10),
		"currency":       currency,
		"return_url":     h.returnURL,
		"customer_email": req.Customer.Email,
	}
	q := url.Values{}
	for k, v := range fields {
		q.Set(k, v)
	}
	q.Set("signature", sign(h.secret, canonical(fields)))

	return Order{
		Provider:    ProviderHDFC,
		OrderID:     orderID,
		Amount:      req.Amount,
		Currency:    currency,
		CheckoutURL: h.checkoutURL + "?" + q.Encode(),
	}, nil
}

// Verify проверяет подпись колбэка и что статус CHARGED.
func (h *HDFC) Verify(c Confirmation) error {
	if len(c.Fields) == 0 {
		return ErrInvalidSignature
	}
	if c.Fields["order_id"] != c.OrderID {
		return ErrInvalidSignature
	}
	if err := verifySignature(h.secret, canonical(c.Fields), c.Fields["signature"]); err != nil {
		return err
	}
	if c.Fields["status"] != "CHARGED" {
		return ErrNotCaptured
	}
	return nil
}

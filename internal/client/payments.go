package client

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"leadflow_backend/internal/access"
	"leadflow_backend/internal/payments/transport"
	"leadflow_backend/internal/records"

	"github.com/google/uuid"
)

func paymentAction(v access.Verb) access.Action {
	return access.Action{Resource: access.Payments, Verb: v}
}

func paymentPath(id uuid.UUID, suffix string) string {
	return "/payments/" + id.String() + suffix
}

func pageParams(page int, search string) url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(max(page, 1)))
	if search != "" {
		v.Set("search", search)
	}
	return v
}

func (c *Client) ListPayments(ctx context.Context, page int, search string) (transport.PaymentListResponse, error) {
	var out transport.PaymentListResponse
	err := c.doJSON(ctx, http.MethodGet, "/payments", pageParams(page, search), nil, &out)
	return out, err
}

func (c *Client) GetPayment(ctx context.Context, id uuid.UUID) (records.Payment, error) {
	var out records.Payment
	err := c.doJSON(ctx, http.MethodGet, paymentPath(id, ""), nil, nil, &out)
	return out, err
}

// CreatePayment records a payment. The server derives remaining.
func (c *Client) CreatePayment(ctx context.Context, in transport.CreatePaymentRequest) (records.Payment, error) {
	var out records.Payment
	if err := c.authorize(paymentAction(access.Create)); err != nil {
		return out, err
	}
	if err := requireText("company", in.Company); err != nil {
		return out, err
	}
	if err := check(in); err != nil {
		return out, err
	}
	if in.Amount.IsNegative() || in.Advance.IsNegative() {
		return out, &ValidationError{Message: "amount and advance must not be negative"}
	}
	in.Remaining = nil
	err := c.doJSON(ctx, http.MethodPost, "/payments", nil, in, &out)
	return out, err
}

// UpdatePayment edits a payment. The server recomputes remaining from the
// merged amount and advance.
func (c *Client) UpdatePayment(ctx context.Context, id uuid.UUID, in transport.UpdatePaymentRequest) (records.Payment, error) {
	var out records.Payment
	if err := c.authorize(paymentAction(access.Update)); err != nil {
		return out, err
	}
	if err := check(in); err != nil {
		return out, err
	}
	if (in.Amount != nil && in.Amount.IsNegative()) || (in.Advance != nil && in.Advance.IsNegative()) {
		return out, &ValidationError{Message: "amount and advance must not be negative"}
	}
	in.Remaining = nil
	err := c.doJSON(ctx, http.MethodPatch, paymentPath(id, ""), nil, in, &out)
	return out, err
}

func (c *Client) DeletePayment(ctx context.Context, id uuid.UUID) error {
	if err := c.authorize(paymentAction(access.Delete)); err != nil {
		return err
	}
	return c.doJSON(ctx, http.MethodDelete, paymentPath(id, ""), nil, nil, nil)
}

// GoThru hands a payment over to the technical team.
func (c *Client) GoThru(ctx context.Context, id uuid.UUID, in transport.GoThruRequest) (transport.GoThruResponse, error) {
	var out transport.GoThruResponse
	if err := c.authorize(paymentAction(access.Handover)); err != nil {
		return out, err
	}
	if err := check(in); err != nil {
		return out, err
	}
	err := c.doJSON(ctx, http.MethodPost, paymentPath(id, "/go-thru"), nil, in, &out)
	return out, err
}

func (c *Client) UploadReceipt(ctx context.Context, id uuid.UUID, filename string, file io.Reader) (records.Payment, error) {
	var out records.Payment
	if err := c.authorize(paymentAction(access.Upload)); err != nil {
		return out, err
	}
	body, contentType, err := multipartBody(filename, file, nil)
	if err != nil {
		return out, err
	}
	err = c.do(ctx, http.MethodPost, paymentPath(id, "/receipt"), nil, body, contentType, &out)
	return out, err
}

func (c *Client) ReceiptURL(ctx context.Context, id uuid.UUID) (transport.ReceiptURLResponse, error) {
	var out transport.ReceiptURLResponse
	err := c.doJSON(ctx, http.MethodGet, paymentPath(id, "/receipt"), nil, nil, &out)
	return out, err
}

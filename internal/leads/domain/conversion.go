package domain

import (
	"strings"
	"time"

	"leadflow_backend/internal/payments/reconcile"
	"leadflow_backend/internal/records"
	"leadflow_backend/platform/apperr"
)

// ConversionRequest carries the payment details supplied at conversion.
// Any remaining value a caller computed is not part of the request.
type ConversionRequest struct {
	SoNo    string
	Amount  records.Amount
	Advance records.Amount
	Invoice string
	Remark  string
}

// Validate checks the request before any write.
func (r ConversionRequest) Validate() error {
	if !r.Amount.Round(2).IsPositive() {
		return apperr.Validation("amount must be greater than zero")
	}
	if r.Advance.IsNegative() {
		return apperr.Validation("advance must not be negative")
	}
	return nil
}

// NewConversionPayment builds the payment a conversion creates. Amount and
// advance are stored at cent precision and remaining is derived from them.
func NewConversionPayment(lead records.Lead, req ConversionRequest, now time.Time) records.Payment {
	soNo := strings.TrimSpace(req.SoNo)
	if soNo == "" {
		soNo = "N/A"
	}
	invoice := strings.TrimSpace(req.Invoice)
	if invoice == "" {
		invoice = "Pending"
	}
	remark := strings.TrimSpace(req.Remark)
	if remark == "" {
		remark = "Converted from Lead: " + lead.Name
	}

	amount := records.NewAmount(req.Amount.Round(2))
	advance := records.NewAmount(req.Advance.Round(2))

	return records.Payment{
		Date:      now,
		Company:   lead.Company,
		SoNo:      soNo,
		Amount:    amount,
		Advance:   advance,
		Remaining: reconcile.ComputeRemaining(amount, advance),
		Invoice:   invoice,
		Remark:    remark,
	}
}

package domain

import "io"

// Payment methods offered at checkout.
const (
	PaymentMethodCard         = "card"
	PaymentMethodBankTransfer = "bank_transfer"
)

// OrderDraft is the in-flight order assembled from the billing form plus a
// snapshot of the cart. It lives only for one submission attempt and is
// never persisted.
type OrderDraft struct {
	FullName      string
	Email         string
	Phone         string
	Address       string
	City          string
	State         string
	Zip           string
	Country       string
	PaymentMethod string

	Items []CartItem
	Total float64

	// Payment slip, only meaningful for bank transfers and always optional.
	Slip         io.Reader
	SlipFilename string
}

// OrderConfirmation is the normalized result of an accepted order,
// regardless of which response shape the order API used.
type OrderConfirmation struct {
	ID          string `json:"id"`
	OrderNumber string `json:"orderNumber,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
}

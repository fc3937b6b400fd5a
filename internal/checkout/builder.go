package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/Deneth0077/CSH-MainFront/internal/domain"
)

// RequestBuilder turns a draft into the one outbound order request. The
// payment method picks the implementation: bank transfers go out as a
// multipart form, everything else as a JSON body.
type RequestBuilder interface {
	Build(ctx context.Context, endpoint string, draft *domain.OrderDraft) (*http.Request, error)
}

func builderFor(paymentMethod string) RequestBuilder {
	if paymentMethod == domain.PaymentMethodBankTransfer {
		return multipartBuilder{}
	}
	return jsonBuilder{}
}

// orderItem is one line of the order payload, shared by both encodings.
type orderItem struct {
	Product  string  `json:"product"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

func orderItems(items []domain.CartItem) []orderItem {
	out := make([]orderItem, 0, len(items))
	for _, item := range items {
		quantity := item.Quantity
		if quantity <= 0 {
			quantity = 1
		}
		out = append(out, orderItem{
			Product:  item.ID,
			Name:     item.Name,
			Price:    item.Price,
			Quantity: quantity,
		})
	}
	return out
}

func phoneOrDefault(phone string) string {
	if phone == "" {
		return "N/A"
	}
	return phone
}

type jsonBuilder struct{}

type jsonOrderPayload struct {
	Customer struct {
		Name  string `json:"name"`
		Email string `json:"email"`
		Phone string `json:"phone"`
	} `json:"customer"`
	Items           []orderItem `json:"items"`
	ShippingAddress struct {
		Street  string `json:"street"`
		City    string `json:"city"`
		State   string `json:"state"`
		Zip     string `json:"zip"`
		Country string `json:"country"`
	} `json:"shippingAddress"`
	PaymentMethod string `json:"paymentMethod"`
}

func (jsonBuilder) Build(ctx context.Context, endpoint string, draft *domain.OrderDraft) (*http.Request, error) {
	var payload jsonOrderPayload
	payload.Customer.Name = draft.FullName
	payload.Customer.Email = draft.Email
	payload.Customer.Phone = phoneOrDefault(draft.Phone)
	payload.Items = orderItems(draft.Items)
	payload.ShippingAddress.Street = draft.Address
	payload.ShippingAddress.City = draft.City
	payload.ShippingAddress.State = draft.State
	payload.ShippingAddress.Zip = draft.Zip
	payload.ShippingAddress.Country = draft.Country
	payload.PaymentMethod = draft.PaymentMethod

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal order payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

type multipartBuilder struct{}

func (multipartBuilder) Build(ctx context.Context, endpoint string, draft *domain.OrderDraft) (*http.Request, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := [][2]string{
		{"customer[name]", draft.FullName},
		{"customer[email]", draft.Email},
		{"customer[phone]", phoneOrDefault(draft.Phone)},
		{"shippingAddress[street]", draft.Address},
		// Optional address parts are sent as empty strings, never omitted.
		{"shippingAddress[city]", draft.City},
		{"shippingAddress[state]", draft.State},
		{"shippingAddress[zip]", draft.Zip},
		{"shippingAddress[country]", draft.Country},
		{"paymentMethod", draft.PaymentMethod},
	}
	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return nil, fmt.Errorf("write field %s: %w", f[0], err)
		}
	}

	items, err := json.Marshal(orderItems(draft.Items))
	if err != nil {
		return nil, fmt.Errorf("marshal order items: %w", err)
	}
	if err := w.WriteField("items", string(items)); err != nil {
		return nil, fmt.Errorf("write items field: %w", err)
	}

	// Payment slip is optional; a draft without one still builds.
	if draft.Slip != nil {
		name := draft.SlipFilename
		if name == "" {
			name = "slip"
		}
		part, err := w.CreateFormFile("paymentSlip", name)
		if err != nil {
			return nil, fmt.Errorf("create slip part: %w", err)
		}
		if _, err := io.Copy(part, draft.Slip); err != nil {
			return nil, fmt.Errorf("copy slip: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req, nil
}

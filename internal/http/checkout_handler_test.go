package http

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Deneth0077/CSH-MainFront/internal/cart"
	"github.com/Deneth0077/CSH-MainFront/internal/checkout"
	"github.com/Deneth0077/CSH-MainFront/internal/domain"
)

type submitterMock struct {
	confirmation *domain.OrderConfirmation
	err          error
	lastDraft    *domain.OrderDraft
}

func (m *submitterMock) Submit(_ context.Context, draft *domain.OrderDraft) (*domain.OrderConfirmation, error) {
	m.lastDraft = draft
	if m.err != nil {
		return nil, m.err
	}
	return m.confirmation, nil
}

func seededStore() *cart.Store {
	store := cart.NewStore(nopPersister{})
	store.AddItem(context.Background(), domain.ProductSummary{ID: "p1", Name: "Office Suite", Price: 1000})
	return store
}

func checkoutBody(method string) *bytes.Reader {
	body, _ := json.Marshal(CheckoutRequestDTO{
		FullName:      "Jane Perera",
		Email:         "jane@example.com",
		Phone:         "0771234567",
		Address:       "12 Galle Road",
		PaymentMethod: method,
	})
	return bytes.NewReader(body)
}

func TestCheckout_Success(t *testing.T) {
	mock := &submitterMock{confirmation: &domain.OrderConfirmation{ID: "o1", OrderNumber: "SH-100"}}
	handler := NewCheckoutHandler(mock, seededStore(), "")

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", "/checkout", checkoutBody("card"))
	request.Header.Set("Content-Type", "application/json")
	handler.Checkout(recorder, request)

	require.Equal(t, http.StatusCreated, recorder.Code)

	var resp CheckoutResponseDTO
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	assert.Equal(t, "o1", resp.Order.ID)
	assert.Equal(t, "SH-100", resp.Order.OrderNumber)
	assert.Empty(t, resp.WhatsappLink)

	// The draft carried the cart snapshot.
	require.NotNil(t, mock.lastDraft)
	require.Len(t, mock.lastDraft.Items, 1)
	assert.Equal(t, 1000.0, mock.lastDraft.Total)
}

func TestCheckout_BankTransfer_IncludesWhatsappLink(t *testing.T) {
	mock := &submitterMock{confirmation: &domain.OrderConfirmation{ID: "o1"}}
	handler := NewCheckoutHandler(mock, seededStore(), "94776309128")

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", "/checkout", checkoutBody("bank_transfer"))
	request.Header.Set("Content-Type", "application/json")
	handler.Checkout(recorder, request)

	require.Equal(t, http.StatusCreated, recorder.Code)

	var resp CheckoutResponseDTO
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	require.NotEmpty(t, resp.WhatsappLink)

	parsed, err := url.Parse(resp.WhatsappLink)
	require.NoError(t, err)
	assert.Equal(t, "wa.me", parsed.Host)
	assert.Contains(t, parsed.Query().Get("text"), "Office Suite")
}

func TestCheckout_MultipartWithSlip(t *testing.T) {
	mock := &submitterMock{confirmation: &domain.OrderConfirmation{ID: "o1"}}
	handler := NewCheckoutHandler(mock, seededStore(), "")

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	w.WriteField("fullName", "Jane Perera")
	w.WriteField("email", "jane@example.com")
	w.WriteField("phone", "0771234567")
	w.WriteField("address", "12 Galle Road")
	w.WriteField("paymentMethod", "bank_transfer")
	part, _ := w.CreateFormFile("paymentSlip", "slip.png")
	part.Write([]byte("slip-bytes"))
	w.Close()

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", "/checkout", &buf)
	request.Header.Set("Content-Type", w.FormDataContentType())
	handler.Checkout(recorder, request)

	require.Equal(t, http.StatusCreated, recorder.Code)
	require.NotNil(t, mock.lastDraft)
	assert.Equal(t, "Jane Perera", mock.lastDraft.FullName)
	assert.Equal(t, "slip.png", mock.lastDraft.SlipFilename)
	assert.NotNil(t, mock.lastDraft.Slip)
}

func TestCheckout_ErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", &checkout.ValidationError{Field: "email"}, http.StatusBadRequest, "validation_failed"},
		{"empty cart", checkout.ErrEmptyCart, http.StatusBadRequest, "empty_cart"},
		{"in flight", checkout.ErrSubmissionInFlight, http.StatusConflict, "submission_in_flight"},
		{"rejected", &checkout.OrderRejectedError{Message: "declined"}, http.StatusUnprocessableEntity, "order_rejected"},
		{"failed", &checkout.OrderSubmissionError{Message: "down"}, http.StatusBadGateway, "order_failed"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewCheckoutHandler(&submitterMock{err: tc.err}, seededStore(), "")

			recorder := httptest.NewRecorder()
			request := httptest.NewRequest("POST", "/checkout", checkoutBody("card"))
			request.Header.Set("Content-Type", "application/json")
			handler.Checkout(recorder, request)

			assert.Equal(t, tc.wantStatus, recorder.Code)

			var resp ErrorResponse
			require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
			assert.Equal(t, tc.wantCode, resp.Code)
		})
	}
}

func TestCheckout_RejectedMessageSurfacedVerbatim(t *testing.T) {
	handler := NewCheckoutHandler(&submitterMock{err: &checkout.OrderRejectedError{Message: "product out of stock"}}, seededStore(), "")

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", "/checkout", checkoutBody("card"))
	request.Header.Set("Content-Type", "application/json")
	handler.Checkout(recorder, request)

	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	assert.Equal(t, "product out of stock", resp.Error)
}

func TestCheckout_InvalidJSON(t *testing.T) {
	handler := NewCheckoutHandler(&submitterMock{}, seededStore(), "")

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", "/checkout", bytes.NewReader([]byte("{")))
	request.Header.Set("Content-Type", "application/json")
	handler.Checkout(recorder, request)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/Deneth0077/CSH-MainFront/internal/cart"
	"github.com/Deneth0077/CSH-MainFront/internal/checkout"
	"github.com/Deneth0077/CSH-MainFront/internal/domain"
	"github.com/Deneth0077/CSH-MainFront/internal/messaging"
)

// maxSlipSize bounds the in-memory part of slip uploads.
const maxSlipSize = 10 << 20 // 10MB

// OrderSubmitter is what the handler needs from the checkout component.
type OrderSubmitter interface {
	Submit(ctx context.Context, draft *domain.OrderDraft) (*domain.OrderConfirmation, error)
}

type CheckoutHandler struct {
	submitter      OrderSubmitter
	store          *cart.Store
	whatsappNumber string
}

func NewCheckoutHandler(submitter OrderSubmitter, store *cart.Store, whatsappNumber string) *CheckoutHandler {
	return &CheckoutHandler{
		submitter:      submitter,
		store:          store,
		whatsappNumber: whatsappNumber,
	}
}

type CheckoutRequestDTO struct {
	FullName      string `json:"fullName"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	City          string `json:"city"`
	State         string `json:"state"`
	Zip           string `json:"zip"`
	Country       string `json:"country"`
	PaymentMethod string `json:"paymentMethod"`
}

type CheckoutResponseDTO struct {
	Order        *domain.OrderConfirmation `json:"order"`
	WhatsappLink string                    `json:"whatsappLink,omitempty"`
}

// Checkout accepts the billing form as JSON, or as multipart/form-data when
// a payment slip rides along, snapshots the cart and submits the order.
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	draft, err := h.parseDraft(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	snapshot := h.store.State()
	draft.Items = snapshot.Items
	draft.Total = snapshot.Total

	confirmation, err := h.submitter.Submit(r.Context(), draft)
	if err != nil {
		respondCheckoutError(w, err)
		return
	}

	resp := CheckoutResponseDTO{Order: confirmation}
	if draft.PaymentMethod == domain.PaymentMethodBankTransfer {
		// Independent side channel; included in the response for the
		// frontend to open, decoupled from the order call itself.
		resp.WhatsappLink = messaging.OrderLink(h.whatsappNumber, draft)
	}

	respondJSON(w, http.StatusCreated, resp)
}

func (h *CheckoutHandler) parseDraft(r *http.Request) (*domain.OrderDraft, error) {
	contentType := r.Header.Get("Content-Type")

	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxSlipSize); err != nil {
			return nil, errors.New("invalid multipart body")
		}

		draft := &domain.OrderDraft{
			FullName:      r.FormValue("fullName"),
			Email:         r.FormValue("email"),
			Phone:         r.FormValue("phone"),
			Address:       r.FormValue("address"),
			City:          r.FormValue("city"),
			State:         r.FormValue("state"),
			Zip:           r.FormValue("zip"),
			Country:       r.FormValue("country"),
			PaymentMethod: r.FormValue("paymentMethod"),
		}

		if file, header, err := r.FormFile("paymentSlip"); err == nil {
			draft.Slip = file
			draft.SlipFilename = header.Filename
		}
		return draft, nil
	}

	var req CheckoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, errors.New("invalid JSON body")
	}
	return &domain.OrderDraft{
		FullName:      req.FullName,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		City:          req.City,
		State:         req.State,
		Zip:           req.Zip,
		Country:       req.Country,
		PaymentMethod: req.PaymentMethod,
	}, nil
}

func respondCheckoutError(w http.ResponseWriter, err error) {
	var verr *checkout.ValidationError
	if errors.As(err, &verr) {
		respondError(w, http.StatusBadRequest, "validation_failed", verr.Error())
		return
	}
	if errors.Is(err, checkout.ErrEmptyCart) {
		respondError(w, http.StatusBadRequest, "empty_cart", "Your cart is empty.")
		return
	}
	if errors.Is(err, checkout.ErrSubmissionInFlight) {
		respondError(w, http.StatusConflict, "submission_in_flight", "An order submission is already in progress.")
		return
	}

	var rerr *checkout.OrderRejectedError
	if errors.As(err, &rerr) {
		respondError(w, http.StatusUnprocessableEntity, "order_rejected", rerr.Message)
		return
	}

	var serr *checkout.OrderSubmissionError
	if errors.As(err, &serr) {
		respondError(w, http.StatusBadGateway, "order_failed", serr.Message)
		return
	}

	respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
}

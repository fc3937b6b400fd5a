package checkout

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/Deneth0077/CSH-MainFront/internal/domain"
)

// orderResponse covers both documented success shapes plus the failure
// shape, so one decode handles everything the API sends back.
type orderResponse struct {
	Success bool       `json:"success"`
	Data    *orderData `json:"data"`
	OrderID string     `json:"orderId"`
	Message string     `json:"message"`
	Errors  []string   `json:"errors"`
}

type orderData struct {
	MongoID     string `json:"_id"`
	OrderID     string `json:"orderId"`
	OrderNumber string `json:"orderNumber"`
	CreatedAt   string `json:"createdAt"`
}

// normalize collapses the heterogeneous success shapes into one
// OrderConfirmation. Everything downstream of this point sees a single
// type.
func normalize(body []byte) (*domain.OrderConfirmation, error) {
	var resp orderResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &OrderSubmissionError{Message: genericSubmissionMessage, Err: err}
	}

	if !resp.Success {
		message := resp.Message
		if message == "" {
			message = genericSubmissionMessage
		}
		return nil, &OrderRejectedError{Message: message}
	}

	if resp.Data != nil {
		id := resp.Data.MongoID
		if id == "" {
			id = resp.Data.OrderID
		}
		return &domain.OrderConfirmation{
			ID:          id,
			OrderNumber: resp.Data.OrderNumber,
			CreatedAt:   formatCreatedAt(resp.Data.CreatedAt),
		}, nil
	}

	if resp.OrderID != "" {
		return &domain.OrderConfirmation{ID: resp.OrderID}, nil
	}

	// success flag set but nothing identifying the order.
	return nil, &OrderSubmissionError{Message: "order service returned no order id"}
}

func formatCreatedAt(raw string) string {
	if raw == "" {
		return ""
	}
	ts, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return raw
	}
	return ts.Format("2006-01-02 15:04:05")
}

// errorMessage extracts the most useful human-readable message from a
// structured error body, falling back to the generic prompt.
func errorMessage(body []byte) string {
	var resp orderResponse
	if err := json.Unmarshal(body, &resp); err != nil || resp.Message == "" {
		return genericSubmissionMessage
	}
	if len(resp.Errors) > 0 {
		return resp.Message + "\n" + strings.Join(resp.Errors, "\n")
	}
	return resp.Message
}

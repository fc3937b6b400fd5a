// Package messaging builds the WhatsApp handoff used alongside
// bank-transfer checkout. It only constructs the deep link; opening it is
// the frontend's job, so it can never block or fail an order submission.
package messaging

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/Deneth0077/CSH-MainFront/internal/domain"
)

// DefaultNumber is the store's WhatsApp contact.
const DefaultNumber = "94776309128"

// OrderMessage is the pre-filled text summarizing a bank-transfer order.
func OrderMessage(draft *domain.OrderDraft) string {
	names := make([]string, 0, len(draft.Items))
	for _, item := range draft.Items {
		names = append(names, item.Name)
	}

	return fmt.Sprintf(
		"Hi, I have placed an order via bank transfer.\nName: %s\nEmail: %s\nPhone: %s\nOrder for: %s\nTotal: Rs %v",
		draft.FullName, draft.Email, draft.Phone, strings.Join(names, ", "), draft.Total,
	)
}

// Link returns the wa.me deep link carrying the given text.
func Link(number, text string) string {
	if number == "" {
		number = DefaultNumber
	}
	return "https://wa.me/" + number + "?text=" + url.QueryEscape(text)
}

// OrderLink is the full bank-transfer handoff link for a draft.
func OrderLink(number string, draft *domain.OrderDraft) string {
	return Link(number, OrderMessage(draft))
}

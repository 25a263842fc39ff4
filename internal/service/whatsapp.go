package service

import (
	"fmt"
	"net/url"
	"strings"

	"inza-store/internal/domain"
)

// BuildOrderMessage renders the human-readable order summary handed to the
// WhatsApp deep link. The output is deterministic for a given order: same
// line order, same digit grouping, same labels.
func BuildOrderMessage(storeName string, order *domain.Order) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Bonjour %s, je souhaite passer une commande.\n\n", storeName)
	fmt.Fprintf(&b, "*Client:*\nNom: %s\nContact: %s\nRésidence: %s\n\n",
		order.Customer.Name, order.Customer.Phone, order.Customer.Address)
	b.WriteString("*Commande:*\n")

	for _, item := range order.Items {
		variation := ""
		if item.VariationName != "" {
			variation = fmt.Sprintf(" (%s)", item.VariationName)
		}
		fmt.Fprintf(&b, "- %s%s (x%d) : %s CFA\n",
			item.ProductName, variation, item.Quantity, FormatAmount(item.Subtotal))
	}

	fmt.Fprintf(&b, "\n*Total: %s CFA*\n\nMerci !", FormatAmount(order.Total))

	return b.String()
}

// WhatsAppLink builds the wa.me deep link carrying the escaped message.
func WhatsAppLink(phone, message string) string {
	return "https://wa.me/" + phone + "?text=" + url.QueryEscape(message)
}

// FormatAmount renders a CFA amount with spaces between thousand groups,
// the grouping customers see on the storefront (1250000 -> "1 250 000").
func FormatAmount(amount int64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	digits := fmt.Sprintf("%d", amount)
	var groups []string
	for len(digits) > 3 {
		groups = append([]string{digits[len(digits)-3:]}, groups...)
		digits = digits[:len(digits)-3]
	}
	groups = append([]string{digits}, groups...)

	out := strings.Join(groups, " ")
	if negative {
		return "-" + out
	}
	return out
}

package service

import (
	"strconv"
	"strings"
	"testing"

	"inza-store/internal/domain"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		amount int64
		want   string
	}{
		{0, "0"},
		{5, "5"},
		{999, "999"},
		{1000, "1 000"},
		{25000, "25 000"},
		{1250000, "1 250 000"},
		{1000000000, "1 000 000 000"},
		{-25000, "-25 000"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatAmount(tt.amount))
	}
}

func TestBuildOrderMessage(t *testing.T) {
	order := &domain.Order{
		ID: uuid.New(),
		Customer: domain.Customer{
			Name:    "Awa Diabaté",
			Phone:   "+2250700000001",
			Address: "Cocody, Abidjan",
		},
		Items: []domain.OrderItem{
			{ProductName: "iPhone 15", VariationName: "256GB", UnitPrice: 650000, Quantity: 1, Subtotal: 650000},
			{ProductName: "Coque silicone", UnitPrice: 5000, Quantity: 2, Subtotal: 10000},
		},
		Total:  660000,
		Status: domain.OrderStatusNew,
	}

	msg := BuildOrderMessage("INZASTORE", order)

	assert.True(t, strings.HasPrefix(msg, "Bonjour INZASTORE, je souhaite passer une commande.\n\n"))
	assert.Contains(t, msg, "*Client:*\nNom: Awa Diabaté\nContact: +2250700000001\nRésidence: Cocody, Abidjan")
	assert.Contains(t, msg, "*Commande:*\n")
	assert.Contains(t, msg, "- iPhone 15 (256GB) (x1) : 650 000 CFA")
	assert.Contains(t, msg, "- Coque silicone (x2) : 10 000 CFA")
	assert.True(t, strings.HasSuffix(msg, "*Total: 660 000 CFA*\n\nMerci !"))

	// Item lines follow the order's item order
	require.Less(t, strings.Index(msg, "iPhone 15"), strings.Index(msg, "Coque silicone"))

	// Same order, same message
	assert.Equal(t, msg, BuildOrderMessage("INZASTORE", order))
}

func TestWhatsAppLink(t *testing.T) {
	link := WhatsAppLink("2250700000001", "Bonjour & merci !")

	assert.True(t, strings.HasPrefix(link, "https://wa.me/2250700000001?text="))
	assert.NotContains(t, link, " ")
	assert.NotContains(t, link, "&m")
	assert.Contains(t, link, "Bonjour+%26+merci+%21")
}

func TestProperty_FormatAmountPreservesDigits(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("removing the spaces yields the original digits", prop.ForAll(
		func(amount int64) bool {
			formatted := FormatAmount(amount)
			stripped := strings.ReplaceAll(formatted, " ", "")

			if stripped != strconv.FormatInt(amount, 10) {
				return false
			}

			// No group longer than three digits
			for _, group := range strings.Split(strings.TrimPrefix(formatted, "-"), " ") {
				if len(group) == 0 || len(group) > 3 {
					return false
				}
			}
			return true
		},
		gen.Int64Range(-1_000_000_000_000, 1_000_000_000_000),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

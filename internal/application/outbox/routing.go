package outbox

import (
	"strings"
	"unicode"
)

const integrationSuffix = "IntegrationEvent"

// RoutingKey deriva la routing key del nombre del tipo de evento:
// OrderStockReservedIntegrationEvent → order.stock.reserved.
// Las siglas se mantienen juntas: SKUAdjusted → sku.adjusted.
func RoutingKey(eventType string) string {
	name := strings.TrimSuffix(eventType, integrationSuffix)
	if name == "" {
		return strings.ToLower(eventType)
	}
	runes := []rune(name)
	var words []string
	start := 0
	for i := 1; i < len(runes); i++ {
		prev, cur := runes[i-1], runes[i]
		boundary := unicode.IsUpper(cur) && (unicode.IsLower(prev) || unicode.IsDigit(prev))
		if !boundary && unicode.IsUpper(cur) && unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1]) {
			boundary = true
		}
		if boundary {
			words = append(words, string(runes[start:i]))
			start = i
		}
	}
	words = append(words, string(runes[start:]))
	for i := range words {
		words[i] = strings.ToLower(words[i])
	}
	return strings.Join(words, ".")
}

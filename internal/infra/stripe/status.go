package stripe

import "strings"

// NormalizePaymentStatus maps Stripe's checkout payment_status strings onto
// the small set the local records mirror. Unknown values pass through.
func NormalizePaymentStatus(s string) string {
	switch strings.TrimSpace(s) {
	case "paid", "no_payment_required":
		return "paid"
	case "unpaid":
		return "unpaid"
	case "":
		return "unknown"
	default:
		return strings.TrimSpace(s)
	}
}

package synth

// DefaultCatalogs holds the placeholder values used by comparison views until
// providers supply real data for these fields.
var DefaultCatalogs = map[string][]string{
	"rating":         {"4.2", "4.4", "4.5", "4.6", "4.7", "4.8", "4.9"},
	"reviewCount":    {"12", "18", "27", "34", "46", "58", "73", "91", "120"},
	"duration":       {"2 weeks", "4 weeks", "6 weeks", "8 weeks", "3 months", "6 months"},
	"processingTime": {"1-2 business days", "3-5 business days", "5-7 business days", "2 weeks"},
	"responseTime":   {"Within 24 hours", "Within 48 hours", "Same day", "Within 3 business days"},
	"supportLevel":   {"Email support", "Dedicated advisor", "Phone and email", "Community forum"},
	"successRate":    {"78%", "82%", "85%", "88%", "91%", "94%"},
	"deliveryMode":   {"Online", "In person", "Hybrid"},
	"certificate":    {"Certificate of completion", "Accredited certificate", "Digital badge"},
	"language":       {"English", "Arabic", "English and Arabic"},
	"interestRate":   {"3.5% p.a.", "4.25% p.a.", "4.9% p.a.", "5.5% p.a.", "6.0% p.a."},
	"collateral":     {"Not required", "Required above AED 500,000", "Personal guarantee"},
	"eligibility":    {"UAE-registered SMEs", "Start-ups under 3 years", "Growth-stage businesses", "All business stages"},
	"price":          {"Free", "AED 500", "AED 1,200", "AED 2,500", "On request"},
}

package llm

import "strings"

// maxInvoiceChars bounds how much extracted text is sent per request.
const maxInvoiceChars = 6000

// BuildSystemPrompt composes the system message with the three required field
// names, their formats, and strict JSON-only output rules.
func BuildSystemPrompt() string {
	parts := []string{
		"You are a utility invoice parser. Return ONLY a JSON object, no surrounding prose, no markdown fences.",
		"The JSON object must have exactly these three fields: 'amount', 'start_date', 'end_date'.",
		"'amount' is the invoice total: a decimal number, optionally with a currency symbol (e.g. \"45,00€\").",
		"'start_date' and 'end_date' are the billing period bounds in day/month/year form (DD/MM/YYYY).",
		"If a value is not visible in the text, use an empty string for it.",
		"Never output null and never add fields beyond the three above.",
	}
	return strings.Join(parts, " ")
}

// BuildUserPrompt packages the category label and the extracted invoice text.
func BuildUserPrompt(req ExtractRequest) string {
	var b strings.Builder
	b.WriteString("Service category: ")
	b.WriteString(strings.TrimSpace(req.CategoryLabel))
	b.WriteString("\n\nInvoice text:\n")

	text := strings.TrimSpace(req.InvoiceText)
	if len(text) > maxInvoiceChars {
		b.WriteString(text[:maxInvoiceChars])
		b.WriteString("\n…(truncated)")
	} else {
		b.WriteString(text)
	}
	b.WriteString("\n\nReturn ONLY the JSON object with 'amount', 'start_date' and 'end_date'.")
	return b.String()
}

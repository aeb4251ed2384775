package llm

// BuildInvoiceJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a generic map.
// We pass this to the provider as a structured output hint and also use it locally to
// validate the extracted payload before normalization.
func BuildInvoiceJSONSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			// loose on purpose: the normalizer repairs separators and currency noise
			"amount":     map[string]any{"type": []string{"string", "number"}},
			"start_date": map[string]any{"type": "string"},
			"end_date":   map[string]any{"type": "string"},
		},
		"required": []string{"amount", "start_date", "end_date"},
	}
}

package llm

import "context"

// InvoiceFields is the normalized shape we want from the LLM.
type InvoiceFields struct {
	Amount    string `json:"amount"`     // decimal, dot separator, no currency symbol
	StartDate string `json:"start_date"` // DD/MM/YYYY
	EndDate   string `json:"end_date"`   // DD/MM/YYYY
}

// ExtractRequest carries everything one field-extraction call needs.
type ExtractRequest struct {
	InvoiceText   string // plain text pulled from the uploaded PDF
	CategoryLabel string // e.g. "Luz", "Agua"
}

// Completer is the uniform prompt-in, text-out provider contract. Both the
// synchronous and the streamed provider expose identical semantics through it,
// so either can be substituted without touching downstream logic.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// FieldExtractor is the interface the pipeline depends on.
type FieldExtractor interface {
	ExtractFields(ctx context.Context, req ExtractRequest) (InvoiceFields, string /*raw response*/, error)
}

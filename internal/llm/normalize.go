package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/juanfranbrv/automatservicios/internal/common"
)

// reJSONObject matches the first brace-delimited object in a response,
// non-greedy and across newlines. Models sometimes wrap the payload in
// explanatory prose or markdown fences; everything around it is ignored.
var reJSONObject = regexp.MustCompile(`(?s)\{.*?\}`)

// currencyNoise strips symbols and spacing conventions from amount strings.
var currencyNoise = strings.NewReplacer(
	"€", "",
	"$", "",
	"EUR", "",
	"eur", "",
	" ", "",
	" ", "",
)

// ExtractJSONObject locates the JSON payload inside a raw model response.
func ExtractJSONObject(raw string) (string, error) {
	m := reJSONObject.FindString(raw)
	if m == "" {
		return "", common.ErrNoJSONFound
	}
	return m, nil
}

// ParseFields parses a brace-delimited payload and normalizes its fields into
// an InvoiceFields. Parsing is strict encoding/json: malformed input fails
// closed, the payload is never evaluated.
func ParseFields(payload string) (InvoiceFields, error) {
	var raw struct {
		Amount    any    `json:"amount"`
		StartDate string `json:"start_date"`
		EndDate   string `json:"end_date"`
	}
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return InvoiceFields{}, fmt.Errorf("%w: %v", common.ErrInvalidJSON, err)
	}

	amount, err := NormalizeAmount(raw.Amount)
	if err != nil {
		return InvoiceFields{}, err
	}
	return InvoiceFields{
		Amount:    amount,
		StartDate: NormalizeDate(raw.StartDate),
		EndDate:   NormalizeDate(raw.EndDate),
	}, nil
}

// NormalizeFields runs payload extraction and parsing in one step.
func NormalizeFields(rawResponse string) (InvoiceFields, error) {
	payload, err := ExtractJSONObject(rawResponse)
	if err != nil {
		return InvoiceFields{}, err
	}
	return ParseFields(payload)
}

// NormalizeDate replaces any '.' separator with '/'; nothing else changes.
// Tolerates a model emitting dot-separated dates despite instructions.
func NormalizeDate(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), ".", "/")
}

// NormalizeAmount turns a loosely formatted amount into a two-decimal dot
// string. Accepts JSON numbers and strings like "1.234,56€" or "1234,56 €":
// currency symbols are stripped, and when both separators appear '.' is the
// thousands convention and ',' the decimal one.
func NormalizeAmount(v any) (string, error) {
	switch t := v.(type) {
	case float64:
		if t < 0 {
			return "", fmt.Errorf("%w: negative value %v", common.ErrInvalidAmount, t)
		}
		return fmt.Sprintf("%.2f", t), nil
	case string:
		s := currencyNoise.Replace(strings.TrimSpace(t))
		if strings.Contains(s, ",") {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return "", fmt.Errorf("%w: %q", common.ErrInvalidAmount, t)
		}
		if f < 0 {
			return "", fmt.Errorf("%w: negative value %q", common.ErrInvalidAmount, t)
		}
		return fmt.Sprintf("%.2f", f), nil
	default:
		return "", fmt.Errorf("%w: unexpected type %T", common.ErrInvalidAmount, v)
	}
}

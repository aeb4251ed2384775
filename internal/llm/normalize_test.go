package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juanfranbrv/automatservicios/internal/common"
)

func TestExtractJSONObjectWithSurroundingProse(t *testing.T) {
	raw := `Sure! Here is the extracted data:
{"amount": "45,00€", "start_date": "01.03.2024", "end_date": "31.03.2024"}
Let me know if you need anything else.`

	payload, err := ExtractJSONObject(raw)
	require.NoError(t, err)
	assert.Equal(t, `{"amount": "45,00€", "start_date": "01.03.2024", "end_date": "31.03.2024"}`, payload)
}

func TestExtractJSONObjectMultiline(t *testing.T) {
	raw := "Here you go:\n{\n  \"amount\": \"100,00€\",\n  \"start_date\": \"01/01/2024\",\n  \"end_date\": \"31/01/2024\"\n}\nDone."

	payload, err := ExtractJSONObject(raw)
	require.NoError(t, err)

	fields, err := ParseFields(payload)
	require.NoError(t, err)
	assert.Equal(t, "100.00", fields.Amount)
}

func TestExtractJSONObjectNoneFound(t *testing.T) {
	_, err := ExtractJSONObject("Sorry, I cannot help with that.")
	assert.ErrorIs(t, err, common.ErrNoJSONFound)
}

func TestParseFieldsInvalidJSON(t *testing.T) {
	_, err := ParseFields(`{"amount": "45,00€", "start_date":`)
	assert.ErrorIs(t, err, common.ErrInvalidJSON)
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"01.02.2024", "01/02/2024"},
		{"01/02/2024", "01/02/2024"},
		{" 15.06.2023 ", "15/06/2023"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeDate(tt.in), "input %q", tt.in)
	}
}

func TestNormalizeAmount(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{"1.234,56€", "1234.56"},
		{"1234,56 €", "1234.56"},
		{"45,00€", "45.00"},
		{"45.00", "45.00"},
		{"100", "100.00"},
		{"2.500,00 EUR", "2500.00"},
		{float64(45), "45.00"},
		{float64(12.5), "12.50"},
	}
	for _, tt := range tests {
		got, err := NormalizeAmount(tt.in)
		require.NoError(t, err, "input %v", tt.in)
		assert.Equal(t, tt.want, got, "input %v", tt.in)
	}
}

func TestNormalizeAmountInvalid(t *testing.T) {
	for _, in := range []any{"abc", "€", "", "-45,00€", float64(-1), nil, true} {
		_, err := NormalizeAmount(in)
		assert.ErrorIs(t, err, common.ErrInvalidAmount, "input %v", in)
	}
}

func TestNormalizeFieldsEndToEnd(t *testing.T) {
	raw := `The invoice details are: {"amount": "45,00€", "start_date": "01.03.2024", "end_date": "31.03.2024"}`

	fields, err := NormalizeFields(raw)
	require.NoError(t, err)
	assert.Equal(t, "45.00", fields.Amount)
	assert.Equal(t, "01/03/2024", fields.StartDate)
	assert.Equal(t, "31/03/2024", fields.EndDate)
}

func TestNormalizeFieldsNumericAmount(t *testing.T) {
	fields, err := NormalizeFields(`{"amount": 89.99, "start_date": "01.05.2024", "end_date": "31.05.2024"}`)
	require.NoError(t, err)
	assert.Equal(t, "89.99", fields.Amount)
	assert.Equal(t, "01/05/2024", fields.StartDate)
}

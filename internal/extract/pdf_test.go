package extract

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/juanfranbrv/automatservicios/internal/common"
)

func TestPageBudget(t *testing.T) {
	tests := []struct {
		pages int
		want  int
	}{
		{0, 1},
		{1, 1},
		{2, 1},
		{3, 1},
		{4, 1},
		{6, 2},
		{9, 3},
		{10, 3},
		{30, 10},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PageBudget(tt.pages), "pages=%d", tt.pages)
	}
}

func TestExtractEmptyUpload(t *testing.T) {
	e := NewPDFExtractor(Config{}, nil)

	res, err := e.Extract(context.Background(), nil)
	assert.ErrorIs(t, err, common.ErrExtraction)
	assert.Empty(t, res.Text)
}

func TestExtractGarbageBytesIsRecoverable(t *testing.T) {
	e := NewPDFExtractor(Config{FirstThirdOnly: true}, nil)

	res, err := e.Extract(context.Background(), []byte("this is not a pdf at all"))
	assert.ErrorIs(t, err, common.ErrExtraction)
	assert.Empty(t, res.Text)
}

func TestExtractCancelledContext(t *testing.T) {
	e := NewPDFExtractor(Config{}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Extract(ctx, []byte("%PDF-1.4"))
	assert.Error(t, err)
}

package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
)

func TestPageRequest_Normalize(t *testing.T) {
	tests := []struct {
		name       string
		in         dto.PageRequest
		wantLimit  int
		wantOffset int
	}{
		{"vacío usa el default", dto.PageRequest{}, dto.DefaultPageLimit, 0},
		{"respeta valores válidos", dto.PageRequest{Limit: 5, Offset: 10}, 5, 10},
		{"limit sobre el tope", dto.PageRequest{Limit: 500}, dto.MaxPageLimit, 0},
		{"negativos", dto.PageRequest{Limit: -1, Offset: -3}, dto.DefaultPageLimit, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.in
			p.Normalize()
			assert.Equal(t, tt.wantLimit, p.Limit)
			assert.Equal(t, tt.wantOffset, p.Offset)
		})
	}
}

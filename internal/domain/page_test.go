package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageParams_Validate(t *testing.T) {
	tests := []struct {
		name     string
		in       PageParams
		wantPage int
		wantSize int
	}{
		{"defaults", PageParams{}, 0, 20},
		{"negative page clamped", PageParams{Page: -3, Size: 10}, 0, 10},
		{"oversized clamped", PageParams{Page: 2, Size: 500}, 2, 100},
		{"valid untouched", PageParams{Page: 1, Size: 50}, 1, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.in.Validate()
			assert.Equal(t, tt.wantPage, tt.in.Page)
			assert.Equal(t, tt.wantSize, tt.in.Size)
		})
	}
}

func TestNewPage(t *testing.T) {
	p := NewPage([]string{"a", "b"}, PageParams{Page: 0, Size: 2}, 5)

	assert.Equal(t, int64(5), p.TotalItems)
	assert.Equal(t, int64(3), p.TotalPages)
	assert.Len(t, p.Items, 2)
}

func TestNewPage_NilItems(t *testing.T) {
	p := NewPage[string](nil, PageParams{Size: 20}, 0)

	assert.NotNil(t, p.Items)
	assert.Empty(t, p.Items)
	assert.Equal(t, int64(0), p.TotalPages)
}

package pdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeniedOperations(t *testing.T) {
	tests := []struct {
		name string
		p    int32
		want []string
	}{
		{
			name: "everything allowed",
			p:    -4, // 0xFFFFFFFC
			want: nil,
		},
		{
			name: "print only",
			p:    -3900, // 0xFFFFF0C4
			want: []string{"modify", "copy", "annotate", "fill_forms", "extract", "assemble", "print_high_quality"},
		},
		{
			name: "copy and modify denied",
			p:    -4 &^ (0x08 | 0x10),
			want: []string{"modify", "copy"},
		},
		{
			name: "nothing allowed",
			p:    0,
			want: []string{"print", "modify", "copy", "annotate", "fill_forms", "extract", "assemble", "print_high_quality"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, deniedOperations(tt.p))
		})
	}
}

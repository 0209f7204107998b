package portspec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/portsight/portsight/internal/errors"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		spec    string
		want    []int
		wantErr bool
	}{
		{
			name: "single ports",
			spec: "22,80,443",
			want: []int{22, 80, 443},
		},
		{
			name: "range expansion",
			spec: "4000-4005",
			want: []int{4000, 4001, 4002, 4003, 4004, 4005},
		},
		{
			name: "mixed spec with duplicates",
			spec: "80,22,80,4000-4002,4001",
			want: []int{22, 80, 4000, 4001, 4002},
		},
		{
			name: "whitespace tolerated",
			spec: " 22 , 80 , 100 - 102 ",
			want: []int{22, 80, 100, 101, 102},
		},
		{
			name: "empty elements skipped",
			spec: "22,,80,",
			want: []int{22, 80},
		},
		{
			name: "boundary ports",
			spec: "1,65535",
			want: []int{1, 65535},
		},
		{
			name:    "empty spec",
			spec:    "",
			wantErr: true,
		},
		{
			name:    "only separators",
			spec:    ",,",
			wantErr: true,
		},
		{
			name:    "port zero",
			spec:    "0",
			wantErr: true,
		},
		{
			name:    "port too large",
			spec:    "65536",
			wantErr: true,
		},
		{
			name:    "reversed range",
			spec:    "100-50",
			wantErr: true,
		},
		{
			name:    "malformed range",
			spec:    "10-20-30",
			wantErr: true,
		},
		{
			name:    "not a number",
			spec:    "http",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.spec)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperrors.IsCode(err, apperrors.CodeValidation),
					"parse errors carry the validation code, got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseOutputSorted(t *testing.T) {
	got, err := Parse("9000,22,443,80")
	require.NoError(t, err)
	assert.Equal(t, []int{22, 80, 443, 9000}, got)
}

package cmd

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeededAlready(t *testing.T) {
	tests := []struct {
		name       string
		scanErr    error
		wantExists bool
		wantErr    bool
	}{
		{
			name:       "row found means already seeded",
			scanErr:    nil,
			wantExists: true,
		},
		{
			name:       "no rows means not seeded yet",
			scanErr:    sql.ErrNoRows,
			wantExists: false,
		},
		{
			name:    "wrapped no rows is still a miss",
			scanErr: fmt.Errorf("scan: %w", sql.ErrNoRows),
		},
		{
			name:    "query fault is surfaced, not treated as seeded",
			scanErr: errors.New("connection refused"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exists, err := seededAlready(tt.scanErr)
			if tt.wantErr {
				require.Error(t, err)
				assert.False(t, exists)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantExists, exists)
		})
	}
}

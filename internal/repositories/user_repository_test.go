package repositories

import (
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

func TestMapUserConstraintError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantField  string
		wantPassed bool // ошибка уходит как есть
	}{
		{
			name:      "email unique violation",
			err:       &pq.Error{Code: "23505", Constraint: "users_email_key"},
			wantField: "email",
		},
		{
			name:      "username unique violation",
			err:       &pq.Error{Code: "23505", Constraint: "users_username_key"},
			wantField: "username",
		},
		{
			name:      "unnamed constraint defaults to email",
			err:       &pq.Error{Code: "23505"},
			wantField: "email",
		},
		{
			name:       "other pq error passes through",
			err:        &pq.Error{Code: "23503"},
			wantPassed: true,
		},
		{
			name:       "plain error passes through",
			err:        errors.New("connection refused"),
			wantPassed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapUserConstraintError(tt.err)
			if tt.wantPassed {
				require.Equal(t, tt.err, got)
				return
			}
			var dup *DuplicateUserError
			require.ErrorAs(t, got, &dup)
			require.Equal(t, tt.wantField, dup.Field)
		})
	}
}

package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTIssuer_Issue(t *testing.T) {
	secret := "test-secret"
	issuer := NewJWTIssuer(secret)

	token, err := issuer.Issue(RevalidateSubject, time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	require.True(t, ok)
	assert.Equal(t, RevalidateSubject, claims.Subject)
}

func TestJWTVerifier_Verify(t *testing.T) {
	secret := "test-secret"

	tests := []struct {
		name        string
		token       func(t *testing.T) string
		wantSubject string
		wantErr     bool
	}{
		{
			name: "valid token",
			token: func(t *testing.T) string {
				tok, err := NewJWTIssuer(secret).Issue(RevalidateSubject, time.Minute)
				require.NoError(t, err)
				return tok
			},
			wantSubject: RevalidateSubject,
		},
		{
			name: "wrong secret",
			token: func(t *testing.T) string {
				tok, err := NewJWTIssuer("other-secret").Issue(RevalidateSubject, time.Minute)
				require.NoError(t, err)
				return tok
			},
			wantErr: true,
		},
		{
			name: "expired",
			token: func(t *testing.T) string {
				tok, err := NewJWTIssuer(secret).Issue(RevalidateSubject, -time.Minute)
				require.NoError(t, err)
				return tok
			},
			wantErr: true,
		},
		{
			name:    "garbage",
			token:   func(t *testing.T) string { return "not-a-jwt" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subject, err := NewJWTVerifier(secret).Verify(tt.token(t))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSubject, subject)
		})
	}
}

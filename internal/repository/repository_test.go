package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		url     string
		want    Kind
		wantErr bool
	}{
		{url: "mongodb://localhost:27017", want: KindMongo},
		{url: "mongodb+srv://cluster0.example.net/devevent", want: KindMongo},
		{url: "postgres://u:p@localhost:5432/devevent", want: KindPostgres},
		{url: "postgresql://localhost/devevent", want: KindPostgres},
		{url: "mysql://localhost/devevent", wantErr: true},
		{url: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			got, err := KindOf(tt.url)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

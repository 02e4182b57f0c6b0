package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diegoleonuniline/umo-pos-api/internal/domain/entity"
)

func TestCredentialRequest_Credential(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		wantID string
		isNil  bool
	}{
		{"usuarioId", `{"usuarioId":"ADM","pin":"9999"}`, "ADM", false},
		{"userId", `{"userId":"ADM","pin":9999}`, "ADM", false},
		{"usuarioId tiene prioridad", `{"usuarioId":"ADM","userId":"E1","pin":"1"}`, "ADM", false},
		{"vacía", `{}`, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var in CredentialRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &in))
			cred := in.Credential()
			if tt.isNil {
				assert.Nil(t, cred)
				return
			}
			require.NotNil(t, cred)
			assert.Equal(t, tt.wantID, cred.UserID)
		})
	}

	var none *CredentialRequest
	assert.Nil(t, none.Credential())
}

func TestNewUserResponse_NombrePorDefecto(t *testing.T) {
	out := NewUserResponse(&entity.User{ID: "E7"})
	assert.Equal(t, "Usuario", out.Nombre)
	assert.Equal(t, "Ana", NewUserResponse(&entity.User{ID: "E1", Name: "Ana"}).Nombre)
}

package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestAccount_Validate(t *testing.T) {
	tests := []struct {
		name    string
		account Account
		wantErr bool
		errMsg  string
	}{
		{
			name: "Valid account",
			account: Account{
				ID:      uuid.New(),
				Name:    "Joint checking",
				UserIDs: []uuid.UUID{uuid.New()},
				GroupID: uuid.New(),
			},
		},
		{
			name: "Empty name",
			account: Account{
				ID:      uuid.New(),
				UserIDs: []uuid.UUID{uuid.New()},
				GroupID: uuid.New(),
			},
			wantErr: true,
			errMsg:  "account name cannot be empty",
		},
		{
			name: "No users",
			account: Account{
				ID:      uuid.New(),
				Name:    "Orphan",
				GroupID: uuid.New(),
			},
			wantErr: true,
			errMsg:  "account must have at least one user",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.account.Validate()

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.errMsg, err.Error())
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAccount_SharedWith(t *testing.T) {
	alice := uuid.New()
	bob := uuid.New()
	account := Account{
		ID:      uuid.New(),
		Name:    "Joint checking",
		UserIDs: []uuid.UUID{alice, bob},
	}

	assert.True(t, account.SharedWith(alice))
	assert.True(t, account.SharedWith(bob))
	assert.False(t, account.SharedWith(uuid.New()))
}

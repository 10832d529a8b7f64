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
		wantErr error
	}{
		{
			name:    "Checking account should pass",
			account: Account{ID: uuid.New(), KidID: uuid.New(), Name: "Allowance", Kind: AccountKindChecking},
		},
		{
			name:    "Market account should pass",
			account: Account{ID: uuid.New(), KidID: uuid.New(), Name: "Brokerage", Kind: AccountKindMarket},
		},
		{
			name:    "Account without kid should fail",
			account: Account{ID: uuid.New(), Name: "Orphan", Kind: AccountKindSavings},
			wantErr: ErrRequired,
		},
		{
			name:    "Account with blank name should fail",
			account: Account{ID: uuid.New(), KidID: uuid.New(), Name: "   ", Kind: AccountKindSavings},
			wantErr: ErrRequired,
		},
		{
			name:    "Account with unknown kind should fail",
			account: Account{ID: uuid.New(), KidID: uuid.New(), Name: "Crypto", Kind: AccountKind("CRYPTO")},
			wantErr: ErrInvalidType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.account.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseAccountKind(t *testing.T) {
	for _, kind := range AccountKinds {
		parsed, err := ParseAccountKind(string(kind))
		assert.NoError(t, err)
		assert.Equal(t, kind, parsed)
	}

	_, err := ParseAccountKind("BROKERAGE")
	assert.ErrorIs(t, err, ErrInvalidType)

	_, err = ParseAccountKind("")
	assert.ErrorIs(t, err, ErrInvalidType)
}

func TestAccountKind_Label(t *testing.T) {
	assert.Equal(t, "Checking", AccountKindChecking.Label())
	assert.Equal(t, "Savings", AccountKindSavings.Label())
	assert.Equal(t, "Market", AccountKindMarket.Label())
	assert.True(t, AccountKindMarket.IsMarket())
	assert.False(t, AccountKindSavings.IsMarket())
}

func TestNewKid(t *testing.T) {
	kid, err := NewKid("  Avery ")
	assert.NoError(t, err)
	assert.Equal(t, "Avery", kid.Name)
	assert.NotEqual(t, uuid.Nil, kid.ID)

	_, err = NewKid(" ")
	assert.ErrorIs(t, err, ErrRequired)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "kid name is required")
}

package model

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func checkingDef() AccountDef {
	return AccountDef{
		ID:            "1010",
		Code:          "1010",
		Name:          "Business Checking",
		Type:          AccountTypeAsset,
		NormalBalance: SideDebit,
		Active:        true,
	}
}

func TestNewAccount_RequiresNormalBalance(t *testing.T) {
	def := checkingDef()
	def.NormalBalance = ""

	_, err := NewAccount(def)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "normal balance is required")
}

func TestNewAccount_RequiredFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*AccountDef)
	}{
		{"missing id", func(d *AccountDef) { d.ID = "" }},
		{"missing name", func(d *AccountDef) { d.Name = "" }},
		{"bad type", func(d *AccountDef) { d.Type = "revenue" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := checkingDef()
			tt.mutate(&def)
			_, err := NewAccount(def)
			assert.Error(t, err)
		})
	}
}

func TestApplyPosting_DebitNormal(t *testing.T) {
	acct, err := NewAccount(checkingDef())
	require.NoError(t, err)
	assert.True(t, acct.Balance().IsZero())

	require.NoError(t, acct.ApplyPosting(dec("100.00"), true))
	assert.True(t, acct.Balance().Equal(dec("100.00")), "debit adds on debit-normal")

	require.NoError(t, acct.ApplyPosting(dec("30.00"), false))
	assert.True(t, acct.Balance().Equal(dec("70.00")), "credit subtracts on debit-normal")
}

func TestApplyPosting_CreditNormal(t *testing.T) {
	acct, err := NewAccount(AccountDef{
		ID: "2010", Code: "2010", Name: "Credit Card",
		Type: AccountTypeLiability, NormalBalance: SideCredit, Active: true,
	})
	require.NoError(t, err)

	require.NoError(t, acct.ApplyPosting(dec("100.00"), false))
	assert.True(t, acct.Balance().Equal(dec("100.00")), "credit adds on credit-normal")

	require.NoError(t, acct.ApplyPosting(dec("40.00"), true))
	assert.True(t, acct.Balance().Equal(dec("60.00")), "debit subtracts on credit-normal")
}

func TestApplyPosting_ContraAccount(t *testing.T) {
	// Accumulated depreciation is an asset with a credit normal balance;
	// the stored normal balance, not the type, drives polarity.
	acct, err := NewAccount(AccountDef{
		ID: "1590", Code: "1590", Name: "Accumulated Depreciation",
		Type: AccountTypeAsset, Subtype: "contra",
		NormalBalance: SideCredit, Active: true,
	})
	require.NoError(t, err)

	require.NoError(t, acct.ApplyPosting(dec("500.00"), false))
	assert.True(t, acct.Balance().Equal(dec("500.00")))
}

func TestApplyPosting_Inactive(t *testing.T) {
	def := checkingDef()
	def.Active = false
	acct, err := NewAccount(def)
	require.NoError(t, err)

	err = acct.ApplyPosting(dec("10.00"), true)
	require.Error(t, err)

	var inactive InactiveAccountError
	require.True(t, errors.As(err, &inactive))
	assert.Equal(t, "1010", inactive.AccountID)
	assert.True(t, acct.Balance().IsZero(), "no balance change on rejection")
}

func TestApplyPosting_NonPositiveAmount(t *testing.T) {
	acct, err := NewAccount(checkingDef())
	require.NoError(t, err)

	assert.Error(t, acct.ApplyPosting(decimal.Zero, true))
	assert.Error(t, acct.ApplyPosting(dec("-5.00"), true))
	assert.True(t, acct.Balance().IsZero())
}

func TestApplyPosting_BankersRounding(t *testing.T) {
	acct, err := NewAccount(checkingDef())
	require.NoError(t, err)

	// 10.005 rounds half-to-even to 10.00; two postings give exactly 20.00.
	require.NoError(t, acct.ApplyPosting(dec("10.005"), true))
	require.NoError(t, acct.ApplyPosting(dec("10.005"), true))
	assert.Equal(t, "20.00", acct.Balance().StringFixed(2))

	// 10.015 rounds half-to-even to 10.02.
	require.NoError(t, acct.ApplyPosting(dec("10.015"), true))
	assert.Equal(t, "30.02", acct.Balance().StringFixed(2))
}

func TestResetBalance(t *testing.T) {
	acct, err := NewAccount(checkingDef())
	require.NoError(t, err)

	require.NoError(t, acct.ApplyPosting(dec("42.00"), true))
	acct.ResetBalance()
	assert.True(t, acct.Balance().IsZero())
}

func TestSideOpposite(t *testing.T) {
	assert.Equal(t, SideCredit, SideDebit.Opposite())
	assert.Equal(t, SideDebit, SideCredit.Opposite())
}

package processor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"firmdesk/internal/domain"
)

func TestDeriveTransactionType(t *testing.T) {
	cases := []struct {
		description string
		expected    string
	}{
		{"POS PURCHASE TERMINAL 001 GROCERY MART", "pos_purchase"},
		{"ATM WITHDRAWAL MAIN ST BRANCH", "atm_withdrawal"},
		{"ACH CREDIT PAYROLL ACME CORP", "ach_credit"},
		{"ACH DEBIT UTILITY CO", "ach_debit"},
		{"WIRE TRANSFER OUT REF 1234", "wire_transfer"},
		{"DIRECT DEPOSIT EMPLOYER INC", "direct_deposit"},
		{"PREAUTHORIZED CREDIT SSA TREAS", "direct_deposit"},
		{"CHECK 1042", "check"},
		{"INTEREST CREDIT", "interest"},
		{"MONTHLY FEE", "fee"},
		{"OVERDRAFT ITEM FEE", "fee"},
		{"TRANSFER TO SAVINGS", "transfer_out"},
		{"TRANSFER FROM CHECKING", "transfer_in"},
		{"MOBILE DEPOSIT", "deposit"},
		{"REFUND AMAZON MKTP", "refund"},
		{"something unrecognizable", "other"},
	}
	for _, tc := range cases {
		t.Run(tc.description, func(t *testing.T) {
			assert.Equal(t, tc.expected, DeriveTransactionType(tc.description))
		})
	}
}

func TestDeriveDebitCredit(t *testing.T) {
	credits := []string{
		"PREAUTHORIZED CREDIT SSA TREAS",
		"INTEREST CREDIT",
		"MOBILE DEPOSIT REF 99",
		"REFUND AMAZON MKTP",
	}
	for _, desc := range credits {
		assert.Equal(t, domain.Credit, DeriveDebitCredit(desc), desc)
	}

	debits := []string{
		"POS PURCHASE GROCERY MART",
		"ATM WITHDRAWAL",
		"CHECK 1042",
		"MONTHLY FEE",
		"",
	}
	for _, desc := range debits {
		assert.Equal(t, domain.Debit, DeriveDebitCredit(desc), desc)
	}
}

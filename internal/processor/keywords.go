package processor

import (
	"strings"

	"firmdesk/internal/domain"
)

// transactionTypeRules maps description keywords to a normalized
// transaction_type, checked in order.
var transactionTypeRules = []struct {
	keyword string
	txnType string
}{
	{"pos purchase", "pos_purchase"},
	{"pos ", "pos_purchase"},
	{"atm withdrawal", "atm_withdrawal"},
	{"atm ", "atm_withdrawal"},
	{"ach credit", "ach_credit"},
	{"ach debit", "ach_debit"},
	{"ach ", "ach_transfer"},
	{"wire transfer", "wire_transfer"},
	{"wire ", "wire_transfer"},
	{"direct deposit", "direct_deposit"},
	{"preauthorized credit", "direct_deposit"},
	{"check ", "check"},
	{"check#", "check"},
	{"interest credit", "interest"},
	{"interest paid", "interest"},
	{"service charge", "fee"},
	{"service fee", "fee"},
	{"monthly fee", "fee"},
	{"overdraft", "fee"},
	{"transfer to", "transfer_out"},
	{"transfer from", "transfer_in"},
	{"online transfer", "transfer"},
	{"deposit", "deposit"},
	{"withdrawal", "withdrawal"},
	{"refund", "refund"},
	{"payment", "payment"},
	{"debit card", "card_purchase"},
}

// DeriveTransactionType normalizes a free-text transaction description into a
// ledger transaction_type.
func DeriveTransactionType(description string) string {
	desc := strings.ToLower(description)
	for _, rule := range transactionTypeRules {
		if strings.Contains(desc, rule.keyword) {
			return rule.txnType
		}
	}
	return "other"
}

// creditKeywords mark a transaction as money in. Everything else is a debit.
var creditKeywords = []string{
	"preauthorized credit",
	"interest credit",
	"deposit",
	"refund",
}

// DeriveDebitCredit classifies a transaction description as a debit or a
// credit from keyword matching.
func DeriveDebitCredit(description string) domain.DebitCredit {
	desc := strings.ToLower(description)
	for _, keyword := range creditKeywords {
		if strings.Contains(desc, keyword) {
			return domain.Credit
		}
	}
	return domain.Debit
}

package classify

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"firmdesk/internal/domain"
	"firmdesk/internal/port"
)

// FallbackClassifier is a deterministic keyword classifier used when the
// LLM provider fails or returns unparseable output. It always produces a
// complete analysis, never an error.
type FallbackClassifier struct{}

// NewFallbackClassifier creates the keyword-based fallback classifier.
func NewFallbackClassifier() *FallbackClassifier {
	return &FallbackClassifier{}
}

var (
	noticeNumberRe = regexp.MustCompile(`(?i)\b(CP\s?-?\d{2,4}[A-Z]?|LT\s?-?\d{2}|LTR\s?-?\d{3,4})\b`)
	taxYearRe      = regexp.MustCompile(`(?i)(?:tax\s+year|for\s+year|TY)\s*[:\s]?\s*(20\d{2})`)
	amountRe       = regexp.MustCompile(`(?i)(?:amount\s+(?:due|owed)|balance\s+due|total\s+due)\s*[:\s]?\s*\$?\s*([\d,]+(?:\.\d{2})?)`)
)

func (f *FallbackClassifier) Classify(_ context.Context, input port.ClassifyInput) (*domain.NoticeAnalysis, error) {
	haystack := strings.ToLower(input.Text + " " + input.FileName)

	switch {
	case containsAny(haystack, "cp2000", "cp 2000"):
		return noticeAnalysis(haystack, "CP2000", "Proposed changes to your tax return", domain.PriorityHigh), nil
	case containsAny(haystack, "cp14", "cp 14"):
		return noticeAnalysis(haystack, "CP14", "Balance due", domain.PriorityMedium), nil
	case containsAny(haystack, "cp90", "cp 90", "intent to levy"):
		return noticeAnalysis(haystack, "CP90", "Final notice of intent to levy", domain.PriorityCritical), nil
	case containsAny(haystack, "internal revenue service", "irs notice", "department of the treasury"):
		return noticeAnalysis(haystack, "", "IRS notice", domain.PriorityMedium), nil
	case containsAny(haystack, "w-2", "w2", "wage and tax statement"):
		return simpleAnalysis(domain.ClassTax, domain.CategoryWageStatement, "", "W-2 wage and tax statement."), nil
	case containsAny(haystack, "1099"):
		return simpleAnalysis(domain.ClassTax, domain.CategoryMiscIncome, "", "1099 income statement."), nil
	case containsAny(haystack, "w-9", "w9", "request for taxpayer identification"):
		return simpleAnalysis(domain.ClassTax, domain.CategoryVendorTaxForm, "", "W-9 taxpayer identification form."), nil
	case containsAny(haystack, "bank statement", "account statement", "beginning balance", "ending balance"):
		return simpleAnalysis(domain.ClassFinancial, domain.CategoryBankStatement, "bank statement", "Bank account statement."), nil
	case containsAny(haystack, "invoice"):
		return simpleAnalysis(domain.ClassFinancial, domain.CategoryInvoice, "invoice", "Invoice."), nil
	case containsAny(haystack, "receipt"):
		return simpleAnalysis(domain.ClassFinancial, domain.CategoryReceipt, "receipt", "Purchase receipt."), nil
	case containsAny(haystack, "driver license", "driver's license", "passport", "social security card"):
		return simpleAnalysis(domain.ClassIdentity, domain.CategoryOther, "", "Identity document."), nil
	default:
		return simpleAnalysis(domain.ClassUnknown, domain.CategoryOther, "", "Document could not be classified automatically, please review manually."), nil
	}
}

func noticeAnalysis(haystack, noticeNumber, noticeType string, priority domain.NoticePriority) *domain.NoticeAnalysis {
	if noticeNumber == "" {
		if m := noticeNumberRe.FindStringSubmatch(haystack); m != nil {
			noticeNumber = strings.ToUpper(strings.ReplaceAll(strings.ReplaceAll(m[1], " ", ""), "-", ""))
		}
	}
	analysis := &domain.NoticeAnalysis{
		Classification: domain.ClassTax,
		Category:       domain.CategoryTaxNotice,
		NoticeNumber:   noticeNumber,
		NoticeType:     noticeType,
		Priority:       priority,
		Summary:        fmt.Sprintf("Tax authority notice (%s). Automated classification, verify details manually.", noticeType),
		Recommendations: []string{
			"Verify the notice details against the original document",
			"Respond before the stated deadline",
		},
	}
	if m := taxYearRe.FindStringSubmatch(haystack); m != nil {
		if year, err := strconv.Atoi(m[1]); err == nil {
			analysis.TaxYear = &year
		}
	}
	if m := amountRe.FindStringSubmatch(haystack); m != nil {
		if amount, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64); err == nil {
			analysis.AmountOwed = &amount
		}
	}
	return analysis
}

func simpleAnalysis(class domain.Classification, category domain.DocumentCategory, secondaryType, summary string) *domain.NoticeAnalysis {
	return &domain.NoticeAnalysis{
		Classification:  class,
		Category:        category,
		SecondaryType:   secondaryType,
		Summary:         summary,
		Recommendations: []string{},
	}
}

func containsAny(s string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

package classify

import "fmt"

const promptTemplate = `You are a document classifier for a CPA firm. Analyze the document text below and classify it.

Return ONLY a JSON object with this exact shape, no markdown fences, no commentary:

{
  "classification": "Financial" | "Identity" | "Tax" | "Unknown",
  "category": "wage-statement" | "miscellaneous-income-statement" | "receipt" | "bank-statement" | "tax-authority-notice" | "vendor-tax-form" | "invoice" | "other",
  "secondary_type": "bank statement" | "invoice" | "receipt" | null,
  "notice_number": string | null,
  "notice_type": string | null,
  "tax_year": number | null,
  "amount_owed": number | null,
  "deadline": "YYYY-MM-DD" | null,
  "priority": "low" | "medium" | "high" | "critical" | null,
  "summary": string,
  "recommendations": [string]
}

Rules:
- Tax authority notices (CP2000, CP14, CP90, levy or lien letters) are "Tax" with category "tax-authority-notice". Fill the notice fields.
- W-2 forms are "Tax" with category "wage-statement". 1099 forms are "Tax" with category "miscellaneous-income-statement".
- W-9 forms are "Tax" with category "vendor-tax-form".
- Bank statements, invoices and receipts are "Financial"; set secondary_type accordingly.
- Driver licenses, passports and social security cards are "Identity" with category "other".
- If nothing matches, use "Unknown" and category "other".
- "summary" is 1-3 sentences describing the document for an accountant.

Document filename: %s

Document text:
---
%s
---`

// BuildPrompt renders the classification prompt for a document's text.
func BuildPrompt(text, fileName string) string {
	return fmt.Sprintf(promptTemplate, fileName, text)
}

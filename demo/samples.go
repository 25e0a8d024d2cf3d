// Package demo provides sample contracts and offline providers that stand in
// for a real analysis service.
package demo

import "github.com/fwojciec/redline"

// Sample contract texts.
const (
	EmploymentContract = "This Employment Agreement is made between [Employer] and [Employee]. " +
		"The Employee agrees to perform duties as assigned. Compensation will be paid monthly. " +
		"Confidentiality must be maintained. Termination may occur with two weeks' notice. " +
		"The Employee is entitled to health benefits."

	ContractA = "1. Payment Terms: Payment is due within 30 days of invoice.\n" +
		"2. Confidentiality: Both parties agree to keep information confidential.\n" +
		"3. Termination: Either party may terminate with 30 days notice."

	ContractB = "1. Payment Terms: Payment is due within 45 days of invoice.\n" +
		"2. Confidentiality: Both parties agree to keep information confidential.\n" +
		"3. Termination: Either party may terminate with 60 days notice.\n" +
		"4. Data Protection: Both parties will comply with GDPR."
)

// SampleName is the document name of the sample contracts.
const SampleName = "sample"

// SampleDocument returns the sample employment contract.
func SampleDocument() redline.Document {
	return redline.Document{Name: SampleName, Text: EmploymentContract}
}

// SampleComparison returns the two sample contracts to compare.
func SampleComparison() (left, right redline.Document) {
	return redline.Document{Name: "Contract A", Text: ContractA},
		redline.Document{Name: "Contract B", Text: ContractB}
}

var findings = []redline.Annotation{
	{
		Start:      0,
		End:        28,
		Category:   redline.CategoryRisk,
		Message:    "Missing non-compete clause.",
		Suggestion: "Consider adding a non-compete clause to protect business interests.",
	},
	{
		Start:      61,
		End:        110,
		Category:   redline.CategoryAmbiguous,
		Message:    "'as assigned' is ambiguous.",
		Suggestion: "Specify the duties more clearly to avoid confusion.",
	},
	{
		Start:      180,
		End:        210,
		Category:   redline.CategoryMissing,
		Message:    "No severance terms.",
		Suggestion: "Add severance terms for clarity on termination conditions.",
	},
}

// Findings returns the fixed findings for EmploymentContract.
func Findings() []redline.Annotation {
	return append([]redline.Annotation(nil), findings...)
}

var diff = []redline.DiffEntry{
	{
		Label: "1. Payment Terms",
		Left:  "Payment is due within 30 days of invoice.",
		Right: "Payment is due within 45 days of invoice.",
		Kind:  redline.DiffChanged,
		Note:  "Longer payment window increases cash flow risk.",
	},
	{
		Label: "2. Confidentiality",
		Left:  "Both parties agree to keep information confidential.",
		Right: "Both parties agree to keep information confidential.",
		Kind:  redline.DiffSame,
	},
	{
		Label: "3. Termination",
		Left:  "Either party may terminate with 30 days notice.",
		Right: "Either party may terminate with 60 days notice.",
		Kind:  redline.DiffChanged,
		Note:  "Longer notice period may delay exit from contract.",
	},
	{
		Label: "4. Data Protection",
		Right: "Both parties will comply with GDPR.",
		Kind:  redline.DiffAdded,
		Note:  "New clause: Ensure GDPR compliance is feasible.",
	},
}

// Diff returns the fixed comparison of ContractA and ContractB.
func Diff() []redline.DiffEntry {
	return append([]redline.DiffEntry(nil), diff...)
}

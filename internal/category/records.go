package category

import "github.com/lox/bank-statement-categorizer/internal/types"

// Tax categories used by the built-in table
const (
	TaxWorkRelated      = "Work-related expenses"
	TaxGifts            = "Gifts and donations"
	TaxManagingAffairs  = "Cost of managing tax affairs"
	TaxIncomeProtection = "Income protection insurance"
	TaxPersonal         = "Personal"
	TaxIncome           = "Income"
	TaxTransfers        = "Transfers"
)

// D-codes follow the deduction labels of the individual tax return
var defaultRecords = []types.CategoryRecord{
	{Code: "D1", Description: "Work-related car expenses", TaxCategory: TaxWorkRelated, IsDeductible: true},
	{Code: "D2", Description: "Work-related travel expenses", TaxCategory: TaxWorkRelated, IsDeductible: true},
	{Code: "D3", Description: "Work-related clothing, laundry and dry-cleaning expenses", TaxCategory: TaxWorkRelated, IsDeductible: true},
	{Code: "D4", Description: "Work-related self-education expenses", TaxCategory: TaxWorkRelated, IsDeductible: true},
	{Code: "D5", Description: "Other work-related expenses", TaxCategory: TaxWorkRelated, IsDeductible: true},
	{Code: "D9", Description: "Gifts or donations", TaxCategory: TaxGifts, IsDeductible: true},
	{Code: "D10", Description: "Cost of managing tax affairs", TaxCategory: TaxManagingAffairs, IsDeductible: true},
	{Code: "INS-IP", Description: "Income protection insurance premiums", TaxCategory: TaxIncomeProtection, IsDeductible: true},
	{Code: "GROC", Description: "Groceries", TaxCategory: TaxPersonal},
	{Code: "DINE", Description: "Dining and takeaway", TaxCategory: TaxPersonal},
	{Code: "FUEL", Description: "Fuel", TaxCategory: TaxPersonal},
	{Code: "TPT", Description: "Public transport", TaxCategory: TaxPersonal},
	{Code: "ENT", Description: "Entertainment and subscriptions", TaxCategory: TaxPersonal},
	{Code: "SHOP", Description: "General shopping", TaxCategory: TaxPersonal},
	{Code: "UTIL", Description: "Utilities and telecommunications", TaxCategory: TaxPersonal},
	{Code: "HLTH", Description: "Health and medical", TaxCategory: TaxPersonal},
	{Code: "FEE", Description: "Bank fees and charges", TaxCategory: TaxPersonal},
	{Code: "INC", Description: "Salary and other income", TaxCategory: TaxIncome},
	{Code: "XFER", Description: "Transfers and repayments", TaxCategory: TaxTransfers},
}

// DefaultRecords returns a copy of the built-in category records
func DefaultRecords() []types.CategoryRecord {
	return append([]types.CategoryRecord(nil), defaultRecords...)
}

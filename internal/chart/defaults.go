package chart

import "github.com/booksmith-dev/booksmith/internal/model"

// DefaultChart returns the default chart of accounts for an entity type.
// Every definition carries an explicit normal balance, including the contra
// asset for accumulated depreciation.
func DefaultChart(entityType string) []model.AccountDef {
	switch entityType {
	case "llc_single_member":
		return llcSingleMemberChart()
	default:
		return llcSingleMemberChart()
	}
}

func llcSingleMemberChart() []model.AccountDef {
	return []model.AccountDef{
		{ID: "1010", Code: "1010", Name: "Business Checking", Type: model.AccountTypeAsset, NormalBalance: model.SideDebit, Active: true},
		{ID: "1020", Code: "1020", Name: "Business Savings", Type: model.AccountTypeAsset, NormalBalance: model.SideDebit, Active: true},
		{ID: "1510", Code: "1510", Name: "Equipment", Type: model.AccountTypeAsset, NormalBalance: model.SideDebit, Active: true},
		{ID: "1590", Code: "1590", Name: "Accumulated Depreciation", Type: model.AccountTypeAsset, Subtype: "contra", NormalBalance: model.SideCredit, ParentID: "1510", Active: true},
		{ID: "2010", Code: "2010", Name: "Credit Card", Type: model.AccountTypeLiability, NormalBalance: model.SideCredit, Active: true},
		{ID: "3010", Code: "3010", Name: "Owner's Equity", Type: model.AccountTypeEquity, NormalBalance: model.SideCredit, Active: true},
		{ID: "3020", Code: "3020", Name: "Owner's Draws", Type: model.AccountTypeEquity, Subtype: "contra", NormalBalance: model.SideDebit, Active: true},
		{ID: "4010", Code: "4010", Name: "Service Revenue", Type: model.AccountTypeIncome, NormalBalance: model.SideCredit, Active: true},
		{ID: "4020", Code: "4020", Name: "Product Revenue", Type: model.AccountTypeIncome, NormalBalance: model.SideCredit, Active: true},
		{ID: "5010", Code: "5010", Name: "Advertising & Marketing", Type: model.AccountTypeExpense, Subtype: "non-recoverable", NormalBalance: model.SideDebit, Active: true},
		{ID: "5020", Code: "5020", Name: "Software & SaaS", Type: model.AccountTypeExpense, Subtype: "non-recoverable", NormalBalance: model.SideDebit, Active: true},
		{ID: "5030", Code: "5030", Name: "Office Supplies", Type: model.AccountTypeExpense, Subtype: "recoverable", NormalBalance: model.SideDebit, Active: true},
		{ID: "5040", Code: "5040", Name: "Professional Services", Type: model.AccountTypeExpense, Subtype: "non-recoverable", NormalBalance: model.SideDebit, Active: true},
		{ID: "5090", Code: "5090", Name: "Bank Fees", Type: model.AccountTypeExpense, Subtype: "non-recoverable", NormalBalance: model.SideDebit, Active: true},
		{ID: "9999", Code: "9999", Name: "Uncategorized", Type: model.AccountTypeExpense, NormalBalance: model.SideDebit, ControlAccount: true, Active: true},
	}
}

package reports

import (
	"encoding/csv"
	"io"
)

// WriteCSV renders the report as CSV for download. Sections are
// separated by a blank record so the file stays readable in a
// spreadsheet without further processing.
func WriteCSV(w io.Writer, report Report) error {
	writer := csv.NewWriter(w)

	records := [][]string{
		{"Financial Report", report.From.String(), report.To.String()},
		{},
		{"Total Income", report.TotalIncome.String()},
		{"Total Expense", report.TotalExpense.String()},
		{"Balance", report.Balance.String()},
	}

	if len(report.ExpenseByCategory) > 0 {
		records = append(records, []string{}, []string{"Expenses by Category", "Amount"})
		for _, category := range report.ExpenseByCategory {
			records = append(records, []string{category.CategoryName, category.Total.String()})
		}
	}

	if len(report.IncomeByCategory) > 0 {
		records = append(records, []string{}, []string{"Income by Category", "Amount"})
		for _, category := range report.IncomeByCategory {
			records = append(records, []string{category.CategoryName, category.Total.String()})
		}
	}

	if len(report.Budgets) > 0 {
		records = append(records, []string{}, []string{"Budget", "Amount", "Spent", "Progress", "Exceeded"})
		for _, budget := range report.Budgets {
			exceeded := "no"
			if budget.Exceeded {
				exceeded = "yes"
			}
			records = append(records, []string{
				budget.Name,
				budget.Amount.String(),
				budget.Spent.String(),
				budget.ProgressPercentage.String(),
				exceeded,
			})
		}
	}

	if len(report.SavingGoals) > 0 {
		records = append(records, []string{}, []string{"Saving Goal", "Target", "Current", "Progress", "Achieved"})
		for _, goal := range report.SavingGoals {
			achieved := "no"
			if goal.Achieved {
				achieved = "yes"
			}
			records = append(records, []string{
				goal.Name,
				goal.TargetAmount.String(),
				goal.CurrentAmount.String(),
				goal.ProgressPercentage.String(),
				achieved,
			})
		}
	}

	if err := writer.WriteAll(records); err != nil {
		return err
	}

	return writer.Error()
}

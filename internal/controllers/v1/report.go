package v1

import (
	"fmt"
	"net/http"

	"github.com/centsible/backend/internal/httputil"
	"github.com/centsible/backend/internal/models"
	"github.com/centsible/backend/internal/reports"
	"github.com/centsible/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RegisterReportRoutes registers the routes for reports with
// the RouterGroup that is passed.
func RegisterReportRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsReport)
	r.GET("", GetReport)

	for _, path := range []string{"/dashboard", "/trends", "/breakdown", "/performance", "/quick-stats", "/export/csv"} {
		r.OPTIONS(path, OptionsReport)
	}

	r.GET("/dashboard", GetDashboard)
	r.GET("/trends", GetMonthlyTrends)
	r.GET("/breakdown", GetCategoryBreakdown)
	r.GET("/performance", GetBudgetPerformance)
	r.GET("/quick-stats", GetQuickStats)
	r.GET("/export/csv", GetReportCSV)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Reports
// @Success		204
// @Router			/v1/reports [options]
func OptionsReport(c *gin.Context) {
	httputil.OptionsGet(c)
}

// reportRange binds the from and to query parameters. Range rules are
// checked by the reports package, only the date format is parsed here.
func reportRange(c *gin.Context) (types.Date, types.Date, error) {
	var query ReportQuery
	_ = c.Bind(&query)

	from, err := httputil.DateFromString(query.From)
	if err != nil {
		return types.Date{}, types.Date{}, err
	}

	to, err := httputil.DateFromString(query.To)
	if err != nil {
		return types.Date{}, types.Date{}, err
	}

	return from, to, nil
}

func runReport[R any](c *gin.Context, run func(uuid.UUID, types.Date, types.Date) (R, error)) (R, bool) {
	var zero R

	from, to, err := reportRange(c)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return zero, false
	}

	data, err := run(owner(c), from, to)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return zero, false
	}

	return data, true
}

// @Summary		Financial report
// @Description	Returns the full financial report for the date range, including budget and saving goal sections
// @Tags			Reports
// @Produce		json
// @Success		200	{object}	reports.Report
// @Failure		400	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			from	query	string	true	"Start of the range in YYYY-MM-DD format"
// @Param			to		query	string	true	"End of the range in YYYY-MM-DD format"
// @Router			/v1/reports [get]
func GetReport(c *gin.Context) {
	report, ok := runReport(c, reports.Full)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, report)
}

// @Summary		Dashboard
// @Description	Returns totals, balance and category breakdowns for the date range
// @Tags			Reports
// @Produce		json
// @Success		200	{object}	reports.Report
// @Failure		400	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			from	query	string	true	"Start of the range in YYYY-MM-DD format"
// @Param			to		query	string	true	"End of the range in YYYY-MM-DD format"
// @Router			/v1/reports/dashboard [get]
func GetDashboard(c *gin.Context) {
	report, ok := runReport(c, reports.Dashboard)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, report)
}

// @Summary		Monthly trends
// @Description	Returns per-month income, expenses, savings and savings rate over the date range
// @Tags			Reports
// @Produce		json
// @Success		200	{array}		reports.MonthlyTrend
// @Failure		400	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			from	query	string	true	"Start of the range in YYYY-MM-DD format"
// @Param			to		query	string	true	"End of the range in YYYY-MM-DD format"
// @Router			/v1/reports/trends [get]
func GetMonthlyTrends(c *gin.Context) {
	trends, ok := runReport(c, reports.MonthlyTrends)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, trends)
}

// @Summary		Category breakdown
// @Description	Returns the per-category sums for one transaction type over the date range
// @Tags			Reports
// @Produce		json
// @Success		200	{object}	reports.CategoryBreakdown
// @Failure		400	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			from	query	string	true	"Start of the range in YYYY-MM-DD format"
// @Param			to		query	string	true	"End of the range in YYYY-MM-DD format"
// @Param			type	query	string	false	"EXPENSE or INCOME. Defaults to EXPENSE"
// @Router			/v1/reports/breakdown [get]
func GetCategoryBreakdown(c *gin.Context) {
	var query struct {
		Type string `form:"type"`
	}
	_ = c.Bind(&query)

	categoryType := models.CategoryType(query.Type)
	if query.Type != "" && categoryType != models.CategoryTypeExpense && categoryType != models.CategoryTypeIncome {
		c.JSON(http.StatusBadRequest, httpError{
			Error: errReportTypeInvalid.Error(),
		})
		return
	}

	breakdown, ok := runReport(c, func(owner uuid.UUID, from, to types.Date) (reports.CategoryBreakdown, error) {
		return reports.Breakdown(owner, from, to, categoryType)
	})
	if !ok {
		return
	}

	c.JSON(http.StatusOK, breakdown)
}

// @Summary		Budget performance
// @Description	Classifies the budgets of the date range into on-track, at-risk and exceeded
// @Tags			Reports
// @Produce		json
// @Success		200	{object}	reports.BudgetPerformance
// @Failure		400	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			from	query	string	true	"Start of the range in YYYY-MM-DD format"
// @Param			to		query	string	true	"End of the range in YYYY-MM-DD format"
// @Router			/v1/reports/performance [get]
func GetBudgetPerformance(c *gin.Context) {
	performance, ok := runReport(c, reports.Performance)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, performance)
}

// @Summary		Quick stats
// @Description	Returns the compact overview for the date range
// @Tags			Reports
// @Produce		json
// @Success		200	{object}	reports.QuickStats
// @Failure		400	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			from	query	string	true	"Start of the range in YYYY-MM-DD format"
// @Param			to		query	string	true	"End of the range in YYYY-MM-DD format"
// @Router			/v1/reports/quick-stats [get]
func GetQuickStats(c *gin.Context) {
	stats, ok := runReport(c, reports.Stats)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, stats)
}

// @Summary		Report CSV export
// @Description	Returns the full financial report for the date range as a CSV file
// @Tags			Reports
// @Produce		text/csv
// @Success		200
// @Failure		400	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			from	query	string	true	"Start of the range in YYYY-MM-DD format"
// @Param			to		query	string	true	"End of the range in YYYY-MM-DD format"
// @Router			/v1/reports/export/csv [get]
func GetReportCSV(c *gin.Context) {
	report, ok := runReport(c, reports.Full)
	if !ok {
		return
	}

	filename := fmt.Sprintf("financial-report_%s_%s.csv", report.From, report.To)
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Status(http.StatusOK)

	err := reports.WriteCSV(c.Writer, report)
	if err != nil {
		// The header is already written, all we can do is log
		_ = c.Error(err)
	}
}

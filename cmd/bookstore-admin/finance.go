package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/bookstore/bookstore-admin/internal/bootstrap"
	"github.com/bookstore/bookstore-admin/internal/domain/model"
	"github.com/bookstore/bookstore-admin/internal/export"
	"github.com/bookstore/bookstore-admin/internal/router"
	"github.com/bookstore/bookstore-admin/internal/service"
	"github.com/bookstore/bookstore-admin/internal/util"
)

func registerRangeFlags(fs *flag.FlagSet, r *model.DateRange) {
	fs.StringVar(&r.StartDate, "from", "", "Start date (YYYY-MM-DD)")
	fs.StringVar(&r.EndDate, "to", "", "End date (YYYY-MM-DD)")
}

func parseTransactionType(raw string) (model.TransactionType, error) {
	if strings.TrimSpace(raw) == "" {
		return "", nil
	}
	t, ok := model.ParseTransactionType(raw)
	if !ok {
		return "", fmt.Errorf("invalid --type %q", raw)
	}
	return t, nil
}

func runTransactions(cmdCtx *commandContext, args []string) error {
	fs := newFlagSet("transactions")
	var (
		r       model.DateRange
		kind    string
		pageNum int
		out     outputOptions
	)
	registerRangeFlags(fs, &r)
	fs.StringVar(&kind, "type", "", "INCOME, EXPENSE, REFUND or OTHER")
	fs.IntVar(&pageNum, "page", 1, "Page number")
	registerOutputFlags(fs, &out)
	if err := fs.Parse(args); err != nil {
		return err
	}
	txType, err := parseTransactionType(kind)
	if err != nil {
		return err
	}
	if err := r.Validate(); err != nil {
		return err
	}
	if err := out.validate(); err != nil {
		return err
	}

	return cmdCtx.withConsole(func(con *bootstrap.Console) error {
		if _, err := cmdCtx.enter(con, "/finance", router.NameFinance); err != nil {
			return err
		}
		filters := service.TransactionFilters{Type: txType, StartDate: r.StartDate, EndDate: r.EndDate}
		page, err := con.Finance.ApplyFilters(cmdCtx.Ctx, filters)
		if err == nil && pageNum > 1 {
			con.Finance.SetPage(pageNum)
			page, err = con.Finance.LoadTransactions(cmdCtx.Ctx)
		}
		if err != nil {
			return err
		}
		return cmdCtx.render(out, page, func(w io.Writer) error {
			return printTransactions(w, page)
		})
	})
}

func printTransactions(w io.Writer, page model.Page[model.Transaction]) error {
	if err := writeln(w, "Date\tType\tAmount\tDescription\tReference"); err != nil {
		return fmt.Errorf("write transactions header: %w", err)
	}
	for _, t := range page.Items {
		if err := writef(w, "%s\t%s\t%s\t%s\t%s\n",
			util.FormatDateTime(t.TransactionDate), t.TransactionType.Label(), util.FormatMoney(t.Amount),
			util.OrPlaceholder(t.Description), util.OrPlaceholder(t.ReferenceNumber),
		); err != nil {
			return fmt.Errorf("write transaction %d: %w", t.ID, err)
		}
	}
	return printPagination(w, page.Pagination)
}

func runFinanceSummary(cmdCtx *commandContext, args []string) error {
	fs := newFlagSet("finance-summary")
	var (
		r   model.DateRange
		out outputOptions
	)
	registerRangeFlags(fs, &r)
	registerOutputFlags(fs, &out)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := r.Validate(); err != nil {
		return err
	}
	if err := out.validate(); err != nil {
		return err
	}
	return cmdCtx.withConsole(func(con *bootstrap.Console) error {
		if _, err := cmdCtx.enter(con, "/finance", router.NameFinance); err != nil {
			return err
		}
		sum, err := con.Finance.LoadSummary(cmdCtx.Ctx, r)
		if err != nil {
			return err
		}
		return cmdCtx.render(out, sum, func(w io.Writer) error {
			return printSummary(w, con.Finance, sum)
		})
	})
}

func printSummary(w io.Writer, fin *service.FinanceService, sum model.Summary) error {
	rows := [][2]string{
		{"Income", fin.FormattedIncome()},
		{"Expense", fin.FormattedExpense()},
		{"Net profit", fin.FormattedProfit()},
		{"Today", util.FormatMoney(sum.TodayIncome)},
		{"This month", util.FormatMoney(sum.MonthIncome)},
	}
	if c := sum.Comparison; c != nil {
		rows = append(rows,
			[2]string{"Income change", util.FormatPercent(c.IncomeChangeRate)},
			[2]string{"Expense change", util.FormatPercent(c.ExpenseChangeRate)},
			[2]string{"Profit change", util.FormatPercent(c.ProfitChangeRate)},
		)
	}
	types := make([]string, 0, len(sum.ByType))
	for t := range sum.ByType {
		types = append(types, string(t))
	}
	sort.Strings(types)
	for _, t := range types {
		tt := model.TransactionType(t)
		rows = append(rows, [2]string{tt.Label(), util.FormatMoney(sum.ByType[tt])})
	}
	return printFields(w, rows)
}

// Report kinds shared by finance-report and finance-export.
const (
	reportStatistics   = "statistics"
	reportTrend        = "trend"
	reportTopBooks     = "top-books"
	reportProfit       = "profit"
	reportCategories   = "categories"
	reportTransactions = "transactions"
)

type reportOptions struct {
	Kind   string
	Range  model.DateRange
	Period string
	Limit  int
	Type   string
	Format string
	Output string
	Out    outputOptions
}

func parseReportFlags(name string, args []string, forExport bool) (reportOptions, error) {
	fs := newFlagSet(name)
	var opts reportOptions
	registerRangeFlags(fs, &opts.Range)
	fs.StringVar(&opts.Period, "period", string(model.TrendDaily), "Trend bucket: daily, weekly or monthly")
	fs.IntVar(&opts.Limit, "limit", 0, "Row limit for trend and top-books")
	if forExport {
		fs.StringVar(&opts.Kind, "kind", reportTransactions, "transactions, trend, top-books or categories")
		fs.StringVar(&opts.Type, "type", "", "Transaction type filter for the ledger export")
		fs.StringVar(&opts.Format, "format", string(export.FormatCSV), "csv or xls")
		fs.StringVar(&opts.Output, "output", "", "Destination file; - writes to stdout (default <kind>.<ext>)")
	} else {
		fs.StringVar(&opts.Kind, "kind", reportStatistics, "statistics, trend, top-books, profit or categories")
		registerOutputFlags(fs, &opts.Out)
	}
	if err := fs.Parse(args); err != nil {
		return reportOptions{}, err
	}
	opts.Kind = strings.ToLower(strings.TrimSpace(opts.Kind))
	if err := opts.Range.Validate(); err != nil {
		return reportOptions{}, err
	}
	return opts, opts.Out.validate()
}

func runFinanceReport(cmdCtx *commandContext, args []string) error {
	opts, err := parseReportFlags("finance-report", args, false)
	if err != nil {
		return err
	}
	return cmdCtx.withConsole(func(con *bootstrap.Console) error {
		if _, err := cmdCtx.enter(con, "/finance", router.NameFinance); err != nil {
			return err
		}
		ctx := cmdCtx.Ctx
		switch opts.Kind {
		case reportStatistics:
			st, err := con.Finance.SalesStatistics(ctx, opts.Range)
			if err != nil {
				return err
			}
			return cmdCtx.render(opts.Out, st, func(w io.Writer) error {
				return printFields(w, [][2]string{
					{"Sales", strconv.Itoa(st.TotalSales)},
					{"Revenue", util.FormatMoney(st.TotalRevenue)},
				})
			})
		case reportProfit:
			pa, err := con.Finance.ProfitAnalysis(ctx, opts.Range)
			if err != nil {
				return err
			}
			return cmdCtx.render(opts.Out, pa, func(w io.Writer) error {
				return printFields(w, [][2]string{
					{"Revenue", util.FormatMoney(pa.TotalRevenue)},
					{"Cost", util.FormatMoney(pa.TotalCost)},
					{"Other expenses", util.FormatMoney(pa.OtherExpenses)},
					{"Gross profit", util.FormatMoney(pa.GrossProfit)},
					{"Net profit", util.FormatMoney(pa.NetProfit)},
					{"Gross margin", fmt.Sprintf("%.1f%%", pa.GrossMargin)},
					{"Net margin", fmt.Sprintf("%.1f%%", pa.NetMargin)},
				})
			})
		case reportTrend, reportTopBooks, reportCategories:
			table, v, err := loadReportTable(cmdCtx, con, opts)
			if err != nil {
				return err
			}
			return cmdCtx.render(opts.Out, v, func(w io.Writer) error {
				return printTable(w, table)
			})
		default:
			return fmt.Errorf("unsupported report kind %q", opts.Kind)
		}
	})
}

// loadReportTable fetches a tabular report and returns it with the raw rows.
func loadReportTable(cmdCtx *commandContext, con *bootstrap.Console, opts reportOptions) (export.Table, any, error) {
	ctx := cmdCtx.Ctx
	switch opts.Kind {
	case reportTrend:
		points, err := con.Finance.SalesTrend(ctx, model.TrendQuery{
			DateRange: opts.Range,
			Period:    model.TrendPeriod(strings.ToLower(opts.Period)),
			Limit:     opts.Limit,
		})
		return export.TrendPoints(points), points, err
	case reportTopBooks:
		books, err := con.Finance.TopSellingBooks(ctx, model.TopBooksQuery{DateRange: opts.Range, Limit: opts.Limit})
		return export.TopBooks(books), books, err
	case reportCategories:
		cats, err := con.Finance.RevenueByCategory(ctx, opts.Range)
		return export.Categories(cats), cats, err
	case reportTransactions:
		txType, err := parseTransactionType(opts.Type)
		if err != nil {
			return export.Table{}, nil, err
		}
		if _, err := con.Finance.ApplyFilters(ctx, service.TransactionFilters{
			Type:      txType,
			StartDate: opts.Range.StartDate,
			EndDate:   opts.Range.EndDate,
		}); err != nil {
			return export.Table{}, nil, err
		}
		txns, err := con.Finance.AllTransactions(ctx)
		return export.Transactions(txns), txns, err
	default:
		return export.Table{}, nil, fmt.Errorf("unsupported report kind %q", opts.Kind)
	}
}

func printTable(w io.Writer, t export.Table) error {
	if err := writeln(w, strings.Join(t.Columns, "\t")); err != nil {
		return fmt.Errorf("write table header: %w", err)
	}
	for _, row := range t.Rows {
		vals := make([]string, len(row))
		for i, c := range row {
			vals[i] = util.OrPlaceholder(c.Value)
		}
		if err := writeln(w, strings.Join(vals, "\t")); err != nil {
			return fmt.Errorf("write table row: %w", err)
		}
	}
	return nil
}

func runFinanceExport(cmdCtx *commandContext, args []string) error {
	opts, err := parseReportFlags("finance-export", args, true)
	if err != nil {
		return err
	}
	format, err := export.ParseFormat(opts.Format)
	if err != nil {
		return err
	}
	if opts.Kind == reportStatistics || opts.Kind == reportProfit {
		return fmt.Errorf("report kind %q has no tabular export", opts.Kind)
	}
	return cmdCtx.withConsole(func(con *bootstrap.Console) error {
		if _, err := cmdCtx.enter(con, "/finance", router.NameFinance); err != nil {
			return err
		}
		table, _, err := loadReportTable(cmdCtx, con, opts)
		if err != nil {
			return err
		}
		if opts.Output == "-" {
			return export.Write(cmdCtx.Stdout, format, table)
		}
		dest := opts.Output
		if dest == "" {
			dest = export.Filename(opts.Kind, format)
		}
		if err := writeFileAtomic(dest, func(w io.Writer) error {
			return export.Write(w, format, table)
		}); err != nil {
			return err
		}
		return writef(cmdCtx.Stdout, "Exported %d rows to %s\n", len(table.Rows), dest)
	})
}

// writeFileAtomic renders into a temporary file next to dest and renames it into place.
func writeFileAtomic(dest string, render func(w io.Writer) error) (err error) {
	dir := filepath.Dir(dest)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(dest)+".*")
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer func() {
		if err != nil {
			err = errors.Join(err, os.Remove(tmp.Name()))
		}
	}()
	if err = render(tmp); err != nil {
		return errors.Join(err, tmp.Close())
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close export file: %w", err)
	}
	if err = os.Rename(tmp.Name(), dest); err != nil {
		return fmt.Errorf("move export file into place: %w", err)
	}
	return nil
}

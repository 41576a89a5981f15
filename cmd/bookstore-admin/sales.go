package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bookstore/bookstore-admin/internal/bootstrap"
	"github.com/bookstore/bookstore-admin/internal/domain/model"
	"github.com/bookstore/bookstore-admin/internal/router"
	"github.com/bookstore/bookstore-admin/internal/util"
)

// repeatedFlag collects every occurrence of a flag.
type repeatedFlag []string

func (r *repeatedFlag) String() string { return strings.Join(*r, ",") }

func (r *repeatedFlag) Set(v string) error {
	*r = append(*r, v)
	return nil
}

// parseLine splits "a:b:c" into exactly n trimmed parts.
func parseLine(raw string, n int, format string) ([]string, error) {
	parts := strings.Split(raw, ":")
	if len(parts) != n {
		return nil, fmt.Errorf("invalid item %q (want %s)", raw, format)
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts, nil
}

func parseSaleItems(raw []string) ([]model.SaleItemInput, error) {
	const format = "book_id:quantity:price"
	items := make([]model.SaleItemInput, 0, len(raw))
	for _, r := range raw {
		parts, err := parseLine(r, 3, format)
		if err != nil {
			return nil, err
		}
		id, err := strconv.ParseInt(parts[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid item %q: book_id: %w", r, err)
		}
		qty, err := strconv.Atoi(parts[1])
		if err != nil {
			return nil, fmt.Errorf("invalid item %q: quantity: %w", r, err)
		}
		price, err := model.ParseMoney(parts[2])
		if err != nil {
			return nil, fmt.Errorf("invalid item %q: price: %w", r, err)
		}
		items = append(items, model.SaleItemInput{BookID: id, Quantity: qty, SalePrice: price})
	}
	return items, nil
}

type salesOptions struct {
	Status  string
	Range   model.DateRange
	Page    int
	PerPage int
	Out     outputOptions
}

func parseSalesFlags(args []string) (salesOptions, error) {
	fs := newFlagSet("sales")
	var opts salesOptions
	fs.StringVar(&opts.Status, "status", "", "COMPLETED or REFUNDED")
	fs.StringVar(&opts.Range.StartDate, "from", "", "Start date (YYYY-MM-DD)")
	fs.StringVar(&opts.Range.EndDate, "to", "", "End date (YYYY-MM-DD)")
	fs.IntVar(&opts.Page, "page", 1, "Page number")
	fs.IntVar(&opts.PerPage, "per-page", model.DefaultPerPage, "Sales per page (max 100)")
	registerOutputFlags(fs, &opts.Out)
	if err := fs.Parse(args); err != nil {
		return salesOptions{}, err
	}
	if opts.Status != "" {
		s, ok := model.ParseSaleStatus(opts.Status)
		if !ok {
			return salesOptions{}, fmt.Errorf("invalid --status %q", opts.Status)
		}
		opts.Status = string(s)
	}
	if err := opts.Range.Validate(); err != nil {
		return salesOptions{}, err
	}
	return opts, opts.Out.validate()
}

func runSales(cmdCtx *commandContext, args []string) error {
	opts, err := parseSalesFlags(args)
	if err != nil {
		return err
	}
	return cmdCtx.withConsole(func(con *bootstrap.Console) error {
		if _, err := cmdCtx.enter(con, "/sales", router.NameSales); err != nil {
			return err
		}
		page, err := con.Sales.Load(cmdCtx.Ctx, model.SaleQuery{
			PageParams: model.PageParams{Page: opts.Page, PerPage: opts.PerPage},
			DateRange:  opts.Range,
			Status:     model.SaleStatus(opts.Status),
		})
		if err != nil {
			return err
		}
		return cmdCtx.render(opts.Out, page, func(w io.Writer) error {
			if err := printSales(w, page); err != nil {
				return err
			}
			return writef(w, "Completed %d\tRefunded %d\tCompleted total %s\n",
				con.Sales.CompletedCount(), con.Sales.RefundedCount(), util.FormatMoney(con.Sales.CompletedTotal()))
		})
	})
}

func printSales(w io.Writer, page model.Page[model.Sale]) error {
	if err := writeln(w, "ID\tNumber\tDate\tStatus\tCustomer\tPayment\tTotal"); err != nil {
		return fmt.Errorf("write sales header: %w", err)
	}
	for _, s := range page.Items {
		if err := writef(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			s.ID, s.SaleNumber, util.FormatDateTime(s.SaleDate), s.Status,
			util.OrPlaceholder(s.CustomerName), util.OrPlaceholder(s.PaymentMethod), util.FormatMoney(s.TotalAmount),
		); err != nil {
			return fmt.Errorf("write sale %d: %w", s.ID, err)
		}
	}
	return printPagination(w, page.Pagination)
}

func printSale(w io.Writer, s model.Sale) error {
	rows := [][2]string{
		{"ID", formatID(s.ID)},
		{"Number", s.SaleNumber},
		{"Date", util.FormatDateTime(s.SaleDate)},
		{"Status", string(s.Status)},
		{"Customer", util.OrPlaceholder(s.CustomerName)},
		{"Contact", util.OrPlaceholder(s.Contact)},
		{"Payment", util.OrPlaceholder(s.PaymentMethod)},
		{"Remarks", util.OrPlaceholder(s.Remarks)},
		{"Total", util.FormatMoney(s.TotalAmount)},
	}
	if err := printFields(w, rows); err != nil {
		return err
	}
	if err := writeln(w, "\nBook\tQty\tUnit\tSubtotal"); err != nil {
		return fmt.Errorf("write sale items header: %w", err)
	}
	for _, it := range s.Items {
		name := formatID(it.BookID)
		if it.Book != nil && it.Book.Name != "" {
			name = it.Book.Name
		}
		if err := writef(w, "%s\t%d\t%s\t%s\n", name, it.Quantity,
			util.FormatMoney(it.UnitPrice()), util.FormatMoney(it.Subtotal)); err != nil {
			return fmt.Errorf("write sale item: %w", err)
		}
	}
	return nil
}

func runSale(cmdCtx *commandContext, args []string) error {
	fs := newFlagSet("sale")
	var (
		id  int64
		out outputOptions
	)
	fs.Int64Var(&id, "id", 0, "Sale id (required)")
	registerOutputFlags(fs, &out)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := requireID("id", id); err != nil {
		return err
	}
	if err := out.validate(); err != nil {
		return err
	}
	return cmdCtx.withConsole(func(con *bootstrap.Console) error {
		if _, err := cmdCtx.enter(con, "/sales/"+formatID(id), router.NameSaleDetail); err != nil {
			return err
		}
		s, err := con.Sales.Fetch(cmdCtx.Ctx, id)
		if err != nil {
			return err
		}
		return cmdCtx.render(out, s, func(w io.Writer) error {
			return printSale(w, s)
		})
	})
}

func runSaleCreate(cmdCtx *commandContext, args []string) error {
	fs := newFlagSet("sale-create")
	var (
		req   model.CreateSaleRequest
		items repeatedFlag
		out   outputOptions
	)
	fs.StringVar(&req.CustomerName, "customer", "", "Customer name")
	fs.StringVar(&req.Contact, "contact", "", "Customer contact")
	fs.StringVar(&req.PaymentMethod, "payment", "CASH", "Payment method")
	fs.StringVar(&req.Remarks, "remarks", "", "Remarks")
	fs.Var(&items, "item", "Line as book_id:quantity:price (repeatable, at least one)")
	registerOutputFlags(fs, &out)
	if err := fs.Parse(args); err != nil {
		return err
	}
	lines, err := parseSaleItems(items)
	if err != nil {
		return err
	}
	req.Items = lines
	if err := req.Validate(); err != nil {
		return err
	}
	if err := out.validate(); err != nil {
		return err
	}
	return cmdCtx.withConsole(func(con *bootstrap.Console) error {
		if _, err := cmdCtx.enter(con, "/sales", router.NameSales); err != nil {
			return err
		}
		s, err := con.Sales.Create(cmdCtx.Ctx, req)
		if err != nil {
			return withFieldDetails(err, con.Sales.FieldErrors())
		}
		return cmdCtx.render(out, s, func(w io.Writer) error {
			return printSale(w, s)
		})
	})
}

func runSaleRefund(cmdCtx *commandContext, args []string) error {
	fs := newFlagSet("sale-refund")
	var (
		id  int64
		yes bool
	)
	fs.Int64Var(&id, "id", 0, "Sale id (required)")
	fs.BoolVar(&yes, "yes", false, "Skip the confirmation prompt")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := requireID("id", id); err != nil {
		return err
	}
	return cmdCtx.withConsole(func(con *bootstrap.Console) error {
		if _, err := cmdCtx.enter(con, "/sales/"+formatID(id), router.NameSaleDetail); err != nil {
			return err
		}
		s, err := con.Sales.Fetch(cmdCtx.Ctx, id)
		if err != nil {
			return err
		}
		if !s.Status.Refundable() {
			return errors.New("only completed sales can be refunded")
		}
		prompt := fmt.Sprintf("Sale %s (%s) will be refunded and its stock restored.", s.SaleNumber, util.FormatMoney(s.TotalAmount))
		if err := cmdCtx.confirm(yes, prompt); err != nil {
			return err
		}
		msg, err := con.Sales.Refund(cmdCtx.Ctx, id)
		if err != nil {
			return err
		}
		return writeln(cmdCtx.Stdout, util.OrPlaceholder(msg))
	})
}

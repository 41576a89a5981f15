package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/bookstore/bookstore-admin/internal/bootstrap"
	"github.com/bookstore/bookstore-admin/internal/domain/model"
	"github.com/bookstore/bookstore-admin/internal/router"
	"github.com/bookstore/bookstore-admin/internal/service"
	"github.com/bookstore/bookstore-admin/internal/util"
)

type ordersOptions struct {
	Filters service.OrderFilters
	Page    int
	Out     outputOptions
}

func parseOrdersFlags(args []string) (ordersOptions, error) {
	fs := newFlagSet("orders")
	var (
		opts   ordersOptions
		status string
	)
	fs.StringVar(&status, "status", "", "UNPAID, PAID, STOCKED or RETURNED")
	fs.StringVar(&opts.Filters.StartDate, "from", "", "Start date (YYYY-MM-DD)")
	fs.StringVar(&opts.Filters.EndDate, "to", "", "End date (YYYY-MM-DD)")
	fs.IntVar(&opts.Page, "page", 1, "Page number")
	registerOutputFlags(fs, &opts.Out)
	if err := fs.Parse(args); err != nil {
		return ordersOptions{}, err
	}
	if status != "" {
		s, ok := model.ParseOrderStatus(status)
		if !ok {
			return ordersOptions{}, fmt.Errorf("invalid --status %q", status)
		}
		opts.Filters.Status = s
	}
	r := model.DateRange{StartDate: opts.Filters.StartDate, EndDate: opts.Filters.EndDate}
	if err := r.Validate(); err != nil {
		return ordersOptions{}, err
	}
	return opts, opts.Out.validate()
}

func runOrders(cmdCtx *commandContext, args []string) error {
	opts, err := parseOrdersFlags(args)
	if err != nil {
		return err
	}
	return cmdCtx.withConsole(func(con *bootstrap.Console) error {
		if _, err := cmdCtx.enter(con, "/procurement", router.NameProcurement); err != nil {
			return err
		}
		page, err := con.Procurement.ApplyFilters(cmdCtx.Ctx, opts.Filters)
		if err == nil && opts.Page > 1 {
			con.Procurement.SetPage(opts.Page)
			page, err = con.Procurement.Load(cmdCtx.Ctx)
		}
		if err != nil {
			return err
		}
		return cmdCtx.render(opts.Out, page, func(w io.Writer) error {
			if err := printOrders(w, page); err != nil {
				return err
			}
			return printStatusCounts(w, con.Procurement.StatusCounts())
		})
	})
}

func printOrders(w io.Writer, page model.Page[model.PurchaseOrder]) error {
	if err := writeln(w, "ID\tNumber\tDate\tStatus\tSupplier\tLines\tTotal"); err != nil {
		return fmt.Errorf("write orders header: %w", err)
	}
	for _, o := range page.Items {
		if err := writef(w, "%d\t%s\t%s\t%s\t%s\t%d\t%s\n",
			o.ID, o.OrderNumber, util.FormatDate(o.OrderDate), o.Status,
			util.OrPlaceholder(o.Supplier), len(o.Items), util.FormatMoney(o.TotalAmount),
		); err != nil {
			return fmt.Errorf("write order %d: %w", o.ID, err)
		}
	}
	return printPagination(w, page.Pagination)
}

func printStatusCounts(w io.Writer, counts map[model.OrderStatus]int) error {
	for _, s := range model.OrderStatuses {
		if err := writef(w, "%s %d\t", s, counts[s]); err != nil {
			return fmt.Errorf("write status counts: %w", err)
		}
	}
	return writeln(w)
}

func printOrder(w io.Writer, o model.PurchaseOrder) error {
	rows := [][2]string{
		{"ID", formatID(o.ID)},
		{"Number", o.OrderNumber},
		{"Date", util.FormatDateTime(o.OrderDate)},
		{"Status", string(o.Status)},
		{"Supplier", util.OrPlaceholder(o.Supplier)},
		{"Remarks", util.OrPlaceholder(o.Remarks)},
		{"Total", util.FormatMoney(o.TotalAmount)},
	}
	if err := printFields(w, rows); err != nil {
		return err
	}
	if err := writeln(w, "\nBook\tQty\tPurchase\tSubtotal"); err != nil {
		return fmt.Errorf("write order items header: %w", err)
	}
	for _, it := range o.Items {
		if err := writef(w, "%s\t%d\t%s\t%s\n", util.OrPlaceholder(it.Label()), it.Quantity,
			util.FormatMoney(it.PurchasePrice), util.FormatMoney(it.Subtotal)); err != nil {
			return fmt.Errorf("write order item: %w", err)
		}
	}
	return nil
}

func parseOrderID(name string, args []string, withOutput bool) (int64, bool, outputOptions, error) {
	fs := newFlagSet(name)
	var (
		id  int64
		yes bool
		out outputOptions
	)
	fs.Int64Var(&id, "id", 0, "Order id (required)")
	fs.BoolVar(&yes, "yes", false, "Skip the confirmation prompt")
	if withOutput {
		registerOutputFlags(fs, &out)
	}
	if err := fs.Parse(args); err != nil {
		return 0, false, out, err
	}
	if err := requireID("id", id); err != nil {
		return 0, false, out, err
	}
	return id, yes, out, out.validate()
}

func runOrder(cmdCtx *commandContext, args []string) error {
	id, _, out, err := parseOrderID("order", args, true)
	if err != nil {
		return err
	}
	return cmdCtx.withConsole(func(con *bootstrap.Console) error {
		if _, err := cmdCtx.enter(con, "/procurement/"+formatID(id), router.NameProcurementDetail); err != nil {
			return err
		}
		o, err := con.Procurement.Fetch(cmdCtx.Ctx, id)
		if err != nil {
			return err
		}
		return cmdCtx.render(out, o, func(w io.Writer) error {
			return printOrder(w, o)
		})
	})
}

// parseOrderItems accepts "book_id:quantity:price" for stocked titles and
// "title:author:publisher:quantity:price" for new ones.
func parseOrderItems(stocked, fresh []string) ([]model.OrderItem, error) {
	items := make([]model.OrderItem, 0, len(stocked)+len(fresh))
	for _, raw := range stocked {
		parts, err := parseLine(raw, 3, "book_id:quantity:price")
		if err != nil {
			return nil, err
		}
		id, err := strconv.ParseInt(parts[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid item %q: book_id: %w", raw, err)
		}
		item, err := orderLine(raw, parts[1], parts[2])
		if err != nil {
			return nil, err
		}
		item.BookID = &id
		items = append(items, item)
	}
	for _, raw := range fresh {
		parts, err := parseLine(raw, 5, "title:author:publisher:quantity:price")
		if err != nil {
			return nil, err
		}
		item, err := orderLine(raw, parts[3], parts[4])
		if err != nil {
			return nil, err
		}
		item.Title, item.Author, item.Publisher = parts[0], parts[1], parts[2]
		items = append(items, item)
	}
	return items, nil
}

func orderLine(raw, qty, price string) (model.OrderItem, error) {
	q, err := strconv.Atoi(qty)
	if err != nil {
		return model.OrderItem{}, fmt.Errorf("invalid item %q: quantity: %w", raw, err)
	}
	p, err := model.ParseMoney(price)
	if err != nil {
		return model.OrderItem{}, fmt.Errorf("invalid item %q: price: %w", raw, err)
	}
	return model.OrderItem{Quantity: q, PurchasePrice: p}, nil
}

func runOrderCreate(cmdCtx *commandContext, args []string) error {
	fs := newFlagSet("order-create")
	var (
		req            model.CreateOrderRequest
		stocked, fresh repeatedFlag
		out            outputOptions
	)
	fs.StringVar(&req.Supplier, "supplier", "", "Supplier name")
	fs.StringVar(&req.Remarks, "remarks", "", "Remarks")
	fs.Var(&stocked, "item", "Existing title as book_id:quantity:price (repeatable)")
	fs.Var(&fresh, "new-item", "New title as title:author:publisher:quantity:price (repeatable)")
	registerOutputFlags(fs, &out)
	if err := fs.Parse(args); err != nil {
		return err
	}
	items, err := parseOrderItems(stocked, fresh)
	if err != nil {
		return err
	}
	req.Items = items
	if err := req.Validate(); err != nil {
		return err
	}
	if err := out.validate(); err != nil {
		return err
	}
	return cmdCtx.withConsole(func(con *bootstrap.Console) error {
		if _, err := cmdCtx.enter(con, "/procurement", router.NameProcurement); err != nil {
			return err
		}
		o, err := con.Procurement.Create(cmdCtx.Ctx, req)
		if err != nil {
			return withFieldDetails(err, con.Procurement.FieldErrors())
		}
		return cmdCtx.render(out, o, func(w io.Writer) error {
			return printOrder(w, o)
		})
	})
}

func runOrderUpdate(cmdCtx *commandContext, args []string) error {
	fs := newFlagSet("order-update")
	var (
		id                int64
		supplier, remarks string
		out               outputOptions
	)
	fs.Int64Var(&id, "id", 0, "Order id (required)")
	fs.StringVar(&supplier, "supplier", "", "Supplier name")
	fs.StringVar(&remarks, "remarks", "", "Remarks")
	registerOutputFlags(fs, &out)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := requireID("id", id); err != nil {
		return err
	}
	req := model.UpdateOrderRequest{
		Supplier: optionalString(fs, "supplier", supplier),
		Remarks:  optionalString(fs, "remarks", remarks),
	}
	if err := req.Validate(); err != nil {
		return err
	}
	if err := out.validate(); err != nil {
		return err
	}
	return cmdCtx.withConsole(func(con *bootstrap.Console) error {
		if _, err := cmdCtx.enter(con, "/procurement/"+formatID(id), router.NameProcurementDetail); err != nil {
			return err
		}
		o, err := con.Procurement.Edit(cmdCtx.Ctx, id, req)
		if err != nil {
			return withFieldDetails(err, con.Procurement.FieldErrors())
		}
		return cmdCtx.render(out, o, func(w io.Writer) error {
			return printOrder(w, o)
		})
	})
}

type orderTransition struct {
	action model.OrderAction
	prompt string
	call   func(s *service.ProcurementService, ctx context.Context, id int64) (model.ActionResult[model.PurchaseOrder], error)
}

var (
	payTransition = orderTransition{
		action: model.OrderActionPay,
		prompt: "Order %s will be paid (%s) and recorded as an expense.",
		call:   (*service.ProcurementService).Pay,
	}
	returnTransition = orderTransition{
		action: model.OrderActionReturn,
		prompt: "Order %s (%s) will be returned and cannot be reopened.",
		call:   (*service.ProcurementService).Return,
	}
	stockInTransition = orderTransition{
		action: model.OrderActionStockIn,
		prompt: "Order %s (%s) will be received into inventory.",
		call:   (*service.ProcurementService).StockIn,
	}
)

func runOrderPay(cmdCtx *commandContext, args []string) error {
	return runOrderTransition(cmdCtx, "order-pay", args, payTransition)
}

func runOrderReturn(cmdCtx *commandContext, args []string) error {
	return runOrderTransition(cmdCtx, "order-return", args, returnTransition)
}

func runOrderStockIn(cmdCtx *commandContext, args []string) error {
	return runOrderTransition(cmdCtx, "order-stock-in", args, stockInTransition)
}

func runOrderTransition(cmdCtx *commandContext, name string, args []string, t orderTransition) error {
	id, yes, _, err := parseOrderID(name, args, false)
	if err != nil {
		return err
	}
	return cmdCtx.withConsole(func(con *bootstrap.Console) error {
		if _, err := cmdCtx.enter(con, "/procurement/"+formatID(id), router.NameProcurementDetail); err != nil {
			return err
		}
		o, err := con.Procurement.Fetch(cmdCtx.Ctx, id)
		if err != nil {
			return err
		}
		if !o.Status.Allows(t.action) {
			return fmt.Errorf("order %s is %s; %s is not allowed", o.OrderNumber, o.Status, t.action)
		}
		if err := cmdCtx.confirm(yes, fmt.Sprintf(t.prompt, o.OrderNumber, util.FormatMoney(o.TotalAmount))); err != nil {
			return err
		}
		res, err := t.call(con.Procurement, cmdCtx.Ctx, id)
		if err != nil {
			return err
		}
		cur, ok := con.Procurement.Current()
		if !ok {
			return errors.New("order disappeared after update")
		}
		return writef(cmdCtx.Stdout, "%s\nOrder %s is now %s\n", util.OrPlaceholder(res.Message), cur.OrderNumber, cur.Status)
	})
}

package main

import (
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/bookstore/bookstore-admin/internal/bootstrap"
	domainauth "github.com/bookstore/bookstore-admin/internal/domain/auth"
	"github.com/bookstore/bookstore-admin/internal/domain/model"
	"github.com/bookstore/bookstore-admin/internal/router"
	"github.com/bookstore/bookstore-admin/internal/service"
	"github.com/bookstore/bookstore-admin/internal/util"
)

const dashboardPanelSize = 5

// dashboardView is the landing page: panels the principal's role may see.
type dashboardView struct {
	User    domainauth.Principal             `json:"user"`
	Books   model.Page[model.Book]           `json:"books"`
	Sales   model.Page[model.Sale]           `json:"sales"`
	Orders  *model.Page[model.PurchaseOrder] `json:"unpaid_orders,omitempty"`
	Summary *model.Summary                   `json:"summary,omitempty"`
}

func runDashboard(cmdCtx *commandContext, args []string) error {
	fs := newFlagSet("dashboard")
	var r model.DateRange
	var out outputOptions
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
		if _, err := cmdCtx.enter(con, router.HomePath, router.NameDashboard); err != nil {
			return err
		}
		user, ok := con.Gate.Principal()
		if !ok {
			return errNotSignedIn
		}
		view := dashboardView{User: user}
		admin := con.Gate.HasRole(domainauth.RoleAdmin)

		g, ctx := errgroup.WithContext(cmdCtx.Ctx)
		g.Go(func() error {
			page, err := con.Books.Load(ctx, model.BookQuery{PageParams: model.PageParams{Page: 1, PerPage: dashboardPanelSize}})
			view.Books = page
			return err
		})
		g.Go(func() error {
			page, err := con.Sales.Load(ctx, model.SaleQuery{
				PageParams: model.PageParams{Page: 1, PerPage: dashboardPanelSize},
				DateRange:  r,
			})
			view.Sales = page
			return err
		})
		if admin {
			g.Go(func() error {
				page, err := con.Procurement.ApplyFilters(ctx, service.OrderFilters{Status: model.OrderStatusUnpaid})
				if err != nil {
					return err
				}
				view.Orders = &page
				return nil
			})
			g.Go(func() error {
				sum, err := con.Finance.LoadSummary(ctx, r)
				if err != nil {
					return err
				}
				view.Summary = &sum
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return fmt.Errorf("load dashboard: %w", err)
		}

		return cmdCtx.render(out, view, func(w io.Writer) error {
			return printDashboard(w, con, view)
		})
	})
}

func printDashboard(w io.Writer, con *bootstrap.Console, v dashboardView) error {
	if err := writef(w, "Signed in as %s (%s)\n\n", v.User.DisplayName(), v.User.Role); err != nil {
		return fmt.Errorf("write dashboard header: %w", err)
	}
	if v.Summary != nil {
		if err := writeln(w, "Finance"); err != nil {
			return fmt.Errorf("write finance title: %w", err)
		}
		if err := printSummary(w, con.Finance, *v.Summary); err != nil {
			return err
		}
		if err := writeln(w); err != nil {
			return fmt.Errorf("write separator: %w", err)
		}
	}
	if err := writeln(w, "Recent sales"); err != nil {
		return fmt.Errorf("write sales title: %w", err)
	}
	if err := printSales(w, v.Sales); err != nil {
		return err
	}
	if err := writef(w, "Completed total %s\n\nBooks\n", util.FormatMoney(con.Sales.CompletedTotal())); err != nil {
		return fmt.Errorf("write books title: %w", err)
	}
	if err := printBooks(w, v.Books); err != nil {
		return err
	}
	if v.Orders != nil {
		if err := writeln(w, "\nUnpaid purchase orders"); err != nil {
			return fmt.Errorf("write orders title: %w", err)
		}
		if err := printOrders(w, *v.Orders); err != nil {
			return err
		}
	}
	return nil
}

package main

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/bookstore/bookstore-admin/internal/bootstrap"
	"github.com/bookstore/bookstore-admin/internal/domain/model"
	"github.com/bookstore/bookstore-admin/internal/router"
	"github.com/bookstore/bookstore-admin/internal/util"
)

type booksOptions struct {
	Search  string
	Page    int
	PerPage int
	All     bool
	Out     outputOptions
}

func parseBooksFlags(args []string) (booksOptions, error) {
	fs := newFlagSet("books")
	var opts booksOptions
	fs.StringVar(&opts.Search, "search", "", "Match name, author or ISBN")
	fs.IntVar(&opts.Page, "page", 1, "Page number")
	fs.IntVar(&opts.PerPage, "per-page", model.DefaultPerPage, "Books per page (max 100)")
	fs.BoolVar(&opts.All, "all", false, "Include deactivated books")
	registerOutputFlags(fs, &opts.Out)
	if err := fs.Parse(args); err != nil {
		return booksOptions{}, err
	}
	if opts.Page < 1 {
		return booksOptions{}, errors.New("--page must be at least 1")
	}
	if opts.PerPage < 1 || opts.PerPage > model.MaxPerPage {
		return booksOptions{}, fmt.Errorf("--per-page must be between 1 and %d", model.MaxPerPage)
	}
	return opts, opts.Out.validate()
}

func runBooks(cmdCtx *commandContext, args []string) error {
	opts, err := parseBooksFlags(args)
	if err != nil {
		return err
	}
	return cmdCtx.withConsole(func(con *bootstrap.Console) error {
		if _, err := cmdCtx.enter(con, "/books", router.NameBooks); err != nil {
			return err
		}
		activeOnly := !opts.All
		page, err := con.Books.Load(cmdCtx.Ctx, model.BookQuery{
			PageParams: model.PageParams{Page: opts.Page, PerPage: opts.PerPage},
			Search:     strings.TrimSpace(opts.Search),
			ActiveOnly: &activeOnly,
		})
		if err != nil {
			return err
		}
		return cmdCtx.render(opts.Out, page, func(w io.Writer) error {
			return printBooks(w, page)
		})
	})
}

func printBooks(w io.Writer, page model.Page[model.Book]) error {
	if err := writeln(w, "ID\tISBN\tName\tAuthor\tPrice\tQty\tActive"); err != nil {
		return fmt.Errorf("write books header: %w", err)
	}
	for _, b := range page.Items {
		if err := writef(w, "%d\t%s\t%s\t%s\t%s\t%d\t%t\n",
			b.ID, b.ISBN, b.Name, util.OrPlaceholder(b.Author),
			util.FormatMoney(b.RetailPrice), b.Quantity, b.IsActive,
		); err != nil {
			return fmt.Errorf("write book %d: %w", b.ID, err)
		}
	}
	return printPagination(w, page.Pagination)
}

func printPagination(w io.Writer, p model.Pagination) error {
	if err := writef(w, "\nPage %d of %d\t(%d total)\n", p.Page, max(p.Pages, 1), p.Total); err != nil {
		return fmt.Errorf("write pagination: %w", err)
	}
	return nil
}

func runBook(cmdCtx *commandContext, args []string) error {
	fs := newFlagSet("book")
	var ref string
	var out outputOptions
	fs.StringVar(&ref, "ref", "", "Book id or ISBN (required)")
	registerOutputFlags(fs, &out)
	if err := fs.Parse(args); err != nil {
		return err
	}
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return errors.New("--ref is required")
	}
	if err := out.validate(); err != nil {
		return err
	}
	return cmdCtx.withConsole(func(con *bootstrap.Console) error {
		if _, err := cmdCtx.enter(con, "/books/"+ref, router.NameBookDetail); err != nil {
			return err
		}
		b, err := con.Books.Fetch(cmdCtx.Ctx, ref)
		if err != nil {
			return err
		}
		return cmdCtx.render(out, b, func(w io.Writer) error {
			return printBook(w, b)
		})
	})
}

func printBook(w io.Writer, b model.Book) error {
	rows := [][2]string{
		{"ID", formatID(b.ID)},
		{"ISBN", b.ISBN},
		{"Name", b.Name},
		{"Author", util.OrPlaceholder(b.Author)},
		{"Publisher", util.OrPlaceholder(b.Publisher)},
		{"Price", util.FormatMoney(b.RetailPrice)},
		{"Quantity", strconv.Itoa(b.Quantity)},
		{"Active", strconv.FormatBool(b.IsActive)},
		{"Created", util.FormatDateTime(b.CreatedAt)},
		{"Updated", util.FormatDateTime(b.UpdatedAt)},
	}
	return printFields(w, rows)
}

func printFields(w io.Writer, rows [][2]string) error {
	for _, r := range rows {
		if err := writef(w, "%s\t%s\n", r[0], r[1]); err != nil {
			return fmt.Errorf("write %s: %w", strings.ToLower(r[0]), err)
		}
	}
	return nil
}

func runBookCreate(cmdCtx *commandContext, args []string) error {
	fs := newFlagSet("book-create")
	var (
		req               model.CreateBookRequest
		publisher, author string
		price             string
		out               outputOptions
	)
	fs.StringVar(&req.ISBN, "isbn", "", "ISBN (required)")
	fs.StringVar(&req.Name, "name", "", "Title (required)")
	fs.StringVar(&publisher, "publisher", "", "Publisher")
	fs.StringVar(&author, "author", "", "Author")
	fs.StringVar(&price, "price", "", "Retail price, e.g. 12.50 (required)")
	fs.IntVar(&req.Quantity, "quantity", 0, "Initial stock")
	registerOutputFlags(fs, &out)
	if err := fs.Parse(args); err != nil {
		return err
	}
	req.Publisher = optionalString(fs, "publisher", publisher)
	req.Author = optionalString(fs, "author", author)
	m, err := model.ParseMoney(price)
	if err != nil {
		return fmt.Errorf("--price: %w", err)
	}
	req.RetailPrice = m
	if err := req.Validate(); err != nil {
		return err
	}
	if err := out.validate(); err != nil {
		return err
	}

	return cmdCtx.withConsole(func(con *bootstrap.Console) error {
		if _, err := cmdCtx.enter(con, "/books", router.NameBooks); err != nil {
			return err
		}
		b, err := con.Books.Add(cmdCtx.Ctx, req)
		if err != nil {
			return withFieldDetails(err, con.Books.FieldErrors())
		}
		return cmdCtx.render(out, b, func(w io.Writer) error {
			return printBook(w, b)
		})
	})
}

func runBookUpdate(cmdCtx *commandContext, args []string) error {
	fs := newFlagSet("book-update")
	var (
		id                             int64
		name, publisher, author, price string
		quantity                       int
		active                         bool
		out                            outputOptions
	)
	fs.Int64Var(&id, "id", 0, "Book id (required)")
	fs.StringVar(&name, "name", "", "Title")
	fs.StringVar(&publisher, "publisher", "", "Publisher")
	fs.StringVar(&author, "author", "", "Author")
	fs.StringVar(&price, "price", "", "Retail price")
	fs.IntVar(&quantity, "quantity", 0, "Stock level")
	fs.BoolVar(&active, "active", true, "Reactivate (true) or deactivate (false)")
	registerOutputFlags(fs, &out)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := requireID("id", id); err != nil {
		return err
	}
	req := model.UpdateBookRequest{
		Name:      optionalString(fs, "name", name),
		Publisher: optionalString(fs, "publisher", publisher),
		Author:    optionalString(fs, "author", author),
		Quantity:  optionalInt(fs, "quantity", quantity),
		IsActive:  optionalBool(fs, "active", active),
	}
	if flagSet(fs, "price") {
		m, err := model.ParseMoney(price)
		if err != nil {
			return fmt.Errorf("--price: %w", err)
		}
		req.RetailPrice = &m
	}
	if err := req.Validate(); err != nil {
		return err
	}
	if err := out.validate(); err != nil {
		return err
	}

	return cmdCtx.withConsole(func(con *bootstrap.Console) error {
		if _, err := cmdCtx.enter(con, "/books/"+formatID(id), router.NameBookDetail); err != nil {
			return err
		}
		b, err := con.Books.Edit(cmdCtx.Ctx, id, req)
		if err != nil {
			return withFieldDetails(err, con.Books.FieldErrors())
		}
		return cmdCtx.render(out, b, func(w io.Writer) error {
			return printBook(w, b)
		})
	})
}

func runBookDelete(cmdCtx *commandContext, args []string) error {
	fs := newFlagSet("book-delete")
	var (
		id  int64
		yes bool
	)
	fs.Int64Var(&id, "id", 0, "Book id (required)")
	fs.BoolVar(&yes, "yes", false, "Skip the confirmation prompt")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := requireID("id", id); err != nil {
		return err
	}
	return cmdCtx.withConsole(func(con *bootstrap.Console) error {
		if _, err := cmdCtx.enter(con, "/books", router.NameBooks); err != nil {
			return err
		}
		if err := cmdCtx.confirm(yes, fmt.Sprintf("Book %d will be deactivated.", id)); err != nil {
			return err
		}
		msg, err := con.Books.Remove(cmdCtx.Ctx, id)
		if err != nil {
			return err
		}
		return writeln(cmdCtx.Stdout, util.OrPlaceholder(msg))
	})
}

// withFieldDetails appends per-field validation messages to err.
func withFieldDetails(err error, fields map[string][]string) error {
	if len(fields) == 0 {
		return err
	}
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+strings.Join(fields[name], "; "))
	}
	return fmt.Errorf("%w (%s)", err, strings.Join(parts, ", "))
}

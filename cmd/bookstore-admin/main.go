package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"

	jmespath "github.com/jmespath-community/go-jmespath"

	"github.com/bookstore/bookstore-admin/config"
	"github.com/bookstore/bookstore-admin/internal/bootstrap"
	"github.com/bookstore/bookstore-admin/internal/router"
)

type commandFn func(ctx *commandContext, args []string) error

type command struct {
	name        string
	description string
	run         commandFn
}

type commandContext struct {
	Ctx    context.Context
	Logger *slog.Logger
	Config config.AppConfig
	Stdout io.Writer
	Stdin  io.Reader

	// buildConsole replaces bootstrap.NewConsole when set.
	buildConsole func(ctx context.Context) (*bootstrap.Console, error)
}

var errNotSignedIn = errors.New("not signed in; run `bookstore-admin login` first")

func main() {
	logger := bootstrap.InitLogger()

	if len(os.Args) < 2 {
		if err := printUsage(os.Stdout); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when no command is provided
	}

	cmdName := os.Args[1]
	cmd, ok := commands()[cmdName]
	if !ok {
		if err := writef(os.Stderr, "unknown command %q\n\n", cmdName); err != nil {
			logger.Error("print unknown command message failed", "error", err)
		}
		if err := printUsage(os.Stderr); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when command is unknown
	}

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		logger.ErrorContext(context.Background(), "load config", "error", err)
		os.Exit(1) //nolint:forbidigo // CLI must signal configuration load failure to shell scripts
	}
	logger = bootstrap.NewLogger(os.Stderr, cfg.LogLevel.Level())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	cmdCtx := &commandContext{
		Ctx:    ctx,
		Logger: logger,
		Config: cfg,
		Stdout: os.Stdout,
		Stdin:  os.Stdin,
	}
	runErr := cmd.run(cmdCtx, os.Args[2:])
	stop()
	if runErr != nil {
		logger.ErrorContext(cmdCtx.Ctx, "command failed", "command", cmdName, "error", runErr)
		os.Exit(1) //nolint:forbidigo // CLI must propagate command execution failure to callers
	}
}

func commands() map[string]command {
	list := []command{
		{"login", "Sign in and persist the session", runLogin},
		{"logout", "Sign out and clear the persisted session", runLogout},
		{"whoami", "Show the signed-in account", runWhoami},
		{"open", "Navigate to a dashboard path and print where the filter lands", runOpen},
		{"dashboard", "Show the landing overview", runDashboard},
		{"books", "List books", runBooks},
		{"book", "Show one book by id or ISBN", runBook},
		{"book-create", "Add a book to the inventory", runBookCreate},
		{"book-update", "Edit a book", runBookUpdate},
		{"book-delete", "Deactivate a book", runBookDelete},
		{"sales", "List sales", runSales},
		{"sale", "Show one sale", runSale},
		{"sale-create", "Record a sale", runSaleCreate},
		{"sale-refund", "Refund a completed sale", runSaleRefund},
		{"orders", "List purchase orders", runOrders},
		{"order", "Show one purchase order", runOrder},
		{"order-create", "Create a purchase order", runOrderCreate},
		{"order-update", "Edit an unpaid purchase order", runOrderUpdate},
		{"order-pay", "Pay an unpaid purchase order", runOrderPay},
		{"order-return", "Return an unpaid purchase order", runOrderReturn},
		{"order-stock-in", "Receive a paid purchase order into inventory", runOrderStockIn},
		{"transactions", "List ledger transactions", runTransactions},
		{"finance-summary", "Show income, expense and profit", runFinanceSummary},
		{"finance-report", "Show a finance report", runFinanceReport},
		{"finance-export", "Export ledger entries or a report as CSV or XLS", runFinanceExport},
		{"users", "List admin accounts", runUsers},
		{"user-create", "Create an admin account", runUserCreate},
		{"user-update", "Edit an admin account", runUserUpdate},
		{"user-delete", "Delete an admin account", runUserDelete},
		{"profile-update", "Edit the signed-in account's profile", runProfileUpdate},
	}
	m := make(map[string]command, len(list))
	for _, c := range list {
		m[c.name] = c
	}
	return m
}

func printUsage(w io.Writer) error {
	if err := writef(w, "Usage: bookstore-admin <command> [flags]\n\n"); err != nil {
		return err
	}
	if err := writef(w, "Available commands:\n"); err != nil {
		return err
	}
	cmds := commands()
	names := make([]string, 0, len(cmds))
	for name := range cmds {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := writef(w, "  %-18s %s\n", name, cmds[name].description); err != nil {
			return err
		}
	}
	return nil
}

// withConsole builds the console, runs fn and releases the slot store.
func (c *commandContext) withConsole(fn func(con *bootstrap.Console) error) error {
	build := c.buildConsole
	if build == nil {
		build = func(ctx context.Context) (*bootstrap.Console, error) {
			return bootstrap.NewConsole(ctx, bootstrap.ConsoleOptions{Config: c.Config, Logger: c.Logger})
		}
	}
	con, err := build(c.Ctx)
	if err != nil {
		return fmt.Errorf("start console: %w", err)
	}
	defer func() {
		if cerr := con.Close(); cerr != nil {
			c.Logger.Warn("close console failed", "error", cerr)
		}
	}()
	return fn(con)
}

// enter navigates to path and fails unless the filter let the caller onto route name.
func (c *commandContext) enter(con *bootstrap.Console, path, name string) (router.Match, error) {
	m, err := con.Router.Go(c.Ctx, path)
	if err != nil {
		return router.Match{}, err
	}
	switch {
	case m.Route.Name == name:
		return m, nil
	case m.Route.Name == router.NameLogin:
		return m, errNotSignedIn
	default:
		return m, fmt.Errorf("insufficient permission for %s", path)
	}
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	return fs
}

type outputOptions struct {
	JSON  bool
	Query string
}

func registerOutputFlags(fs *flag.FlagSet, o *outputOptions) {
	fs.BoolVar(&o.JSON, "json", false, "Print JSON instead of a table")
	fs.StringVar(&o.Query, "query", "", "JMESPath expression applied to the JSON output (implies --json)")
}

func (o outputOptions) validate() error {
	if strings.TrimSpace(o.Query) == "" {
		return nil
	}
	if _, err := jmespath.Compile(o.Query); err != nil {
		return fmt.Errorf("invalid --query: %w", err)
	}
	return nil
}

// render prints v as JSON when requested, otherwise through table.
func (c *commandContext) render(o outputOptions, v any, table func(w io.Writer) error) error {
	if !o.JSON && strings.TrimSpace(o.Query) == "" {
		tw := tabwriter.NewWriter(c.Stdout, 0, 4, 2, ' ', 0)
		if err := table(tw); err != nil {
			return err
		}
		if err := tw.Flush(); err != nil {
			return fmt.Errorf("flush table: %w", err)
		}
		return nil
	}

	out := v
	if q := strings.TrimSpace(o.Query); q != "" {
		// Search works on generic JSON values, not on typed structs.
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode output: %w", err)
		}
		var doc any
		if err := json.Unmarshal(raw, &doc); err != nil {
			return fmt.Errorf("decode output: %w", err)
		}
		if out, err = jmespath.Search(q, doc); err != nil {
			return fmt.Errorf("apply --query: %w", err)
		}
	}
	enc := json.NewEncoder(c.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}

func (c *commandContext) confirm(yes bool, prompt string) error {
	if yes {
		return nil
	}
	if err := writef(c.Stdout, "%s Continue? [y/N]: ", prompt); err != nil {
		return fmt.Errorf("print confirmation prompt: %w", err)
	}
	resp, err := bufio.NewReader(c.Stdin).ReadString('\n')
	if err != nil && resp == "" {
		return errors.New("aborted by user")
	}
	resp = strings.ToLower(strings.TrimSpace(resp))
	if resp == "y" || resp == "yes" {
		return nil
	}
	return errors.New("aborted by user")
}

func requireID(name string, id int64) error {
	if id <= 0 {
		return fmt.Errorf("--%s is required", name)
	}
	return nil
}

// optionalString returns a pointer to v when the flag was set on fs.
func optionalString(fs *flag.FlagSet, name, v string) *string {
	if !flagSet(fs, name) {
		return nil
	}
	return &v
}

func optionalInt(fs *flag.FlagSet, name string, v int) *int {
	if !flagSet(fs, name) {
		return nil
	}
	return &v
}

func optionalBool(fs *flag.FlagSet, name string, v bool) *bool {
	if !flagSet(fs, name) {
		return nil
	}
	return &v
}

func flagSet(fs *flag.FlagSet, name string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

func formatID(id int64) string { return strconv.FormatInt(id, 10) }

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func writeln(w io.Writer, args ...any) error {
	if len(args) == 0 {
		_, err := fmt.Fprintln(w)
		return err
	}
	_, err := fmt.Fprintln(w, args...)
	return err
}

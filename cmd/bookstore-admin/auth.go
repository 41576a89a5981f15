package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/bookstore/bookstore-admin/internal/bootstrap"
	domainauth "github.com/bookstore/bookstore-admin/internal/domain/auth"
	"github.com/bookstore/bookstore-admin/internal/router"
	"github.com/bookstore/bookstore-admin/internal/util"
)

// passwordEnv supplies the login password for non-interactive use.
const passwordEnv = "BOOKSTORE_PASSWORD"

type loginOptions struct {
	Username string
	Password string
	Redirect string
}

func parseLoginFlags(args []string) (loginOptions, error) {
	fs := newFlagSet("login")
	var opts loginOptions
	fs.StringVar(&opts.Username, "username", "", "Account username (required)")
	fs.StringVar(&opts.Password, "password", "", "Account password (default $"+passwordEnv+" or stdin)")
	fs.StringVar(&opts.Redirect, "redirect", "", "Path to open after signing in")
	if err := fs.Parse(args); err != nil {
		return loginOptions{}, err
	}
	opts.Username = strings.TrimSpace(opts.Username)
	if opts.Username == "" {
		return loginOptions{}, errors.New("--username is required")
	}
	return opts, nil
}

func (c *commandContext) readPassword(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if v := os.Getenv(passwordEnv); v != "" {
		return v, nil
	}
	if err := writef(c.Stdout, "Password: "); err != nil {
		return "", fmt.Errorf("print password prompt: %w", err)
	}
	line, err := bufio.NewReader(c.Stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func runLogin(cmdCtx *commandContext, args []string) error {
	opts, err := parseLoginFlags(args)
	if err != nil {
		return err
	}
	password, err := cmdCtx.readPassword(opts.Password)
	if err != nil {
		return err
	}

	return cmdCtx.withConsole(func(con *bootstrap.Console) error {
		target := router.LoginPath
		if opts.Redirect != "" {
			target = router.LoginRedirect(opts.Redirect)
		}
		if _, err := con.Router.Go(cmdCtx.Ctx, target); err != nil {
			return err
		}

		p, err := con.Gate.Login(cmdCtx.Ctx, domainauth.Credentials{Username: opts.Username, Password: password})
		if err != nil {
			return err
		}
		landed, err := con.Router.Go(cmdCtx.Ctx, con.Router.PostLoginTarget())
		if err != nil {
			return err
		}
		return writef(cmdCtx.Stdout, "Signed in as %s (%s)\nOpened %s\n", p.DisplayName(), p.Role, landed.FullPath)
	})
}

func runLogout(cmdCtx *commandContext, args []string) error {
	if err := newFlagSet("logout").Parse(args); err != nil {
		return err
	}
	return cmdCtx.withConsole(func(con *bootstrap.Console) error {
		if err := con.Gate.Logout(cmdCtx.Ctx); err != nil {
			return fmt.Errorf("logout: %w", err)
		}
		return writeln(cmdCtx.Stdout, "Signed out")
	})
}

func runWhoami(cmdCtx *commandContext, args []string) error {
	fs := newFlagSet("whoami")
	var out outputOptions
	registerOutputFlags(fs, &out)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := out.validate(); err != nil {
		return err
	}
	return cmdCtx.withConsole(func(con *bootstrap.Console) error {
		if _, err := cmdCtx.enter(con, "/profile", router.NameProfile); err != nil {
			return err
		}
		p, ok := con.Gate.Principal()
		if !ok {
			return errNotSignedIn
		}
		return cmdCtx.render(out, p, func(w io.Writer) error {
			return printPrincipal(w, p)
		})
	})
}

func printPrincipal(w io.Writer, p domainauth.Principal) error {
	age := util.Placeholder
	if p.Age != nil {
		age = strconv.Itoa(*p.Age)
	}
	rows := [][2]string{
		{"ID", formatID(p.ID)},
		{"Username", p.Username},
		{"Name", util.OrPlaceholder(p.FullName)},
		{"Employee ID", util.OrPlaceholder(p.EmployeeID)},
		{"Gender", util.OrPlaceholder(p.Gender)},
		{"Age", age},
		{"Role", string(p.Role)},
		{"Created", util.FormatDateTime(p.CreatedAt)},
	}
	for _, r := range rows {
		if err := writef(w, "%s\t%s\n", r[0], r[1]); err != nil {
			return fmt.Errorf("write %s: %w", strings.ToLower(r[0]), err)
		}
	}
	return nil
}

func runOpen(cmdCtx *commandContext, args []string) error {
	fs := newFlagSet("open")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: bookstore-admin open <path>")
	}
	return cmdCtx.withConsole(func(con *bootstrap.Console) error {
		m, err := con.Router.Go(cmdCtx.Ctx, fs.Arg(0))
		if err != nil {
			return err
		}
		return writef(cmdCtx.Stdout, "%s\t%s\n", m.Route.Name, m.FullPath)
	})
}

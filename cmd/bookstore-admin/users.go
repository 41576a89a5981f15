package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/bookstore/bookstore-admin/internal/bootstrap"
	domainauth "github.com/bookstore/bookstore-admin/internal/domain/auth"
	"github.com/bookstore/bookstore-admin/internal/domain/model"
	"github.com/bookstore/bookstore-admin/internal/router"
	"github.com/bookstore/bookstore-admin/internal/util"
)

func runUsers(cmdCtx *commandContext, args []string) error {
	fs := newFlagSet("users")
	var out outputOptions
	registerOutputFlags(fs, &out)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := out.validate(); err != nil {
		return err
	}
	return cmdCtx.withConsole(func(con *bootstrap.Console) error {
		if _, err := cmdCtx.enter(con, "/users", router.NameUsers); err != nil {
			return err
		}
		users, err := con.Users.Load(cmdCtx.Ctx)
		if err != nil {
			return err
		}
		return cmdCtx.render(out, users, func(w io.Writer) error {
			return printUsers(w, users)
		})
	})
}

func printUsers(w io.Writer, users []domainauth.Principal) error {
	if err := writeln(w, "ID\tUsername\tName\tEmployee ID\tRole\tCreated"); err != nil {
		return fmt.Errorf("write users header: %w", err)
	}
	for _, u := range users {
		if err := writef(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			u.ID, u.Username, util.OrPlaceholder(u.FullName), util.OrPlaceholder(u.EmployeeID),
			u.Role, util.FormatDate(u.CreatedAt),
		); err != nil {
			return fmt.Errorf("write user %d: %w", u.ID, err)
		}
	}
	return nil
}

func runUserCreate(cmdCtx *commandContext, args []string) error {
	fs := newFlagSet("user-create")
	var (
		req model.CreateUserRequest
		age int
		out outputOptions
	)
	fs.StringVar(&req.Username, "username", "", "Login name (required)")
	fs.StringVar(&req.Password, "password", "", "Initial password (default $"+passwordEnv+" or stdin)")
	fs.StringVar(&req.FullName, "name", "", "Full name")
	fs.StringVar(&req.EmployeeID, "employee-id", "", "Employee id (required)")
	fs.StringVar(&req.Gender, "gender", "", "Gender")
	fs.IntVar(&age, "age", 0, "Age (18-100)")
	fs.StringVar(&req.Role, "role", model.RoleNameAdmin, "NORMAL_ADMIN or SUPER_ADMIN")
	registerOutputFlags(fs, &out)
	if err := fs.Parse(args); err != nil {
		return err
	}
	password, err := cmdCtx.readPassword(req.Password)
	if err != nil {
		return err
	}
	req.Password = password
	req.Age = optionalInt(fs, "age", age)
	if err := req.Validate(); err != nil {
		return err
	}
	if err := out.validate(); err != nil {
		return err
	}
	return cmdCtx.withConsole(func(con *bootstrap.Console) error {
		if _, err := cmdCtx.enter(con, "/users", router.NameUsers); err != nil {
			return err
		}
		u, err := con.Users.Create(cmdCtx.Ctx, req)
		if err != nil {
			return withFieldDetails(err, con.Users.FieldErrors())
		}
		return cmdCtx.render(out, u, func(w io.Writer) error {
			return printPrincipal(w, u)
		})
	})
}

func runUserUpdate(cmdCtx *commandContext, args []string) error {
	fs := newFlagSet("user-update")
	var (
		id                       int64
		name, employeeID, gender string
		role, passwd             string
		age                      int
		out                      outputOptions
	)
	fs.Int64Var(&id, "id", 0, "User id (required)")
	fs.StringVar(&name, "name", "", "Full name")
	fs.StringVar(&employeeID, "employee-id", "", "Employee id")
	fs.StringVar(&gender, "gender", "", "Gender")
	fs.IntVar(&age, "age", 0, "Age (18-100)")
	fs.StringVar(&role, "role", "", "NORMAL_ADMIN or SUPER_ADMIN")
	fs.StringVar(&passwd, "password", "", "New password")
	registerOutputFlags(fs, &out)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := requireID("id", id); err != nil {
		return err
	}
	req := model.UpdateUserRequest{
		FullName:   optionalString(fs, "name", name),
		EmployeeID: optionalString(fs, "employee-id", employeeID),
		Gender:     optionalString(fs, "gender", gender),
		Age:        optionalInt(fs, "age", age),
		Role:       optionalString(fs, "role", role),
		Password:   optionalString(fs, "password", passwd),
	}
	if err := req.Validate(); err != nil {
		return err
	}
	if err := out.validate(); err != nil {
		return err
	}
	return cmdCtx.withConsole(func(con *bootstrap.Console) error {
		if _, err := cmdCtx.enter(con, "/users", router.NameUsers); err != nil {
			return err
		}
		u, err := con.Users.Update(cmdCtx.Ctx, id, req)
		if err != nil {
			return withFieldDetails(err, con.Users.FieldErrors())
		}
		return cmdCtx.render(out, u, func(w io.Writer) error {
			return printPrincipal(w, u)
		})
	})
}

func runUserDelete(cmdCtx *commandContext, args []string) error {
	fs := newFlagSet("user-delete")
	var (
		id  int64
		yes bool
	)
	fs.Int64Var(&id, "id", 0, "User id (required)")
	fs.BoolVar(&yes, "yes", false, "Skip the confirmation prompt")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := requireID("id", id); err != nil {
		return err
	}
	return cmdCtx.withConsole(func(con *bootstrap.Console) error {
		if _, err := cmdCtx.enter(con, "/users", router.NameUsers); err != nil {
			return err
		}
		if p, ok := con.Gate.Principal(); ok && p.ID == id {
			return fmt.Errorf("refusing to delete the signed-in account %s", p.Username)
		}
		if err := cmdCtx.confirm(yes, "User "+strconv.FormatInt(id, 10)+" will be permanently deleted."); err != nil {
			return err
		}
		msg, err := con.Users.Delete(cmdCtx.Ctx, id)
		if err != nil {
			return err
		}
		return writeln(cmdCtx.Stdout, util.OrPlaceholder(msg))
	})
}

func runProfileUpdate(cmdCtx *commandContext, args []string) error {
	fs := newFlagSet("profile-update")
	var (
		name, gender string
		age          int
		out          outputOptions
	)
	fs.StringVar(&name, "name", "", "Full name")
	fs.StringVar(&gender, "gender", "", "Gender")
	fs.IntVar(&age, "age", 0, "Age (18-100)")
	registerOutputFlags(fs, &out)
	if err := fs.Parse(args); err != nil {
		return err
	}
	req := model.UpdateProfileRequest{
		FullName: optionalString(fs, "name", name),
		Gender:   optionalString(fs, "gender", gender),
		Age:      optionalInt(fs, "age", age),
	}
	if err := req.Validate(); err != nil {
		return err
	}
	if err := out.validate(); err != nil {
		return err
	}
	return cmdCtx.withConsole(func(con *bootstrap.Console) error {
		if _, err := cmdCtx.enter(con, "/profile", router.NameProfile); err != nil {
			return err
		}
		p, err := con.Users.UpdateProfile(cmdCtx.Ctx, req)
		if err != nil {
			return withFieldDetails(err, con.Users.FieldErrors())
		}
		return cmdCtx.render(out, p, func(w io.Writer) error {
			return printPrincipal(w, p)
		})
	})
}

package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	LoginWithToken(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	ResetPassword(ctx context.Context) error
	DeleteAccount(ctx context.Context) error
	ListCategories(ctx context.Context) error
	AddCategory(ctx context.Context, name string) error
	RenameCategory(ctx context.Context, name string) error
	MoveCategory(ctx context.Context, args []string) error
	DeleteCategory(ctx context.Context, name string) error
	ListSnips(ctx context.Context, category string) error
	AddSnip(ctx context.Context, category string) error
	EditSnip(ctx context.Context, category string) error
	DeleteSnip(ctx context.Context, category string) error
	Export(ctx context.Context, category string) error
}

const (
	helpLoggedOut = "Available commands: register, login, idlogin, reset, exit"
	helpLoggedIn  = "Available commands: (c)ats, addcat, renamecat, movecat, delcat, " +
		"(s)nips, addsnip, editsnip, delsnip, export, whoami, logout, delaccount, exit"
)

// needsCategory lists the commands that take a category name as argument.
var needsCategory = map[string]struct{}{
	"renamecat": {}, "delcat": {}, "s": {}, "snips": {},
	"addsnip": {}, "editsnip": {}, "delsnip": {}, "export": {},
}

// runREPL starts a simple read–eval–print loop for the SavvySnip CLI.
//
// It reads a line from in, parses the first token as the command and the
// rest as its argument, and dispatches to methods on 'a'. Category names may
// contain spaces. The loop exits on EOF, when ctx is done, or when the user
// types "exit" or "quit".
//
// Prompt & Commands
//
//	Not logged in:
//	  - help                    show available commands
//	  - register                create an account
//	  - login                   sign in with email and password
//	  - idlogin                 sign in with an external ID token
//	  - reset                   request a password reset email
//	  - exit | quit             leave the program
//
//	Logged in:
//	  - cats                    list categories
//	  - addcat [name]           add a category
//	  - renamecat <name>        rename a category
//	  - movecat <from> <to>     move a category to another position
//	  - delcat <name>           delete a category with its snips
//	  - snips <category>        list snips, newest first
//	  - addsnip <category>      add a snip
//	  - editsnip <category>     edit a snip
//	  - delsnip <category>      delete a snip
//	  - export <category>       download the category as JSON
//	  - whoami | logout | delaccount
//
// Errors returned by command handlers are not fatal; handlers print their
// own alerts and the loop keeps going.
func runREPL(ctx context.Context, a execIface, statusFn func() string, in *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}

		printlnFn(fmt.Sprintf("snip %s> ", statusFn()))
		line, err := in.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]
		arg := strings.Join(args, " ")

		if _, ok := needsCategory[cmd]; ok && arg == "" {
			printlnFn(fmt.Sprintf("Usage: %s <category>", cmd))
			continue
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}

		case "register":
			_ = a.Register(ctx)
		case "login":
			_ = a.Login(ctx)
		case "idlogin":
			_ = a.LoginWithToken(ctx)
		case "reset":
			_ = a.ResetPassword(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			if !a.isLoggedIn() {
				printlnFn("Please login first (type 'help' for commands)")
				continue
			}
			if !dispatch(ctx, a, cmd, args, arg) {
				printlnFn("Unknown command:", cmd)
			}
		}
	}
}

// dispatch runs the commands that require a signed-in user. It reports
// false for unknown commands.
func dispatch(ctx context.Context, a execIface, cmd string, args []string, arg string) bool {
	switch cmd {
	case "whoami":
		_ = a.WhoAmI(ctx)
	case "logout":
		_ = a.Logout(ctx)
	case "delaccount":
		_ = a.DeleteAccount(ctx)
	case "c", "cats":
		_ = a.ListCategories(ctx)
	case "addcat":
		_ = a.AddCategory(ctx, arg)
	case "renamecat":
		_ = a.RenameCategory(ctx, arg)
	case "movecat":
		_ = a.MoveCategory(ctx, args)
	case "delcat":
		_ = a.DeleteCategory(ctx, arg)
	case "s", "snips":
		_ = a.ListSnips(ctx, arg)
	case "addsnip":
		_ = a.AddSnip(ctx, arg)
	case "editsnip":
		_ = a.EditSnip(ctx, arg)
	case "delsnip":
		_ = a.DeleteSnip(ctx, arg)
	case "export":
		_ = a.Export(ctx, arg)
	default:
		return false
	}
	return true
}

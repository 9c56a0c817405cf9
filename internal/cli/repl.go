package cli

import (
	"bufio"
	"context"
	"fmt"
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
	Logout(ctx context.Context) error
	Dashboard(ctx context.Context) error
	Inventory(ctx context.Context) error
	AddProduct(ctx context.Context) error
	UpdateProduct(ctx context.Context) error
	DeleteProduct(ctx context.Context) error
	ImportProducts(ctx context.Context) error
	AddCategory(ctx context.Context) error
	ShowSettings(ctx context.Context) error
	UpdateSettings(ctx context.Context) error
	ExportInventory(ctx context.Context) error
	ExportSales(ctx context.Context) error
	Goto(ctx context.Context, name string) error
}

// runREPL starts a simple read–eval–print loop for the posterm CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help             — show available commands
//	  - register         — create an account
//	  - login            — authenticate
//	  - exit | quit      — leave the program
//
//	Logged in:
//	  - help             — show available commands
//	  - dashboard        — sales summary and daily revenue
//	  - inventory        — list products and categories
//	  - add              — add a product
//	  - update           — update a product
//	  - delete           — delete a product
//	  - import           — bulk import products
//	  - addcategory      — add a category
//	  - settings         — show store settings
//	  - setstore         — update store settings
//	  - export inv|sales — export a PDF report
//	  - goto <name>      — navigate to a named screen
//	  - logout           — log out
//	  - exit | quit      — leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("pos> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: dashboard, (i)nventory, add, update, delete, import, addcategory, settings, setstore, export inv|sales, goto, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "d", "dashboard":
			_ = a.Dashboard(ctx)

		case "i", "inventory":
			_ = a.Inventory(ctx)

		case "add":
			_ = a.AddProduct(ctx)

		case "update":
			_ = a.UpdateProduct(ctx)

		case "delete":
			_ = a.DeleteProduct(ctx)

		case "import":
			_ = a.ImportProducts(ctx)

		case "addcategory":
			_ = a.AddCategory(ctx)

		case "settings":
			_ = a.ShowSettings(ctx)

		case "setstore":
			_ = a.UpdateSettings(ctx)

		case "export":
			if len(args) == 0 {
				printlnFn("Usage: export inv|sales")
				continue
			}
			switch args[0] {
			case "inv", "inventory":
				_ = a.ExportInventory(ctx)
			case "sales":
				_ = a.ExportSales(ctx)
			default:
				printlnFn("Usage: export inv|sales")
			}

		case "goto":
			if len(args) == 0 {
				printlnFn("Usage: goto <screen>")
				continue
			}
			_ = a.Goto(ctx, args[0])

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

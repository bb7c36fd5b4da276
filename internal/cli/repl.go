package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"nutridiary/internal/common"
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

	Onboard(ctx context.Context) error
	ShowGoals(ctx context.Context) error
	SetTargets(ctx context.Context) error

	ShowDay(ctx context.Context, args []string) error
	AddItem(ctx context.Context) error
	EditItem(ctx context.Context) error
	RemoveItem(ctx context.Context) error
	DeleteMeal(ctx context.Context) error

	Scan(ctx context.Context, args []string) error
	Search(ctx context.Context, args []string) error
	AddCustom(ctx context.Context) error
	ListCustom(ctx context.Context) error
	RemoveCustom(ctx context.Context) error

	Favorite(ctx context.Context) error
	Unfavorite(ctx context.Context) error
	ListFavorites(ctx context.Context) error
	History(ctx context.Context) error
	ClearHistory(ctx context.Context) error

	LogWeight(ctx context.Context) error
	ListWeights(ctx context.Context) error
	DeleteWeight(ctx context.Context) error
	Trend(ctx context.Context) error

	Report(ctx context.Context, args []string) error
}

const helpLoggedOut = "Available commands: register, login, exit"

const helpLoggedIn = `Available commands:
  day [YYYY-MM-DD]     show the day's diary
  add | edit | del     log, change or remove a food
  delmeal              remove a whole meal
  scan <barcode>       look up a product by barcode
  search <text>        search products by name or brand
  custom | customs | delcustom   manage your own foods
  fav | unfav | favs   manage favorites
  history | clearhistory         recently seen products
  weight | weights | delweight | trend   body weight tracking
  report <from> <to>   totals over a date range
  profile | goals | targets      onboarding and daily goals
  logout, exit`

// runREPL reads lines from the scanner, dispatches the first token as a
// command and prints any handler error. The loop exits on EOF or on
// "exit"/"quit".
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("diary %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		var err error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}

		case "register":
			err = a.Register(ctx)
		case "login":
			err = a.Login(ctx)
		case "logout":
			err = a.Logout(ctx)

		case "profile", "onboard":
			err = a.Onboard(ctx)
		case "goals":
			err = a.ShowGoals(ctx)
		case "targets":
			err = a.SetTargets(ctx)

		case "day", "d":
			err = a.ShowDay(ctx, args)
		case "add":
			err = a.AddItem(ctx)
		case "edit":
			err = a.EditItem(ctx)
		case "del":
			err = a.RemoveItem(ctx)
		case "delmeal":
			err = a.DeleteMeal(ctx)

		case "scan":
			err = a.Scan(ctx, args)
		case "search", "s":
			err = a.Search(ctx, args)
		case "custom":
			err = a.AddCustom(ctx)
		case "customs":
			err = a.ListCustom(ctx)
		case "delcustom":
			err = a.RemoveCustom(ctx)

		case "fav":
			err = a.Favorite(ctx)
		case "unfav":
			err = a.Unfavorite(ctx)
		case "favs":
			err = a.ListFavorites(ctx)
		case "history":
			err = a.History(ctx)
		case "clearhistory":
			err = a.ClearHistory(ctx)

		case "weight", "w":
			err = a.LogWeight(ctx)
		case "weights":
			err = a.ListWeights(ctx)
		case "delweight":
			err = a.DeleteWeight(ctx)
		case "trend":
			err = a.Trend(ctx)

		case "report", "range":
			err = a.Report(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", friendlyError(err))
		}
	}
}

// friendlyError maps the sentinel errors to short user-facing messages.
func friendlyError(err error) string {
	switch {
	case errors.Is(err, common.ErrUnauthorized):
		return "please log in first"
	case errors.Is(err, common.ErrNotFound):
		return "not found"
	case errors.Is(err, common.ErrAlreadyExists):
		return "already exists"
	default:
		return err.Error()
	}
}

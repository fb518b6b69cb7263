// Package console is the interactive menu of the register. It only parses
// operator input and renders what the product service returns.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/wuasibox/box-register/internal/service"
	"github.com/wuasibox/box-register/pkg/zerror"
)

const (
	brand        = "BOXPRO SOLUTIONS"
	logTailLines = 20
)

var (
	// errQuit ends the session when the input is exhausted.
	errQuit = errors.New("console: input closed")
	errExit = errors.New("console: exit")
)

type Console struct {
	svc     service.ProductService
	scanner *bufio.Scanner
	out     io.Writer
	printer *message.Printer
	logger  *slog.Logger
}

func New(svc service.ProductService, in io.Reader, out io.Writer, logger *slog.Logger) *Console {
	return &Console{
		svc:     svc,
		scanner: bufio.NewScanner(in),
		out:     out,
		printer: message.NewPrinter(language.English),
		logger:  logger.With(slog.String("component", "console")),
	}
}

// Run shows the main menu until the operator exits or the input ends.
func (c *Console) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		c.header("MANAGEMENT SYSTEM")
		c.lowStockAlerts(ctx)
		c.mainMenu()

		option, err := c.readLine("\nSelect an option (1-8): ")
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			return err
		}

		err = c.safeDispatch(ctx, option)
		if errors.Is(err, errQuit) {
			return nil
		}
		if errors.Is(err, errExit) {
			c.println("\nThank you for using the " + brand + " register.")
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// safeDispatch runs one menu action, recovering from a panic so the session
// and the catalog in memory survive it.
func (c *Console) safeDispatch(ctx context.Context, option string) (err error) {
	defer func() {
		if rvr := recover(); rvr != nil {
			c.logger.ErrorContext(ctx, "panic", slog.Any("recover", rvr),
				slog.String("stack", string(debug.Stack())))
			c.println("Internal error. The action was not completed.")
			err = nil
		}
	}()

	return c.dispatch(ctx, option)
}

func (c *Console) dispatch(ctx context.Context, option string) error {
	switch option {
	case "1":
		return c.registerProduct(ctx)
	case "2":
		return c.modifyProduct(ctx)
	case "3":
		return c.inventoryReport(ctx)
	case "4":
		return c.searchProducts(ctx)
	case "5":
		c.statistics(ctx)
		return nil
	case "6":
		c.exportReport(ctx)
		return nil
	case "7":
		c.actionLog(ctx)
		return nil
	case "8":
		return errExit
	default:
		c.println("Invalid option. Try again.")
		return nil
	}
}

func (c *Console) mainMenu() {
	c.println("\nMAIN MENU:")
	c.println("   1. Register new packaging product")
	c.println("   2. Modify existing product")
	c.println("   3. Inventory report")
	c.println("   4. Search products")
	c.println("   5. Statistics")
	c.println("   6. Export report to CSV")
	c.println("   7. View action log")
	c.println("   8. Exit")
	c.println(strings.Repeat("-", 70))
}

func (c *Console) header(title string) {
	c.println("\n" + strings.Repeat("=", 70))
	c.printf("   %s - %s\n", brand, title)
	c.println(strings.Repeat("=", 70))
}

// readLine prints prompt and returns the next trimmed input line.
func (c *Console) readLine(prompt string) (string, error) {
	c.printf("%s", prompt)
	if !c.scanner.Scan() {
		if err := c.scanner.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", errQuit
	}
	return strings.TrimSpace(c.scanner.Text()), nil
}

// askInt re-asks until a non-negative whole number is entered.
func (c *Console) askInt(prompt string) (int, error) {
	for {
		line, err := c.readLine(prompt)
		if err != nil {
			return 0, err
		}
		if n, ok := parseCount(line); ok {
			return n, nil
		}
		c.println("Enter a valid whole number (0 or more).")
	}
}

// askAmount re-asks until a non-negative amount is entered.
func (c *Console) askAmount(prompt string) (decimal.Decimal, error) {
	for {
		line, err := c.readLine(prompt)
		if err != nil {
			return decimal.Zero, err
		}
		if d, ok := parseAmount(line); ok {
			return d, nil
		}
		c.println("Enter a valid amount (0 or more).")
	}
}

// askChoice re-asks until a number between 1 and n is entered and returns
// its zero-based index.
func (c *Console) askChoice(prompt string, n int) (int, error) {
	for {
		line, err := c.readLine(prompt)
		if err != nil {
			return 0, err
		}
		if i, err := strconv.Atoi(line); err == nil && i >= 1 && i <= n {
			return i - 1, nil
		}
		c.printf("Select a number between 1 and %d.\n", n)
	}
}

func (c *Console) confirm(prompt string) (bool, error) {
	line, err := c.readLine(prompt)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(line) {
	case "y", "yes", "s", "si", "sí":
		return true, nil
	default:
		return false, nil
	}
}

// failure prints the operator-facing message of err and logs unexpected
// ones.
func (c *Console) failure(ctx context.Context, action string, err error) {
	var zErr zerror.ZError
	if errors.As(err, &zErr) {
		c.printf("Error: %s\n", zErr.Msg())
		if zErr.Status().Recoverable() {
			return
		}
	} else {
		c.printf("Error: %s\n", err)
	}
	c.logger.ErrorContext(ctx, action+" failed", slog.Any("error", err))
}

func (c *Console) println(s string) {
	fmt.Fprintln(c.out, s)
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

func parseCount(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func parseAmount(s string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Zero, false
	}
	return d, true
}

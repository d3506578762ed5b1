// ABOUTME: Admin CLI for the hosted product-catalog API
// ABOUTME: Sign-in/session management plus catalog list, edit, and export

package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/joho/godotenv"

	"github.com/claudia1121/catalog-admin/internal/config"
	"github.com/claudia1121/catalog-admin/internal/console"
	"github.com/claudia1121/catalog-admin/internal/hexapi"
	"github.com/claudia1121/catalog-admin/internal/session"
)

const banner = `
           _        _                         _           _
  ___ __ _| |_ __ _| | ___   __ _        __ _| |_ __ ___ (_)_ __
 / __/ _' | __/ _' | |/ _ \ / _' |_____ / _' | | '_ ' _ \| | '_ \
| (_| (_| | || (_| | | (_) | (_| |_____| (_| | | | | | | | | | | |
 \___\__,_|\__\__,_|_|\___/ \__, |      \__,_|_|_| |_| |_|_|_| |_|
                            |___/
`

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	// Optional .env for CATALOG_API_BASE / CATALOG_API_PATH overrides
	_ = godotenv.Load()

	app, err := newApp()
	if err != nil {
		color.Red("Error: %v\n", err)
		os.Exit(1)
	}
	defer app.console.Close()

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "login":
		err = app.cmdLogin(args)
	case "logout":
		err = app.cmdLogout()
	case "status":
		err = app.cmdStatus()
	case "list", "ls":
		err = app.cmdList(args)
	case "create", "add":
		err = app.cmdCreate(args)
	case "edit", "update":
		err = app.cmdEdit(args)
	case "delete", "rm", "remove":
		err = app.cmdDelete(args)
	case "upload":
		err = app.cmdUpload(args)
	case "export":
		err = app.cmdExport(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		app.printNotices()
		color.Red("Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	cyan := color.New(color.FgCyan)
	yellow := color.New(color.FgYellow)

	cyan.Print(banner)
	fmt.Println()
	fmt.Println("Usage: catalog-admin <command> [args]")
	fmt.Println()
	yellow.Println("Commands:")
	fmt.Println("  login [--user <email>]      Sign in and store the session token")
	fmt.Println("  logout                      Drop the stored session")
	fmt.Println("  status                      Show session state and token expiry")
	fmt.Println("  list [--page <n>]           List one page of products")
	fmt.Println("  create --title <t> --category <c> --unit <u> [flags]")
	fmt.Println("                              Create a product")
	fmt.Println("  edit <id> [flags]           Update fields of a product")
	fmt.Println("  delete <id> [--yes]         Delete a product (asks first)")
	fmt.Println("  upload <file>               Upload an image, print its URL")
	fmt.Println("  export [--out <file>]       Export the whole catalog to xlsx")
	fmt.Println()
	yellow.Println("Product flags (create/edit):")
	fmt.Println("  --title, --category, --unit, --description, --content, --image")
	fmt.Println("  --price <n>, --origin-price <n>, --rating <0-5>, --enabled, --disabled")
	fmt.Println()
	yellow.Println("Environment:")
	fmt.Println("  CATALOG_CONFIG           Path to a YAML config file")
	fmt.Println("  CATALOG_API_BASE         API origin (default: " + config.DefaultBaseURL + ")")
	fmt.Println("  CATALOG_API_PATH         Account path segment in product routes")
	fmt.Println()
}

// app bundles the controller with everything a command needs.
type app struct {
	cfg     *config.Config
	console *console.Console
	tokens  *session.FileTokenStore
}

func newApp() (*app, error) {
	cfg, err := config.LoadOrDefault(os.Getenv("CATALOG_CONFIG"))
	if err != nil {
		return nil, err
	}

	logger := newLogger(cfg.Logging)
	client := hexapi.New(cfg.API.BaseURL, cfg.API.Path, logger)

	tokens := session.NewFileTokenStore(cfg.Session.TokenFile)
	flag := session.NewFileFlag(cfg.Session.FlagFile)

	c := console.New(client, tokens, flag, console.Options{
		PageNoticeTTL:  cfg.Timers.PageNotice,
		ModalNoticeTTL: cfg.Timers.ModalNotice,
		HighlightTTL:   cfg.Timers.Highlight,
		Logger:         logger,
	})

	return &app{cfg: cfg, console: c, tokens: tokens}, nil
}

func newLogger(cfg config.LoggingConfig) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// printNotices surfaces any pending controller notices before an error exit.
func (a *app) printNotices() {
	if msg := a.console.PageNotice(); msg != "" {
		color.Yellow("%s\n", msg)
	}
	if msg := a.console.ModalNotice(); msg != "" {
		color.Yellow("%s\n", msg)
	}
}

// restore brings a stored session back before an authenticated command.
func (a *app) restore(ctx context.Context) error {
	if err := a.console.RestoreSession(ctx); err != nil {
		return err
	}
	if a.console.State() != console.StateAuthenticated {
		return fmt.Errorf("not signed in (run: catalog-admin login)")
	}
	return nil
}

func (a *app) cmdLogin(args []string) error {
	var username, password string
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--user", "-u":
			if i+1 < len(args) {
				username = args[i+1]
				i++
			}
		case "--password", "-p":
			if i+1 < len(args) {
				password = args[i+1]
				i++
			}
		}
	}

	reader := bufio.NewReader(os.Stdin)
	if username == "" {
		fmt.Print("Email: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("reading email: %w", err)
		}
		username = strings.TrimSpace(line)
	}
	if password == "" {
		fmt.Print("Password: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("reading password: %w", err)
		}
		password = strings.TrimSpace(line)
	}

	ctx := context.Background()
	if err := a.console.SignIn(ctx, username, password); err != nil {
		return err
	}

	green := color.New(color.FgGreen)
	green.Printf("✓ Signed in as %s\n", a.console.Username())

	if tok, ok, _ := a.tokens.Load(); ok {
		fmt.Printf("  Token valid until %s\n", tok.ExpiresAt.Format(time.RFC3339))
	}
	return nil
}

func (a *app) cmdLogout() error {
	a.console.Logout()
	color.New(color.FgGreen).Println("✓ Signed out")
	return nil
}

func (a *app) cmdStatus() error {
	cyan := color.New(color.FgCyan)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)

	cyan.Print(banner)
	fmt.Println()
	fmt.Printf("  API:      %s (path %s)\n", a.cfg.API.BaseURL, a.cfg.API.Path)

	tok, ok, err := a.tokens.Load()
	if err != nil {
		return fmt.Errorf("reading stored token: %w", err)
	}
	if !ok {
		yellow.Printf("  Session:  ")
		fmt.Println("no stored token")
		fmt.Println()
		return nil
	}

	fmt.Printf("  Token:    expires %s\n", tok.ExpiresAt.Format(time.RFC3339))
	if exp, found := session.TokenExpiry(tok.Value); found {
		fmt.Printf("  Claims:   exp %s\n", exp.Format(time.RFC3339))
	}

	err = a.console.RestoreSession(context.Background())
	if a.console.State() == console.StateAuthenticated {
		green.Printf("  Session:  ")
		fmt.Println("valid")
	} else {
		yellow.Printf("  Session:  ")
		if err != nil {
			fmt.Printf("invalid (%v)\n", err)
		} else {
			fmt.Println("not signed in")
		}
	}
	fmt.Println()
	return nil
}

func (a *app) cmdList(args []string) error {
	page := 1
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--page", "-p":
			if i+1 < len(args) {
				n, err := strconv.Atoi(args[i+1])
				if err != nil {
					return fmt.Errorf("invalid page: %w", err)
				}
				page = n
				i++
			}
		}
	}

	ctx := context.Background()
	if err := a.restore(ctx); err != nil {
		return err
	}
	if err := a.console.ListPage(ctx, page); err != nil {
		return err
	}

	a.printProducts()
	return nil
}

func (a *app) printProducts() {
	products := a.console.Products()
	pg := a.console.Pagination()

	cyan := color.New(color.FgCyan)
	fmt.Println()
	cyan.Printf("  Products (page %d/%d)\n", pg.CurrentPage, pg.TotalPages)
	cyan.Println("  --------")

	if len(products) == 0 {
		fmt.Println("  (no products)")
		fmt.Println()
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  序號\tID\t標題\t分類\t單位\t原價\t售價\t評分\t啟用")
	for i, p := range products {
		enabled := ""
		if p.IsEnabled == 1 {
			enabled = "✓"
		}
		fmt.Fprintf(w, "  %d\t%s\t%s\t%s\t%s\t%g\t%g\t%d\t%s\n",
			a.console.DisplayNumber(i), truncate(p.ID, 16), truncate(p.Title, 24),
			p.Category, p.Unit, p.OriginPrice, p.Price, p.Rating, enabled)
	}
	w.Flush()
	fmt.Println()
}

// parseProductFlags fills a draft from command-line flags, starting from base.
func parseProductFlags(base hexapi.Product, args []string) (hexapi.Product, error) {
	p := base
	for i := 0; i < len(args); i++ {
		needsValue := func() (string, error) {
			if i+1 >= len(args) {
				return "", fmt.Errorf("%s requires a value", args[i])
			}
			v := args[i+1]
			i++
			return v, nil
		}

		switch args[i] {
		case "--title":
			v, err := needsValue()
			if err != nil {
				return p, err
			}
			p.Title = v
		case "--category":
			v, err := needsValue()
			if err != nil {
				return p, err
			}
			p.Category = v
		case "--unit":
			v, err := needsValue()
			if err != nil {
				return p, err
			}
			p.Unit = v
		case "--description":
			v, err := needsValue()
			if err != nil {
				return p, err
			}
			p.Description = v
		case "--content":
			v, err := needsValue()
			if err != nil {
				return p, err
			}
			p.Content = v
		case "--image":
			v, err := needsValue()
			if err != nil {
				return p, err
			}
			p.ImageURL = v
		case "--price":
			v, err := needsValue()
			if err != nil {
				return p, err
			}
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return p, fmt.Errorf("invalid price %q: %w", v, err)
			}
			p.Price = f
		case "--origin-price":
			v, err := needsValue()
			if err != nil {
				return p, err
			}
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return p, fmt.Errorf("invalid origin price %q: %w", v, err)
			}
			p.OriginPrice = f
		case "--rating":
			v, err := needsValue()
			if err != nil {
				return p, err
			}
			n, err := strconv.Atoi(v)
			if err != nil {
				return p, fmt.Errorf("invalid rating %q: %w", v, err)
			}
			p.Rating = n
		case "--enabled":
			p.IsEnabled = 1
		case "--disabled":
			p.IsEnabled = 0
		default:
			return p, fmt.Errorf("unknown flag: %s", args[i])
		}
	}
	return p, nil
}

func (a *app) cmdCreate(args []string) error {
	draft, err := parseProductFlags(hexapi.Product{}, args)
	if err != nil {
		return err
	}

	ctx := context.Background()
	if err := a.restore(ctx); err != nil {
		return err
	}
	if err := a.console.Create(ctx, draft); err != nil {
		return err
	}

	color.New(color.FgGreen).Printf("✓ Created: %s\n", draft.Title)
	a.printProducts()
	return nil
}

func (a *app) cmdEdit(args []string) error {
	if len(args) < 1 || strings.HasPrefix(args[0], "--") {
		return fmt.Errorf("usage: edit <id> [flags]")
	}
	id := args[0]

	ctx := context.Background()
	if err := a.restore(ctx); err != nil {
		return err
	}

	current, err := a.findProduct(ctx, id)
	if err != nil {
		return err
	}

	draft, err := parseProductFlags(current, args[1:])
	if err != nil {
		return err
	}
	if err := a.console.Update(ctx, id, draft); err != nil {
		return err
	}

	color.New(color.FgGreen).Printf("✓ Updated: %s\n", draft.Title)
	a.printProducts()
	return nil
}

// findProduct walks the catalog pages until it locates id.
func (a *app) findProduct(ctx context.Context, id string) (hexapi.Product, error) {
	for page := 1; ; page++ {
		if err := a.console.ListPage(ctx, page); err != nil {
			return hexapi.Product{}, err
		}
		for _, p := range a.console.Products() {
			if p.ID == id {
				return p, nil
			}
		}
		pg := a.console.Pagination()
		if !pg.HasNext || pg.CurrentPage >= pg.TotalPages {
			return hexapi.Product{}, fmt.Errorf("product %s not found", id)
		}
	}
}

func (a *app) cmdDelete(args []string) error {
	if len(args) < 1 || strings.HasPrefix(args[0], "--") {
		return fmt.Errorf("usage: delete <id> [--yes]")
	}
	id := args[0]

	skipConfirm := false
	for _, arg := range args[1:] {
		if arg == "--yes" || arg == "-y" {
			skipConfirm = true
		}
	}

	ctx := context.Background()
	if err := a.restore(ctx); err != nil {
		return err
	}
	if _, err := a.findProduct(ctx, id); err != nil {
		return err
	}

	declined := false
	err := a.console.Remove(ctx, id, func(prompt console.DeletePrompt) bool {
		if skipConfirm {
			return true
		}
		yellow := color.New(color.FgYellow)
		fmt.Println()
		yellow.Println("  Delete this product?")
		fmt.Printf("  序號:  %d\n", prompt.DisplayNo)
		fmt.Printf("  名稱:  %s\n", prompt.Title)
		fmt.Printf("  分類:  %s\n", prompt.Category)
		fmt.Printf("  售價:  %s\n", prompt.Price)
		fmt.Printf("  ID:    %s\n", prompt.ID)
		fmt.Print("\n  Confirm [y/N]: ")

		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			declined = true
			return false
		}
		answer := strings.ToLower(strings.TrimSpace(line))
		if answer != "y" && answer != "yes" {
			declined = true
			return false
		}
		return true
	})
	if err != nil {
		return err
	}
	if declined {
		fmt.Println("  Cancelled.")
		return nil
	}

	color.New(color.FgGreen).Printf("✓ Deleted: %s\n", id)
	a.printProducts()
	return nil
}

func (a *app) cmdUpload(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: upload <file>")
	}
	path := args[0]

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	ctx := context.Background()
	if err := a.restore(ctx); err != nil {
		return err
	}

	url, err := a.console.UploadImage(ctx, path, f)
	if err != nil {
		return err
	}

	color.New(color.FgGreen).Println("✓ Uploaded")
	fmt.Println("  " + url)
	return nil
}

func (a *app) cmdExport(args []string) error {
	out := "catalog.xlsx"
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--out", "-o":
			if i+1 < len(args) {
				out = args[i+1]
				i++
			}
		}
	}

	ctx := context.Background()
	if err := a.restore(ctx); err != nil {
		return err
	}

	count, err := a.console.ExportCatalog(ctx, out)
	if err != nil {
		return err
	}

	color.New(color.FgGreen).Printf("✓ Exported %d products to %s\n", count, out)
	return nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// Command admin is the operator console for restock requests.
//
//	admin [flags] list
//	admin [flags] show <id>
//	admin [flags] create --outlet <id> --item <detail>:<qty>[:<unit>[:<reason>]] ...
//	admin [flags] approve <id>
//	admin [flags] reject <id> [--reason text]
//	admin [flags] export [--out file.xlsx]
//	admin [flags] products [--page n]
//	admin [flags] outlets
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"tokoadmin/internal/apiclient"
	"tokoadmin/internal/config"
	"tokoadmin/internal/pagination"
	"tokoadmin/internal/presenter"
	"tokoadmin/internal/store"
	"tokoadmin/internal/validation"

	"github.com/spf13/pflag"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	configDir string
	baseURL   string
	username  string
	password  string
	page      int
	outlet    string
	items     []string
	reason    string
	out       string
}

func parseFlags(args []string, stderr io.Writer) (*options, []string, error) {
	var o options
	fs := pflag.NewFlagSet("admin", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.configDir, "config", ".", "directory holding config.yaml")
	fs.StringVar(&o.baseURL, "api", "", "API base URL (overrides API_BASE_URL)")
	fs.StringVarP(&o.username, "username", "u", "", "login username (overrides ADMIN_USERNAME)")
	fs.StringVarP(&o.password, "password", "p", "", "login password (overrides ADMIN_PASSWORD)")
	fs.IntVar(&o.page, "page", 1, "page to list or export")
	fs.StringVar(&o.outlet, "outlet", "", "outlet id for create")
	fs.StringArrayVar(&o.items, "item", nil, "item for create as detail:qty[:unit[:reason]], repeatable")
	fs.StringVar(&o.reason, "reason", "", "rejection reason")
	fs.StringVarP(&o.out, "out", "o", "", "output file for export")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: admin [flags] <list|show|create|approve|reject|export|products|outlets> [id]")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return &o, fs.Args(), nil
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, rest, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}
	if len(rest) == 0 {
		fmt.Fprintln(stderr, "usage: admin [flags] <list|show|create|approve|reject|export|products|outlets> [id]")
		return 2
	}

	cfg, err := config.Load(opts.configDir)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	if opts.baseURL != "" {
		cfg.APIBaseURL = opts.baseURL
	}
	if opts.username != "" {
		cfg.AdminUsername = opts.username
	}
	if opts.password != "" {
		cfg.AdminPassword = opts.password
	}

	client := apiclient.New(apiclient.Config{BaseURL: cfg.APIBaseURL, AssetURL: cfg.AssetURL, Timeout: cfg.APITimeout})
	if err := client.Login(cfg.AdminUsername, cfg.AdminPassword); err != nil {
		fmt.Fprintf(stderr, "error: login failed: %v\n", err)
		return 1
	}

	c := &console{store: store.New(client), catalog: store.NewCatalog(client), out: stdout, opts: opts}
	defer c.store.Close()

	cmd, cmdArgs := rest[0], rest[1:]
	switch cmd {
	case "list":
		err = c.list()
	case "show":
		err = c.withID(cmdArgs, c.show)
	case "create":
		err = c.create()
	case "approve":
		err = c.withID(cmdArgs, c.approve)
	case "reject":
		err = c.withID(cmdArgs, c.reject)
	case "export":
		err = c.export()
	case "products":
		err = c.products()
	case "outlets":
		err = c.outlets()
	default:
		fmt.Fprintf(stderr, "unknown command %q\n", cmd)
		return 2
	}
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

type console struct {
	store   *store.Store
	catalog *store.Catalog
	out     io.Writer
	opts    *options
}

func (c *console) withID(args []string, fn func(id string) error) error {
	if len(args) != 1 {
		return errors.New("expected exactly one request id")
	}
	return fn(args[0])
}

func (c *console) list() error {
	fetchErr := c.store.FetchPage(c.opts.page)
	st := c.store.Snapshot()
	if err := presenter.RequestsTable(c.out, st); err != nil {
		return err
	}
	if err := presenter.Pager(c.out, pagination.Window(st.Meta)); err != nil {
		return err
	}
	return fetchErr
}

// load selects id so transitions are pre-checked against the server's copy.
func (c *console) load(id string) error {
	if _, err := c.store.Load(id); err != nil {
		if perr := presenter.Notice(c.out, c.store.Snapshot()); perr != nil {
			return perr
		}
		return err
	}
	return nil
}

func (c *console) show(id string) error {
	if err := c.load(id); err != nil {
		return err
	}
	return presenter.RequestDetail(c.out, *c.store.Snapshot().Selected)
}

func (c *console) create() error {
	draft := validation.RestockDraft{OutletID: c.opts.outlet, Items: make([]validation.RestockItemDraft, 0, len(c.opts.items))}
	for _, raw := range c.opts.items {
		draft.Items = append(draft.Items, parseItem(raw))
	}

	created, err := c.store.CreateRequest(draft)
	if perr := presenter.Notice(c.out, c.store.Snapshot()); perr != nil {
		return perr
	}
	if err != nil {
		return err
	}
	return presenter.RequestDetail(c.out, *created)
}

func (c *console) approve(id string) error {
	if err := c.load(id); err != nil {
		return err
	}
	_, err := c.store.Approve(id)
	return c.afterTransition(err)
}

func (c *console) reject(id string) error {
	if err := c.load(id); err != nil {
		return err
	}
	var reason *string
	if strings.TrimSpace(c.opts.reason) != "" {
		reason = &c.opts.reason
	}
	_, err := c.store.Reject(id, reason)
	return c.afterTransition(err)
}

func (c *console) afterTransition(err error) error {
	st := c.store.Snapshot()
	if perr := presenter.Notice(c.out, st); perr != nil {
		return perr
	}
	if st.Selected != nil {
		if perr := presenter.RequestDetail(c.out, *st.Selected); perr != nil {
			return perr
		}
	}
	return err
}

func (c *console) export() error {
	if err := c.store.FetchPage(c.opts.page); err != nil {
		return err
	}
	path := c.opts.out
	if path == "" {
		path = fmt.Sprintf("restock-page-%d.xlsx", c.opts.page)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := presenter.ExportXLSX(f, c.store.Snapshot().Requests); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "exported %d requests to %s\n", len(c.store.Snapshot().Requests), path)
	return nil
}

func (c *console) products() error {
	page, err := c.catalog.Products(c.opts.page)
	if err != nil {
		return err
	}
	if err := presenter.ProductsTable(c.out, *page); err != nil {
		return err
	}
	return presenter.Pager(c.out, pagination.Window(page.PageMeta))
}

func (c *console) outlets() error {
	outlets, err := c.catalog.Outlets()
	if err != nil {
		return err
	}
	return presenter.OutletsTable(c.out, outlets)
}

// parseItem reads detail:qty[:unit[:reason]]. Missing parts stay empty and
// are reported by validation.
func parseItem(raw string) validation.RestockItemDraft {
	parts := strings.SplitN(raw, ":", 4)
	for len(parts) < 4 {
		parts = append(parts, "")
	}
	return validation.RestockItemDraft{
		ProductDetailID: parts[0],
		RequestedStock:  parts[1],
		Unit:            parts[2],
		Reason:          parts[3],
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"nightshift/cache"
	"nightshift/config"
	"nightshift/filter"
	"nightshift/handlers"
	"nightshift/invoice"
	"nightshift/model"
	"nightshift/render"
	"nightshift/session"
)

var configPath string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "nightshift",
		Short: "Nightshift inventory back office",
		Long: `Nightshift keeps employees, inventory, orders, customers and vendors of
one organization in sync with the Nightshift API and serves filtered views,
stats, spreadsheet exports and PDF invoices to the browser UI.

Running without a subcommand starts the server.`,
		SilenceUsage: true,
		RunE:         runServe,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ./nightshift.yaml)")
	root.PersistentFlags().Bool("offline", false, "use the built-in sample data instead of the API")

	root.AddCommand(
		&cobra.Command{Use: "serve", Short: "Start the HTTP server", Args: cobra.NoArgs, RunE: runServe},
		newReportCmd(),
		newExportCmd(),
		newInvoiceCmd(),
	)
	return root
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	return config.LoadConfig(configPath, cmd.Flags())
}

func entityNames() []string {
	names := make([]string, 0, len(handlers.Exporters))
	for name := range handlers.Exporters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func lookupExporter(name string) (handlers.Exporter, error) {
	e, ok := handlers.Exporters[name]
	if !ok {
		return nil, fmt.Errorf("unknown entity %q (want one of %s)", name, strings.Join(entityNames(), ", "))
	}
	return e, nil
}

// addCriteriaFlags registers --status, --category and --search.
func addCriteriaFlags(cmd *cobra.Command, c *model.Criteria) {
	cmd.Flags().StringVar(&c.Status, "status", filter.All, "status filter")
	cmd.Flags().StringVar(&c.Category, "category", filter.All, "category filter")
	cmd.Flags().StringVar(&c.Search, "search", "", "case-insensitive search term")
}

// withSession connects once for a CLI command and logs out afterwards.
func withSession(cmd *cobra.Command, fn func(ctx context.Context, cfg config.Config, s *session.Session) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	s, err := connector(cfg, nil)(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := s.Close(context.WithoutCancel(ctx)); err != nil {
			log.Printf("WARN: %v", err)
		}
	}()
	return fn(ctx, cfg, s)
}

func newReportCmd() *cobra.Command {
	var c model.Criteria
	cmd := &cobra.Command{
		Use:       "report <entity>",
		Short:     "Print the stats of a filtered collection",
		Args:      cobra.ExactArgs(1),
		ValidArgs: entityNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := lookupExporter(args[0])
			if err != nil {
				return err
			}
			return withSession(cmd, func(ctx context.Context, cfg config.Config, s *session.Session) error {
				n, rep := e.Build(s, c)
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%s: %d records (status=%s category=%s search=%q)\n", args[0], n, c.Status, c.Category, c.Search)
				tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				for _, row := range rep.Stats {
					fmt.Fprintf(tw, "%s\t%v\n", row.Label, row.Value)
				}
				return tw.Flush()
			})
		},
	}
	addCriteriaFlags(cmd, &c)
	return cmd
}

func newExportCmd() *cobra.Command {
	var (
		c      model.Criteria
		output string
	)
	cmd := &cobra.Command{
		Use:   "export <entity>",
		Short: "Write a filtered collection to xlsx or csv",
		Long:  "Writes the records and their stats. A .csv output path writes CSV, anything else xlsx.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := lookupExporter(args[0])
			if err != nil {
				return err
			}
			if output == "" {
				output = fmt.Sprintf("%s_%s.xlsx", args[0], time.Now().Format("20060102"))
			}
			return withSession(cmd, func(ctx context.Context, cfg config.Config, s *session.Session) error {
				n, rep := e.Build(s, c)
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", output, err)
				}
				write := rep.WriteXLSX
				if strings.EqualFold(filepath.Ext(output), ".csv") {
					write = rep.WriteCSV
				}
				if err := write(f); err != nil {
					f.Close()
					return fmt.Errorf("failed to export %s: %w", args[0], err)
				}
				if err := f.Close(); err != nil {
					return err
				}
				log.Printf("INFO: wrote %d %s to %s", n, args[0], output)
				return nil
			})
		},
	}
	addCriteriaFlags(cmd, &c)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default {entity}_{date}.xlsx)")
	return cmd
}

func newInvoiceCmd() *cobra.Command {
	var (
		output string
		html   bool
	)
	cmd := &cobra.Command{
		Use:   "invoice <orderId>",
		Short: "Render the invoice of an order to PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, cfg config.Config, s *session.Session) error {
				order, err := s.FindOrder(args[0])
				if err != nil {
					return err
				}
				orgName := cfg.Invoice.OrganizationName
				if orgName == "" {
					org, err := s.Organization(ctx)
					if err != nil {
						return err
					}
					orgName = org.Name
				}
				page, err := render.OrderInvoiceHTML(orgName, order)
				if err != nil {
					return err
				}

				data, ext := []byte(page), "html"
				if !html {
					if data, err = invoice.NewRenderer(cfg.Invoice.BrowserBin).PDF(ctx, page); err != nil {
						return err
					}
					ext = "pdf"
				}
				if output == "" {
					output = fmt.Sprintf("invoice-%s.%s", order.OrderID, ext)
				}
				if err := os.WriteFile(output, data, 0o644); err != nil {
					return fmt.Errorf("failed to write %s: %w", output, err)
				}
				log.Printf("INFO: wrote invoice %s to %s", order.OrderID, output)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default invoice-{orderId}.pdf)")
	cmd.Flags().BoolVar(&html, "html", false, "write the HTML page instead of a PDF")
	return cmd
}

// runServe は設定を読み込み、ログインしてHTTPサーバーを起動します。
func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	lock := flock.New(cfg.Cache.Path + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("failed to lock %s: %w", lock.Path(), err)
	}
	if !locked {
		return fmt.Errorf("another nightshift server is using %s", cfg.Cache.Path)
	}
	defer lock.Unlock()

	log.Println("Opening snapshot cache...")
	db, err := cache.Open(cfg.Cache.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := handlers.NewApp(connector(cfg, db), invoice.NewRenderer(cfg.Invoice.BrowserBin), cfg.Invoice.OrganizationName)
	if _, err := app.Session(ctx); err != nil {
		log.Printf("WARN: %v. Will retry on the first request.", err)
	}

	mux := http.NewServeMux()
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      SetupRoutes(mux, app, cfg, configPath),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting server on http://%s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	if cfg.Server.OpenBrowser {
		openBrowser("http://" + cfg.Server.Addr)
	}

	select {
	case err := <-errCh:
		return fmt.Errorf("server start error: %w", err)
	case <-ctx.Done():
	}
	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	log.Println("Server exited")
	return nil
}

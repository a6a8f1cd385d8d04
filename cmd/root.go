package cmd

import (
	"log/slog"
	"os"
	"time"

	"github.com/inovacc/shelfr/internal/application"
	"github.com/inovacc/shelfr/internal/model"
	"github.com/inovacc/shelfr/internal/notify"
	"github.com/inovacc/shelfr/internal/store"
	"github.com/lmittmann/tint"
	colorable "github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var (
	cfgFile      string
	flagServer   string
	flagPageSize int
	flagTimeout  int
	verbose      bool

	cfg      model.Config
	notifier *notify.Dispatcher

	authors *store.Resource[model.Author]
	books   *store.Resource[model.Book]
	members *store.Resource[model.Member]
	borrows *store.Resource[model.BorrowRecord]
)

var rootCmd = &cobra.Command{
	Use:   application.AppName,
	Short: "A lending-library admin console",
	Long: `Shelfr is a terminal console for a library record store. It manages
authors, books, members, and borrow records over the store's HTTP API,
either interactively (shelfr browse) or through scripting subcommands.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogging()

		path := cfgFile
		if path == "" {
			var err error
			if path, err = model.ConfigPath(); err != nil {
				return err
			}
		}

		var err error
		if cfg, err = model.LoadConfig(path); err != nil {
			return err
		}

		// Flags win over the config file.
		if flagServer != "" {
			cfg.ServerURL = flagServer
		}

		if flagPageSize > 0 {
			cfg.PageSize = flagPageSize
		}

		if flagTimeout > 0 {
			cfg.Timeout = time.Duration(flagTimeout) * time.Second
		}

		client, err := store.NewClient(cfg.ServerURL, store.Options{Timeout: cfg.Timeout})
		if err != nil {
			return err
		}

		authors = store.NewResource[model.Author](client, "/authors")
		books = store.NewResource[model.Book](client, "/books")
		members = store.NewResource[model.Member](client, "/members")
		borrows = store.NewResource[model.BorrowRecord](client, "/borrowed-books")

		notifier = notify.NewDispatcher(false)
		notifier.Register(notify.NewLogSender(slog.Default()))

		return nil
	},
}

func setupLogging() {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	w := colorable.NewColorableStderr()

	slog.SetDefault(slog.New(tint.NewHandler(w, &tint.Options{
		Level:   level,
		NoColor: !isatty.IsTerminal(os.Stderr.Fd()),
	})))
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// GetRootCmd returns the root command for introspection purposes.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to the config file")
	rootCmd.PersistentFlags().StringVar(&flagServer, "server", "", "Record store base URL (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagPageSize, "page-size", 0, "Rows per list page (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagTimeout, "timeout", 0, "Request timeout in seconds (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

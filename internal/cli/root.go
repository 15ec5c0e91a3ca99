// Package cli is the presentation layer: a cobra command per user intent.
// It only translates flags to core calls and core results to stdout; all
// inventory semantics live under internal/.
package cli

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mkawano/eyewear-stock/config"
	"github.com/mkawano/eyewear-stock/internal/logger"
	"github.com/mkawano/eyewear-stock/internal/session"
	"github.com/mkawano/eyewear-stock/internal/store"
	"github.com/mkawano/eyewear-stock/internal/store/csvfile"
	"github.com/mkawano/eyewear-stock/internal/store/sheets"
	"github.com/mkawano/eyewear-stock/internal/store/sqlite"
)

// app carries what every subcommand needs. One CLI invocation is one
// session: caches and preferences do not outlive the process.
type app struct {
	cfg     *config.Config
	log     *zap.Logger
	backend store.Backend
	sess    *session.Session
	closers []func() error
}

var rootApp = &app{}

var rootCmd = &cobra.Command{
	Use:   "eyewear-stock",
	Short: "ニコメ・マトイ eyewear inventory tool",
	Long: `eyewear-stock searches the two-store eyewear inventory, updates an
item's status flag, transfers items between the stores and shows aggregate
dashboards. The spreadsheet remains the system of record.`,
	SilenceUsage:      true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return rootApp.init(cmd.Context()) },
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return rootApp.close()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(flagCmd)
	rootCmd.AddCommand(transferCmd)
	rootCmd.AddCommand(noteCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(reloadCmd)
	rootCmd.AddCommand(exportCmd)
}

func (a *app) init(ctx context.Context) error {
	_ = godotenv.Load()
	a.cfg = config.LoadEnv()

	log, err := logger.New(a.cfg.Logger, a.cfg.App.Env)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	a.log = log

	switch a.cfg.Backend.Kind {
	case "sheets":
		a.backend, err = sheets.New(ctx, &sheets.Config{
			CredentialsFile: a.cfg.Sheets.CredentialsFile,
			SpreadsheetID:   a.cfg.Sheets.SpreadsheetID,
			SheetName:       a.cfg.Sheets.SheetName,
		}, log)
		if err != nil {
			return err
		}
	case "sqlite":
		db, err := sqlite.New(a.cfg.SQLite.Path)
		if err != nil {
			return err
		}
		a.backend = db
		a.closers = append(a.closers, db.Close)
	case "csv":
		a.backend = csvfile.New(a.cfg.CSV.Path)
	default:
		return fmt.Errorf("unknown backend %q", a.cfg.Backend.Kind)
	}

	a.sess = session.New(a.backend, log, a.cfg.Cache.TTL)
	return nil
}

func (a *app) close() error {
	for _, c := range a.closers {
		if err := c(); err != nil {
			return err
		}
	}
	if a.log != nil {
		_ = a.log.Sync()
	}
	return nil
}

// opCtx bounds one backend-touching operation with the configured timeout.
func (a *app) opCtx(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, a.cfg.App.RequestTimeout)
}

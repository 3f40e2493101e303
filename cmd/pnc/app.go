package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/macormexico/sistema-pnc/internal/client"
	"github.com/macormexico/sistema-pnc/internal/config"
	"github.com/macormexico/sistema-pnc/internal/logging"
	"github.com/macormexico/sistema-pnc/internal/session"
)

// app is the state shared by every command of one invocation.
type app struct {
	configPath string
	apiURL     string
	storePath  string
	verbose    bool

	cfg   *config.CLIConfig
	store *session.Store
	guard *session.Guard
	in    *bufio.Reader
}

// newRootCommand builds the command tree. The returned func releases the
// local store and must run after Execute, whatever its outcome.
func newRootCommand() (*cobra.Command, func() error) {
	a := &app{}
	cmd := &cobra.Command{
		Use:   "pnc",
		Short: "Sistema PNC command-line dashboard",
		Long: `pnc signs in to the DAE API and manages Non-Conforming Product reports,
catalogs and users, prints the quality metrics and downloads the printable form.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.open,
	}
	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Config file (default ~/.pnc/config.toml)")
	cmd.PersistentFlags().StringVar(&a.apiURL, "api-url", "", "API base URL (overrides config and PNC_API_URL)")
	cmd.PersistentFlags().StringVar(&a.storePath, "store", "", "Local session store directory")
	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Log requests to stderr")

	cmd.AddCommand(
		a.newLoginCmd(),
		a.newLogoutCmd(),
		a.newWhoamiCmd(),
		a.newReportsCmd(),
		a.newCatalogsCmd(),
		a.newUsersCmd(),
		a.newMetricsCmd(),
		a.newSummaryCmd(),
		a.newMigrateCmd(),
		a.newPDFCmd(),
	)
	return cmd, a.close
}

func (a *app) open(cmd *cobra.Command, _ []string) error {
	logging.SetupCLI(cmd.ErrOrStderr(), a.verbose)

	cfg, err := config.LoadCLI(a.configPath)
	if err != nil {
		return err
	}
	if a.apiURL != "" {
		cfg.APIURL = a.apiURL
	}
	if a.storePath != "" {
		cfg.StorePath = a.storePath
	}
	a.cfg = cfg

	store, err := session.Open(cfg.StorePath)
	if err != nil {
		return err
	}
	a.store = store
	a.guard = session.NewGuard(store)
	slog.Debug("cli ready", "api", cfg.APIURL, "store", cfg.StorePath)
	return nil
}

func (a *app) close() error {
	if a.store == nil {
		return nil
	}
	err := a.store.Close()
	a.store = nil
	return err
}

func (a *app) client(token string) *client.Client {
	return client.New(a.cfg.APIURL, client.WithTimeout(a.cfg.Timeout), client.WithToken(token))
}

// protected wraps a command body so it only runs with a stored session.
func (a *app) protected(run func(cmd *cobra.Command, args []string, s *session.Session, api *client.Client) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		s, err := a.guard.Require()
		if err != nil {
			return err
		}
		return run(cmd, args, s, a.client(s.Token))
	}
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func (a *app) readLine(cmd *cobra.Command, prompt string) string {
	if a.in == nil {
		a.in = bufio.NewReader(cmd.InOrStdin())
	}
	fmt.Fprint(cmd.OutOrStdout(), prompt)
	line, _ := a.in.ReadString('\n')
	return strings.TrimSpace(line)
}

// confirm asks a yes/no question. Anything but y/yes/si is a no.
func (a *app) confirm(cmd *cobra.Command, prompt string) bool {
	switch strings.ToLower(a.readLine(cmd, prompt+" [y/N]: ")) {
	case "y", "yes", "s", "si", "sí":
		return true
	}
	return false
}

// writeDownload saves data under dir (or to path when it names a file).
func writeDownload(cmd *cobra.Command, out string, d *client.Download) error {
	target := d.Name
	if out != "" {
		if info, err := os.Stat(out); err == nil && info.IsDir() {
			target = filepath.Join(out, d.Name)
		} else {
			target = out
		}
	}
	if err := os.WriteFile(target, d.Data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", target, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "saved %s (%d bytes)\n", target, len(d.Data))
	return nil
}

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/macormexico/sistema-pnc/internal/client"
	"github.com/macormexico/sistema-pnc/internal/legacy"
	"github.com/macormexico/sistema-pnc/internal/session"
)

func (a *app) newMigrateCmd() *cobra.Command {
	var file, password string
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Move the legacy local users and documents into the API",
		Long: `migrate reads the legacy "users" and "documents" snapshots, from the local
store or from a browser storage export (--file), and creates every record
through the API. Migrated records are dropped from the local snapshots (or,
for an export file, remembered) so a second run never creates them twice.`,
		RunE: a.protected(func(cmd *cobra.Command, _ []string, _ *session.Session, api *client.Client) error {
			var (
				snap legacy.Snapshot
				err  error
			)
			if file != "" {
				snap, err = a.loadExport(file)
			} else {
				snap, err = legacy.LoadStore(a.store)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if snap.Empty() {
				fmt.Fprintln(out, "nothing to migrate")
				return nil
			}

			res, err := legacy.Migrate(cmd.Context(), api, snap, password)
			if saveErr := a.saveProgress(file, res); saveErr != nil {
				return errors.Join(err, saveErr)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "users created: %d, skipped: %d, reports created: %d\n",
				res.UsersCreated, res.UsersSkipped, res.ReportsCreated)
			for _, f := range res.Failures {
				fmt.Fprintf(out, "  failed %s %s: %v\n", f.Kind, f.ID, f.Err)
			}
			if !res.Complete() {
				return fmt.Errorf("%d records were not migrated", len(res.Failures))
			}
			return nil
		}),
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Browser storage export (JSON)")
	cmd.Flags().StringVar(&password, "password", "", "Initial password for migrated users")
	return cmd
}

// loadExport reads an export file minus the documents a previous run
// already created.
func (a *app) loadExport(file string) (legacy.Snapshot, error) {
	snap, err := legacy.LoadFile(file)
	if err != nil {
		return legacy.Snapshot{}, err
	}
	done, err := legacy.MigratedIDs(a.store)
	if err != nil {
		return legacy.Snapshot{}, err
	}
	return snap.Without(done), nil
}

func (a *app) saveProgress(file string, res legacy.Result) error {
	if file != "" {
		return legacy.MarkMigrated(a.store, res.Migrated)
	}
	return legacy.SaveStore(a.store, res.Remaining)
}

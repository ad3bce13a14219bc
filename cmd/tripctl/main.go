// Command tripctl works on the saved trip from the command line: print or
// restore a backup code, show a summary, or reset to the first-run trip.
// It reads the same environment (and .env) as the API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/pkordes/trip-planner/backend/internal/app"
	"github.com/pkordes/trip-planner/backend/internal/config"
	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/service"
	"github.com/pkordes/trip-planner/backend/internal/tripstore"
)

func main() {
	if err := newCommand(os.Stdin, os.Stdout, os.Stderr).Run(context.Background(), os.Args); err != nil {
		slog.Error("tripctl error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// newCommand builds the command tree reading from in and writing results to
// out and logs to errOut.
func newCommand(in io.Reader, out, errOut io.Writer) *cli.Command {
	storeFlags := func() []cli.Flag {
		return []cli.Flag{
			&cli.StringFlag{
				Name:  "driver",
				Usage: "storage backend: file, sqlite or memory (overrides STORAGE_DRIVER)",
			},
			&cli.StringFlag{
				Name:  "path",
				Usage: "storage location (overrides STORAGE_PATH)",
			},
		}
	}

	withStore := func(action func(ctx context.Context, cmd *cli.Command, store *tripstore.Store) error) cli.ActionFunc {
		return func(ctx context.Context, cmd *cli.Command) error {
			store, closeFn, err := openStore(ctx, cmd, errOut)
			if err != nil {
				return err
			}
			defer closeFn() //nolint:errcheck
			return action(ctx, cmd, store)
		}
	}

	return &cli.Command{
		Name:  "tripctl",
		Usage: "Inspect, back up and restore the saved trip",
		Commands: []*cli.Command{
			{
				Name:  "export",
				Usage: "Print the backup code of the saved trip",
				Flags: storeFlags(),
				Action: withStore(func(ctx context.Context, _ *cli.Command, store *tripstore.Store) error {
					code, err := service.NewBackupService(store).Export(ctx)
					if err != nil {
						return err
					}
					_, err = fmt.Fprintln(out, code)
					return err
				}),
			},
			{
				Name:      "import",
				Usage:     "Restore a backup code from a file, or from stdin with - or no argument",
				ArgsUsage: "[file|-]",
				Flags:     storeFlags(),
				Action: withStore(func(ctx context.Context, cmd *cli.Command, store *tripstore.Store) error {
					code, err := readCode(cmd.Args().First(), in)
					if err != nil {
						return err
					}
					info, err := service.NewBackupService(store).Import(ctx, code)
					if errors.Is(err, domain.ErrDecode) {
						return fmt.Errorf("backup code format incorrect: %w", err)
					}
					if err != nil {
						return err
					}
					_, err = fmt.Fprintf(out, "imported backup %s (version %d)\n", info.ID, info.Version)
					return err
				}),
			},
			{
				Name:  "show",
				Usage: "Print the trip overview and per-day expense totals",
				Flags: storeFlags(),
				Action: withStore(func(ctx context.Context, _ *cli.Command, store *tripstore.Store) error {
					return show(ctx, out, store)
				}),
			},
			{
				Name:  "reset",
				Usage: "Erase the saved trip and return to the first-run trip",
				Flags: append(storeFlags(), &cli.BoolFlag{
					Name:  "force",
					Usage: "required; resetting cannot be undone",
				}),
				Action: withStore(func(ctx context.Context, cmd *cli.Command, store *tripstore.Store) error {
					if !cmd.Bool("force") {
						return errors.New("reset erases the saved trip; pass --force to confirm")
					}
					if err := service.NewBackupService(store).Reset(ctx); err != nil {
						return err
					}
					_, err := fmt.Fprintln(out, "trip reset to defaults")
					return err
				}),
			},
		},
	}
}

// openStore loads config from the environment, applies the storage flags and
// opens the Trip Store. Logs go to errOut so stdout stays clean for codes.
func openStore(ctx context.Context, cmd *cli.Command, errOut io.Writer) (*tripstore.Store, func() error, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("configuration error: %w", err)
	}
	if v := cmd.String("driver"); v != "" {
		cfg.StorageDriver = v
	}
	if v := cmd.String("path"); v != "" {
		cfg.StoragePath = v
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("configuration error: %w", err)
	}
	log := app.NewLogger(errOut, cfg.LogLevel)
	return app.OpenStore(ctx, cfg, log)
}

// readCode reads a backup code from the named file, or from in for "-" or "".
func readCode(name string, in io.Reader) (string, error) {
	var (
		raw []byte
		err error
	)
	if name == "" || name == "-" {
		raw, err = io.ReadAll(in)
	} else {
		raw, err = os.ReadFile(name)
	}
	if err != nil {
		return "", fmt.Errorf("read backup code: %w", err)
	}
	code := strings.TrimSpace(string(raw))
	if code == "" {
		return "", errors.New("backup code is empty")
	}
	return code, nil
}

func show(ctx context.Context, out io.Writer, store *tripstore.Store) error {
	ov := service.NewTripService(store).Overview(ctx)
	trip := ov.Trip

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Trip\t%s\n", trip.Title)
	if ov.DayCount != nil {
		fmt.Fprintf(tw, "Dates\t%s → %s (%d days)\n", trip.StartDate, trip.EndDate, *ov.DayCount)
	} else {
		fmt.Fprintf(tw, "Dates\t%s → %s (%s)\n", trip.StartDate, trip.EndDate, ov.DayCountError)
	}
	fmt.Fprintf(tw, "Flights\t%d\n", len(trip.Flights))

	done := 0
	for _, it := range trip.Shopping {
		if it.Done {
			done++
		}
	}
	fmt.Fprintf(tw, "Shopping\t%d/%d done\n", done, len(trip.Shopping))
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "Day\tStops\tExpenses\tTotal")
	expenses := service.NewExpenseService(store, nil)
	for i, day := range expenses.Summary(ctx) {
		totals := make([]string, len(day.Totals))
		for j, t := range day.Totals {
			totals[j] = t.String()
		}
		total := strings.Join(totals, ", ")
		if total == "" {
			total = "-"
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\n", day.Day, len(trip.Schedule[i].Items), len(day.Entries), total)
	}
	return tw.Flush()
}

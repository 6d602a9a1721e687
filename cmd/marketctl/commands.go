package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/aristath/marketgate/internal/modules/market_hours"
	"github.com/aristath/marketgate/internal/modules/transfer"
	"github.com/aristath/marketgate/pkg/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// errDenied makes the process exit non-zero when a transfer is rejected
var errDenied = errors.New("transfer denied")

type clockFunc func() time.Time

func (f clockFunc) Now() time.Time { return f() }

func newRootCmd(out io.Writer, now func() time.Time) *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:           "marketctl",
		Short:         "Query the US equities market calendar and authorize transfers",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "error", "Log level written to stderr.")

	newService := func(cmd *cobra.Command) *market_hours.MarketHoursService {
		return market_hours.NewMarketHoursService(newLogger(cmd, logLevel))
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "open [ts]",
			Short: "Print whether the market is open at ts (default now)",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ts, err := timestampArg(args, now)
				if err != nil {
					return err
				}
				open, err := newService(cmd).IsMarketOpen(ts)
				if err != nil {
					return err
				}
				return writeJSON(out, map[string]interface{}{"timestamp": ts, "open": open})
			},
		},
		&cobra.Command{
			Use:   "status [ts]",
			Short: "Print the detailed market status at ts (default now)",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ts, err := timestampArg(args, now)
				if err != nil {
					return err
				}
				status, err := newService(cmd).GetMarketStatus(ts)
				if err != nil {
					return err
				}
				return writeJSON(out, status)
			},
		},
		&cobra.Command{
			Use:   "holidays [year]",
			Short: "List the market holidays of year (default current year)",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				year := now().Year()
				if len(args) == 1 {
					parsed, err := strconv.Atoi(args[0])
					if err != nil {
						return fmt.Errorf("invalid year %q: %w", args[0], err)
					}
					year = parsed
				}
				holidays, err := newService(cmd).Holidays(year)
				if err != nil {
					return err
				}
				return writeJSON(out, holidays)
			},
		},
		newAuthorizeCmd(out, now, newService),
	)

	return root
}

func newAuthorizeCmd(
	out io.Writer,
	now func() time.Time,
	newService func(*cobra.Command) *market_hours.MarketHoursService,
) *cobra.Command {
	var (
		asset         string
		ts            int64
		allow         []string
		allowlistFile string
	)

	cmd := &cobra.Command{
		Use:   "authorize",
		Short: "Run the transfer gate for an asset; exits non-zero when denied",
		RunE: func(cmd *cobra.Command, args []string) error {
			lists := [][]string{allow}
			if allowlistFile != "" {
				fromFile, err := transfer.LoadAllowList(allowlistFile)
				if err != nil {
					return err
				}
				lists = append(lists, fromFile)
			}

			gate := transfer.NewGate(
				transfer.NewAssetGuard(lists...),
				newService(cmd),
				clockFunc(now),
				nil,
				nil,
				zerolog.Nop(),
			)

			req := transfer.Request{Asset: asset}
			if cmd.Flags().Changed("ts") {
				req.Timestamp = &ts
			}

			decision, err := gate.Authorize(context.Background(), req)
			if decision == nil {
				return err
			}
			if werr := writeJSON(out, decision); werr != nil {
				return werr
			}
			if !decision.Allowed {
				return fmt.Errorf("%w: %s", errDenied, decision.Kind)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&asset, "asset", "", "Asset identity to authorize.")
	cmd.Flags().Int64Var(&ts, "ts", 0, "Seconds since the epoch (default now).")
	cmd.Flags().StringSliceVar(&allow, "allow", nil, "Allowed asset identities (empty allows all).")
	cmd.Flags().StringVar(&allowlistFile, "allowlist-file", "", "YAML file with an assets list.")
	_ = cmd.MarkFlagRequired("asset")

	return cmd
}

func newLogger(cmd *cobra.Command, level string) zerolog.Logger {
	return logger.New(logger.Config{
		Level:  level,
		Pretty: true,
		Output: cmd.ErrOrStderr(),
	})
}

func timestampArg(args []string, now func() time.Time) (int64, error) {
	if len(args) == 0 {
		return now().Unix(), nil
	}
	ts, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid timestamp %q: %w", args[0], err)
	}
	return ts, nil
}

func writeJSON(out io.Writer, v interface{}) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

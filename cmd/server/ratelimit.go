package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"juntell/careers-gateway/cmd/configs"
	"juntell/careers-gateway/gateway/middleware/ratelimiter"
)

var (
	rateLimitListJSON bool
	rateLimitClearYes bool
)

var rateLimitCmd = &cobra.Command{
	Use:   "ratelimit",
	Short: "Inspect rate limit state kept in Redis",
	Long: `Inspect or reset rate limit records stored by the Redis backend.

The in-memory backend lives inside the server process; use the
/admin/ratelimit endpoints for it instead.`,
}

var rateLimitListCmd = &cobra.Command{
	Use:   "list",
	Short: "List live rate limit records",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, closeFn, err := openRedisBackend(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		records, err := backend.List(cmd.Context())
		if err != nil {
			return err
		}
		return writeRecords(cmd.OutOrStdout(), records, rateLimitListJSON)
	},
}

var rateLimitResetCmd = &cobra.Command{
	Use:   "reset <identifier>",
	Short: "Delete the rate limit record for one client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, closeFn, err := openRedisBackend(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		if err := backend.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "Reset %s\n", args[0])
		return err
	},
}

var rateLimitClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every rate limit record",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !rateLimitClearYes {
			return errors.New("clear requires --yes")
		}

		backend, closeFn, err := openRedisBackend(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		if err := backend.Clear(cmd.Context()); err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), "Cleared all rate limit records")
		return err
	},
}

func init() {
	rateLimitListCmd.Flags().BoolVar(&rateLimitListJSON, "json", false, "Print records as JSON")
	rateLimitClearCmd.Flags().BoolVar(&rateLimitClearYes, "yes", false, "Confirm deleting every record")
	rateLimitCmd.AddCommand(rateLimitListCmd)
	rateLimitCmd.AddCommand(rateLimitResetCmd)
	rateLimitCmd.AddCommand(rateLimitClearCmd)
}

func openRedisBackend(cmd *cobra.Command) (*ratelimiter.RedisBackend, func(), error) {
	config, err := configs.LoadConfig(configDir)
	if err != nil {
		return nil, nil, err
	}
	if config.RateLimiterBackend != configs.BackendRedis {
		return nil, nil, errors.New("RATE_LIMITER_BACKEND is not redis; nothing is stored outside the server process")
	}
	client, err := newRedisClient(cmd.Context(), config)
	if err != nil {
		return nil, nil, err
	}
	return ratelimiter.NewRedisBackend(client, config.RateLimiterRedisPrefix), func() { _ = client.Close() }, nil
}

func writeRecords(w io.Writer, records map[string]*ratelimiter.Record, asJSON bool) error {
	if asJSON {
		payload, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(payload))
		return err
	}

	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "(no rate limit records)")
		return err
	}

	ids := make([]string, 0, len(records))
	for id := range records {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		rec := records[id]
		if _, err := fmt.Fprintf(w, "%s: count=%d reset=%s\n", id, rec.Count, rec.ResetTime.UTC().Format(time.RFC3339)); err != nil {
			return err
		}
	}
	return nil
}

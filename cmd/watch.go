package main

import (
	"net"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"aquabot_telemetry/internal/client"

	"github.com/spf13/cobra"
)

var (
	watchServer   string
	watchInterval time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Poll a running server and log the latest reading",
	RunE: func(cmd *cobra.Command, args []string) error {
		server := watchServer
		if server == "" {
			server = localServerURL(cfg.Server.Port)
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		log.Infow("watch_started", "server", server, "interval", watchInterval)
		client.NewPoller(server, log).Run(ctx, watchInterval)
		return nil
	},
}

// localServerURL turns server.port ("3001", ":3001" or "host:3001") into a base URL.
// Wildcard listen hosts are dialed as localhost.
func localServerURL(port string) string {
	host, p, err := net.SplitHostPort(port)
	if err != nil {
		host, p = "", strings.TrimPrefix(port, ":")
	}
	switch host {
	case "", "0.0.0.0", "::":
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, p)
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVar(&watchServer, "server", "", "base URL of the telemetry server (default http://localhost:<server.port>)")
	watchCmd.Flags().DurationVar(&watchInterval, "interval", client.DefaultInterval, "poll interval")
}

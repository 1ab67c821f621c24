package main

import "github.com/spf13/cobra"

var rootCmd = &cobra.Command{
	Use:   "eventfeed",
	Short: "Account event feed for the cloud console",
	Long: `eventfeed polls the provider's account events API, keeps a
deduplicated, deletion-aware view of recent events and serves it, with
rendered messages, to console clients.

  serve    Run the poller and the HTTP API
  render   Print rendered messages for events stored in a JSON file`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(renderCmd)
}

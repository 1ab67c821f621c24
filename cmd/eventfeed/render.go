package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/PratikDhanave/event-feed-service/internal/messages"
	"github.com/PratikDhanave/event-feed-service/internal/models"
)

var renderFile string

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Print rendered messages for events in a JSON file",
	Long: `Reads either a JSON array of events or a provider page
({"data": [...]}) and prints one "id<TAB>message" line per event.
Use --file - to read from stdin.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readInput(renderFile)
		if err != nil {
			return err
		}
		list, err := decodeEvents(data)
		if err != nil {
			return err
		}

		logger := log.New()
		logger.SetOutput(cmd.ErrOrStderr())
		gen := messages.NewGenerator(logger, false)

		out := cmd.OutOrStdout()
		for _, e := range list {
			fmt.Fprintf(out, "%d\t%s\n", e.ID, gen.Message(e))
		}
		return nil
	},
}

func init() {
	renderCmd.Flags().StringVarP(&renderFile, "file", "f", "-", "events JSON file, - for stdin")
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

// decodeEvents accepts a bare array or a provider page envelope.
func decodeEvents(data []byte) ([]models.Event, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var list []models.Event
		if err := json.Unmarshal(data, &list); err != nil {
			return nil, fmt.Errorf("decode events: %w", err)
		}
		return list, nil
	}

	var page models.EventPage
	if err := json.Unmarshal(data, &page); err != nil {
		return nil, fmt.Errorf("decode event page: %w", err)
	}
	return page.Data, nil
}

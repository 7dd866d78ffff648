package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/getmockd/phonexml/pkg/cli/internal/output"
	"github.com/getmockd/phonexml/pkg/provision"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	invokeFlagVals configFlags
	invokeEvent    string
	invokeBodyOnly bool
)

var invokeCmd = &cobra.Command{
	Use:   "invoke",
	Short: "Handle one API Gateway event and print the response",
	Long: `Read an API Gateway HTTP API (payload format 2.0) event as JSON, run it
through the handler and print the response envelope as JSON.

The event is read from --event, or from stdin when --event is omitted or "-".
An event without requestContext.requestId is given a new UUID.`,
	Example: `  # Render the login form for a recorded event
  phonexml invoke --event events/init.json

  # Pipe an event and print only the XML body
  echo '{"headers":{"host":"127.0.0.1:3000"}}' | phonexml invoke --body-only`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := invokeFlagVals.load(cmd)
		if err != nil {
			return err
		}

		req, err := readEvent(cmd.InOrStdin(), invokeEvent)
		if err != nil {
			return err
		}
		if req.RequestContext.RequestID == "" {
			req.RequestContext.RequestID = uuid.NewString()
		}

		h, err := newHandler(cfg, newLogger(cfg, cmd.ErrOrStderr()))
		if err != nil {
			return err
		}
		resp := h.Handle(cmd.Context(), req)

		if invokeBodyOnly {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), resp.Body)
			return err
		}
		return output.JSON(cmd.OutOrStdout(), resp)
	},
}

// readEvent decodes an event from path, or from stdin when path is empty
// or "-".
func readEvent(stdin io.Reader, path string) (*provision.Request, error) {
	r := stdin
	name := "stdin"
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open event: %w", err)
		}
		defer f.Close()
		r, name = f, path
	}

	var req provision.Request
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("no event on %s", name)
		}
		return nil, fmt.Errorf("failed to parse event from %s: %w", name, err)
	}
	return &req, nil
}

func init() {
	invokeFlagVals.register(invokeCmd.Flags(), false)
	invokeCmd.Flags().StringVarP(&invokeEvent, "event", "e", "", `Path to the event JSON file ("-" for stdin)`)
	invokeCmd.Flags().BoolVar(&invokeBodyOnly, "body-only", false, "Print only the response body")
	rootCmd.AddCommand(invokeCmd)
}

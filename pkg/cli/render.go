package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/getmockd/phonexml/pkg/phonexml"
	"github.com/spf13/cobra"
)

var (
	renderFile   string
	renderLatin1 bool
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Build a CiscoIPPhone document from a definition",
	Long: `Build a Menu, Text, Input, Directory or Execute document from a YAML or
JSON definition and print it.

The definition is read from --file, or from stdin when --file is omitted or
"-". Output is UTF-8 unless --latin1 is set, in which case the bytes match
the declared ISO-8859-1 encoding and can be served as a static file.`,
	Example: `  # Static directory screen
  phonexml render --file screens/directory.yaml

  # Execute document from stdin
  echo '{"type":"execute","commands":[{"url":"Key:Headset","priority":"0"}]}' | phonexml render`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readInput(cmd.InOrStdin(), renderFile)
		if err != nil {
			return err
		}

		def, err := phonexml.ParseDefinition(data)
		if err != nil {
			return err
		}
		doc, err := def.Build()
		if err != nil {
			return fmt.Errorf("invalid %s definition: %w", def.Type, err)
		}

		out := phonexml.Serialize(doc)
		w := cmd.OutOrStdout()
		if !renderLatin1 {
			_, err := fmt.Fprintln(w, out)
			return err
		}
		body, err := phonexml.EncodeLatin1(out)
		if err != nil {
			return err
		}
		_, err = w.Write(body)
		return err
	},
}

// readInput reads path, or stdin when path is empty or "-".
func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definition: %w", err)
	}
	return data, nil
}

func init() {
	renderCmd.Flags().StringVarP(&renderFile, "file", "f", "", `Path to the definition file ("-" for stdin)`)
	renderCmd.Flags().BoolVar(&renderLatin1, "latin1", false, "Write ISO-8859-1 bytes instead of UTF-8")
	rootCmd.AddCommand(renderCmd)
}

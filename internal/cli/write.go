package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nrfta/searchresult-go/source"
)

func newWriteCommand(a *app) *cobra.Command {
	var (
		identifier string
		file       string
	)

	cmd := &cobra.Command{
		Use:   "write",
		Short: "Store a JSON array of records under an identifier",
		Example: `  searchresult write --identifier categories --file issues.json
  cat issues.json | searchresult write -i product-url-path --file -`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if identifier == "" {
				return errors.New("--identifier is required")
			}

			data, err := readInput(cmd, file)
			if err != nil {
				return err
			}

			records, err := source.DecodeRecords(data)
			if err != nil {
				return err
			}

			resolved := resolveIdentifier(identifier)
			return a.withStore(cmd.Context(), func(store source.Store) error {
				if err := store.Write(cmd.Context(), resolved, records); err != nil {
					return err
				}

				a.logger.Info("records written",
					zap.String("identifier", resolved),
					zap.Int("count", len(records)),
				)
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %d records to %s\n", len(records), resolved)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&identifier, "identifier", "i", "", "record set identifier (or categories, products)")
	cmd.Flags().StringVarP(&file, "file", "f", "-", "JSON file to read, - for stdin")

	return cmd
}

func readInput(cmd *cobra.Command, file string) ([]byte, error) {
	if file == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", file, err)
	}
	return data, nil
}

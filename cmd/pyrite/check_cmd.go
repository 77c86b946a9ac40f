package main

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/deepnoodle-ai/pyrite"
	"github.com/deepnoodle-ai/pyrite/parser"
)

var checkCmd = &cobra.Command{
	Use:   "check [files...]",
	Short: "Verify that files parse and round-trip byte-for-byte",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var result *multierror.Error
		for _, path := range args {
			if err := checkFile(cmd, path); err != nil {
				result = multierror.Append(result, fmt.Errorf("%s: %w", path, err))
				fmt.Printf("%s %s\n", red("FAIL"), path)
				continue
			}
			fmt.Printf("%s   %s\n", green("OK"), path)
		}
		return result.ErrorOrNil()
	},
}

func checkFile(cmd *cobra.Command, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	source := string(data)
	log.Debug().Str("path", path).Int("bytes", len(source)).Msg("checking file")
	tree, err := pyrite.Parse(cmd.Context(), source, parser.WithFilename(path))
	if err != nil {
		return err
	}
	output, err := tree.Render()
	if err != nil {
		return err
	}
	if output != source {
		return fmt.Errorf("round trip produced different output (%d bytes in, %d bytes out)",
			len(source), len(output))
	}
	return nil
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

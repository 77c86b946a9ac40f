package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deepnoodle-ai/pyrite"
	"github.com/deepnoodle-ai/pyrite/codegen"
	"github.com/deepnoodle-ai/pyrite/parser"
)

var astCmd = &cobra.Command{
	Use:   "ast [file]",
	Short: "Display the annotated syntax tree for source code",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, name, err := getSource(cmd, args)
		if err != nil {
			return err
		}
		tree, err := pyrite.Parse(cmd.Context(), source, parser.WithFilename(name))
		if err != nil {
			return err
		}
		format, err := cmd.Flags().GetString("output")
		if err != nil {
			return err
		}
		switch format {
		case "json":
			out, err := marshalJSON(codegen.DebugTree(tree.Module, tree.Formatting))
			if err != nil {
				return err
			}
			fmt.Println(string(out))
		case "text", "":
			fmt.Print(tree.DebugTree(nil))
		default:
			return fmt.Errorf("unknown output format: %s", format)
		}
		return nil
	},
}

func init() {
	astCmd.Flags().StringP("code", "c", "", "Code to parse")
	astCmd.Flags().Bool("stdin", false, "Read code from stdin")
	astCmd.Flags().StringP("output", "o", "", "Output format (json or text)")
	rootCmd.AddCommand(astCmd)
}

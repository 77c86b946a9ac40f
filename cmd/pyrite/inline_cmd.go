package main

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/deepnoodle-ai/pyrite"
	"github.com/deepnoodle-ai/pyrite/augment"
	"github.com/deepnoodle-ai/pyrite/errors"
	"github.com/deepnoodle-ai/pyrite/parser"
	"github.com/deepnoodle-ai/pyrite/scope"
)

var inlineCmd = &cobra.Command{
	Use:   "inline <file> <name>",
	Short: "Inline a module-level constant and print the result",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, name := args[0], args[1]
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		tree, err := pyrite.Parse(cmd.Context(), string(data), parser.WithFilename(path))
		if err != nil {
			return err
		}
		if err := tree.InlineName(name); err != nil {
			var ie *augment.InlineError
			if stderrors.As(err, &ie) {
				fe := &errors.FormattedError{Kind: "inline error", Message: err.Error()}
				sc := scope.Analyze(tree.Module)
				if _, defined := sc.Lookup(name); !defined {
					fe.Hint = errors.FormatSuggestions(errors.SuggestSimilar(name, sc.Names()))
				}
				fatal(fe)
			}
			return err
		}
		output, err := tree.Render()
		if err != nil {
			return err
		}
		log.Debug().Str("path", path).Str("name", name).Msg("inlined constant")
		write, err := cmd.Flags().GetBool("write")
		if err != nil {
			return err
		}
		if write {
			info, err := os.Stat(path)
			if err != nil {
				return err
			}
			return os.WriteFile(path, []byte(output), info.Mode().Perm())
		}
		fmt.Print(output)
		return nil
	},
}

func init() {
	inlineCmd.Flags().BoolP("write", "w", false, "Write result back to the source file")
	rootCmd.AddCommand(inlineCmd)
}

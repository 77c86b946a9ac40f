package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/hokaccha/go-prettyjson"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/deepnoodle-ai/pyrite/errors"
)

var (
	red   = color.New(color.FgRed).SprintFunc()
	green = color.New(color.FgGreen).SprintFunc()
)

func fatal(msg interface{}) {
	var s string
	switch msg := msg.(type) {
	case *errors.FormattedError:
		s = errorFormatter().Format(msg)
	case errors.FormattableError:
		s = errorFormatter().Format(msg.ToFormatted())
	case string:
		s = red(msg)
	case error:
		s = red(msg.Error())
	default:
		s = red(fmt.Sprintf("%v", msg))
	}
	fmt.Fprintf(os.Stderr, "%s\n", s)
	os.Exit(1)
}

func errorFormatter() *errors.Formatter {
	useColor := !viper.GetBool("no-color") &&
		(isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()))
	return errors.NewFormatter(useColor)
}

func isTerminalOut() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// getSource determines the source code to operate on. There are three
// possibilities: --code <code>, --stdin, or a path as args[0]. The
// returned name is used in error positions.
func getSource(cmd *cobra.Command, args []string) (source, name string, err error) {
	var codeFlagSet bool
	if f := cmd.Flags().Lookup("code"); f != nil && f.Changed {
		codeFlagSet = true
	}
	var stdinFlagSet bool
	if f := cmd.Flags().Lookup("stdin"); f != nil && f.Changed {
		stdinFlagSet = true
	}
	pathSupplied := len(args) > 0
	if pathSupplied && (codeFlagSet || stdinFlagSet) || codeFlagSet && stdinFlagSet {
		return "", "", fmt.Errorf("multiple input sources specified")
	}
	switch {
	case stdinFlagSet:
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", err
		}
		return string(data), "<stdin>", nil
	case pathSupplied:
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", err
		}
		return string(data), args[0], nil
	default:
		code, err := cmd.Flags().GetString("code")
		if err != nil {
			return "", "", err
		}
		return code, "<code>", nil
	}
}

func marshalJSON(v interface{}) ([]byte, error) {
	if viper.GetBool("no-color") || !isTerminalOut() {
		return json.MarshalIndent(v, "", "  ")
	}
	return prettyjson.Marshal(v)
}

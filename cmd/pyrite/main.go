package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

var log zerolog.Logger

var rootCmd = &cobra.Command{
	Use:   "pyrite",
	Short: "Format-preserving parse, print, and rewrite for Python-like source",
	Long: `Pyrite parses source code into a syntax tree annotated with the exact
formatting needed to print it back byte-for-byte, and applies tree
transformations that keep the untouched parts of a file exactly as
written.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if viper.GetBool("no-color") {
			color.NoColor = true
		}
		level := zerolog.WarnLevel
		if viper.GetBool("verbose") {
			level = zerolog.DebugLevel
		}
		log = zerolog.New(zerolog.ConsoleWriter{
			Out:     os.Stderr,
			NoColor: color.NoColor,
		}).Level(level).With().Timestamp().Logger()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("pyrite %s (commit %s, built %s)\n", version, commit, date)
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.Bool("no-color", false, "Disable colored output")
	pf.BoolP("verbose", "v", false, "Enable verbose logging")
	viper.BindPFlags(pf)
	viper.BindEnv("no-color", "NO_COLOR")

	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fatal(err)
	}
}

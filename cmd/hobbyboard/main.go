package main

import (
	"fmt"
	json "github.com/goccy/go-json"
	"hobbyboard/internal/di"
	"hobbyboard/internal/structures"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var (
	flags   structures.CliFlags
	rootCmd = &cobra.Command{
		Use:   "hobbyboard",
		Short: "Community board for the hobby club page",
		RunE:  runServe,
	}
)

func runServe(_ *cobra.Command, _ []string) error {
	app, cleanup, err := di.InitApp(&flags)
	if err != nil {
		return err
	}
	defer cleanup()
	return app.Run()
}

func runSummary(out io.Writer) error {
	board, cleanup, err := di.InitBoard(&flags)
	if err != nil {
		return err
	}
	defer cleanup()

	gson, err := json.MarshalIndent(board.Service.Summary(), "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(gson))
	return err
}

func main() {
	rootCmd.PersistentFlags().StringVarP(&flags.ConfigPath, "config", "c", "config.yml", "Path to the YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&flags.DebugMode, "debug", "d", false, "Also log to stderr")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Serve the board API",
		RunE:  runServe,
	})
	rootCmd.AddCommand(&cobra.Command{
		Use:   "summary",
		Short: "Print the board summary from the configured store",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSummary(cmd.OutOrStdout())
		},
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

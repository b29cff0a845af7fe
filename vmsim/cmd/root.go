// Package cmd provides the command-line interface of vmsim.
package cmd

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Environment variables that provide flag defaults. Flags given on the
// command line take precedence.
const (
	envFrames      = "VMSIM_FRAMES"
	envPolicy      = "VMSIM_POLICY"
	envMonitorPort = "VMSIM_MONITOR_PORT"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "vmsim",
	Short: "vmsim simulates demand paging over a fixed pool of frames.",
	Long: `vmsim feeds page reference strings to a memory manager and ` +
		`reports hits, faults and evictions. Supported replacement ` +
		`policies are FIFO, LRU, Clock and Random(seed).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		envFile, _ := cmd.Flags().GetString("env-file")
		return loadEnvFile(envFile)
	},
}

func init() {
	rootCmd.PersistentFlags().String("env-file", ".env",
		"File to load environment variables from, if it exists.")
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// loadEnvFile loads variables that are not set yet from a dotenv file. A
// missing file is not an error.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}

	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	return err
}

// envOverride sets a flag from an environment variable, unless the flag is
// given on the command line.
func envOverride(cmd *cobra.Command, flag, env string) error {
	if cmd.Flags().Changed(flag) {
		return nil
	}

	value, ok := os.LookupEnv(env)
	if !ok {
		return nil
	}

	return cmd.Flags().Set(flag, value)
}

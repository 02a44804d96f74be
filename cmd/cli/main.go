package main

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/myrjola/spermcourt/cmd/cli/courtcmd"
	"github.com/myrjola/spermcourt/cmd/cli/motioncmd"
	"github.com/myrjola/spermcourt/internal/errors"
	"github.com/spf13/cobra"
)

func init() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	rootCmd.PersistentFlags().String("sqlite-url", "./spermcourt.sqlite3", "SQLite URL")
	rootCmd.AddGroup(courtcmd.Group)
	rootCmd.AddCommand(courtcmd.Docket, courtcmd.Records)
	rootCmd.AddGroup(motioncmd.Group)
	rootCmd.AddCommand(motioncmd.Frame, motioncmd.Scene)
}

var rootCmd = &cobra.Command{
	Use:          "spermcourt-cli",
	Long:         `Command line utilities for Sperm Court https://github.com/myrjola/spermcourt`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}

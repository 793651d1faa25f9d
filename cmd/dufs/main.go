package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Version: version,
	Use:     "dufs [path]",
	Short:   "Serve a local directory over HTTP",
	Long: `Dufs serves a single local directory over HTTP for browsing,
download, upload, deletion, recursive search, and bulk ZIP download.
It is meant for ad-hoc sharing on a LAN or local host.`,
	Args: cobra.MaximumNArgs(1),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		readConfig(cmd)
		setupLogging()
		return nil
	},
	RunE: runServe,
}

func init() {
	rootCmd.Flags().StringP("bind", "b", "127.0.0.1", "bind address")
	rootCmd.Flags().IntP("port", "p", 5000, "port to listen on")
	rootCmd.Flags().BoolP("no-edit", "E", false, "disable editing operations such as upload or delete")
	rootCmd.Flags().StringP("auth", "a", "", "authenticate with user:pass")
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error (env: DUFS_LOG_LEVEL)")

	_ = viper.BindPFlag("bind", rootCmd.Flags().Lookup("bind"))
	_ = viper.BindPFlag("port", rootCmd.Flags().Lookup("port"))
	_ = viper.BindPFlag("readonly", rootCmd.Flags().Lookup("no-edit"))
	_ = viper.BindPFlag("auth", rootCmd.Flags().Lookup("auth"))
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// Package cmd implements the command-line interface for newsharvest.
// It provides the root command and subcommands for crawling, scheduling
// and serving harvested articles.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jonesrussell/newsharvest/cmd/crawl"
	"github.com/jonesrussell/newsharvest/cmd/httpd"
	cmdscheduler "github.com/jonesrussell/newsharvest/cmd/scheduler"
	cmdsources "github.com/jonesrussell/newsharvest/cmd/sources"
)

var (
	// cfgFile holds the path to the configuration file.
	cfgFile string

	// debug enables debug logging for all commands.
	debug bool

	rootCmd = &cobra.Command{
		Use:   "newsharvest",
		Short: "A news article harvester",
		Long:  `Harvests news articles from configured sources into PostgreSQL.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
)

// Execute runs the root command.
func Execute() error {
	if err := initConfig(); err != nil {
		return fmt.Errorf("failed to initialize configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"",
		"config file (default is ./config.yaml)",
	)
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(crawl.Command())
	rootCmd.AddCommand(cmdscheduler.Command())
	rootCmd.AddCommand(httpd.Command())
	rootCmd.AddCommand(cmdsources.Command())
}

// initConfig reads the config file and environment variables.
func initConfig() error {
	// Load .env first so its variables are visible to viper.
	_ = godotenv.Load()

	_ = rootCmd.ParseFlags(os.Args[1:])

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	}

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// The config file is optional; defaults and environment cover a
	// missing one.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := bindEnvVars(); err != nil {
		return err
	}

	if debug || viper.GetBool("app.debug") {
		viper.Set("logger.level", "debug")
		viper.Set("logger.development", true)
	}

	return nil
}

// bindEnvVars maps well-known environment variables to config keys.
func bindEnvVars() error {
	bindings := map[string][]string{
		"logger.level":      {"LOG_LEVEL"},
		"crawler.proxy":     {"CRAWLER_PROXY", "HTTP_PROXY"},
		"database.host":     {"DB_HOST", "POSTGRES_HOST"},
		"database.port":     {"DB_PORT", "POSTGRES_PORT"},
		"database.user":     {"DB_USER", "POSTGRES_USER"},
		"database.password": {"DB_PASSWORD", "POSTGRES_PASSWORD"},
		"database.dbname":   {"DB_NAME", "POSTGRES_DB"},
	}

	for key, envs := range bindings {
		input := append([]string{key}, envs...)
		if err := viper.BindEnv(input...); err != nil {
			return fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}
	return nil
}

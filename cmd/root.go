package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/jahua/prism-portfolio/config"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var cfgFile string
var appConfig config.Config

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Backend for a personal portfolio, blog and CV site",
	Long: `portfolio serves the JSON API behind a personal portfolio site: the owner's profile,
blog posts, projects, contact messages and image uploads.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return serveCmd.RunE(cmd, args)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml, json or toml)")
}

func initializeConfig(_ *cobra.Command) error {
	// A missing .env is normal outside local development.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	c, err := config.Load(config.New(), cfgFile)
	if err != nil {
		return err
	}
	appConfig = c

	return setupLogger(os.Stderr, c.LogLevel, c.LogFormat)
}

// setupLogger points the global zerolog logger at w. Format "console" is human readable,
// anything else is JSON.
func setupLogger(w io.Writer, level, format string) error {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return fmt.Errorf("invalid log_level %q: %w", level, err)
	}
	zerolog.SetGlobalLevel(lvl)

	if strings.EqualFold(format, "console") {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
	return nil
}

package cmd

import (
	"log/slog"
	"os"

	"github.com/seatswap/ticketscan/internal/config"
	"github.com/seatswap/ticketscan/internal/version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	globalConfig *config.Config
	cfgFile      string
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "ticketscan",
	Short: "Extract structured ticket data from images",
	Long: `ticketscan reads a photographed or screenshotted event ticket and extracts
structured fields: event name, date, time, venue, ticket type, order
reference, and holder name, with a confidence score.

Extraction combines QR decoding, image preprocessing, and multi-strategy
OCR, trying cheap strategies first and escalating only when needed.

Examples:
  ticketscan extract ticket.jpg
  ticketscan extract ticket.pdf --format text`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. Called once by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// GetRootCommand returns the root command for testing purposes.
func GetRootCommand() *cobra.Command { return rootCmd }

// GetConfig returns the loaded configuration, loading it on first use.
func GetConfig() *config.Config {
	if globalConfig == nil {
		initConfig()
	}
	return globalConfig
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.Version = version.String()

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is search in ., $HOME, $HOME/.config/ticketscan, /etc/ticketscan)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false,
		"verbose output (equivalent to --log-level=debug)")
	rootCmd.PersistentFlags().String("log-level", "info",
		"log level (debug, info, warn, error)")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	loader := config.NewLoader()
	loader.SetConfigFile(cfgFile)

	cfg, err := loader.Load()
	if err != nil {
		slog.Warn("failed to load configuration, using defaults", "error", err)
		def := config.Default()
		cfg = &def
	}
	globalConfig = cfg
	setupLogging(cfg)
}

func setupLogging(cfg *config.Config) {
	level := slog.LevelInfo
	if viper.GetBool("verbose") {
		level = slog.LevelDebug
	} else {
		switch cfg.LogLevel {
		case "debug":
			level = slog.LevelDebug
		case "warn":
			level = slog.LevelWarn
		case "error":
			level = slog.LevelError
		}
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

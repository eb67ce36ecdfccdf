// ABOUTME: Root command, global flags and shared setup for the Tubewise CLI
// ABOUTME: Loads configuration, configures logging and builds the service for subcommands
package commands

import (
	"fmt"
	"os"

	"github.com/harper/tubewise/internal/config"
	"github.com/harper/tubewise/internal/logging"
	"github.com/harper/tubewise/internal/service"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var (
	verbose      bool
	quiet        bool
	outputFormat string
	configPath   string
)

var outputFormats = []string{"auto", "text", "json"}

// newService builds the service; replaced in tests
var newService = service.NewFromConfig

const banner = `
████████╗██╗   ██╗██████╗ ███████╗██╗    ██╗██╗███████╗███████╗
╚══██╔══╝██║   ██║██╔══██╗██╔════╝██║    ██║██║██╔════╝██╔════╝
   ██║   ██║   ██║██████╔╝█████╗  ██║ █╗ ██║██║███████╗█████╗
   ██║   ██║   ██║██╔══██╗██╔══╝  ██║███╗██║██║╚════██║██╔══╝
   ██║   ╚██████╔╝██████╔╝███████╗╚███╔███╔╝██║███████║███████╗
   ╚═╝    ╚═════╝ ╚═════╝ ╚══════╝ ╚══╝╚══╝ ╚═╝╚══════╝╚══════╝`

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tubewise",
		Short: "Ask questions, write posts and analyze YouTube videos from their transcripts",
		Long: banner + `

Tubewise fetches a YouTube video's transcript and runs language model
operations over it: retrieval-augmented question answering, blog post
generation, sentiment analysis and word clouds.

Configuration comes from the environment (and .env), optionally layered
over a YAML file passed with --config.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Only log warnings and errors")
	cmd.PersistentFlags().StringVar(&outputFormat, "format", "auto", "Output format: auto, text or json")
	cmd.PersistentFlags().StringVar(&configPath, "config", os.Getenv("TUBEWISE_CONFIG"), "Path to a YAML config file (default $TUBEWISE_CONFIG)")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.AddCommand(
		NewTranscriptCmd(),
		NewBlogCmd(),
		NewAskCmd(),
		NewSentimentCmd(),
		NewWordCloudCmd(),
		NewMCPCmd(),
		NewServeCmd(),
		NewVersionCmd(),
	)

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}

func setup(cmd *cobra.Command, _ []string) error {
	if !containsString(outputFormats, outputFormat) {
		return fmt.Errorf("invalid --format %q (want auto, text or json)", outputFormat)
	}

	level := "info"
	if verbose {
		level = "debug"
	} else if quiet {
		level = "warn"
	}
	logging.Setup(level, isatty.IsTerminal(os.Stderr.Fd()))
	return nil
}

// loadConfig reads .env and the optional YAML file, then applies log settings from it
func loadConfig() (*config.Config, error) {
	_ = godotenv.Load()

	cfg, err := config.LoadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if !verbose && !quiet {
		logging.Setup(cfg.LogLevel, cfg.LogPretty && isatty.IsTerminal(os.Stderr.Fd()))
	}
	return cfg, nil
}

// buildService loads configuration and constructs the service
func buildService() (*service.Service, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	svc, err := newService(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("initializing service: %w", err)
	}
	return svc, cfg, nil
}

func jsonOutput() bool {
	return outputFormat == "json"
}

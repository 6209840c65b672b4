package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/npillmayer/mdlines/core"
	"github.com/npillmayer/mdlines/core/config"
	"github.com/npillmayer/mdlines/engine/probe"
	"github.com/npillmayer/mdlines/input/markdown"
	"github.com/npillmayer/mdlines/input/markdown/highlight"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const moduleName = "mdlines"

var (
	cfgFile string
	logger  *zap.SugaredLogger
)

// Opts is required in order to have proper validation for args from cobra and viper.
type Opts struct {
	LogLevel string `validate:"oneof=debug info warn error"`
	Config   string `validate:"omitempty,file"`
}

var rootCmd = &cobra.Command{
	Use:           moduleName,
	Short:         "render and measure markdown editor lines",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		initConfig()
		if err := initLogging(); err != nil {
			return err
		}
		return nil
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if logger != nil {
			logger.Fatalw(core.UserMessage(err), "code", core.Code(err), "error", err)
		}
		log.Fatalf("an error occurred: %v", err)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("log-level", "", "info", "sets the application log level")
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "path to a YAML configuration file")
	rootCmd.AddCommand(renderCmd, probeCmd, growCmd, exportCmd, watchCmd, languagesCmd)

	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		log.Fatalf("unable to construct root command: %v", err)
	}
}

func initConfig() {
	viper.SetEnvPrefix("MDLINES")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func initOpts() (*Opts, error) {
	opts := &Opts{
		LogLevel: viper.GetString("log-level"),
		Config:   viper.GetString("config"),
	}
	validate := validator.New()
	if err := validate.Struct(opts); err != nil {
		return nil, err
	}
	return opts, nil
}

func initLogging() error {
	opts, err := initOpts()
	if err != nil {
		return fmt.Errorf("unable to init options: %w", err)
	}
	level := zap.InfoLevel
	if err := level.UnmarshalText([]byte(opts.LogLevel)); err != nil {
		return fmt.Errorf("can't initialize zap logger: %w", err)
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.OutputPaths = []string{"stderr"}
	l, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("can't initialize zap logger: %w", err)
	}
	logger = l.Sugar()
	return nil
}

// --- Shared setup ----------------------------------------------------------

// loadConfig reads the configuration file given by flag or environment,
// or returns the defaults.
func loadConfig() (*config.Config, error) {
	path := viper.GetString("config")
	if path == "" {
		return config.Default(), nil
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	logger.Debugw("configuration loaded", "path", path)
	return cfg, nil
}

func newRenderer(cfg *config.Config) *markdown.Renderer {
	return markdown.NewRenderer(
		markdown.WithIndentStep(cfg.IndentStep),
		markdown.WithHighlighter(highlight.New(highlight.WithStyle(cfg.HighlightStyle))),
	)
}

func newProber(cfg *config.Config) (*probe.Prober, error) {
	sheets, err := cfg.ReadStyleSheets()
	if err != nil {
		return nil, err
	}
	return probe.NewProber(sheets...)
}

// readInput reads a file, or standard input for "-".
func readInput(path string) (string, error) {
	if path == "-" {
		b, err := io.ReadAll(os.Stdin)
		return string(b), err
	}
	b, err := os.ReadFile(path)
	return string(b), err
}

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	findupes "github.com/mattkeenan/findupes/pkg"
)

var version = "0.9.0"

var rootCmd = &cobra.Command{
	Use:   "findupes <path>",
	Short: "Identify duplicate files",
	Long: `findupes finds duplicate regular files under a directory tree.

Files are first collated by device and inode so hard links count once,
then grouped by size, and finally proven identical by byte-for-byte
comparison. No hashes are computed and nothing on disk is modified.`,
	Args:          cobra.ExactArgs(1),
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runScan,
}

func init() {
	rootCmd.Flags().StringP("min-size", "s", "", `ignore files smaller than this (bytes, SI/IEC suffixes allowed; default "100000")`)
	rootCmd.Flags().StringArrayP("exclude", "x", nil, "directory basename to skip (repeatable)")
	rootCmd.Flags().StringP("format", "f", "", "report format: text, html or json (default \"text\")")
	rootCmd.Flags().StringP("output", "o", "", "write the report to this file instead of stdout")
	rootCmd.Flags().StringP("config", "c", "", "config file (default is $XDG_CONFIG_HOME/findupes/config)")
	rootCmd.Flags().StringP("log-level", "l", "", "log level: debug, info, warn or error (default \"warn\")")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "findupes: %v\n", err)
		os.Exit(1)
	}
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	scanCfg, err := cfg.GetScanConfig()
	if err != nil {
		return err
	}
	outCfg, err := cfg.GetOutputConfig()
	if err != nil {
		return err
	}
	logCfg := cfg.GetLogConfig()

	// Flags override the config file, which overrides built-in defaults.
	minSize := scanCfg.MinSize
	if spec, _ := cmd.Flags().GetString("min-size"); spec != "" {
		minSize, err = parseMinSize(spec)
		if err != nil {
			return err
		}
	}

	excludes := scanCfg.Excludes
	if flagExcludes, _ := cmd.Flags().GetStringArray("exclude"); len(flagExcludes) > 0 {
		excludes = append(excludes, flagExcludes...)
	}

	format := outCfg.Format
	if f, _ := cmd.Flags().GetString("format"); f != "" {
		if !findupes.ValidFormat(f) {
			return fmt.Errorf("unknown report format %q (expected text, html or json)", f)
		}
		format = f
	}

	logLevelName := logCfg.Level
	if l, _ := cmd.Flags().GetString("log-level"); l != "" {
		logLevelName = l
	}
	logLevel, err := zerolog.ParseLevel(logLevelName)
	if err != nil {
		return fmt.Errorf("unknown log level %q: %w", logLevelName, err)
	}

	logger := zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: "15:04:05",
	}).Level(logLevel).With().Timestamp().Logger()

	scanner := findupes.NewScanner(findupes.Options{
		MinSize:  minSize,
		Excludes: excludes,
		Logger:   &logger,
	})

	clusters, err := scanner.Scan(args[0])
	if err != nil {
		return err
	}

	dest := os.Stdout
	if outputPath, _ := cmd.Flags().GetString("output"); outputPath != "" {
		dest, err = os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer dest.Close()
	}

	switch format {
	case findupes.FormatHTML:
		return findupes.WriteHTML(dest, clusters)
	case findupes.FormatJSON:
		return findupes.WriteJSON(dest, clusters)
	default:
		return findupes.WriteText(dest, clusters)
	}
}

// parseMinSize parses the --min-size flag value.
func parseMinSize(spec string) (uint64, error) {
	minSize, err := findupes.ParseSizeSpec(spec)
	if err != nil {
		return 0, fmt.Errorf("invalid --min-size: %w", err)
	}
	return minSize, nil
}

// loadConfig loads the config file named by --config, or the per-user
// default location if that file exists. A missing file is not an error;
// it just means built-in defaults.
func loadConfig(cmd *cobra.Command) (*findupes.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		if configDir, err := os.UserConfigDir(); err == nil {
			configPath = filepath.Join(configDir, "findupes", "config")
		}
	}
	return findupes.LoadConfig(configPath)
}

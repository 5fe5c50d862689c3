package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/nao1215/reviewlens/internal/analyze"
	"github.com/nao1215/reviewlens/internal/config"
	rlog "github.com/nao1215/reviewlens/internal/log"
	"github.com/nao1215/reviewlens/internal/notify"
	"github.com/spf13/cobra"
)

// addEndpointFlags registers the flags shared by every command that talks
// to the analyze endpoint. Defaults come from the config file, so the
// flag defaults are only shown for reference.
func addEndpointFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("endpoint", "e", config.DefaultEndpoint,
		"Analyze endpoint URL")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Timeout for each analyze call (0 waits indefinitely)")
	cmd.Flags().String("proxy", "",
		"SOCKS5 proxy address for analyze calls (e.g., 127.0.0.1:9050)")
	cmd.Flags().String("lang", config.DefaultLanguage,
		"Notification language (en, tr)")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .reviewlens in current, XDG config or home directory)")
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig layers defaults, the config file and explicitly set flags.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Verbose = getVerboseFlag(cmd)

	var err error
	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// A missing file is only an error when the user named it.
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	if configPath != "" {
		f, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		cfg.ApplyFile(f)
	} else if cfg.ConfigFilePath != "" {
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	}

	flags := cmd.Flags()
	if flags.Changed("endpoint") {
		if cfg.Endpoint, err = flags.GetString("endpoint"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("timeout") {
		if cfg.Timeout, err = flags.GetDuration("timeout"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("proxy") {
		if cfg.ProxyAddress, err = flags.GetString("proxy"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("lang") {
		if cfg.Language, err = flags.GetString("lang"); err != nil {
			return nil, err
		}
	}
	if flags.Lookup("listen") != nil && flags.Changed("listen") {
		if cfg.ListenAddress, err = flags.GetString("listen"); err != nil {
			return nil, err
		}
	}
	if flags.Lookup("parallel") != nil && flags.Changed("parallel") {
		if cfg.Parallel, err = flags.GetInt("parallel"); err != nil {
			return nil, err
		}
	}
	if flags.Lookup("json") != nil {
		if cfg.JSONReport, err = flags.GetBool("json"); err != nil {
			return nil, err
		}
	}
	if flags.Lookup("markdown") != nil {
		if cfg.MarkdownReport, err = flags.GetBool("markdown"); err != nil {
			return nil, err
		}
	}

	if flags.Lookup("output") != nil {
		if cfg.ReportFile, err = flags.GetString("output"); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}
	return cfg, nil
}

// setupLogger creates the redacting logger used by every command.
func setupLogger(w io.Writer, verbose bool) *slog.Logger {
	return rlog.NewSecureLogger(w, verbose)
}

// newAnalyzeClient creates the endpoint client described by cfg.
func newAnalyzeClient(cfg *config.Config, logger *slog.Logger) (*analyze.Client, error) {
	return analyze.NewClient(cfg.Endpoint,
		analyze.WithTimeout(cfg.Timeout),
		analyze.WithUserAgent(cfg.UserAgent),
		analyze.WithHeaders(cfg.Headers),
		analyze.WithProxy(cfg.ProxyAddress),
		analyze.WithMaxBodySize(cfg.MaxBodySize),
		analyze.WithLogger(logger),
	)
}

// newMessages returns the notification wording for cfg.Language.
// Unknown languages fall back to English; Validate rejects them earlier.
func newMessages(cfg *config.Config) notify.Messages {
	tag, _ := notify.ParseLanguage(cfg.Language) //nolint:errcheck // checked by Validate
	return notify.NewMessages(tag)
}

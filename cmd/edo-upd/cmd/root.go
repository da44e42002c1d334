package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/rezonia/edo-upd/internal/config"
	"github.com/rezonia/edo-upd/internal/crpt"
	"github.com/rezonia/edo-upd/internal/logger"
	"github.com/rezonia/edo-upd/internal/signer"
	"github.com/rezonia/edo-upd/internal/transport"
)

var (
	version = "1.0.0"

	// Global flags
	verbose bool
	envFile string

	cfg    config.Config
	appLog *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "edo-upd",
	Short: "Build universal transfer documents and exchange them with the CRPT operator",
	Long: `edo-upd renders universal transfer documents (УПД) in the 5.01 and 5.03
schema generations and exchanges them with the CRPT document operator.

Operator commands read CRPT_SERVICE_URL, CRPT_AUTH_URL,
CRPT_CERTIFICATE_THUMBPRINT and SIGNER_COMMAND from the environment or
from the .env file.

Examples:
  # Render a seller file
  edo-upd render invoice.json -o invoice.xml

  # Unpack a received package
  edo-upd extract package.zip

  # Upload a draft
  edo-upd submit invoice.json --draft

  # Export incoming documents
  edo-upd list incoming --xlsx incoming.xlsx`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: initConfig,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Environment file")
}

func initConfig(cmd *cobra.Command, args []string) error {
	c, err := config.New(envFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg = c

	level := cfg.Logger.Level
	if verbose {
		level = "debug"
	}
	appLog, err = logger.New(level, cfg.Logger.Format, os.Stderr)
	if err != nil {
		return err
	}
	slog.SetDefault(appLog)
	return nil
}

// newClient builds the operator client from the configuration
func newClient() (*crpt.Client, error) {
	s, err := signer.New(cfg.Signer.Command, cfg.Signer.Timeout, appLog)
	if err != nil {
		return nil, err
	}

	httpClient := transport.NewHTTPClient(transport.Options{
		Timeout:  cfg.CRPT.Timeout,
		RetryMax: cfg.CRPT.TransportRetryMax,
		Logger:   appLog,
	})

	return crpt.New(crpt.Options{
		ServiceURL:            cfg.CRPT.ServiceURL,
		AuthURL:               cfg.CRPT.AuthURL,
		CertificateThumbprint: cfg.CRPT.CertificateThumbprint,
	}, s, crpt.WithHTTPClient(httpClient), crpt.WithLogger(appLog))
}

func printVerbose(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}

// output opens path for writing or returns stdout
func output(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

func writeJSON(path string, v any) error {
	w, err := output(path)
	if err != nil {
		return err
	}
	defer w.Close()

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

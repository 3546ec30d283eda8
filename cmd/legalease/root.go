package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"legalease-client/internal/bootstrap"
	"legalease-client/internal/legalease"
	"legalease-client/internal/shared/config"
	"legalease-client/internal/shared/telemetry"
)

type rootOptions struct {
	apiURL  string
	token   string
	timeout time.Duration
	debug   bool

	app *bootstrap.Client
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "legalease",
		Short:         "Upload legal documents, chat about them and generate agreements",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			telemetry.SetDebug(opts.debug)
			cfg := config.Load()
			if opts.apiURL != "" {
				cfg.APIBaseURL = opts.apiURL
			}
			if opts.token != "" {
				cfg.APIToken = opts.token
			}
			if opts.timeout > 0 {
				cfg.RequestTimeout = opts.timeout
			}
			app, err := bootstrap.BuildClient(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			opts.app = app
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return opts.app.Close()
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.apiURL, "api-url", "", "backend base URL (default $LEGALEASE_API_URL or "+legalease.DefaultBaseURL+")")
	flags.StringVar(&opts.token, "token", "", "bearer token sent with every request (default $LEGALEASE_API_TOKEN)")
	flags.DurationVar(&opts.timeout, "timeout", 0, "per-request timeout, 0 for none")
	flags.BoolVar(&opts.debug, "debug", false, "emit debug logs on stderr")

	cmd.AddCommand(
		newUploadCmd(opts),
		newChatCmd(opts),
		newAskCmd(opts),
		newGenerateCmd(opts),
		newDownloadCmd(opts),
	)
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return fmt.Errorf("%w\n\n%s", err, c.UsageString())
	})
	return cmd
}

// describe renders an error for the terminal, keeping the backend's message
// when there is one.
func describe(err error) string {
	var apiErr *legalease.APIError
	if errors.As(err, &apiErr) {
		if apiErr.StatusCode > 0 {
			return fmt.Sprintf("%s error (HTTP %d): %s", apiErr.Kind, apiErr.StatusCode, apiErr.Message)
		}
		return fmt.Sprintf("%s error: %s", apiErr.Kind, apiErr.Message)
	}
	return err.Error()
}

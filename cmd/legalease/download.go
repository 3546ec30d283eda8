package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"legalease-client/internal/legalease"
)

func newDownloadCmd(root *rootOptions) *cobra.Command {
	var saveAs string
	cmd := &cobra.Command{
		Use:   "download URL",
		Short: "Download a generated artifact by its URL or backend-relative path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			art, err := root.app.API.DownloadArtifact(cmd.Context(), args[0], saveAs, root.app.Store)
			if err != nil {
				return errors.New(describe(err))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved %s (%d bytes, %s)\n", art.StorageKey, art.SizeBytes, art.ContentType)
			return nil
		},
	}
	cmd.Flags().StringVar(&saveAs, "save-as", "", "file name for the artifact (default "+legalease.DefaultDownloadFileName+")")
	return cmd
}

package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"legalease-client/internal/agreements"
)

func newGenerateCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate KIND",
		Short: "Generate an agreement and optionally download it",
	}
	for _, kind := range agreements.Kinds {
		cmd.AddCommand(newGenerateKindCmd(root, kind))
	}
	return cmd
}

func newGenerateKindCmd(root *rootOptions, kind agreements.Kind) *cobra.Command {
	var (
		download bool
		saveAs   string
	)
	values := map[string]*string{}

	cmd := &cobra.Command{
		Use:   string(kind),
		Short: fmt.Sprintf("Generate a %s agreement", kind),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data := make(map[string]string, len(values))
			for field, v := range values {
				if strings.TrimSpace(*v) != "" {
					data[field] = *v
				}
			}
			form, err := agreements.FromFormData(kind, data)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			res, err := root.app.API.GenerateAgreement(ctx, form)
			if err != nil {
				return errors.New(describe(err))
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "artifact: %s\n", root.app.API.ResolveArtifactURL(res.PDFURL))
			if !download {
				return nil
			}

			art, err := root.app.API.DownloadArtifact(ctx, res.PDFURL, saveAs, root.app.Store)
			if err != nil {
				return errors.New(describe(err))
			}
			fmt.Fprintf(out, "saved %s (%d bytes)\n", art.StorageKey, art.SizeBytes)
			return nil
		},
	}

	required := map[string]bool{}
	for _, field := range agreements.Required(kind) {
		required[field] = true
	}
	for _, field := range agreements.Fields(kind) {
		usage := strings.ReplaceAll(field, "_", " ")
		if required[field] {
			usage += " (required)"
		}
		values[field] = cmd.Flags().String(flagName(field), "", usage)
	}
	cmd.Flags().BoolVar(&download, "download", false, "download the generated artifact into the local store")
	cmd.Flags().StringVar(&saveAs, "save-as", "", "file name for the downloaded artifact")
	return cmd
}

func flagName(field string) string {
	return strings.ReplaceAll(field, "_", "-")
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"legalease-client/internal/legalease"
)

func newUploadCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "upload FILE",
		Short: "Upload a document for analysis and print its document ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := legalease.LoadFile(args[0])
			if err != nil {
				return err
			}

			chat, err := root.app.Conversations.StartDocument(cmd.Context(), file)
			if err != nil {
				return fmt.Errorf("upload %s: %s", file.Name, describe(err))
			}
			session := chat.Session()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "document_id: %s\n", session.DocumentID)
			fmt.Fprintf(out, "session_id:  %s\n", session.ID)
			for _, turn := range chat.Turns() {
				fmt.Fprintf(out, "\n%s\n", turn.Text)
			}
			return nil
		},
	}
}

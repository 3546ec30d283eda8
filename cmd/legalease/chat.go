package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"legalease-client/internal/conversation"
	"legalease-client/internal/legalease"
)

const quitCommand = "/quit"

func newChatCmd(root *rootOptions) *cobra.Command {
	var (
		documentPath string
		sessionID    string
	)
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat interactively about a document or about legal questions in general",
		Long: "Starts an interactive chat. With --document the file is uploaded first and\n" +
			"questions are answered against it; with --session a saved conversation is\n" +
			"resumed. Type " + quitCommand + " or send EOF to leave.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if documentPath != "" && sessionID != "" {
				return errors.New("--document and --session are mutually exclusive")
			}
			ctx := cmd.Context()
			svc := root.app.Conversations

			var (
				chat *conversation.Chat
				err  error
			)
			switch {
			case sessionID != "":
				chat, err = svc.Resume(ctx, sessionID)
			case documentPath != "":
				var file legalease.File
				file, err = legalease.LoadFile(documentPath)
				if err == nil {
					chat, err = svc.StartDocument(ctx, file)
				}
			default:
				chat, err = svc.StartGeneral(ctx)
			}
			if err != nil {
				return errors.New(describe(err))
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "session %s\n", chat.Session().ID)
			for _, turn := range chat.Turns() {
				printTurn(out, turn)
			}
			return runChat(cmd, chat)
		},
	}
	cmd.Flags().StringVar(&documentPath, "document", "", "upload this file and chat about it")
	cmd.Flags().StringVar(&sessionID, "session", "", "resume a saved conversation")
	return cmd
}

func runChat(cmd *cobra.Command, chat *conversation.Chat) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case quitCommand:
			return nil
		}

		reply, err := chat.Send(ctx, line)
		if reply.Text != "" {
			printTurn(out, reply)
		}
		if err != nil && ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

func printTurn(out io.Writer, turn conversation.Turn) {
	speaker := "you"
	if turn.Role == conversation.RoleAssistant {
		speaker = "legalease"
	}
	fmt.Fprintf(out, "%s: %s\n", speaker, turn.Text)
}

func newAskCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ask QUESTION...",
		Short: "Ask a single general legal question",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reply, err := root.app.API.GeneralChat(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return errors.New(describe(err))
			}
			fmt.Fprintln(cmd.OutOrStdout(), reply)
			return nil
		},
	}
}

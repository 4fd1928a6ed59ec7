package main

import (
	"github.com/casaflow/crm-cli-go/internal/domain"

	"github.com/spf13/cobra"
)

func newConversationsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "conversations",
		Short: "Read and reply to lead conversations",
	}
	cmd.AddCommand(
		newConversationsListCmd(a),
		newConversationsSendCmd(a),
	)
	return cmd
}

func newConversationsListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list <lead-id>",
		Short: "List a lead's conversations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireAuth(); err != nil {
				return err
			}
			conversations, err := a.client.ListConversations(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(conversations)
		},
	}
}

func newConversationsSendCmd(a *app) *cobra.Command {
	var content string

	cmd := &cobra.Command{
		Use:   "send <lead-id>",
		Short: "Send a message to a lead",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireAuth(); err != nil {
				return err
			}
			msg, err := a.client.SendMessage(cmd.Context(), args[0], domain.OutgoingMessage{
				SenderType: "agent",
				Content:    content,
			})
			if err != nil {
				return err
			}
			return printJSON(msg)
		},
	}
	cmd.Flags().StringVar(&content, "content", "", "message text")
	_ = cmd.MarkFlagRequired("content")
	return cmd
}

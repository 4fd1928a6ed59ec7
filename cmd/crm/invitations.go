package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInvitationsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invitations",
		Short: "Request and validate agent invitations",
	}
	cmd.AddCommand(
		newInvitationsRequestCmd(a),
		newInvitationsValidateCmd(a),
	)
	return cmd
}

func newInvitationsRequestCmd(a *app) *cobra.Command {
	var email, company string

	cmd := &cobra.Command{
		Use:   "request",
		Short: "Request an invitation for a new company",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.client.RequestInvitation(cmd.Context(), email, company)
			if err != nil {
				return err
			}
			fmt.Println(resp.Message)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "contact email")
	cmd.Flags().StringVar(&company, "company", "", "company name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("company")
	return cmd
}

func newInvitationsValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <token>",
		Short: "Check an invitation token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			invitation, err := a.client.ValidateInvitation(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(invitation)
		},
	}
}

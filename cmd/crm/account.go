package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAccountCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage the agent profile and company",
	}
	cmd.AddCommand(
		newAccountShowCmd(a),
		newAccountRenameCmd(a),
		newAccountCompanyCmd(a),
	)
	return cmd
}

// sessionAgentID resolves the agent to operate on: explicit argument
// wins, otherwise the signed-in agent.
func sessionAgentID(a *app, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if agent := a.session.Agent(); agent != nil {
		return agent.ID, nil
	}
	return "", fmt.Errorf("no agent: pass an id or sign in")
}

func newAccountShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show [agent-id]",
		Short: "Show an agent profile",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireAuth(); err != nil {
				return err
			}
			id, err := sessionAgentID(a, args)
			if err != nil {
				return err
			}
			agent, err := a.account.AgentProfile(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(agent)
		},
	}
}

func newAccountRenameCmd(a *app) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "rename [agent-id]",
		Short: "Change an agent's display name",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireAuth(); err != nil {
				return err
			}
			id, err := sessionAgentID(a, args)
			if err != nil {
				return err
			}
			agent, err := a.account.Rename(cmd.Context(), id, name)
			if err != nil {
				return err
			}
			return printJSON(agent)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "new display name")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newAccountCompanyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "company [company-id]",
		Short: "Show the company record",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireAuth(); err != nil {
				return err
			}
			var flag string
			if len(args) > 0 {
				flag = args[0]
			}
			id, err := a.companyID(flag)
			if err != nil {
				return err
			}
			company, err := a.account.Company(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(company)
		},
	}
}

package main

import (
	"github.com/casaflow/crm-cli-go/internal/domain"

	"github.com/spf13/cobra"
)

func newLeadsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leads",
		Short: "Manage leads",
	}
	cmd.AddCommand(
		newLeadsListCmd(a),
		newLeadsGetCmd(a),
		newLeadsCreateCmd(a),
		newLeadsUpdateCmd(a),
	)
	return cmd
}

func newLeadsListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all leads",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireAuth(); err != nil {
				return err
			}
			leads, err := a.client.ListLeads(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(leads)
		},
	}
}

func newLeadsGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one lead",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireAuth(); err != nil {
				return err
			}
			lead, err := a.client.GetLead(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(lead)
		},
	}
}

func leadFlags(cmd *cobra.Command, lead *domain.Lead) {
	cmd.Flags().StringVar(&lead.Name, "name", "", "lead name")
	cmd.Flags().StringVar(&lead.Email, "email", "", "email address")
	cmd.Flags().StringVar(&lead.Phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&lead.Status, "status", "", "pipeline status")
	cmd.Flags().StringVar(&lead.Source, "source", "", "acquisition source")
	cmd.Flags().Float64Var(&lead.Budget, "budget", 0, "budget in EUR")
	cmd.Flags().StringVar(&lead.Zone, "zone", "", "preferred zone")
	cmd.Flags().StringVar(&lead.PropertyType, "property-type", "", "preferred property type")
	cmd.Flags().IntVar(&lead.Rooms, "rooms", 0, "minimum rooms")
	cmd.Flags().BoolVar(&lead.Parking, "parking", false, "needs parking")
	cmd.Flags().StringVar(&lead.Notes, "notes", "", "free-form notes")
}

func newLeadsCreateCmd(a *app) *cobra.Command {
	var lead domain.Lead

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a lead",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireAuth(); err != nil {
				return err
			}
			created, err := a.client.CreateLead(cmd.Context(), &lead)
			if err != nil {
				return err
			}
			return printJSON(created)
		},
	}
	leadFlags(cmd, &lead)
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newLeadsUpdateCmd(a *app) *cobra.Command {
	var lead domain.Lead

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a lead (only the given flags are sent)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireAuth(); err != nil {
				return err
			}
			return a.client.UpdateLead(cmd.Context(), args[0], &lead)
		},
	}
	leadFlags(cmd, &lead)
	return cmd
}

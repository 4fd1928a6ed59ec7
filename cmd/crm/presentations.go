package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPresentationsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "presentations",
		Short: "Build and share property presentations",
	}
	cmd.AddCommand(
		newPresentationsMatchesCmd(a),
		newPresentationsCreateCmd(a),
		newPresentationsShowCmd(a),
	)
	return cmd
}

func newPresentationsMatchesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "matches <lead-id>",
		Short: "Show a lead together with its matching properties",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireAuth(); err != nil {
				return err
			}
			presentation, err := a.presenter.Compose(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(presentation)
		},
	}
}

func newPresentationsCreateCmd(a *app) *cobra.Command {
	var propertyIDs []string

	cmd := &cobra.Command{
		Use:   "create <lead-id>",
		Short: "Create a shareable presentation for a lead",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireAuth(); err != nil {
				return err
			}
			resp, err := a.presenter.Share(cmd.Context(), args[0], propertyIDs)
			if err != nil {
				return err
			}
			fmt.Printf("Share link: %s\n", resp.URL)
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&propertyIDs, "property", nil, "property id (repeatable)")
	_ = cmd.MarkFlagRequired("property")
	return cmd
}

func newPresentationsShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <token>",
		Short: "Show a shared presentation (no sign-in needed)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presentation, err := a.presenter.Public(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(presentation)
		},
	}
}

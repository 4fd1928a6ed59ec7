package main

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/casaflow/crm-cli-go/internal/domain"
	"github.com/casaflow/crm-cli-go/internal/oauth"

	"github.com/spf13/cobra"
)

func newEmailCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "email",
		Short: "Manage the company's inbound email integration",
	}
	cmd.AddCommand(
		newEmailShowCmd(a),
		newEmailSetCmd(a, "set", "Create the IMAP configuration", false),
		newEmailSetCmd(a, "update", "Update the IMAP configuration", true),
		newEmailDeleteCmd(a),
		newEmailTestCmd(a),
		newEmailToggleCmd(a, "enable", true),
		newEmailToggleCmd(a, "disable", false),
		newEmailConnectCmd(a),
		newEmailDisconnectCmd(a),
	)
	cmd.PersistentFlags().String("company", "", "company id (defaults to the signed-in agent's company)")
	return cmd
}

func emailCompanyID(a *app, cmd *cobra.Command) (string, error) {
	if err := a.requireAuth(); err != nil {
		return "", err
	}
	flag, _ := cmd.Flags().GetString("company")
	return a.companyID(flag)
}

func newEmailShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			companyID, err := emailCompanyID(a, cmd)
			if err != nil {
				return err
			}
			cfg, err := a.client.GetEmailConfig(cmd.Context(), companyID)
			if err != nil {
				return err
			}
			if cfg == nil {
				fmt.Println("No email configuration yet. Run 'crm email set' to create one.")
				return nil
			}
			return printJSON(cfg)
		},
	}
}

func newEmailSetCmd(a *app, use, short string, update bool) *cobra.Command {
	var req domain.EmailConfigRequest

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			companyID, err := emailCompanyID(a, cmd)
			if err != nil {
				return err
			}

			var cfg *domain.EmailConfig
			if update {
				cfg, err = a.client.UpdateEmailConfig(cmd.Context(), companyID, req)
			} else {
				cfg, err = a.client.CreateEmailConfig(cmd.Context(), companyID, req)
			}
			if err != nil {
				return err
			}
			return printJSON(cfg)
		},
	}
	cmd.Flags().StringVar(&req.IMAPHost, "host", "", "IMAP host")
	cmd.Flags().IntVar(&req.IMAPPort, "port", 993, "IMAP port")
	cmd.Flags().StringVar(&req.IMAPUsername, "username", "", "IMAP username")
	cmd.Flags().StringVar(&req.IMAPPassword, "password", "", "IMAP password")
	cmd.Flags().StringVar(&req.InboxFolder, "folder", "INBOX", "folder to poll")
	cmd.Flags().IntVar(&req.PollIntervalSecs, "poll-interval", 300, "poll interval in seconds")
	if !update {
		_ = cmd.MarkFlagRequired("host")
		_ = cmd.MarkFlagRequired("username")
		_ = cmd.MarkFlagRequired("password")
	}
	return cmd
}

func newEmailDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete",
		Short: "Remove the configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			companyID, err := emailCompanyID(a, cmd)
			if err != nil {
				return err
			}
			if err := a.client.DeleteEmailConfig(cmd.Context(), companyID); err != nil {
				return err
			}
			fmt.Println("Email configuration removed.")
			return nil
		},
	}
}

func newEmailTestCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "test",
		Short: "Test the IMAP connection",
		RunE: func(cmd *cobra.Command, args []string) error {
			companyID, err := emailCompanyID(a, cmd)
			if err != nil {
				return err
			}
			result, err := a.client.TestEmailConfig(cmd.Context(), companyID)
			if err != nil {
				return err
			}
			if result.Success {
				fmt.Println("Connection OK.")
			} else {
				fmt.Printf("Connection failed: %s\n", result.Message)
			}
			return nil
		},
	}
}

func newEmailToggleCmd(a *app, use string, enabled bool) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: use + " inbound email polling",
		RunE: func(cmd *cobra.Command, args []string) error {
			companyID, err := emailCompanyID(a, cmd)
			if err != nil {
				return err
			}
			if err := a.client.ToggleEmailConfig(cmd.Context(), companyID, enabled); err != nil {
				return err
			}
			if enabled {
				fmt.Println("Email polling enabled.")
			} else {
				fmt.Println("Email polling disabled.")
			}
			return nil
		},
	}
}

func newEmailConnectCmd(a *app) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "connect",
		Short: "Connect a Gmail account via OAuth",
		Long: "Starts a local listener, prints the consent URL to open in a browser " +
			"and waits for the backend to redirect back with the outcome.",
		RunE: func(cmd *cobra.Command, args []string) error {
			companyID, err := emailCompanyID(a, cmd)
			if err != nil {
				return err
			}

			listener, err := oauth.NewListener(a.cfg.OAuthCallbackPort, a.logger)
			if err != nil {
				return err
			}

			consent := a.cfg.APIBaseURL + "/auth/google?" + url.Values{
				"companyId":   {companyID},
				"redirectUri": {listener.RedirectURL()},
			}.Encode()
			fmt.Printf("Open this URL in your browser to grant access:\n\n  %s\n\nWaiting for the callback...\n", consent)

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			result, err := listener.Wait(ctx)
			if err != nil {
				return err
			}
			if result.Status != "success" {
				return fmt.Errorf("gmail connection failed: %s", result.Detail)
			}
			fmt.Println("Gmail account connected.")
			return nil
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "how long to wait for the browser callback")
	return cmd
}

func newEmailDisconnectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "disconnect",
		Short: "Disconnect the Gmail account",
		RunE: func(cmd *cobra.Command, args []string) error {
			companyID, err := emailCompanyID(a, cmd)
			if err != nil {
				return err
			}
			if err := a.client.DisconnectGmail(cmd.Context(), companyID); err != nil {
				return err
			}
			fmt.Println("Gmail account disconnected.")
			return nil
		},
	}
}

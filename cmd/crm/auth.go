package main

import (
	"fmt"
	"time"

	"github.com/casaflow/crm-cli-go/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newAuthCmds(a *app) []*cobra.Command {
	return []*cobra.Command{
		newLoginCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
		newRegisterCmd(a),
		newForgotPasswordCmd(a),
		newResetPasswordCmd(a),
		newValidateResetTokenCmd(a),
	}
}

func newLoginCmd(a *app) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and persist the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.client.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			if err := a.session.Login(resp.Token, resp.Agent); err != nil {
				return err
			}
			a.logger.Info("signed in", zap.String("agent_id", resp.Agent.ID))
			fmt.Printf("Signed in as %s (%s)\n", resp.Agent.Name, resp.Agent.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "agent email")
	cmd.Flags().StringVar(&password, "password", "", "agent password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session and remove it from disk",
		RunE: func(cmd *cobra.Command, args []string) error {
			a.session.Logout()
			fmt.Println("Signed out.")
			return nil
		},
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in agent",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireAuth(); err != nil {
				return err
			}

			out := map[string]any{
				"agent": a.session.Agent(),
			}
			// Claims are shown for operator convenience only; the
			// token is not verified here, the backend does that.
			if claims := tokenClaims(a.session.Token()); claims != nil {
				out["token"] = claims
			}
			return printJSON(out)
		},
	}
}

func tokenClaims(token string) map[string]any {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return nil
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil
	}

	out := map[string]any{}
	if sub, err := claims.GetSubject(); err == nil && sub != "" {
		out["subject"] = sub
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out["expiresAt"] = exp.Format(time.RFC3339)
		out["expired"] = time.Now().After(exp.Time)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func newRegisterCmd(a *app) *cobra.Command {
	var invitationToken, name, email, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new agent with an invitation token",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.client.RegisterWithInvitation(cmd.Context(), invitationToken, domain.RegisterRequest{
				Name:     name,
				Email:    email,
				Password: password,
			})
			if err != nil {
				return err
			}
			if err := a.session.Login(resp.Token, resp.Agent); err != nil {
				return err
			}
			fmt.Printf("Welcome, %s. You are signed in.\n", resp.Agent.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&invitationToken, "invitation-token", "", "invitation token from your email")
	cmd.Flags().StringVar(&name, "name", "", "full name")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password")
	_ = cmd.MarkFlagRequired("invitation-token")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newForgotPasswordCmd(a *app) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "forgot-password",
		Short: "Request a password reset email",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.client.ForgotPassword(cmd.Context(), email)
			if err != nil {
				return err
			}
			fmt.Println(resp.Message)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newResetPasswordCmd(a *app) *cobra.Command {
	var token, password string

	cmd := &cobra.Command{
		Use:   "reset-password",
		Short: "Set a new password with a reset token",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.client.ResetPassword(cmd.Context(), token, password)
			if err != nil {
				return err
			}
			fmt.Println(resp.Message)
			return nil
		},
	}
	cmd.Flags().StringVar(&token, "token", "", "reset token from the email link")
	cmd.Flags().StringVar(&password, "password", "", "new password")
	_ = cmd.MarkFlagRequired("token")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newValidateResetTokenCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate-reset-token <token>",
		Short: "Check whether a password reset token is still valid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.client.ValidateResetToken(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if resp.Message != "" {
				fmt.Println(resp.Message)
			} else {
				fmt.Println("Token is valid.")
			}
			return nil
		},
	}
}

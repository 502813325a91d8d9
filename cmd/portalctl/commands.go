package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/Adda-Baaj/portal-client/internal/app"
	"github.com/Adda-Baaj/portal-client/internal/config"
	"github.com/Adda-Baaj/portal-client/internal/logger"
	"github.com/Adda-Baaj/portal-client/pkg/api/user"
	"github.com/Adda-Baaj/portal-client/pkg/httpclient"
)

// cli carries the runtime shared by subcommands.
type cli struct {
	portal *app.Portal
}

func newRootCmd() (*cobra.Command, *cli) {
	c := &cli{}
	root := &cobra.Command{
		Use:           "portalctl",
		Short:         "Command line client for the portal API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			log, err := logger.Init(cfg)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			logger.DebugObj("portalctl starting", "config", cfg)

			c.portal, err = app.NewPortal(cmd.Context(), cfg, log)
			if err != nil {
				return fmt.Errorf("init portal: %w", err)
			}
			return nil
		},
	}

	root.AddCommand(c.loginCmd(), c.loginRawCmd(), c.infoCmd(), c.logoutCmd())
	return root, c
}

// close releases the session store and flushes logs. It is safe to call when
// the pre-run hook never built the portal.
func (c *cli) close() error {
	defer logger.Close()
	if c.portal == nil {
		return nil
	}
	return c.portal.Close()
}

func (c *cli) loginCmd() *cobra.Command {
	var data user.LoginData
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := promptCredentials(&data); err != nil {
				return err
			}
			res, err := c.portal.Login(cmd.Context(), data)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
	bindCredentialFlags(cmd, &data)
	return cmd
}

func (c *cli) loginRawCmd() *cobra.Command {
	var data user.LoginData
	cmd := &cobra.Command{
		Use:   "login-raw",
		Short: "Sign in on the bare transport and print the undecoded result",
		Long: "login-raw skips envelope unwrapping and notifications. " +
			"The session is not stored.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := promptCredentials(&data); err != nil {
				return err
			}
			res, err := c.portal.Users().LoginRaw(cmd.Context(), data)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
	bindCredentialFlags(cmd, &data)
	return cmd
}

func (c *cli) infoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			info, err := c.portal.Users().GetUserInfo(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), info)
		},
	}
}

func (c *cli) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.portal.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "logged out")
			return nil
		},
	}
}

func bindCredentialFlags(cmd *cobra.Command, data *user.LoginData) {
	cmd.Flags().StringVarP(&data.Username, "username", "u", "", "account name")
	cmd.Flags().StringVarP(&data.Password, "password", "p", "", "account password (prompted when empty)")
}

func promptCredentials(data *user.LoginData) error {
	var qs []*survey.Question
	if strings.TrimSpace(data.Username) == "" {
		qs = append(qs, &survey.Question{
			Name:     "username",
			Prompt:   &survey.Input{Message: "Username:"},
			Validate: survey.Required,
		})
	}
	if data.Password == "" {
		qs = append(qs, &survey.Question{
			Name:     "password",
			Prompt:   &survey.Password{Message: "Password:"},
			Validate: survey.Required,
		})
	}
	if len(qs) == 0 {
		return nil
	}

	answers := struct {
		Username string `survey:"username"`
		Password string `survey:"password"`
	}{Username: data.Username, Password: data.Password}
	if err := survey.Ask(qs, &answers); err != nil {
		return fmt.Errorf("read credentials: %w", err)
	}
	data.Username = strings.TrimSpace(answers.Username)
	data.Password = answers.Password
	return nil
}

func printJSON(w io.Writer, v any) error {
	out, err := httpclient.JSON.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

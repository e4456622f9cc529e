package cmd

import (
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var loginCmd = &cobra.Command{
	Use:   "login <email>",
	Short: "Log in to the HR Partner backend and persist the session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tk, err := newToolkit()
		if err != nil {
			return err
		}

		password, err := askPassword()
		if err != nil {
			return err
		}

		user, err := tk.session.Login(cmd.Context(), tk.client, args[0], password)
		if err != nil {
			return err
		}

		tk.logger.Info("logged in", zap.String("email", user.Email))
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the persisted session",
	RunE: func(_ *cobra.Command, _ []string) error {
		tk, err := newToolkit()
		if err != nil {
			return err
		}

		tk.session.Logout()
		tk.logger.Info("logged out")
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register <email>",
	Short: "Register a new account (does not log in)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tk, err := newToolkit()
		if err != nil {
			return err
		}

		name, _ := cmd.Flags().GetString("name")

		password, err := askPassword()
		if err != nil {
			return err
		}

		if err := tk.session.Register(cmd.Context(), tk.client, name, args[0], password); err != nil {
			return err
		}

		tk.logger.Info("registered", zap.String("email", args[0]))
		fmt.Println("Account created. Run `hrp login` to sign in.")
		return nil
	},
}

func askPassword() (string, error) {
	prompt := promptui.Prompt{
		Label: "Password",
		Mask:  '*',
	}

	return prompt.Run()
}

func init() {
	registerCmd.Flags().String("name", "", "display name (defaults to the email local part)")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(registerCmd)
}

package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/reelkeeper/session"
)

var (
	email     string
	password  string
	username  string
	firstName string
	lastName  string
)

// loginCmd represents the login command
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and remember the session",
	RunE:  runLogin,
}

// registerCmd represents the register command
var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and sign in",
	RunE:  runRegister,
}

// logoutCmd represents the logout command
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and forget the stored session",
	RunE:  runLogout,
}

// whoamiCmd represents the whoami command
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	RunE:  runWhoami,
}

func init() {
	loginCmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	loginCmd.Flags().StringVarP(&password, "password", "p", "", "account password (prompted when omitted)")

	registerCmd.Flags().StringVarP(&username, "username", "u", "", "username")
	registerCmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	registerCmd.Flags().StringVarP(&password, "password", "p", "", "account password (prompted when omitted)")
	registerCmd.Flags().StringVar(&firstName, "first-name", "", "first name")
	registerCmd.Flags().StringVar(&lastName, "last-name", "", "last name")

	rootCmd.AddCommand(loginCmd, registerCmd, logoutCmd, whoamiCmd)
}

// prompt reads a line from the command's input when value is empty
func prompt(cmd *cobra.Command, label, value string) (string, error) {
	if value != "" {
		return value, nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: ", label)
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	line = strings.TrimSpace(line)
	if line == "" {
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", strings.ToLower(label), err)
		}
		return "", fmt.Errorf("%s is required", strings.ToLower(label))
	}
	return line, nil
}

func runLogin(cmd *cobra.Command, args []string) error {
	if email == "" {
		return fmt.Errorf("--email is required")
	}
	pw, err := prompt(cmd, "Password", password)
	if err != nil {
		return err
	}

	message, err := manager.Login(cmd.Context(), email, pw)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	printMessage(cmd, message, "Login successful")
	fmt.Fprintf(cmd.OutOrStdout(), "Welcome back, %s!\n", sess.User().DisplayName())
	return nil
}

func runRegister(cmd *cobra.Command, args []string) error {
	if username == "" || email == "" {
		return fmt.Errorf("--username and --email are required")
	}
	pw, err := prompt(cmd, "Password", password)
	if err != nil {
		return err
	}

	message, err := manager.Register(cmd.Context(), session.RegisterRequest{
		Username:  username,
		Email:     email,
		Password:  pw,
		FirstName: firstName,
		LastName:  lastName,
	})
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	printMessage(cmd, message, "Registration successful")
	fmt.Fprintf(cmd.OutOrStdout(), "Welcome, %s!\n", sess.User().DisplayName())
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	manager.Logout()
	lib.Reset()
	fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	if !sess.IsAuthenticated() {
		fmt.Fprintln(cmd.OutOrStdout(), "Not logged in")
		return nil
	}

	user := sess.User()
	fmt.Fprintf(cmd.OutOrStdout(), "%s <%s>\n", user.DisplayName(), user.Email)
	return nil
}

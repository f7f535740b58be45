package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"siscraper/pkg/auth"
	"siscraper/pkg/ui"
)

// authCmd represents the auth command
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage Social Insight credentials",
	Long: `Manage the stored Social Insight account credentials.

Credentials are stored using:
  - System keychain (when available)
  - Encrypted file with PBKDF2 key derivation
  - Legacy dotfiles (.si_id / .si_pass, read only as a fallback)

Environment variables SISCRAPER_EMAIL and SISCRAPER_PASSWORD take
precedence over every store.

Never share your credentials or config files!`,
}

// loginCmd represents the auth login command
var loginCmd = &cobra.Command{
	Use:   "login [email]",
	Short: "Store Social Insight credentials securely",
	Long: `Store the Social Insight account credentials in the system keychain,
falling back to an encrypted file.

You will be prompted for:
  - Account email (if not provided as an argument)
  - Account password (hidden as you type)

These are the same credentials you use to sign in to
social-admin.userlocal.jp in a browser.`,
	Example: `  # Interactive login
  siscraper auth login

  # Login with the email given up front
  siscraper auth login you@example.com`,
	Args: cobra.MaximumNArgs(1),
	Run:  runLogin,
}

// logoutCmd represents the auth logout command
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove stored credentials",
	Long: `Remove the stored Social Insight credentials from every store that
holds them: keychain, encrypted file, and legacy dotfiles.`,
	Args: cobra.NoArgs,
	Run:  runLogout,
}

// showCmd represents the auth show command
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the stored account",
	Long:  `Show the stored Social Insight account with the password masked.`,
	Args:  cobra.NoArgs,
	Run:   runShow,
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(loginCmd)
	authCmd.AddCommand(logoutCmd)
	authCmd.AddCommand(showCmd)
}

func runLogin(cmd *cobra.Command, args []string) {
	manager, err := auth.NewManager()
	if err != nil {
		ui.PrintError("Failed to initialize credential manager", err.Error())
		os.Exit(1)
	}

	var email string
	if len(args) > 0 {
		email = strings.TrimSpace(args[0])
	}

	// Warn before replacing persisted credentials. Environment
	// variables are not a store, so they don't count here.
	if existing, source, err := manager.Resolve(); err == nil && source != "environment" {
		reader := bufio.NewReader(os.Stdin)
		fmt.Printf("Credentials for %s already stored (%s). Update? (y/N): ", existing.Email, source)
		input, _ := reader.ReadString('\n')
		if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(input)), "y") {
			return
		}
		fmt.Println()
	}

	account, err := promptForAccount(email)
	if err != nil {
		ui.PrintError("Failed to read credentials", err.Error())
		os.Exit(1)
	}

	if err := manager.Store(account); err != nil {
		ui.PrintError("Failed to store credentials", err.Error())
		os.Exit(1)
	}

	ui.PrintSuccess("Credentials stored: " + account.Email)

	fmt.Println("\nQuick start:")
	fmt.Println("  siscraper fetch <keyword> <start_date> <end_date>")
	fmt.Println("\nExample:")
	fmt.Println("  siscraper fetch 渋谷 2024-01-01 2024-01-08")
}

func runLogout(cmd *cobra.Command, args []string) {
	manager, err := auth.NewManager()
	if err != nil {
		ui.PrintError("Failed to initialize credential manager", err.Error())
		os.Exit(1)
	}

	account, _, err := manager.Resolve()
	if err != nil {
		ui.PrintInfo("No stored credentials", "Nothing to remove")
		return
	}

	reader := bufio.NewReader(os.Stdin)
	fmt.Printf("Remove credentials for '%s'? (y/N): ", account.Email)
	input, _ := reader.ReadString('\n')
	if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(input)), "y") {
		return
	}

	if err := manager.Delete(); err != nil {
		ui.PrintError("Failed to remove credentials", err.Error())
		os.Exit(1)
	}
	ui.PrintSuccess("Credentials removed: " + account.Email)
}

func runShow(cmd *cobra.Command, args []string) {
	manager, err := auth.NewManager()
	if err != nil {
		ui.PrintError("Failed to initialize credential manager", err.Error())
		os.Exit(1)
	}

	account, source, err := manager.Resolve()
	if err != nil {
		ui.PrintInfo("No stored credentials", "Use 'siscraper auth login' to store them")
		return
	}

	sanitized := auth.SanitizeAccount(account)

	ui.PrintHighlight("Stored Account")
	fmt.Println()
	fmt.Printf("  Email:    %s\n", sanitized.Email)
	fmt.Printf("  Password: %s\n", sanitized.Password)
	fmt.Printf("  Source:   %s\n", source)
	if !sanitized.LastModified.IsZero() {
		fmt.Printf("  Modified: %s\n", sanitized.LastModified.Format("2006-01-02 15:04:05"))
	}
}

// promptForAccount interactively reads email and password. The email
// may be pre-filled; the password is read without echo.
func promptForAccount(email string) (*auth.Account, error) {
	reader := bufio.NewReader(os.Stdin)

	for email == "" {
		fmt.Print("Social Insight email: ")
		input, err := reader.ReadString('\n')
		if err != nil {
			return nil, err
		}
		email = strings.TrimSpace(input)
	}

	var password string
	for password == "" {
		fmt.Print("Password (hidden): ")
		p, err := readPassword()
		if err != nil {
			return nil, err
		}
		password = p
	}

	return &auth.Account{Email: email, Password: password}, nil
}

// readPassword reads a password from stdin without echoing
func readPassword() (string, error) {
	// Read without echo on a real terminal
	if term.IsTerminal(int(syscall.Stdin)) {
		password, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err == nil {
			return strings.TrimSpace(string(password)), nil
		}
	}

	// Fallback to regular input for pipes
	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(input), nil
}

package auth

import (
	"fmt"
	"strings"
)

// ShowCredentialGuide explains where login credentials come from and
// how to set them up
func ShowCredentialGuide() {
	fmt.Println(strings.Repeat("=", 70))
	fmt.Println("SOCIAL INSIGHT CREDENTIALS")
	fmt.Println(strings.Repeat("=", 70))
	fmt.Println()

	fmt.Println("The scraper logs in to social-admin.userlocal.jp with the email")
	fmt.Println("and password of your Social Insight account. Credentials are")
	fmt.Println("looked up in this order, first hit wins:")
	fmt.Println()

	fmt.Println("  1. Environment    SISCRAPER_EMAIL / SISCRAPER_PASSWORD")
	fmt.Println("  2. System keyring stored via 'siscraper auth login'")
	fmt.Println("  3. Encrypted file ~/.config/siscraper/credentials.enc")
	fmt.Println("  4. Legacy files   .si_id / .si_pass in the working directory")
	fmt.Println()

	fmt.Println("If none of these answer, the fetch command prompts interactively")
	fmt.Println("(the password is read without echo).")
	fmt.Println()

	fmt.Println("To store credentials once and stop being prompted:")
	fmt.Println()
	fmt.Println("  siscraper auth login")
	fmt.Println()

	fmt.Println("SECURITY:")
	fmt.Println("  - The password is never printed or logged, in any mode")
	fmt.Println("  - Prefer the keyring or encrypted store over the legacy")
	fmt.Println("    plaintext dotfiles")
	fmt.Println()
	fmt.Println(strings.Repeat("=", 70))
	fmt.Println()
}

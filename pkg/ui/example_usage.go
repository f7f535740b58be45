// Package ui provides ANSI terminal output for the acquisition CLI
// This file demonstrates example usage of the UI components
package ui

/*
Example usage of the UI components:

// Terminal colors and output
ui.PrintLogo()                                   // Print ASCII logo
ui.PrintInfo("Keyword", "渋谷")                  // Cyan label, yellow value
ui.PrintSuccess("Acquisition completed")         // Green success message
ui.PrintError("Login failed", err)               // Red error message
ui.PrintWarning("Settle window exceeded")        // Yellow warning message
ui.PrintHighlight("[FETCHING]")                  // Magenta highlight message

// Per-day progress over a known range
progress := ui.NewRunProgress(os.Stdout, "渋谷", 31)
progress.Update(ui.DaySnapshot{
    Date:       "2024-01-05",
    DaysWalked: 5,
    Fetches:    4,
    CacheHits:  1,
})
progress.Complete()                              // Closing summary lines

// Notifications (cross-platform)
notifier := ui.NewNotifier()
notifier.SendSuccess("siscraper", "渋谷: 744 points acquired")
notifier.SendError("siscraper", "run aborted: login failed")

// Direct color usage
fmt.Printf("%s: %s\n", ui.Cyan("Keyword"), ui.Yellow("渋谷"))
fmt.Println(ui.Green("✓ Done"))
fmt.Println(ui.Red("✗ Failed"))
*/

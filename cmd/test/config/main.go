package main

import (
	"fmt"

	"go-jobsearch-automation/internal/config"
)

func main() {
	fmt.Println("🔧 Testing config loading...")
	cfg := config.Load()
	fmt.Printf("✅ Config loaded successfully!\n")
	fmt.Printf("   Credentials: %s\n", cfg.Credentials())
	fmt.Printf("   Search Term: %q\n", cfg.SearchTerm)
	fmt.Printf("   Landing URL: %s\n", cfg.LandingURL)
	fmt.Printf("   Jobs URL: %s\n", cfg.JobsURL)
	fmt.Printf("   Browser: %s (headless=%v)\n", cfg.Browser.Driver, cfg.Browser.Headless)
	fmt.Printf("   Timeouts: wait=%v poll=%v login=%v run=%v\n", cfg.Timeouts.Wait, cfg.Timeouts.PollInterval, cfg.Timeouts.LoginLandmark, cfg.Timeouts.Run)
	fmt.Printf("   Max Attempts: %d\n", cfg.MaxAttempts)
	fmt.Printf("   Telegram enabled: %v\n", cfg.TelegramEnabled())
}

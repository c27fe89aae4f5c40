package main

import (
	"fmt"
	"log"
	"os"

	"go-jobsearch-automation/internal/secrets"

	"github.com/joho/godotenv"
)

// Stores or removes the LinkedIn password in the OS keychain.
//
//	go run ./cmd/test/keyring set you@example.com   (reads LINKEDIN_PASSWORD)
//	go run ./cmd/test/keyring check you@example.com
//	go run ./cmd/test/keyring delete you@example.com
func main() {
	_ = godotenv.Load()

	if len(os.Args) < 3 {
		log.Fatalf("usage: %s set|check|delete <email>", os.Args[0])
	}
	action, account := os.Args[1], secrets.KeyringAccount(os.Args[2])

	switch action {
	case "set":
		if err := secrets.SetLinkedInPassword(account, os.Getenv("LINKEDIN_PASSWORD")); err != nil {
			log.Fatalf("❌ Failed to store password: %v", err)
		}
		fmt.Printf("🔐 Password stored for %s\n", account)
	case "check":
		if _, err := secrets.GetLinkedInPassword(account); err != nil {
			log.Fatalf("❌ %v", err)
		}
		fmt.Printf("✅ Password found for %s\n", account)
	case "delete":
		if err := secrets.DeleteLinkedInPassword(account); err != nil {
			log.Fatalf("❌ Failed to delete password: %v", err)
		}
		fmt.Printf("🧹 Password removed for %s\n", account)
	default:
		log.Fatalf("unknown action %q", action)
	}
}

package linkedin

import (
	"context"
	"fmt"
	"log"

	"go-jobsearch-automation/internal/browser"
	"go-jobsearch-automation/internal/config"
)

// Authenticator fills the landing page login form.
// The form must already be in the document; nothing here waits or retries.
type Authenticator struct {
	driver  browser.Driver
	locator Locator
}

func NewAuthenticator(d browser.Driver, locator Locator) *Authenticator {
	return &Authenticator{driver: d, locator: locator}
}

func (a *Authenticator) Login(ctx context.Context, creds config.Credentials) error {
	log.Printf("🔐 Signing in as %s", creds)

	identifier, err := a.driver.FindElement(ctx, a.locator.IdentifierInput())
	if err != nil {
		return fmt.Errorf("identifier field: %w", err)
	}
	if err := identifier.Type(ctx, creds.Identifier); err != nil {
		return fmt.Errorf("failed to type identifier: %w", err)
	}

	secret, err := a.driver.FindElement(ctx, a.locator.SecretInput())
	if err != nil {
		return fmt.Errorf("secret field: %w", err)
	}
	if err := secret.Type(ctx, creds.Secret); err != nil {
		//never include the secret in the error
		return fmt.Errorf("failed to type secret")
	}

	submit, err := a.driver.FindElement(ctx, a.locator.SubmitButton())
	if err != nil {
		return fmt.Errorf("submit button: %w", err)
	}
	if err := submit.Click(ctx); err != nil {
		return fmt.Errorf("failed to submit login form: %w", err)
	}

	log.Println("📨 Login form submitted.")
	return nil
}

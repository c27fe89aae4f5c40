package main

import (
	"context"
	"log"

	"go-jobsearch-automation/internal/browser"
	"go-jobsearch-automation/internal/config"
	"go-jobsearch-automation/internal/server"
	"go-jobsearch-automation/internal/workflow"
)

// boundedRunner caps every run at the configured run timeout.
type boundedRunner struct {
	wf  *workflow.Workflow
	cfg *config.Config
}

func (b boundedRunner) Run(ctx context.Context, term string) (*workflow.Result, error) {
	ctx, cancel := context.WithTimeout(ctx, b.cfg.Timeouts.Run)
	defer cancel()
	if b.cfg.Browser.Driver == browser.BackendSnapshot {
		return b.wf.Replay(ctx, term)
	}
	return b.wf.Run(ctx, term)
}

func main() {
	cfg := config.Load()

	opener := func(ctx context.Context) (browser.Driver, error) {
		return browser.Open(ctx, browser.Options{
			Backend:      cfg.Browser.Driver,
			Headless:     cfg.Browser.Headless,
			SnapshotPath: cfg.Browser.SnapshotPath,
		})
	}
	runner := boundedRunner{wf: workflow.New(opener, workflow.OptionsFromConfig(cfg)), cfg: cfg}

	r := server.New(runner).Router()

	log.Printf("Server listening on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

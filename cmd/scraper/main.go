package main

import (
	"context"
	"log"
	"os"
	"strings"

	"go-jobsearch-automation/internal/browser"
	"go-jobsearch-automation/internal/config"
	"go-jobsearch-automation/internal/reporter"
	"go-jobsearch-automation/internal/workflow"
)

func main() {
	//a term passed on the command line wins over the configured one
	cfg := config.Load(config.WithSearchTerm(strings.Join(os.Args[1:], " ")))
	log.Printf("🔧 Config loaded. Driver: %s, Credentials: %s", cfg.Browser.Driver, cfg.Credentials())
	term := cfg.SearchTerm

	//setup context with the configured run timeout
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeouts.Run)
	defer cancel()

	reporters := reporter.Multi{reporter.NewConsoleReporter(os.Stdout)}
	var tg *reporter.TelegramReporter
	if cfg.TelegramEnabled() {
		bot, err := reporter.NewTelegramReporter(cfg)
		if err != nil {
			log.Printf("⚠️ Failed to init Telegram Bot: %v. Continuing without it.", err)
		} else {
			log.Println("🤖 Telegram Bot initialized.")
			tg = bot
			reporters = append(reporters, bot)
		}
	}

	log.Println("🚀 Starting job search automation...")

	opener := func(ctx context.Context) (browser.Driver, error) {
		return browser.Open(ctx, browser.Options{
			Backend:      cfg.Browser.Driver,
			Headless:     cfg.Browser.Headless,
			SnapshotPath: cfg.Browser.SnapshotPath,
		})
	}
	wf := workflow.New(opener, workflow.OptionsFromConfig(cfg))

	var (
		result *workflow.Result
		err    error
	)
	if cfg.Browser.Driver == browser.BackendSnapshot {
		result, err = wf.Replay(ctx, term)
	} else {
		result, err = wf.Run(ctx, term)
	}

	publish(ctx, reporters, result)

	if err != nil {
		if tg != nil {
			if sendErr := tg.SendError(err); sendErr != nil {
				log.Printf("⚠️ Failed to send error to Telegram: %v", sendErr)
			}
		}
		log.Fatalf("❌ Job search failed: %v", err)
	}

	log.Println("🏁 Execution finished.")
}

// publish reports whatever was collected, even after the run context expired.
func publish(ctx context.Context, r reporter.Reporter, result *workflow.Result) error {
	err := r.Report(context.WithoutCancel(ctx), result)
	if err != nil {
		log.Printf("⚠️ Failed to report results: %v", err)
	}
	return err
}

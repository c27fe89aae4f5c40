package reporter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go-jobsearch-automation/internal/workflow"
)

// Reporter publishes the outcome of a run.
type Reporter interface {
	Report(ctx context.Context, result *workflow.Result) error
}

// ConsoleReporter prints one block per job followed by a short summary.
type ConsoleReporter struct {
	out io.Writer
}

func NewConsoleReporter(out io.Writer) *ConsoleReporter {
	if out == nil {
		out = os.Stdout
	}
	return &ConsoleReporter{out: out}
}

func (c *ConsoleReporter) Report(_ context.Context, result *workflow.Result) error {
	if result == nil {
		return errors.New("nil result")
	}

	if result.Count != nil {
		fmt.Fprintf(c.out, "Results: %s\n\n", result.Count.Label)
	}

	for _, job := range result.Jobs() {
		fmt.Fprintf(c.out, "Job: %s\n", job.Title)
		fmt.Fprintf(c.out, "Company: %s\n", job.Company)
		fmt.Fprintf(c.out, "Location: %s\n\n", job.Location)
	}

	if result.Report == nil {
		_, err := fmt.Fprintf(c.out, "No jobs extracted for %q.\n", result.Term)
		return err
	}
	_, err := fmt.Fprintf(c.out, "Extracted %d/%d rows for %q.\n", len(result.Report.Jobs), result.Report.Enumerated, result.Term)
	if err != nil {
		return err
	}
	for _, row := range result.Report.Skipped() {
		if _, err := fmt.Fprintf(c.out, "Skipped row %d (%s after %d attempts): %s\n", row.Index, row.Reason, row.Attempts, row.Err); err != nil {
			return err
		}
	}
	return nil
}

// Multi fans a result out to several reporters and joins their errors.
type Multi []Reporter

func (m Multi) Report(ctx context.Context, result *workflow.Result) error {
	var errs []error
	for _, r := range m {
		if err := r.Report(ctx, result); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

package archiverimpl

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/orgball2608/insta-archiver/internal/domain"
	"github.com/orgball2608/insta-archiver/pkg/formatter"
)

// maxReportedFailures bounds the failure lines included in a notification.
const maxReportedFailures = 10

// finish records the run, keeps it as the last run and notifies the channel.
func (a *ArchiverImpl) finish(ctx context.Context, summary *domain.RunSummary) {
	if _, err := a.Runs.Create(ctx, summary); err != nil {
		a.Logger.Error("Failed to record run", "error", err)
	}

	a.lastMu.Lock()
	a.lastRun = summary
	a.lastMu.Unlock()

	a.Logger.Info("Archive run finished",
		"run_id", summary.ID,
		"discovered", summary.Discovered,
		"already_archived", summary.AlreadyArchived,
		"archived", summary.Archived,
		"failed", summary.Failed,
		"skipped_documents", summary.SkippedDocuments,
		"interrupted", summary.Interrupted,
		"duration", summary.Duration())

	if summary.Archived > 0 || summary.Failed > 0 || summary.Interrupted {
		a.Telegram.SendMessageToDefaultChannel(FormatSummary(summary))
	}
}

// FormatSummary renders a run summary as a plain text message.
func FormatSummary(s *domain.RunSummary) string {
	var sb strings.Builder

	outcome := "finished"
	if s.Interrupted {
		outcome = "interrupted"
	}
	if s.ID > 0 {
		fmt.Fprintf(&sb, "📦 Archive run #%d %s after %s\n\n", s.ID, outcome, s.Duration().Round(time.Second))
	} else {
		fmt.Fprintf(&sb, "📦 Archive run %s after %s\n\n", outcome, s.Duration().Round(time.Second))
	}
	fmt.Fprintf(&sb, "Discovered: %s\n", formatter.FormatNumber(s.Discovered))
	fmt.Fprintf(&sb, "Already archived: %s\n", formatter.FormatNumber(s.AlreadyArchived))
	fmt.Fprintf(&sb, "Newly archived: %s\n", formatter.FormatNumber(s.Archived))
	fmt.Fprintf(&sb, "Failed: %s\n", formatter.FormatNumber(s.Failed))
	if s.SkippedDocuments > 0 {
		fmt.Fprintf(&sb, "Unreadable documents: %s\n", formatter.FormatNumber(s.SkippedDocuments))
	}

	writeFailures(&sb, s.Failures)
	return sb.String()
}

// FormatVerifyReport renders a verification report as a plain text message.
func FormatVerifyReport(r *domain.VerifyReport) string {
	var sb strings.Builder

	if r.OK() {
		fmt.Fprintf(&sb, "✅ %s archived posts verified, no problems found\n", formatter.FormatNumber(r.Checked))
		return sb.String()
	}

	fmt.Fprintf(&sb, "⚠️ %s archived posts verified\n\n", formatter.FormatNumber(r.Checked))
	fmt.Fprintf(&sb, "Missing media: %s\n", formatter.FormatNumber(len(r.Faults)))
	fmt.Fprintf(&sb, "Unreadable documents: %s\n", formatter.FormatNumber(r.SkippedDocuments))

	writeFailures(&sb, r.Faults)
	return sb.String()
}

func writeFailures(sb *strings.Builder, failures []domain.PostFailure) {
	if len(failures) == 0 {
		return
	}

	sb.WriteString("\n")
	for i, f := range failures {
		if i == maxReportedFailures {
			fmt.Fprintf(sb, "… and %d more\n", len(failures)-maxReportedFailures)
			break
		}
		fmt.Fprintf(sb, "• %d [%s] %s\n", f.PostID, f.Code, f.Reason)
	}
}

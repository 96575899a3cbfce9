package archiverimpl

import (
	"context"
	"fmt"

	"github.com/orgball2608/insta-archiver/internal/domain"
	"github.com/orgball2608/insta-archiver/pkg/errors"
)

// Run reconciles the remote posts against the local archive and archives the missing ones.
// Failures scoped to a post are recorded in the summary; the remaining posts are still processed.
// When ctx is cancelled mid-run the partial summary is recorded and returned with the error.
func (a *ArchiverImpl) Run(ctx context.Context) (*domain.RunSummary, error) {
	if !a.running.TryLock() {
		return nil, errors.ErrRunInProgress
	}
	defer a.running.Unlock()

	summary := &domain.RunSummary{StartedAt: a.now().UTC()}
	a.Logger.Info("Archive run started")

	if err := a.Archive.CheckStructure(); err != nil {
		return nil, err
	}

	remotePosts, err := a.Remote.ListRemotePosts(ctx)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeRemote, "failed to list remote posts")
	}

	listing, err := a.Archive.ListArchivedPosts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list archived posts: %w", err)
	}

	toArchive := domain.Difference(remotePosts, listing.Posts)

	summary.Discovered = len(domain.NewPostSet(remotePosts))
	summary.ToArchive = len(toArchive)
	summary.AlreadyArchived = summary.Discovered - summary.ToArchive
	summary.SkippedDocuments = len(listing.Skipped)

	a.Logger.Info("Reconciled remote and local posts",
		"remote", summary.Discovered,
		"local", len(listing.Posts),
		"to_archive", summary.ToArchive,
		"skipped_documents", summary.SkippedDocuments)

	for _, post := range toArchive {
		if err := ctx.Err(); err != nil {
			return a.interrupt(ctx, summary, err)
		}
		if post.IsArchived() {
			continue
		}

		err := a.archivePost(ctx, post)
		if err == nil {
			summary.Archived++
			continue
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			a.Logger.Warn("Post not archived, run cancelled", "id", post.ID, "code", post.Code, "error", err)
			return a.interrupt(ctx, summary, ctxErr)
		}
		if !isPostScoped(err) {
			return nil, fmt.Errorf("failed to archive post %d: %w", post.ID, err)
		}

		a.Logger.Warn("Post not archived", "id", post.ID, "code", post.Code, "error", err)
		summary.Failed++
		summary.Failures = append(summary.Failures, domain.PostFailure{
			PostID: post.ID,
			Code:   errors.GetCode(err),
			Reason: err.Error(),
		})
	}

	summary.FinishedAt = a.now().UTC()
	a.finish(ctx, summary)
	return summary, nil
}

// interrupt records the work done before cancellation and returns it alongside cause.
func (a *ArchiverImpl) interrupt(ctx context.Context, summary *domain.RunSummary, cause error) (*domain.RunSummary, error) {
	summary.Interrupted = true
	summary.FinishedAt = a.now().UTC()
	a.finish(context.WithoutCancel(ctx), summary)
	return summary, errors.WrapWithCode(cause, errors.CodeInterrupted, "archive run interrupted")
}

// archivePost downloads every asset of post and then writes its document.
// The first download failure aborts the post; files already written stay in place.
func (a *ArchiverImpl) archivePost(ctx context.Context, post *domain.Post) error {
	dir, err := a.Archive.PostMediaDir(post)
	if err != nil {
		return err
	}

	for _, asset := range post.Assets() {
		if err := a.Fetcher.EnsureDownloaded(ctx, asset, dir); err != nil {
			return err
		}
	}

	post.MarkArchived(a.now())
	if _, err := a.Archive.SavePost(post); err != nil {
		post.RevertArchive()
		return err
	}
	return nil
}

// isPostScoped reports whether err only affects the post being archived.
func isPostScoped(err error) bool {
	var (
		download   *domain.DownloadFailure
		integrity  *domain.IntegrityFault
		collision  *domain.PersistenceCollision
		persisting *domain.PersistenceFailure
	)
	return errors.As(err, &download) ||
		errors.As(err, &integrity) ||
		errors.As(err, &collision) ||
		errors.As(err, &persisting)
}

// Verify reports archived media whose local files are missing.
func (a *ArchiverImpl) Verify(ctx context.Context) (*domain.VerifyReport, error) {
	if !a.running.TryLock() {
		return nil, errors.ErrRunInProgress
	}
	defer a.running.Unlock()

	if err := a.Archive.CheckStructure(); err != nil {
		return nil, err
	}

	listing, err := a.Archive.ListArchivedPosts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list archived posts: %w", err)
	}

	report := &domain.VerifyReport{
		Checked:          len(listing.Posts),
		SkippedDocuments: len(listing.Skipped),
	}

	root := a.Archive.Root()
	for _, post := range listing.Posts {
		for _, asset := range post.Assets() {
			ok, err := asset.IsDownloaded(root)
			if err == nil && ok {
				continue
			}
			if err == nil {
				err = &domain.IntegrityFault{MediaID: asset.ID, Path: "<unset>"}
			}
			report.Faults = append(report.Faults, domain.PostFailure{
				PostID: post.ID,
				Code:   errors.GetCode(err),
				Reason: err.Error(),
			})
		}
	}

	for _, skipped := range listing.Skipped {
		a.Logger.Warn("Archive document could not be read", "path", skipped.Path, "error", skipped.Err)
	}

	a.Logger.Info("Archive verified",
		"checked", report.Checked,
		"faults", len(report.Faults),
		"skipped_documents", report.SkippedDocuments)
	return report, nil
}

func (a *ArchiverImpl) LastRun(ctx context.Context) (*domain.RunSummary, error) {
	a.lastMu.RLock()
	last := a.lastRun
	a.lastMu.RUnlock()

	if last != nil {
		return last, nil
	}
	return a.Runs.Latest(ctx)
}

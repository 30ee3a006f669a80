package digest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"plannerx/internal/domain/entity"
	"plannerx/internal/infra/notifier"
	"plannerx/internal/observability/logging"
	"plannerx/internal/observability/metrics"
	"plannerx/internal/observability/slo"
	"plannerx/internal/repository"
	"plannerx/internal/usecase/news"
)

// Renderer turns a bundle into the HTML email body.
type Renderer interface {
	RenderDigest(bundle *Bundle) (string, error)
}

// RunStats summarizes one batch pass. NewsFallbacks counts delivered
// digests that shipped with the templated news summary instead of the AI
// narrative.
type RunStats struct {
	Success       int
	Errors        int
	Skipped       int
	Total         int
	NewsFallbacks int
	Elapsed       time.Duration
}

// Runner iterates all digest-enabled users sequentially and delivers their
// digests. One user's failure is logged and counted; the pass always
// completes.
type Runner struct {
	Users    repository.UserRepository
	Digests  *Service
	Renderer Renderer
	Mailer   notifier.Mailer
	SMS      notifier.SMSSender
}

// Run executes one full batch pass and returns its counts. It fails only
// when the user list itself cannot be loaded.
func (r *Runner) Run(ctx context.Context) (RunStats, error) {
	start := time.Now()
	slog.Info("starting daily digest job")

	users, err := r.Users.ListDigestEnabled(ctx)
	if err != nil {
		return RunStats{}, fmt.Errorf("Run: ListDigestEnabled: %w", err)
	}

	stats := RunStats{Total: len(users)}
	for _, user := range users {
		if !ShouldSend(user) {
			stats.Skipped++
			slog.Debug("skipping digest", slog.String("email", user.Email))
			continue
		}

		if err := r.processUser(ctx, user, &stats); err != nil {
			stats.Errors++
			slog.Error("digest delivery failed",
				slog.String("email", user.Email),
				slog.Any("error", err))
			continue
		}
		stats.Success++
	}

	stats.Elapsed = time.Since(start)

	slo.UpdateDeliveryRatio(stats.Success, stats.Errors)
	slo.UpdateNewsFallbackRatio(stats.NewsFallbacks, stats.Success)
	slo.UpdateRunDuration(stats.Elapsed.Seconds())

	slog.Info("daily digest job completed",
		slog.Int("success", stats.Success),
		slog.Int("errors", stats.Errors),
		slog.Int("skipped", stats.Skipped),
		slog.Int("total_users", stats.Total),
		slog.Duration("elapsed", stats.Elapsed))
	return stats, nil
}

// processUser builds, renders and delivers one user's digest. A panic in
// any stage is recovered into an error so the batch loop survives it.
func (r *Runner) processUser(ctx context.Context, user *entity.User, stats *RunStats) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("processUser: panic: %v", rec)
		}
	}()

	logger := logging.WithUser(slog.Default(), user.ID)

	buildStart := time.Now()
	bundle, err := r.Digests.BuildDigest(ctx, user)
	if err != nil {
		return err
	}
	metrics.RecordDigestBuilt(time.Since(buildStart))

	html, err := r.Renderer.RenderDigest(bundle)
	if err != nil {
		return fmt.Errorf("processUser: render: %w", err)
	}

	if err := r.Mailer.SendMail(ctx, user.Email, bundle.Subject(), html, ""); err != nil {
		metrics.RecordEmailSent(false)
		return fmt.Errorf("processUser: send: %w", err)
	}
	metrics.RecordEmailSent(true)

	if bundle.News.Narrate == news.StageFellBack {
		stats.NewsFallbacks++
	}

	logger.Info("digest sent", slog.String("email", user.Email))

	// SMS is best-effort after a successful email; its failure does not
	// count against the user.
	if user.SMSEnabled && user.PhoneNumber != "" && r.SMS != nil {
		smsErr := r.SMS.SendSMS(ctx, user.PhoneNumber, bundle.SMSText())
		metrics.RecordSMSSent(smsErr == nil)
		if smsErr != nil {
			logger.Warn("sms delivery failed",
				slog.String("phone", user.PhoneNumber),
				slog.Any("error", smsErr))
		}
	}

	return nil
}

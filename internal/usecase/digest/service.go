// Package digest assembles the per-user daily digest bundle and runs the
// batch delivery job over all digest-enabled users.
package digest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"plannerx/internal/calendar"
	"plannerx/internal/domain/entity"
	"plannerx/internal/repository"
	"plannerx/internal/usecase/news"
)

const (
	// overdueLimit bounds the overdue section of the digest.
	overdueLimit = 5

	// newsHeadlineCount and newsSummaryCount size the two news sections:
	// the headline list and the narrative input.
	newsHeadlineCount = 5
	newsSummaryCount  = 5
)

// NewsProvider supplies the news sections of a digest.
type NewsProvider interface {
	Fetch(ctx context.Context, opts news.FetchOptions) ([]entity.NewsItem, error)
	Summarize(ctx context.Context, items []entity.NewsItem, topN int) news.SummaryResult
}

// NameDayLookup returns the celebrant names for a calendar day.
type NameDayLookup interface {
	Lookup(d time.Time) []string
}

// Bundle is the fully assembled digest for one user on one day. It is
// built fresh on every run and never cached.
type Bundle struct {
	User           *entity.User
	Today          time.Time
	TasksToday     []*entity.Task
	OverdueTasks   []*entity.Task
	EventsToday    []calendar.Occurrence
	BirthdaysToday []*entity.Contact
	NamedaysToday  []*entity.Contact
	NamedayNames   []string
	NewsItems      []entity.NewsItem
	News           news.SummaryResult
	ProjectNames   map[int64]string
}

// ProjectName resolves the project label for a task, or "" when the task
// is unfiled or the project is gone.
func (b *Bundle) ProjectName(t *entity.Task) string {
	if t.ProjectID == nil {
		return ""
	}
	return b.ProjectNames[*t.ProjectID]
}

// Subject returns the localized email subject for the bundle's day.
func (b *Bundle) Subject() string {
	return fmt.Sprintf("Dobrý deň! Váš denný prehľad pre %s", b.Today.Format("02.01.2006"))
}

// SMSText returns the short delivery confirmation for the SMS side-channel.
func (b *Bundle) SMSText() string {
	return fmt.Sprintf("PlannerX: Dnes máte %d úloh a %d udalostí.",
		len(b.TasksToday), len(b.EventsToday))
}

// Service builds digest bundles from the stores and collaborators.
type Service struct {
	Tasks    repository.TaskRepository
	Events   repository.EventRepository
	Contacts repository.ContactRepository
	Projects repository.ProjectRepository
	News     NewsProvider
	NameDays NameDayLookup
	Location *time.Location
	CacheTTL time.Duration

	// Now is the clock; tests override it. Nil means time.Now.
	Now func() time.Time
}

// ShouldSend is the delivery gate: digest enabled and a non-empty email.
// Pure so it can be tested without I/O.
func ShouldSend(user *entity.User) bool {
	return user.DigestEnabled && user.Email != ""
}

// BuildDigest gathers everything for one user into a Bundle. Store errors
// abort the build; degraded news only shortens the bundle.
func (s *Service) BuildDigest(ctx context.Context, user *entity.User) (*Bundle, error) {
	now := s.now().In(s.Location)
	today := calendar.DateOf(now)

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.Location)
	dayEnd := dayStart.AddDate(0, 0, 1)

	tasksToday, err := s.Tasks.ListDueBetween(ctx, user.ID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("BuildDigest: ListDueBetween: %w", err)
	}

	overdue, err := s.Tasks.ListOverdue(ctx, user.ID, dayStart, overdueLimit)
	if err != nil {
		return nil, fmt.Errorf("BuildDigest: ListOverdue: %w", err)
	}

	candidates, err := s.Events.ListDigestCandidates(ctx, user.ID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("BuildDigest: ListDigestCandidates: %w", err)
	}
	// The store returns instants; the expander dates events by wall clock.
	// Shift into the digest timezone so a late-evening UTC anchor lands on
	// the local day it belongs to.
	for _, ev := range candidates {
		ev.StartAt = ev.StartAt.In(s.Location)
		if ev.EndAt != nil {
			end := ev.EndAt.In(s.Location)
			ev.EndAt = &end
		}
	}
	occurrences := calendar.Expand(candidates, today, today)

	contacts, err := s.Contacts.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("BuildDigest: ListByUser: %w", err)
	}

	var birthdays, namedays []*entity.Contact
	for _, c := range contacts {
		if c.HasBirthdayOn(today) {
			birthdays = append(birthdays, c)
		}
		if c.HasNameDayOn(today) {
			namedays = append(namedays, c)
		}
	}

	bundle := &Bundle{
		User:           user,
		Today:          today,
		TasksToday:     tasksToday,
		OverdueTasks:   overdue,
		EventsToday:    occurrences,
		BirthdaysToday: birthdays,
		NamedaysToday:  namedays,
		NamedayNames:   s.NameDays.Lookup(today),
	}

	if err := s.fillProjectNames(ctx, bundle); err != nil {
		return nil, fmt.Errorf("BuildDigest: %w", err)
	}

	s.fillNews(ctx, bundle)
	return bundle, nil
}

// fillProjectNames resolves project labels for the task sections. Skipped
// entirely when no listed task is filed under a project.
func (s *Service) fillProjectNames(ctx context.Context, bundle *Bundle) error {
	filed := false
	for _, t := range bundle.TasksToday {
		if t.ProjectID != nil {
			filed = true
			break
		}
	}
	if !filed {
		for _, t := range bundle.OverdueTasks {
			if t.ProjectID != nil {
				filed = true
				break
			}
		}
	}
	if !filed {
		return nil
	}

	projects, err := s.Projects.ListByUser(ctx, bundle.User.ID)
	if err != nil {
		return fmt.Errorf("fillProjectNames: %w", err)
	}
	bundle.ProjectNames = make(map[int64]string, len(projects))
	for _, p := range projects {
		bundle.ProjectNames[p.ID] = p.Name
	}
	return nil
}

// fillNews populates the two news sections. News failures never fail the
// digest; the sections just come out empty or templated.
func (s *Service) fillNews(ctx context.Context, bundle *Bundle) {
	headlines, err := s.News.Fetch(ctx, news.FetchOptions{
		MaxItems: newsHeadlineCount,
		CacheTTL: s.CacheTTL,
	})
	if err != nil {
		slog.Warn("headline fetch failed, digest continues without news",
			slog.Any("error", err))
	}
	bundle.NewsItems = headlines

	full, err := s.News.Fetch(ctx, news.FetchOptions{FetchAll: true})
	if err != nil {
		slog.Warn("full news fetch failed, summarizing headlines only",
			slog.Any("error", err))
		full = headlines
	}
	bundle.News = s.News.Summarize(ctx, full, newsSummaryCount)
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

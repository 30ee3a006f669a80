package digest

import (
	"context"
	"errors"
	"testing"
	"time"

	"plannerx/internal/calendar"
	"plannerx/internal/domain/entity"
	"plannerx/internal/repository"
	"plannerx/internal/usecase/news"
)

type stubTaskRepo struct {
	repository.TaskRepository
	due     []*entity.Task
	overdue []*entity.Task
	err     error

	gotFrom  time.Time
	gotTo    time.Time
	gotLimit int
}

func (s *stubTaskRepo) ListDueBetween(_ context.Context, _ int64, from, to time.Time) ([]*entity.Task, error) {
	s.gotFrom, s.gotTo = from, to
	return s.due, s.err
}

func (s *stubTaskRepo) ListOverdue(_ context.Context, _ int64, _ time.Time, limit int) ([]*entity.Task, error) {
	s.gotLimit = limit
	return s.overdue, s.err
}

type stubEventRepo struct {
	repository.EventRepository
	candidates []*entity.Event
	err        error
}

func (s *stubEventRepo) ListDigestCandidates(_ context.Context, _ int64, _, _ time.Time) ([]*entity.Event, error) {
	return s.candidates, s.err
}

type stubContactRepo struct {
	repository.ContactRepository
	contacts []*entity.Contact
}

func (s *stubContactRepo) ListByUser(_ context.Context, _ int64) ([]*entity.Contact, error) {
	return s.contacts, nil
}

type stubProjectRepo struct {
	repository.ProjectRepository
	projects []*entity.Project
	calls    int
}

func (s *stubProjectRepo) ListByUser(_ context.Context, _ int64) ([]*entity.Project, error) {
	s.calls++
	return s.projects, nil
}

type stubNews struct {
	items    []entity.NewsItem
	fetchErr error
	result   news.SummaryResult

	fetchCalls []news.FetchOptions
	gotItems   []entity.NewsItem
}

func (s *stubNews) Fetch(_ context.Context, opts news.FetchOptions) ([]entity.NewsItem, error) {
	s.fetchCalls = append(s.fetchCalls, opts)
	return s.items, s.fetchErr
}

func (s *stubNews) Summarize(_ context.Context, items []entity.NewsItem, _ int) news.SummaryResult {
	s.gotItems = items
	return s.result
}

type stubNameDays struct {
	names []string
}

func (s *stubNameDays) Lookup(_ time.Time) []string {
	return s.names
}

func testUser() *entity.User {
	return &entity.User{
		ID:            1,
		UID:           "u-1",
		Email:         "user@example.com",
		DigestEnabled: true,
	}
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func newTestService(tasks *stubTaskRepo, events *stubEventRepo, contacts *stubContactRepo, newsStub *stubNews) *Service {
	prague, _ := time.LoadLocation("Europe/Prague")
	return &Service{
		Tasks:    tasks,
		Events:   events,
		Contacts: contacts,
		Projects: &stubProjectRepo{},
		News:     newsStub,
		NameDays: &stubNameDays{names: []string{"Alexandra"}},
		Location: prague,
		CacheTTL: 12 * time.Hour,
		Now: func() time.Time {
			return time.Date(2026, time.January, 2, 7, 30, 0, 0, time.UTC)
		},
	}
}

func TestShouldSend(t *testing.T) {
	tests := []struct {
		name string
		user entity.User
		want bool
	}{
		{name: "enabled with email", user: entity.User{DigestEnabled: true, Email: "a@b.c"}, want: true},
		{name: "disabled regardless of email", user: entity.User{DigestEnabled: false, Email: "a@b.c"}, want: false},
		{name: "enabled without email", user: entity.User{DigestEnabled: true}, want: false},
		{name: "disabled without email", user: entity.User{}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShouldSend(&tt.user); got != tt.want {
				t.Errorf("ShouldSend() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBuildDigest_TaskWindowIsLocalDay(t *testing.T) {
	tasks := &stubTaskRepo{}
	svc := newTestService(tasks, &stubEventRepo{}, &stubContactRepo{}, &stubNews{})

	_, err := svc.BuildDigest(context.Background(), testUser())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	prague, _ := time.LoadLocation("Europe/Prague")
	wantFrom := time.Date(2026, time.January, 2, 0, 0, 0, 0, prague)
	wantTo := time.Date(2026, time.January, 3, 0, 0, 0, 0, prague)

	if !tasks.gotFrom.Equal(wantFrom) {
		t.Errorf("window start = %v, want %v", tasks.gotFrom, wantFrom)
	}
	if !tasks.gotTo.Equal(wantTo) {
		t.Errorf("window end = %v, want %v", tasks.gotTo, wantTo)
	}
	if tasks.gotLimit != overdueLimit {
		t.Errorf("overdue limit = %d, want %d", tasks.gotLimit, overdueLimit)
	}
}

func TestBuildDigest_ExpandsRepeatingEvents(t *testing.T) {
	// Weekly event anchored four weeks before the digest day, same weekday.
	anchor := time.Date(2025, time.December, 5, 9, 0, 0, 0, time.UTC)
	events := &stubEventRepo{candidates: []*entity.Event{{
		ID:         10,
		UserID:     1,
		Title:      "Stand-up",
		StartAt:    anchor,
		RepeatRule: entity.RepeatWeekly,
	}}}
	svc := newTestService(&stubTaskRepo{}, events, &stubContactRepo{}, &stubNews{})

	bundle, err := svc.BuildDigest(context.Background(), testUser())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(bundle.EventsToday) != 1 {
		t.Fatalf("expected 1 occurrence, got %d", len(bundle.EventsToday))
	}
	want := time.Date(2026, time.January, 2, 0, 0, 0, 0, time.UTC)
	if !bundle.EventsToday[0].Date.Equal(want) {
		t.Errorf("occurrence date = %v, want %v", bundle.EventsToday[0].Date, want)
	}
}

func TestBuildDigest_MidnightLocalEventStaysOnToday(t *testing.T) {
	// Stored as a UTC instant; 2026-01-01 23:30 UTC is 00:30 on the digest
	// day in Europe/Prague.
	events := &stubEventRepo{candidates: []*entity.Event{{
		ID:         11,
		UserID:     1,
		Title:      "Polnočný let",
		StartAt:    time.Date(2026, time.January, 1, 23, 30, 0, 0, time.UTC),
		RepeatRule: entity.RepeatNone,
	}}}
	svc := newTestService(&stubTaskRepo{}, events, &stubContactRepo{}, &stubNews{})

	bundle, err := svc.BuildDigest(context.Background(), testUser())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(bundle.EventsToday) != 1 {
		t.Fatalf("expected 1 occurrence, got %d", len(bundle.EventsToday))
	}
	want := time.Date(2026, time.January, 2, 0, 0, 0, 0, time.UTC)
	if !bundle.EventsToday[0].Date.Equal(want) {
		t.Errorf("occurrence date = %v, want %v", bundle.EventsToday[0].Date, want)
	}
}

func TestBuildDigest_WeeklyAnchorNearMidnightKeepsLocalWeekday(t *testing.T) {
	// 2025-12-04 23:00 UTC is Thursday in UTC but Friday 00:00 in Prague;
	// the digest day 2026-01-02 is a Friday, so the event must recur today.
	events := &stubEventRepo{candidates: []*entity.Event{{
		ID:         12,
		UserID:     1,
		Title:      "Piatková večera",
		StartAt:    time.Date(2025, time.December, 4, 23, 0, 0, 0, time.UTC),
		RepeatRule: entity.RepeatWeekly,
	}}}
	svc := newTestService(&stubTaskRepo{}, events, &stubContactRepo{}, &stubNews{})

	bundle, err := svc.BuildDigest(context.Background(), testUser())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(bundle.EventsToday) != 1 {
		t.Fatalf("expected 1 occurrence, got %d", len(bundle.EventsToday))
	}
	want := time.Date(2026, time.January, 2, 0, 0, 0, 0, time.UTC)
	if !bundle.EventsToday[0].Date.Equal(want) {
		t.Errorf("occurrence date = %v, want %v", bundle.EventsToday[0].Date, want)
	}
}

func TestBuildDigest_BirthdaysAndNamedays(t *testing.T) {
	contacts := &stubContactRepo{contacts: []*entity.Contact{
		{ID: 1, Name: "Janka", BirthdayDate: datePtr(1990, time.January, 2)},
		{ID: 2, Name: "Peter", BirthdayDate: datePtr(1985, time.June, 15)},
		{ID: 3, Name: "Alexandra", NameDayDate: datePtr(2000, time.January, 2)},
	}}
	svc := newTestService(&stubTaskRepo{}, &stubEventRepo{}, contacts, &stubNews{})

	bundle, err := svc.BuildDigest(context.Background(), testUser())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(bundle.BirthdaysToday) != 1 || bundle.BirthdaysToday[0].Name != "Janka" {
		t.Errorf("unexpected birthdays: %v", bundle.BirthdaysToday)
	}
	if len(bundle.NamedaysToday) != 1 || bundle.NamedaysToday[0].Name != "Alexandra" {
		t.Errorf("unexpected namedays: %v", bundle.NamedaysToday)
	}
	if len(bundle.NamedayNames) != 1 || bundle.NamedayNames[0] != "Alexandra" {
		t.Errorf("unexpected nameday names: %v", bundle.NamedayNames)
	}
}

func TestBuildDigest_ResolvesProjectNames(t *testing.T) {
	projectID := int64(7)
	tasks := &stubTaskRepo{due: []*entity.Task{
		{ID: 1, Title: "Napísať report", ProjectID: &projectID},
		{ID: 2, Title: "Nakúpiť"},
	}}
	svc := newTestService(tasks, &stubEventRepo{}, &stubContactRepo{}, &stubNews{})
	svc.Projects = &stubProjectRepo{projects: []*entity.Project{
		{ID: projectID, UserID: 1, Name: "Práca"},
	}}

	bundle, err := svc.BuildDigest(context.Background(), testUser())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := bundle.ProjectName(bundle.TasksToday[0]); got != "Práca" {
		t.Errorf("ProjectName() = %q, want %q", got, "Práca")
	}
	if got := bundle.ProjectName(bundle.TasksToday[1]); got != "" {
		t.Errorf("ProjectName() for unfiled task = %q, want empty", got)
	}
}

func TestBuildDigest_SkipsProjectLookupWhenUnfiled(t *testing.T) {
	projects := &stubProjectRepo{}
	tasks := &stubTaskRepo{due: []*entity.Task{{ID: 1, Title: "Nakúpiť"}}}
	svc := newTestService(tasks, &stubEventRepo{}, &stubContactRepo{}, &stubNews{})
	svc.Projects = projects

	if _, err := svc.BuildDigest(context.Background(), testUser()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if projects.calls != 0 {
		t.Errorf("expected no project lookup, got %d calls", projects.calls)
	}
}

func TestBuildDigest_NewsSections(t *testing.T) {
	newsStub := &stubNews{
		items:  []entity.NewsItem{{Title: "a"}, {Title: "b"}},
		result: news.SummaryResult{Text: "súhrn"},
	}
	svc := newTestService(&stubTaskRepo{}, &stubEventRepo{}, &stubContactRepo{}, newsStub)

	bundle, err := svc.BuildDigest(context.Background(), testUser())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(newsStub.fetchCalls) != 2 {
		t.Fatalf("expected 2 fetches, got %d", len(newsStub.fetchCalls))
	}
	if newsStub.fetchCalls[0].FetchAll || newsStub.fetchCalls[0].MaxItems != newsHeadlineCount {
		t.Errorf("unexpected headline fetch options: %+v", newsStub.fetchCalls[0])
	}
	if !newsStub.fetchCalls[1].FetchAll {
		t.Errorf("expected second fetch in fetch-all mode: %+v", newsStub.fetchCalls[1])
	}
	if bundle.News.Text != "súhrn" {
		t.Errorf("unexpected summary text: %q", bundle.News.Text)
	}
}

func TestBuildDigest_NewsFailureIsNotFatal(t *testing.T) {
	newsStub := &stubNews{
		fetchErr: errors.New("feeds down"),
		result:   news.SummaryResult{Text: "Žiadne novinky nie sú k dispozícii."},
	}
	svc := newTestService(&stubTaskRepo{}, &stubEventRepo{}, &stubContactRepo{}, newsStub)

	bundle, err := svc.BuildDigest(context.Background(), testUser())
	if err != nil {
		t.Fatalf("expected digest despite news failure, got %v", err)
	}
	if len(bundle.NewsItems) != 0 {
		t.Errorf("expected no headlines, got %v", bundle.NewsItems)
	}
	if bundle.News.Text == "" {
		t.Error("expected non-empty summary text")
	}
}

func TestBuildDigest_StoreErrorAborts(t *testing.T) {
	tasks := &stubTaskRepo{err: errors.New("db down")}
	svc := newTestService(tasks, &stubEventRepo{}, &stubContactRepo{}, &stubNews{})

	_, err := svc.BuildDigest(context.Background(), testUser())
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestBundle_Subject(t *testing.T) {
	b := &Bundle{Today: time.Date(2026, time.January, 2, 0, 0, 0, 0, time.UTC)}

	want := "Dobrý deň! Váš denný prehľad pre 02.01.2026"
	if got := b.Subject(); got != want {
		t.Errorf("Subject() = %q, want %q", got, want)
	}
}

func TestBundle_SMSText(t *testing.T) {
	b := &Bundle{
		TasksToday:  []*entity.Task{{}, {}},
		EventsToday: []calendar.Occurrence{{}},
	}

	want := "PlannerX: Dnes máte 2 úloh a 1 udalostí."
	if got := b.SMSText(); got != want {
		t.Errorf("SMSText() = %q, want %q", got, want)
	}
}

package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/AmbHasan/My-quran-journey/dto"
	"github.com/AmbHasan/My-quran-journey/model"
	"github.com/AmbHasan/My-quran-journey/services/repositories"
	"github.com/AmbHasan/My-quran-journey/shared"
)

func newTestLearningService(t *testing.T) (*LearningService, *repositories.UserRepository) {
	t.Helper()
	db := newTestDB(t)
	users := repositories.NewUserRepository(db)
	svc := NewLearningService(
		repositories.NewLearningRepository(db),
		repositories.NewProgressRepository(db),
		users,
	)
	return svc, users
}

func createTestUser(t *testing.T, users *repositories.UserRepository, email, username string) *model.User {
	t.Helper()
	user, err := users.CreateUser(context.Background(), &model.User{
		Email:        email,
		Username:     username,
		PasswordHash: "hash",
		Level:        1,
		IsActive:     true,
		PlanType:     shared.PlanFree,
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func TestExperienceFor(t *testing.T) {
	cases := []struct {
		sessionType string
		minutes     int
		want        int
	}{
		{shared.SessionTypeMemorization, 10, 200},
		{shared.SessionTypeReading, 5, 50},
		{shared.SessionTypeRecitation, 4, 60},
		{shared.SessionTypeTranslation, 3, 30},
	}
	for _, tc := range cases {
		if got := ExperienceFor(tc.sessionType, tc.minutes); got != tc.want {
			t.Errorf("%s x %d: expected %d, got %d", tc.sessionType, tc.minutes, tc.want, got)
		}
	}
}

func TestLevelFor(t *testing.T) {
	cases := map[int]int{0: 1, 99: 1, 100: 2, 250: 3, 1000: 11}
	for xp, want := range cases {
		if got := LevelFor(xp); got != want {
			t.Errorf("LevelFor(%d): expected %d, got %d", xp, want, got)
		}
	}
}

func TestRecordSessionAccumulatesExperience(t *testing.T) {
	ctx := context.Background()
	svc, users := newTestLearningService(t)
	user := createTestUser(t, users, "l@example.com", "learner")

	resp, err := svc.RecordSession(ctx, user.ID, dto.LearningSessionRequest{
		SurahNumber: 1, AyahNumber: 1, SessionType: shared.SessionTypeMemorization, DurationMinutes: 10,
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if resp.ExperienceGained != 200 || resp.ExperiencePoints != 200 || resp.Level != 3 {
		t.Fatalf("unexpected response: %+v", resp)
	}

	resp, err = svc.RecordSession(ctx, user.ID, dto.LearningSessionRequest{
		SurahNumber: 1, AyahNumber: 2, SessionType: shared.SessionTypeReading, DurationMinutes: 5,
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if resp.ExperiencePoints != 250 || resp.Level != 3 {
		t.Fatalf("unexpected response: %+v", resp)
	}

	stored, err := users.GetUserByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.ExperiencePoints != 250 || stored.Level != LevelFor(250) {
		t.Fatalf("stored totals out of sync: xp=%d level=%d", stored.ExperiencePoints, stored.Level)
	}
}

func TestRecordSessionConcurrentUpdatesAreNotLost(t *testing.T) {
	ctx := context.Background()
	svc, users := newTestLearningService(t)
	user := createTestUser(t, users, "c@example.com", "concurrent")

	const workers = 20
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(ayah int) {
			defer wg.Done()
			_, err := svc.RecordSession(ctx, user.ID, dto.LearningSessionRequest{
				SurahNumber: 2, AyahNumber: ayah, SessionType: shared.SessionTypeRecitation, DurationMinutes: 1,
			})
			errs <- err
		}(i + 1)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	stored, err := users.GetUserByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if want := workers * 15; stored.ExperiencePoints != want {
		t.Fatalf("expected %d points, got %d", want, stored.ExperiencePoints)
	}
	if stored.Level != LevelFor(stored.ExperiencePoints) {
		t.Fatalf("level %d does not match points %d", stored.Level, stored.ExperiencePoints)
	}

	sessions, err := svc.store.(*repositories.LearningRepository).CountSessions(ctx, user.ID)
	if err != nil {
		t.Fatalf("count sessions: %v", err)
	}
	if sessions != workers {
		t.Fatalf("expected %d sessions, got %d", workers, sessions)
	}
}

func TestRecordSessionUnknownUserRollsBack(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	learning := repositories.NewLearningRepository(db)
	svc := NewLearningService(learning, repositories.NewProgressRepository(db), repositories.NewUserRepository(db))

	_, err := svc.RecordSession(ctx, "missing-user", dto.LearningSessionRequest{
		SurahNumber: 1, AyahNumber: 1, SessionType: shared.SessionTypeReading, DurationMinutes: 1,
	})
	if !errors.Is(err, shared.ErrPersistence) {
		t.Fatalf("expected ErrPersistence, got %v", err)
	}

	sessions, err := learning.CountSessions(ctx, "missing-user")
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if sessions != 0 {
		t.Fatalf("expected the session insert to roll back, found %d rows", sessions)
	}
}

// splitStore has no transaction support, so the session and the points
// update are separate writes.
type splitStore struct {
	sessions []*model.LearningSession
	applyErr error
}

func (s *splitStore) CreateLearningSession(_ context.Context, session *model.LearningSession) error {
	session.ID = "session-1"
	s.sessions = append(s.sessions, session)
	return nil
}

func (s *splitStore) ApplyExperience(_ context.Context, userID string, delta int) (*model.User, error) {
	if s.applyErr != nil {
		return nil, s.applyErr
	}
	return &model.User{ID: userID, ExperiencePoints: delta, Level: LevelFor(delta)}, nil
}

func TestRecordSessionReportsPartialFailure(t *testing.T) {
	store := &splitStore{applyErr: errors.New("connection reset")}
	svc := NewLearningService(store, nil, nil)

	_, err := svc.RecordSession(context.Background(), "user-1", dto.LearningSessionRequest{
		SurahNumber: 1, AyahNumber: 1, SessionType: shared.SessionTypeReading, DurationMinutes: 2,
	})
	if !errors.Is(err, shared.ErrPartialFailure) {
		t.Fatalf("expected ErrPartialFailure, got %v", err)
	}
	if len(store.sessions) != 1 {
		t.Fatalf("expected the session to be stored, got %d", len(store.sessions))
	}
}

func TestUpdateProgressReplacesExistingRow(t *testing.T) {
	ctx := context.Background()
	svc, users := newTestLearningService(t)
	user := createTestUser(t, users, "p@example.com", "progress")

	first := dto.ProgressRequest{
		SurahNumber: 1, AyahNumber: 3, Completed: false, ExperienceGained: 5, DifficultyLevel: shared.DifficultyBeginner,
	}
	if err := svc.UpdateProgress(ctx, user.ID, first); err != nil {
		t.Fatalf("first update: %v", err)
	}

	second := first
	second.Completed = true
	second.ExperienceGained = 12
	second.DifficultyLevel = shared.DifficultyAdvanced
	if err := svc.UpdateProgress(ctx, user.ID, second); err != nil {
		t.Fatalf("second update: %v", err)
	}

	progress, err := svc.GetProgress(ctx, user.ID)
	if err != nil {
		t.Fatalf("get progress: %v", err)
	}
	if len(progress) != 1 {
		t.Fatalf("expected one row, got %d", len(progress))
	}
	got := progress[0]
	if !got.Completed || got.ExperienceGained != 12 || got.DifficultyLevel != shared.DifficultyAdvanced {
		t.Fatalf("row not replaced: %+v", got)
	}
}

func TestGetProgressEmptyIsNotNil(t *testing.T) {
	svc, _ := newTestLearningService(t)

	progress, err := svc.GetProgress(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("get progress: %v", err)
	}
	if progress == nil || len(progress) != 0 {
		t.Fatalf("expected an empty slice, got %#v", progress)
	}
}

func TestLeaderboardOrdersActiveUsers(t *testing.T) {
	ctx := context.Background()
	svc, users := newTestLearningService(t)
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) }

	low := createTestUser(t, users, "low@example.com", "low")
	high := createTestUser(t, users, "high@example.com", "high")
	hidden := createTestUser(t, users, "hidden@example.com", "hidden")

	record := func(userID string, minutes int) {
		t.Helper()
		_, err := svc.RecordSession(ctx, userID, dto.LearningSessionRequest{
			SurahNumber: 1, AyahNumber: 1, SessionType: shared.SessionTypeReading, DurationMinutes: minutes,
		})
		if err != nil {
			t.Fatalf("record: %v", err)
		}
	}
	record(low.ID, 1)
	record(high.ID, 30)
	record(hidden.ID, 60)
	if err := users.SetActive(ctx, hidden.ID, false); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	board, err := svc.Leaderboard(ctx, 10)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if len(board) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(board))
	}
	if board[0].Username != "high" || board[0].Rank != 1 || board[0].ExperiencePoints != 300 {
		t.Fatalf("unexpected first entry: %+v", board[0])
	}
	if board[1].Username != "low" || board[1].Rank != 2 {
		t.Fatalf("unexpected second entry: %+v", board[1])
	}
}

func TestClampLeaderboardLimit(t *testing.T) {
	cases := map[int]int{-1: 10, 0: 10, 1: 1, 25: 25, 50: 50, 500: 50}
	for in, want := range cases {
		if got := ClampLeaderboardLimit(in); got != want {
			t.Errorf("ClampLeaderboardLimit(%d): expected %d, got %d", in, want, got)
		}
	}
}

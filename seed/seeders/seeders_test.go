package seeders

import (
	"context"
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/AmbHasan/My-quran-journey/services"
	"github.com/AmbHasan/My-quran-journey/services/repositories"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "seed.db") + "?_journal_mode=WAL&_busy_timeout=5000&_txlock=immediate"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(4)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := services.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestSeedActivityOnlyDoesNotCreditTwice(t *testing.T) {
	db := newTestDB(t)
	seeder := NewMainSeeder(db)

	if err := seeder.SeedAll(); err != nil {
		t.Fatalf("seed: %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := seeder.SeedActivityOnly(); err != nil {
			t.Fatalf("activity run %d: %v", i+1, err)
		}
	}

	amina, err := repositories.NewUserRepository(db).GetUserByEmail(context.Background(), "amina@example.com")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if amina.ExperiencePoints != 850 {
		t.Fatalf("activity credited again: xp=%d", amina.ExperiencePoints)
	}

	count, err := repositories.NewLearningRepository(db).CountSessions(context.Background(), amina.ID)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 seeded sessions, got %d", count)
	}
}

func TestSeedAllIsRepeatable(t *testing.T) {
	db := newTestDB(t)
	seeder := NewMainSeeder(db)

	if err := seeder.SeedAll(); err != nil {
		t.Fatalf("first seed: %v", err)
	}
	if err := seeder.SeedAll(); err != nil {
		t.Fatalf("second seed: %v", err)
	}

	users := repositories.NewUserRepository(db)
	amina, err := users.GetUserByEmail(context.Background(), "amina@example.com")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	// 20*20 + 15*20 + 10*15, credited once.
	if amina.ExperiencePoints != 850 || amina.Level != services.LevelFor(850) {
		t.Fatalf("unexpected totals: xp=%d level=%d", amina.ExperiencePoints, amina.Level)
	}

	board, err := users.TopByExperience(context.Background(), 10)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if len(board) != len(demoUsers) || board[0].Username != "amina" {
		t.Fatalf("unexpected leaderboard %+v", board)
	}
}

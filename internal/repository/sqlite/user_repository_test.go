package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/lingualearn/internal/models"
	"github.com/vytor/lingualearn/internal/repository"
	"github.com/vytor/lingualearn/internal/repository/sqlite"
	"github.com/vytor/lingualearn/internal/testutil"
)

type UserRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.UserRepository
}

func (s *UserRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewUserRepository(s.db)
}

func (s *UserRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *UserRepositorySuite) TestUpsertIsIdempotent() {
	ctx := context.Background()

	first, err := s.repo.Upsert(ctx, "maria")
	s.Require().NoError(err)
	second, err := s.repo.Upsert(ctx, "maria")
	s.Require().NoError(err)

	s.Assert().Equal(first.ID, second.ID)
	s.Assert().Equal("maria", second.Username)
	s.Assert().Nil(second.LastSyncAt)

	users, err := s.repo.List(ctx)
	s.Require().NoError(err)
	s.Assert().Len(users, 1)
}

func (s *UserRepositorySuite) TestGetAndGetByUsername() {
	ctx := context.Background()
	created, err := s.repo.Upsert(ctx, "maria")
	s.Require().NoError(err)

	byID, err := s.repo.Get(ctx, created.ID)
	s.Require().NoError(err)
	s.Require().NotNil(byID)
	s.Assert().Equal("maria", byID.Username)

	byName, err := s.repo.GetByUsername(ctx, "maria")
	s.Require().NoError(err)
	s.Require().NotNil(byName)
	s.Assert().Equal(created.ID, byName.ID)

	missing, err := s.repo.Get(ctx, created.ID+100)
	s.Require().NoError(err)
	s.Assert().Nil(missing)
}

func (s *UserRepositorySuite) TestUpdateDisplayNameAndSync() {
	ctx := context.Background()
	created, err := s.repo.Upsert(ctx, "maria")
	s.Require().NoError(err)

	s.Require().NoError(s.repo.UpdateDisplayName(ctx, created.ID, "María"))
	syncedAt := time.Date(2024, time.April, 2, 8, 0, 0, 0, time.UTC)
	s.Require().NoError(s.repo.UpdateSync(ctx, created.ID, syncedAt))

	stored, err := s.repo.Get(ctx, created.ID)
	s.Require().NoError(err)
	s.Assert().Equal("María", stored.DisplayName)
	s.Require().NotNil(stored.LastSyncAt)
	s.Assert().True(stored.LastSyncAt.Equal(syncedAt))

	s.Assert().ErrorIs(s.repo.UpdateDisplayName(ctx, created.ID+100, "x"), sql.ErrNoRows)
}

func (s *UserRepositorySuite) TestDeleteCascades() {
	ctx := context.Background()
	created, err := s.repo.Upsert(ctx, "maria")
	s.Require().NoError(err)
	lesson := testutil.Greetings()
	testutil.InsertLesson(s.T(), s.db, lesson)

	cards := sqlite.NewFlashcardRepository(s.db)
	s.Require().NoError(cards.InsertBatch(ctx, []models.Flashcard{
		{ID: "c1", UserID: created.ID, LessonID: lesson.ID, Front: "Hello", Back: "Hola"},
	}))
	s.Require().NoError(cards.InsertReviewHistory(ctx, models.ReviewHistory{FlashcardID: "c1", Success: true, Difficulty: 3, ReviewedAt: time.Now()}))
	s.Require().NoError(sqlite.NewProgressRepository(s.db).MarkComplete(ctx, models.LessonProgress{UserID: created.ID, LessonID: lesson.ID}))

	s.Require().NoError(s.repo.Delete(ctx, created.ID))

	for _, table := range []string{"users", "flashcards", "review_history", "lesson_progress"} {
		var count int
		s.Require().NoError(s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+table).Scan(&count))
		s.Assert().Zero(count, table)
	}
}

func TestUserRepositorySuite(t *testing.T) {
	suite.Run(t, new(UserRepositorySuite))
}

package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/lingualearn/internal/logger"
	"github.com/vytor/lingualearn/internal/models"
	"github.com/vytor/lingualearn/internal/repository"
)

var lessonColumns = []string{"id", "title", "description", "content", "level", "duration", "created_at"}

const lessonUpsertSuffix = `ON CONFLICT(id) DO UPDATE SET
    title = excluded.title,
    description = excluded.description,
    content = excluded.content,
    level = excluded.level,
    duration = excluded.duration`

type lessonRepository struct {
	db *sql.DB
}

// NewLessonRepository creates a new LessonRepository implementation
func NewLessonRepository(db *sql.DB) repository.LessonRepository {
	return &lessonRepository{db: db}
}

func scanLesson(row interface{ Scan(...any) error }) (*models.Lesson, error) {
	var l models.Lesson
	if err := row.Scan(&l.ID, &l.Title, &l.Description, &l.Content, &l.Level, &l.Duration, &l.CreatedAt); err != nil {
		return nil, err
	}
	return &l, nil
}

func applyLessonFilter(query squirrel.SelectBuilder, filter models.LessonFilter) squirrel.SelectBuilder {
	if filter.Level != "" {
		query = query.Where(squirrel.Eq{"level": filter.Level})
	}
	return query
}

func (r *lessonRepository) Get(ctx context.Context, id string) (*models.Lesson, error) {
	log := logger.FromContext(ctx).WithPrefix("lesson_repo")
	log.Debug("getting lesson: id=%s", id)

	query, args, err := sqlBuilder.Select(lessonColumns...).From("lessons").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	l, err := scanLesson(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("lesson not found: id=%s", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get lesson: %v", err)
		return nil, err
	}
	return l, nil
}

func (r *lessonRepository) List(ctx context.Context, filter models.LessonFilter) ([]models.Lesson, error) {
	log := logger.FromContext(ctx).WithPrefix("lesson_repo")
	log.Debug("listing lessons with filter: level=%s, limit=%d, offset=%d", filter.Level, filter.Limit, filter.Offset)

	query := applyLessonFilter(sqlBuilder.Select(lessonColumns...).From("lessons"), filter).
		OrderBy(
			"CASE level WHEN 'beginner' THEN 0 WHEN 'intermediate' THEN 1 ELSE 2 END",
			"created_at ASC",
			"title ASC",
		)

	limit := filter.Limit
	if limit <= 0 {
		limit = 200
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	query = query.Limit(uint64(limit)).Offset(uint64(offset))

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list lessons: %v", err)
		return nil, err
	}
	defer rows.Close()

	var lessons []models.Lesson
	for rows.Next() {
		l, err := scanLesson(rows)
		if err != nil {
			log.Error("failed to scan lesson row: %v", err)
			return nil, err
		}
		lessons = append(lessons, *l)
	}
	log.Debug("found %d lessons", len(lessons))
	return lessons, rows.Err()
}

func (r *lessonRepository) Count(ctx context.Context, filter models.LessonFilter) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("lesson_repo")

	sqlStr, args, err := applyLessonFilter(sqlBuilder.Select("COUNT(*)").From("lessons"), filter).ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return 0, err
	}

	var count int
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&count); err != nil {
		log.Error("failed to count lessons: %v", err)
		return 0, err
	}
	return count, nil
}

func lessonUpsert(l models.Lesson) squirrel.InsertBuilder {
	return sqlBuilder.Insert("lessons").
		Columns("id", "title", "description", "content", "level", "duration").
		Values(l.ID, l.Title, l.Description, l.Content, l.Level, l.Duration).
		Suffix(lessonUpsertSuffix)
}

func (r *lessonRepository) Upsert(ctx context.Context, l models.Lesson) error {
	log := logger.FromContext(ctx).WithPrefix("lesson_repo")
	log.Debug("upserting lesson: id=%s, title=%s", l.ID, l.Title)

	sqlStr, args, err := lessonUpsert(l).ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return err
	}
	if _, err := r.db.ExecContext(ctx, sqlStr, args...); err != nil {
		log.Error("failed to upsert lesson: %v", err)
		return err
	}
	return nil
}

func (r *lessonRepository) UpsertBatch(ctx context.Context, lessons []models.Lesson) error {
	log := logger.FromContext(ctx).WithPrefix("lesson_repo")
	if len(lessons) == 0 {
		return nil
	}
	log.Debug("upserting %d lessons", len(lessons))

	return tx(ctx, r.db, func(tx *sql.Tx) error {
		for _, l := range lessons {
			sqlStr, args, err := lessonUpsert(l).ToSql()
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx, sqlStr, args...); err != nil {
				log.Error("failed to upsert lesson %s: %v", l.ID, err)
				return err
			}
		}
		return nil
	})
}

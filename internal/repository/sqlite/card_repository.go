package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/mariana/linguaflash/internal/logger"
	"github.com/mariana/linguaflash/internal/models"
	"github.com/mariana/linguaflash/internal/repository"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

var cardColumns = []string{
	"id", "user_id", "language", "topic", "kind", "level",
	"ease_factor", "interval_days", "repetitions",
	"next_review", "last_reviewed", "created_at",
}

type cardRepository struct {
	db *sql.DB
}

// NewCardRepository creates a new CardRepository implementation
func NewCardRepository(db *sql.DB) repository.CardRepository {
	return &cardRepository{db: db}
}

func (r *cardRepository) Get(ctx context.Context, id int64) (*models.LearningCard, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("getting card: id=%d", id)

	query, args, err := sqlBuilder.Select(cardColumns...).
		From("cards").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}

	card, err := scanCard(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("card not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get card: %v", err)
		return nil, err
	}
	return card, nil
}

func (r *cardRepository) Insert(ctx context.Context, c models.LearningCard) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("inserting card: user_id=%d, topic=%s", c.UserID, c.Topic)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO cards (user_id, language, topic, kind, level, ease_factor, interval_days, repetitions, next_review, last_reviewed, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, c.UserID, c.Language, c.Topic, c.Kind, c.Level, c.EaseFactor, c.IntervalDays, c.Repetitions, c.NextReview, c.LastReviewed, c.CreatedAt)
	if err != nil {
		log.Error("failed to insert card: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get card id: %v", err)
		return 0, err
	}
	log.Debug("card inserted: id=%d", id)
	return id, nil
}

func (r *cardRepository) UpdateScheduling(ctx context.Context, c models.LearningCard) error {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("updating card scheduling: id=%d, interval=%d, ease=%.2f", c.ID, c.IntervalDays, c.EaseFactor)

	_, err := r.db.ExecContext(ctx, `
UPDATE cards
SET ease_factor = ?, interval_days = ?, repetitions = ?, next_review = ?, last_reviewed = ?
WHERE id = ?
`, c.EaseFactor, c.IntervalDays, c.Repetitions, c.NextReview, c.LastReviewed, c.ID)
	if err != nil {
		log.Error("failed to update card: %v", err)
	}
	return err
}

func (r *cardRepository) ListForUser(ctx context.Context, userID int64) ([]models.LearningCard, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("listing cards: user_id=%d", userID)

	query, args, err := sqlBuilder.Select(cardColumns...).
		From("cards").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at", "id").
		ToSql()
	if err != nil {
		return nil, err
	}
	return r.queryCards(ctx, query, args...)
}

func (r *cardRepository) ListDue(ctx context.Context, userID int64, asOf time.Time) ([]models.LearningCard, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("listing due cards: user_id=%d, as_of=%s", userID, asOf.Format(time.RFC3339))

	query, args, err := sqlBuilder.Select(cardColumns...).
		From("cards").
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.LtOrEq{"next_review": asOf}).
		OrderBy("next_review", "id").
		ToSql()
	if err != nil {
		return nil, err
	}

	cards, err := r.queryCards(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	log.Debug("found %d due cards", len(cards))
	return cards, nil
}

func (r *cardRepository) Provision(ctx context.Context, cards []models.LearningCard) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("provisioning %d cards", len(cards))

	created := 0
	err := tx(ctx, r.db, func(t *sql.Tx) error {
		for _, c := range cards {
			res, err := t.ExecContext(ctx, `
INSERT OR IGNORE INTO cards (user_id, language, topic, kind, level, ease_factor, interval_days, repetitions, next_review, last_reviewed, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, c.UserID, c.Language, c.Topic, c.Kind, c.Level, c.EaseFactor, c.IntervalDays, c.Repetitions, c.NextReview, c.LastReviewed, c.CreatedAt)
			if err != nil {
				return err
			}
			n, err := res.RowsAffected()
			if err != nil {
				return err
			}
			created += int(n)
		}
		return nil
	})
	if err != nil {
		log.Error("failed to provision cards: %v", err)
		return 0, err
	}
	log.Debug("provisioned %d new cards", created)
	return created, nil
}

func (r *cardRepository) UserIDs(ctx context.Context) ([]int64, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("listing user ids")

	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT user_id FROM cards ORDER BY user_id`)
	if err != nil {
		log.Error("failed to query user ids: %v", err)
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *cardRepository) RecordPractice(ctx context.Context, cardID int64, practiceType models.PracticeType, attempts, correct int, pronScoreSum float64, pronScoreCount int, at time.Time) error {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("recording practice: card_id=%d, type=%s, attempts=%d, correct=%d", cardID, practiceType, attempts, correct)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO card_practice_stats (card_id, practice_type, attempts, correct, pron_score_sum, pron_score_count, last_attempt_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (card_id, practice_type) DO UPDATE SET
    attempts = attempts + excluded.attempts,
    correct = correct + excluded.correct,
    pron_score_sum = pron_score_sum + excluded.pron_score_sum,
    pron_score_count = pron_score_count + excluded.pron_score_count,
    last_attempt_at = excluded.last_attempt_at
`, cardID, practiceType, attempts, correct, pronScoreSum, pronScoreCount, at)
	if err != nil {
		log.Error("failed to record practice: %v", err)
	}
	return err
}

func (r *cardRepository) PracticeStatsForCard(ctx context.Context, cardID int64) ([]models.PracticeStats, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("fetching practice stats: card_id=%d", cardID)

	rows, err := r.db.QueryContext(ctx, `
SELECT card_id, practice_type, attempts, correct, pron_score_sum, pron_score_count, last_attempt_at
FROM card_practice_stats
WHERE card_id = ?
ORDER BY practice_type
`, cardID)
	if err != nil {
		log.Error("failed to query practice stats: %v", err)
		return nil, err
	}
	defer rows.Close()

	var stats []models.PracticeStats
	for rows.Next() {
		var s models.PracticeStats
		var lastAttempt sql.NullTime
		if err := rows.Scan(&s.CardID, &s.PracticeType, &s.Attempts, &s.Correct, &s.PronScoreSum, &s.PronScoreCount, &lastAttempt); err != nil {
			log.Error("failed to scan practice stats row: %v", err)
			return nil, err
		}
		if lastAttempt.Valid {
			t := lastAttempt.Time
			s.LastAttemptAt = &t
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCard(row rowScanner) (*models.LearningCard, error) {
	var c models.LearningCard
	var lastReviewed sql.NullTime
	err := row.Scan(&c.ID, &c.UserID, &c.Language, &c.Topic, &c.Kind, &c.Level,
		&c.EaseFactor, &c.IntervalDays, &c.Repetitions,
		&c.NextReview, &lastReviewed, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	if lastReviewed.Valid {
		t := lastReviewed.Time
		c.LastReviewed = &t
	}
	return &c, nil
}

func (r *cardRepository) queryCards(ctx context.Context, query string, args ...any) ([]models.LearningCard, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []models.LearningCard
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, *card)
	}
	return cards, rows.Err()
}

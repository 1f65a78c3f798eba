package store

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/connectcc/auditions/internal/domain"
	"github.com/connectcc/auditions/internal/ports"
)

var _ ports.ContestantStore = (*PostgresStore)(nil)

// criteriaColumn serializes a scorecard to a jsonb column.
type criteriaColumn []domain.MarkingCriterion

// GormDataType tells GORM to migrate the column as jsonb.
func (criteriaColumn) GormDataType() string { return "jsonb" }

// Value implements driver.Valuer.
func (c criteriaColumn) Value() (driver.Value, error) {
	if len(c) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal([]domain.MarkingCriterion(c))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner.
func (c *criteriaColumn) Scan(value any) error {
	if value == nil {
		*c = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported criteria column type %T", value)
	}
	var criteria []domain.MarkingCriterion
	if err := json.Unmarshal(data, &criteria); err != nil {
		return err
	}
	*c = criteria
	return nil
}

// contestantRecord is the GORM row model. EvaluatedAt is deliberately not
// named UpdatedAt so GORM's auto-timestamping does not fight the reset
// operation, which must be able to null it.
type contestantRecord struct {
	Roll              string `gorm:"primaryKey;size:32"`
	Name              string
	Year              string
	Branch            string
	Section           string `gorm:"column:sec"`
	PreferredPosition string
	Whatsapp          string
	Mail              string
	Criteria          criteriaColumn `gorm:"type:jsonb"`
	Score             *float64
	Feedback          string
	EvaluatedAt       *time.Time
}

// TableName fixes the table name independent of GORM pluralization rules.
func (contestantRecord) TableName() string { return "contestants" }

func (r contestantRecord) toDomain() domain.Contestant {
	return domain.Contestant{
		Roll:              r.Roll,
		Name:              r.Name,
		Year:              r.Year,
		Branch:            r.Branch,
		Section:           r.Section,
		PreferredPosition: r.PreferredPosition,
		Whatsapp:          r.Whatsapp,
		Mail:              r.Mail,
		Criteria:          []domain.MarkingCriterion(r.Criteria),
		Score:             r.Score,
		Feedback:          r.Feedback,
		UpdatedAt:         r.EvaluatedAt,
	}
}

func toRecord(c domain.Contestant) contestantRecord {
	return contestantRecord{
		Roll:              domain.NormalizeRoll(c.Roll),
		Name:              c.Name,
		Year:              c.Year,
		Branch:            c.Branch,
		Section:           c.Section,
		PreferredPosition: c.PreferredPosition,
		Whatsapp:          c.Whatsapp,
		Mail:              c.Mail,
		Criteria:          criteriaColumn(c.Criteria),
		Score:             c.Score,
		Feedback:          c.Feedback,
		EvaluatedAt:       c.UpdatedAt,
	}
}

// PostgresStore is the production ContestantStore backed by Postgres.
// Evaluation saves and the bulk reset run in transactions, so either the
// whole write lands or none of it does.
type PostgresStore struct {
	db *gorm.DB
}

// NewPostgresStore connects to Postgres with the given DSN and migrates
// the contestants table.
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	return NewPostgresStoreWithDB(db)
}

// NewPostgresStoreWithDB wraps an existing GORM handle; used by tests.
func NewPostgresStoreWithDB(db *gorm.DB) (*PostgresStore, error) {
	if err := db.AutoMigrate(&contestantRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate contestants table: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

// GetByRoll fetches a single record; domain.ErrNotFound when absent.
func (s *PostgresStore) GetByRoll(ctx context.Context, roll string) (domain.Contestant, error) {
	var record contestantRecord
	err := s.db.WithContext(ctx).First(&record, "roll = ?", domain.NormalizeRoll(roll)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Contestant{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Contestant{}, ports.NewStoreError(roll, "GetByRoll", err)
	}
	return record.toDomain(), nil
}

// GetAll returns the full collection ordered by roll.
func (s *PostgresStore) GetAll(ctx context.Context) ([]domain.Contestant, error) {
	var records []contestantRecord
	if err := s.db.WithContext(ctx).Order("roll").Find(&records).Error; err != nil {
		return nil, ports.NewStoreError("", "GetAll", err)
	}
	out := make([]domain.Contestant, 0, len(records))
	for _, r := range records {
		out = append(out, r.toDomain())
	}
	return out, nil
}

// SaveEvaluation writes the evaluation fields for one record in a single
// transaction and returns the reloaded row with its server-assigned
// timestamp.
func (s *PostgresStore) SaveEvaluation(ctx context.Context, roll string, criteria []domain.MarkingCriterion, score float64, feedback string) (domain.Contestant, error) {
	key := domain.NormalizeRoll(roll)
	now := time.Now().UTC()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&contestantRecord{}).Where("roll = ?", key).Updates(map[string]any{
			"criteria":     criteriaColumn(criteria),
			"score":        score,
			"feedback":     feedback,
			"evaluated_at": now,
		})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Contestant{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Contestant{}, ports.NewStoreError(key, "SaveEvaluation", err)
	}

	return s.GetByRoll(ctx, key)
}

// ResetAll clears the evaluation fields on every record in one transaction:
// a failure leaves the collection exactly as it was.
func (s *PostgresStore) ResetAll(ctx context.Context) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Model(&contestantRecord{}).Where("1 = 1").Updates(map[string]any{
			"criteria":     criteriaColumn(nil),
			"score":        nil,
			"feedback":     "",
			"evaluated_at": nil,
		}).Error
	})
	if err != nil {
		return ports.NewStoreError("", "ResetAll", err)
	}
	return nil
}

// Put inserts or replaces a full record. Imports and fixtures only.
func (s *PostgresStore) Put(ctx context.Context, c domain.Contestant) error {
	record := toRecord(c)
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&record).Error
	if err != nil {
		return ports.NewStoreError(record.Roll, "Put", err)
	}
	return nil
}

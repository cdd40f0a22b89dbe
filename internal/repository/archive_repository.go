package repository

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"desk-calendar/internal/model"
)

// ArchiveRepository mirrors the notes file into SQLite so it can be searched.
type ArchiveRepository struct {
	db *gorm.DB
}

func NewArchiveRepository(db *gorm.DB) *ArchiveRepository {
	return &ArchiveRepository{db: db}
}

// Replace swaps the archived rows for snapshot in a single transaction.
// It returns the number of notes written.
func (r *ArchiveRepository) Replace(ctx context.Context, snapshot map[model.Date][]model.Note) (int, error) {
	records := make([]model.NoteRecord, 0, len(snapshot))
	for date, notes := range snapshot {
		for pos, note := range notes {
			records = append(records, model.NoteRecord{
				Date:     date.String(),
				Position: pos,
				NoteID:   note.ID,
				Title:    note.Title,
				Color:    note.Color,
			})
		}
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.NoteRecord{}).Error; err != nil {
			return fmt.Errorf("clear archive: %w", err)
		}
		if len(records) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(records, 200).Error; err != nil {
			return fmt.Errorf("insert notes: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(records), nil
}

func (r *ArchiveRepository) ListByDate(ctx context.Context, date model.Date) ([]model.NoteRecord, error) {
	var records []model.NoteRecord
	if err := r.db.WithContext(ctx).Where("date = ?", date.String()).
		Order("position ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// Search finds notes whose title contains term, case-insensitively, oldest date first.
func (r *ArchiveRepository) Search(ctx context.Context, term string) ([]model.NoteRecord, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, nil
	}
	var records []model.NoteRecord
	pattern := "%" + strings.ToLower(term) + "%"
	if err := r.db.WithContext(ctx).Where("LOWER(title) LIKE ?", pattern).
		Order("date ASC, position ASC").
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("search notes: %w", err)
	}
	return records, nil
}

// CountDates returns how many distinct dates have archived notes.
func (r *ArchiveRepository) CountDates(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.NoteRecord{}).Distinct("date").Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

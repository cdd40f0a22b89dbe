package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"desk-calendar/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := NewDB(dsn)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func TestArchiveReplaceAndList(t *testing.T) {
	ctx := context.Background()
	repo := NewArchiveRepository(newTestDB(t))
	may1 := model.Date{Year: 2024, Month: time.May, Day: 1}
	may2 := model.Date{Year: 2024, Month: time.May, Day: 2}

	n, err := repo.Replace(ctx, map[model.Date][]model.Note{
		may1: {{ID: 1, Title: "Dentist", Color: "#3ea85a"}, {ID: 2, Title: "Gym", Color: "#3ea85a"}},
		may2: {},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	records, err := repo.ListByDate(ctx, may1)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Dentist", records[0].Title)
	assert.Equal(t, "Gym", records[1].Title)
	assert.Equal(t, 1, records[1].Position)

	t.Run("replace drops old rows", func(t *testing.T) {
		n, err := repo.Replace(ctx, map[model.Date][]model.Note{
			may2: {{ID: 3, Title: "Pay rent", Color: "#3ea85a"}},
		})
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		records, err := repo.ListByDate(ctx, may1)
		require.NoError(t, err)
		assert.Empty(t, records)

		count, err := repo.CountDates(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})
}

func TestArchiveSearch(t *testing.T) {
	ctx := context.Background()
	repo := NewArchiveRepository(newTestDB(t))

	_, err := repo.Replace(ctx, map[model.Date][]model.Note{
		{Year: 2024, Month: time.June, Day: 1}: {{ID: 1, Title: "Pay RENT", Color: "x"}},
		{Year: 2024, Month: time.May, Day: 1}:  {{ID: 2, Title: "rent car", Color: "x"}, {ID: 3, Title: "Gym", Color: "x"}},
	})
	require.NoError(t, err)

	records, err := repo.Search(ctx, "rent")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "2024-05-01", records[0].Date)
	assert.Equal(t, "2024-06-01", records[1].Date)

	records, err = repo.Search(ctx, "  ")
	require.NoError(t, err)
	assert.Empty(t, records)
}

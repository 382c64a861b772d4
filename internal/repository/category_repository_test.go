package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/studio-showcase/internal/model"
)

var categoryCols = []string{"id", "name", "description", "slug", "is_active", "sort_order", "created_at", "updated_at"}

func TestCategoryRepo_List_ActiveOnly(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCategoryRepo(db)
	ts := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM categories WHERE is_active = 1 ORDER BY sort_order, name LIMIT ? OFFSET ?")).
		WithArgs(20, 40).
		WillReturnRows(sqlmock.NewRows(categoryCols).
			AddRow(1, "Weddings", "", "weddings", true, 0, ts, ts).
			AddRow(2, "Portraits", "", "portraits", true, 1, ts, ts))

	got, err := repo.List(context.Background(), true, Page{Skip: 40, Limit: 20})
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "portraits", got[1].Slug)
}

func TestCategoryRepo_List_EmptyIsNotNil(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCategoryRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT")).WillReturnRows(sqlmock.NewRows(categoryCols))

	got, err := repo.List(context.Background(), false, Page{Limit: 10})
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestCategoryRepo_Create_Duplicate(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCategoryRepo(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO categories")).
		WithArgs("Weddings", "", "weddings", true, 0).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'weddings' for key 'categories.uq_categories_slug'"})

	err := repo.Create(context.Background(), &model.Category{Name: "Weddings", Slug: "weddings", IsActive: true})
	require.ErrorIs(t, err, ErrDuplicate)
}

func TestCategoryRepo_GetBySlug_NotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCategoryRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM categories WHERE slug = ?")).
		WithArgs("nope").
		WillReturnRows(sqlmock.NewRows(categoryCols))

	_, err := repo.GetBySlug(context.Background(), "nope")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCategoryRepo_Delete_Missing(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCategoryRepo(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM categories WHERE id = ?")).
		WithArgs(uint64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.ErrorIs(t, repo.Delete(context.Background(), 5), ErrNotFound)
}

func TestCategoryRepo_Update_RenamesLinkedImages(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCategoryRepo(db)
	ts := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE categories SET name = ?")).
		WithArgs("Elopements", "", "elopements", true, 2, uint64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE images SET category = ? WHERE category_id = ?")).
		WithArgs("Elopements", uint64(3)).
		WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectCommit()
	mock.ExpectQuery(regexp.QuoteMeta("FROM categories WHERE id = ?")).
		WithArgs(uint64(3)).
		WillReturnRows(sqlmock.NewRows(categoryCols).AddRow(3, "Elopements", "", "elopements", true, 2, ts, ts))

	c := &model.Category{ID: 3, Name: "Elopements", Slug: "elopements", IsActive: true, SortOrder: 2}
	require.NoError(t, repo.Update(context.Background(), c))
	require.Equal(t, ts, c.UpdatedAt)
}

func TestCategoryRepo_Update_DuplicateRollsBack(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCategoryRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE categories SET name = ?")).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'Portraits'"})
	mock.ExpectRollback()

	err := repo.Update(context.Background(), &model.Category{ID: 3, Name: "Portraits", Slug: "portraits"})
	require.ErrorIs(t, err, ErrDuplicate)
}

package salts

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/blogauth/internal/common"
)

const (
	insertQ = `(?s)^\s*INSERT\s+INTO\s+salts\s*\(user_id,\s*salt\)\s*VALUES\s*\(\$1,\s*\$2\)\s*RETURNING\s+id,\s*created_at\s*$`
	selectQ = `(?s)^\s*SELECT\s+id,\s*user_id,\s*salt,\s*created_at\s+FROM\s+salts\s+WHERE\s+user_id\s*=\s*\$1\s+ORDER\s+BY\s+created_at\s+LIMIT\s+1\s*$`
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectQuery(insertQ).
		WithArgs("u-1", "salt-value").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("s-1", now))

	got, err := repo.Create(context.Background(), "u-1", "salt-value")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != "s-1" || got.UserID != "u-1" || got.Salt != "salt-value" {
		t.Fatalf("unexpected salt: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertQ).
		WithArgs("u-1", "salt-value").
		WillReturnError(errors.New("fk violation"))

	_, err := repo.Create(context.Background(), "u-1", "salt-value")
	if err == nil || !regexp.MustCompile(`db error: .*fk violation`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestFindByUserID_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectQuery(selectQ).
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "salt", "created_at"}).AddRow("s-1", "u-1", "salt-value", now))

	got, err := repo.FindByUserID(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("FindByUserID error: %v", err)
	}
	if got.Salt != "salt-value" {
		t.Fatalf("unexpected salt: %+v", got)
	}
}

func TestFindByUserID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(selectQ).
		WithArgs("u-1").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByUserID(context.Background(), "u-1")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestFindByUserID_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(selectQ).
		WithArgs("u-1").
		WillReturnError(errors.New("db err"))

	_, err := repo.FindByUserID(context.Background(), "u-1")
	if err == nil || errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

package lock

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      conn,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatal(err)
	}
	return db, mock
}

func expectVersionRead(mock sqlmock.Sqlmock, version int64) {
	mock.ExpectQuery("SELECT `version` FROM `t_order`").
		WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(version))
}

func expectGuardedUpdate(mock sqlmock.Sqlmock, rowsAffected int64) {
	mock.ExpectExec("UPDATE `t_order` SET .+ WHERE id = \\? AND version = \\?").
		WillReturnResult(sqlmock.NewResult(0, rowsAffected))
}

func TestOptimisticUpdateSucceedsFirstTry(t *testing.T) {
	db, mock := newMockDB(t)

	expectVersionRead(mock, 3)
	expectGuardedUpdate(mock, 1)

	err := OptimisticUpdate(db, "t_order", 7, map[string]interface{}{"status": "cancelled"}, 3)
	if err != nil {
		t.Fatal(err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestOptimisticUpdateRetriesThenWins(t *testing.T) {
	db, mock := newMockDB(t)

	// 第一轮丢竞争（0 行命中），第二轮重读新版本后成功
	expectVersionRead(mock, 3)
	expectGuardedUpdate(mock, 0)
	expectVersionRead(mock, 4)
	expectGuardedUpdate(mock, 1)

	err := OptimisticUpdate(db, "t_order", 7, map[string]interface{}{"status": "paid"}, 3)
	if err != nil {
		t.Fatal(err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestOptimisticUpdateExhaustsRetries(t *testing.T) {
	db, mock := newMockDB(t)

	// 每轮都重读版本再条件更新，轮轮 0 行命中，不允许静默丢更新
	for i := 0; i < 2; i++ {
		expectVersionRead(mock, int64(3+i))
		expectGuardedUpdate(mock, 0)
	}

	err := OptimisticUpdate(db, "t_order", 7, map[string]interface{}{"status": "paid"}, 2)
	if !errors.Is(err, ErrVersionConflict) {
		t.Fatalf("expected ErrVersionConflict, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestOptimisticUpdateMissingRow(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT `version` FROM `t_order`").
		WillReturnRows(sqlmock.NewRows([]string{"version"}))

	err := OptimisticUpdate(db, "t_order", 404, map[string]interface{}{"status": "paid"}, 3)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected wrapped ErrRecordNotFound, got %v", err)
	}
}

package postgres

import (
	"errors"
	"testing"

	"github.com/lib/pq"

	"github.com/kailas-cloud/huematch/internal/db"
)

func TestNewStore_RequiresDSN(t *testing.T) {
	if _, err := NewStore(Config{}); err == nil {
		t.Fatal("expected error for empty dsn")
	}
}

func TestNewStore_LazyConnect(t *testing.T) {
	s, err := NewStore(Config{DSN: "postgres://u:p@127.0.0.1:1/none?sslmode=disable", MaxOpenConns: 2})
	if err != nil {
		t.Fatalf("open must not dial: %v", err)
	}
	s.Close()
}

func TestTranslate_UndefinedTable(t *testing.T) {
	src := &pq.Error{Code: undefinedTable, Message: `relation "products" does not exist`}
	err := translate(src)

	if !errors.Is(err, db.ErrTableNotFound) {
		t.Errorf("expected ErrTableNotFound, got %v", err)
	}
}

func TestTranslate_PassThrough(t *testing.T) {
	src := &pq.Error{Code: "23505", Message: "duplicate key"}
	if err := translate(src); err != src {
		t.Errorf("expected original error, got %v", err)
	}

	plain := errors.New("broken pipe")
	if err := translate(plain); err != plain {
		t.Errorf("expected original error, got %v", err)
	}
}

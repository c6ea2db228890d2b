package database

import (
	"context"
	_ "embed"
	"fmt"
)

//go:embed schema.sql
var schemaSQL string

// EnsureSchema 建立 events / bookings 資料表與索引（可重複執行）
func EnsureSchema(ctx context.Context, db DBTX) error {
	if _, err := db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// OpenWithSchema 建立 handle 後立即套用 schema；套用失敗時關閉 handle 並回傳錯誤，
// 讓 Lazy 不快取這次連線
func OpenWithSchema[T DBTX](ctx context.Context, open func(ctx context.Context) (T, error), closeFn func(T)) (T, error) {
	db, err := open(ctx)
	if err != nil {
		return db, err
	}
	if err := EnsureSchema(ctx, db); err != nil {
		if closeFn != nil {
			closeFn(db)
		}
		var zero T
		return zero, err
	}
	return db, nil
}

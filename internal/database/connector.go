package database

import (
	"context"
	"errors"
	"fmt"
	"net"

	"go-gin-event-hub/config"
	apperrors "go-gin-event-hub/pkg/app_errors"
	"go-gin-event-hub/pkg/logger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Connector 由 composition root 建立並注入 repository。
// 第一次查詢時才連線，每個新的 pool 都先套用 schema；
// 連線類錯誤會丟棄產生錯誤的那個 pool，讓下一個請求重新連線。
type Connector struct {
	pool *Lazy[*pgxpool.Pool]
}

func NewConnector(cfg *config.DatabaseConfig) *Connector {
	closePool := func(p *pgxpool.Pool) { p.Close() }
	return &Connector{
		pool: NewLazy(
			func(ctx context.Context) (*pgxpool.Pool, error) {
				return OpenWithSchema(ctx, func(ctx context.Context) (*pgxpool.Pool, error) {
					return InitDatabase(ctx, cfg)
				}, closePool)
			},
			closePool,
		),
	}
}

// Pool 取得（必要時建立）連接池
func (c *Connector) Pool(ctx context.Context) (*pgxpool.Pool, error) {
	pool, _, err := c.acquire(ctx)
	return pool, err
}

func (c *Connector) acquire(ctx context.Context) (*pgxpool.Pool, uint64, error) {
	pool, gen, err := c.pool.Get(ctx)
	if err != nil {
		logger.WithComponent("database").Error("connect failed", zap.Error(err))
		return nil, 0, fmt.Errorf("%w: %v", apperrors.ErrConnection, err)
	}
	return pool, gen, nil
}

func (c *Connector) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	pool, gen, err := c.acquire(ctx)
	if err != nil {
		return pgconn.CommandTag{}, err
	}
	tag, err := pool.Exec(ctx, sql, args...)
	return tag, c.check(err, gen)
}

func (c *Connector) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	pool, gen, err := c.acquire(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := pool.Query(ctx, sql, args...)
	return rows, c.check(err, gen)
}

func (c *Connector) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	pool, gen, err := c.acquire(ctx)
	if err != nil {
		return errRow{err: err}
	}
	return checkedRow{row: pool.QueryRow(ctx, sql, args...), c: c, gen: gen}
}

func (c *Connector) Close() {
	c.pool.Close()
}

// check 連線類錯誤時重置產生錯誤的 pool（gen 已被取代則略過），並包裝成 ErrConnection
func (c *Connector) check(err error, gen uint64) error {
	if err == nil || !IsConnectionError(err) {
		return err
	}
	if c.pool.Reset(gen) {
		logger.WithComponent("database").Warn("connection error, pool reset", zap.Uint64("generation", gen), zap.Error(err))
	}
	return fmt.Errorf("%w: %v", apperrors.ErrConnection, err)
}

// IsConnectionError 判斷錯誤是否來自連線層（而非 SQL 本身）
func IsConnectionError(err error) bool {
	if err == nil {
		return false
	}
	// 呼叫端取消或逾時不代表 pool 壞掉
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err) {
		return false
	}
	if errors.Is(err, apperrors.ErrConnection) {
		return true
	}
	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// Class 08: Connection Exception
		return len(pgErr.Code) == 5 && pgErr.Code[:2] == "08"
	}
	return false
}

type errRow struct {
	err error
}

func (r errRow) Scan(dest ...any) error {
	return r.err
}

type checkedRow struct {
	row pgx.Row
	c   *Connector
	gen uint64
}

func (r checkedRow) Scan(dest ...any) error {
	return r.c.check(r.row.Scan(dest...), r.gen)
}

package testutil

import (
	"context"
	"fmt"
	"log"

	"go-gin-event-hub/config"
	"go-gin-event-hub/internal/database"

	"github.com/redis/go-redis/v9"
)

// Setup 連線到本機測試用 Postgres（5433）與 Redis（6380），並套用 schema
func Setup() (*database.Connector, *redis.Client, func(), error) {
	cfg := config.LoadTestConfig()
	ctx := context.Background()

	// Pool 連線時會一併套用 schema
	testDB := database.NewConnector(&cfg.Database)
	if _, err := testDB.Pool(ctx); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize test database: %v", err)
	}

	log.Println("Test database connected successfully")

	testRdb, err := database.InitRedis(ctx, &cfg.Redis)
	if err != nil {
		testDB.Close()
		return nil, nil, nil, fmt.Errorf("failed to initialize redis: %v", err)
	}
	log.Println("Test redis connected successfully")

	cleanup := func() {
		testDB.Close()
		log.Println("Test database closed")

		testRdb.Close()
		log.Println("Test redis closed")
	}

	return testDB, testRdb, cleanup, nil
}

// Truncate 清空 events / bookings 並重設序號
func Truncate(ctx context.Context, db database.DBTX) error {
	_, err := db.Exec(ctx, "TRUNCATE bookings, events RESTART IDENTITY CASCADE")
	return err
}

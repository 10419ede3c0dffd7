package db

import (
	"context"
	"fmt"
	"log"

	"github.com/easytech/webapi/config"
	"github.com/easytech/webapi/internal/docstore"
)

// OpenDocumentStore connects the document backend selected by DB_DRIVER.
func OpenDocumentStore(ctx context.Context, cfg config.Config) (docstore.Backend, error) {
	switch cfg.DBDriver {
	case config.DriverMongo, "":
		client, err := ConnectMongo(ctx, cfg.Mongo)
		if err != nil {
			return nil, fmt.Errorf("connect mongodb: %w", err)
		}
		log.Printf("connected to mongodb database %q", cfg.Mongo.Database)
		return docstore.NewMongo(client, cfg.Mongo.Database), nil
	case config.DriverPostgres:
		sqlDB, err := Open(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		log.Printf("connected to postgres database %q", cfg.Database.DBName)
		return docstore.NewPostgres(sqlDB), nil
	case config.DriverMemory:
		log.Println("using in-memory document store; data is lost on exit")
		return docstore.NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.DBDriver)
	}
}

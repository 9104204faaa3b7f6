package root

import (
	"context"
	"database/sql"

	"github.com/wichardvalente37/war-path-progress/internal/engine"
	"github.com/wichardvalente37/war-path-progress/internal/storage"
)

func openDB(ctx context.Context) (*sql.DB, func(), error) {
	path, err := storage.ResolveDBPath()
	if err != nil {
		return nil, nil, err
	}
	db, err := storage.Open(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = db.Close()
	}
	return db, cleanup, nil
}

func openService(ctx context.Context) (*engine.Service, func(), error) {
	db, cleanup, err := openDB(ctx)
	if err != nil {
		return nil, nil, err
	}
	return engine.NewService(db), cleanup, nil
}

// openLocal opens the service plus the implicit local account the CLI
// commands operate on.
func openLocal(ctx context.Context) (*engine.Service, string, func(), error) {
	svc, cleanup, err := openService(ctx)
	if err != nil {
		return nil, "", nil, err
	}
	u, err := svc.GetOrCreateLocalUser(ctx)
	if err != nil {
		cleanup()
		return nil, "", nil, err
	}
	return svc, u.ID, cleanup, nil
}

package root

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/wichardvalente37/war-path-progress/internal/api"
	"github.com/wichardvalente37/war-path-progress/internal/auth"
	"github.com/wichardvalente37/war-path-progress/internal/config"
	"github.com/wichardvalente37/war-path-progress/internal/engine"
	"github.com/wichardvalente37/war-path-progress/internal/storage"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}
			if err := cfg.ValidateServe(); err != nil {
				return err
			}

			dbPath := cfg.DBPath
			if dbPath == "" {
				dbPath, err = storage.ResolveDBPath()
				if err != nil {
					return err
				}
			}
			db, err := storage.Open(ctx, dbPath)
			if err != nil {
				return err
			}
			defer db.Close()

			issuer, err := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
			if err != nil {
				return err
			}

			log := slog.New(slog.NewJSONHandler(os.Stderr, nil))
			srv := api.NewServer(engine.NewService(db), issuer, cfg.BcryptCost, log)

			httpSrv := &http.Server{
				Addr:    cfg.Addr,
				Handler: srv.Handler(),
			}
			log.Info("listening", "addr", cfg.Addr, "db", dbPath)
			return httpSrv.ListenAndServe()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides WARPATH_ADDR)")

	return cmd
}

package main

import (
	"context"

	theme "github.com/goliatone/go-theme"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-regform/pkg/server"
	"github.com/goliatone/go-regform/pkg/session"
	"github.com/goliatone/go-regform/pkg/view"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve registration sessions over HTTP and WebSocket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd.Context())
		},
	}
	cmd.Flags().String("addr", "", "listen address (default :8080)")
	cmd.Flags().StringSlice("allowed-origin", nil, "extra WebSocket origin host patterns")
	bindFlag(cmd.Flags(), "addr", "server.addr")
	bindFlag(cmd.Flags(), "allowed-origin", "server.allowed_origins")
	return cmd
}

func (a *app) serve(ctx context.Context) error {
	e, err := a.engine()
	if err != nil {
		return err
	}
	logger := a.logger

	srv, err := server.New(e,
		server.WithLogger(logger.Named("http")),
		server.WithAllowedOrigins(a.cfg.Server.AllowedOrigins...),
		server.WithReadLimit(a.cfg.Server.ReadLimit),
		server.WithViewOptions(view.WithManifest(a.manifest())),
		server.WithSessionOptions(
			session.WithTTL(a.cfg.Session.TTL),
			session.WithSubmitHook(func(_ context.Context, reg session.Registration) error {
				logger.Info("registration received",
					zap.String("registration", reg.ID),
					zap.String("session", reg.SessionID),
					zap.String("email", reg.Form.Email),
					zap.String("country", reg.Form.Country),
				)
				return nil
			}),
		),
	)
	if err != nil {
		return err
	}

	go srv.Store().Run(ctx, a.cfg.Session.JanitorInterval)
	return server.ListenAndServe(ctx, a.cfg.Server.Addr, srv, logger)
}

func (a *app) manifest() *theme.Manifest {
	tokens := a.cfg.Theme.Tokens()
	if len(tokens) == 0 {
		return nil
	}
	return &theme.Manifest{Name: a.cfg.Theme.Name, Tokens: tokens}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/GyroTools/clinica-connector-go/internals/stubapi"
)

func stubCmd(a *app) *cobra.Command {
	var (
		port int
		seed bool
	)
	cmd := &cobra.Command{
		Use:   "stub",
		Short: "Levanta una API de la clínica en memoria",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("port") {
				port = a.cfg.StubPort
			}
			if !cmd.Flags().Changed("seed") {
				seed = a.cfg.StubSeed
			}

			store := stubapi.NewStore()
			if seed {
				if err := stubapi.Seed(store); err != nil {
					return fmt.Errorf("seed: %w", err)
				}
			}
			e := stubapi.New(store, a.log)

			addr := fmt.Sprintf(":%d", port)
			errCh := make(chan error, 1)
			go func() {
				if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
			}()
			a.log.Info().Str("addr", addr).Bool("seed", seed).Msg("stub API listening")

			select {
			case <-cmd.Context().Done():
			case err := <-errCh:
				return err
			}

			a.log.Info().Msg("shutting down stub API")
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := e.Shutdown(ctx); err != nil {
				return fmt.Errorf("shutdown: %w", err)
			}
			a.log.Info().Msg("stub API stopped")
			return nil
		},
	}
	cmd.Flags().IntVar(&port, "port", 3000, "puerto (STUB_PORT)")
	cmd.Flags().BoolVar(&seed, "seed", true, "carga datos de ejemplo (STUB_SEED)")
	return cmd
}

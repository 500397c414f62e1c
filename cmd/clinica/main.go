package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/GyroTools/clinica-connector-go/clinica"
	"github.com/GyroTools/clinica-connector-go/internals/config"
	"github.com/GyroTools/clinica-connector-go/internals/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// app is what every subcommand shares once the persistent flags are parsed.
type app struct {
	envFile   string
	apiURL    string
	logLevel  string
	logFormat string

	cfg *config.Config
	log zerolog.Logger
	api *clinica.Clinica
}

func newRootCmd() *cobra.Command {
	a := &app{log: zerolog.Nop()}
	root := &cobra.Command{
		Use:           "clinica",
		Short:         "Cliente de la API de la clínica",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.envFile, "env-file", config.DefaultEnvFile, "archivo .env a cargar (vacío para ninguno)")
	flags.StringVar(&a.apiURL, "api-url", "", "URL base de la API (CLINICA_API_URL)")
	flags.StringVar(&a.logLevel, "log-level", "", "nivel de log (LOG_LEVEL)")
	flags.StringVar(&a.logFormat, "log-format", "", "console o json (LOG_FORMAT)")

	root.AddCommand(loginCmd(a))
	root.AddCommand(registerCmd(a))
	root.AddCommand(pacientesCmd(a))
	root.AddCommand(medicosCmd(a))
	root.AddCommand(citasCmd(a))
	root.AddCommand(stubCmd(a))
	return root
}

// setup resolves the configuration. Flags win over the environment, which
// wins over the .env file.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.envFile)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("api-url") {
		cfg.APIURL = a.apiURL
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if cmd.Flags().Changed("log-format") {
		cfg.LogFormat = a.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := logging.New(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = log
	a.api = clinica.NewClinica(cfg.APIURL, cfg.VerifyCert,
		clinica.WithLogger(log),
		clinica.WithTimeout(cfg.Timeout),
	)
	log.Debug().Str("api_url", cfg.APIURL).Dur("timeout", cfg.Timeout).Msg("configured")
	return nil
}

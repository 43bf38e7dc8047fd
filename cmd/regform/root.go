package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/goliatone/go-regform"
	"github.com/goliatone/go-regform/internal/config"
	"github.com/goliatone/go-regform/internal/observability"
	"github.com/goliatone/go-regform/pkg/engine"
)

// Version is set at build time.
var Version = "dev"

// configKey annotates flags that override a config key.
const configKey = "regform/config-key"

// errNotSubmittable marks a validate run whose form is blocked.
var errNotSubmittable = errors.New("form cannot be submitted")

type app struct {
	cfgFile string
	cfg     *config.Config
	logger  *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:           "regform",
		Short:         "Registration form engine with live validation",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = a.logger.Sync()
		},
	}
	root.SetVersionTemplate("{{printf \"%s\\n\" .Version}}")

	flags := root.PersistentFlags()
	flags.StringVarP(&a.cfgFile, "config", "c", "", "config file (default is ./regform.yaml)")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.String("catalog", "", "locations YAML file (default is the embedded catalog)")
	flags.Bool("strict", false, "enable email, phone and age format checks")
	bindFlag(flags, "log-level", "logger.level")
	bindFlag(flags, "catalog", "catalog.path")
	bindFlag(flags, "strict", "validation.strict")

	root.AddCommand(
		newServeCmd(a),
		newPromptCmd(a),
		newValidateCmd(a),
		newCatalogCmd(a),
	)
	return root
}

func bindFlag(flags *pflag.FlagSet, name, key string) {
	_ = flags.SetAnnotation(name, configKey, []string{key})
}

func (a *app) init(cmd *cobra.Command) error {
	v, err := config.NewViper(a.cfgFile)
	if err != nil {
		return err
	}
	if err := bindAnnotated(v, cmd.Flags()); err != nil {
		return err
	}
	cfg, err := config.NewConfigFromViper(v)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = observability.NewLogger(cfg.Logger, nil)
	a.logger.Debug("configuration loaded", zap.String("version", Version), zap.String("command", cmd.Name()))
	return nil
}

// bindAnnotated binds only flags the user set, so unset flags never mask
// file or environment values.
func bindAnnotated(v *viper.Viper, flags *pflag.FlagSet) error {
	var err error
	flags.VisitAll(func(f *pflag.Flag) {
		keys := f.Annotations[configKey]
		if len(keys) == 0 || !f.Changed || err != nil {
			return
		}
		err = v.BindPFlag(keys[0], f)
	})
	return err
}

func (a *app) engine() (*engine.Engine, error) {
	var opts []engine.Option
	if a.cfg.Catalog.Path != "" {
		c, err := regform.LoadCatalogFile(a.cfg.Catalog.Path)
		if err != nil {
			return nil, err
		}
		opts = append(opts, engine.WithCatalog(c))
	}
	if a.cfg.Validation.Strict {
		opts = append(opts, engine.WithStrictFormats())
	}
	opts = append(opts, engine.WithStrictOptions(a.cfg.Validation.StrictOptions))
	if len(a.cfg.Validation.Genders) > 0 {
		opts = append(opts, engine.WithGenders(a.cfg.Validation.Genders...))
	}

	e, err := engine.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("build engine: %w", err)
	}
	return e, nil
}

func exitCode(err error) int {
	if errors.Is(err, errNotSubmittable) {
		return 2
	}
	return 1
}

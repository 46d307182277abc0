package main

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "LVMIP"

// app carries the state shared by every subcommand.
type app struct {
	v   *viper.Viper
	log *logrus.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New(), log: logrus.New()}

	cmd := &cobra.Command{
		Use:           "lvmip",
		Short:         "Simplex and branch-and-bound solver for small LP/MILP models",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.configure(cmd)
		},
	}

	pf := cmd.PersistentFlags()
	pf.String("config", "", "optional YAML file with flag values")
	pf.String("log-level", "info", "logrus level (debug, info, warn, error)")
	pf.Bool("verbose", false, "log every trace event of every solve")

	cmd.AddCommand(newSolveCmd(a))

	return cmd
}

// configure binds flags and environment into viper, reads the optional
// config file and sets up the logger.
func (a *app) configure(cmd *cobra.Command) error {
	a.v.SetEnvPrefix(envPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()
	if err := bindFlags(a.v, cmd.Flags()); err != nil {
		return err
	}
	if path := a.v.GetString("config"); path != "" {
		a.v.SetConfigFile(path)
		a.v.SetConfigType("yaml")
		if err := a.v.ReadInConfig(); err != nil {
			return errors.Wrap(err, "lvmip: read config")
		}
	}

	a.log.SetOutput(cmd.ErrOrStderr())
	a.log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	level, err := logrus.ParseLevel(a.v.GetString("log-level"))
	if err != nil {
		return errors.Wrap(err, "lvmip: --log-level")
	}
	if a.v.GetBool("verbose") && level < logrus.DebugLevel {
		level = logrus.DebugLevel
	}
	a.log.SetLevel(level)
	if cf := a.v.ConfigFileUsed(); cf != "" {
		a.log.WithField("config", cf).Debug("configuration loaded")
	}

	return nil
}

// bindFlags binds every flag of fs (local and inherited) to v under its own name.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	var err error
	fs.VisitAll(func(f *pflag.Flag) {
		if err == nil {
			err = v.BindPFlag(f.Name, f)
		}
	})

	return errors.Wrap(err, "lvmip: bind flags")
}

// Copyright The REIA Console Authors.
// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/reia-project/reia-console/pkg/constants"
	logging "github.com/reia-project/reia-console/pkg/log"
)

const envPrefix = "REIA"

// options carries the resolved configuration shared by every command.
type options struct {
	cfgFile string
	v       *viper.Viper
}

func newRootCmd() *cobra.Command {
	opts := &options{v: viper.New()}

	cmd := &cobra.Command{
		Use:   "reiactl",
		Short: "reiactl is a console for the earthquake loss-modeling backend",
		Long: `Upload exposure, vulnerability and loss models, manage loss configurations,
trigger loss calculations and inspect every collection held by the backend.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.initConfig(); err != nil {
				return err
			}
			logging.InitStructureLogConfig(cmd.ErrOrStderr(), opts.v.GetBool("debug"))
			if used := opts.v.ConfigFileUsed(); used != "" {
				slog.Debug("using config file", "path", used)
			}
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.cfgFile, "config", "", "config file (default is $HOME/.reiactl.yaml)")
	flags.String("url", constants.DefaultBaseURL, "backend API base URL")
	flags.String("timeout", "30s", "HTTP timeout for each request")
	flags.String("catalog", "", "resource catalog file (YAML) overriding the built-in resources")
	flags.Bool("debug", false, "enable debug logging")

	for _, name := range []string{"url", "timeout", "catalog", "debug"} {
		_ = opts.v.BindPFlag(name, flags.Lookup(name))
	}

	cmd.AddCommand(
		newListCmd(opts),
		newSubmitCmd(opts),
		newCalculateCmd(opts),
		newOverviewCmd(opts),
		newPingCmd(opts),
	)
	return cmd
}

// initConfig layers configuration: flags over REIA_* environment (a .env
// file in the working directory is loaded first) over the config file.
func (o *options) initConfig() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	o.v.SetEnvPrefix(envPrefix)
	o.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	o.v.AutomaticEnv()

	if o.cfgFile != "" {
		o.v.SetConfigFile(o.cfgFile)
		return o.v.ReadInConfig()
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	o.v.AddConfigPath(home)
	o.v.SetConfigType("yaml")
	o.v.SetConfigName(".reiactl")

	var notFound viper.ConfigFileNotFoundError
	if err := o.v.ReadInConfig(); err != nil && !errors.As(err, &notFound) {
		return err
	}
	return nil
}

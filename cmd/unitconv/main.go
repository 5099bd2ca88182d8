// unitconv converts values between measurement units from the command line.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "UNITCONV"

type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer
	log    *logrus.Logger

	configFile string
	logLevel   string
	v          *viper.Viper
}

func newApp(in io.Reader, out, errOut io.Writer) *app {
	log := logrus.New()
	log.SetOutput(errOut)
	return &app{in: in, out: out, errOut: errOut, log: log}
}

func newRootCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "unitconv",
		Short:         "Convert values between measurement units",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			v, err := a.config(cmd)
			if err != nil {
				return err
			}
			level, err := logrus.ParseLevel(v.GetString("log-level"))
			if err != nil {
				return err
			}
			a.log.SetLevel(level)
			a.v = v
			return nil
		},
	}
	cmd.SetGlobalNormalizationFunc(wordSepNormalizeFunc)
	cmd.SetIn(a.in)
	cmd.SetOut(a.out)
	cmd.SetErr(a.errOut)

	cmd.PersistentFlags().StringVar(&a.configFile, "config", "", "Path to a config file (yaml, toml or json)")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "warning", "Log level (debug, info, warning, error)")

	cmd.AddCommand(
		newConvertCommand(a),
		newCategoriesCommand(a),
		newUnitsCommand(a),
		newTableCommand(a),
		newExportCommand(a),
		newBatchCommand(a),
	)
	return cmd
}

// wordSepNormalizeFunc accepts --log_level for --log-level.
func wordSepNormalizeFunc(f *pflag.FlagSet, name string) pflag.NormalizedName {
	if strings.Contains(name, "_") {
		return pflag.NormalizedName(strings.Replace(name, "_", "-", -1))
	}
	return pflag.NormalizedName(name)
}

// config resolves cmd's flags against UNITCONV_* variables and the config
// file. An explicitly set flag wins over env, env over file, file over the
// flag default.
func (a *app) config(cmd *cobra.Command) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if a.configFile != "" {
		v.SetConfigFile(a.configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", a.configFile, err)
		}
	}
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, err
	}
	return v, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a := newApp(os.Stdin, os.Stdout, os.Stderr)
	if err := newRootCommand(a).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

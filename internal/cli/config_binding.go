package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"repolint/internal/flags"
)

// loadConfigDefaults reads the config file and REPOLINT_* environment
// variables and applies them to every flag of cmd the user did not set on the
// command line. A missing default config file is fine; a missing explicit one
// is not.
func loadConfigDefaults(cmd *cobra.Command, v *viper.Viper, file string) error {
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(".repolint")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
	}

	v.SetEnvPrefix(flags.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	var errs []error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Changed || f.Name == flags.FlagConfig || f.Name == "help" {
			return
		}
		if !v.IsSet(f.Name) {
			return
		}

		value := v.GetString(f.Name)
		if strings.HasSuffix(f.Value.Type(), "Slice") {
			value = strings.Join(v.GetStringSlice(f.Name), ",")
		}
		if err := cmd.Flags().Set(f.Name, value); err != nil {
			errs = append(errs, fmt.Errorf("invalid %s value %q from config: %w", f.Name, value, err))
		}
	})
	return errors.Join(errs...)
}

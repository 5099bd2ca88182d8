package main

import (
	"fmt"
	"unitconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
)

func newConvertCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert a value from one unit to another",
		Example: `  unitconv convert --category Length --from Kilometer --to Mile --value 1
  UNITCONV_CATEGORY=Temperature unitconv convert --from Fahrenheit --to Celsius --value 32`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			category, err := requireString(a, "category")
			if err != nil {
				return err
			}
			from, err := requireString(a, "from")
			if err != nil {
				return err
			}
			to, err := requireString(a, "to")
			if err != nil {
				return err
			}
			value, err := floatSetting(a, "value")
			if err != nil {
				return err
			}

			a.log.WithFields(logrus.Fields{
				"category": category,
				"from":     from,
				"to":       to,
				"value":    value,
			}).Debug("converting")
			result, err := unitconv.Convert(value, from, to, category)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), unitconv.FormatValue(result))
			return nil
		},
	}
	cmd.Flags().String("category", "", "Unit category, e.g. Length or Weight/Mass")
	cmd.Flags().String("from", "", "Source unit")
	cmd.Flags().String("to", "", "Target unit")
	cmd.Flags().Float64("value", 1, "Value to convert")
	return cmd
}

func requireString(a *app, key string) (string, error) {
	s := a.v.GetString(key)
	if s == "" {
		return "", fmt.Errorf("--%s is required", key)
	}
	return s, nil
}

// floatSetting parses a numeric setting. Unlike viper's GetFloat64 it
// reports values that are not numbers instead of reading them as 0.
func floatSetting(a *app, key string) (float64, error) {
	f, err := cast.ToFloat64E(a.v.Get(key))
	if err != nil {
		return 0, fmt.Errorf("--%s: %w", key, err)
	}
	return f, nil
}

func intSetting(a *app, key string) (int, error) {
	n, err := cast.ToIntE(a.v.Get(key))
	if err != nil {
		return 0, fmt.Errorf("--%s: %w", key, err)
	}
	return n, nil
}

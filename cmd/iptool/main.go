/*
 * Copyright (C) 2021 IBM, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 *
 */

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/netobserv/iptool/pkg/api"
	"github.com/netobserv/iptool/pkg/commands"
	"github.com/netobserv/iptool/pkg/config"
	"github.com/netobserv/iptool/pkg/operational"
	"github.com/netobserv/iptool/pkg/prometheus"
	"github.com/netobserv/iptool/pkg/utils"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	buildVersion       = "unknown"
	buildDate          = "unknown"
	cfgFile            string
	envPrefix          = "IPTOOL"
	defaultLogFileName = ".iptool"
	opts               config.Options
)

// rootCmd represents the root command
var rootCmd = &cobra.Command{
	Use:   "iptool <command> [flags] [args]",
	Short: "Invert, filter, inflate and deflate lists of IPv4 addresses and subnets",
	Long: `Invert, filter, inflate and deflate lists of IPv4 addresses and subnets.

Arguments are a list of addresses, subnets (CIDR notation) or ranges (a.b.c.d-e.f.g.h),
'@file' or the path of a file, or '-' to read standard input.`,
	Example: `  iptool invert iplist.txt
  iptool filter --by 192.168.0.0/16 - < input.txt
  iptool deflate 1.1.1.0/24 1.1.2.0/24
  iptool inflate --separator ', ' 10.0.0.0/30`,
	SilenceUsage: true,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all commands",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		for _, c := range commands.List() {
			fmt.Fprintf(cmd.OutOrStdout(), "  %-12s %s\n", c.Name, c.Description)
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s:\n=====\nBuild version: %s\nBuild date: %s\n",
			filepath.Base(os.Args[0]), buildVersion, buildDate)
	},
}

// initConfig use config file and ENV variables if set.
func initConfig() {
	v := viper.New()

	if cfgFile != "" {
		// Use config file from the flag.
		v.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		if err != nil {
			log.Fatal(err)
		}
		// Search config in home directory with name ".iptool" (without extension).
		v.AddConfigPath(home)
		v.SetConfigName(defaultLogFileName)
	}

	// Read environment variables that match prefix
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	// If a config file is found, read it in.
	cfgErr := v.ReadInConfig()

	if cfgErr == nil {
		// Decode only validates the file: unknown keys are fatal. The decoded values are dropped,
		// opts is filled by bindFlags below so that flags keep precedence over the file.
		if _, err := config.Decode(v.AllSettings()); err != nil {
			log.Fatalf("%s: %v", v.ConfigFileUsed(), err)
		}
	}

	bindFlags(rootCmd.PersistentFlags(), v)
	for _, cmd := range rootCmd.Commands() {
		bindFlags(cmd.Flags(), v)
	}

	// initialize logger
	initLogger()

	var notFound viper.ConfigFileNotFoundError
	if cfgErr != nil && (cfgFile != "" || !errors.As(cfgErr, &notFound)) {
		log.Errorf("Read config error: %v", cfgErr)
	}
}

func initLogger() {
	ll, err := log.ParseLevel(opts.LogLevel)
	if err != nil {
		ll = log.ErrorLevel
	}
	log.SetLevel(ll)
	log.SetFormatter(&log.TextFormatter{DisableColors: false, FullTimestamp: true, PadLevelText: true, DisableQuote: true})
}

func bindFlags(flags *pflag.FlagSet, v *viper.Viper) {
	flags.VisitAll(func(f *pflag.Flag) {
		envVarSuffix := strings.ToUpper(strings.NewReplacer(".", "_", "-", "_").Replace(f.Name))
		_ = v.BindEnv(f.Name, fmt.Sprintf("%s_%s", envPrefix, envVarSuffix))

		// Apply the viper config value to the flag when the flag is not set and viper has a value
		if !f.Changed && v.IsSet(f.Name) {
			val := v.Get(f.Name)
			switch typed := val.(type) {
			case bool, uint, string, int32, int16, int8, int, uint32, uint64, int64, float64, float32:
				_ = flags.Set(f.Name, fmt.Sprintf("%v", val))
			case []string:
				// repeatable flags take one value per Set
				for _, item := range typed {
					_ = flags.Set(f.Name, item)
				}
			case []interface{}:
				for _, item := range typed {
					_ = flags.Set(f.Name, fmt.Sprintf("%v", item))
				}
			default:
				var jsonNew = jsoniter.ConfigCompatibleWithStandardLibrary
				b, err := jsonNew.Marshal(&val)
				if err != nil {
					log.Fatalf("can't parse flag %s into json with value %v got error %s", f.Name, val, err)
					return
				}
				_ = flags.Set(f.Name, string(b))
			}
		}
	})
}

func initFlags() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", fmt.Sprintf("config file (default is $HOME/%s)", defaultLogFileName))
	rootCmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "error", "Log level: debug, info, warning, error")
	rootCmd.PersistentFlags().StringVarP(&opts.Output, "output", "o", "", "Output file (default: standard output)")
	rootCmd.PersistentFlags().StringVar(&opts.Format, "format", api.OutputFormatName("Text"),
		fmt.Sprintf("Output format: %s", strings.Join(api.GetEnumNames(api.OutputFormatEnum{}), ", ")))
	rootCmd.PersistentFlags().StringVar(&opts.Separator, "separator", "", "Separator between values in text format (default: new line)")
	rootCmd.PersistentFlags().BoolVar(&opts.Strict, "strict", false, "Reject subnets with host bits set instead of masking them")
	rootCmd.PersistentFlags().StringVar(&opts.Metrics.Address, "metrics.address", config.DefaultMetricsAddress, "Metrics server address")
	rootCmd.PersistentFlags().IntVar(&opts.Metrics.Port, "metrics.port", 0, "Metrics server port (default: disabled)")
	rootCmd.PersistentFlags().StringVar(&opts.Metrics.Prefix, "metrics.prefix", config.DefaultMetricsPrefix, "Prefix of the operational metrics names")

	for _, c := range commands.List() {
		cmd := &cobra.Command{
			Use:   c.Name + " [args]",
			Short: c.Description,
			RunE:  runCommand,
		}
		switch c.Name {
		case "filter":
			cmd.Flags().StringArrayVar(&opts.By, "by", nil, "Subnet used for filtering (repeatable)")
		case "inflate":
			cmd.Flags().Uint64Var(&opts.MaxAddresses, "max-addresses", 0, "Stop after this many addresses (default: unlimited)")
		}
		rootCmd.AddCommand(cmd)
	}
	rootCmd.AddCommand(listCmd, versionCmd)
}

func runCommand(cmd *cobra.Command, args []string) error {
	if err := opts.Validate(); err != nil {
		return err
	}

	// Setup exit manager, so that long outputs stop cleanly
	utils.SetupElegantExit()
	metricsOpts := opts.MetricsOptions()
	promServer := prometheus.InitializePrometheus(&metricsOpts)
	if promServer != nil {
		defer func() { _ = promServer.Shutdown(context.Background()) }()
	}

	runner := commands.NewRunner(&opts, operational.NewMetrics(&metricsOpts), cmd.InOrStdin())
	if err := runner.Run(cmd.Name(), args); err != nil {
		log.WithError(err).Error("command failed")
		return err
	}
	log.Debugf("exiting main run")
	return nil
}

func main() {
	// Initialize flags (command line parameters)
	initFlags()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

/*
Copyright © 2025 Honoka Toda, Shinya Ishitobi

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/goatx/endpointgen/internal/config"
	"github.com/goatx/endpointgen/internal/spec"
	"github.com/goatx/endpointgen/internal/tsgen"
	"github.com/spf13/cobra"
)

// version is overridden at build time with -ldflags "-X".
var version = "dev"

// debugEnv enables debug logging when set to any non-empty value.
const debugEnv = "ENDPOINTGEN_DEBUG"

// rootCmd represents the base command when called without any subcommands
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "endpointgen",
		Short: "Generate TypeScript endpoint builders from an OpenAPI spec",
		Long: `Read an OpenAPI/Swagger document and emit a TypeScript file with one
endpoint builder per operation. Each builder takes the operation's path
parameters and optional query parameters and returns its {path, method}.

All settings come from the YAML config file given with -C/--config:

  file:    path of the OpenAPI document
  output:  path of the TypeScript file to write
  server:  base URL exported as baseUrl
  project: project name used in the file header`,
		Version: version,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configPath, err := cmd.Flags().GetString("config")
			if err != nil {
				return err
			}

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			// Past this point failures are not usage problems.
			cmd.SilenceUsage = true

			return generate(cmd, cfg)
		},
	}

	cmd.Flags().StringP("config", "C", "", "YAML config file path")
	if err := cmd.MarkFlagRequired("config"); err != nil {
		panic(err)
	}
	return cmd
}

func generate(cmd *cobra.Command, cfg *config.Config) error {
	level := slog.LevelWarn
	if os.Getenv(debugEnv) != "" {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	doc, err := spec.Load(cfg.File)
	if err != nil {
		return err
	}

	content, err := tsgen.Generate(cmd.Context(), doc, tsgen.OptionsFromConfig(cfg, logger))
	if err != nil {
		return err
	}

	if err := tsgen.WriteFile(cfg.Output, content); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "TypeScript file generated: %s\n", cfg.Output)
	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

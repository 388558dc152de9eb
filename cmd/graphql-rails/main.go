// Copyright 2019 Ross Light
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// graphql-rails checks a YAML declaration file and prints the GraphQL schema
// it describes.
//
// Usage:
//
//	graphql-rails sdl --file graphql.yaml [--out schema.graphql]
//	graphql-rails check --file graphql.yaml
//
// Every flag may also be set through an environment variable with the
// GRAPHQL_RAILS_ prefix, like GRAPHQL_RAILS_LOG_LEVEL=debug.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/xerrors"
	"zombiezen.com/go/graphql-rails/internal/declfile"
	"zombiezen.com/go/graphql-rails/model"
	"zombiezen.com/go/graphql-rails/router"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "graphql-rails:", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("GRAPHQL_RAILS")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:           "graphql-rails",
		Short:         "Build GraphQL schemas from model and route declarations",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringP("file", "f", "graphql.yaml", "declaration file to read")
	root.PersistentFlags().String("log-level", "warning", "logging level (debug, info, warning, error)")
	v.BindPFlag("file", root.PersistentFlags().Lookup("file"))
	v.BindPFlag("log-level", root.PersistentFlags().Lookup("log-level"))

	sdl := &cobra.Command{
		Use:   "sdl",
		Short: "Print the schema in GraphQL schema definition language",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := load(v, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			out := v.GetString("out")
			if out == "" {
				return rt.WriteSDL(cmd.OutOrStdout())
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			if err := rt.WriteSDL(f); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return xerrors.Errorf("write %s: %w", out, err)
			}
			return nil
		},
	}
	sdl.Flags().StringP("out", "o", "", "write the schema to this file instead of stdout")
	v.BindPFlag("out", sdl.Flags().Lookup("out"))

	check := &cobra.Command{
		Use:   "check",
		Short: "Build the schema and report any configuration errors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := load(v, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if _, err := rt.Build(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d models, %d queries, %d mutations\n",
				v.GetString("file"), len(rt.Models().Models()), len(rt.Queries()), len(rt.Mutations()))
			return nil
		},
	}

	root.AddCommand(sdl, check)
	return root
}

// load reads the configured declaration file into a new router.
func load(v *viper.Viper, logOut io.Writer) (*router.Router, error) {
	level, err := logrus.ParseLevel(v.GetString("log-level"))
	if err != nil {
		return nil, err
	}
	log := logrus.New()
	log.Out = logOut
	log.Level = level

	f, err := declfile.Load(v.GetString("file"))
	if err != nil {
		return nil, err
	}
	rt := router.New(model.NewRegistry(model.WithLogger(log)), router.WithLogger(log))
	if err := f.Apply(rt); err != nil {
		return nil, xerrors.Errorf("%s: %w", v.GetString("file"), err)
	}
	return rt, nil
}

/*
 * Copyright (c) 2026, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

// tcstring encodes consent record files into TC strings and decodes TC
// strings back into records.
//
//	tcstring [--home DIR] encode [--tcf-version N] [--stamp] FILE
//	tcstring [--home DIR] decode [--format yaml|json|cbor] [--output FILE] TCSTRING
//
// FILE and TCSTRING may be "-" to read from standard input. Defaults for
// fields a record leaves unset come from DIR/repository/conf/deployment.yaml
// and the TCF_* environment, after DIR/config/*.env files are loaded.
package main

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/wso2/identity-tcf-consent/internal/system/config"
	"github.com/wso2/identity-tcf-consent/internal/system/errors"
	"github.com/wso2/identity-tcf-consent/internal/system/log"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var home string

	flagSet := pflag.NewFlagSet("tcstring", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.SetInterspersed(false)
	flagSet.StringVar(&home, "home", "", "TCF home directory (default: working directory)")
	flagSet.Usage = func() { printUsage(stderr, flagSet) }

	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}
	rest := flagSet.Args()
	if len(rest) == 0 {
		printUsage(stderr, flagSet)
		return errors.NewClientErrorf(errors.INVALID_ARGUMENT, errors.KindValidation, "missing subcommand")
	}

	if home == "" {
		dir, err := os.Getwd()
		if err != nil {
			return errors.Wrapf(err, "resolving working directory")
		}
		home = dir
	}
	cfg, err := loadConfig(home)
	if err != nil {
		return err
	}
	if err := config.InitializeTCFRuntime(home, cfg); err != nil {
		return err
	}
	if err := log.InitWithWriter(cfg.Log.LogLevel, stderr); err != nil {
		return err
	}

	switch rest[0] {
	case "encode":
		return runEncode(rest[1:], stdin, stdout, stderr)
	case "decode":
		return runDecode(rest[1:], stdin, stdout, stderr)
	default:
		printUsage(stderr, flagSet)
		return errors.NewClientErrorf(errors.INVALID_ARGUMENT, errors.KindValidation,
			"unknown subcommand %q", rest[0])
	}
}

// loadConfig reads the deployment file under home. A home without one runs
// on the built-in defaults plus environment overrides.
func loadConfig(home string) (*config.Config, error) {
	envFiles, err := filepath.Glob(filepath.Join(home, "config", "*.env"))
	if err != nil {
		return nil, errors.Wrapf(err, "listing env files")
	}
	if err := config.LoadEnvFiles(envFiles...); err != nil {
		return nil, err
	}

	cfg, err := config.LoadConfig(home, config.DeploymentFile)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	defaults := config.Default()
	if err := config.ApplyEnv(&defaults); err != nil {
		return nil, err
	}
	return &defaults, nil
}

func readInput(arg string, stdin io.Reader) ([]byte, error) {
	if arg == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, errors.Wrapf(err, "reading standard input")
		}
		return data, nil
	}
	data, err := os.ReadFile(arg)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", arg)
	}
	return data, nil
}

func printUsage(w io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprintf(w, `tcstring converts between consent record files and TC strings.

Usage:
  tcstring [--home DIR] encode [--tcf-version N] [--stamp] FILE
  tcstring [--home DIR] decode [--format yaml|json|cbor] [--output FILE] TCSTRING

Global flags:
%s`, flagSet.FlagUsages())
}

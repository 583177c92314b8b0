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

package config

import (
	"os"
	"path"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"github.com/wso2/identity-tcf-consent/internal/system/errors"
)

// DeploymentFile is the deployment configuration path relative to the TCF home.
const DeploymentFile = "repository/conf/deployment.yaml"

// LoadEnvFiles loads every given .env file into the process environment.
// Variables already present in the environment are kept.
func LoadEnvFiles(files ...string) error {
	if len(files) == 0 {
		return nil
	}
	if err := godotenv.Load(files...); err != nil {
		return errors.Wrapf(err, "loading env files")
	}
	return nil
}

// LoadConfig reads the YAML file at tcfHome/filePath on top of Default,
// expanding ${VAR} references, then applies TCF_* environment overrides.
func LoadConfig(tcfHome, filePath string) (*Config, error) {
	file, err := os.ReadFile(path.Join(tcfHome, filePath))
	if err != nil {
		return nil, errors.NewServerError(errors.LOAD_CONFIG, errors.KindValidation,
			errors.Wrapf(err, "reading %s", filePath))
	}

	expanded := os.ExpandEnv(string(file))

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, errors.NewServerError(errors.LOAD_CONFIG, errors.KindValidation,
			errors.Wrapf(err, "parsing %s", filePath))
	}
	if err := ApplyEnv(&cfg); err != nil {
		return nil, err
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ApplyEnv overrides cfg with any TCF_* variables set in the environment.
func ApplyEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return errors.NewServerError(errors.LOAD_CONFIG, errors.KindValidation,
			errors.Wrapf(err, "parsing environment"))
	}
	return nil
}

// Validate checks the values the CMP API refuses at construction.
func Validate(cfg Config) error {
	if cfg.Cmp.ID < 2 {
		return errors.NewClientErrorf(errors.INVALID_CMP_ID, errors.KindValidation,
			"cmp.id must be at least 2, got %d", cfg.Cmp.ID)
	}
	if cfg.Cmp.Version < 0 {
		return errors.NewClientErrorf(errors.INVALID_CMP_VERSION, errors.KindValidation,
			"cmp.version must not be negative, got %d", cfg.Cmp.Version)
	}
	return nil
}

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

// CmpConfig identifies the consent management platform writing TC strings.
type CmpConfig struct {
	ID      int `yaml:"id" env:"TCF_CMP_ID"`
	Version int `yaml:"version" env:"TCF_CMP_VERSION"`
}

// TCFConfig holds the defaults stamped onto new consent records.
type TCFConfig struct {
	Version              int    `yaml:"version" env:"TCF_VERSION"`
	ConsentScreen        int    `yaml:"consent_screen" env:"TCF_CONSENT_SCREEN"`
	ConsentLanguage      string `yaml:"consent_language" env:"TCF_CONSENT_LANGUAGE"`
	PublisherCountryCode string `yaml:"publisher_country_code" env:"TCF_PUBLISHER_COUNTRY_CODE"`
	VendorListVersion    int    `yaml:"vendor_list_version" env:"TCF_VENDOR_LIST_VERSION"`
	PolicyVersion        int    `yaml:"policy_version" env:"TCF_POLICY_VERSION"`
	IsServiceSpecific    bool   `yaml:"is_service_specific" env:"TCF_IS_SERVICE_SPECIFIC"`
}

type LogConfig struct {
	LogLevel string `yaml:"log_level" env:"TCF_LOG_LEVEL"`
}

type Config struct {
	Cmp CmpConfig `yaml:"cmp"`
	TCF TCFConfig `yaml:"tcf"`
	Log LogConfig `yaml:"log"`
}

// Default returns the configuration used when no deployment file is given.
func Default() Config {
	return Config{
		TCF: TCFConfig{
			Version:         2,
			ConsentLanguage: "EN",
			PolicyVersion:   2,
		},
		Log: LogConfig{LogLevel: "INFO"},
	}
}

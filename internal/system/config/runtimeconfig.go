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

import "sync"

// TCFRuntime holds the runtime configuration for the TCF tooling.
type TCFRuntime struct {
	TCFHome string `yaml:"tcf_home"`
	Config  Config `yaml:"config"`
}

var (
	runtimeConfig *TCFRuntime
	once          sync.Once
)

// InitializeTCFRuntime initializes the TCFRuntime configuration.
func InitializeTCFRuntime(tcfHome string, config *Config) error {

	once.Do(func() {
		runtimeConfig = &TCFRuntime{
			TCFHome: tcfHome,
			Config:  *config,
		}
	})

	return nil
}

// GetTCFRuntime returns the TCFRuntime configuration.
func GetTCFRuntime() *TCFRuntime {

	if runtimeConfig == nil {
		panic("TCFRuntime is not initialized")
	}
	return runtimeConfig
}

// OverrideTCFRuntime replaces the runtime configuration. Used by tests.
func OverrideTCFRuntime(conf Config) {
	runtimeConfig = &TCFRuntime{
		Config: conf,
	}
}

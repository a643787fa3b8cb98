// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package opts

import (
	"os"
)

// ConfigEnvVar overrides the default config file path
const ConfigEnvVar = "OBFUSCATOR_CONFIG"

// DefaultConfigFile is used when neither the flag nor the environment names a config
const DefaultConfigFile = "obfuscator.yaml"

// RootOpts contains shared options used by all commands
type RootOpts struct {
	ConfigFile string
	Debug      bool
}

// DefaultConfigFromEnv returns the config path from the environment, if set
func DefaultConfigFromEnv() string {
	if v := os.Getenv(ConfigEnvVar); v != "" {
		return v
	}
	return DefaultConfigFile
}

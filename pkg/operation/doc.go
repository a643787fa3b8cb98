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

/*
Package operation assembles obfuscated outputs from source files.

	+-----------+     +-----------+     +-----------+
	|  Resolve  | --> |   Plan    | --> |   Write   |
	| (sources) |     | (merge or |     | (engine + |
	|           |     |  fan-out) |     |  outputs) |
	+-----------+     +-----------+     +-----------+

🔄 Flow, per target:
 1. Resolve drops sources that do not exist, warning once per missing path
 2. Plan looks at the destination: a filename means one merged output, a trailing
    separator means one output per source at dest+source
 3. Write runs the engine, prepends the banner, writes the code and, when enabled,
    the rewritten source map next to it

⚡ Failure handling:
A failure while obfuscating or writing one output is logged and counted as failed.
It never stops sibling files or later targets.

🤝 Interfaces:
- engine.Engine: the obfuscation capability
- filesystem.FileSystem: exists/read/write
- Logger: warn/error/ok lines for the user
*/
package operation

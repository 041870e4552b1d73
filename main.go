// Command aie-ini merges the per-plugin INI fragments of an AI engine build
// tree into the single plugin configuration installed for one board.
//
// Usage:
//
//	aie-ini [flags] BUILD_DIR OUT_DIR BOARD_NAME
//
// Fragments are read from
// BUILD_DIR/foundation/ai/engine/services/common/protocol/plugin_config/plugin_config_ini
// and the result is written to OUT_DIR/etc/ai_engine_plugin.ini.
//
// Exit codes:
//   - 0: success
//   - 1: a fragment could not be decoded, parsed or merged, or the output could not be written
//   - 2: usage error
package main

import "os"

func main() {
	os.Exit(Run(os.Args[1:], os.Stdout, os.Stderr))
}

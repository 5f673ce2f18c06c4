package config

// Template is the commented file written by `sweep init`.
const Template = `# Sweep Configuration File
#
# Values here are overridden by SWEEP_* environment variables
# (for example SWEEP_LOGGING_LEVEL=debug) and by command-line flags.

defaults:
  # Column holding the swept parameter level.
  index_field: risk_tolerance
  # Column holding the best action label.
  action_field: best_action
  # Worksheet to read from xlsx files (empty = first sheet).
  sheet: ""

# Reject tables whose index column decreases.
require_sorted: false

# History database. Defaults to $XDG_DATA_HOME/sweep/sweep.db
# (~/.local/share/sweep/sweep.db when XDG_DATA_HOME is unset).
# database:
#   path: ~/sweep-history.db

logging:
  level: info      # debug, info, warn, error
  format: auto     # auto, console, json

output:
  format: table    # table, json, jsonl, yaml
  theme: default   # default, high-contrast
  band_width: 48
`

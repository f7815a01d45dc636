// Package config loads the bpcalc-server configuration from config.yaml.
//
// Config fields:
//   - Server.HTTPPort        — port for the form API and stream hub (default 8080)
//   - Server.ReadTimeout     — http.Server read timeout (default 10s)
//   - Server.WriteTimeout    — http.Server write timeout (default 10s)
//   - Server.Stream.Interval — summary broadcast period for /ws/stream (default 5s)
//   - Server.Auth.Mode       — "apikey" or "none"; guards /metrics and /ws/stream
//   - Server.Auth.KeyEnv     — environment variable holding the expected API key
//   - Server.Auth.Header     — HTTP header name (default "x-api-key")
//   - Telemetry.Enabled      — emit BloodPressureCalculated events (default true)
//   - Telemetry.Webhooks     — event delivery targets; URLs come from env vars
//   - Log.Level              — debug | info | warn | error (default info)
//
// Load(path) applies defaults, unmarshals the YAML file, applies BPCALC_*
// environment overrides, then validates. An empty path skips the file.
//
// Watch(ctx, path, onChange) uses fsnotify to reload the file on change. It
// handles the rename→create pattern used by atomic-save editors by re-adding
// the watch after each event.
package config

// Package config reads, validates and writes flat NAME=value configuration
// files described by a fixed schema, such as the iND-BiOS firmware config.
//
// Every field has a native value used in Go code and a serialized value used
// in the file. The store keeps serialized values; Get converts on demand.
//
// Features:
//   - Eight field types: boolean, bounded integer, discrete list, regex
//     string, hex colour and three kinds of Xbox file path
//   - Validation of both representations on every Set and Read
//   - Line length limit enforced when a value is set
//   - Quoting of values containing whitespace, on write only
//   - Omission of default values on write
//   - Derived booleans recomputed before every write
//   - Presets: partial files applied to or extracted from a subset of fields
//   - Export and import of native values as TOML, YAML or JSON
//
// Quick Start:
//
//	cfg := config.NewIndBios()
//	if err := cfg.ReadFile("ind_bios.cfg", config.ResetToDefault); err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := cfg.Set("FANSPEED", 30); err != nil {
//	    log.Fatal(err) // *InvalidValueError
//	}
//	dash, _ := cfg.String("DASH1") // C:\evoxdash.xbe
//
//	if err := cfg.WriteFile("ind_bios.cfg", true); err != nil {
//	    log.Fatal(err)
//	}
//
// Builder:
//
//	cfg, err := config.NewIndBiosBuilder().
//	    WithFile("ind_bios.cfg").
//	    WithPolicy(config.RaiseError).
//	    WithLogger(logger).
//	    Build()
//	if err != nil && !errors.Is(err, config.ErrConfigNotFound) {
//	    return err
//	}
//
// Errors:
// All engine errors match ErrConfig. UnknownFieldError, InvalidValueError,
// PresetNotFoundError and ParseError also match their own sentinel.
//
// Concurrency:
// A Config is owned by a single caller. It holds no locks and starts no
// goroutines.
package config

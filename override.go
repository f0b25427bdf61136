// FILE: override.go
package louislog

import (
	"reflect"
	"strconv"
	"strings"
)

// applyStringOverrides applies "key=value" overrides to a clone of the
// given configuration. Keys use dotted toml paths ("storage.batch_size");
// values are converted by the target field's type. Boolean and integer
// parse failures are collected and reported together.
func applyStringOverrides(base *Config, overrides []string) (*Config, error) {
	cfg := base.Clone()

	var errs []error
	for _, override := range overrides {
		key, value, err := parseKeyValue(override)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := applyConfigField(cfg, key, value); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		combined := errs[0]
		for _, err := range errs[1:] {
			combined = combineErrors(combined, err)
		}
		return nil, combined
	}

	return cfg, nil
}

// ApplyOverride returns a copy of the configuration with the given
// "key=value" overrides applied. The receiver is never modified; the logger
// treats its configuration as immutable once built.
func (c *Config) ApplyOverride(overrides ...string) (*Config, error) {
	return applyStringOverrides(c, overrides)
}

// applyConfigField converts a string value to the field's type and sets it.
func applyConfigField(cfg *Config, key, value string) error {
	field, err := lookupField(reflect.ValueOf(cfg).Elem(), key)
	if err != nil {
		return err
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Int64:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmtErrorf("invalid integer for '%s': %s", key, value)
		}
		field.SetInt(n)
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmtErrorf("invalid boolean for '%s': %s", key, value)
		}
		field.SetBool(b)
	case reflect.Slice:
		var parts []string
		for _, item := range strings.Split(value, ",") {
			if item = strings.TrimSpace(item); item != "" {
				parts = append(parts, item)
			}
		}
		return setFieldValue(field, parts)
	default:
		return fmtErrorf("unsupported override type for '%s'", key)
	}

	return nil
}

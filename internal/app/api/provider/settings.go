package provider

import "time"

// Settings returns the "settings" map of a provider config, never nil.
func Settings(config map[string]interface{}) map[string]interface{} {
	return section(config, "settings")
}

// Auth returns the "auth" map of a provider config, never nil.
func Auth(config map[string]interface{}) map[string]interface{} {
	return section(config, "auth")
}

func section(config map[string]interface{}, name string) map[string]interface{} {
	if m, ok := config[name].(map[string]interface{}); ok {
		return m
	}
	return make(map[string]interface{})
}

// String reads a string setting, falling back to def when missing or empty.
func String(settings map[string]interface{}, key, def string) string {
	if v, ok := settings[key].(string); ok && v != "" {
		return v
	}
	return def
}

// Float reads a numeric setting. YAML may decode whole numbers as int.
func Float(settings map[string]interface{}, key string, def float64) float64 {
	switch v := settings[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return def
	}
}

// Seconds reads a duration given in seconds.
func Seconds(settings map[string]interface{}, key string, def time.Duration) time.Duration {
	if f := Float(settings, key, -1); f >= 0 {
		return time.Duration(f * float64(time.Second))
	}
	return def
}

// StringMap reads a map of string values, dropping non-string entries.
func StringMap(settings map[string]interface{}, key string) map[string]string {
	out := make(map[string]string)
	if m, ok := settings[key].(map[string]interface{}); ok {
		for k, v := range m {
			if s, ok := v.(string); ok {
				out[k] = s
			}
		}
	}
	return out
}

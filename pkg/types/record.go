package types

// Coercion helpers for Record values. Records travel through JSON and SQL
// drivers, so numeric values arrive as int, int64, or float64 depending on
// the backend.

func recordInt(r Record, key string) (int, bool) {
	switch n := r[key].(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}

func recordFloat(r Record, key string) (float64, bool) {
	switch n := r[key].(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

func recordString(r Record, key string) string {
	s, _ := r[key].(string)
	return s
}

func recordBool(r Record, key string) (bool, bool) {
	switch v := r[key].(type) {
	case bool:
		return v, true
	case int64:
		return v != 0, true
	case int:
		return v != 0, true
	case float64:
		return v != 0, true
	default:
		return false, false
	}
}

func recordStrings(r Record, key string) []string {
	switch v := r[key].(type) {
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return out
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

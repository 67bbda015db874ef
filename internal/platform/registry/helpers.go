package registry

import (
	"strconv"
	"strings"
)

// Helpers para leer opciones string->string de un módulo con valor por defecto.
// Los valores vacíos o que no parsean devuelven el default.

// GetString retorna opts[key] recortado, o def.
func GetString(opts map[string]string, key, def string) string {
	if v, ok := opts[key]; ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return def
}

// GetInt retorna opts[key] como int, o def.
func GetInt(opts map[string]string, key string, def int) int {
	v, ok := opts[key]
	if !ok {
		return def
	}
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return i
}

// GetBool retorna opts[key] como bool, o def.
func GetBool(opts map[string]string, key string, def bool) bool {
	v, ok := opts[key]
	if !ok {
		return def
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "t", "true", "y", "yes", "on":
		return true
	case "0", "f", "false", "n", "no", "off":
		return false
	default:
		return def
	}
}

// GetList parte opts[key] por comas, recorta y descarta vacíos. Retorna def si no hay valores.
func GetList(opts map[string]string, key string, def []string) []string {
	v, ok := opts[key]
	if !ok {
		return def
	}
	out := SplitList(v)
	if len(out) == 0 {
		return def
	}
	return out
}

// SplitList parte una lista separada por comas, recortando y descartando vacíos.
func SplitList(s string) []string {
	var out []string
	for _, token := range strings.Split(strings.TrimSpace(s), ",") {
		if t := strings.TrimSpace(token); t != "" {
			out = append(out, t)
		}
	}
	return out
}

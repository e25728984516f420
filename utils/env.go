package utils

/**
 * env.go - env vars helpers
 */

import (
	"os"
	"regexp"
	"strings"
)

var envVarRe = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(:-([^}]*))?\}`)

/**
 * SubstituteEnvVars replaces ${NAME} and ${NAME:-default} placeholders
 * in config text with env var values
 */
func SubstituteEnvVars(data string) string {
	return envVarRe.ReplaceAllStringFunc(data, func(v string) string {
		m := envVarRe.FindStringSubmatch(v)
		val, ok := os.LookupEnv(m[1])
		if (!ok || val == "") && strings.HasPrefix(m[2], ":-") {
			return m[3]
		}
		return val
	})
}

package app

import (
	"errors"
	"os"
	"strings"
)

// LoadEnvFiles loads one or more dotenv files of KEY=VALUE pairs into the
// process environment. Later files override earlier ones. Blank lines and
// lines starting with '#' are ignored; values are not expanded.
func LoadEnvFiles(paths ...string) error {
	for _, p := range paths {
		if strings.TrimSpace(p) == "" {
			continue
		}
		b, err := os.ReadFile(p)
		if err != nil {
			// Missing files are not fatal; continue to the next path.
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return err
		}
		for _, line := range strings.Split(string(b), "\n") {
			key, val, ok := parseEnvLine(line)
			if !ok {
				continue
			}
			_ = os.Setenv(key, val)
		}
	}
	return nil
}

// parseEnvLine splits a dotenv line at the first '='. Surrounding single or
// double quotes around the value are stripped.
func parseEnvLine(line string) (key, val string, ok bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false
	}
	eq := strings.IndexByte(line, '=')
	if eq <= 0 {
		return "", "", false
	}
	key = strings.TrimSpace(line[:eq])
	val = strings.TrimSpace(line[eq+1:])
	if len(val) >= 2 {
		if (val[0] == '"' && val[len(val)-1] == '"') || (val[0] == '\'' && val[len(val)-1] == '\'') {
			val = val[1 : len(val)-1]
		}
	}
	return key, val, key != ""
}

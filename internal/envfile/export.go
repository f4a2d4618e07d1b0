package envfile

import "strings"

// ExportLine renders one shell-safe assignment statement for eval by a
// POSIX shell. The value is quoted so that embedded single quotes, double
// quotes, backslashes, dollar signs, backticks and newlines all survive
// evaluation literally.
func ExportLine(key, value string) string {
	return "export " + key + "=" + shellQuote(value)
}

// Project converts entries into export lines. With an empty selector every
// variable is emitted in order — duplicate keys produce multiple lines and
// the consumer's evaluation order makes the last one win. With a selector,
// exactly the first matching variable is emitted, or ErrKeyNotFound.
func Project(entries Entries, selector string) ([]string, error) {
	if selector != "" {
		v, err := entries.Lookup(selector)
		if err != nil {
			return nil, err
		}
		return []string{ExportLine(v.Key, v.Value)}, nil
	}

	var lines []string
	for _, v := range entries.Variables() {
		lines = append(lines, ExportLine(v.Key, v.Value))
	}
	return lines, nil
}

// shellQuote wraps a value in single quotes when needed, escaping embedded
// single quotes with the portable '\'' sequence. Inside single quotes every
// other character is literal to a POSIX shell, newlines included.
func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	if isShellSafe(s) {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func isShellSafe(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '_' || c == '-' || c == '.' || c == '/' ||
			c == ':' || c == '@' || c == '%' || c == '+' || c == ',':
		default:
			return false
		}
	}
	return true
}

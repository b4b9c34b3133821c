package common

import (
	"os"
	"strings"
)

// DetectLocale resolves the locale identifier once at startup so it can be
// passed explicitly to whatever formats timestamps. POSIX precedence:
// LC_ALL wins, then LC_TIME, then LANG. The encoding suffix is dropped
// ("ru_RU.UTF-8" becomes "ru_RU").
func DetectLocale() string {
	for _, key := range []string{"LC_ALL", "LC_TIME", "LANG"} {
		v := os.Getenv(key)
		if v == "" || v == "C" || v == "POSIX" {
			continue
		}
		if i := strings.IndexByte(v, '.'); i >= 0 {
			v = v[:i]
		}
		return v
	}
	return "en_US"
}

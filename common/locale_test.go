package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectLocale_StripsEncoding(t *testing.T) {
	t.Setenv("LC_ALL", "ru_RU.UTF-8")
	t.Setenv("LC_TIME", "")
	t.Setenv("LANG", "")

	assert.Equal(t, "ru_RU", DetectLocale())
}

func TestDetectLocale_PrecedenceOverLang(t *testing.T) {
	t.Setenv("LC_ALL", "en_US")
	t.Setenv("LC_TIME", "")
	t.Setenv("LANG", "ru_RU.UTF-8")

	assert.Equal(t, "en_US", DetectLocale())
}

func TestDetectLocale_DefaultsToEnglish(t *testing.T) {
	t.Setenv("LC_ALL", "")
	t.Setenv("LC_TIME", "")
	t.Setenv("LANG", "")

	assert.Equal(t, "en_US", DetectLocale())
}

func TestDetectLocale_IgnoresPosixLocale(t *testing.T) {
	t.Setenv("LC_ALL", "C")
	t.Setenv("LC_TIME", "")
	t.Setenv("LANG", "POSIX")

	assert.Equal(t, "en_US", DetectLocale())
}

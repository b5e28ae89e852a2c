package country

import (
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Option is a select-box entry for a country.
type Option struct {
	Value string `json:"value"`
	Text  string `json:"text"`
}

var namer = display.English.Regions()

// Lookup returns the ISO 3166-1 alpha-2 region for code.
// The code is case-insensitive; groups, private-use codes and CLDR-only
// regions without an ISO alpha-3 code are rejected.
func Lookup(code string) (language.Region, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != 2 || !isAlpha(code[0]) || !isAlpha(code[1]) {
		return language.Region{}, false
	}
	r, err := language.ParseRegion(code)
	if err != nil {
		return language.Region{}, false
	}
	if !r.IsCountry() || r.String() != code || r.ISO3() == "ZZZ" {
		return language.Region{}, false
	}
	return r, true
}

// Valid reports whether code is an ISO 3166-1 alpha-2 country code.
func Valid(code string) bool {
	_, ok := Lookup(code)
	return ok
}

// Name returns the English country name for code, or an empty string.
func Name(code string) string {
	r, ok := Lookup(code)
	if !ok {
		return ""
	}
	return namer.Name(r)
}

var (
	optionsOnce sync.Once
	options     []Option
)

// Options returns every country as a value/text pair sorted by code.
// The returned slice is a copy.
func Options() []Option {
	optionsOnce.Do(func() {
		for a := byte('A'); a <= 'Z'; a++ {
			for b := byte('A'); b <= 'Z'; b++ {
				code := string([]byte{a, b})
				if name := Name(code); name != "" {
					options = append(options, Option{Value: code, Text: name})
				}
			}
		}
		sort.Slice(options, func(i, j int) bool { return options[i].Value < options[j].Value })
	})
	out := make([]Option, len(options))
	copy(out, options)
	return out
}

func isAlpha(c byte) bool {
	return c >= 'A' && c <= 'Z'
}

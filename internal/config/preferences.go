package config

import "strings"

// Items-per-page bounds, matching the settings screen limits.
const (
	minItemsPerPage = 5
	maxItemsPerPage = 100
)

// Preferences are the session-scoped user defaults consulted at form-open
// time: preferred currency, number-format locale, list page size, and the
// default phone region. They are explicit application state, loaded once at
// startup and changed only through the setters below.
type Preferences struct {
	Currency     string `yaml:"currency"`
	Locale       string `yaml:"locale"`
	ItemsPerPage int    `yaml:"items_per_page"`
	PhoneRegion  string `yaml:"phone_region"`
}

// DefaultPreferences returns the out-of-the-box defaults.
func DefaultPreferences() Preferences {
	return Preferences{
		Currency:     "PKR",
		Locale:       "en-US",
		ItemsPerPage: 10,
		PhoneRegion:  "PK",
	}
}

func (p *Preferences) applyDefaults() {
	defaults := DefaultPreferences()
	if p.Currency == "" {
		p.Currency = defaults.Currency
	}
	if p.Locale == "" {
		p.Locale = defaults.Locale
	}
	if p.ItemsPerPage == 0 {
		p.ItemsPerPage = defaults.ItemsPerPage
	}
	if p.PhoneRegion == "" {
		p.PhoneRegion = defaults.PhoneRegion
	}
	p.clamp()
}

func (p *Preferences) clamp() {
	if p.ItemsPerPage < minItemsPerPage {
		p.ItemsPerPage = minItemsPerPage
	}
	if p.ItemsPerPage > maxItemsPerPage {
		p.ItemsPerPage = maxItemsPerPage
	}
	p.Currency = strings.ToUpper(p.Currency)
	p.PhoneRegion = strings.ToUpper(p.PhoneRegion)
}

// SetCurrency updates the preferred currency code.
func (p *Preferences) SetCurrency(code string) {
	if code != "" {
		p.Currency = strings.ToUpper(code)
	}
}

// SetLocale updates the number-format locale.
func (p *Preferences) SetLocale(locale string) {
	if locale != "" {
		p.Locale = locale
	}
}

// SetItemsPerPage updates the list page size, clamped to the allowed range.
func (p *Preferences) SetItemsPerPage(n int) {
	p.ItemsPerPage = n
	p.clamp()
}

// SetPhoneRegion updates the default phone country.
func (p *Preferences) SetPhoneRegion(code string) {
	if code != "" {
		p.PhoneRegion = strings.ToUpper(code)
	}
}

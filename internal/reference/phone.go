// Package reference serves the static lookup data consumed at entry time:
// phone calling-code regions and the currency catalog. Both start from a
// seed list; the currency catalog can additionally refresh itself from a
// remote source.
package reference

import (
	"errors"
	"regexp"
	"sort"
	"strings"
)

// PhoneCountry is one calling-code region.
type PhoneCountry struct {
	Code     string
	Name     string
	DialCode string
}

// Seed subset covering the regions the app is actually used in.
var phoneCountries = []PhoneCountry{
	{Code: "PK", Name: "Pakistan", DialCode: "92"},
	{Code: "IN", Name: "India", DialCode: "91"},
	{Code: "BD", Name: "Bangladesh", DialCode: "880"},
	{Code: "LK", Name: "Sri Lanka", DialCode: "94"},
	{Code: "NP", Name: "Nepal", DialCode: "977"},
	{Code: "AF", Name: "Afghanistan", DialCode: "93"},
	{Code: "US", Name: "United States", DialCode: "1"},
	{Code: "CA", Name: "Canada", DialCode: "1"},
	{Code: "MX", Name: "Mexico", DialCode: "52"},
	{Code: "BR", Name: "Brazil", DialCode: "55"},
	{Code: "GB", Name: "United Kingdom", DialCode: "44"},
	{Code: "IE", Name: "Ireland", DialCode: "353"},
	{Code: "DE", Name: "Germany", DialCode: "49"},
	{Code: "FR", Name: "France", DialCode: "33"},
	{Code: "ES", Name: "Spain", DialCode: "34"},
	{Code: "IT", Name: "Italy", DialCode: "39"},
	{Code: "NL", Name: "Netherlands", DialCode: "31"},
	{Code: "SE", Name: "Sweden", DialCode: "46"},
	{Code: "NO", Name: "Norway", DialCode: "47"},
	{Code: "DK", Name: "Denmark", DialCode: "45"},
	{Code: "FI", Name: "Finland", DialCode: "358"},
	{Code: "CH", Name: "Switzerland", DialCode: "41"},
	{Code: "AT", Name: "Austria", DialCode: "43"},
	{Code: "PT", Name: "Portugal", DialCode: "351"},
	{Code: "PL", Name: "Poland", DialCode: "48"},
	{Code: "SA", Name: "Saudi Arabia", DialCode: "966"},
	{Code: "AE", Name: "United Arab Emirates", DialCode: "971"},
	{Code: "QA", Name: "Qatar", DialCode: "974"},
	{Code: "KW", Name: "Kuwait", DialCode: "965"},
	{Code: "BH", Name: "Bahrain", DialCode: "973"},
	{Code: "OM", Name: "Oman", DialCode: "968"},
	{Code: "SG", Name: "Singapore", DialCode: "65"},
	{Code: "MY", Name: "Malaysia", DialCode: "60"},
	{Code: "TH", Name: "Thailand", DialCode: "66"},
	{Code: "PH", Name: "Philippines", DialCode: "63"},
	{Code: "ID", Name: "Indonesia", DialCode: "62"},
	{Code: "VN", Name: "Vietnam", DialCode: "84"},
	{Code: "CN", Name: "China", DialCode: "86"},
	{Code: "HK", Name: "Hong Kong", DialCode: "852"},
	{Code: "JP", Name: "Japan", DialCode: "81"},
	{Code: "KR", Name: "South Korea", DialCode: "82"},
	{Code: "NG", Name: "Nigeria", DialCode: "234"},
	{Code: "KE", Name: "Kenya", DialCode: "254"},
	{Code: "GH", Name: "Ghana", DialCode: "233"},
	{Code: "TZ", Name: "Tanzania", DialCode: "255"},
	{Code: "ZA", Name: "South Africa", DialCode: "27"},
}

// ErrInvalidPhone is returned for a phone number that fails the
// international format rules.
var ErrInvalidPhone = errors.New("invalid phone number format")

var (
	nonDigits  = regexp.MustCompile(`\D`)
	intlPrefix = regexp.MustCompile(`^\+\d+$`)
)

// Countries returns the known calling-code regions.
func Countries() []PhoneCountry {
	out := make([]PhoneCountry, len(phoneCountries))
	copy(out, phoneCountries)
	return out
}

// CountryByCode looks up a region by its ISO 3166 alpha-2 code.
func CountryByCode(code string) *PhoneCountry {
	code = strings.ToUpper(code)
	for i := range phoneCountries {
		if phoneCountries[i].Code == code {
			country := phoneCountries[i]
			return &country
		}
	}
	return nil
}

// FindCountryByDialPrefix detects the region from a number's leading digits,
// preferring the longest matching dial code.
func FindCountryByDialPrefix(phone string) *PhoneCountry {
	if phone == "" {
		return nil
	}
	digits := nonDigits.ReplaceAllString(phone, "")
	sorted := Countries()
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i].DialCode) > len(sorted[j].DialCode)
	})
	for i := range sorted {
		if strings.HasPrefix(digits, sorted[i].DialCode) {
			country := sorted[i]
			return &country
		}
	}
	return nil
}

// FormatWithDialCode normalizes raw input to "+<dial> <national digits>".
func FormatWithDialCode(country *PhoneCountry, raw string) string {
	digits := nonDigits.ReplaceAllString(raw, "")
	if country == nil {
		return raw
	}
	national := strings.TrimPrefix(digits, country.DialCode)
	if national == "" {
		return "+" + country.DialCode
	}
	return "+" + country.DialCode + " " + national
}

// ValidatePhone checks an optional international phone number: it must carry
// the selected region's dial code (or any +-prefix when no region is
// selected) and contain 8 to 15 digits. An empty value is valid.
func ValidatePhone(country *PhoneCountry, value string) error {
	if value == "" {
		return nil
	}
	cleaned := strings.ReplaceAll(value, " ", "")
	var prefixOK bool
	if country != nil {
		prefixOK = strings.HasPrefix(cleaned, "+"+country.DialCode)
	} else {
		prefixOK = intlPrefix.MatchString(cleaned)
	}
	digits := nonDigits.ReplaceAllString(cleaned, "")
	if !prefixOK || len(digits) < 8 || len(digits) > 15 {
		return ErrInvalidPhone
	}
	return nil
}

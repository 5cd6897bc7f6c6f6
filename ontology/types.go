package ontology

import (
	"regexp"
	"strings"

	"github.com/jbub/banking/iban"
	"github.com/nyaruka/phonenumbers"

	"github.com/c360studio/semextract/names"
)

// Type classifies property values and owns their cleaning rules.
type Type string

// Property value types.
const (
	TypeString     Type = "string"
	TypeText       Type = "text"
	TypeName       Type = "name"
	TypeAddress    Type = "address"
	TypeEmail      Type = "email"
	TypePhone      Type = "phone"
	TypeIBAN       Type = "iban"
	TypeCountry    Type = "country"
	TypeLanguage   Type = "language"
	TypeEntity     Type = "entity"
	TypeIdentifier Type = "identifier"
	TypeNumber     Type = "number"
)

func (t Type) known() bool {
	switch t {
	case TypeString, TypeText, TypeName, TypeAddress, TypeEmail, TypePhone,
		TypeIBAN, TypeCountry, TypeLanguage, TypeEntity, TypeIdentifier,
		TypeNumber:
		return true
	}
	return false
}

var (
	emailRe   = regexp.MustCompile(`(?i)^[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}$`)
	countryRe = regexp.MustCompile(`^[a-z]{2}$`)
	langRe    = regexp.MustCompile(`^[a-z]{3}$`)
)

// Clean normalizes a raw value for the type. It returns "" when the value
// cannot be interpreted as a valid instance of the type; callers drop such
// values. The entity, when given, supplies context (candidate phone
// regions from its countries).
func (t Type) Clean(value string, e *Entity) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	switch t {
	case TypeName, TypeAddress:
		return names.Clean(value)
	case TypeEmail:
		value = strings.ToLower(value)
		if !emailRe.MatchString(value) {
			return ""
		}
		return value
	case TypePhone:
		return cleanPhone(value, e)
	case TypeIBAN:
		compact := strings.ToUpper(strings.ReplaceAll(value, " ", ""))
		if err := iban.Validate(compact); err != nil {
			return ""
		}
		return compact
	case TypeCountry:
		code := strings.ToLower(value)
		if !countryRe.MatchString(code) {
			return ""
		}
		return code
	case TypeLanguage:
		code := strings.ToLower(value)
		if !langRe.MatchString(code) {
			return ""
		}
		return code
	default:
		return value
	}
}

// CountryHint derives ISO country codes implied by a cleaned value:
// the IBAN country prefix, the phone country calling code, or the country
// value itself.
func (t Type) CountryHint(value string) []string {
	switch t {
	case TypeIBAN:
		if len(value) >= 2 {
			return []string{strings.ToLower(value[:2])}
		}
	case TypePhone:
		num, err := phonenumbers.Parse(value, "")
		if err != nil {
			return nil
		}
		region := phonenumbers.GetRegionCodeForNumber(num)
		if region != "" && region != "ZZ" {
			return []string{strings.ToLower(region)}
		}
	case TypeCountry:
		return []string{value}
	}
	return nil
}

// NodeIDSafe produces the deduplication key form of a value: cleaned, and
// case-folded for types where case carries no meaning.
func (t Type) NodeIDSafe(value string, e *Entity) string {
	cleaned := t.Clean(value, e)
	if cleaned == "" {
		return ""
	}
	switch t {
	case TypeName, TypeAddress:
		return names.Normalize(cleaned)
	case TypeIBAN:
		return strings.ToLower(cleaned)
	default:
		return cleaned
	}
}

// cleanPhone parses a candidate phone number and renders it in E.164 form.
// Numbers without an international prefix are tried against the entity's
// known countries.
func cleanPhone(value string, e *Entity) string {
	regions := []string{""}
	if e != nil {
		for _, country := range e.TypeValues(TypeCountry) {
			regions = append(regions, strings.ToUpper(country))
		}
	}
	for _, region := range regions {
		num, err := phonenumbers.Parse(value, region)
		if err != nil {
			continue
		}
		if !phonenumbers.IsValidNumber(num) {
			continue
		}
		return phonenumbers.Format(num, phonenumbers.E164)
	}
	return ""
}

// IBANCountry returns the lowercased ISO country of a valid IBAN, or "".
func IBANCountry(value string) string {
	compact := strings.ToUpper(strings.ReplaceAll(value, " ", ""))
	parsed, err := iban.Parse(compact)
	if err != nil {
		return ""
	}
	return strings.ToLower(parsed.CountryCode())
}

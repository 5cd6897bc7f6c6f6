package names

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Angela Merkel", "angela merkel"},
		{"  Müller,  Hans ", "muller hans"},
		{"Jean-Pierre", "jean pierre"},
		{"CAFÉ   Crème", "cafe creme"},
		{"", ""},
		{"---", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in), tt.in)
	}
}

func TestNormalizeKeyStability(t *testing.T) {
	// Variant spellings of the same referent collapse to one key.
	assert.Equal(t, Normalize("Angela  MERKEL"), Normalize("angela merkel"))
	assert.Equal(t, Normalize("Müller GmbH"), Normalize("Muller gmbh"))
	assert.NotEqual(t, Normalize("Angela Merkel"), Normalize("Angela Merke"))
}

func TestRemovePersonPrefixes(t *testing.T) {
	assert.Equal(t, "Jane Doe", RemovePersonPrefixes("Mrs. Jane Doe"))
	assert.Equal(t, "Jane Doe", RemovePersonPrefixes("Dr Mrs Jane Doe"))
	assert.Equal(t, "Jane Doe", RemovePersonPrefixes("Jane Doe"))
}

func TestRemoveOrgPrefixes(t *testing.T) {
	assert.Equal(t, "European Union", RemoveOrgPrefixes("The European Union"))
	assert.Equal(t, "Acme Ltd", RemoveOrgPrefixes("Acme Ltd"))
}

func TestTagPersonName(t *testing.T) {
	symbols := TagPersonName("Jane Doe")
	assert.Len(t, symbols, 2)
	assert.Equal(t, CategoryName, symbols[0].Category)
	assert.Equal(t, "NAME_JANE", symbols[0].ID)
	assert.Equal(t, "NAME_DOE", symbols[1].ID)

	assert.Empty(t, TagPersonName("jhkl fsd"))
}

func TestTagOrgName(t *testing.T) {
	symbols := TagOrgName("Daten Import Export GmbH")
	assert.Len(t, symbols, 1)
	assert.Equal(t, CategoryOrgClass, symbols[0].Category)
	assert.Equal(t, "ORG_GMBH", symbols[0].ID)
}

func TestPickName(t *testing.T) {
	assert.Equal(t, "Angela Merkel",
		PickName([]string{"angela merkel", "Angela Merkel", "ANGELA MERKEL"}))
	assert.Equal(t, "", PickName(nil))
	// Deterministic under permutation.
	assert.Equal(t,
		PickName([]string{"Jane Doe", "jane doe"}),
		PickName([]string{"jane doe", "Jane Doe"}))
}

package core

import "strings"

// Category is the closed set of spending classifications. The zero value is
// not valid; CategoryUnknown is the sentinel for expenses the interpreter
// could not classify and must never reach persistent storage.
type Category string

const (
	CategoryTransporte      Category = "transporte"
	CategoryAlimentacao     Category = "alimentacao"
	CategorySaude           Category = "saude"
	CategoryEntretenimento  Category = "entretenimento"
	CategoryLazer           Category = "lazer"
	CategoryMoradia         Category = "moradia"
	CategoryOutros          Category = "outros"
	CategoryUnknown         Category = "desconhecido"
)

// Categories lists every persistable category, in the order users see them.
var Categories = []Category{
	CategoryTransporte,
	CategoryAlimentacao,
	CategorySaude,
	CategoryEntretenimento,
	CategoryLazer,
	CategoryMoradia,
	CategoryOutros,
}

// accentFolder maps the accented spellings users actually type to the plain
// ASCII forms stored in the database ("alimentação" -> "alimentacao").
var accentFolder = strings.NewReplacer(
	"á", "a", "â", "a", "ã", "a", "à", "a",
	"é", "e", "ê", "e",
	"í", "i",
	"ó", "o", "ô", "o", "õ", "o",
	"ú", "u",
	"ç", "c",
)

// ParseCategory matches free text against the persistable category set,
// ignoring case, surrounding space and Portuguese accents. The unknown
// sentinel is deliberately not parseable: users cannot confirm an expense
// into "desconhecido".
func ParseCategory(s string) (Category, bool) {
	folded := accentFolder.Replace(strings.ToLower(strings.TrimSpace(s)))
	for _, c := range Categories {
		if folded == string(c) {
			return c, true
		}
	}
	return "", false
}

// String implements fmt.Stringer.
func (c Category) String() string {
	return string(c)
}

// Valid reports whether c belongs to the persistable set.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// IsUnknown reports whether c is the unclassified sentinel.
func (c Category) IsUnknown() bool {
	return c == CategoryUnknown
}

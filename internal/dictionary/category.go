package dictionary

// Kind enumerates the recognized word categories.
type Kind int

const (
	// Unknown marks a token outside the recognized set.
	Unknown Kind = iota
	Noun
	Verb
	Adverb
	Adjective
	Preposition
	Misc
	ProperNoun
	NounAndVerb
)

var kindByToken = map[string]Kind{
	"n":       Noun,
	"v":       Verb,
	"adv":     Adverb,
	"adj":     Adjective,
	"prep":    Preposition,
	"misc":    Misc,
	"pn":      ProperNoun,
	"n_and_v": NounAndVerb,
}

var kindLabels = map[Kind]string{
	Noun:        "Noun (n.)",
	Verb:        "Verb (v.)",
	Adverb:      "Adverb (adv.)",
	Adjective:   "Adjective (adj.)",
	Preposition: "Preposition (prep.)",
	Misc:        "MiscWords (misc.)",
	ProperNoun:  "ProperNoun (pn.)",
	NounAndVerb: "NounAndVerb (n. v.)",
}

// Category is a parsed category abbreviation. Raw keeps the token as read.
type Category struct {
	Kind Kind
	Raw  string
}

// ParseCategory maps an abbreviation to its category. Matching is exact.
func ParseCategory(token string) Category {
	return Category{Kind: kindByToken[token], Raw: token}
}

// Label returns the display label for the category.
func (c Category) Label() string {
	if label, ok := kindLabels[c.Kind]; ok {
		return label
	}
	return "Unknown type: (" + c.Raw + ")"
}

// String implements fmt.Stringer.
func (c Category) String() string {
	return c.Label()
}

// FormatCategory returns the display label for an abbreviation.
func FormatCategory(token string) string {
	return ParseCategory(token).Label()
}

package domain

// ProductIdentification holds the identified product name in the languages
// the bot speaks. Parsing guarantees that a successful identification has at
// least one non-empty field; all fields empty signals failure.
type ProductIdentification struct {
	English string `json:"name_en"`
	Arabic  string `json:"name_ar"`
	French  string `json:"name_fr"`
}

// IsEmpty reports whether no language carries a name.
func (p ProductIdentification) IsEmpty() bool {
	return p.English == "" && p.Arabic == "" && p.French == ""
}

// Name returns the product name for the given language code, falling back
// to English and then to any remaining non-empty field.
func (p ProductIdentification) Name(lang string) string {
	switch lang {
	case "ar":
		if p.Arabic != "" {
			return p.Arabic
		}
	case "fr":
		if p.French != "" {
			return p.French
		}
	}
	if p.English != "" {
		return p.English
	}
	if p.French != "" {
		return p.French
	}
	return p.Arabic
}

// RedirectRequest is the parsed form of an inbound /go request. It is
// transient: it triggers one ledger increment and one redirect, nothing is
// persisted beyond that.
type RedirectRequest struct {
	Product string
	Domain  string
	UserID  string
}

package models

import "encoding/json"

// Profile is the coarse summary derived from a résumé: candidate job titles
// and frequency-ranked keywords. It is read-only once built; accessors hand
// out copies.
type Profile struct {
	titles   []string
	keywords []string
}

// NewProfile creates a profile from titles and keywords
func NewProfile(titles, keywords []string) Profile {
	return Profile{
		titles:   append([]string(nil), titles...),
		keywords: append([]string(nil), keywords...),
	}
}

// Titles returns the candidate job titles, best first
func (p Profile) Titles() []string {
	return append([]string(nil), p.titles...)
}

// Keywords returns the ranked keywords, most frequent first
func (p Profile) Keywords() []string {
	return append([]string(nil), p.keywords...)
}

type profileJSON struct {
	Titles   []string `json:"titles"`
	Keywords []string `json:"keywords"`
}

// MarshalJSON implements json.Marshaler
func (p Profile) MarshalJSON() ([]byte, error) {
	out := profileJSON{Titles: p.titles, Keywords: p.keywords}
	if out.Titles == nil {
		out.Titles = []string{}
	}
	if out.Keywords == nil {
		out.Keywords = []string{}
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler
func (p *Profile) UnmarshalJSON(data []byte) error {
	var in profileJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*p = NewProfile(in.Titles, in.Keywords)
	return nil
}

package generator

import "strings"

// Tone selects the system prompt. The zero value is ToneInformative.
type Tone int

const (
	ToneInformative Tone = iota
	ToneClickbait
	ToneWordplay
	ToneSocial
)

// Tones lists every tone in display order.
func Tones() []Tone {
	return []Tone{ToneInformative, ToneClickbait, ToneWordplay, ToneSocial}
}

// Key is the stable identifier used in forms and JSON.
func (t Tone) Key() string {
	switch t {
	case ToneClickbait:
		return "clickbait"
	case ToneWordplay:
		return "wordplay"
	case ToneSocial:
		return "social"
	default:
		return "informative"
	}
}

// Label is the human-readable name shown in the tone dropdown.
func (t Tone) Label() string {
	switch t {
	case ToneClickbait:
		return "Clickbait"
	case ToneWordplay:
		return "Wordplay"
	case ToneSocial:
		return "Social media"
	default:
		return "Informative (SEO)"
	}
}

func (t Tone) String() string { return t.Key() }

// ParseTone matches a key or label case-insensitively. Anything else is informative.
func ParseTone(s string) Tone {
	s = strings.TrimSpace(s)
	for _, t := range Tones() {
		if strings.EqualFold(s, t.Key()) || strings.EqualFold(s, t.Label()) {
			return t
		}
	}
	return ToneInformative
}

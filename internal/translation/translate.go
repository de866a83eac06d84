package translation

import (
	"regexp"
	"strings"
	"unicode"
)

// cacheKeyMaxLength bounds the derived cache key. The key is text-derived
// and not collision-resistant; acceptable at this scale.
const cacheKeyMaxLength = 100

var whitespaceRun = regexp.MustCompile(`\s+`)

// CacheKey derives the deterministic lookup key for a translation: the text
// and both language codes concatenated, whitespace runs collapsed to
// underscores, truncated to 100 characters.
func CacheKey(text, sourceLang, targetLang string) string {
	key := whitespaceRun.ReplaceAllString(text+" "+sourceLang+" "+targetLang, "_")
	runes := []rune(key)
	if len(runes) > cacheKeyMaxLength {
		runes = runes[:cacheKeyMaxLength]
	}
	return string(runes)
}

// pairKey identifies a translation direction.
func pairKey(from, to string) string {
	return from + ":" + to
}

// dictionaries hold the word-level substitution tables per direction.
// Unknown words pass through unchanged, which keeps the output
// deterministic without pretending to fluency.
var dictionaries = map[string]map[string]string{
	pairKey(LangEnglish, LangSpanish): {
		"hello": "hola", "goodbye": "adiós", "thanks": "gracias", "thank": "gracias",
		"please": "por favor", "meeting": "reunión", "tomorrow": "mañana",
		"today": "hoy", "yes": "sí", "no": "no", "friend": "amigo",
		"good": "bueno", "morning": "mañana", "night": "noche", "you": "tú",
	},
	pairKey(LangSpanish, LangEnglish): {
		"hola": "hello", "adiós": "goodbye", "gracias": "thanks",
		"reunión": "meeting", "mañana": "tomorrow", "hoy": "today",
		"sí": "yes", "amigo": "friend", "bueno": "good", "noche": "night",
	},
	pairKey(LangEnglish, LangFrench): {
		"hello": "bonjour", "goodbye": "au revoir", "thanks": "merci", "thank": "merci",
		"please": "s'il vous plaît", "meeting": "réunion", "tomorrow": "demain",
		"today": "aujourd'hui", "yes": "oui", "no": "non", "friend": "ami",
		"good": "bon", "morning": "matin", "night": "nuit",
	},
	pairKey(LangFrench, LangEnglish): {
		"bonjour": "hello", "merci": "thanks", "réunion": "meeting",
		"demain": "tomorrow", "oui": "yes", "non": "no", "ami": "friend",
		"bon": "good", "matin": "morning", "nuit": "night",
	},
	pairKey(LangEnglish, LangGerman): {
		"hello": "hallo", "goodbye": "auf wiedersehen", "thanks": "danke", "thank": "danke",
		"please": "bitte", "meeting": "besprechung", "tomorrow": "morgen",
		"today": "heute", "yes": "ja", "no": "nein", "friend": "freund",
		"good": "gut", "morning": "morgen", "night": "nacht",
	},
	pairKey(LangGerman, LangEnglish): {
		"hallo": "hello", "danke": "thanks", "bitte": "please",
		"besprechung": "meeting", "morgen": "tomorrow", "heute": "today",
		"ja": "yes", "nein": "no", "freund": "friend", "gut": "good",
	},
}

// Translate performs the deterministic table-driven substitution for the
// given direction. Words outside the table, punctuation and casing of
// untranslated words are preserved. Same-language requests return the text
// unchanged.
func Translate(text, sourceLang, targetLang string) string {
	if sourceLang == targetLang {
		return text
	}

	dict, ok := dictionaries[pairKey(sourceLang, targetLang)]
	if !ok {
		return text
	}

	words := strings.Fields(text)
	for i, word := range words {
		core, prefix, suffix := splitPunctuation(word)
		if core == "" {
			continue
		}
		if replacement, found := dict[strings.ToLower(core)]; found {
			words[i] = prefix + replacement + suffix
		}
	}
	return strings.Join(words, " ")
}

// Supported reports whether a substitution table exists for the direction.
func Supported(sourceLang, targetLang string) bool {
	_, ok := dictionaries[pairKey(sourceLang, targetLang)]
	return ok
}

// splitPunctuation peels leading and trailing punctuation off a word so the
// core can be looked up while the punctuation survives the substitution.
func splitPunctuation(word string) (core, prefix, suffix string) {
	runes := []rune(word)

	start := 0
	for start < len(runes) && unicode.IsPunct(runes[start]) {
		start++
	}
	end := len(runes)
	for end > start && unicode.IsPunct(runes[end-1]) {
		end--
	}

	return string(runes[start:end]), string(runes[:start]), string(runes[end:])
}

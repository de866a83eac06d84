package translation

import (
	"regexp"
	"strings"

	"golang.org/x/text/language"
)

// Language codes
const (
	LangEnglish  = "en"
	LangSpanish  = "es"
	LangFrench   = "fr"
	LangGerman   = "de"
	LangHebrew   = "he"
	LangArabic   = "ar"
	LangRussian  = "ru"
	LangChinese  = "zh"
	LangJapanese = "ja"
	LangKorean   = "ko"
)

// DetectedLanguage is the result of script-based language detection.
type DetectedLanguage struct {
	Code       string
	Confidence float64
}

// scriptRange pairs a language code with a Unicode block matcher.
type scriptRange struct {
	code    string
	pattern *regexp.Regexp
}

var scriptRanges = []scriptRange{
	{code: LangHebrew, pattern: regexp.MustCompile(`[\x{0590}-\x{05FF}]`)},
	{code: LangArabic, pattern: regexp.MustCompile(`[\x{0600}-\x{06FF}]`)},
	{code: LangRussian, pattern: regexp.MustCompile(`[\x{0400}-\x{04FF}]`)},
	{code: LangChinese, pattern: regexp.MustCompile(`[\x{4E00}-\x{9FFF}]`)},
	{code: LangJapanese, pattern: regexp.MustCompile(`[\x{3040}-\x{309F}\x{30A0}-\x{30FF}\x{4E00}-\x{9FFF}]`)},
	{code: LangKorean, pattern: regexp.MustCompile(`[\x{AC00}-\x{D7AF}]`)},
}

var kanaPattern = regexp.MustCompile(`[\x{3040}-\x{309F}\x{30A0}-\x{30FF}]`)

// Detection thresholds: a script must cover 10% of the text to win outright,
// 1% to win on mixed text.
const (
	scriptThreshold = 0.1
	mixedThreshold  = 0.01
	kanaThreshold   = 0.05
)

// DetectLanguage guesses the language of a text from the ratio of characters
// in each script. Latin-script text defaults to English; Chinese and
// Japanese are disambiguated by the presence of kana.
func DetectLanguage(text string) DetectedLanguage {
	text = strings.TrimSpace(text)
	if text == "" {
		return DetectedLanguage{Code: LangEnglish, Confidence: 0.0}
	}

	total := float64(len([]rune(text)))

	best := DetectedLanguage{Code: LangEnglish}
	for _, script := range scriptRanges {
		ratio := float64(len(script.pattern.FindAllString(text, -1))) / total
		if ratio > scriptThreshold && ratio > best.Confidence {
			best = DetectedLanguage{Code: script.code, Confidence: ratio}
		}
	}

	// Nothing crossed the main threshold; accept a faint signal on mixed text.
	if best.Code == LangEnglish {
		for _, script := range scriptRanges {
			ratio := float64(len(script.pattern.FindAllString(text, -1))) / total
			if ratio > mixedThreshold && ratio > best.Confidence {
				best = DetectedLanguage{Code: script.code, Confidence: ratio}
			}
		}
	}

	// Han characters alone look Chinese; kana marks Japanese.
	if best.Code == LangChinese || best.Code == LangJapanese {
		kanaRatio := float64(len(kanaPattern.FindAllString(text, -1))) / total
		if kanaRatio > kanaThreshold {
			best.Code = LangJapanese
		} else {
			best.Code = LangChinese
		}
	}

	return best
}

// NormalizeLang canonicalizes a user-supplied language code ("EN", "en-US")
// to its base form. Unparseable codes are returned lowercased as-is.
func NormalizeLang(code string) string {
	tag, err := language.Parse(code)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(code))
	}
	base, _ := tag.Base()
	return base.String()
}

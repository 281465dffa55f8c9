package entity

import (
	"unicode"

	"github.com/abadojack/whatlanggo"
)

// Script is the writing system a name is written in. It selects the
// recognizer used to classify the name.
type Script int

const (
	ScriptLatin Script = iota
	ScriptChinese
	ScriptJapanese
	ScriptKorean
	ScriptOther
)

func (s Script) String() string {
	switch s {
	case ScriptLatin:
		return "latin"
	case ScriptChinese:
		return "chinese"
	case ScriptJapanese:
		return "japanese"
	case ScriptKorean:
		return "korean"
	}
	return "other"
}

// ScriptOf returns the script of text. Kana means Japanese and Hangul means
// Korean; text with only Han characters is handed to a language detector,
// which settles on Chinese unless it is confident otherwise.
func ScriptOf(text string) Script {
	var han, kana, hangul, latin, other int
	for _, r := range text {
		switch {
		case unicode.In(r, unicode.Hiragana, unicode.Katakana):
			kana++
		case unicode.Is(unicode.Hangul, r):
			hangul++
		case unicode.Is(unicode.Han, r):
			han++
		case unicode.Is(unicode.Latin, r):
			latin++
		case unicode.IsLetter(r):
			other++
		}
	}

	switch {
	case kana > 0:
		return ScriptJapanese
	case hangul > 0:
		return ScriptKorean
	case han > 0:
		return detectHan(text)
	case latin > 0 || other == 0:
		return ScriptLatin
	}
	return ScriptOther
}

// minimum detector confidence before Han text is taken as anything but Chinese
const hanConfidence = 0.5

func detectHan(text string) Script {
	info := whatlanggo.Detect(text)
	if info.Confidence < hanConfidence {
		return ScriptChinese
	}
	switch info.Lang {
	case whatlanggo.Jpn:
		return ScriptJapanese
	case whatlanggo.Kor:
		return ScriptKorean
	}
	return ScriptChinese
}

package entity

import (
	_ "embed"
	"regexp"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"
)

// Label is an entity type assigned by a Recognizer.
type Label string

const (
	LabelNone   Label = ""
	LabelPerson Label = "PERSON"
	LabelOrg    Label = "ORG"
)

// Recognizer assigns an entity label to a name. LabelNone means the
// recognizer has no opinion.
type Recognizer interface {
	Recognize(text string) Label
}

// RecognizerFunc adapts a function to the Recognizer interface.
type RecognizerFunc func(text string) Label

func (f RecognizerFunc) Recognize(text string) Label { return f(text) }

var (
	//go:embed data/organizations.txt
	organizationsFile string

	//go:embed data/givennames.txt
	givenNamesFile string

	knownOrganizations = sync.OnceValue(func() map[string]bool { return loadOrgList(organizationsFile) })
	knownGivenNames    = sync.OnceValue(func() map[string]bool { return loadNameList(givenNamesFile) })
)

func loadNameList(data string) map[string]bool {
	set := make(map[string]bool)
	for _, line := range strings.Split(data, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		set[strings.ToLower(line)] = true
	}
	return set
}

func loadOrgList(data string) map[string]bool {
	set := make(map[string]bool)
	for name := range loadNameList(data) {
		set[orgKey(name)] = true
	}
	return set
}

// orgKey folds case and drops spaces, so "Deep Mind" finds "DeepMind".
func orgKey(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), ""))
}

// Words that mark a Latin-script name as an organization.
var organizationWords = map[string]bool{
	"agency":       true, "alliance": true, "association": true, "center": true,
	"centre":       true, "co": true, "collaboration": true, "college": true, "commission": true,
	"committee":    true, "community": true, "company": true, "consortium": true,
	"contributors": true, "corp": true, "corporation": true, "council": true,
	"department":   true, "dept": true, "developers": true, "foundation": true,
	"gmbh":         true, "group": true, "hospital": true, "inc": true,
	"initiative":   true, "institut": true, "institute": true, "instituto": true,
	"laboratories": true, "laboratory": true, "lab": true, "labs": true,
	"libraries":    true, "library": true, "llc": true, "ltd": true,
	"ministry":     true, "museum": true, "network": true, "office": true,
	"organisation": true, "organization": true, "plc": true, "project": true,
	"school":       true, "services": true, "society": true, "software": true,
	"robotics":     true, "solutions": true, "systems": true, "team": true, "technologies": true,
	"universidad":  true, "universität": true, "université": true, "university": true,
}

var initialRegex = regexp.MustCompile(`^\p{Lu}\.?$`)

func bareToken(tok string) string {
	return strings.ToLower(strings.Trim(tok, ".,;:'\""))
}

func isInitial(tok string) bool {
	return initialRegex.MatchString(tok)
}

func isCapitalized(tok string) bool {
	r, _ := utf8.DecodeRuneInString(tok)
	return unicode.IsUpper(r)
}

// gazetteerRecognizer labels organizations by their vocabulary and people
// by a known given name or initials in front of a capitalized surname.
func gazetteerRecognizer(text string) Label {
	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return LabelNone
	}
	// People are not written with an article: "The Astropy Collaboration".
	if len(tokens) > 1 && bareToken(tokens[0]) == "the" {
		return LabelOrg
	}
	for _, tok := range tokens {
		if organizationWords[bareToken(tok)] {
			return LabelOrg
		}
	}
	if len(tokens) < 2 || len(tokens) > 5 {
		return LabelNone
	}

	if family, given, found := strings.Cut(text, ","); found {
		rest := strings.Fields(given)
		if len(rest) > 0 && strings.TrimSpace(family) != "" && (knownGivenNames()[bareToken(rest[0])] || isInitial(rest[0])) {
			return LabelPerson
		}
		return LabelNone
	}

	last := tokens[len(tokens)-1]
	if !isCapitalized(last) {
		return LabelNone
	}
	if knownGivenNames()[bareToken(tokens[0])] {
		return LabelPerson
	}
	for _, tok := range tokens[:len(tokens)-1] {
		if !isInitial(tok) {
			return LabelNone
		}
	}
	return LabelPerson
}

var (
	chineseSurnames = runeSet("王李张刘陈杨黄赵吴周徐孙马朱胡郭何高林罗郑梁谢宋唐许韩冯邓曹彭曾肖田董袁潘于蒋蔡余杜叶程苏魏吕丁任沈姚卢姜崔钟谭陆汪范金石廖贾夏韦付方白邹孟熊秦邱江尹薛闫段雷侯龙史陶黎贺顾毛郝龚邵万钱严覃武戴莫孔向汤陳張劉楊黃趙吳鄭謝許韓馮鄧蘇呂盧鐘譚陸賈龔錢嚴湯")
	chineseCompound = []string{"欧阳", "司马", "诸葛", "上官", "歐陽", "司馬", "諸葛"}
	chineseOrgWords = []string{"大学", "大學", "学院", "學院", "公司", "研究所", "研究院", "实验室", "實驗室", "中心", "协会", "協會", "集团", "集團", "委员会", "委員會", "基金会", "基金會", "团队", "團隊", "项目", "項目", "图书馆", "圖書館"}

	japaneseSurnames = []string{"佐藤", "鈴木", "高橋", "田中", "伊藤", "渡辺", "山本", "中村", "小林", "加藤", "吉田", "山田", "佐々木", "山口", "松本", "井上", "木村", "斎藤", "清水", "林"}
	japaneseOrgWords = []string{"大学", "株式会社", "有限会社", "研究所", "研究室", "財団", "協会", "学会", "センター", "会社", "機構", "図書館"}
	japaneseHonorifs = []string{"さん", "様", "氏", "先生"}

	koreanSurnames = runeSet("김이박최정강조윤장임한오서신권황안송류전홍고문양손배백허유남심노하곽성차주우구민")
	koreanOrgWords = []string{"대학교", "대학", "주식회사", "연구소", "연구원", "재단", "협회", "센터", "회사", "학회", "도서관"}
)

func runeSet(s string) map[rune]bool {
	set := make(map[rune]bool)
	for _, r := range s {
		set[r] = true
	}
	return set
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

func onlyRunes(text string, table *unicode.RangeTable) bool {
	for _, r := range text {
		if !unicode.Is(table, r) {
			return false
		}
	}
	return text != ""
}

func chineseRecognizer(text string) Label {
	text = strings.Join(strings.Fields(text), "")
	if containsAny(text, chineseOrgWords) {
		return LabelOrg
	}
	n := utf8.RuneCountInString(text)
	if !onlyRunes(text, unicode.Han) || n < 2 || n > 4 {
		return LabelNone
	}
	for _, c := range chineseCompound {
		if strings.HasPrefix(text, c) {
			return LabelPerson
		}
	}
	first, _ := utf8.DecodeRuneInString(text)
	if chineseSurnames[first] {
		return LabelPerson
	}
	return LabelNone
}

func japaneseRecognizer(text string) Label {
	text = strings.Join(strings.Fields(text), "")
	if containsAny(text, japaneseOrgWords) {
		return LabelOrg
	}
	for _, h := range japaneseHonorifs {
		if strings.HasSuffix(text, h) {
			return LabelPerson
		}
	}
	n := utf8.RuneCountInString(text)
	if n < 2 || n > 6 {
		return LabelNone
	}
	for _, s := range japaneseSurnames {
		if strings.HasPrefix(text, s) && text != s {
			return LabelPerson
		}
	}
	return LabelNone
}

func koreanRecognizer(text string) Label {
	compact := strings.Join(strings.Fields(text), "")
	if containsAny(compact, koreanOrgWords) {
		return LabelOrg
	}
	n := utf8.RuneCountInString(compact)
	if !onlyRunes(compact, unicode.Hangul) || n < 2 || n > 4 {
		return LabelNone
	}
	first, _ := utf8.DecodeRuneInString(compact)
	if koreanSurnames[first] {
		return LabelPerson
	}
	return LabelNone
}

// Chain consults recognizers in order and returns the first label that is
// not LabelNone.
type Chain []Recognizer

func (c Chain) Recognize(text string) Label {
	for _, r := range c {
		if label := r.Recognize(text); label != LabelNone {
			return label
		}
	}
	return LabelNone
}

// DefaultRecognizers returns the recognizers used for each script. Latin
// text goes through the gazetteer and then the statistical model; the CJK
// scripts use gazetteers only.
func DefaultRecognizers() map[Script]Recognizer {
	latin := Chain{RecognizerFunc(gazetteerRecognizer), NewModelRecognizer()}
	return map[Script]Recognizer{
		ScriptLatin:    latin,
		ScriptOther:    latin,
		ScriptChinese:  RecognizerFunc(chineseRecognizer),
		ScriptJapanese: RecognizerFunc(japaneseRecognizer),
		ScriptKorean:   RecognizerFunc(koreanRecognizer),
	}
}

// IsKnownOrganization reports whether name is on the embedded list of
// organization names.
func IsKnownOrganization(name string) bool {
	return knownOrganizations()[orgKey(name)]
}

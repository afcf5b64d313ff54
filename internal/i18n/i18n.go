// Package i18n selects a fixed view string table from a request language.
package i18n

import "golang.org/x/text/language"

// Strings is the view string table for one language.
type Strings struct {
	Title      string
	Username   string
	Password   string
	LoginBtn   string
	BackToMain string
}

var supported = []language.Tag{
	language.English, // first entry is the fallback
	language.Korean,
}

var tables = map[language.Tag]Strings{
	language.English: {
		Title:      "Login",
		Username:   "Username",
		Password:   "Password",
		LoginBtn:   "Login",
		BackToMain: "Back to main",
	},
	language.Korean: {
		Title:      "로그인",
		Username:   "사용자 이름",
		Password:   "비밀번호",
		LoginBtn:   "로그인",
		BackToMain: "메인으로 돌아가기",
	},
}

var matcher = language.NewMatcher(supported)

// Match returns the string table for an Accept-Language header value.
// Unknown or empty values fall back to English.
func Match(acceptLanguage string) Strings {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return tables[language.English]
	}
	_, idx, _ := matcher.Match(tags...)
	return tables[supported[idx]]
}

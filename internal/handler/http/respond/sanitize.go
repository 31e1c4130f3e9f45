package respond

import (
	"regexp"
)

// 順序重要: より具体的なパターンから適用する
var secretPatterns = []struct {
	re   *regexp.Regexp
	repl string
}{
	{regexp.MustCompile(`sk-ant-[a-zA-Z0-9\-_]+`), "sk-ant-****"},
	// マスク済み文字列（*を含む）にはマッチしない
	{regexp.MustCompile(`sk-[a-zA-Z0-9\-_]{10,}`), "sk-****"},
	{regexp.MustCompile(`xi-[a-zA-Z0-9]{10,}`), "xi-****"},
	{regexp.MustCompile(`AIza[0-9A-Za-z\-_]{20,}`), "AIza****"},
	{regexp.MustCompile(`(discord(?:app)?\.com/api/webhooks/\d+/)[A-Za-z0-9\-_]+`), "${1}****"},
	{regexp.MustCompile(`(hooks\.slack\.com/services/)[A-Za-z0-9/]+`), "${1}****"},
	{regexp.MustCompile(`([?&]key=)[^&\s"]+`), "${1}****"},
	// URL 内の認証情報
	{regexp.MustCompile(`://([^:/@\s]+):([^@\s]+)@`), "://$1:****@"},
}

// SanitizeError masks provider API keys, webhook tokens and URL credentials in err's message.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return SanitizeString(err.Error())
}

func SanitizeString(msg string) string {
	for _, p := range secretPatterns {
		msg = p.re.ReplaceAllString(msg, p.repl)
	}
	return msg
}

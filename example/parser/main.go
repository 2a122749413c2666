// 零拷贝解析示例：用 ByteStr 解析 HTTP 请求文本和 key=value 配置
// 整个过程中所有子串都共享最初那一块底层内存，不发生字节拷贝
package main

import (
	"os"
	"unicode"
	"unicode/utf8"

	"github.com/crypt0walker/bytestr"
	"github.com/crypt0walker/bytestr/intern"
	"github.com/sirupsen/logrus"
)

func init() {
	logrus.SetOutput(os.Stdout)
}

func main() {
	parseRequest()
	parseConfig()
	tokenize()
}

// parseRequest 解析一段 HTTP 请求文本
func parseRequest() {
	request := bytestr.FromStatic(
		"GET /api/users?name=john&age=25 HTTP/1.1\r\n" +
			"Host: example.com\r\n" +
			"User-Agent: demo/1.0\r\n" +
			"Accept: application/json\r\n" +
			"\r\n")

	requestLine, rest, ok := request.Cut("\r\n")
	if !ok {
		logrus.Fatal("malformed request: missing request line")
	}

	parts := requestLine.Fields()
	if len(parts) != 3 {
		logrus.Fatalf("malformed request line: %s", requestLine)
	}
	method, target, version := parts[0], parts[1], parts[2]
	logrus.Infof("method=%s version=%s", method, version)

	// 路径和查询参数
	if path, query, found := target.Cut("?"); found {
		logrus.Infof("path=%s", path)
		for _, param := range query.Split("&") {
			if key, value, ok := param.Cut("="); ok {
				logrus.Infof("  query %s=%s", key, value)
			}
		}
	} else {
		logrus.Infof("path=%s", target)
	}

	// 头部字段
	headers, _, _ := rest.Cut("\r\n\r\n")
	for _, line := range headers.Lines() {
		if name, value, ok := line.Cut(": "); ok {
			logrus.Infof("  header %s: %s", name, value.TrimSpace())
		}
	}
}

// parseConfig 解析 key=value 配置文本，键名走驻留池去重
func parseConfig() {
	config := bytestr.FromStatic(
		"# server\n" +
			"port=8080\n" +
			"host=localhost\n" +
			"debug=true\n" +
			"# database\n" +
			"db.host=127.0.0.1\n" +
			"db.port=5432\n")

	pool := intern.NewPool(intern.DefaultOptions())
	for _, line := range config.Lines() {
		line = line.TrimSpace()
		if line.IsEmpty() || line.HasPrefix("#") {
			continue
		}
		key, value, ok := line.Cut("=")
		if !ok {
			continue
		}
		canonical, err := pool.InternString(key.String())
		if err != nil {
			logrus.Errorf("bad config key: %v", err)
			continue
		}
		logrus.Infof("config %s = %s", canonical, value)
	}
	logrus.Infof("intern stats: %+v", pool.Stats())
}

// tokenize 对一行代码做简单的词法切分
func tokenize() {
	remaining := bytestr.FromStatic("let x = 42; // a variable")

	for !remaining.IsEmpty() {
		remaining = remaining.SkipWhile(unicode.IsSpace)
		if remaining.IsEmpty() {
			break
		}

		switch {
		case remaining.HasPrefix("//"):
			logrus.Infof("comment: %s", remaining.TakeUntil("\n"))
			return
		case isIdentStart(firstRune(remaining)):
			var ident bytestr.ByteStr
			ident, remaining = remaining.TakeWhile(isIdentPart)
			logrus.Infof("identifier: %s", ident)
		case unicode.IsDigit(firstRune(remaining)):
			var number bytestr.ByteStr
			number, remaining = remaining.TakeWhile(unicode.IsDigit)
			logrus.Infof("number: %s", number)
		default:
			var op bytestr.ByteStr
			op, remaining = remaining.TakeWhile(func(r rune) bool { return r == '=' || r == ';' })
			if op.IsEmpty() {
				// 未识别的字符，按字符宽度跳过一个
				_, size := utf8.DecodeRuneInString(remaining.String())
				remaining = remaining.Skip(size)
				continue
			}
			logrus.Infof("operator: %s", op)
		}
	}
}

func firstRune(b bytestr.ByteStr) rune {
	r, _ := utf8.DecodeRuneInString(b.String())
	return r
}

func isIdentStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func isIdentPart(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

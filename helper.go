package bytestr

import (
	"strings"
	"unicode"
)

// 本文件是在核心切片能力之上搭出来的零拷贝解析工具集：
// 每个操作都先用标准库 strings 在底层字符串上定位子串，
// 再用 SliceRef 把结果重新锚定回共享的底层内存，
// 所以所有返回值都与接收者共享存储，不发生字节拷贝

// Lines 按行切分，返回零拷贝的行切片
// 行以 \n 或 \r\n 结尾，结尾的换行符不包含在结果中，
// 最后一行允许没有换行符
func (b ByteStr) Lines() []ByteStr {
	var lines []ByteStr
	s := b.s
	for len(s) > 0 {
		line := s
		if i := strings.IndexByte(s, '\n'); i >= 0 {
			line, s = s[:i], s[i+1:]
		} else {
			s = ""
		}
		line = strings.TrimSuffix(line, "\r")
		lines = append(lines, b.SliceRef(line))
	}
	return lines
}

// Split 按分隔符切分，语义与 strings.Split 一致
func (b ByteStr) Split(sep string) []ByteStr {
	parts := strings.Split(b.s, sep)
	out := make([]ByteStr, len(parts))
	for i, p := range parts {
		out[i] = b.SliceRef(p)
	}
	return out
}

// SplitN 按分隔符切分，最多切出 n 份，最后一份保留剩余全部内容
// 语义与 strings.SplitN 一致
func (b ByteStr) SplitN(sep string, n int) []ByteStr {
	parts := strings.SplitN(b.s, sep, n)
	out := make([]ByteStr, len(parts))
	for i, p := range parts {
		out[i] = b.SliceRef(p)
	}
	return out
}

// Cut 在 sep 第一次出现处切开，返回前后两段
// 找不到 sep 时 found 为 false，before 为整个字符串
func (b ByteStr) Cut(sep string) (before, after ByteStr, found bool) {
	l, r, ok := strings.Cut(b.s, sep)
	if !ok {
		return b, ByteStr{}, false
	}
	return b.SliceRef(l), b.SliceRef(r), true
}

// Fields 按空白切分出所有非空字段
func (b ByteStr) Fields() []ByteStr {
	parts := strings.Fields(b.s)
	out := make([]ByteStr, len(parts))
	for i, p := range parts {
		out[i] = b.SliceRef(p)
	}
	return out
}

// TrimSpace 去掉首尾空白
func (b ByteStr) TrimSpace() ByteStr {
	return b.SliceRef(strings.TrimSpace(b.s))
}

// TrimStart 去掉开头空白
func (b ByteStr) TrimStart() ByteStr {
	return b.SliceRef(strings.TrimLeftFunc(b.s, unicode.IsSpace))
}

// TrimEnd 去掉结尾空白
func (b ByteStr) TrimEnd() ByteStr {
	return b.SliceRef(strings.TrimRightFunc(b.s, unicode.IsSpace))
}

// CutPrefix 去掉指定前缀
// 前缀存在时返回剩余部分和 true，否则原样返回和 false
func (b ByteStr) CutPrefix(prefix string) (ByteStr, bool) {
	rest, ok := strings.CutPrefix(b.s, prefix)
	if !ok {
		return b, false
	}
	return b.SliceRef(rest), true
}

// CutSuffix 去掉指定后缀
func (b ByteStr) CutSuffix(suffix string) (ByteStr, bool) {
	rest, ok := strings.CutSuffix(b.s, suffix)
	if !ok {
		return b, false
	}
	return b.SliceRef(rest), true
}

// TakeUntil 取 sep 第一次出现之前的内容
// 找不到 sep 时返回整个字符串
func (b ByteStr) TakeUntil(sep string) ByteStr {
	i := strings.Index(b.s, sep)
	if i < 0 {
		return b
	}
	return b.SliceRef(b.s[:i])
}

// SkipWhile 从头跳过所有满足 f 的字符，返回剩余部分
func (b ByteStr) SkipWhile(f func(rune) bool) ByteStr {
	return b.SliceRef(strings.TrimLeftFunc(b.s, f))
}

// TakeWhile 从头取所有满足 f 的字符
// 返回满足的前缀和剩余部分两段
func (b ByteStr) TakeWhile(f func(rune) bool) (taken, rest ByteStr) {
	end := len(b.s)
	for i, r := range b.s {
		if !f(r) {
			end = i
			break
		}
	}
	return b.SliceRef(b.s[:end]), b.SliceRef(b.s[end:])
}

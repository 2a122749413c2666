package bytestr

import (
	"errors"
	"unicode/utf16"
)

// ErrInvalidUTF16 表示 UTF-16 输入含有不成对的代理项
var ErrInvalidUTF16 = errors.New("bytestr: invalid UTF-16: unpaired surrogate")

// FromUTF16 把 UTF-16 码元序列转码为 ByteStr
// 转码必然分配新内存；遇到不成对的代理项返回 ErrInvalidUTF16
func FromUTF16(u []uint16) (ByteStr, error) {
	// 标准库的 utf16.Decode 会把坏代理项悄悄换成 U+FFFD，
	// 严格路径需要先自行检查配对
	for i := 0; i < len(u); i++ {
		c := u[i]
		switch {
		case c >= 0xD800 && c < 0xDC00:
			// 高代理项，后面必须紧跟低代理项
			if i+1 >= len(u) || u[i+1] < 0xDC00 || u[i+1] >= 0xE000 {
				return ByteStr{}, ErrInvalidUTF16
			}
			i++
		case c >= 0xDC00 && c < 0xE000:
			// 孤立的低代理项
			return ByteStr{}, ErrInvalidUTF16
		}
	}
	return ByteStr{s: string(utf16.Decode(u))}, nil
}

// FromUTF16Lossy 把 UTF-16 码元序列转码为 ByteStr，
// 不成对的代理项替换为 U+FFFD
func FromUTF16Lossy(u []uint16) ByteStr {
	return ByteStr{s: string(utf16.Decode(u))}
}

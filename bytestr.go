package bytestr

import (
	"fmt"
	"strings"
	"unicode/utf8"
	"unsafe"
)

// ByteStr 是一个不可变的 UTF-8 字符串视图
// 它保证内部字节永远是合法的 UTF-8 文本：只在接收不可信字节的
// 构造入口做一次校验，之后所有操作都只会沿字符边界收窄视图，
// 因此整个生命周期内不需要重复校验
//
// 底层存储直接复用 Go 的 string：string 本身不可变，
// 对 string 做切片是 O(1) 且共享同一块底层内存，
// 最后一个持有者被回收时由 GC 释放整块内存
// 所以 ByteStr 的拷贝（克隆）就是一次值拷贝，不会复制字节
//
// ByteStr 是可比较类型，== 按内容比较，可以直接作为 map 的键，
// 不同底层内存但内容相同的两个实例相等且哈希一致
type ByteStr struct {
	s string
}

// InvalidUTF8Error 表示构造时 UTF-8 校验失败
// Bytes 保留被拒绝的原始字节（调用方可以原样取回），
// Offset 是第一个非法字节的下标，只报告第一处错误
type InvalidUTF8Error struct {
	Bytes  []byte
	Offset int
}

func (e *InvalidUTF8Error) Error() string {
	return fmt.Sprintf("bytestr: invalid UTF-8 byte at offset %d", e.Offset)
}

// New 返回一个空的 ByteStr，不分配内存
func New() ByteStr {
	return ByteStr{}
}

// FromStatic 零开销地包装一段可信的字符串数据
// 不做校验也不拷贝，适用于字符串字面量、常量等
// 由类型系统之外保证合法性的场景，合法性由调用方负责
func FromStatic(s string) ByteStr {
	return ByteStr{s: s}
}

// FromString 从任意 string 构造 ByteStr 并做 UTF-8 校验
// Go 的 string 并不保证内容是合法 UTF-8（可以装任意字节），
// 所以这里必须扫描一遍；校验通过后直接复用原字符串，不拷贝
func FromString(s string) (ByteStr, error) {
	if off := firstInvalidString(s); off >= 0 {
		return ByteStr{}, &InvalidUTF8Error{Bytes: []byte(s), Offset: off}
	}
	return ByteStr{s: s}, nil
}

// FromBytes 从字节切片构造 ByteStr，校验通过后直接接管底层数组，不拷贝
// 调用成功后切片的所有权移交给 ByteStr，调用方不能再写入 b，
// 否则会破坏不可变约定；校验失败时 b 原样通过错误返还给调用方
func FromBytes(b []byte) (ByteStr, error) {
	if off := firstInvalid(b); off >= 0 {
		return ByteStr{}, &InvalidUTF8Error{Bytes: b, Offset: off}
	}
	return ByteStr{s: bytesToString(b)}, nil
}

// FromBytesLossy 从字节切片构造 ByteStr，非法序列替换为 U+FFFD
// 替换按最大子部（maximal subpart）进行：一段前缀尚属合法、
// 只是被截断的多字节序列整体替换成一个 U+FFFD，
// 而不是每个字节各替换一个
// 字节本身合法时直接接管底层数组（同 FromBytes 的所有权约定），
// 含非法字节时才分配新内存做替换
func FromBytesLossy(b []byte) ByteStr {
	if utf8.Valid(b) {
		return ByteStr{s: bytesToString(b)}
	}
	var sb strings.Builder
	sb.Grow(len(b))
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size == 1 {
			sb.WriteRune(utf8.RuneError)
			i += invalidPrefixLen(b[i:])
		} else {
			sb.Write(b[i : i+size])
			i += size
		}
	}
	return ByteStr{s: sb.String()}
}

// invalidPrefixLen 返回一处非法位置上最大子部的字节数，至少为 1
// 最大子部 = 引导字节加上所有紧随其后、且仍处在该引导字节
// 允许区间内的连续字节（first/second byte 的合法区间见 UTF-8 定义）
func invalidPrefixLen(b []byte) int {
	var max int
	var lo, hi byte = 0x80, 0xBF
	switch c := b[0]; {
	case c >= 0xC2 && c <= 0xDF:
		max = 2
	case c >= 0xE0 && c <= 0xEF:
		max = 3
		if c == 0xE0 {
			lo = 0xA0
		} else if c == 0xED {
			hi = 0x9F
		}
	case c >= 0xF0 && c <= 0xF4:
		max = 4
		if c == 0xF0 {
			lo = 0x90
		} else if c == 0xF4 {
			hi = 0x8F
		}
	default:
		// 本身就不是合法的引导字节
		return 1
	}
	n := 1
	for n < max && n < len(b) {
		if b[n] < lo || b[n] > hi {
			break
		}
		lo, hi = 0x80, 0xBF
		n++
	}
	return n
}

// Len 返回字节长度（不是字符数）
func (b ByteStr) Len() int {
	return len(b.s)
}

// IsEmpty 报告内容是否为空
func (b ByteStr) IsEmpty() bool {
	return len(b.s) == 0
}

// RuneCount 返回字符（rune）个数
func (b ByteStr) RuneCount() int {
	return utf8.RuneCountInString(b.s)
}

// String 返回底层字符串视图，O(1) 不拷贝
// 因为 string 不可变，这里不需要像可变字节场景那样做防御性拷贝；
// 按字符遍历内容时直接 for range b.String() 即可
func (b ByteStr) String() string {
	return b.s
}

// Bytes 返回内容的【拷贝】
// []byte 是可变类型，直接暴露底层内存会让外部破坏不可变约定
func (b ByteStr) Bytes() []byte {
	return []byte(b.s)
}

// AppendTo 把内容追加到调用方提供的缓冲区，避免中间分配
func (b ByteStr) AppendTo(dst []byte) []byte {
	return append(dst, b.s...)
}

// Equal 报告两个 ByteStr 内容是否相同，与底层内存是否同一块无关
func (b ByteStr) Equal(other ByteStr) bool {
	return b.s == other.s
}

// EqualString 与普通字符串按内容比较
func (b ByteStr) EqualString(s string) bool {
	return b.s == s
}

// Compare 按字节序比较，与 UTF-8 的字典序一致
func (b ByteStr) Compare(other ByteStr) int {
	return strings.Compare(b.s, other.s)
}

// Contains 报告是否包含子串
func (b ByteStr) Contains(sub string) bool {
	return strings.Contains(b.s, sub)
}

// HasPrefix 报告是否以 prefix 开头
func (b ByteStr) HasPrefix(prefix string) bool {
	return strings.HasPrefix(b.s, prefix)
}

// HasSuffix 报告是否以 suffix 结尾
func (b ByteStr) HasSuffix(suffix string) bool {
	return strings.HasSuffix(b.s, suffix)
}

// Index 返回子串第一次出现的字节下标，不存在时返回 -1
// 返回的下标必然落在字符边界上，可以直接传给 Slice
func (b ByteStr) Index(sub string) int {
	return strings.Index(b.s, sub)
}

// bytesToString 零拷贝地把字节切片转成字符串
// 返回的字符串与 b 共享内存，调用方必须保证之后不再修改 b
func bytesToString(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(unsafe.SliceData(b), len(b))
}

// firstInvalid 返回第一个非法 UTF-8 字节的下标，全部合法时返回 -1
func firstInvalid(b []byte) int {
	for i := 0; i < len(b); {
		if b[i] < utf8.RuneSelf {
			i++
			continue
		}
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return -1
}

// firstInvalidString 同 firstInvalid，作用于 string
func firstInvalidString(s string) int {
	for i := 0; i < len(s); {
		if s[i] < utf8.RuneSelf {
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return -1
}

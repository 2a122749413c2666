package bytestr

import (
	"fmt"
	"unicode/utf8"
	"unsafe"
)

// SliceRef 把 sub 重新锚定为一个新的 ByteStr，零拷贝
// sub 必须是从当前实例的 String() 上切出来的子串，
// 即 sub 的内存必须落在当前实例底层字节范围之内
// 传入无关内存属于违反调用契约，会直接 panic（快速失败），
// 因为这里靠指针差计算偏移量，对无关内存没有任何安全的校验手段，
// 继续执行只会返回一个指向错误数据的结果
//
// sub 来自一个合法的字符串视图，所以不需要重新做 UTF-8 校验
// 共享底层内存，O(1)，不分配
func (b ByteStr) SliceRef(sub string) ByteStr {
	// 空串的指针没有指向意义，直接返回空实例
	if len(sub) == 0 {
		return ByteStr{}
	}
	base := unsafe.Pointer(unsafe.StringData(b.s))
	data := unsafe.Pointer(unsafe.StringData(sub))
	if uintptr(data) < uintptr(base) {
		panic("bytestr: SliceRef subset is not part of the backing bytes")
	}
	off := int(uintptr(data) - uintptr(base))
	if off > len(b.s) || off+len(sub) > len(b.s) {
		panic("bytestr: SliceRef subset is not part of the backing bytes")
	}
	return ByteStr{s: b.s[off : off+len(sub)]}
}

// Slice 按字节偏移 [start, end) 切出子串，共享底层内存
// start、end 越界或落在多字节字符内部时 panic，
// 绝不返回一段被截断的字符序列
func (b ByteStr) Slice(start, end int) ByteStr {
	if start < 0 || end < start || end > len(b.s) {
		panic(fmt.Sprintf("bytestr: slice bounds out of range [%d:%d] with length %d", start, end, len(b.s)))
	}
	if !b.isBoundary(start) {
		panic(fmt.Sprintf("bytestr: byte offset %d is not a UTF-8 boundary", start))
	}
	if !b.isBoundary(end) {
		panic(fmt.Sprintf("bytestr: byte offset %d is not a UTF-8 boundary", end))
	}
	return ByteStr{s: b.s[start:end]}
}

// SplitAt 在字节偏移 mid 处一分为二
// mid 必须落在字符边界上，否则 panic
func (b ByteStr) SplitAt(mid int) (ByteStr, ByteStr) {
	return b.Slice(0, mid), b.Slice(mid, len(b.s))
}

// Take 取前 n 个字节
func (b ByteStr) Take(n int) ByteStr {
	return b.Slice(0, n)
}

// Skip 跳过前 n 个字节，返回剩余部分
func (b ByteStr) Skip(n int) ByteStr {
	return b.Slice(n, len(b.s))
}

// isBoundary 报告字节偏移 i 是否落在字符边界上
// 调用前提：i 已经在 [0, len] 范围内
func (b ByteStr) isBoundary(i int) bool {
	return i == len(b.s) || utf8.RuneStart(b.s[i])
}

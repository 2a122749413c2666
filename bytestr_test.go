package bytestr

import (
	"bytes"
	"errors"
	"testing"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"
)

// TestNew_ZeroValue 零值和 New 都是可用的空字符串
func TestNew_ZeroValue(t *testing.T) {
	var zero ByteStr
	if !zero.IsEmpty() || zero.Len() != 0 || zero.String() != "" {
		t.Fatalf("zero value is not an empty string: %q", zero.String())
	}
	if n := New(); !n.Equal(zero) {
		t.Fatalf("New() != zero value")
	}
}

// TestFromStatic 零开销构造
func TestFromStatic(t *testing.T) {
	bs := FromStatic("hello")
	if bs.String() != "hello" || bs.Len() != 5 {
		t.Fatalf("FromStatic failed: %q len=%d", bs.String(), bs.Len())
	}
}

// TestFromString_Valid 合法输入直接复用原字符串
func TestFromString_Valid(t *testing.T) {
	bs, err := FromString("test string")
	if err != nil {
		t.Fatal(err)
	}
	if bs.String() != "test string" {
		t.Fatalf("got %q", bs.String())
	}
}

// TestFromBytes_RoundTrip 任意合法 UTF-8 字节序列构造后能原样取回
func TestFromBytes_RoundTrip(t *testing.T) {
	inputs := [][]byte{
		[]byte("hello world"),
		[]byte(""),
		[]byte("Hello, 世界! 🦀"),
		{0xE4, 0xB8, 0x96}, // 单个三字节字符
	}
	for _, in := range inputs {
		want := bytes.Clone(in)
		bs, err := FromBytes(in)
		if err != nil {
			t.Fatalf("FromBytes(%q) failed: %v", want, err)
		}
		if !bytes.Equal(bs.Bytes(), want) {
			t.Fatalf("round trip mismatch: got %q want %q", bs.Bytes(), want)
		}
	}
}

// TestFromBytes_Invalid 校验失败要报告第一个非法字节的位置，且原始字节可取回
func TestFromBytes_Invalid(t *testing.T) {
	in := []byte{0x68, 0x65, 0xFF, 0x6C, 0x6C, 0x6F}
	_, err := FromBytes(in)
	if err == nil {
		t.Fatal("expected validation error")
	}
	var ue *InvalidUTF8Error
	if !errors.As(err, &ue) {
		t.Fatalf("error type = %T, want *InvalidUTF8Error", err)
	}
	if ue.Offset != 2 {
		t.Fatalf("offset = %d, want 2", ue.Offset)
	}
	// 失败时所有权退还：错误里拿到的就是传入的那块缓冲区
	if &ue.Bytes[0] != &in[0] || !bytes.Equal(ue.Bytes, in) {
		t.Fatal("rejected bytes are not recoverable from the error")
	}
}

// TestFromBytes_FirstErrorOnly 只报告第一处错误
func TestFromBytes_FirstErrorOnly(t *testing.T) {
	_, err := FromBytes([]byte{'a', 0xFF, 'b', 0xFE})
	var ue *InvalidUTF8Error
	if !errors.As(err, &ue) || ue.Offset != 1 {
		t.Fatalf("err = %v, want offset 1", err)
	}
}

// TestFromBytesLossy 非法序列按最大子部替换为 U+FFFD
func TestFromBytesLossy(t *testing.T) {
	tests := []struct {
		in   []byte
		want string
	}{
		{[]byte("Hello, world!"), "Hello, world!"},
		{[]byte{0xFF, 0xFE, 0xFD}, "���"},   // 三个独立的非法字节
		{[]byte{'a', 0xFF, 'b'}, "a�b"},
		{[]byte{0xE4, 0xB8}, "�"},           // 被截断的三字节序列，整体替换一个
		{[]byte{'a', 0xE4, 0xB8, 'b'}, "a�b"},
		{[]byte{0xF0, 0x9F, 0x98}, "�"},     // 被截断的四字节序列
		{[]byte{0xE0, 0x80, 'x'}, "��x"},    // E0 后继字节越界，各自替换
		{[]byte{0xC2, 'a'}, "�a"},           // 引导字节后没有连续字节
	}
	for _, tt := range tests {
		if got := FromBytesLossy(tt.in); got.String() != tt.want {
			t.Fatalf("FromBytesLossy(% x) = %q, want %q", tt.in, got.String(), tt.want)
		}
	}
}

// TestInvariant 所有构造成功的实例重新校验必然通过
func TestInvariant(t *testing.T) {
	var values []ByteStr
	values = append(values, New(), FromStatic("Hello, 世界! 🦀"))
	if v, err := FromString("abc"); err == nil {
		values = append(values, v)
	}
	if v, err := FromBytes([]byte("héllo")); err == nil {
		values = append(values, v)
	}
	values = append(values, FromBytesLossy([]byte{0xFF, 'x'}))
	v16, _ := FromUTF16([]uint16{0x48, 0x4E2D})
	values = append(values, v16, values[1].Take(7), values[1].TrimSpace())
	for i, v := range values {
		if !utf8.ValidString(v.String()) {
			t.Fatalf("value %d violates the UTF-8 invariant: %q", i, v.String())
		}
	}
}

// TestClone 克隆就是值拷贝，内容相同
func TestClone(t *testing.T) {
	a := FromStatic("clone me")
	b := a
	if !a.Equal(b) || a != b {
		t.Fatal("clone is not equal to the original")
	}
}

// TestEqualityAcrossAllocations 不同底层内存、相同内容的实例相等且哈希一致
func TestEqualityAcrossAllocations(t *testing.T) {
	a := FromStatic("abc")
	b, err := FromBytes([]byte("abc"))
	if err != nil {
		t.Fatal(err)
	}
	if !a.Equal(b) || a != b {
		t.Fatal("equal content from different allocations must compare equal")
	}
	// ByteStr 可比较，直接作为 map 键，哈希按内容计算
	m := map[ByteStr]int{a: 1}
	m[b]++
	if len(m) != 1 || m[a] != 2 {
		t.Fatalf("hash inconsistent with equality: %v", m)
	}
}

// TestCompare 字节序比较与字典序一致
func TestCompare(t *testing.T) {
	a, b := FromStatic("apple"), FromStatic("banana")
	if a.Compare(b) >= 0 || b.Compare(a) <= 0 || a.Compare(a) != 0 {
		t.Fatal("Compare ordering is wrong")
	}
}

// TestReadOnlySurface 只读操作全部委托给标准字符串语义
func TestReadOnlySurface(t *testing.T) {
	s := FromStatic("Hello, 世界! 🦀")
	if s.Len() != 19 {
		t.Fatalf("Len = %d, want 19", s.Len())
	}
	if s.RuneCount() != 12 {
		t.Fatalf("RuneCount = %d, want 12", s.RuneCount())
	}
	if !s.HasPrefix("Hello") || !s.HasSuffix("🦀") {
		t.Fatal("prefix/suffix check failed")
	}
	if !s.Contains("世界") || !s.Contains("🦀") {
		t.Fatal("contains check failed")
	}
	if i := s.Index("世界"); i != 7 {
		t.Fatalf("Index = %d, want 7", i)
	}
	if !s.EqualString("Hello, 世界! 🦀") {
		t.Fatal("EqualString failed")
	}
}

// TestBytes_DefensiveCopy 外部篡改 Bytes() 的返回值不影响原实例
func TestBytes_DefensiveCopy(t *testing.T) {
	s := FromStatic("immutable")
	got := s.Bytes()
	got[0] = 'X'
	if s.String() != "immutable" {
		t.Fatalf("mutating the copy leaked into the ByteStr: %q", s.String())
	}
}

// TestAppendTo 追加到调用方缓冲区
func TestAppendTo(t *testing.T) {
	s := FromStatic("world")
	got := s.AppendTo([]byte("hello "))
	if string(got) != "hello world" {
		t.Fatalf("AppendTo = %q", got)
	}
}

// TestConcurrentReads 多个 goroutine 持有克隆并发只读，无需任何协调
func TestConcurrentReads(t *testing.T) {
	s := FromStatic("GET /api/users HTTP/1.1\r\nHost: example.com\r\n")
	var g errgroup.Group
	for i := 0; i < 16; i++ {
		clone := s
		g.Go(func() error {
			for j := 0; j < 100; j++ {
				line, _, ok := clone.Cut("\r\n")
				if !ok {
					return errors.New("missing request line")
				}
				fields := line.Fields()
				if len(fields) != 3 || !fields[0].EqualString("GET") {
					return errors.New("unexpected request line")
				}
				if !utf8.ValidString(clone.String()) {
					return errors.New("invariant violated under concurrency")
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
}

package bytestr

import (
	json "github.com/goccy/go-json"
)

// 序列化边界：ByteStr 在任何格式里都表现为一个普通的 UTF-8 文本值

// MarshalJSON 把内容编码为 JSON 字符串
func (b ByteStr) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.s)
}

// UnmarshalJSON 从 JSON 字符串解码
// 解码器只展开转义序列，不保证产出合法 UTF-8
// （字符串里夹带的原始非法字节会原样透传），
// 所以解码结果必须走校验路径；这仍然是整个边界上唯一的一次校验
// 失败时返回 *InvalidUTF8Error，接收者保持原值不变
func (b *ByteStr) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if off := firstInvalidString(s); off >= 0 {
		return &InvalidUTF8Error{Bytes: []byte(s), Offset: off}
	}
	b.s = s
	return nil
}

// MarshalText 实现 encoding.TextMarshaler
func (b ByteStr) MarshalText() ([]byte, error) {
	return []byte(b.s), nil
}

// UnmarshalText 实现 encoding.TextUnmarshaler
// 文本类编解码器传入的是原始字节，没有合法性保证，必须走校验路径；
// 按 TextUnmarshaler 的约定，text 的所有权仍属于调用方，这里必须拷贝
func (b *ByteStr) UnmarshalText(text []byte) error {
	if off := firstInvalid(text); off >= 0 {
		return &InvalidUTF8Error{Bytes: text, Offset: off}
	}
	b.s = string(text)
	return nil
}

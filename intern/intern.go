// 基于golang标准库list实现的有界驻留池
package intern

import (
	"container/list"
	"sync"

	"github.com/crypt0walker/bytestr"
	"github.com/sirupsen/logrus"
)

// Options 驻留池配置选项
type Options struct {
	MaxBytes  int64                    // 池中规范副本的总字节上限，超出后按 LRU 淘汰
	OnEvicted func(v bytestr.ByteStr) // 条目被淘汰时的回调函数，可为nil
}

// DefaultOptions 默认配置
func DefaultOptions() Options {
	return Options{
		MaxBytes: 1 << 20, // 1MB
	}
}

// Pool 是一个有界的字符串驻留池
// 同一份文本内容只保留一个规范的 ByteStr 副本，
// 反复解析相同 token 的场景可以共享同一块底层内存
// 池内部用互斥锁保护，可以被多个 goroutine 并发使用
type Pool struct {
	mu        sync.Mutex
	maxBytes  int64                    // 最大内存容量
	usedBytes int64                    // 当前已使用内存
	ll        *list.List               // 双向链表，维护条目的访问顺序
	items     map[string]*list.Element // 内容到链表节点的映射
	onEvicted func(v bytestr.ByteStr)
	stats     poolStats
}

// poolStats 保存池的统计信息
type poolStats struct {
	hits      int64 // 命中次数
	misses    int64 // 未命中次数
	evictions int64 // 淘汰次数
}

// Stats 是对外暴露的统计快照
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Entries   int
	UsedBytes int64
}

// 池中的一个条目
// 链表节点里只存规范副本本身，映射的键就是副本的内容，
// 淘汰时从节点取回内容即可同步清理映射
type entry struct {
	v bytestr.ByteStr
}

// NewPool 创建一个新的驻留池实例
func NewPool(opts Options) *Pool {
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = DefaultOptions().MaxBytes
	}
	return &Pool{
		maxBytes:  opts.MaxBytes,
		ll:        list.New(),
		items:     make(map[string]*list.Element),
		onEvicted: opts.OnEvicted,
	}
}

// Intern 返回与 b 内容相同的规范 ByteStr
// 命中时直接共享池内副本，不分配；
// 未命中时校验 UTF-8 并把内容【拷贝】进池
// （b 的所有权仍属于调用方，池必须持有自己的副本）
// 校验失败返回 *bytestr.InvalidUTF8Error，池不受影响
func (p *Pool) Intern(b []byte) (bytestr.ByteStr, error) {
	p.mu.Lock()
	// map 用 string(b) 做键查找时编译器不会产生分配
	if ele, ok := p.items[string(b)]; ok {
		p.ll.MoveToFront(ele)
		p.stats.hits++
		v := ele.Value.(*entry).v
		p.mu.Unlock()
		return v, nil
	}
	p.mu.Unlock()

	// 校验和拷贝都放在锁外，失败路径不碰池状态
	v, err := bytestr.FromString(string(b))
	if err != nil {
		return bytestr.New(), err
	}
	return p.insert(v), nil
}

// InternString 同 Intern，输入为 string
// string 本身不可变，校验通过后可以直接作为规范副本持有，不再拷贝
func (p *Pool) InternString(s string) (bytestr.ByteStr, error) {
	p.mu.Lock()
	if ele, ok := p.items[s]; ok {
		p.ll.MoveToFront(ele)
		p.stats.hits++
		v := ele.Value.(*entry).v
		p.mu.Unlock()
		return v, nil
	}
	p.mu.Unlock()

	v, err := bytestr.FromString(s)
	if err != nil {
		return bytestr.New(), err
	}
	return p.insert(v), nil
}

// insert 把规范副本放入池中并按需淘汰，返回池内的最终副本
func (p *Pool) insert(v bytestr.ByteStr) bytestr.ByteStr {
	p.mu.Lock()
	defer p.mu.Unlock()

	// 锁外校验期间可能有并发插入，重查一次避免双份副本
	// 对本次调用方来说这仍然是一次未命中（校验和拷贝都已经做了）
	if ele, ok := p.items[v.String()]; ok {
		p.ll.MoveToFront(ele)
		p.stats.misses++
		return ele.Value.(*entry).v
	}

	p.stats.misses++
	p.items[v.String()] = p.ll.PushFront(&entry{v: v})
	p.usedBytes += int64(v.Len())

	for p.maxBytes > 0 && p.usedBytes > p.maxBytes && p.ll.Len() > 1 {
		p.removeOldest()
	}
	return v
}

// removeOldest 淘汰最久未使用的条目，调用此方法前必须持有锁
func (p *Pool) removeOldest() {
	ele := p.ll.Back()
	if ele == nil {
		return
	}
	ent := ele.Value.(*entry)
	p.ll.Remove(ele)
	delete(p.items, ent.v.String())
	p.usedBytes -= int64(ent.v.Len())
	p.stats.evictions++
	logrus.Debugf("intern: evicted %q, used %d/%d bytes", ent.v.String(), p.usedBytes, p.maxBytes)
	if p.onEvicted != nil {
		p.onEvicted(ent.v)
	}
}

// Len 返回池中条目数量
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ll.Len()
}

// Stats 返回统计信息快照
func (p *Pool) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Stats{
		Hits:      p.stats.hits,
		Misses:    p.stats.misses,
		Evictions: p.stats.evictions,
		Entries:   p.ll.Len(),
		UsedBytes: p.usedBytes,
	}
}

package model

import "strings"

// TagSeparator 标签拼接分隔符
const TagSeparator = ", "

// TagSet 保持插入顺序的小写去重集合
type TagSet struct {
	seen  map[string]struct{}
	order []string
}

// NewTagSet 创建空集合
func NewTagSet() *TagSet {
	return &TagSet{seen: make(map[string]struct{})}
}

// Add 加入单个标签，统一转小写，空白忽略
func (s *TagSet) Add(tag string) {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "" {
		return
	}
	if _, ok := s.seen[tag]; ok {
		return
	}
	s.seen[tag] = struct{}{}
	s.order = append(s.order, tag)
}

// AddAll 批量加入
func (s *TagSet) AddAll(tags []string) {
	for _, t := range tags {
		s.Add(t)
	}
}

// Len 元素个数
func (s *TagSet) Len() int { return len(s.order) }

// Slice 按插入顺序返回
func (s *TagSet) Slice() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// String 拼接后的标签串
func (s *TagSet) String() string {
	return strings.Join(s.order, TagSeparator)
}

// SplitTags 按逗号拆分并去掉首尾空白，丢弃空项
func SplitTags(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// JoinTags 规整商品标签串："a ,b" -> "a, b"，保留大小写
func JoinTags(raw string) string {
	return strings.Join(SplitTags(raw), TagSeparator)
}

// HasTag 完整元素匹配（忽略大小写），不做子串匹配
func HasTag(raw, tag string) bool {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "" {
		return false
	}
	for _, t := range SplitTags(raw) {
		if strings.ToLower(t) == tag {
			return true
		}
	}
	return false
}

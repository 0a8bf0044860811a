package invite

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/dep2p/go-realminvite/pkg/types"
)

// MaxLinkLength 可接受的链接最大长度
//
// 3 个节点对加 V2 字段的链接约 400 字符，超长输入直接拒绝。
const MaxLinkLength = 4096

// param 一个查询参数
type param struct {
	key   string
	value string
}

// queryBag 有序的查询参数集合
//
// 与 url.Values 不同，保留参数出现顺序（节点对顺序即排序结果），允许重复键。
type queryBag struct {
	params []param
}

// extractQuery 取出链接中的查询部分
//
// 取第一个 '?' 之后、'#' 之前的内容；没有 '?' 时整个字符串视为查询串
// （嵌套子载荷解码后即为裸查询串）。
func extractQuery(raw string) string {
	raw = strings.TrimSpace(raw)
	if i := strings.IndexByte(raw, '#'); i >= 0 {
		raw = raw[:i]
	}
	if _, query, ok := strings.Cut(raw, "?"); ok {
		return query
	}
	if strings.Contains(raw, "://") {
		return ""
	}
	return raw
}

// parseQuery 按 application/x-www-form-urlencoded 规则解析查询串
func parseQuery(query string) (*queryBag, error) {
	bag := &queryBag{}
	for _, part := range strings.Split(query, "&") {
		if part == "" {
			continue
		}
		rawKey, rawValue, _ := strings.Cut(part, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			return nil, fmt.Errorf("%w: key %q: %v", types.ErrMalformedQuery, rawKey, err)
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			return nil, fmt.Errorf("%w: value of %q: %v", types.ErrMalformedQuery, key, err)
		}
		if key == "" {
			continue
		}
		bag.params = append(bag.params, param{key: key, value: value})
	}
	return bag, nil
}

// first 返回键的第一个值
func (b *queryBag) first(key string) (string, bool) {
	for _, p := range b.params {
		if p.key == key {
			return p.value, true
		}
	}
	return "", false
}

// has 是否包含键
func (b *queryBag) has(key string) bool {
	_, ok := b.first(key)
	return ok
}

// remove 删除键的所有值
func (b *queryBag) remove(key string) {
	kept := b.params[:0]
	for _, p := range b.params {
		if p.key != key {
			kept = append(kept, p)
		}
	}
	b.params = kept
}

// remaining 返回剩余参数
func (b *queryBag) remaining() []param {
	return b.params
}

// queryBuilder 按顺序拼接查询串
type queryBuilder struct {
	sb strings.Builder
}

func (q *queryBuilder) add(key, value string) {
	if q.sb.Len() > 0 {
		q.sb.WriteByte('&')
	}
	q.sb.WriteString(url.QueryEscape(key))
	q.sb.WriteByte('=')
	q.sb.WriteString(url.QueryEscape(value))
}

func (q *queryBuilder) String() string {
	return q.sb.String()
}

// joinURL 将查询串附加到基础 URL
func joinURL(base, query string) string {
	switch {
	case base == "":
		return "?" + query
	case strings.HasSuffix(base, "?"), strings.HasSuffix(base, "&"):
		return base + query
	case strings.Contains(base, "?"):
		return base + "&" + query
	default:
		return base + "?" + query
	}
}

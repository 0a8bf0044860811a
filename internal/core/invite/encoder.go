package invite

import (
	"fmt"

	"github.com/dep2p/go-realminvite/pkg/types"
)

// Encoder 邀请链接编码器
type Encoder struct {
	registry *Registry
}

// NewEncoder 创建编码器
func NewEncoder(registry *Registry) *Encoder {
	return &Encoder{registry: registry}
}

// Encode 将载荷编码为邀请链接
//
// 格式：baseURL?k=..&o=..[&a=..]&<peerId>=<onion>...
//
// 命名字段按 schema 顺序输出，节点对按传入顺序输出（不重新排序）。
// 输出前用解码端相同的校验函数检查每个值，保证生成的链接可被解码。
func (e *Encoder) Encode(baseURL string, p *types.InvitationPayload) (string, error) {
	if p == nil {
		return "", fmt.Errorf("%w: nil payload", types.ErrInvalidInvitation)
	}
	schema, err := e.registry.SchemaFor(p.Version)
	if err != nil {
		return "", err
	}
	if len(p.Pairs) == 0 {
		return "", types.ErrNoValidPeers
	}

	var q queryBuilder
	if err := encodeFields(&q, schema, fragmentFromPayload(p)); err != nil {
		return "", err
	}
	for _, pair := range p.Pairs {
		if err := ValidatePair(pair); err != nil {
			return "", err
		}
		q.add(pair.PeerID, pair.OnionAddress)
	}
	return joinURL(baseURL, q.String()), nil
}

// encodeFields 按 schema 顺序写出命名字段
func encodeFields(q *queryBuilder, schema *Schema, frag Fragment) error {
	for _, spec := range schema.Fields {
		raw, ok := frag[spec.Name]
		if !ok {
			if spec.Required {
				return &types.MissingFieldError{Key: spec.Key}
			}
			continue
		}

		value, err := encodeField(spec, raw)
		if err != nil {
			return err
		}
		if _, err := spec.Validate(value, nil); err != nil {
			return types.NewFieldFormatError(spec.Key, value, err.Error())
		}
		q.add(spec.Key, value)
	}
	return nil
}

func encodeField(spec FieldSpec, raw any) (string, error) {
	if spec.Nested != nil {
		child, ok := raw.(Fragment)
		if !ok {
			return "", types.NewFieldFormatError(spec.Key, "", "nested value is not a fragment")
		}
		var sub queryBuilder
		if err := encodeFields(&sub, spec.Nested.Schema, child); err != nil {
			return "", err
		}
		value := sub.String()
		if spec.Wrap != nil {
			value = spec.Wrap(value)
		}
		return value, nil
	}

	value, ok := raw.(string)
	if !ok {
		return "", types.NewFieldFormatError(spec.Key, "", "value is not a string")
	}
	if spec.Wrap != nil {
		value = spec.Wrap(value)
	}
	return value, nil
}

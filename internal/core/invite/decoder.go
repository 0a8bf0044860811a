package invite

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dep2p/go-realminvite/pkg/types"
)

// DefaultMaxDepth 默认的最大嵌套深度（含顶层）
const DefaultMaxDepth = 4

// Decoder 递归解码器
//
// 无共享可变状态，可被并发调用。
type Decoder struct {
	registry *Registry
	maxDepth int
}

// NewDecoder 创建解码器
func NewDecoder(registry *Registry, maxDepth int) *Decoder {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Decoder{registry: registry, maxDepth: maxDepth}
}

// Decode 按指定版本解码邀请链接
func (d *Decoder) Decode(rawURL string, version types.SchemaVersion) (*types.InvitationPayload, *types.DecodeDiagnostics, error) {
	schema, err := d.registry.SchemaFor(version)
	if err != nil {
		return nil, nil, err
	}
	return d.DecodeSchema(rawURL, schema)
}

// DecodeAuto 根据链接内容选择版本解码
//
// 携带 authData 键时按 V2 解码，否则按 V1。
func (d *Decoder) DecodeAuto(rawURL string) (*types.InvitationPayload, *types.DecodeDiagnostics, error) {
	version := types.SchemaV1
	if len(rawURL) <= MaxLinkLength {
		if bag, err := parseQuery(extractQuery(rawURL)); err == nil && bag.has(KeyAuthData) {
			version = types.SchemaV2
		}
	}
	return d.Decode(rawURL, version)
}

// DecodeSchema 按给定 schema 解码邀请链接
//
// 步骤:
//  1. 解析查询串为有序参数集合
//  2. 按 schema 顺序校验命名字段，嵌套字段递归解码，消费后删除键
//  3. 剩余参数作为节点对候选，无效者丢弃
//  4. 没有有效节点对时拒绝整个链接
//
// 可选字段与节点对的丢弃记录在诊断信息中。
func (d *Decoder) DecodeSchema(rawURL string, schema *Schema) (*types.InvitationPayload, *types.DecodeDiagnostics, error) {
	run := &decodeRun{
		diag:     &types.DecodeDiagnostics{ParseID: uuid.NewString()},
		maxDepth: d.maxDepth,
	}
	run.log = log.With("parse_id", run.diag.ParseID, "version", schema.Version.String())

	payload, err := run.decode(rawURL, schema)
	if err != nil {
		run.logFailure(err)
		return nil, run.diag, err
	}

	run.log.Debug("邀请链接解析成功",
		"pairs", len(payload.Pairs),
		"dropped", len(run.diag.Dropped),
		"ignored", len(run.diag.Ignored))
	return payload, run.diag, nil
}

// ============================================================================
//                              单次解码
// ============================================================================

type decodeRun struct {
	diag     *types.DecodeDiagnostics
	log      *slog.Logger
	maxDepth int
}

func (r *decodeRun) decode(rawURL string, schema *Schema) (*types.InvitationPayload, error) {
	if len(rawURL) > MaxLinkLength {
		return nil, fmt.Errorf("%w: link too long (%d > %d)", types.ErrMalformedQuery, len(rawURL), MaxLinkLength)
	}

	bag, err := parseQuery(extractQuery(rawURL))
	if err != nil {
		return nil, err
	}

	frag, err := r.fields(bag, schema, "", 1)
	if err != nil {
		return nil, err
	}

	pairs := r.harvestPairs(bag)
	if len(pairs) == 0 {
		return nil, types.ErrNoValidPeers
	}

	return payloadFromFragment(schema.Version, frag, pairs), nil
}

// fields 按 schema 顺序处理命名字段
func (r *decodeRun) fields(bag *queryBag, schema *Schema, path string, depth int) (Fragment, error) {
	if depth > r.maxDepth {
		return nil, fmt.Errorf("%w: depth %d exceeds %d", types.ErrNestingTooDeep, depth, r.maxDepth)
	}

	out := make(Fragment, len(schema.Fields))
	for _, spec := range schema.Fields {
		value, ok := bag.first(spec.Key)
		if !ok {
			if spec.Required {
				return nil, &types.MissingFieldError{Key: spec.Key}
			}
			continue
		}

		frag, err := r.field(spec, value, path, depth)
		bag.remove(spec.Key)
		if err != nil {
			if spec.Required || errors.Is(err, types.ErrNestingTooDeep) {
				return nil, err
			}
			r.drop(path, spec.Key, value, err)
			continue
		}
		for k, v := range frag {
			out[k] = v
		}
	}
	return out, nil
}

// field 校验单个字段，嵌套字段递归解码
func (r *decodeRun) field(spec FieldSpec, value, path string, depth int) (Fragment, error) {
	frag, err := spec.Validate(value, spec.Process)
	if err != nil {
		var fe *types.FieldFormatError
		if errors.As(err, &fe) {
			return nil, err
		}
		return nil, types.NewFieldFormatError(spec.Key, value, err.Error())
	}
	if spec.Nested == nil {
		return frag, nil
	}

	query, _ := frag[spec.Name].(string)
	child, err := parseQuery(query)
	if err != nil {
		return nil, types.NewFieldFormatError(spec.Key, value, err.Error())
	}

	childPath := joinPath(path, spec.Nested.WrapperKey)
	sub, err := r.fields(child, spec.Nested.Schema, childPath, depth+1)
	if err != nil {
		return nil, err
	}
	for _, p := range child.remaining() {
		r.diag.Ignored = append(r.diag.Ignored, joinPath(childPath, p.key))
	}

	delete(frag, spec.Name)
	frag[spec.Nested.WrapperKey] = sub
	return frag, nil
}

// harvestPairs 将剩余参数转换为节点对
func (r *decodeRun) harvestPairs(bag *queryBag) []types.InvitationPair {
	var pairs []types.InvitationPair
	for _, p := range bag.remaining() {
		pair := types.InvitationPair{PeerID: p.key, OnionAddress: p.value}
		if err := ValidatePair(pair); err != nil {
			r.drop("", p.key, p.value, err)
			continue
		}
		pairs = append(pairs, pair)
	}
	return pairs
}

func (r *decodeRun) drop(path, key, value string, err error) {
	r.diag.Dropped = append(r.diag.Dropped, types.DroppedField{
		Path:   path,
		Key:    key,
		Value:  value,
		Reason: err.Error(),
	})
	r.log.Debug("丢弃无效数据", "path", path, "key", key, "error", err)
}

func (r *decodeRun) logFailure(err error) {
	var fe *types.FieldFormatError
	var me *types.MissingFieldError
	switch {
	case errors.As(err, &fe):
		r.log.Warn("邀请链接无效", "key", fe.Key, "value", fe.Value, "error", err)
	case errors.As(err, &me):
		r.log.Warn("邀请链接无效", "key", me.Key, "error", err)
	default:
		r.log.Warn("邀请链接无效", "error", err)
	}
}

func joinPath(parent, child string) string {
	if parent == "" {
		return child
	}
	return parent + "." + child
}

// ============================================================================
//                              Fragment <-> Payload
// ============================================================================

func payloadFromFragment(v types.SchemaVersion, frag Fragment, pairs []types.InvitationPair) *types.InvitationPayload {
	p := &types.InvitationPayload{Version: v, Pairs: pairs}
	p.PSK, _ = frag[FieldPSK].(string)
	p.OwnerOrbitDBIdentity, _ = frag[FieldOwnerIdentity].(string)
	if auth, ok := frag[FieldAuthData].(Fragment); ok {
		p.AuthData = &types.AuthData{}
		p.AuthData.CommunityName, _ = auth[FieldCommunityName].(string)
		p.AuthData.Seed, _ = auth[FieldSeed].(string)
	}
	return p
}

func fragmentFromPayload(p *types.InvitationPayload) Fragment {
	frag := Fragment{}
	if p.PSK != "" {
		frag[FieldPSK] = p.PSK
	}
	if p.OwnerOrbitDBIdentity != "" {
		frag[FieldOwnerIdentity] = p.OwnerOrbitDBIdentity
	}
	if p.AuthData != nil {
		auth := Fragment{}
		if p.AuthData.CommunityName != "" {
			auth[FieldCommunityName] = p.AuthData.CommunityName
		}
		if p.AuthData.Seed != "" {
			auth[FieldSeed] = p.AuthData.Seed
		}
		frag[FieldAuthData] = auth
	}
	return frag
}

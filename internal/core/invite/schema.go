package invite

import (
	"fmt"
	"slices"

	"github.com/dep2p/go-realminvite/pkg/types"
)

// ============================================================================
//                              Schema 定义
// ============================================================================

// FieldSpec 一个命名字段的描述
//
// 解码引擎只解释这些属性，从不按字段键做特殊处理。
type FieldSpec struct {
	// Key 查询参数键
	Key string

	// Name 载荷字段名
	Name string

	// Required 是否必需
	Required bool

	// Validate 校验函数
	Validate ValidateFunc

	// Process 可选的值转换（解码端）
	Process ProcessFunc

	// Wrap Process 的逆操作（编码端）
	Wrap WrapFunc

	// Nested 非空时，Process 的输出按子 schema 递归解码
	Nested *NestedSpec
}

// NestedSpec 嵌套子载荷描述
type NestedSpec struct {
	// WrapperKey 子载荷在结果中的字段名
	WrapperKey string

	// Schema 子 schema
	Schema *Schema
}

// Schema 一个版本的有序字段表
type Schema struct {
	Version types.SchemaVersion
	Fields  []FieldSpec
}

// Field 按查询键查找字段
func (s *Schema) Field(key string) (FieldSpec, bool) {
	for _, f := range s.Fields {
		if f.Key == key {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// ============================================================================
//                              Registry
// ============================================================================

// Registry 版本化 schema 注册表
//
// schema 在创建时构建一次，之后只读，可被并发使用。
type Registry struct {
	schemas map[types.SchemaVersion]*Schema
	latest  types.SchemaVersion
}

// NewRegistry 创建注册表
//
// valid 为 PSK 格式谓词；为 nil 时使用默认的 32 字节 base64 检查。
func NewRegistry(valid types.PSKValidator) *Registry {
	if valid == nil {
		valid = types.NewPSKValidator(types.DefaultPSKSize)
	}

	v1 := &Schema{
		Version: types.SchemaV1,
		Fields: []FieldSpec{
			{Key: KeyPSK, Name: FieldPSK, Required: true, Validate: validatePSK(valid)},
			{Key: KeyOwnerIdentity, Name: FieldOwnerIdentity, Required: true, Validate: validateOwnerIdentity},
		},
	}

	authData := &Schema{
		Version: types.SchemaV2,
		Fields: []FieldSpec{
			{Key: KeyCommunityName, Name: FieldCommunityName, Required: true, Validate: validateCommunityName},
			{Key: KeySeed, Name: FieldSeed, Required: true, Validate: validateSeed},
		},
	}

	v2 := &Schema{
		Version: types.SchemaV2,
		Fields: append(slices.Clone(v1.Fields), FieldSpec{
			Key:      KeyAuthData,
			Name:     FieldAuthData,
			Validate: validateAuthData,
			Process:  decodeAuthData,
			Wrap:     encodeAuthData,
			Nested:   &NestedSpec{WrapperKey: FieldAuthData, Schema: authData},
		}),
	}

	return &Registry{
		schemas: map[types.SchemaVersion]*Schema{
			types.SchemaV1: v1,
			types.SchemaV2: v2,
		},
		latest: types.SchemaV2,
	}
}

// SchemaFor 返回指定版本的 schema
func (r *Registry) SchemaFor(v types.SchemaVersion) (*Schema, error) {
	s, ok := r.schemas[v]
	if !ok {
		return nil, fmt.Errorf("%w: %s", types.ErrUnknownSchemaVersion, v)
	}
	return s, nil
}

// Latest 返回最新版本的 schema
func (r *Registry) Latest() *Schema {
	return r.schemas[r.latest]
}

// Versions 返回已注册的版本（升序）
func (r *Registry) Versions() []types.SchemaVersion {
	out := make([]types.SchemaVersion, 0, len(r.schemas))
	for v := range r.schemas {
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}

// Package invite 实现社区邀请链接的编解码
//
// 包括字段校验、版本化 schema 注册表、递归解码器、编码器、
// 节点排序以及把它们组合在一起的邀请服务。
package invite

import (
	"errors"
	"fmt"

	"github.com/dep2p/go-realminvite/pkg/interfaces"
	"github.com/dep2p/go-realminvite/pkg/types"
)

// ErrNoCommunity 未配置社区存储
var ErrNoCommunity = errors.New("community store not available")

// Service InvitationService 实现
type Service struct {
	registry  *Registry
	decoder   *Decoder
	encoder   *Encoder
	builder   *Builder
	store     interfaces.CommunityStore
	telemetry interfaces.TelemetryProvider
}

var _ interfaces.InvitationService = (*Service)(nil)

// ServiceConfig 服务参数
type ServiceConfig struct {
	BaseURL      string
	MaxPeers     int
	MaxDepth     int
	PSKValidator types.PSKValidator
}

// NewService 创建邀请服务
//
// store 与 telemetry 均可为 nil：没有社区存储时无法构建链接，
// 没有遥测时所有节点按原始顺序排列。
func NewService(cfg ServiceConfig, store interfaces.CommunityStore, telemetry interfaces.TelemetryProvider) *Service {
	registry := NewRegistry(cfg.PSKValidator)
	encoder := NewEncoder(registry)
	return &Service{
		registry:  registry,
		decoder:   NewDecoder(registry, cfg.MaxDepth),
		encoder:   encoder,
		builder:   NewBuilder(encoder, cfg.BaseURL, cfg.MaxPeers),
		store:     store,
		telemetry: telemetry,
	}
}

// InvitationURL 根据社区当前状态构建邀请链接
func (s *Service) InvitationURL(version types.SchemaVersion) string {
	c, err := s.community()
	if err != nil {
		log.Debug("读取社区失败", "error", err)
		return ""
	}
	return s.builder.InvitationURL(c, s.snapshot(), version)
}

// Parse 解析邀请链接，自动选择版本
func (s *Service) Parse(rawURL string) (*types.InvitationPayload, *types.DecodeDiagnostics, error) {
	return s.decoder.DecodeAuto(rawURL)
}

// ParseVersion 按指定版本解析邀请链接
func (s *Service) ParseVersion(rawURL string, version types.SchemaVersion) (*types.InvitationPayload, *types.DecodeDiagnostics, error) {
	return s.decoder.Decode(rawURL, version)
}

// RankedPeers 返回排序后的节点地址
func (s *Service) RankedPeers() ([]string, error) {
	c, err := s.community()
	if err != nil {
		return nil, err
	}
	return RankPeers(c.PeerAddresses, c.LocalAddress, s.snapshot()), nil
}

// Encode 编码给定载荷
func (s *Service) Encode(baseURL string, p *types.InvitationPayload) (string, error) {
	return s.encoder.Encode(baseURL, p)
}

// Registry 返回 schema 注册表
func (s *Service) Registry() *Registry {
	return s.registry
}

func (s *Service) community() (types.Community, error) {
	if s.store == nil {
		return types.Community{}, ErrNoCommunity
	}
	c, err := s.store.Community()
	if err != nil {
		return types.Community{}, fmt.Errorf("load community: %w", err)
	}
	return c, nil
}

func (s *Service) snapshot() types.TelemetrySnapshot {
	if s.telemetry == nil {
		return nil
	}
	return s.telemetry.Snapshot()
}

package invite

import (
	"github.com/dep2p/go-realminvite/pkg/types"
)

// Builder 根据社区状态组装邀请链接
type Builder struct {
	encoder  *Encoder
	baseURL  string
	maxPeers int
}

// NewBuilder 创建链接构建器
func NewBuilder(encoder *Encoder, baseURL string, maxPeers int) *Builder {
	if maxPeers <= 0 {
		maxPeers = DefaultMaxPeers
	}
	return &Builder{encoder: encoder, baseURL: baseURL, maxPeers: maxPeers}
}

// Payload 组装载荷
//
// 任何必需数据尚未就绪时返回 false。
func (b *Builder) Payload(c types.Community, snap types.TelemetrySnapshot, version types.SchemaVersion) (*types.InvitationPayload, bool) {
	if c.PSK == "" || c.OwnerOrbitDBIdentity == "" {
		return nil, false
	}
	pairs := PairsFromAddrs(RankPeers(c.PeerAddresses, c.LocalAddress, snap), b.maxPeers)
	if len(pairs) == 0 {
		return nil, false
	}

	p := &types.InvitationPayload{
		Version:              version,
		PSK:                  c.PSK,
		OwnerOrbitDBIdentity: c.OwnerOrbitDBIdentity,
		Pairs:                pairs,
	}
	if version == types.SchemaV2 {
		if c.Name == "" || c.InviteSeed == "" {
			return nil, false
		}
		p.AuthData = &types.AuthData{CommunityName: c.Name, Seed: c.InviteSeed}
	}
	return p, true
}

// InvitationURL 构建邀请链接
//
// 数据未就绪或编码失败时返回空字符串，表示"尚不可用"而不是错误。
func (b *Builder) InvitationURL(c types.Community, snap types.TelemetrySnapshot, version types.SchemaVersion) string {
	p, ok := b.Payload(c, snap, version)
	if !ok {
		log.Debug("邀请链接尚未就绪", "version", version.String())
		return ""
	}
	link, err := b.encoder.Encode(b.baseURL, p)
	if err != nil {
		log.Debug("邀请链接编码失败", "version", version.String(), "error", err)
		return ""
	}
	return link
}

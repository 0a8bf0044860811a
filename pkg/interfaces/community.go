package interfaces

import "github.com/dep2p/go-realminvite/pkg/types"

// CommunityStore 社区/身份存储
//
// 提供原始节点地址列表、本地地址、PSK、所有者身份、社区名称和长期邀请种子。
// 持久化由外部负责，本系统只读取普通值。
type CommunityStore interface {
	// Community 返回当前社区的原始值
	Community() (types.Community, error)
}

package types

// ============================================================================
//                              Community
// ============================================================================

// Community 社区/身份存储提供的原始值
//
// 作为普通值消费；任何字段都可能尚未就绪（为空）。
type Community struct {
	// Name 社区名称
	Name string `json:"name"`

	// PeerAddresses 社区已知的全部节点地址（multiaddr 文本）
	//
	// 格式：/dns4/<onion>.onion/tcp/<port>/ws/p2p/<peerId>
	PeerAddresses []string `json:"peerAddresses"`

	// LocalAddress 本地节点自己的地址（排序时排除）
	LocalAddress string `json:"localAddress"`

	// PSK 预共享密钥
	PSK string `json:"psk"`

	// OwnerOrbitDBIdentity 社区所有者的 OrbitDB 身份
	OwnerOrbitDBIdentity string `json:"ownerOrbitDbIdentity"`

	// InviteSeed 已有的长期邀请种子（V2）
	InviteSeed string `json:"inviteSeed"`
}

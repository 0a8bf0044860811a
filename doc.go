// Package realminvite 提供私有 P2P 社区的邀请链接
//
// 社区成员生成一个紧凑的可分享链接（文本或二维码），新设备无需中心目录
// 即可凭借链接引导加入社区；接收方在信任链接之前解析并校验它。
//
// # 核心概念
//
//   - InvitationPayload: 版本化载荷（PSK、所有者身份、引导节点对、V2 的 authData）
//   - Schema: 每个版本一张有序字段表，解码引擎只解释字段描述
//   - 节点排序: 按本地观测的连接遥测选出最值得分享的引导节点
//
// # 快速开始
//
//	app, err := realminvite.New(
//	    realminvite.WithCommunity(community),
//	    realminvite.WithDataDir("/var/lib/realminvite"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := app.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer app.Close()
//
//	// 网络层上报连接事件
//	app.Telemetry().Connected(peerID)
//
//	// 生成链接（数据未就绪时为空字符串）
//	link := app.InvitationURL(realminvite.SchemaV2)
//
//	// 解析收到的链接
//	payload, diag, err := app.Parse(link)
//	if errors.Is(err, realminvite.ErrInvalidInvitation) {
//	    // 向用户展示通用的"邀请链接无效"
//	}
//
// # 链接格式
//
//	<base>?k=<psk>&o=<ownerOrbitDbIdentity>[&a=<authData>]&<peerId>=<onion>...
//
// authData 为 base64url 编码的嵌套查询串 c=<communityName>&s=<seed>。
//
// # 文件组织
//
//	realminvite.go  App 入口与生命周期
//	options.go      配置选项
//	fx.go           模块装配
//	errors.go       公共错误
//	types.go        类型别名
package realminvite

// Package interfaces 定义 realminvite 的公共接口
//
// 本包只包含接口定义，实现位于 internal/ 下：
//   - invite.go     - 邀请链接编解码与构建服务
//   - telemetry.go  - 节点连接遥测提供者
//   - community.go  - 社区/身份存储（外部协作者）
//   - storage.go    - 存储引擎
package interfaces

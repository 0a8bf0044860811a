// Package storage 提供持久化存储模块
//
// 基于 BadgerDB，存放节点连接遥测等需要跨重启保留的小数据集。
//
// # 结构
//
//	storage/
//	├── engine/          # 引擎接口、配置、错误
//	│   └── badger/      # BadgerDB 实现
//	└── kv/              # 带前缀的键值命名空间
//
// # 键前缀
//
//	t/   节点连接遥测（telemetry 模块）
//
// # Fx 集成
//
//	fx.New(
//	    storage.Module(),
//	    // 依赖 *config.Config
//	)
package storage

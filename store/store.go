// Package store 提供 core.Store / core.KeyValueStore 的基础设施实现。
//
// 两个实现：
//   - MemoryStore：进程内存储，测试/开发/单机原型用
//   - RedisStore：生产环境的 Redis 后端
//
// 在本工具包中存储承担两类数据：
//   - 客户特征画像（feature.StoreFeatureService 的后端）
//   - 评分审计记录（gateway.AuditRecorder 的后端，带 TTL）
package store

import "github.com/marketml/scorekit/core"

// ErrNotFound 即 core.ErrStoreNotFound，包内实现使用的别名。
var ErrNotFound = core.ErrStoreNotFound

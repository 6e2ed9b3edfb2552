package cf

import (
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/rushteam/menukit/core"
)

// Cache 按快照版本缓存 Item-CF 模型。
//
// 全量重建相似度矩阵的代价是 ~O(items² × users)，每个请求都重建无法支撑线上吞吐。
// 约束：
//   - 同一版本至多一次并发重建（singleflight 收敛并发请求）
//   - 只缓存构建完成的模型，调用方拿不到半成品矩阵
//   - 固定快照版本下输出与直接 BuildModel 逐位一致
//   - 新交互数据摄入后由上层以新版本号触发重建，旧版本显式失效
type Cache struct {
	mu     sync.RWMutex
	models map[string]*Model
	group  singleflight.Group
}

func NewCache() *Cache {
	return &Cache{models: make(map[string]*Model)}
}

// Get 返回快照对应的模型，没有则构建并缓存。
// 快照无版本号时不缓存，退化为直接构建。
func (c *Cache) Get(snap *core.Snapshot) *Model {
	if snap.Version == "" {
		return BuildModel(snap.Orders)
	}

	c.mu.RLock()
	m, ok := c.models[snap.Version]
	c.mu.RUnlock()
	if ok {
		return m
	}

	v, _, _ := c.group.Do(snap.Version, func() (any, error) {
		built := BuildModel(snap.Orders)
		c.mu.Lock()
		c.models[snap.Version] = built
		c.mu.Unlock()
		return built, nil
	})
	return v.(*Model)
}

// Invalidate 失效单个快照版本（新订单摄入、快照重载后调用）。
func (c *Cache) Invalidate(version string) {
	c.mu.Lock()
	delete(c.models, version)
	c.mu.Unlock()
}

// Purge 清空全部缓存。
func (c *Cache) Purge() {
	c.mu.Lock()
	c.models = make(map[string]*Model)
	c.mu.Unlock()
}

package dataset

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/rushteam/menukit/core"
)

// Static 是固定快照的 SnapshotSource，用于测试与内存型部署。
type Static struct {
	Snap *core.Snapshot
}

func NewStatic(snap *core.Snapshot) *Static { return &Static{Snap: snap} }

func (s *Static) Snapshot(_ context.Context) (*core.Snapshot, error) {
	if s.Snap == nil {
		return nil, core.ErrSnapshotInvalid
	}
	return s.Snap, nil
}

// CachedSource 缓存下游 Source 的快照，直到显式 Reload。
// singleflight 保证并发首载只触发一次下游加载。
type CachedSource struct {
	Source core.SnapshotSource

	mu    sync.RWMutex
	snap  *core.Snapshot
	group singleflight.Group
}

func NewCachedSource(src core.SnapshotSource) *CachedSource {
	return &CachedSource{Source: src}
}

func (c *CachedSource) Snapshot(ctx context.Context) (*core.Snapshot, error) {
	c.mu.RLock()
	snap := c.snap
	c.mu.RUnlock()
	if snap != nil {
		return snap, nil
	}

	v, err, _ := c.group.Do("load", func() (any, error) {
		loaded, err := c.Source.Snapshot(ctx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.snap = loaded
		c.mu.Unlock()
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*core.Snapshot), nil
}

// Reload 丢弃缓存的快照；下一次 Snapshot 调用会重新加载。
// 新交互数据摄入后调用，同时应使旧版本的相似度缓存失效。
func (c *CachedSource) Reload() {
	c.mu.Lock()
	c.snap = nil
	c.mu.Unlock()
}

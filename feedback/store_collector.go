package feedback

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rushteam/menukit/core"
)

// StoreCollector 把反馈事件异步写入 core.Store。
// 事件 key 形如 "feedback:<user_id>:<unix_nano>"，由离线管道批量消费。
// 缓冲满时丢弃新事件而不是阻塞请求路径：反馈是尽力而为的观测信号。
type StoreCollector struct {
	store core.Store

	// KeyPrefix 事件 key 前缀，默认 "feedback"
	KeyPrefix string

	events chan *Event
	done   chan struct{}
	once   sync.Once
}

// NewStoreCollector 创建并启动一个后台落盘的收集器。
// bufferSize <= 0 时使用默认缓冲 1024。
func NewStoreCollector(store core.Store, bufferSize int) *StoreCollector {
	if bufferSize <= 0 {
		bufferSize = 1024
	}
	c := &StoreCollector{
		store:     store,
		KeyPrefix: "feedback",
		events:    make(chan *Event, bufferSize),
		done:      make(chan struct{}),
	}
	go c.drain()
	return c
}

func (c *StoreCollector) drain() {
	defer close(c.done)
	for event := range c.events {
		data, err := json.Marshal(event)
		if err != nil {
			continue
		}
		key := fmt.Sprintf("%s:%d:%d", c.KeyPrefix, event.UserID, time.Now().UnixNano())
		// 落盘失败只能丢弃：反馈链路不允许反压到请求路径
		_ = c.store.Set(context.Background(), key, data)
	}
}

// Record 实现 Collector 接口。
func (c *StoreCollector) Record(_ context.Context, event *Event) error {
	if event == nil {
		return nil
	}
	if event.Timestamp == 0 {
		event.Timestamp = time.Now().Unix()
	}
	select {
	case c.events <- event:
	default:
		// 缓冲满，丢弃
	}
	return nil
}

// RecordImpressions 实现 Collector 接口。
func (c *StoreCollector) RecordImpressions(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) error {
	now := time.Now().Unix()
	for pos, it := range items {
		if it == nil {
			continue
		}
		labels := make(map[string]string, len(it.Labels))
		for k, v := range it.Labels {
			labels[k] = v.Value
		}
		_ = c.Record(ctx, &Event{
			UserID:    rctx.UserID,
			ItemID:    it.ID,
			Type:      TypeImpression,
			Timestamp: now,
			Position:  pos,
			Score:     it.HybridScore,
			Labels:    labels,
		})
	}
	return nil
}

// Close 停止接收新事件并等待缓冲落盘完成。
func (c *StoreCollector) Close() error {
	c.once.Do(func() {
		close(c.events)
	})
	<-c.done
	return nil
}

var _ Collector = (*StoreCollector)(nil)

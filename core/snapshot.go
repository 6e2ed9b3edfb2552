package core

import "context"

// Snapshot 是一次打分调用消费的不可变数据快照：{users, items, orders}。
//
// 设计原则：
//   - 核心是无状态纯函数：所有结果都从快照 + 上下文重新计算
//   - 快照在调用间不可变，并发请求天然安全
//   - Version 标识快照版本，用于相似度矩阵缓存的 key 与失效
type Snapshot struct {
	Version string

	Users  map[int64]*UserProfile
	Items  []*MenuItem
	Orders []*Order
}

// Validate 校验快照形状。必需字段缺失属于致命前置条件失败，
// 核心不做部分恢复，直接报给调用方。
func (s *Snapshot) Validate() error {
	if s == nil {
		return ErrSnapshotInvalid
	}
	for id, u := range s.Users {
		if u == nil || u.UserID == 0 || u.UserID != id {
			return NewDomainError(ModuleSnapshot, ErrorCodeInvalidInput, "snapshot: user row missing user_id")
		}
	}
	for _, it := range s.Items {
		if it == nil || it.ID == 0 {
			return NewDomainError(ModuleSnapshot, ErrorCodeInvalidInput, "snapshot: item row missing item_id")
		}
	}
	for _, o := range s.Orders {
		if o == nil || o.UserID == 0 || o.ItemID == 0 {
			return NewDomainError(ModuleSnapshot, ErrorCodeInvalidInput, "snapshot: order row missing user_id/item_id")
		}
	}
	return nil
}

// UserByID 查找用户画像，找不到返回 (nil, false)。
func (s *Snapshot) UserByID(userID int64) (*UserProfile, bool) {
	u, ok := s.Users[userID]
	return u, ok
}

// ItemByID 线性查找菜品行。快照菜单规模有限，不值得维护索引。
func (s *Snapshot) ItemByID(itemID int64) (*MenuItem, bool) {
	for _, it := range s.Items {
		if it.ID == itemID {
			return it, true
		}
	}
	return nil, false
}

// SnapshotSource 是数据接入协作方的领域接口。
//
// 设计原则：
//   - 定义在领域层（core），由基础设施层（dataset / store / feast）实现
//   - 加载与解析的 I/O 全部发生在核心运行之前
//
// 实现：
//   - dataset.CSVSource 从 CSV 文件加载
//   - dataset.CachedSource 带缓存的装饰器
type SnapshotSource interface {
	// Snapshot 返回当前数据快照。实现必须保证返回后的快照不再被修改。
	Snapshot(ctx context.Context) (*Snapshot, error)
}

// Package service 提供推荐服务的装配与对外接口。
// Recommender 通过显式构造注入依赖，不使用任何包级单例。
package service

import (
	"context"
	"time"

	"github.com/rushteam/menukit/cf"
	"github.com/rushteam/menukit/core"
	"github.com/rushteam/menukit/dataset"
	"github.com/rushteam/menukit/feedback"
	"github.com/rushteam/menukit/filter"
	"github.com/rushteam/menukit/pipeline"
	"github.com/rushteam/menukit/rank"
	"github.com/rushteam/menukit/recall"
	"github.com/rushteam/menukit/rerank"
)

// DefaultTopK 默认返回条数
const DefaultTopK = 10

// Request 推荐请求
type Request struct {
	UserID int64 `json:"user_id"`
	// TopK 返回条数，<=0 时取 DefaultTopK
	TopK int `json:"top_k"`
	// TimeOfDay 为空时按当前时间推断
	TimeOfDay core.TimeOfDay `json:"time_of_day,omitempty"`
	// BudgetLevel 为空时回退到用户画像的预算敏感度
	BudgetLevel string `json:"budget_level,omitempty"`
	Query       string `json:"query,omitempty"`
}

// Row 输出行，列集合固定，调用方不感知内部打分细节。
type Row struct {
	ItemID         int64    `json:"item_id"`
	Name           string   `json:"name"`
	Category       string   `json:"category"`
	Subcategory    string   `json:"subcategory,omitempty"`
	Price          float64  `json:"price"`
	DietaryTags    []string `json:"dietary_tags,omitempty"`
	TimePreference string   `json:"time_preference"`
	BudgetCategory string   `json:"budget_category"`
	Score          float64  `json:"score"`
	CFScore        float64  `json:"cf_score"`
	HybridScore    float64  `json:"hybrid_score"`
}

// Response 推荐结果，按混合分降序排列。
type Response struct {
	UserID    int64          `json:"user_id"`
	TimeOfDay core.TimeOfDay `json:"time_of_day"`
	ColdStart bool           `json:"cold_start"`
	Rows      []*Row         `json:"rows"`
}

// Recommender 推荐器，持有全部依赖，显式构造。
type Recommender struct {
	// Source 数据快照来源（CSV、内存或其他实现）
	Source core.SnapshotSource
	// Cache 协同过滤相似度缓存，按快照版本键控
	Cache *cf.Cache
	// Profiles 可选：用户画像兜底来源（如 Feast 在线特征），
	// 快照中缺失用户时回源查询
	Profiles core.ProfileProvider
	// Collector 可选：反馈收集器，设置后自动记录曝光
	Collector feedback.Collector
	// Filters 可选：过滤链（黑名单、规则等），
	// 过敏原与不喜欢过滤总是启用
	Filters []filter.Filter
	// TopK 默认返回条数，请求未指定时生效
	TopK int
}

// New 构造推荐器。source 必填，cache 为 nil 时内部新建。
func New(source core.SnapshotSource, cache *cf.Cache, opts ...Option) *Recommender {
	if cache == nil {
		cache = cf.NewCache()
	}
	r := &Recommender{
		Source: source,
		Cache:  cache,
		TopK:   DefaultTopK,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Option 推荐器可选配置
type Option func(*Recommender)

// WithProfiles 设置画像兜底来源
func WithProfiles(p core.ProfileProvider) Option {
	return func(r *Recommender) { r.Profiles = p }
}

// WithCollector 设置反馈收集器
func WithCollector(c feedback.Collector) Option {
	return func(r *Recommender) { r.Collector = c }
}

// WithFilters 追加过滤器
func WithFilters(fs ...filter.Filter) Option {
	return func(r *Recommender) { r.Filters = append(r.Filters, fs...) }
}

// WithTopK 设置默认返回条数
func WithTopK(k int) Option {
	return func(r *Recommender) { r.TopK = k }
}

// Recommend 执行一次推荐。
// 整条链路共享同一份快照，请求途中快照刷新不影响本次结果。
func (r *Recommender) Recommend(ctx context.Context, req *Request) (*Response, error) {
	if req == nil {
		req = &Request{}
	}
	snap, err := r.Source.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	snap, err = r.overlayProfile(ctx, snap, req.UserID)
	if err != nil {
		return nil, err
	}
	// 固定住本次请求的快照，链路里所有节点看到同一版本
	static := &dataset.Static{Snap: snap}

	rctx := &core.RecommendContext{
		UserID:      req.UserID,
		Now:         time.Now(),
		TimeOfDay:   req.TimeOfDay,
		BudgetLevel: req.BudgetLevel,
		Query:       req.Query,
	}
	rctx.Ensure()

	topK := req.TopK
	if topK <= 0 {
		topK = r.TopK
	}
	if topK <= 0 {
		topK = DefaultTopK
	}

	p := r.buildPipeline(static, topK)
	items, err := p.Run(ctx, rctx, nil)
	if err != nil {
		return nil, err
	}

	resp := &Response{
		UserID:    req.UserID,
		TimeOfDay: rctx.TimeOfDay,
		Rows:      project(items),
	}
	if v, ok := rctx.GetLabel("cold_start"); ok && v.Value == "true" {
		resp.ColdStart = true
	}
	return resp, nil
}

// buildPipeline 按固定顺序装配单次请求的流水线：
// 召回 -> 过滤 -> 内容打分 -> 协同过滤 -> 混合重排。
func (r *Recommender) buildPipeline(static *dataset.Static, topK int) *pipeline.Pipeline {
	filters := []filter.Filter{
		&filter.Allergen{Source: static},
		&filter.Disliked{Source: static},
	}
	filters = append(filters, r.Filters...)

	nodes := []pipeline.Node{
		&recall.Menu{Source: static},
		&filter.FilterNode{Filters: filters},
		&rank.ContentNode{Source: static},
		&rank.CFNode{Source: static, Cache: r.Cache},
		&rerank.HybridNode{TopK: topK},
	}
	p := &pipeline.Pipeline{Nodes: nodes}
	if r.Collector != nil {
		p.Hooks = append(p.Hooks, feedback.NewHook(r.Collector, nodes[len(nodes)-1]))
	}
	return p
}

// overlayProfile 快照缺失用户画像时，从兜底来源补齐。
// 补齐只影响本次请求的浅拷贝，不污染共享快照。
func (r *Recommender) overlayProfile(ctx context.Context, snap *core.Snapshot, userID int64) (*core.Snapshot, error) {
	if r.Profiles == nil || userID == 0 {
		return snap, nil
	}
	if _, ok := snap.UserByID(userID); ok {
		return snap, nil
	}
	profile, err := r.Profiles.Profile(ctx, userID)
	if err != nil {
		if core.IsUserNotFound(err) || core.IsNotFound(err) {
			return snap, nil
		}
		return nil, err
	}
	users := make(map[int64]*core.UserProfile, len(snap.Users)+1)
	for id, u := range snap.Users {
		users[id] = u
	}
	users[userID] = profile
	patched := *snap
	patched.Users = users
	return &patched, nil
}

// project 投影固定输出列，顺序保持混合分降序。
func project(items []*core.Item) []*Row {
	rows := make([]*Row, 0, len(items))
	for _, it := range items {
		if it == nil || it.Menu == nil {
			continue
		}
		rows = append(rows, &Row{
			ItemID:         it.Menu.ID,
			Name:           it.Menu.Name,
			Category:       it.Menu.Category,
			Subcategory:    it.Menu.Subcategory,
			Price:          it.Menu.Price,
			DietaryTags:    it.Menu.Tags(),
			TimePreference: it.Menu.TimePreference,
			BudgetCategory: it.Menu.BudgetCategory,
			Score:          it.Score,
			CFScore:        it.CFScore,
			HybridScore:    it.HybridScore,
		})
	}
	return rows
}

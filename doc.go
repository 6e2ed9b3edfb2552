// Package menukit 是一个菜单推荐工具包（Menu Recommender Kit）。
//
// 设计要点：
// - Pipeline-first: 推荐逻辑通过 Node 串联（Recall → Filter → Rank → ReRank）
// - 快照一致性: 单次请求全链路共享同一份数据快照
// - 混合排序: 内容打分与协同过滤按幂次加权融合，冷启动自动退化为纯内容排序
package menukit

import "github.com/rushteam/menukit/pipeline"

// 轻量 facade：便于用户直接 import "menukit" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindRecall      = pipeline.KindRecall
	KindFilter      = pipeline.KindFilter
	KindRank        = pipeline.KindRank
	KindReRank      = pipeline.KindReRank
	KindPostProcess = pipeline.KindPostProcess
)

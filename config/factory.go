// Package config 提供基于配置的 Pipeline 装配。
// 运行时依赖（快照来源、缓存、存储）由调用方显式注入，
// 配置文件只描述链路编排，不描述基础设施。
package config

import (
	"github.com/rushteam/menukit/cf"
	"github.com/rushteam/menukit/core"
	"github.com/rushteam/menukit/filter"
	"github.com/rushteam/menukit/pipeline"
	"github.com/rushteam/menukit/pkg/conv"
	"github.com/rushteam/menukit/rank"
	"github.com/rushteam/menukit/recall"
	"github.com/rushteam/menukit/rerank"
	"github.com/rushteam/menukit/store"
)

// Deps 节点构建所需的运行时依赖。
type Deps struct {
	Source core.SnapshotSource
	Cache  *cf.Cache
	Store  core.Store // 可选，recall.hot / filter 黑名单用
}

// DefaultFactory 注册 menukit 内置的全部 Node 类型。
//
// 支持的配置示例（YAML）：
//
//	pipeline:
//	  name: menu-rec
//	  nodes:
//	    - type: recall.menu
//	    - type: filter
//	      config:
//	        allergen: true
//	        disliked: true
//	        blacklist_key: "menu:unavailable"
//	        rule: 'item.price < 200.0'
//	    - type: rank.content
//	    - type: rank.cf
//	      config: {top_k: 50}
//	    - type: rerank.hybrid
//	      config: {top_k: 10}
func DefaultFactory(deps Deps) *pipeline.NodeFactory {
	f := pipeline.NewNodeFactory()

	f.Register("recall.menu", func(cfg map[string]any) (pipeline.Node, error) {
		return &recall.Menu{Source: deps.Source}, nil
	})

	f.Register("recall.hot", func(cfg map[string]any) (pipeline.Node, error) {
		return &recall.Hot{
			Source: deps.Source,
			Store:  deps.Store,
			Key:    conv.ConfigGet(cfg, "key", store.HotItemsKey),
			TopN:   conv.ConfigGetInt64(cfg, "top_n", 0),
			IDs:    conv.SliceAnyToInt64(cfg["ids"]),
		}, nil
	})

	f.Register("filter", func(cfg map[string]any) (pipeline.Node, error) {
		filters, err := buildFilters(cfg, deps)
		if err != nil {
			return nil, err
		}
		return &filter.FilterNode{Filters: filters}, nil
	})

	f.Register("rank.content", func(cfg map[string]any) (pipeline.Node, error) {
		return &rank.ContentNode{Source: deps.Source}, nil
	})

	f.Register("rank.cf", func(cfg map[string]any) (pipeline.Node, error) {
		return &rank.CFNode{
			Source: deps.Source,
			Cache:  deps.Cache,
			TopK:   int(conv.ConfigGetInt64(cfg, "top_k", 0)),
		}, nil
	})

	f.Register("rerank.hybrid", func(cfg map[string]any) (pipeline.Node, error) {
		return &rerank.HybridNode{
			TopK: int(conv.ConfigGetInt64(cfg, "top_k", 0)),
		}, nil
	})

	f.Register("rerank.topn", func(cfg map[string]any) (pipeline.Node, error) {
		return &rerank.TopNNode{
			N: int(conv.ConfigGetInt64(cfg, "n", 0)),
		}, nil
	})

	f.Register("rerank.diversity", func(cfg map[string]any) (pipeline.Node, error) {
		return &rerank.Diversity{
			MaxPerCategory: int(conv.ConfigGetInt64(cfg, "max_per_category", 0)),
		}, nil
	})

	return f
}

// buildFilters 按配置开关装配过滤链。
func buildFilters(cfg map[string]any, deps Deps) ([]filter.Filter, error) {
	var filters []filter.Filter
	if conv.ConfigGet(cfg, "allergen", true) {
		filters = append(filters, &filter.Allergen{Source: deps.Source})
	}
	if conv.ConfigGet(cfg, "disliked", true) {
		filters = append(filters, &filter.Disliked{Source: deps.Source})
	}
	ids := conv.SliceAnyToInt64(cfg["blacklist_ids"])
	key := conv.ConfigGet(cfg, "blacklist_key", "")
	if len(ids) > 0 || key != "" {
		filters = append(filters, &filter.Blacklist{
			ItemIDs: ids,
			Store:   deps.Store,
			Key:     key,
		})
	}
	if expr := conv.ConfigGet(cfg, "rule", ""); expr != "" {
		rule, err := filter.NewRule(expr)
		if err != nil {
			return nil, err
		}
		filters = append(filters, rule)
	}
	return filters, nil
}

// Package dsl 提供基于 CEL (Common Expression Language) 的规则表达式求值，
// 用于 filter.Rule 等策略驱动场景。
package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/rushteam/menukit/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvOnce sync.Once
	celEnvErr  error
)

func getCELEnv() (*cel.Env, error) {
	celEnvOnce.Do(func() {
		celEnv, celEnvErr = cel.NewEnv(
			cel.Variable("item", cel.DynType),
			cel.Variable("label", cel.DynType),
			cel.Variable("rctx", cel.DynType),
		)
	})
	return celEnv, celEnvErr
}

// Rule 是一条编译好的 CEL 规则，可对多个 item 复用。
//
// 表达式语法（CEL 标准语法）：
//   - 数值：item.price > 30.0 / item.score >= 0.5
//   - 标签集合："spicy" in item.tags
//   - 上下文：rctx.time_of_day == "lunch" && item.category == "dessert"
//   - Label：label.recall_source.contains("hot")
//
// 示例：
//   - `item.price > 45.0 && rctx.budget_level == "low"` → 低预算档剔除高价菜
//   - `"spicy" in item.tags && rctx.params.no_spicy == true` → 按请求参数剔辣
type Rule struct {
	expr string
	prg  cel.Program
}

// Compile 编译 CEL 表达式。表达式必须返回布尔值。
func Compile(expr string) (*Rule, error) {
	env, err := getCELEnv()
	if err != nil {
		return nil, fmt.Errorf("cel env: %w", err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile error: %v", issues.Err())
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program error: %v", err)
	}

	return &Rule{expr: expr, prg: prg}, nil
}

// Expr 返回规则的原始表达式文本。
func (r *Rule) Expr() string { return r.expr }

// Eval 对单个 item 求值。
// 访问不存在的 key 会返回错误；用 `label.key != null` 做存在性检查。
func (r *Rule) Eval(item *core.Item, rctx *core.RecommendContext) (bool, error) {
	out, _, err := r.prg.Eval(buildInput(item, rctx))
	if err != nil {
		return false, fmt.Errorf("eval error: %v", err)
	}

	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression must return boolean, got %T", out.Value())
	}
	return result, nil
}

// buildInput 构建 CEL 表达式的输入数据。
func buildInput(it *core.Item, rctx *core.RecommendContext) map[string]any {
	labels := make(map[string]any, len(it.Labels))
	for k, v := range it.Labels {
		labels[k] = v.Value
	}

	item := map[string]any{
		"id":           it.ID,
		"score":        it.Score,
		"cf_score":     it.CFScore,
		"hybrid_score": it.HybridScore,
		"features":     it.Features,
	}
	if it.Menu != nil {
		item["name"] = it.Menu.Name
		item["category"] = it.Menu.Category
		item["subcategory"] = it.Menu.Subcategory
		item["price"] = it.Menu.Price
		item["tags"] = it.Menu.Tags()
		item["time_preference"] = it.Menu.TimePreference
		item["budget_category"] = it.Menu.BudgetCategory
	}

	rc := map[string]any{
		"user_id":      rctx.UserID,
		"time_of_day":  string(rctx.TimeOfDay),
		"budget_level": rctx.BudgetLevel,
		"query":        rctx.Query,
		"params":       rctx.Params,
	}

	return map[string]any{
		"item":  item,
		"label": labels,
		"rctx":  rc,
	}
}

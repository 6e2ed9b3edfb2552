package filter

import (
	"context"
	"fmt"

	"github.com/rushteam/menukit/core"
	"github.com/rushteam/menukit/pkg/dsl"
)

// Rule 是 CEL 表达式过滤器：表达式求值为 true 的菜品被剔除。
// 用于无需改代码的临时业务规则，例如健康目标限价、按请求参数剔辣。
type Rule struct {
	rule *dsl.Rule
}

// NewRule 编译表达式并创建规则过滤器。
func NewRule(expr string) (*Rule, error) {
	compiled, err := dsl.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("filter rule: %w", err)
	}
	return &Rule{rule: compiled}, nil
}

func (f *Rule) Name() string { return "filter.rule" }

func (f *Rule) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	return f.rule.Eval(item, rctx)
}

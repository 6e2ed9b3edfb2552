package core

import "github.com/rushteam/menukit/pkg/utils"

// 缺省值：可选字段缺失时按中性语义处理，而不是报错。
const (
	DefaultTimePreference = "any"
	DefaultBudgetCategory = "mid"
)

// MenuItem 是菜品快照行：每次打分调用拿到的都是不可变快照。
// DietaryTags 是集合语义（meat / chicken / dairy / vegetarian / spicy ...）。
type MenuItem struct {
	ID          int64
	Name        string
	Category    string
	Subcategory string
	Price       float64

	// DietaryTags 菜品饮食标签集合，缺失时为空集合
	DietaryTags map[string]struct{}

	// TimePreference 适宜时段：morning / lunch / afternoon / dinner / any / all。
	// 缺失时按 "any" 处理。
	TimePreference string

	// BudgetCategory 价位档：low / mid / high，缺失时按 "mid" 处理
	BudgetCategory string
}

// Normalize 将可选字段补成中性缺省值。
// 只在快照构建阶段（数据源解析时）调用；快照发布后被多请求共享，
// 任何阶段都不得再写菜品行。
func (m *MenuItem) Normalize() {
	if m.DietaryTags == nil {
		m.DietaryTags = make(map[string]struct{})
	}
	if m.TimePreference == "" {
		m.TimePreference = DefaultTimePreference
	}
	if m.BudgetCategory == "" {
		m.BudgetCategory = DefaultBudgetCategory
	}
}

// HasTag 判断菜品是否带有某个饮食标签。
func (m *MenuItem) HasTag(tag string) bool {
	_, ok := m.DietaryTags[tag]
	return ok
}

// Tags 返回标签的有序性无保证的切片形式，用于输出投影。
func (m *MenuItem) Tags() []string {
	out := make([]string, 0, len(m.DietaryTags))
	for t := range m.DietaryTags {
		out = append(out, t)
	}
	return out
}

// NewTagSet 从切片构建标签集合，空白项被忽略。
func NewTagSet(tags ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		if t == "" {
			continue
		}
		set[t] = struct{}{}
	}
	return set
}

// Item 是推荐链路中的统一承载结构：菜品元信息、各阶段分数、标签。
// Labels 用于解释与策略驱动；HybridScore 用于最终排序决策。
type Item struct {
	ID int64

	// Menu 指向快照中的菜品行，链路内只读
	Menu *MenuItem

	// Score 内容/上下文得分（五因子乘积）
	Score float64

	// CFScore 协同过滤得分（已归一化到 [0,1]）
	CFScore float64

	// HybridScore 加权几何平均融合后的最终得分
	HybridScore float64

	// Features 各阶段写入的数值特征（如打分因子拆解），用于观测与调试
	Features map[string]float64

	// Meta 业务元信息透传（门店、活动位等），核心不解释
	Meta map[string]any

	Labels map[string]utils.Label
}

func NewItem(menu *MenuItem) *Item {
	return &Item{
		ID:       menu.ID,
		Menu:     menu,
		Features: make(map[string]float64),
		Meta:     make(map[string]any),
		Labels:   make(map[string]utils.Label),
	}
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (it *Item) PutLabel(key string, lbl utils.Label) {
	if it.Labels == nil {
		it.Labels = make(map[string]utils.Label)
	}
	if old, ok := it.Labels[key]; ok {
		it.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	it.Labels[key] = lbl
}

// PutFeature 写入数值特征。
func (it *Item) PutFeature(key string, v float64) {
	if it.Features == nil {
		it.Features = make(map[string]float64)
	}
	it.Features[key] = v
}

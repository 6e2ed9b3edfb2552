// Package cf 实现基于物品的协同过滤（Item-CF）：
// 从稀疏的用户-菜品交互计数构建物品相似度矩阵，并为用户预测逐菜品的亲和度分。
//
// 核心思想："被同一批用户点过的菜品，相互相似"
//
// 算法流程：
//  1. 订单聚合为 用户×菜品 计数矩阵（缺失格为 0，多次下单累加计数）
//  2. 每个菜品列向量做 L2 归一化（ε 防零向量）
//  3. 归一化矩阵的 Gram 积得到对称的 物品×物品 余弦相似度矩阵
//  4. 预测分 = 相似度矩阵 × 用户原始计数向量，再降权已重度消费的菜品
//
// 工程特征：
//  - 全量重建代价 ~O(items² × users)，配合 Cache 按快照版本复用
//  - 冷启动（无交互用户）返回空分数集，由上层回退到内容分
package cf

import (
	"math"
	"sort"

	"github.com/rushteam/menukit/core"
)

// epsNorm 防止零交互列在 L2 归一化时除零。
const epsNorm = 1e-9

// Model 是一次快照上构建的 Item-CF 模型：交互计数矩阵 + 物品相似度矩阵。
// 构建完成后只读，可被并发 Predict 安全共享。
type Model struct {
	// users userID -> 计数矩阵行号
	users map[int64]int

	// items 列号 -> itemID，按 itemID 升序，保证构建结果确定
	items []int64

	// itemIndex itemID -> 列号
	itemIndex map[int64]int

	// counts 用户×菜品 交互计数（行 = 用户）
	counts [][]float64

	// sim 物品×物品 余弦相似度，对称，非零列对角线 ≈ 1
	sim [][]float64
}

// BuildModel 从订单聚合交互计数并计算物品相似度矩阵。
// 只有出现在订单里的用户和菜品才进入矩阵；从未被点过的菜品
// 没有交互列，它们的 CF 分由上层按 0 处理。
func BuildModel(orders []*core.Order) *Model {
	userSet := make(map[int64]struct{})
	itemSet := make(map[int64]struct{})
	for _, o := range orders {
		userSet[o.UserID] = struct{}{}
		itemSet[o.ItemID] = struct{}{}
	}

	userIDs := sortedIDs(userSet)
	itemIDs := sortedIDs(itemSet)

	m := &Model{
		users:     make(map[int64]int, len(userIDs)),
		items:     itemIDs,
		itemIndex: make(map[int64]int, len(itemIDs)),
	}
	for i, id := range userIDs {
		m.users[id] = i
	}
	for j, id := range itemIDs {
		m.itemIndex[id] = j
	}

	// 用户×菜品 计数矩阵
	m.counts = make([][]float64, len(userIDs))
	for i := range m.counts {
		m.counts[i] = make([]float64, len(itemIDs))
	}
	for _, o := range orders {
		m.counts[m.users[o.UserID]][m.itemIndex[o.ItemID]]++
	}

	m.sim = cosineSimilarity(m.counts, len(itemIDs))
	return m
}

// cosineSimilarity 对计数矩阵的列向量做 L2 归一化后取 Gram 积。
func cosineSimilarity(counts [][]float64, cols int) [][]float64 {
	rows := len(counts)

	norms := make([]float64, cols)
	for j := 0; j < cols; j++ {
		var ss float64
		for i := 0; i < rows; i++ {
			v := counts[i][j]
			ss += v * v
		}
		norms[j] = math.Sqrt(ss) + epsNorm
	}

	// normalized[i][j] = counts[i][j] / ||col_j||
	normalized := make([][]float64, rows)
	for i := 0; i < rows; i++ {
		normalized[i] = make([]float64, cols)
		for j := 0; j < cols; j++ {
			normalized[i][j] = counts[i][j] / norms[j]
		}
	}

	sim := make([][]float64, cols)
	for a := 0; a < cols; a++ {
		sim[a] = make([]float64, cols)
	}
	for a := 0; a < cols; a++ {
		for b := a; b < cols; b++ {
			var dot float64
			for i := 0; i < rows; i++ {
				dot += normalized[i][a] * normalized[i][b]
			}
			sim[a][b] = dot
			sim[b][a] = dot
		}
	}
	return sim
}

// Items 返回进入矩阵的菜品 ID（升序）。
func (m *Model) Items() []int64 { return m.items }

// Similarity 返回两个菜品的余弦相似度；任一菜品不在矩阵中时返回 0。
func (m *Model) Similarity(itemA, itemB int64) float64 {
	a, ok := m.itemIndex[itemA]
	if !ok {
		return 0
	}
	b, ok := m.itemIndex[itemB]
	if !ok {
		return 0
	}
	return m.sim[a][b]
}

// UserCount 返回用户对某菜品的原始交互计数。
func (m *Model) UserCount(userID, itemID int64) float64 {
	row, ok := m.users[userID]
	if !ok {
		return 0
	}
	col, ok := m.itemIndex[itemID]
	if !ok {
		return 0
	}
	return m.counts[row][col]
}

// sortedIDs 集合转升序切片，保证矩阵布局确定。
func sortedIDs(set map[int64]struct{}) []int64 {
	out := make([]int64, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

package cf

import "sort"

// demoteWeight 对用户已重度消费的菜品做降权：预测分减去 0.5 × 自身计数。
const demoteWeight = 0.5

// Predict 为用户计算逐菜品的预测亲和度分。
//
// 冷启动语义：用户不在交互矩阵中，或交互向量全零时，返回 nil
// （显式的空分数集，不是错误）；上层把 CF 贡献按 0 处理。
//
// 预测分 = 相似度矩阵 × 用户原始计数向量（对用户交互过的菜品的相似度加权和），
// 再减去 demoteWeight × 自身计数以避免反复推荐已重度消费的菜品，
// 最后在 0 处截断（负分归零）。topK > 0 时只保留分数最高的 topK 个菜品。
func (m *Model) Predict(userID int64, topK int) map[int64]float64 {
	row, ok := m.users[userID]
	if !ok {
		return nil
	}
	user := m.counts[row]

	allZero := true
	for _, v := range user {
		if v != 0 {
			allZero = false
			break
		}
	}
	if allZero {
		return nil
	}

	n := len(m.items)
	raw := make([]float64, n)
	for j := 0; j < n; j++ {
		var s float64
		for i := 0; i < n; i++ {
			if user[i] != 0 {
				s += m.sim[j][i] * user[i]
			}
		}
		s -= demoteWeight * user[j]
		if s < 0 {
			s = 0
		}
		raw[j] = s
	}

	if topK > 0 && topK < n {
		// 只保留 topK：按分数降序、同分按 itemID 升序
		idx := make([]int, n)
		for i := range idx {
			idx[i] = i
		}
		sort.Slice(idx, func(a, b int) bool {
			if raw[idx[a]] != raw[idx[b]] {
				return raw[idx[a]] > raw[idx[b]]
			}
			return m.items[idx[a]] < m.items[idx[b]]
		})
		scores := make(map[int64]float64, topK)
		for _, j := range idx[:topK] {
			scores[m.items[j]] = raw[j]
		}
		return scores
	}

	scores := make(map[int64]float64, n)
	for j, id := range m.items {
		scores[id] = raw[j]
	}
	return scores
}

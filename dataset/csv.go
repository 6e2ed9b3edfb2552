// Package dataset 实现数据接入：从 CSV 文件加载 {users, items, orders} 快照。
// 加载发生在打分核心运行之前；核心只消费不可变的 core.Snapshot。
package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"hash/fnv"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rushteam/menukit/core"
)

// 必需列。缺失属于致命前置条件失败（INVALID_INPUT），不做部分恢复。
var (
	requiredUserCols  = []string{"user_id", "diet", "budget_sensitivity"}
	requiredItemCols  = []string{"item_id", "name", "category", "price"}
	requiredOrderCols = []string{"order_id", "user_id", "item_id", "timestamp"}
)

// CSVSource 从三个 CSV 文件加载快照。
// 列表型字段（dietary_tags、favorite_categories 等）在单元格内以逗号分隔。
type CSVSource struct {
	UsersPath  string
	ItemsPath  string
	OrdersPath string
}

var _ core.SnapshotSource = (*CSVSource)(nil)

// Snapshot 实现 core.SnapshotSource。每次调用都重新读文件并解析；
// 线上部署用 CachedSource 包一层。
func (s *CSVSource) Snapshot(ctx context.Context) (*core.Snapshot, error) {
	users, err := s.loadUsers()
	if err != nil {
		return nil, err
	}
	items, err := s.loadItems()
	if err != nil {
		return nil, err
	}
	orders, err := s.loadOrders()
	if err != nil {
		return nil, err
	}

	snap := &core.Snapshot{
		Version: s.version(),
		Users:   users,
		Items:   items,
		Orders:  orders,
	}
	if err := snap.Validate(); err != nil {
		return nil, err
	}
	return snap, nil
}

// version 用三个文件的 size+mtime 哈希出快照版本号，
// 文件未变化时相似度矩阵缓存可以直接复用。
func (s *CSVSource) version() string {
	h := fnv.New64a()
	for _, p := range []string{s.UsersPath, s.ItemsPath, s.OrdersPath} {
		if fi, err := os.Stat(p); err == nil {
			fmt.Fprintf(h, "%s:%d:%d;", p, fi.Size(), fi.ModTime().UnixNano())
		}
	}
	return strconv.FormatUint(h.Sum64(), 16)
}

func (s *CSVSource) loadUsers() (map[int64]*core.UserProfile, error) {
	rows, cols, err := readCSV(s.UsersPath, requiredUserCols)
	if err != nil {
		return nil, err
	}

	users := make(map[int64]*core.UserProfile, len(rows))
	for _, row := range rows {
		id, err := strconv.ParseInt(row[cols["user_id"]], 10, 64)
		if err != nil {
			return nil, core.NewDomainError(core.ModuleSnapshot, core.ErrorCodeInvalidInput,
				fmt.Sprintf("users: bad user_id %q", row[cols["user_id"]]))
		}
		u := core.NewUserProfile(id)
		if diet := row[cols["diet"]]; diet != "" {
			u.Diet = diet
		}
		if b := row[cols["budget_sensitivity"]]; b != "" {
			u.BudgetSensitivity = b
		}
		u.FavoriteCategories = splitSet(cell(row, cols, "favorite_categories"))
		u.Disliked = splitSet(cell(row, cols, "disliked"))
		u.Allergies = splitSet(cell(row, cols, "allergies"))
		u.HealthGoals = splitSet(cell(row, cols, "health_goals"))
		u.SpiceTolerance = cell(row, cols, "spice_tolerance")
		users[id] = u
	}
	return users, nil
}

func (s *CSVSource) loadItems() ([]*core.MenuItem, error) {
	rows, cols, err := readCSV(s.ItemsPath, requiredItemCols)
	if err != nil {
		return nil, err
	}

	items := make([]*core.MenuItem, 0, len(rows))
	for _, row := range rows {
		id, err := strconv.ParseInt(row[cols["item_id"]], 10, 64)
		if err != nil {
			return nil, core.NewDomainError(core.ModuleSnapshot, core.ErrorCodeInvalidInput,
				fmt.Sprintf("items: bad item_id %q", row[cols["item_id"]]))
		}
		price, err := strconv.ParseFloat(row[cols["price"]], 64)
		if err != nil {
			return nil, core.NewDomainError(core.ModuleSnapshot, core.ErrorCodeInvalidInput,
				fmt.Sprintf("items: bad price for item %d", id))
		}

		m := &core.MenuItem{
			ID:             id,
			Name:           row[cols["name"]],
			Category:       row[cols["category"]],
			Subcategory:    cell(row, cols, "subcategory"),
			Price:          price,
			DietaryTags:    splitSet(cell(row, cols, "dietary_tags")),
			TimePreference: cell(row, cols, "time_preference"),
			BudgetCategory: cell(row, cols, "budget_category"),
		}
		m.Normalize()
		items = append(items, m)
	}
	return items, nil
}

func (s *CSVSource) loadOrders() ([]*core.Order, error) {
	rows, cols, err := readCSV(s.OrdersPath, requiredOrderCols)
	if err != nil {
		return nil, err
	}

	orders := make([]*core.Order, 0, len(rows))
	for _, row := range rows {
		orderID, err1 := strconv.ParseInt(row[cols["order_id"]], 10, 64)
		userID, err2 := strconv.ParseInt(row[cols["user_id"]], 10, 64)
		itemID, err3 := strconv.ParseInt(row[cols["item_id"]], 10, 64)
		if err1 != nil || err2 != nil || err3 != nil {
			return nil, core.NewDomainError(core.ModuleSnapshot, core.ErrorCodeInvalidInput,
				"orders: bad order_id/user_id/item_id")
		}
		ts, err := parseTimestamp(row[cols["timestamp"]])
		if err != nil {
			return nil, core.NewDomainError(core.ModuleSnapshot, core.ErrorCodeInvalidInput,
				fmt.Sprintf("orders: bad timestamp for order %d", orderID))
		}
		orders = append(orders, &core.Order{
			OrderID:   orderID,
			UserID:    userID,
			ItemID:    itemID,
			Timestamp: ts,
		})
	}
	return orders, nil
}

// readCSV 读文件、建列索引并校验必需列。
func readCSV(path string, required []string) ([][]string, map[string]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil, core.NewDomainError(core.ModuleSnapshot, core.ErrorCodeInvalidInput,
			fmt.Sprintf("%s: empty file", path))
	}

	cols := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		cols[strings.TrimSpace(name)] = i
	}
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return nil, nil, core.NewDomainError(core.ModuleSnapshot, core.ErrorCodeInvalidInput,
				fmt.Sprintf("%s: required column %q absent", path, name))
		}
	}
	return records[1:], cols, nil
}

// cell 取可选列的值，列缺失时返回空串。
func cell(row []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// splitSet 将逗号分隔的单元格拆成集合，空白项被忽略。
func splitSet(raw string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, part := range strings.Split(raw, ",") {
		if v := strings.TrimSpace(part); v != "" {
			set[v] = struct{}{}
		}
	}
	return set
}

// parseTimestamp 兼容 RFC3339 与 "2006-01-02 15:04:05" 两种常见导出格式。
func parseTimestamp(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if ts, err := time.Parse(time.RFC3339, raw); err == nil {
		return ts, nil
	}
	return time.Parse("2006-01-02 15:04:05", raw)
}

// Package feast 提供 Feast Feature Store 的客户端桥接：
// 当用户画像由特征平台维护时，可以从 Feast 在线存储取 diet / budget 等画像特征，
// 替代 CSV 快照里的用户表。
//
// 参考：https://github.com/feast-dev/feast
package feast

import "context"

// Client 是 Feast Feature Store 的客户端接口。
//
// 使用方式：
//   - GrpcClient：基于官方 SDK 的 gRPC 实现（本包提供）
//   - 自行实现此接口（如 HTTP Feature Server）
type Client interface {
	// GetOnlineFeatures 获取在线特征（用于实时画像）
	//
	// 参数：
	//   - Features: 特征名称列表，例如 ["menu_user_profile:diet"]
	//   - EntityRows: 实体行，例如 [{"user_id": 1001}]
	GetOnlineFeatures(ctx context.Context, req *GetOnlineFeaturesRequest) (*GetOnlineFeaturesResponse, error)

	// Close 关闭客户端连接
	Close() error
}

// GetOnlineFeaturesRequest 获取在线特征请求。
type GetOnlineFeaturesRequest struct {
	// Features 特征名称列表，例如 ["menu_user_profile:diet", "menu_user_profile:budget_sensitivity"]
	Features []string

	// EntityRows 实体行，例如 [{"user_id": 1001}, {"user_id": 1002}]
	EntityRows []map[string]interface{}

	// Project 项目名称，为空时使用客户端默认项目
	Project string
}

// FeatureVector 单个实体的特征向量。
type FeatureVector struct {
	// Values key 为特征名称，value 为特征值
	Values map[string]interface{}

	// EntityRow 对应的实体行
	EntityRow map[string]interface{}
}

// GetOnlineFeaturesResponse 获取在线特征响应。
type GetOnlineFeaturesResponse struct {
	// FeatureVectors 与请求 EntityRows 一一对应
	FeatureVectors []FeatureVector
}

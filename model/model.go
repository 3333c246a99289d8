// Package model 提供进程内模型：打分服务不可用或离线评估时的本地替代。
package model

// Model 是进程内模型的统一抽象：输入定长特征向量，输出单个预测值。
type Model interface {
	// Name 模型名称
	Name() string
	// Predict 对单条向量打分
	Predict(vector []float64) (float64, error)
}

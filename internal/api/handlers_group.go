package api

import "gymmate/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	AccountHandler  *handler.AccountHandler
	ExerciseHandler *handler.ExerciseHandler
	MetricHandler   *handler.MetricHandler
	WorkoutHandler  *handler.WorkoutHandler
}

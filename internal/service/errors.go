package service

import (
	"errors"
	"net/http"
)

var (
	ErrParamInvalid       = errors.New("参数错误")
	ErrUserNotFound       = errors.New("用户不存在")
	ErrAccountInactive    = errors.New("账号未激活")
	ErrPasswordIncorrect  = errors.New("密码错误")
	ErrTokenInvalid       = errors.New("激活或重置令牌无效")
	ErrNotOwner           = errors.New("资源不存在")
	ErrMethodNotAllowed   = errors.New("该操作不被允许")
	ErrMuscleNotFound     = errors.New("肌肉不存在")
	ErrCategoryNotFound   = errors.New("动作分类不存在")
	ErrEquipmentNotFound  = errors.New("器械不存在")
	ErrExerciseNotFound   = errors.New("动作不存在")
	ErrImageNotFound      = errors.New("动作图片不存在")
	ErrGroupNotFound      = errors.New("指标分组不存在")
	ErrMetricTypeNotFound = errors.New("指标类型不存在")
	ErrMetricNotFound     = errors.New("指标不存在")
	ErrDayNotFound        = errors.New("训练日不存在")
	ErrRoutineNotFound    = errors.New("训练计划不存在")
	ErrProgressNotFound   = errors.New("训练记录不存在")
	UnExpectedError       = errors.New("系统异常，请稍后重试")
)

// ErrorMap 业务错误到 HTTP 状态码的映射。
// 属主不匹配一律映射为 404，避免向非属主暴露资源是否存在；
// 动词级拒绝（已登录注册、修改他人档案、写公开计划列表）映射为 405
var ErrorMap = map[error]int{
	ErrParamInvalid:       http.StatusBadRequest,
	ErrUserNotFound:       http.StatusNotFound,
	ErrAccountInactive:    http.StatusUnauthorized,
	ErrPasswordIncorrect:  http.StatusUnauthorized,
	ErrTokenInvalid:       http.StatusBadRequest,
	ErrNotOwner:           http.StatusNotFound,
	ErrMethodNotAllowed:   http.StatusMethodNotAllowed,
	ErrMuscleNotFound:     http.StatusNotFound,
	ErrCategoryNotFound:   http.StatusNotFound,
	ErrEquipmentNotFound:  http.StatusNotFound,
	ErrExerciseNotFound:   http.StatusNotFound,
	ErrImageNotFound:      http.StatusNotFound,
	ErrGroupNotFound:      http.StatusNotFound,
	ErrMetricTypeNotFound: http.StatusNotFound,
	ErrMetricNotFound:     http.StatusNotFound,
	ErrDayNotFound:        http.StatusNotFound,
	ErrRoutineNotFound:    http.StatusNotFound,
	ErrProgressNotFound:   http.StatusNotFound,
	UnExpectedError:       http.StatusInternalServerError,
}

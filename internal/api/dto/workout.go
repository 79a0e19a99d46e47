package dto

// DayOfWeekDTO 星期字典项
type DayOfWeekDTO struct {
	Day string `json:"day" validate:"required,max=9"`
}

// RoutineDTO 创建训练计划
type RoutineDTO struct {
	Name        string   `json:"name" validate:"required,max=100"`
	Description string   `json:"description" validate:"omitempty,max=300"`
	IsPublic    bool     `json:"is_public"`
	ExerciseIDs []uint64 `json:"exercise_ids"`
	DayIDs      []uint64 `json:"day_ids"`
}

// UpdateRoutineDTO 更新训练计划，指针/切片为空表示不修改
type UpdateRoutineDTO struct {
	Name        *string  `json:"name" validate:"omitempty,max=100"`
	Description *string  `json:"description" validate:"omitempty,max=300"`
	IsPublic    *bool    `json:"is_public"`
	ExerciseIDs []uint64 `json:"exercise_ids"`
	DayIDs      []uint64 `json:"day_ids"`
}

// SetDTO 单组训练数据，至少填写一项
type SetDTO struct {
	Duration *int `json:"duration" validate:"omitempty,min=0"`
	Reps     *int `json:"reps" validate:"omitempty,min=0"`
	Weight   *int `json:"weight" validate:"omitempty,min=0"`
}

// ProgressDTO 记录一次训练完成情况
type ProgressDTO struct {
	ExerciseID uint64   `json:"exercise_id" validate:"required"`
	Date       string   `json:"date" validate:"required,datetime=2006-01-02"`
	Sets       []SetDTO `json:"sets" validate:"dive"`
}

// UpdateProgressDTO 更新训练记录，Sets 非空时整体替换
type UpdateProgressDTO struct {
	ExerciseID *uint64  `json:"exercise_id"`
	Date       *string  `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Sets       []SetDTO `json:"sets" validate:"dive"`
}

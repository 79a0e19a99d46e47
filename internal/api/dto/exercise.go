package dto

// MuscleDTO 肌肉字典项
type MuscleDTO struct {
	Name      string `json:"name" validate:"required,max=50"`
	LatinName string `json:"latin_name" validate:"omitempty,max=50"`
	IsFront   bool   `json:"is_front"`
}

// ExerciseCategoryDTO 动作分类
type ExerciseCategoryDTO struct {
	Name string `json:"name" validate:"required,max=100"`
}

// EquipmentDTO 训练器械
type EquipmentDTO struct {
	Name string `json:"name" validate:"required,max=100"`
}

// ExerciseDTO 创建/整体更新动作
type ExerciseDTO struct {
	Name               string   `json:"name" validate:"required,max=200"`
	Description        string   `json:"description" validate:"omitempty,max=2000"`
	CategoryID         *uint64  `json:"category_id"`
	MuscleIDs          []uint64 `json:"muscle_ids"`
	SecondaryMuscleIDs []uint64 `json:"secondary_muscle_ids"`
	EquipmentIDs       []uint64 `json:"equipment_ids"`
	Video              string   `json:"video" validate:"omitempty,url"`
	IsCardio           bool     `json:"is_cardio"`
}

// ExerciseImageDTO 动作配图返回体，Image 为可访问 URL
type ExerciseImageDTO struct {
	ID         uint64 `json:"id"`
	ExerciseID uint64 `json:"exercise_id"`
	Image      string `json:"image"`
	IsMain     bool   `json:"is_main"`
}

// UpdateExerciseImageDTO 仅允许调整主图标记
type UpdateExerciseImageDTO struct {
	IsMain bool `json:"is_main"`
}

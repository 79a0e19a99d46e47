package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"gymmate/internal/api/dto"
	"gymmate/internal/pkg/consts"
	"gymmate/internal/pkg/response"
	"gymmate/internal/pkg/validate"
	"gymmate/internal/repository"
	"gymmate/internal/service"
)

type ExerciseHandler struct {
	exerciseSvc service.ExerciseService
}

func NewExerciseHandler(exerciseSvc service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseSvc: exerciseSvc}
}

func (s *ExerciseHandler) GetMuscle(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	muscle, err := s.exerciseSvc.GetMuscle(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, muscle)
}

func (s *ExerciseHandler) ListMuscles(c *gin.Context) {
	filter := &repository.MuscleFilter{
		Name:      c.Query("name"),
		LatinName: c.Query("latin_name"),
	}
	page := pageParams(c)
	muscles, total, err := s.exerciseSvc.ListMuscles(c.Request.Context(), filter, page.Limit(), page.Offset())
	if err != nil {
		response.Error(c, err)
		return
	}
	pageHeaders(c, page, total)
	response.Success(c, http.StatusOK, muscles)
}

func (s *ExerciseHandler) CreateMuscle(c *gin.Context) {
	var muscleDTO dto.MuscleDTO
	err := c.ShouldBind(&muscleDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = validate.Struct(&muscleDTO); err != nil {
		response.Error(c, err)
		return
	}
	muscle, err := s.exerciseSvc.CreateMuscle(c.Request.Context(), &muscleDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, muscle)
}

func (s *ExerciseHandler) UpdateMuscle(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var muscleDTO dto.MuscleDTO
	err := c.ShouldBind(&muscleDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = validate.Struct(&muscleDTO); err != nil {
		response.Error(c, err)
		return
	}
	muscle, err := s.exerciseSvc.UpdateMuscle(c.Request.Context(), id, &muscleDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, muscle)
}

func (s *ExerciseHandler) DeleteMuscle(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	err := s.exerciseSvc.DeleteMuscle(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func (s *ExerciseHandler) GetCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	category, err := s.exerciseSvc.GetCategory(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, category)
}

func (s *ExerciseHandler) ListCategories(c *gin.Context) {
	page := pageParams(c)
	categories, total, err := s.exerciseSvc.ListCategories(c.Request.Context(), c.Query("name"), page.Limit(), page.Offset())
	if err != nil {
		response.Error(c, err)
		return
	}
	pageHeaders(c, page, total)
	response.Success(c, http.StatusOK, categories)
}

func (s *ExerciseHandler) CreateCategory(c *gin.Context) {
	var categoryDTO dto.ExerciseCategoryDTO
	err := c.ShouldBind(&categoryDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = validate.Struct(&categoryDTO); err != nil {
		response.Error(c, err)
		return
	}
	category, err := s.exerciseSvc.CreateCategory(c.Request.Context(), &categoryDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, category)
}

func (s *ExerciseHandler) UpdateCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var categoryDTO dto.ExerciseCategoryDTO
	err := c.ShouldBind(&categoryDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = validate.Struct(&categoryDTO); err != nil {
		response.Error(c, err)
		return
	}
	category, err := s.exerciseSvc.UpdateCategory(c.Request.Context(), id, &categoryDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, category)
}

func (s *ExerciseHandler) DeleteCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	err := s.exerciseSvc.DeleteCategory(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func (s *ExerciseHandler) GetEquipment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	equipment, err := s.exerciseSvc.GetEquipment(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, equipment)
}

func (s *ExerciseHandler) ListEquipment(c *gin.Context) {
	page := pageParams(c)
	equipment, total, err := s.exerciseSvc.ListEquipment(c.Request.Context(), c.Query("name"), page.Limit(), page.Offset())
	if err != nil {
		response.Error(c, err)
		return
	}
	pageHeaders(c, page, total)
	response.Success(c, http.StatusOK, equipment)
}

func (s *ExerciseHandler) CreateEquipment(c *gin.Context) {
	var equipmentDTO dto.EquipmentDTO
	err := c.ShouldBind(&equipmentDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = validate.Struct(&equipmentDTO); err != nil {
		response.Error(c, err)
		return
	}
	equipment, err := s.exerciseSvc.CreateEquipment(c.Request.Context(), &equipmentDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, equipment)
}

func (s *ExerciseHandler) UpdateEquipment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var equipmentDTO dto.EquipmentDTO
	err := c.ShouldBind(&equipmentDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = validate.Struct(&equipmentDTO); err != nil {
		response.Error(c, err)
		return
	}
	equipment, err := s.exerciseSvc.UpdateEquipment(c.Request.Context(), id, &equipmentDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, equipment)
}

func (s *ExerciseHandler) DeleteEquipment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	err := s.exerciseSvc.DeleteEquipment(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func (s *ExerciseHandler) GetExercise(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	exercise, err := s.exerciseSvc.GetExercise(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, exercise)
}

func (s *ExerciseHandler) ListExercises(c *gin.Context) {
	filter := &repository.ExerciseFilter{
		Name:        c.Query("name"),
		CategoryID:  queryUint64(c, "category"),
		MuscleID:    queryUint64(c, "muscle"),
		EquipmentID: queryUint64(c, "equipment"),
		IsCardio:    queryBool(c, "is_cardio"),
	}
	page := pageParams(c)
	exercises, total, err := s.exerciseSvc.ListExercises(c.Request.Context(), filter, page.Limit(), page.Offset())
	if err != nil {
		response.Error(c, err)
		return
	}
	pageHeaders(c, page, total)
	response.Success(c, http.StatusOK, exercises)
}

func (s *ExerciseHandler) CreateExercise(c *gin.Context) {
	var exerciseDTO dto.ExerciseDTO
	err := c.ShouldBind(&exerciseDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = validate.Struct(&exerciseDTO); err != nil {
		response.Error(c, err)
		return
	}
	exercise, err := s.exerciseSvc.CreateExercise(c.Request.Context(), &exerciseDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, exercise)
}

func (s *ExerciseHandler) UpdateExercise(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var exerciseDTO dto.ExerciseDTO
	err := c.ShouldBind(&exerciseDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = validate.Struct(&exerciseDTO); err != nil {
		response.Error(c, err)
		return
	}
	exercise, err := s.exerciseSvc.UpdateExercise(c.Request.Context(), id, &exerciseDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, exercise)
}

func (s *ExerciseHandler) DeleteExercise(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	err := s.exerciseSvc.DeleteExercise(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func (s *ExerciseHandler) GetImage(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	image, err := s.exerciseSvc.GetImage(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, image)
}

func (s *ExerciseHandler) ListImages(c *gin.Context) {
	page := pageParams(c)
	images, total, err := s.exerciseSvc.ListImages(c.Request.Context(), queryUint64(c, "exercise"), page.Limit(), page.Offset())
	if err != nil {
		response.Error(c, err)
		return
	}
	pageHeaders(c, page, total)
	response.Success(c, http.StatusOK, images)
}

// UploadImage 上传动作配图，multipart 携带 image 文件与 is_main 标记
func (s *ExerciseHandler) UploadImage(c *gin.Context) {
	exerciseID, err := strconv.ParseUint(c.PostForm("exercise_id"), 10, 64)
	if err != nil || exerciseID == 0 {
		fieldErrs := validate.FieldErrors{}
		fieldErrs.Add("exercise_id", "This field is required.")
		response.Error(c, fieldErrs)
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		fieldErrs := validate.FieldErrors{}
		fieldErrs.Add("image", "This field is required.")
		response.Error(c, fieldErrs)
		return
	}
	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, consts.MimePrefixImage) {
		fieldErrs := validate.FieldErrors{}
		fieldErrs.Add("image", "Upload a valid image.")
		response.Error(c, fieldErrs)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close()

	isMain := c.PostForm("is_main") == "true"
	image, err := s.exerciseSvc.UploadImage(c.Request.Context(), exerciseID, isMain, fileHeader.Filename, file, fileHeader.Size, contentType)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, image)
}

func (s *ExerciseHandler) UpdateImage(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var imageDTO dto.UpdateExerciseImageDTO
	err := c.ShouldBind(&imageDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	image, err := s.exerciseSvc.UpdateImage(c.Request.Context(), id, &imageDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, image)
}

func (s *ExerciseHandler) DeleteImage(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	err := s.exerciseSvc.DeleteImage(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gymmate/internal/api/dto"
	"gymmate/internal/pkg/response"
	"gymmate/internal/pkg/validate"
	"gymmate/internal/repository"
	"gymmate/internal/service"
)

type WorkoutHandler struct {
	workoutSvc service.WorkoutService
}

func NewWorkoutHandler(workoutSvc service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workoutSvc: workoutSvc}
}

func (s *WorkoutHandler) GetDay(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	day, err := s.workoutSvc.GetDay(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, day)
}

func (s *WorkoutHandler) ListDays(c *gin.Context) {
	page := pageParams(c)
	days, total, err := s.workoutSvc.ListDays(c.Request.Context(), c.Query("day"), page.Limit(), page.Offset())
	if err != nil {
		response.Error(c, err)
		return
	}
	pageHeaders(c, page, total)
	response.Success(c, http.StatusOK, days)
}

func (s *WorkoutHandler) CreateDay(c *gin.Context) {
	var dayDTO dto.DayOfWeekDTO
	err := c.ShouldBind(&dayDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = validate.Struct(&dayDTO); err != nil {
		response.Error(c, err)
		return
	}
	day, err := s.workoutSvc.CreateDay(c.Request.Context(), &dayDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, day)
}

func (s *WorkoutHandler) UpdateDay(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var dayDTO dto.DayOfWeekDTO
	err := c.ShouldBind(&dayDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = validate.Struct(&dayDTO); err != nil {
		response.Error(c, err)
		return
	}
	day, err := s.workoutSvc.UpdateDay(c.Request.Context(), id, &dayDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, day)
}

func (s *WorkoutHandler) DeleteDay(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	err := s.workoutSvc.DeleteDay(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func (s *WorkoutHandler) GetRoutine(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	routine, err := s.workoutSvc.GetRoutine(c.Request.Context(), c.GetUint64("user_id"), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, routine)
}

// ListRoutines 只返回当前用户自己的训练计划
func (s *WorkoutHandler) ListRoutines(c *gin.Context) {
	filter := &repository.RoutineFilter{
		Name:       c.Query("name"),
		IsPublic:   queryBool(c, "is_public"),
		DayID:      queryUint64(c, "day"),
		ExerciseID: queryUint64(c, "exercise"),
	}
	page := pageParams(c)
	routines, total, err := s.workoutSvc.ListRoutines(c.Request.Context(), c.GetUint64("user_id"), filter, page.Limit(), page.Offset())
	if err != nil {
		response.Error(c, err)
		return
	}
	pageHeaders(c, page, total)
	response.Success(c, http.StatusOK, routines)
}

// ListPublicRoutines 公开计划橱窗，仅读
func (s *WorkoutHandler) ListPublicRoutines(c *gin.Context) {
	filter := &repository.RoutineFilter{
		Name:       c.Query("name"),
		DayID:      queryUint64(c, "day"),
		ExerciseID: queryUint64(c, "exercise"),
	}
	page := pageParams(c)
	routines, total, err := s.workoutSvc.ListPublicRoutines(c.Request.Context(), filter, page.Limit(), page.Offset())
	if err != nil {
		response.Error(c, err)
		return
	}
	pageHeaders(c, page, total)
	response.Success(c, http.StatusOK, routines)
}

func (s *WorkoutHandler) CreateRoutine(c *gin.Context) {
	var routineDTO dto.RoutineDTO
	err := c.ShouldBind(&routineDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = validate.Struct(&routineDTO); err != nil {
		response.Error(c, err)
		return
	}
	routine, err := s.workoutSvc.CreateRoutine(c.Request.Context(), c.GetUint64("user_id"), &routineDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, routine)
}

func (s *WorkoutHandler) UpdateRoutine(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var routineDTO dto.UpdateRoutineDTO
	err := c.ShouldBind(&routineDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = validate.Struct(&routineDTO); err != nil {
		response.Error(c, err)
		return
	}
	routine, err := s.workoutSvc.UpdateRoutine(c.Request.Context(), c.GetUint64("user_id"), id, &routineDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, routine)
}

func (s *WorkoutHandler) DeleteRoutine(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	err := s.workoutSvc.DeleteRoutine(c.Request.Context(), c.GetUint64("user_id"), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func (s *WorkoutHandler) GetProgress(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	progress, err := s.workoutSvc.GetProgress(c.Request.Context(), c.GetUint64("user_id"), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, progress)
}

// ListProgress 只返回当前用户自己的训练记录
func (s *WorkoutHandler) ListProgress(c *gin.Context) {
	filter := &repository.ProgressFilter{
		ExerciseID: queryUint64(c, "exercise"),
		MinDate:    queryDate(c, "min_date"),
		MaxDate:    queryDate(c, "max_date"),
	}
	page := pageParams(c)
	progress, total, err := s.workoutSvc.ListProgress(c.Request.Context(), c.GetUint64("user_id"), filter, page.Limit(), page.Offset())
	if err != nil {
		response.Error(c, err)
		return
	}
	pageHeaders(c, page, total)
	response.Success(c, http.StatusOK, progress)
}

func (s *WorkoutHandler) CreateProgress(c *gin.Context) {
	var progressDTO dto.ProgressDTO
	err := c.ShouldBind(&progressDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = validate.Struct(&progressDTO); err != nil {
		response.Error(c, err)
		return
	}
	progress, err := s.workoutSvc.CreateProgress(c.Request.Context(), c.GetUint64("user_id"), &progressDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, progress)
}

func (s *WorkoutHandler) UpdateProgress(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var progressDTO dto.UpdateProgressDTO
	err := c.ShouldBind(&progressDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = validate.Struct(&progressDTO); err != nil {
		response.Error(c, err)
		return
	}
	progress, err := s.workoutSvc.UpdateProgress(c.Request.Context(), c.GetUint64("user_id"), id, &progressDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, progress)
}

func (s *WorkoutHandler) DeleteProgress(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	err := s.workoutSvc.DeleteProgress(c.Request.Context(), c.GetUint64("user_id"), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

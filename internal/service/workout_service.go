package service

import (
	"context"
	"time"

	"gymmate/internal/api/dto"
	"gymmate/internal/model"
	"gymmate/internal/pkg/validate"
	"gymmate/internal/repository"
)

type WorkoutService interface {
	GetDay(ctx context.Context, id uint64) (*model.DayOfWeek, error)
	ListDays(ctx context.Context, dayLike string, limit, offset int) ([]*model.DayOfWeek, int64, error)
	CreateDay(ctx context.Context, dayDTO *dto.DayOfWeekDTO) (*model.DayOfWeek, error)
	UpdateDay(ctx context.Context, id uint64, dayDTO *dto.DayOfWeekDTO) (*model.DayOfWeek, error)
	DeleteDay(ctx context.Context, id uint64) error

	GetRoutine(ctx context.Context, userID, id uint64) (*model.Routine, error)
	ListRoutines(ctx context.Context, userID uint64, filter *repository.RoutineFilter, limit, offset int) ([]*model.Routine, int64, error)
	ListPublicRoutines(ctx context.Context, filter *repository.RoutineFilter, limit, offset int) ([]*model.Routine, int64, error)
	CreateRoutine(ctx context.Context, userID uint64, routineDTO *dto.RoutineDTO) (*model.Routine, error)
	UpdateRoutine(ctx context.Context, userID, id uint64, routineDTO *dto.UpdateRoutineDTO) (*model.Routine, error)
	DeleteRoutine(ctx context.Context, userID, id uint64) error

	GetProgress(ctx context.Context, userID, id uint64) (*model.Progress, error)
	ListProgress(ctx context.Context, userID uint64, filter *repository.ProgressFilter, limit, offset int) ([]*model.Progress, int64, error)
	CreateProgress(ctx context.Context, userID uint64, progressDTO *dto.ProgressDTO) (*model.Progress, error)
	UpdateProgress(ctx context.Context, userID, id uint64, progressDTO *dto.UpdateProgressDTO) (*model.Progress, error)
	DeleteProgress(ctx context.Context, userID, id uint64) error
}

type WorkoutServiceImpl struct {
	dayRepo      repository.DayOfWeekRepo
	routineRepo  repository.RoutineRepo
	progressRepo repository.ProgressRepo
	exerciseRepo repository.ExerciseRepo
	now          func() time.Time
}

func NewWorkoutService(dayRepo repository.DayOfWeekRepo, routineRepo repository.RoutineRepo, progressRepo repository.ProgressRepo, exerciseRepo repository.ExerciseRepo) WorkoutService {
	return &WorkoutServiceImpl{
		dayRepo:      dayRepo,
		routineRepo:  routineRepo,
		progressRepo: progressRepo,
		exerciseRepo: exerciseRepo,
		now:          time.Now,
	}
}

func (s *WorkoutServiceImpl) GetDay(ctx context.Context, id uint64) (*model.DayOfWeek, error) {
	day, err := s.dayRepo.GetDayById(ctx, id)
	if err != nil {
		return nil, err
	}
	if day == nil {
		return nil, ErrDayNotFound
	}
	return day, nil
}

func (s *WorkoutServiceImpl) ListDays(ctx context.Context, dayLike string, limit, offset int) ([]*model.DayOfWeek, int64, error) {
	return s.dayRepo.ListDays(ctx, dayLike, limit, offset)
}

func (s *WorkoutServiceImpl) CreateDay(ctx context.Context, dayDTO *dto.DayOfWeekDTO) (*model.DayOfWeek, error) {
	day := &model.DayOfWeek{Day: dayDTO.Day}
	err := s.dayRepo.CreateDay(ctx, day)
	if err != nil {
		return nil, err
	}
	return day, nil
}

func (s *WorkoutServiceImpl) UpdateDay(ctx context.Context, id uint64, dayDTO *dto.DayOfWeekDTO) (*model.DayOfWeek, error) {
	day, err := s.dayRepo.GetDayById(ctx, id)
	if err != nil {
		return nil, err
	}
	if day == nil {
		return nil, ErrDayNotFound
	}
	day.Day = dayDTO.Day
	err = s.dayRepo.UpdateDay(ctx, day)
	if err != nil {
		return nil, err
	}
	return day, nil
}

func (s *WorkoutServiceImpl) DeleteDay(ctx context.Context, id uint64) error {
	rows, err := s.dayRepo.DeleteDay(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrDayNotFound
	}
	return nil
}

// GetRoutine 本人或公开的计划可读，其余按不存在处理
func (s *WorkoutServiceImpl) GetRoutine(ctx context.Context, userID, id uint64) (*model.Routine, error) {
	routine, err := s.routineRepo.GetRoutineById(ctx, id)
	if err != nil {
		return nil, err
	}
	if routine == nil {
		return nil, ErrRoutineNotFound
	}
	if routine.UserID != userID && !routine.IsPublic {
		return nil, ErrRoutineNotFound
	}
	return routine, nil
}

func (s *WorkoutServiceImpl) ListRoutines(ctx context.Context, userID uint64, filter *repository.RoutineFilter, limit, offset int) ([]*model.Routine, int64, error) {
	filter.OwnerID = &userID
	return s.routineRepo.ListRoutines(ctx, filter, limit, offset)
}

func (s *WorkoutServiceImpl) ListPublicRoutines(ctx context.Context, filter *repository.RoutineFilter, limit, offset int) ([]*model.Routine, int64, error) {
	filter.OnlyPublic = true
	return s.routineRepo.ListRoutines(ctx, filter, limit, offset)
}

func (s *WorkoutServiceImpl) CreateRoutine(ctx context.Context, userID uint64, routineDTO *dto.RoutineDTO) (*model.Routine, error) {
	routine := &model.Routine{
		UserID:      userID,
		Name:        routineDTO.Name,
		Description: routineDTO.Description,
		IsPublic:    routineDTO.IsPublic,
	}
	exercises, err := s.resolveExercises(ctx, routineDTO.ExerciseIDs)
	if err != nil {
		return nil, err
	}
	routine.Exercises = exercises

	days, err := s.resolveDays(ctx, routineDTO.DayIDs)
	if err != nil {
		return nil, err
	}
	routine.Days = days

	err = s.routineRepo.CreateRoutine(ctx, routine)
	if err != nil {
		return nil, err
	}
	return s.routineRepo.GetRoutineById(ctx, routine.ID)
}

// UpdateRoutine 仅限本人修改，nil 字段保持不变，提供的 ID 集合整体替换
func (s *WorkoutServiceImpl) UpdateRoutine(ctx context.Context, userID, id uint64, routineDTO *dto.UpdateRoutineDTO) (*model.Routine, error) {
	routine, err := s.routineRepo.GetRoutineById(ctx, id)
	if err != nil {
		return nil, err
	}
	if routine == nil || routine.UserID != userID {
		return nil, ErrRoutineNotFound
	}

	if routineDTO.Name != nil {
		routine.Name = *routineDTO.Name
	}
	if routineDTO.Description != nil {
		routine.Description = *routineDTO.Description
	}
	if routineDTO.IsPublic != nil {
		routine.IsPublic = *routineDTO.IsPublic
	}
	if routineDTO.ExerciseIDs != nil {
		exercises, err := s.resolveExercises(ctx, routineDTO.ExerciseIDs)
		if err != nil {
			return nil, err
		}
		routine.Exercises = exercises
	}
	if routineDTO.DayIDs != nil {
		days, err := s.resolveDays(ctx, routineDTO.DayIDs)
		if err != nil {
			return nil, err
		}
		routine.Days = days
	}

	err = s.routineRepo.UpdateRoutine(ctx, routine)
	if err != nil {
		return nil, err
	}
	return s.routineRepo.GetRoutineById(ctx, id)
}

func (s *WorkoutServiceImpl) DeleteRoutine(ctx context.Context, userID, id uint64) error {
	routine, err := s.routineRepo.GetRoutineById(ctx, id)
	if err != nil {
		return err
	}
	if routine == nil || routine.UserID != userID {
		return ErrRoutineNotFound
	}
	return s.routineRepo.DeleteRoutine(ctx, id)
}

func (s *WorkoutServiceImpl) GetProgress(ctx context.Context, userID, id uint64) (*model.Progress, error) {
	progress, err := s.progressRepo.GetProgressById(ctx, id)
	if err != nil {
		return nil, err
	}
	if progress == nil || progress.UserID != userID {
		return nil, ErrProgressNotFound
	}
	return progress, nil
}

func (s *WorkoutServiceImpl) ListProgress(ctx context.Context, userID uint64, filter *repository.ProgressFilter, limit, offset int) ([]*model.Progress, int64, error) {
	return s.progressRepo.ListProgress(ctx, userID, filter, limit, offset)
}

func (s *WorkoutServiceImpl) CreateProgress(ctx context.Context, userID uint64, progressDTO *dto.ProgressDTO) (*model.Progress, error) {
	date, err := s.parseProgressDate(progressDTO.Date)
	if err != nil {
		return nil, err
	}
	exercise, err := s.exerciseRepo.GetExerciseById(ctx, progressDTO.ExerciseID)
	if err != nil {
		return nil, err
	}
	if exercise == nil {
		return nil, ErrExerciseNotFound
	}

	progress := &model.Progress{
		UserID:     userID,
		ExerciseID: progressDTO.ExerciseID,
		Date:       date,
		Sets:       buildSets(progressDTO.Sets),
	}
	err = s.progressRepo.CreateProgress(ctx, progress)
	if err != nil {
		return nil, err
	}
	return s.progressRepo.GetProgressById(ctx, progress.ID)
}

// UpdateProgress 仅限本人修改，Sets 非空时旧组数整体替换
func (s *WorkoutServiceImpl) UpdateProgress(ctx context.Context, userID, id uint64, progressDTO *dto.UpdateProgressDTO) (*model.Progress, error) {
	progress, err := s.progressRepo.GetProgressById(ctx, id)
	if err != nil {
		return nil, err
	}
	if progress == nil || progress.UserID != userID {
		return nil, ErrProgressNotFound
	}

	if progressDTO.Date != nil {
		date, err := s.parseProgressDate(*progressDTO.Date)
		if err != nil {
			return nil, err
		}
		progress.Date = date
	}
	if progressDTO.ExerciseID != nil {
		exercise, err := s.exerciseRepo.GetExerciseById(ctx, *progressDTO.ExerciseID)
		if err != nil {
			return nil, err
		}
		if exercise == nil {
			return nil, ErrExerciseNotFound
		}
		progress.ExerciseID = *progressDTO.ExerciseID
	}
	if progressDTO.Sets != nil {
		progress.Sets = buildSets(progressDTO.Sets)
	}

	err = s.progressRepo.UpdateProgress(ctx, progress)
	if err != nil {
		return nil, err
	}
	return s.progressRepo.GetProgressById(ctx, id)
}

func (s *WorkoutServiceImpl) DeleteProgress(ctx context.Context, userID, id uint64) error {
	progress, err := s.progressRepo.GetProgressById(ctx, id)
	if err != nil {
		return err
	}
	if progress == nil || progress.UserID != userID {
		return ErrProgressNotFound
	}
	return s.progressRepo.DeleteProgress(ctx, id)
}

// parseProgressDate 训练日期不允许填未来
func (s *WorkoutServiceImpl) parseProgressDate(value string) (time.Time, error) {
	date, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, ErrParamInvalid
	}
	today := s.now().Truncate(time.Hour * 24)
	if date.After(today) {
		fieldErrs := validate.FieldErrors{}
		fieldErrs.Add("date", "Future dates are not allowed")
		return time.Time{}, fieldErrs
	}
	return date, nil
}

func (s *WorkoutServiceImpl) resolveExercises(ctx context.Context, ids []uint64) ([]model.Exercise, error) {
	var exercises []model.Exercise
	for _, id := range ids {
		exercise, err := s.exerciseRepo.GetExerciseById(ctx, id)
		if err != nil {
			return nil, err
		}
		if exercise == nil {
			return nil, ErrExerciseNotFound
		}
		exercises = append(exercises, *exercise)
	}
	return exercises, nil
}

func (s *WorkoutServiceImpl) resolveDays(ctx context.Context, ids []uint64) ([]model.DayOfWeek, error) {
	var days []model.DayOfWeek
	for _, id := range ids {
		day, err := s.dayRepo.GetDayById(ctx, id)
		if err != nil {
			return nil, err
		}
		if day == nil {
			return nil, ErrDayNotFound
		}
		days = append(days, *day)
	}
	return days, nil
}

func buildSets(setDTOs []dto.SetDTO) []model.Set {
	sets := make([]model.Set, 0, len(setDTOs))
	for _, setDTO := range setDTOs {
		sets = append(sets, model.Set{
			Duration: setDTO.Duration,
			Reps:     setDTO.Reps,
			Weight:   setDTO.Weight,
		})
	}
	return sets
}

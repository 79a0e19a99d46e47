package service

import (
	"context"
	"io"
	"log/slog"
	"path"

	"github.com/google/uuid"

	"gymmate/internal/api/dto"
	"gymmate/internal/model"
	"gymmate/internal/pkg/storage"
	"gymmate/internal/repository"
)

type ExerciseService interface {
	GetMuscle(ctx context.Context, id uint64) (*model.Muscle, error)
	ListMuscles(ctx context.Context, filter *repository.MuscleFilter, limit, offset int) ([]*model.Muscle, int64, error)
	CreateMuscle(ctx context.Context, muscleDTO *dto.MuscleDTO) (*model.Muscle, error)
	UpdateMuscle(ctx context.Context, id uint64, muscleDTO *dto.MuscleDTO) (*model.Muscle, error)
	DeleteMuscle(ctx context.Context, id uint64) error

	GetCategory(ctx context.Context, id uint64) (*model.ExerciseCategory, error)
	ListCategories(ctx context.Context, nameLike string, limit, offset int) ([]*model.ExerciseCategory, int64, error)
	CreateCategory(ctx context.Context, categoryDTO *dto.ExerciseCategoryDTO) (*model.ExerciseCategory, error)
	UpdateCategory(ctx context.Context, id uint64, categoryDTO *dto.ExerciseCategoryDTO) (*model.ExerciseCategory, error)
	DeleteCategory(ctx context.Context, id uint64) error

	GetEquipment(ctx context.Context, id uint64) (*model.Equipment, error)
	ListEquipment(ctx context.Context, nameLike string, limit, offset int) ([]*model.Equipment, int64, error)
	CreateEquipment(ctx context.Context, equipmentDTO *dto.EquipmentDTO) (*model.Equipment, error)
	UpdateEquipment(ctx context.Context, id uint64, equipmentDTO *dto.EquipmentDTO) (*model.Equipment, error)
	DeleteEquipment(ctx context.Context, id uint64) error

	GetExercise(ctx context.Context, id uint64) (*model.Exercise, error)
	ListExercises(ctx context.Context, filter *repository.ExerciseFilter, limit, offset int) ([]*model.Exercise, int64, error)
	CreateExercise(ctx context.Context, exerciseDTO *dto.ExerciseDTO) (*model.Exercise, error)
	UpdateExercise(ctx context.Context, id uint64, exerciseDTO *dto.ExerciseDTO) (*model.Exercise, error)
	DeleteExercise(ctx context.Context, id uint64) error

	GetImage(ctx context.Context, id uint64) (*dto.ExerciseImageDTO, error)
	ListImages(ctx context.Context, exerciseID *uint64, limit, offset int) ([]*dto.ExerciseImageDTO, int64, error)
	UploadImage(ctx context.Context, exerciseID uint64, isMain bool, filename string, reader io.Reader, size int64, contentType string) (*dto.ExerciseImageDTO, error)
	UpdateImage(ctx context.Context, id uint64, imageDTO *dto.UpdateExerciseImageDTO) (*dto.ExerciseImageDTO, error)
	DeleteImage(ctx context.Context, id uint64) error
}

type ExerciseServiceImpl struct {
	muscleRepo    repository.MuscleRepo
	categoryRepo  repository.ExerciseCategoryRepo
	equipmentRepo repository.EquipmentRepo
	exerciseRepo  repository.ExerciseRepo
	imageRepo     repository.ExerciseImageRepo
	store         storage.ObjectStore
}

func NewExerciseService(
	muscleRepo repository.MuscleRepo,
	categoryRepo repository.ExerciseCategoryRepo,
	equipmentRepo repository.EquipmentRepo,
	exerciseRepo repository.ExerciseRepo,
	imageRepo repository.ExerciseImageRepo,
	store storage.ObjectStore,
) ExerciseService {
	return &ExerciseServiceImpl{
		muscleRepo:    muscleRepo,
		categoryRepo:  categoryRepo,
		equipmentRepo: equipmentRepo,
		exerciseRepo:  exerciseRepo,
		imageRepo:     imageRepo,
		store:         store,
	}
}

func (s *ExerciseServiceImpl) GetMuscle(ctx context.Context, id uint64) (*model.Muscle, error) {
	muscle, err := s.muscleRepo.GetMuscleById(ctx, id)
	if err != nil {
		return nil, err
	}
	if muscle == nil {
		return nil, ErrMuscleNotFound
	}
	return muscle, nil
}

func (s *ExerciseServiceImpl) ListMuscles(ctx context.Context, filter *repository.MuscleFilter, limit, offset int) ([]*model.Muscle, int64, error) {
	return s.muscleRepo.ListMuscles(ctx, filter, limit, offset)
}

func (s *ExerciseServiceImpl) CreateMuscle(ctx context.Context, muscleDTO *dto.MuscleDTO) (*model.Muscle, error) {
	muscle := &model.Muscle{
		Name:      muscleDTO.Name,
		LatinName: muscleDTO.LatinName,
		IsFront:   muscleDTO.IsFront,
	}
	err := s.muscleRepo.CreateMuscle(ctx, muscle)
	if err != nil {
		return nil, err
	}
	return muscle, nil
}

func (s *ExerciseServiceImpl) UpdateMuscle(ctx context.Context, id uint64, muscleDTO *dto.MuscleDTO) (*model.Muscle, error) {
	muscle, err := s.muscleRepo.GetMuscleById(ctx, id)
	if err != nil {
		return nil, err
	}
	if muscle == nil {
		return nil, ErrMuscleNotFound
	}
	muscle.Name = muscleDTO.Name
	muscle.LatinName = muscleDTO.LatinName
	muscle.IsFront = muscleDTO.IsFront
	err = s.muscleRepo.UpdateMuscle(ctx, muscle)
	if err != nil {
		return nil, err
	}
	return muscle, nil
}

func (s *ExerciseServiceImpl) DeleteMuscle(ctx context.Context, id uint64) error {
	rows, err := s.muscleRepo.DeleteMuscle(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrMuscleNotFound
	}
	return nil
}

func (s *ExerciseServiceImpl) GetCategory(ctx context.Context, id uint64) (*model.ExerciseCategory, error) {
	category, err := s.categoryRepo.GetCategoryById(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	return category, nil
}

func (s *ExerciseServiceImpl) ListCategories(ctx context.Context, nameLike string, limit, offset int) ([]*model.ExerciseCategory, int64, error) {
	return s.categoryRepo.ListCategories(ctx, nameLike, limit, offset)
}

func (s *ExerciseServiceImpl) CreateCategory(ctx context.Context, categoryDTO *dto.ExerciseCategoryDTO) (*model.ExerciseCategory, error) {
	category := &model.ExerciseCategory{Name: categoryDTO.Name}
	err := s.categoryRepo.CreateCategory(ctx, category)
	if err != nil {
		return nil, err
	}
	return category, nil
}

func (s *ExerciseServiceImpl) UpdateCategory(ctx context.Context, id uint64, categoryDTO *dto.ExerciseCategoryDTO) (*model.ExerciseCategory, error) {
	category, err := s.categoryRepo.GetCategoryById(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	category.Name = categoryDTO.Name
	err = s.categoryRepo.UpdateCategory(ctx, category)
	if err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory 删除分类，引用该分类的动作退回未分类
func (s *ExerciseServiceImpl) DeleteCategory(ctx context.Context, id uint64) error {
	rows, err := s.categoryRepo.DeleteCategory(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func (s *ExerciseServiceImpl) GetEquipment(ctx context.Context, id uint64) (*model.Equipment, error) {
	equipment, err := s.equipmentRepo.GetEquipmentById(ctx, id)
	if err != nil {
		return nil, err
	}
	if equipment == nil {
		return nil, ErrEquipmentNotFound
	}
	return equipment, nil
}

func (s *ExerciseServiceImpl) ListEquipment(ctx context.Context, nameLike string, limit, offset int) ([]*model.Equipment, int64, error) {
	return s.equipmentRepo.ListEquipment(ctx, nameLike, limit, offset)
}

func (s *ExerciseServiceImpl) CreateEquipment(ctx context.Context, equipmentDTO *dto.EquipmentDTO) (*model.Equipment, error) {
	equipment := &model.Equipment{Name: equipmentDTO.Name}
	err := s.equipmentRepo.CreateEquipment(ctx, equipment)
	if err != nil {
		return nil, err
	}
	return equipment, nil
}

func (s *ExerciseServiceImpl) UpdateEquipment(ctx context.Context, id uint64, equipmentDTO *dto.EquipmentDTO) (*model.Equipment, error) {
	equipment, err := s.equipmentRepo.GetEquipmentById(ctx, id)
	if err != nil {
		return nil, err
	}
	if equipment == nil {
		return nil, ErrEquipmentNotFound
	}
	equipment.Name = equipmentDTO.Name
	err = s.equipmentRepo.UpdateEquipment(ctx, equipment)
	if err != nil {
		return nil, err
	}
	return equipment, nil
}

func (s *ExerciseServiceImpl) DeleteEquipment(ctx context.Context, id uint64) error {
	rows, err := s.equipmentRepo.DeleteEquipment(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrEquipmentNotFound
	}
	return nil
}

func (s *ExerciseServiceImpl) GetExercise(ctx context.Context, id uint64) (*model.Exercise, error) {
	exercise, err := s.exerciseRepo.GetExerciseById(ctx, id)
	if err != nil {
		return nil, err
	}
	if exercise == nil {
		return nil, ErrExerciseNotFound
	}
	s.fillImageURLs(exercise)
	return exercise, nil
}

func (s *ExerciseServiceImpl) ListExercises(ctx context.Context, filter *repository.ExerciseFilter, limit, offset int) ([]*model.Exercise, int64, error) {
	exercises, total, err := s.exerciseRepo.ListExercises(ctx, filter, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	for _, exercise := range exercises {
		s.fillImageURLs(exercise)
	}
	return exercises, total, nil
}

func (s *ExerciseServiceImpl) CreateExercise(ctx context.Context, exerciseDTO *dto.ExerciseDTO) (*model.Exercise, error) {
	exercise, err := s.buildExercise(ctx, exerciseDTO)
	if err != nil {
		return nil, err
	}
	err = s.exerciseRepo.CreateExercise(ctx, exercise)
	if err != nil {
		return nil, err
	}
	return s.GetExercise(ctx, exercise.ID)
}

func (s *ExerciseServiceImpl) UpdateExercise(ctx context.Context, id uint64, exerciseDTO *dto.ExerciseDTO) (*model.Exercise, error) {
	existing, err := s.exerciseRepo.GetExerciseById(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrExerciseNotFound
	}
	exercise, err := s.buildExercise(ctx, exerciseDTO)
	if err != nil {
		return nil, err
	}
	exercise.ID = id
	err = s.exerciseRepo.UpdateExercise(ctx, exercise)
	if err != nil {
		return nil, err
	}
	return s.GetExercise(ctx, id)
}

// DeleteExercise 删除动作及其配图行，行删除成功后再清理图片对象
func (s *ExerciseServiceImpl) DeleteExercise(ctx context.Context, id uint64) error {
	existing, err := s.exerciseRepo.GetExerciseById(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrExerciseNotFound
	}
	objects, err := s.exerciseRepo.DeleteExercise(ctx, id)
	if err != nil {
		return err
	}
	for _, object := range objects {
		err = s.store.Remove(ctx, object)
		if err != nil {
			slog.WarnContext(ctx, "remove exercise image object failed", "object", object, "error", err)
		}
	}
	return nil
}

func (s *ExerciseServiceImpl) GetImage(ctx context.Context, id uint64) (*dto.ExerciseImageDTO, error) {
	image, err := s.imageRepo.GetImageById(ctx, id)
	if err != nil {
		return nil, err
	}
	if image == nil {
		return nil, ErrImageNotFound
	}
	return s.toImageDTO(image), nil
}

func (s *ExerciseServiceImpl) ListImages(ctx context.Context, exerciseID *uint64, limit, offset int) ([]*dto.ExerciseImageDTO, int64, error) {
	images, total, err := s.imageRepo.ListImages(ctx, exerciseID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	dtos := make([]*dto.ExerciseImageDTO, 0, len(images))
	for _, image := range images {
		dtos = append(dtos, s.toImageDTO(image))
	}
	return dtos, total, nil
}

func (s *ExerciseServiceImpl) UploadImage(ctx context.Context, exerciseID uint64, isMain bool, filename string, reader io.Reader, size int64, contentType string) (*dto.ExerciseImageDTO, error) {
	exercise, err := s.exerciseRepo.GetExerciseById(ctx, exerciseID)
	if err != nil {
		return nil, err
	}
	if exercise == nil {
		return nil, ErrExerciseNotFound
	}

	objectName := "exercises/" + uuid.NewString() + path.Ext(filename)
	_, err = s.store.Upload(ctx, objectName, reader, size, contentType)
	if err != nil {
		return nil, err
	}

	image := &model.ExerciseImage{
		ExerciseID: exerciseID,
		Image:      objectName,
		IsMain:     isMain,
	}
	err = s.imageRepo.CreateImage(ctx, image)
	if err != nil {
		return nil, err
	}
	return s.toImageDTO(image), nil
}

func (s *ExerciseServiceImpl) UpdateImage(ctx context.Context, id uint64, imageDTO *dto.UpdateExerciseImageDTO) (*dto.ExerciseImageDTO, error) {
	image, err := s.imageRepo.GetImageById(ctx, id)
	if err != nil {
		return nil, err
	}
	if image == nil {
		return nil, ErrImageNotFound
	}
	image.IsMain = imageDTO.IsMain
	err = s.imageRepo.UpdateImage(ctx, image)
	if err != nil {
		return nil, err
	}
	image, err = s.imageRepo.GetImageById(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toImageDTO(image), nil
}

func (s *ExerciseServiceImpl) DeleteImage(ctx context.Context, id uint64) error {
	deleted, err := s.imageRepo.DeleteImage(ctx, id)
	if err != nil {
		return err
	}
	if deleted == nil {
		return ErrImageNotFound
	}
	err = s.store.Remove(ctx, deleted.Image)
	if err != nil {
		slog.WarnContext(ctx, "remove exercise image object failed", "object", deleted.Image, "error", err)
	}
	return nil
}

// buildExercise 校验关联 ID 并组装模型，整体更新时关联集合整体替换
func (s *ExerciseServiceImpl) buildExercise(ctx context.Context, exerciseDTO *dto.ExerciseDTO) (*model.Exercise, error) {
	exercise := &model.Exercise{
		Name:        exerciseDTO.Name,
		Description: exerciseDTO.Description,
		Video:       exerciseDTO.Video,
		IsCardio:    exerciseDTO.IsCardio,
	}

	if exerciseDTO.CategoryID != nil {
		category, err := s.categoryRepo.GetCategoryById(ctx, *exerciseDTO.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, ErrCategoryNotFound
		}
		exercise.CategoryID = exerciseDTO.CategoryID
	}

	muscles, err := s.resolveMuscles(ctx, exerciseDTO.MuscleIDs)
	if err != nil {
		return nil, err
	}
	exercise.Muscles = muscles

	secondary, err := s.resolveMuscles(ctx, exerciseDTO.SecondaryMuscleIDs)
	if err != nil {
		return nil, err
	}
	exercise.SecondaryMuscles = secondary

	for _, equipmentID := range exerciseDTO.EquipmentIDs {
		equipment, err := s.equipmentRepo.GetEquipmentById(ctx, equipmentID)
		if err != nil {
			return nil, err
		}
		if equipment == nil {
			return nil, ErrEquipmentNotFound
		}
		exercise.Equipment = append(exercise.Equipment, *equipment)
	}

	return exercise, nil
}

func (s *ExerciseServiceImpl) resolveMuscles(ctx context.Context, ids []uint64) ([]model.Muscle, error) {
	var muscles []model.Muscle
	for _, id := range ids {
		muscle, err := s.muscleRepo.GetMuscleById(ctx, id)
		if err != nil {
			return nil, err
		}
		if muscle == nil {
			return nil, ErrMuscleNotFound
		}
		muscles = append(muscles, *muscle)
	}
	return muscles, nil
}

func (s *ExerciseServiceImpl) fillImageURLs(exercise *model.Exercise) {
	for i := range exercise.Images {
		exercise.Images[i].Image = s.store.PublicURL(exercise.Images[i].Image)
	}
}

func (s *ExerciseServiceImpl) toImageDTO(image *model.ExerciseImage) *dto.ExerciseImageDTO {
	return &dto.ExerciseImageDTO{
		ID:         image.ID,
		ExerciseID: image.ExerciseID,
		Image:      s.store.PublicURL(image.Image),
		IsMain:     image.IsMain,
	}
}

package wire

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"gymmate/internal/api"
	"gymmate/internal/api/config"
	"gymmate/internal/api/handler"
	"gymmate/internal/pkg/mail"
	"gymmate/internal/pkg/security"
	"gymmate/internal/pkg/storage"
	"gymmate/internal/repository"
	"gymmate/internal/service"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router *gin.Engine
	DB     *gorm.DB
}

func BuildApplication(db *gorm.DB, cfg *config.Config, blacklist security.TokenBlacklist, store storage.ObjectStore, mailer mail.Sender) (*ApplicationContainer, error) {
	userRepo := repository.NewUserRepo(db)
	muscleRepo := repository.NewMuscleRepo(db)
	categoryRepo := repository.NewExerciseCategoryRepo(db)
	equipmentRepo := repository.NewEquipmentRepo(db)
	exerciseRepo := repository.NewExerciseRepo(db)
	imageRepo := repository.NewExerciseImageRepo(db)
	metricRepo := repository.NewMetricRepo(db)
	dayRepo := repository.NewDayOfWeekRepo(db)
	routineRepo := repository.NewRoutineRepo(db)
	progressRepo := repository.NewProgressRepo(db)

	accountService := service.NewAccountService(userRepo, blacklist, store, mailer, cfg.Mail.LinkBase)
	exerciseService := service.NewExerciseService(muscleRepo, categoryRepo, equipmentRepo, exerciseRepo, imageRepo, store)
	metricService := service.NewMetricService(metricRepo)
	workoutService := service.NewWorkoutService(dayRepo, routineRepo, progressRepo, exerciseRepo)

	handlers := &api.HandlersGroup{
		AccountHandler:  handler.NewAccountHandler(accountService),
		ExerciseHandler: handler.NewExerciseHandler(exerciseService),
		MetricHandler:   handler.NewMetricHandler(metricService),
		WorkoutHandler:  handler.NewWorkoutHandler(workoutService),
	}

	router := api.SetupRouter(handlers, blacklist)

	return &ApplicationContainer{
		Router: router,
		DB:     db,
	}, nil
}

package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gymmate/internal/api/middleware"
	"gymmate/internal/pkg/logger"
	"gymmate/internal/pkg/security"
)

func SetupRouter(group *HandlersGroup, blacklist security.TokenBlacklist) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	auth := middleware.AuthMiddleware(blacklist)

	apiGroup := r.Group("/api/v1")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"detail": "pong"})
		})

		authGroup := apiGroup.Group("/auth")
		{
			authGroup.POST("/login", group.AccountHandler.Login)
			authGroup.POST("/forgot-password", group.AccountHandler.ForgotPassword)
			authGroup.POST("/reset-password", group.AccountHandler.ResetPassword)
			authGroup.GET("/activate/:token", group.AccountHandler.Activate)
			authGroup.POST("/logout", auth, group.AccountHandler.Logout)
		}

		userGroup := apiGroup.Group("/users")
		{
			// 注册入口仅接受 POST，已登录用户重复注册返回 405
			userGroup.POST("", middleware.AuthOptionalMiddleware(), group.AccountHandler.SignUp)

			authed := userGroup.Group("")
			authed.Use(auth, middleware.CheckScope(security.ScopeAccounts))
			{
				authed.GET("", group.AccountHandler.ListUsers)
				authed.GET("/me", group.AccountHandler.Me)
				authed.GET("/:id", group.AccountHandler.GetUser)
				authed.PUT("/:id", group.AccountHandler.UpdateUser)
				authed.PATCH("/:id", group.AccountHandler.UpdateUser)
				authed.DELETE("/:id", group.AccountHandler.DeleteUser)
				authed.PUT("/:id/avatar", group.AccountHandler.UploadAvatar)
			}
		}

		// 动作库：登录即可读，写操作仅限管理员
		exerciseGroup := apiGroup.Group("")
		exerciseGroup.Use(auth, middleware.CheckScope(security.ScopeExercises))
		{
			exerciseGroup.GET("/muscles", group.ExerciseHandler.ListMuscles)
			exerciseGroup.GET("/muscles/:id", group.ExerciseHandler.GetMuscle)
			exerciseGroup.GET("/exercise-categories", group.ExerciseHandler.ListCategories)
			exerciseGroup.GET("/exercise-categories/:id", group.ExerciseHandler.GetCategory)
			exerciseGroup.GET("/equipment", group.ExerciseHandler.ListEquipment)
			exerciseGroup.GET("/equipment/:id", group.ExerciseHandler.GetEquipment)
			exerciseGroup.GET("/exercises", group.ExerciseHandler.ListExercises)
			exerciseGroup.GET("/exercises/:id", group.ExerciseHandler.GetExercise)
			exerciseGroup.GET("/exercise-images", group.ExerciseHandler.ListImages)
			exerciseGroup.GET("/exercise-images/:id", group.ExerciseHandler.GetImage)

			staff := exerciseGroup.Group("")
			staff.Use(middleware.CheckStaff())
			{
				staff.POST("/muscles", group.ExerciseHandler.CreateMuscle)
				staff.PUT("/muscles/:id", group.ExerciseHandler.UpdateMuscle)
				staff.DELETE("/muscles/:id", group.ExerciseHandler.DeleteMuscle)

				staff.POST("/exercise-categories", group.ExerciseHandler.CreateCategory)
				staff.PUT("/exercise-categories/:id", group.ExerciseHandler.UpdateCategory)
				staff.DELETE("/exercise-categories/:id", group.ExerciseHandler.DeleteCategory)

				staff.POST("/equipment", group.ExerciseHandler.CreateEquipment)
				staff.PUT("/equipment/:id", group.ExerciseHandler.UpdateEquipment)
				staff.DELETE("/equipment/:id", group.ExerciseHandler.DeleteEquipment)

				staff.POST("/exercises", group.ExerciseHandler.CreateExercise)
				staff.PUT("/exercises/:id", group.ExerciseHandler.UpdateExercise)
				staff.DELETE("/exercises/:id", group.ExerciseHandler.DeleteExercise)

				staff.POST("/exercise-images", group.ExerciseHandler.UploadImage)
				staff.PATCH("/exercise-images/:id", group.ExerciseHandler.UpdateImage)
				staff.DELETE("/exercise-images/:id", group.ExerciseHandler.DeleteImage)
			}
		}

		metricGroup := apiGroup.Group("")
		metricGroup.Use(auth, middleware.CheckScope(security.ScopeMetrics))
		{
			metricGroup.GET("/metric-type-groups", group.MetricHandler.ListGroups)
			metricGroup.GET("/metric-type-groups/:id", group.MetricHandler.GetGroup)
			metricGroup.GET("/metric-types", group.MetricHandler.ListTypes)
			metricGroup.GET("/metric-types/:id", group.MetricHandler.GetType)

			staff := metricGroup.Group("")
			staff.Use(middleware.CheckStaff())
			{
				staff.POST("/metric-type-groups", group.MetricHandler.CreateGroup)
				staff.PUT("/metric-type-groups/:id", group.MetricHandler.UpdateGroup)
				staff.DELETE("/metric-type-groups/:id", group.MetricHandler.DeleteGroup)

				staff.POST("/metric-types", group.MetricHandler.CreateType)
				staff.PUT("/metric-types/:id", group.MetricHandler.UpdateType)
				staff.DELETE("/metric-types/:id", group.MetricHandler.DeleteType)
			}

			// 指标记录始终以当前用户为范围
			metricGroup.GET("/metrics", group.MetricHandler.ListMetrics)
			metricGroup.GET("/metrics/:id", group.MetricHandler.GetMetric)
			metricGroup.POST("/metrics", group.MetricHandler.CreateMetric)
			metricGroup.PUT("/metrics/:id", group.MetricHandler.UpdateMetric)
			metricGroup.DELETE("/metrics/:id", group.MetricHandler.DeleteMetric)
		}

		workoutGroup := apiGroup.Group("")
		workoutGroup.Use(auth, middleware.CheckScope(security.ScopeWorkouts))
		{
			workoutGroup.GET("/days-of-week", group.WorkoutHandler.ListDays)
			workoutGroup.GET("/days-of-week/:id", group.WorkoutHandler.GetDay)

			staff := workoutGroup.Group("")
			staff.Use(middleware.CheckStaff())
			{
				staff.POST("/days-of-week", group.WorkoutHandler.CreateDay)
				staff.PUT("/days-of-week/:id", group.WorkoutHandler.UpdateDay)
				staff.DELETE("/days-of-week/:id", group.WorkoutHandler.DeleteDay)
			}

			// 公开计划橱窗只读，单条读取同样走 /routines/:id
			workoutGroup.GET("/public-routines", group.WorkoutHandler.ListPublicRoutines)

			workoutGroup.GET("/routines", group.WorkoutHandler.ListRoutines)
			workoutGroup.GET("/routines/:id", group.WorkoutHandler.GetRoutine)
			workoutGroup.POST("/routines", group.WorkoutHandler.CreateRoutine)
			workoutGroup.PUT("/routines/:id", group.WorkoutHandler.UpdateRoutine)
			workoutGroup.PATCH("/routines/:id", group.WorkoutHandler.UpdateRoutine)
			workoutGroup.DELETE("/routines/:id", group.WorkoutHandler.DeleteRoutine)

			workoutGroup.GET("/progress", group.WorkoutHandler.ListProgress)
			workoutGroup.GET("/progress/:id", group.WorkoutHandler.GetProgress)
			workoutGroup.POST("/progress", group.WorkoutHandler.CreateProgress)
			workoutGroup.PUT("/progress/:id", group.WorkoutHandler.UpdateProgress)
			workoutGroup.PATCH("/progress/:id", group.WorkoutHandler.UpdateProgress)
			workoutGroup.DELETE("/progress/:id", group.WorkoutHandler.DeleteProgress)
		}
	}

	// 资源存在但动词不支持时返回 405 而非 404
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"detail": "Method not allowed."})
	})

	return r
}

package api

import (
	"net/http"

	"ironlog/workout-app/internal/service"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	userService service.UserService,
	exerciseService service.ExerciseService,
	workoutService service.WorkoutService,
	logService service.LogService,
) {
	authHandler := NewAuthHandler(authService)
	userHandler := NewUserHandler(userService)
	exerciseHandler := NewExerciseHandler(exerciseService)
	workoutHandler := NewWorkoutHandler(workoutService)
	logHandler := NewLogHandler(logService)

	authMiddleware := AuthMiddleware(jwtSecret)
	adminOnly := AdminMiddleware()

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", func(c *gin.Context) {
			userID, err := getUserIDFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
				return
			}
			c.JSON(http.StatusOK, gin.H{"userId": userID.Hex(), "isAdmin": isAdminFromContext(c)})
		})
		protected.PUT("/me/profile", userHandler.UpdateProfile)

		// Exercise catalog. Readable by everyone, maintained by admins.
		exerciseGroup := protected.Group("/exercises")
		{
			exerciseGroup.GET("", exerciseHandler.GetCatalog)
			exerciseGroup.GET("/:id", exerciseHandler.GetExercise)
			exerciseGroup.POST("", adminOnly, exerciseHandler.CreateExercise)
			exerciseGroup.PUT("/:id", adminOnly, exerciseHandler.UpdateExercise)
			exerciseGroup.DELETE("/:id", adminOnly, exerciseHandler.DeleteExercise)
			exerciseGroup.POST("/:id/media", adminOnly, exerciseHandler.RequestMediaUpload)
		}

		// User-created workouts. Always scoped to the authenticated user.
		workoutGroup := protected.Group("/workouts")
		{
			workoutGroup.GET("", workoutHandler.GetWorkouts)
			workoutGroup.POST("", workoutHandler.CreateWorkout)
			workoutGroup.GET("/:id", workoutHandler.GetWorkout)
			workoutGroup.PUT("/:id", workoutHandler.UpdateWorkout)
			workoutGroup.DELETE("/:id", workoutHandler.DeleteWorkout)
			workoutGroup.PATCH("/:id/favorite", workoutHandler.ToggleFavorite)
		}

		// Workout history.
		logGroup := protected.Group("/workout-logs")
		{
			logGroup.POST("", logHandler.CreateLog)
			logGroup.GET("", logHandler.QueryLogs)
			logGroup.GET("/recent", logHandler.GetRecent)
			logGroup.GET("/date/:date", logHandler.GetByDate)
			logGroup.GET("/:id", logHandler.GetLog)
			logGroup.DELETE("/:id", logHandler.DeleteLog)
		}

		// Account administration.
		userGroup := protected.Group("/users")
		userGroup.Use(adminOnly)
		{
			userGroup.GET("", userHandler.ListUsers)
			userGroup.PUT("/:id", userHandler.UpdateUser)
			userGroup.PATCH("/:id/admin", userHandler.ToggleAdmin)
			userGroup.DELETE("/:id", userHandler.DeleteUser)
		}
	}
}

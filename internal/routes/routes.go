package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/crewapp/crew-scheduler/internal/audit"
	"github.com/crewapp/crew-scheduler/internal/cache"
	"github.com/crewapp/crew-scheduler/internal/config"
	"github.com/crewapp/crew-scheduler/internal/handlers"
	infraRepo "github.com/crewapp/crew-scheduler/internal/infra/repository"
	"github.com/crewapp/crew-scheduler/internal/middleware"
	"github.com/crewapp/crew-scheduler/internal/storage"
	ucDayoff "github.com/crewapp/crew-scheduler/internal/usecase/dayoff"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cch *cache.Cache, cfg *config.Config) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	dayoffRepo := infraRepo.NewDayOffGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	avatarStore := storage.NewAvatarStore(cfg)

	// ======================================================
	// 🧠 USE CASES — DAY OFFS
	// ======================================================
	createDayOffUC := ucDayoff.NewCreateDayOff(
		dayoffRepo,
		auditDispatcher,
		cch,
	)

	listDayOffsUC := ucDayoff.NewListDayOffs(
		dayoffRepo,
		cch,
		cfg.Timezone,
	)

	updateDayOffUC := ucDayoff.NewUpdateDayOff(
		dayoffRepo,
		auditDispatcher,
		cch,
	)

	deleteDayOffUC := ucDayoff.NewDeleteDayOff(
		dayoffRepo,
		auditDispatcher,
		cch,
	)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	profileHandler := handlers.NewProfileHandler(db, avatarStore)
	crewHandler := handlers.NewCrewHandler()

	dayoffHandler := handlers.NewDayOffHandler(
		createDayOffUC,
		listDayOffsUC,
		updateDayOffUC,
		deleteDayOffUC,
	)

	pixHandler := handlers.NewPixHandler(db, auditDispatcher, cfg.MercadoPagoToken)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/user")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/profile", profileHandler.GetProfile)
			secured.POST("/profile/avatar", profileHandler.UploadAvatar)

			// ------------------------------
			// DAY OFFS
			// ------------------------------
			secured.GET("/dayoff", dayoffHandler.List)
			secured.POST("/dayoff", dayoffHandler.Create)
			secured.PUT("/dayoff/:id", dayoffHandler.Update)
			secured.DELETE("/dayoff/:id", dayoffHandler.Delete)

			// ------------------------------
			// PIX
			// ------------------------------
			secured.GET("/pix", pixHandler.List)
			secured.POST("/pix", pixHandler.Create)
			secured.DELETE("/pix/:id", pixHandler.Delete)
			secured.POST("/pix/:id/charge", pixHandler.Charge)

			secured.GET("/crews", crewHandler.List)
			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}

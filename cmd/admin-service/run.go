package admin_service

import (
	"fmt"
	"log"
	"net/http"

	adminhttp "campus-transport/internal/admin/http"
	"campus-transport/internal/admin/repository"
	"campus-transport/internal/common/config"
	"campus-transport/internal/common/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Run serves the admin CRUD API.
func Run(cfg *config.Config, pool *pgxpool.Pool) {
	logger.SetServiceName("admin-service")

	repo := repository.NewAdminRepository(pool)
	handler := adminhttp.NewAdminHandler(repo)
	router := adminhttp.NewRouter(handler)

	addr := fmt.Sprintf(":%d", cfg.Services.AdminServicePort)
	log.Printf("🛠️ Admin Service running on %s\n", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatalf("admin service error: %v", err)
	}
}

package bootstrap

import (
	"cloud.google.com/go/firestore"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/visithercegovina/tours-backend/config"
	adminhttp "github.com/visithercegovina/tours-backend/internal/admin/http"
	adminservice "github.com/visithercegovina/tours-backend/internal/admin/service"
	httpapi "github.com/visithercegovina/tours-backend/internal/api/http"
	"github.com/visithercegovina/tours-backend/internal/api/http/middleware"
	"github.com/visithercegovina/tours-backend/internal/auth"
	authhttp "github.com/visithercegovina/tours-backend/internal/auth/http"
	"github.com/visithercegovina/tours-backend/internal/cache"
	reviewshttp "github.com/visithercegovina/tours-backend/internal/reviews/http"
	reviewsrepo "github.com/visithercegovina/tours-backend/internal/reviews/repository"
	reviewsservice "github.com/visithercegovina/tours-backend/internal/reviews/service"
	tourshttp "github.com/visithercegovina/tours-backend/internal/tours/http"
	toursrepo "github.com/visithercegovina/tours-backend/internal/tours/repository"
	toursservice "github.com/visithercegovina/tours-backend/internal/tours/service"
	usershttp "github.com/visithercegovina/tours-backend/internal/users/http"
	usersrepo "github.com/visithercegovina/tours-backend/internal/users/repository"
)

type RouterDeps struct {
	ServiceName string
	Cfg         *config.Config
	Identity    auth.Identity
	Firestore   *firestore.Client
	Redis       *redis.Client
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.RequestIDMiddleware())

	// The SPA is served from another origin; the legacy proxy ran a fully
	// open CORS policy.
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization", "X-Request-Id")
	r.Use(cors.New(corsCfg))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Cfg.App.Version, dep.Redis)
	healthHandler.RegisterRoutes(r)

	userRepo := usersrepo.NewUserRepository(dep.Firestore)
	tourRepo := toursrepo.NewTourRepository(dep.Firestore)
	reviewRepo := reviewsrepo.NewReviewRepository(dep.Firestore)

	var listingCache *cache.ToursCache
	if dep.Redis != nil {
		listingCache = cache.NewToursCache(dep.Redis, dep.Cfg.Redis.CacheTTL)
	}

	tourService := newTourService(tourRepo, userRepo, listingCache)
	reviewService := newReviewService(reviewRepo, userRepo, listingCache)
	adminService := adminservice.NewAdminService(tourRepo, userRepo, reviewRepo)

	api := r.Group("/api")

	authhttp.Register(api.Group("/auth"), dep.Identity, userRepo, dep.Cfg.App.SeedAdminEmail)
	tourshttp.Register(api.Group("/tours"), tourService, dep.Identity)
	reviewshttp.Register(api.Group("/reviews"), reviewService, dep.Identity)
	usershttp.Register(api.Group("/users"), userRepo)
	adminhttp.Register(api.Group("/admin"), adminService, dep.Identity, userRepo)

	return r
}

// A nil *ToursCache must become a nil interface, not a typed nil.
func newTourService(tours *toursrepo.TourRepository, users *usersrepo.UserRepository, c *cache.ToursCache) *toursservice.TourService {
	if c == nil {
		return toursservice.NewTourService(tours, users, nil)
	}
	return toursservice.NewTourService(tours, users, c)
}

func newReviewService(reviews *reviewsrepo.ReviewRepository, users *usersrepo.UserRepository, c *cache.ToursCache) *reviewsservice.ReviewService {
	if c == nil {
		return reviewsservice.NewReviewService(reviews, users, nil)
	}
	return reviewsservice.NewReviewService(reviews, users, c)
}

package setup

import (
	"time"

	"github.com/peerpods-dev/peerpods/internal/admission"
	"github.com/peerpods-dev/peerpods/internal/clock"
	"github.com/peerpods-dev/peerpods/internal/embedding"
	"github.com/peerpods-dev/peerpods/internal/handler"
	"github.com/peerpods-dev/peerpods/internal/lifecycle"
	"github.com/peerpods-dev/peerpods/internal/matching"
	"github.com/peerpods-dev/peerpods/internal/quota"
	"github.com/peerpods-dev/peerpods/internal/service"
	"github.com/peerpods-dev/peerpods/internal/storage/pg"
	"github.com/peerpods-dev/peerpods/internal/utils"
	"github.com/peerpods-dev/peerpods/shared/config"
	"github.com/peerpods-dev/peerpods/shared/jwt"
	"github.com/peerpods-dev/peerpods/shared/middleware"
)

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Storage        *pg.Storage
	Handler        *handler.Handler
	Jwt            jwt.JwtService
	AuthMiddleware *middleware.Auth
	Refresher      *lifecycle.Refresher
	Config         *config.Config
}

// SetupDependencies initializes all dependencies required for the application.
func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	storage, err := pg.New(cfg)
	if err != nil {
		return nil, err
	}

	clk := clock.Real{}
	jwtService := jwt.New(cfg.JwtKey(), cfg.JwtTTL()*time.Hour)
	policy := quota.NewPolicy(cfg.Public.MembershipCap, cfg.QuotaLocation())
	adm := admission.New(storage, policy, clk)

	embedder := embedding.NewClient(
		cfg.Public.EmbeddingBaseURL,
		cfg.Public.EmbeddingModel,
		cfg.Private.EmbeddingAPIKey,
		cfg.Public.EmbeddingTimeout*time.Second,
	)
	engine := matching.NewEngine(embedder, matching.Tunables{
		RelevanceOffset: cfg.Public.RelevanceOffset,
		RelevanceScale:  cfg.Public.RelevanceScale,
	})

	user := service.NewUser(storage, jwtService, &utils.UserValidator{})
	pod := service.NewPod(storage, &utils.PodValidator{}, clk)
	message := service.NewMessage(storage, storage, adm, policy, clk, &utils.MessageValidator{}, cfg.Public.MessagesPageLimit)
	recommend := service.NewRecommend(storage, storage, engine, clk, cfg.Public.DefaultTopN)

	h := handler.New(user, pod, message, recommend, storage, cfg)

	return &Dependencies{
		Storage:        storage,
		Handler:        h,
		Jwt:            jwtService,
		AuthMiddleware: middleware.NewAuth(jwtService),
		Refresher:      lifecycle.NewRefresher(storage, clk),
		Config:         cfg,
	}, nil
}

package main

import (
	"net/http"

	"github.com/casahub/casahub-go/config"
	"github.com/casahub/casahub-go/db"
	"github.com/casahub/casahub-go/handlers"
	"github.com/casahub/casahub-go/services"
	"github.com/casahub/casahub-go/views"
	"github.com/madflojo/tasks"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func main() {
	fx.New(
		fx.Provide(
			NewHttpServer,
			fx.Annotate(
				NewServeMux,
				fx.ParamTags(`group:"handlers"`),
			),
			fx.Annotate(
				handlers.NewCasaAdminHandler,
				fx.As(new(handlers.Handler)),
				fx.ResultTags(`group:"handlers"`),
			),
			fx.Annotate(
				handlers.NewSessionHandler,
				fx.As(new(handlers.Handler)),
				fx.ResultTags(`group:"handlers"`),
			),
			handlers.NewMiddlewareHandler,
			handlers.NewResponder,
			services.NewAdminService,
			services.NewSessionService,
			services.NewMailerService,
			services.NewSchedulerService,
			config.Load,
			db.GetDataDBConnection,
			views.New,
			tasks.New,
			zap.NewProduction,
		),
		fx.Invoke(func(*http.Server) {}),
		fx.Invoke(func(scheduler services.SchedulerService) {
			scheduler.StartInvitationSweep()
		}),
	).Run()
}

package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/MadAppGang/httplog"
	logzap "github.com/MadAppGang/httplog/zap"
	ghandlers "github.com/gorilla/handlers"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/casahub/casahub-go/config"
	"github.com/casahub/casahub-go/handlers"
)

func NewHttpServer(lc fx.Lifecycle, mux *http.ServeMux, conf *config.Config, log *zap.Logger) *http.Server {
	requestLogger := httplog.LoggerWithFormatter(logzap.DefaultZapLogger(log, zapcore.InfoLevel, "request"))

	root := requestLogger(
		ghandlers.RecoveryHandler(ghandlers.RecoveryLogger(zap.NewStdLog(log)))(
			ghandlers.ProxyHeaders(methodOverride(mux)),
		),
	)

	srv := &http.Server{
		Addr:         conf.ServerAddr,
		Handler:      root,
		WriteTimeout: time.Second * 15,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			fmt.Println("Starting HTTP server at", srv.Addr)
			go srv.Serve(ln)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})

	return srv
}

// methodOverride lets HTML forms reach the PUT/PATCH/DELETE routes via a
// _method field on a POST.
func methodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
			if err := r.ParseForm(); err == nil {
				switch strings.ToUpper(r.PostForm.Get("_method")) {
				case http.MethodPut:
					r.Method = http.MethodPut
				case http.MethodPatch:
					r.Method = http.MethodPatch
				case http.MethodDelete:
					r.Method = http.MethodDelete
				}
			}
		}
		next.ServeHTTP(w, r)
	})
}

func NewServeMux(routers []handlers.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	for _, router := range routers {
		router.ServeHttp(mux)
	}
	return mux
}

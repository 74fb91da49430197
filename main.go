//
// marucat
// =======
// A blog content API: articles with embedded comments, and key/value
// settings, kept in MongoDB.
//
// Also check the generated route docs by passing the -routes flag,
// to run yourself do: `go run . -routes`
//
// Boot the server:
// ----------------
// $ go run . -config marucat.yaml -seed
//
// Client requests:
// ----------------
// $ curl http://localhost:3333/articles?size=2&tags=[red,blue]
// {"articles":[{"id":"5f1e...","title":"Hi",...}],"total":3,"has_more":true}
//
// $ curl http://localhost:3333/articles/5f1e7c9a2b3c4d5e6f7a8b9c?comments_size=3
// {"id":"5f1e...","content":"Nothing here","views":999,"comments":[...],...}
//
// $ curl -X POST -H 'Content-Type: application/json' \
//     -d '{"from":"Mary","body":"Nice","timestamp":1530000000000}' \
//     http://localhost:3333/articles/5f1e7c9a2b3c4d5e6f7a8b9c/comments
// {"aid":"5f1e...","cid":"5f2a...","from":"Mary",...}
//
// $ curl -X DELETE http://localhost:3333/articles/5f1e7c9a2b3c4d5e6f7a8b9c/comments/5f2a...
// {"article_id":"5f1e...","comment_id":"5f2a..."}
//
// $ curl http://localhost:3333/settings
// {"settings":[...]}
//
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SergeyParamoshkin/marucat/internal/acl"
	"github.com/SergeyParamoshkin/marucat/internal/article"
	"github.com/SergeyParamoshkin/marucat/internal/config"
	"github.com/SergeyParamoshkin/marucat/internal/errresponse"
	"github.com/SergeyParamoshkin/marucat/internal/logger"
	"github.com/SergeyParamoshkin/marucat/internal/metrics"
	"github.com/SergeyParamoshkin/marucat/internal/mongodb"
	"github.com/SergeyParamoshkin/marucat/internal/setting"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/docgen"
	"github.com/go-chi/render"
	"go.uber.org/zap"

	"go.opentelemetry.io/otel/metric/global"
)

const ServiceName = "marucat"

const shutdownTimeout = 15 * time.Second

type App struct {
	sugarLogger *zap.SugaredLogger
	config      *config.Config

	articles article.Store
	settings setting.Store
	http     *metrics.HTTP
}

// nolint
func main() {
	var (
		routes     = flag.Bool("routes", config.GetEnvBool("MARUCAT_ROUTES", false), "Generate router documentation")
		addr       = flag.String("addr", config.GetEnv("MARUCAT_ADDR", ":3333"), "application port")
		diagPort   = flag.String("diag_addr", config.GetEnv("MARUCAT_DIAG_ADDR", ":9999"), "diag port")
		configPath = flag.String("config", config.GetEnv("MARUCAT_CONFIG", ""), "YAML config file")
		seed       = flag.Bool("seed", config.GetEnvBool("MARUCAT_SEED", false), "Insert fixture articles before serving")
	)

	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	zl, err := logger.New(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer zl.Sync() // flushes buffer, if any
	sugar := zl.Sugar()

	exporter, err := metrics.NewExporter()
	if err != nil {
		sugar.Panicf("failed to initialize prometheus exporter %v", err)
	}
	global.SetMeterProvider(exporter.MeterProvider())

	a := App{
		sugarLogger: sugar,
		config:      cfg,
		http:        metrics.NewHTTP(global.Meter(ServiceName)),
	}

	// Passing -routes to the program will generate docs for the router
	// definition. The stores are never reached while doing so.
	if *routes {
		a.articles = article.NewMongoStore(nil)
		a.settings = setting.NewMongoStore(nil)

		fmt.Println(docgen.MarkdownRoutesDoc(a.Router(), docgen.MarkdownOpts{
			ProjectPath: "github.com/SergeyParamoshkin/marucat",
			Intro:       "marucat generated route docs.",
		}))

		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, err := mongodb.Connect(ctx, cfg.MongoDB)
	if err != nil {
		sugar.Fatalw("connect to mongodb", "err", err)
	}
	defer func() {
		if err := conn.Close(context.Background()); err != nil {
			sugar.Errorw("disconnect from mongodb", "err", err)
		}
	}()
	sugar.Infow("connected to mongodb", "schema", cfg.MongoDB.Schema)

	articles := article.NewMongoStore(conn.Articles)
	settings := setting.NewMongoStore(conn.Settings)

	if err := settings.EnsureIndexes(ctx); err != nil {
		sugar.Fatalw("prepare settings collection", "err", err)
	}

	if *seed {
		n, err := articles.Seed(ctx, article.Fixtures(time.Now()))
		if err != nil {
			sugar.Fatalw("seed articles", "err", err)
		}
		sugar.Infow("seeded articles", "count", n)
	}

	a.articles = articles
	a.settings = settings

	diagRouter := chi.NewRouter()
	diagRouter.Get("/metrics", exporter.ServeHTTP)

	servers := []*http.Server{
		{Addr: *addr, Handler: a.Router()},
		{Addr: *diagPort, Handler: diagRouter},
	}

	for _, srv := range servers {
		go func(srv *http.Server) {
			sugar.Infow("listening", "addr", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				sugar.Errorw(err.Error())
				stop()
			}
		}(srv)
	}

	<-ctx.Done()
	sugar.Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	for _, srv := range servers {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			sugar.Errorw("shutdown", "addr", srv.Addr, "err", err)
		}
	}
}

// Router wires the public API.
func (a *App) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(logger.Middleware(a.sugarLogger))
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(a.http.Middleware)
	r.Use(acl.Middleware(a.config.Admin.Token))
	r.Use(render.SetContentType(render.ContentTypeJSON))

	// Unknown routes and methods answer with an empty body.
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusMethodNotAllowed)
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, render.M{"message": "Hello"})
	})

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		logger.FromContext(r.Context()).Debugw("ping")
		_, err := w.Write([]byte("pong"))
		if err != nil {
			a.sugarLogger.Errorw(err.Error())
		}
	})

	r.Mount("/articles", article.NewAPI(a.articles).Routes())
	r.Mount("/settings", setting.NewAPI(a.settings, a.config.Admin.Token != "").Routes())

	return r
}

// Raw errors handed to render.Respond are never shown to clients.
// nolint
func init() {
	render.Respond = func(w http.ResponseWriter, r *http.Request, v interface{}) {
		if err, ok := v.(error); ok {
			logger.FromContext(r.Context()).Errorw("unhandled error response", "err", err)

			render.Status(r, http.StatusInternalServerError)
			render.DefaultResponder(w, r, render.M{"error": errresponse.InternalErrorText})

			return
		}

		render.DefaultResponder(w, r, v)
	}
}

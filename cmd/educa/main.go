package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/educa-hq/educa/internal/app"
	"github.com/educa-hq/educa/internal/auth"
	"github.com/educa-hq/educa/internal/authz"
	"github.com/educa-hq/educa/internal/course"
	"github.com/educa-hq/educa/internal/course/categories"
	"github.com/educa-hq/educa/internal/course/messages"
	"github.com/educa-hq/educa/internal/course/ratings"
	"github.com/educa-hq/educa/internal/generic"
	"github.com/educa-hq/educa/internal/generic/actions"
	"github.com/educa-hq/educa/internal/generic/answers"
	"github.com/educa-hq/educa/internal/lessons"
	"github.com/educa-hq/educa/internal/lessons/contents"
	"github.com/educa-hq/educa/internal/lessons/notes"
	"github.com/educa-hq/educa/internal/lessons/questions"
	"github.com/educa-hq/educa/internal/modules"
	"github.com/educa-hq/educa/internal/observability"
	"github.com/educa-hq/educa/internal/platform/cache"
	"github.com/educa-hq/educa/internal/platform/db"
	"github.com/educa-hq/educa/internal/quizzes"
	"github.com/educa-hq/educa/internal/users"
	"github.com/educa-hq/educa/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	gate := authz.NewGate(pool)

	authService := auth.NewService(auth.NewRepository(pool), auth.NewTokenIssuer(cfg.JWTSecret), auth.NewDenylist(redisClient))
	authHandler := auth.NewHandler(logger, authService)
	authmw := authService.Middleware(true)

	jobClient, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	if err != nil {
		logger.Error("init job client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := jobClient.Close(); err != nil {
			logger.Warn("job client close", slog.Any("error", err))
		}
	}()

	usersService := users.NewService(users.NewRepository(pool))
	usersHandler := users.NewHandler(logger, usersService, authmw)

	categoryService := categories.NewService(categories.NewRepository(pool))
	categoryHandler := categories.NewHandler(categoryService, authmw)

	courseRepo := course.NewRepository(pool)
	courseService := course.NewService(logger, courseRepo, gate, usersService, categoryService, jobClient)
	statsReader := course.NewStatsReader(courseRepo, redisClient)
	courseHandler := course.NewHandler(logger, courseService, statsReader, authmw)

	ratingService := ratings.NewService(logger, ratings.NewRepository(pool), gate, jobClient)
	ratingHandler := ratings.NewHandler(ratingService, authmw)

	messageService := messages.NewService(messages.NewRepository(pool), gate)
	messageHandler := messages.NewHandler(messageService, authmw)

	moduleService := modules.NewService(modules.NewRepository(pool), gate)
	moduleHandler := modules.NewHandler(moduleService, authmw)

	lessonService := lessons.NewService(lessons.NewRepository(pool), gate, moduleService)
	lessonHandler := lessons.NewHandler(lessonService, authmw)

	noteService := notes.NewService(notes.NewRepository(pool), gate)
	noteHandler := notes.NewHandler(noteService, authmw)

	questionService := questions.NewService(questions.NewRepository(pool), gate)
	questionHandler := questions.NewHandler(questionService, authmw)

	contentService := contents.NewService(contents.NewRepository(pool), gate)
	contentHandler := contents.NewHandler(contentService, authmw)

	quizService := quizzes.NewService(quizzes.NewRepository(pool), gate)
	quizHandler := quizzes.NewHandler(quizService, authmw)

	answerRegistry := generic.NewRegistry(generic.AnswerTargets())
	answerService := answers.NewService(answers.NewRepository(pool), gate, answerRegistry)
	answerHandler := answers.NewHandler(answerService, authmw)

	actionRegistry := generic.NewRegistry(generic.ActionTargets())
	actionService := actions.NewService(actions.NewRepository(pool), gate, actionRegistry)
	actionHandler := actions.NewHandler(actionService, authmw)

	metrics := observability.NewMetrics()

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobHandler := jobs.NewHandler(inspector, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:          logger,
		Config:          cfg,
		AuthHandler:     authHandler,
		UsersHandler:    usersHandler,
		CourseHandler:   courseHandler,
		CategoryHandler: categoryHandler,
		RatingHandler:   ratingHandler,
		MessageHandler:  messageHandler,
		ModuleHandler:   moduleHandler,
		LessonHandler:   lessonHandler,
		NoteHandler:     noteHandler,
		QuestionHandler: questionHandler,
		ContentHandler:  contentHandler,
		QuizHandler:     quizHandler,
		AnswerHandler:   answerHandler,
		ActionHandler:   actionHandler,
		JobHandler:      jobHandler,
		Metrics:         metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/Guyuepp/Comment-Hub/domain"
	"github.com/Guyuepp/Comment-Hub/internal/auth"
	"github.com/Guyuepp/Comment-Hub/internal/repository"
	mysqlRepo "github.com/Guyuepp/Comment-Hub/internal/repository/mysql"
	redisCache "github.com/Guyuepp/Comment-Hub/internal/repository/redis"
	"github.com/Guyuepp/Comment-Hub/internal/rest"
	"github.com/Guyuepp/Comment-Hub/internal/rest/middleware"
	"github.com/Guyuepp/Comment-Hub/internal/usecase/comment"
	"github.com/Guyuepp/Comment-Hub/internal/usecase/search"
	"github.com/Guyuepp/Comment-Hub/internal/workers"
	"github.com/joho/godotenv"
)

const (
	defaultTimeout     = 30
	defaultAddress     = ":9090"
	defaultCacheDB     = 0
	dbMaxRetry         = 10
	dbRetryIntervalSec = 2
)

func init() {
	err := godotenv.Load()
	if err != nil {
		log.Fatal("Error loading .env file")
	}
}

func resolvedPolicyFromEnv() domain.ResolvedPolicy {
	switch os.Getenv("RESOLVED_TREE_POLICY") {
	case "roots-only":
		return domain.ResolvedRejectsRoots
	case "strict", "":
		return domain.ResolvedRejectsAll
	default:
		log.Println("unknown RESOLVED_TREE_POLICY, using strict")
		return domain.ResolvedRejectsAll
	}
}

func main() {
	//prepare database
	dbHost := os.Getenv("DATABASE_HOST")
	dbPort := os.Getenv("DATABASE_PORT")
	dbUser := os.Getenv("DATABASE_USER")
	dbPass := os.Getenv("DATABASE_PASS")
	dbName := os.Getenv("DATABASE_NAME")
	connection := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s", dbUser, dbPass, dbHost, dbPort, dbName)
	val := url.Values{}
	val.Add("parseTime", "1")
	dsn := fmt.Sprintf("%s?%s", connection, val.Encode())

	var (
		db  *gorm.DB
		err error
	)

	for i := 0; i < dbMaxRetry; i++ {
		db, err = gorm.Open(mysql.Open(dsn), &gorm.Config{})
		if err != nil {
			log.Printf("failed to open connection to database (attempt %d/%d): %v", i+1, dbMaxRetry, err)
		} else {
			sqlDB, err := db.DB()
			if err != nil {
				log.Printf("failed to get sql.DB from gorm.DB (attempt %d/%d): %v", i+1, dbMaxRetry, err)
				continue
			}
			err = sqlDB.Ping()
			if err == nil {
				break
			}
			log.Printf("failed to ping database (attempt %d/%d): %v", i+1, dbMaxRetry, err)
			_ = sqlDB.Close()
		}

		time.Sleep(dbRetryIntervalSec * time.Second)
	}

	if err != nil {
		log.Fatal("could not connect to database after retries:", err)
	}

	defer func() {
		sqlDB, err := db.DB()
		if err != nil {
			log.Fatal("got error when getting sql.DB from gorm.DB", err)
		}
		if err := sqlDB.Close(); err != nil {
			log.Fatal("got error when closing the DB connection", err)
		}
	}()

	// prepare cache
	cacheHost := os.Getenv("CACHE_HOST")
	cachePort := os.Getenv("CACHE_PORT")
	cachePass := os.Getenv("CACHE_PASS")
	cacheDBStr := os.Getenv("CACHE_DB")
	cacheDB, err := strconv.Atoi(cacheDBStr)
	if err != nil {
		log.Println("failed to parse cacheDB, using default cacheDB")
		cacheDB = defaultCacheDB
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cacheHost + ":" + cachePort,
		Password: cachePass,
		DB:       cacheDB,
	})
	defer func() {
		err = client.Close()
		if err != nil {
			log.Fatal("got error when closing the cache connection", err)
		}
	}()

	_, err = client.Ping(context.Background()).Result()
	if err != nil {
		log.Fatal("failed to open connection to cache", err)
		return
	}

	// prepare gin
	route := gin.Default()
	route.Use(middleware.CORS())
	timeoutStr := os.Getenv("CONTEXT_TIMEOUT")
	timeout, err := strconv.Atoi(timeoutStr)
	if err != nil {
		log.Println("failed to parse timeout, using default timeout")
		timeout = defaultTimeout
	}
	timeoutContext := time.Duration(timeout) * time.Second
	route.Use(middleware.SetRequestContextWithTimeout(timeoutContext))

	// Prepare Repository
	// 1. DB layer
	treeRepo := mysqlRepo.NewTreeRepository(db)
	commentRepo := mysqlRepo.NewCommentRepository(db)
	likeRepo := mysqlRepo.NewLikeRepository(db)
	searchRepo := mysqlRepo.NewSearchRepository(db)
	// 2. Cache layer
	commentCache := redisCache.NewCommentCache(client)
	// 3. Coordinating layer
	commentStore := repository.NewCommentStore(treeRepo, commentRepo, commentCache)

	// Start worker
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	likeCountSyncer := workers.NewSyncLikeCountsWorker(commentStore)
	go likeCountSyncer.Start(ctx)

	// Build service layer
	jwtSecret := []byte(os.Getenv("JWT_SECRET"))
	tokenValidator := auth.NewJWTValidator(jwtSecret)

	commentSvc := comment.NewService(commentStore, resolvedPolicyFromEnv())
	likeSvc := comment.NewLikeService(commentStore, likeRepo, likeCountSyncer)
	searchSvc := search.NewService(searchRepo, commentRepo)

	commentHandler := rest.NewCommentHandler(commentSvc, likeSvc, tokenValidator)
	searchHandler := rest.NewSearchHandler(searchSvc)

	// Register routes
	api := route.Group("/comment")
	{
		api.GET("/health", commentHandler.Health)

		api.POST("/v1/addFirst", commentHandler.AddFirst)
		api.POST("/v1/addNew", commentHandler.AddReply)
		api.PUT("/v1/update", commentHandler.Update)
		api.GET("/v1/getAll", commentHandler.GetComments)
		api.DELETE("/v1/delete/:commentId", commentHandler.Delete)
		api.POST("/v1/setStatusToResolved", commentHandler.Resolve)

		api.POST("/v1/like", commentHandler.Like)
		api.GET("/v1/like/read", commentHandler.ReadLike)

		api.POST("/search", searchHandler.Search)
		api.POST("/list", searchHandler.ListByIDs)
	}

	// Start Server
	address := os.Getenv("SERVER_ADDRESS")
	if address == "" {
		address = defaultAddress
	}
	srv := &http.Server{
		Addr:    address,
		Handler: route,
	}
	go func() {
		log.Printf("Server is running on %s\n", address)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err) // nolint
		}
	}()

	// shutdown
	<-ctx.Done()
	log.Println("Shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown: ", err)
	}

	log.Println("Waiting for worker to cleanup...")
	time.Sleep(2 * time.Second)

	log.Println("Server exiting")
}

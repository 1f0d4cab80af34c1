package main

import (
	"database/sql"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/mehkova/storefront-backend/internal/cart"
	"github.com/mehkova/storefront-backend/internal/checkout"
	"github.com/mehkova/storefront-backend/internal/config"
	"github.com/mehkova/storefront-backend/internal/notify"
	"github.com/mehkova/storefront-backend/internal/order"
	"github.com/mehkova/storefront-backend/internal/product"
	"github.com/mehkova/storefront-backend/internal/user"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	app := fiber.New()
	setupCORS(app)

	db := mustOpenDB(cfg.DatabaseURL)
	defer db.Close()
	mustBootstrapSchema(db)

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer redisClient.Close()

	catalogRepo, err := product.NewFileRepository(cfg.CatalogPath)
	if err != nil {
		log.Fatalf("load catalog: %v", err)
	}

	notifier := notify.NewLogNotifier()

	productService := product.NewService(catalogRepo)
	productHandler := product.NewHandler(productService)

	userService := user.NewService(user.NewPostgresRepository(db))
	userHandler := user.NewHandler(userService)

	cartStore := cart.NewStore(cart.NewRedisRepository(redisClient))
	cartHandler := cart.NewHandler(cartStore, productService, notifier)

	orderService := order.NewService(order.NewPostgresRepository(db))
	orderHandler := order.NewHandler(orderService)

	checkoutService := checkout.NewService(cartStore, orderService, checkout.NewDefaultGateway(), notifier)
	checkoutHandler := checkout.NewHandler(checkoutService)

	// public surface: auth and the catalog
	userHandler.RegisterPublicRoutes(app)
	productHandler.RegisterPublicRoutes(app)

	// everything past this point requires a signed-in user
	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
	}))

	userHandler.RegisterProtectedRoutes(app)
	cartHandler.RegisterProtectedRoutes(app)
	checkoutHandler.RegisterProtectedRoutes(app)
	orderHandler.RegisterProtectedRoutes(app)

	log.Printf("starting server on %s", cfg.Addr)
	if err := app.Listen(cfg.Addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}

func mustOpenDB(url string) *sql.DB {
	if url == "" {
		panic("DATABASE_URL is not set")
	}

	db, err := sql.Open("pgx", url)
	if err != nil {
		panic(err)
	}
	if err := db.Ping(); err != nil {
		panic(err)
	}
	return db
}

// mustBootstrapSchema creates the two tables this backend owns. The cart
// lives in redis and the catalog in a data file, so there is nothing else.
func mustBootstrapSchema(db *sql.DB) {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS users (
		"userId" SERIAL PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		"firstName" TEXT,
		"lastName" TEXT,
		phone TEXT,
		"createdAt" TEXT,
		"updatedAt" TEXT
	)`); err != nil {
		panic(err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS orders (
		"orderID" SERIAL PRIMARY KEY,
		"userID" INT NOT NULL,
		reference TEXT NOT NULL UNIQUE,
		lines jsonb NOT NULL DEFAULT '[]',
		"productIds" integer[] NOT NULL DEFAULT '{}',
		quantity INT NOT NULL DEFAULT 0,
		"totalPrice" BIGINT NOT NULL DEFAULT 0,
		status TEXT,
		"createdAt" TEXT
	)`); err != nil {
		panic(err)
	}
}

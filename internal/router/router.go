package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"talenthub/internal/auth"
	"talenthub/internal/config"
	"talenthub/internal/handler"
)

// Register wires routes and middleware. The secured group is protected
// twice: echo-jwt verifies the token signature and validity window, then
// RequireSession resolves the session record and re-fetches the user so
// role changes and revocations take effect immediately.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	codec *auth.TokenCodec,
	sessions SessionResolver,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	users := e.Group("/users")

	// Public routes
	users.POST("/register_business", authHandler.RegisterBusiness)
	users.POST("/register_talent", authHandler.RegisterTalent)
	users.POST("/login", authHandler.Login)
	users.POST("/logout", authHandler.Logout)
	users.GET("/:id", userHandler.GetProfile)

	// Secured routes
	secured := users.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  codec.Secret(),
		TokenLookup: "cookie:" + handler.SessionCookieName + ",header:" + echo.HeaderAuthorization + ":Bearer ",
		ErrorHandler: func(c echo.Context, err error) error {
			return rejectToLogin(cfg.LoginPath)
		},
	}), RequireSession(sessions, cfg.LoginPath))

	secured.GET("/me", userHandler.Me)
	secured.GET("/dashboard", userHandler.Dashboard)

	// Admin routes
	admin := e.Group("/admin", RequireSession(sessions, cfg.LoginPath), RequireAdmin())
	admin.GET("/users", userHandler.Directory)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

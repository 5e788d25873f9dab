package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/Deepak-Mahanta/Votify/internal/auth"
	"github.com/Deepak-Mahanta/Votify/internal/config"
	apperrors "github.com/Deepak-Mahanta/Votify/internal/errors"
	"github.com/Deepak-Mahanta/Votify/internal/handler"
	"github.com/Deepak-Mahanta/Votify/internal/model"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	tokens *auth.TokenService,
	authHandler *handler.AuthHandler,
	candidateHandler *handler.CandidateHandler,
	voteHandler *handler.VoteHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowCredentials: true,
	}))

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	authRequired := echojwt.WithConfig(echojwt.Config{
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, tokenString string) (interface{}, error) {
			return tokens.Verify(tokenString)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			// Verify already collapsed failures into the expired/invalid pair;
			// extraction failures (missing header) read as invalid.
			httpErr := apperrors.MapErrorToHTTP(err)
			if httpErr.Code == "INTERNAL_ERROR" {
				httpErr = apperrors.MapErrorToHTTP(apperrors.ErrTokenInvalid)
			}
			return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
		},
	})

	user := e.Group("/user")
	user.POST("/signup", authHandler.Signup)
	user.POST("/login", authHandler.Login)
	user.GET("/profile", authHandler.Profile, authRequired)
	user.PUT("/profile/password", authHandler.ChangePassword, authRequired)

	candidate := e.Group("/candidate")
	candidate.GET("", candidateHandler.List)
	candidate.GET("/vote/count", voteHandler.VoteCount)

	// Admin roster management. The role gate lives at the route layer here
	// because it is pure authorization, unlike vote eligibility.
	candidate.POST("", candidateHandler.Create, authRequired, RequireRole(model.RoleAdmin))
	candidate.PUT("/:candidateID", candidateHandler.Update, authRequired, RequireRole(model.RoleAdmin))
	candidate.DELETE("/:candidateID", candidateHandler.Delete, authRequired, RequireRole(model.RoleAdmin))

	// Voting needs authentication only; the ledger itself decides
	// eligibility so that candidate-not-found wins over forbidden.
	candidate.POST("/vote/:candidateID", voteHandler.CastVote, authRequired)
}

// RequireRole rejects authenticated callers whose role does not match.
func RequireRole(role model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get("user").(*auth.Claims)
			if !ok {
				httpErr := apperrors.MapErrorToHTTP(apperrors.ErrTokenInvalid)
				return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
			}
			if claims.Role != role {
				httpErr := apperrors.MapErrorToHTTP(apperrors.ErrForbidden)
				return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
			}
			return next(c)
		}
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

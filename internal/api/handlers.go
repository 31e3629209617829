package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/TanujMamidala/InfoHub-Challenge/internal/config"
	"github.com/TanujMamidala/InfoHub-Challenge/internal/middleware"
	"github.com/TanujMamidala/InfoHub-Challenge/internal/models"
	"github.com/TanujMamidala/InfoHub-Challenge/internal/service"
)

const (
	msgWeatherNotConfigured = "Weather API key not configured on the server."
	msgWeatherUnauthorized  = "Invalid or unauthorized OpenWeather API key. Please check your OPENWEATHER_API_KEY."
	msgWeatherFailed        = "Could not fetch weather data."
	msgCurrencyMissingRate  = "Missing USD or EUR rate from exchange API"
	msgCurrencyFailed       = "Could not fetch currency conversion data."
)

// HandlerConfig contains all dependencies for the Handlers
type HandlerConfig struct {
	Config          *config.Config
	Logger          *logrus.Logger
	WeatherService  *service.WeatherService
	CurrencyService *service.CurrencyService
	QuoteService    *service.QuoteService
}

// Handlers contains all HTTP handlers
type Handlers struct {
	configuration   *config.Config
	logger          *logrus.Logger
	weatherService  *service.WeatherService
	currencyService *service.CurrencyService
	quoteService    *service.QuoteService
}

// NewHandlers creates a new handlers instance with all dependencies
func NewHandlers(handlerConfig HandlerConfig) *Handlers {
	return &Handlers{
		configuration:   handlerConfig.Config,
		logger:          handlerConfig.Logger,
		weatherService:  handlerConfig.WeatherService,
		currencyService: handlerConfig.CurrencyService,
		quoteService:    handlerConfig.QuoteService,
	}
}

// SetupRoutes configures all the routes using Gin
func (handlers *Handlers) SetupRoutes() *gin.Engine {
	if gin.Mode() == gin.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(middleware.RequestLogger(handlers.logger))
	router.Use(gin.Recovery())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS())

	apiGroup := router.Group("/api")
	{
		apiGroup.GET("/health", handlers.HealthCheck)
		apiGroup.GET("/config", handlers.GetConfig)
		apiGroup.GET("/weather", handlers.GetWeather)
		apiGroup.GET("/currency", handlers.GetCurrency)
		apiGroup.GET("/quote", handlers.GetQuote)
	}

	return router
}

// HealthCheck is a liveness signal only
func (handlers *Handlers) HealthCheck(context *gin.Context) {
	context.JSON(http.StatusOK, models.HealthStatus{Status: models.HealthStatusOK})
}

// GetConfig reports which integrations have credentials, never their values
func (handlers *Handlers) GetConfig(context *gin.Context) {
	flags := handlers.configuration.Flags()
	context.JSON(http.StatusOK, models.ConfigFlags{
		OpenWeatherKeyPresent:  flags.OpenWeatherKeyPresent,
		ExchangeRateKeyPresent: flags.ExchangeRateKeyPresent,
		QuoteAPIURLPresent:     flags.QuoteAPIURLPresent,
	})
}

// GetWeather returns simplified current weather for ?city= (default London)
func (handlers *Handlers) GetWeather(context *gin.Context) {
	city := context.Query("city")
	if city == "" {
		city = service.DefaultCity
	}

	weather, fetchError := handlers.weatherService.GetWeather(context.Request.Context(), city)
	if fetchError != nil {
		statusCode, message := weatherErrorResponse(fetchError)
		handlers.logger.WithFields(logrus.Fields{
			"city":       city,
			"error_type": service.ClassifyError(fetchError).String(),
		}).Errorf("Error fetching weather: %v", fetchError)
		handlers.writeErrorResponse(context, statusCode, message)
		return
	}

	context.JSON(http.StatusOK, weather)
}

// GetCurrency converts ?amount= INR to USD and EUR
func (handlers *Handlers) GetCurrency(context *gin.Context) {
	amount := ParseAmount(context.Query("amount"))

	conversion, fetchError := handlers.currencyService.Convert(context.Request.Context(), amount)
	if fetchError != nil {
		message := msgCurrencyFailed
		if service.ClassifyError(fetchError) == service.ErrorTypeMissingRate {
			message = msgCurrencyMissingRate
		}
		handlers.logger.WithFields(logrus.Fields{
			"provider":   handlers.currencyService.ProviderName(),
			"error_type": service.ClassifyError(fetchError).String(),
		}).Errorf("Error fetching currency rates: %v", fetchError)
		handlers.writeErrorResponse(context, http.StatusInternalServerError, message)
		return
	}

	context.JSON(http.StatusOK, conversion)
}

// GetQuote always succeeds; upstream failures degrade to the built-in quotes
func (handlers *Handlers) GetQuote(context *gin.Context) {
	context.JSON(http.StatusOK, handlers.quoteService.GetQuote(context.Request.Context()))
}

// weatherErrorResponse maps a weather failure to a status and client message
func weatherErrorResponse(err error) (int, string) {
	var serviceError *service.ServiceError
	if !errors.As(err, &serviceError) {
		return http.StatusInternalServerError, msgWeatherFailed
	}

	switch serviceError.Type {
	case service.ErrorTypeConfiguration:
		return http.StatusInternalServerError, msgWeatherNotConfigured
	case service.ErrorTypeUpstreamStatus:
		if serviceError.StatusCode == http.StatusUnauthorized {
			return http.StatusBadGateway, msgWeatherUnauthorized
		}
		return http.StatusBadGateway, formatUpstreamError(serviceError)
	default:
		return http.StatusInternalServerError, msgWeatherFailed
	}
}

func formatUpstreamError(serviceError *service.ServiceError) string {
	return fmt.Sprintf("OpenWeather API error (status %d): %s", serviceError.StatusCode, serviceError.UpstreamMessage)
}

// writeErrorResponse writes the fixed {"error": "..."} shape
func (handlers *Handlers) writeErrorResponse(context *gin.Context, statusCode int, errorMessage string) {
	context.JSON(statusCode, models.ErrorResponse{Error: errorMessage})
}

package service

import (
	"context"
	"net/http"
	"net/url"

	"github.com/sirupsen/logrus"

	"github.com/TanujMamidala/InfoHub-Challenge/internal/config"
	"github.com/TanujMamidala/InfoHub-Challenge/internal/models"
)

const DefaultCity = "London"

// WeatherService fetches current conditions from OpenWeatherMap.
type WeatherService struct {
	configuration *config.Config
	logger        *logrus.Logger
	httpClient    *http.Client
}

func NewWeatherService(configuration *config.Config, logger *logrus.Logger) *WeatherService {
	return &WeatherService{
		configuration: configuration,
		logger:        logger,
		httpClient:    newHTTPClient(0),
	}
}

type openWeatherResponse struct {
	Name string `json:"name"`
	Main *struct {
		Temp *float64 `json:"temp"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
}

// GetWeather returns metric conditions for city, defaulting to London.
func (weatherService *WeatherService) GetWeather(requestContext context.Context, city string) (models.WeatherResult, error) {
	if weatherService.configuration.OpenWeatherAPIKey == "" {
		return models.WeatherResult{}, &ServiceError{
			Type:    ErrorTypeConfiguration,
			Message: "weather API key not configured",
		}
	}
	if city == "" {
		city = DefaultCity
	}

	query := url.Values{}
	query.Set("q", city)
	query.Set("units", "metric")
	query.Set("appid", weatherService.configuration.OpenWeatherAPIKey)
	requestURL := weatherService.configuration.OpenWeatherBaseURL + "?" + query.Encode()

	weatherService.logger.WithField("city", city).Debug("Fetching weather")

	var payload openWeatherResponse
	if err := fetchJSON(requestContext, weatherService.httpClient, requestURL, &payload); err != nil {
		return models.WeatherResult{}, err
	}

	result := models.WeatherResult{
		City: payload.Name,
		Raw:  map[string]interface{}{},
	}
	if payload.Main != nil {
		result.Temperature = payload.Main.Temp
	}
	if len(payload.Weather) > 0 {
		result.Description = payload.Weather[0].Description
	}
	return result, nil
}

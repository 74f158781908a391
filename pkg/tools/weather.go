package tools

import (
	"context"
	"fmt"
	"net/http"
)

// WeatherTool queries OpenWeatherMap's current-weather endpoint.
type WeatherTool struct {
	apiKey string
	client *http.Client
}

func NewWeatherTool(apiKey string) *WeatherTool {
	return &WeatherTool{apiKey: apiKey, client: newHTTPClient()}
}

func (t *WeatherTool) Name() string     { return "weather" }
func (t *WeatherTool) Category() string { return CategoryWeather }
func (t *WeatherTool) Description() string {
	return "Current weather conditions for a named location"
}
func (t *WeatherTool) Enabled() bool { return t.apiKey != "" }

func (t *WeatherTool) Invoke(ctx context.Context, params Params) (Result, error) {
	location := params.String("location")
	if location == "" {
		location = params.String("query")
	}
	if location == "" {
		return nil, fmt.Errorf("weather requires a 'location' parameter")
	}

	var resp struct {
		Name    string `json:"name"`
		Weather []struct {
			Main        string `json:"main"`
			Description string `json:"description"`
		} `json:"weather"`
		Main struct {
			Temp      float64 `json:"temp"`
			FeelsLike float64 `json:"feels_like"`
			Humidity  int     `json:"humidity"`
		} `json:"main"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
	}
	url := "https://api.openweathermap.org/data/2.5/weather?units=metric&appid=" + queryEscape(t.apiKey) + "&q=" + queryEscape(location)
	if err := getJSON(ctx, t.client, url, nil, &resp); err != nil {
		return nil, fmt.Errorf("weather: %w", err)
	}

	condition := ""
	if len(resp.Weather) > 0 {
		condition = resp.Weather[0].Description
	}
	return Result{
		"source":     t.Name(),
		"location":   resp.Name,
		"condition":  condition,
		"temp_c":     resp.Main.Temp,
		"feels_like": resp.Main.FeelsLike,
		"humidity":   resp.Main.Humidity,
		"wind_speed": resp.Wind.Speed,
	}, nil
}

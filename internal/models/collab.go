// ABOUTME: Result types returned by the weather, news and calendar collaborators
// ABOUTME: The core treats these as opaque values handed to each formatter
package models

// DailyForecast is one day of a weather forecast.
type DailyForecast struct {
	Date        string  `json:"date"`
	TempMin     float64 `json:"temp_min"`
	TempMax     float64 `json:"temp_max"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
}

// WeatherReport is the weather collaborator's result type.
type WeatherReport struct {
	Location    string          `json:"location"`
	CurrentTemp float64         `json:"current_temp"`
	FeelsLike   float64         `json:"feels_like"`
	Humidity    int             `json:"humidity"`
	Description string          `json:"description"`
	Icon        string          `json:"icon"`
	Forecast    []DailyForecast `json:"forecast,omitempty"`
	Units       string          `json:"units"`
}

// Article is a single news item.
type Article struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	ImageURL    string `json:"urlToImage,omitempty"`
	PublishedAt string `json:"publishedAt"`
	Source      string `json:"source"`
	Author      string `json:"author"`
}

// NewsDigest is the news collaborator's result type.
type NewsDigest struct {
	Articles     []Article `json:"articles"`
	TotalResults int       `json:"total_results"`
	Category     string    `json:"category"`
	Sources      []string  `json:"sources,omitempty"`
}

// Event is a single calendar entry.
type Event struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Status      string `json:"status"`
}

// Agenda is the calendar collaborator's result type.
type Agenda struct {
	Events  []Event `json:"events"`
	Action  string  `json:"action"` // list, create, update, delete
	Message string  `json:"message,omitempty"`
}

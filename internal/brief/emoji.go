package brief

import "strings"

// WeatherEmoji maps an OpenWeatherMap condition ID onto an emoji,
// falling back to the text description for IDs outside the known ranges.
func WeatherEmoji(id int64, description string) string {
	switch {
	case id >= 200 && id < 233:
		return "⛈️" // thunderstorm
	case id >= 300 && id < 322:
		return "🌦️" // drizzle
	case (id >= 500 && id < 505) || (id >= 520 && id < 532):
		return "🌧️" // rain
	case id >= 600 && id < 623:
		return "❄️" // snow
	case id >= 701 && id < 782:
		return "🌫️" // fog, mist, haze
	case id == 800:
		return "☀️"
	case id == 801:
		return "🌤️"
	case id == 802:
		return "⛅"
	case id == 803 || id == 804:
		return "☁️"
	}

	desc := strings.ToLower(description)

	switch {
	case strings.Contains(desc, "clear") || strings.Contains(desc, "sunny"):
		return "☀️"
	case strings.Contains(desc, "cloud"):
		if strings.Contains(desc, "few") || strings.Contains(desc, "scattered") {
			return "⛅"
		}

		return "☁️"
	case strings.Contains(desc, "drizzle"):
		return "🌦️"
	case strings.Contains(desc, "rain"):
		return "🌧️"
	case strings.Contains(desc, "storm") || strings.Contains(desc, "thunder"):
		return "⛈️"
	case strings.Contains(desc, "snow"):
		return "❄️"
	case strings.Contains(desc, "fog"),
		strings.Contains(desc, "mist"),
		strings.Contains(desc, "haze"):
		return "🌫️"
	}

	return "🌤️"
}

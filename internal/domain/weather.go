package domain

import "time"

type Season string

const (
	SeasonSpring Season = "SPRING"
	SeasonSummer Season = "SUMMER"
	SeasonAutumn Season = "AUTUMN"
	SeasonWinter Season = "WINTER"
)

// SeasonOf maps a date to its meteorological season (northern hemisphere).
func SeasonOf(t time.Time) Season {
	switch t.Month() {
	case time.March, time.April, time.May:
		return SeasonSpring
	case time.June, time.July, time.August:
		return SeasonSummer
	case time.September, time.October, time.November:
		return SeasonAutumn
	default:
		return SeasonWinter
	}
}

type WeatherCondition string

const (
	WeatherClear  WeatherCondition = "CLEAR"
	WeatherCloudy WeatherCondition = "CLOUDY"
	WeatherRain   WeatherCondition = "RAIN"
	WeatherStorm  WeatherCondition = "STORM"
	WeatherSnow   WeatherCondition = "SNOW"
)

// WeatherInfo is the snapshot the pipeline plans against.
type WeatherInfo struct {
	Condition    WeatherCondition
	TemperatureC float64

	// Severe marks conditions under which outdoor activities are unsafe.
	Severe bool
}

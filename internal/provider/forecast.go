package provider

import (
	"time"

	"dailybrief/internal/domain"
)

const (
	windowStartHour = 8
	windowEndHour   = 22

	// The scheduled run fires at 08:00 and covers the day ahead; a run
	// after this cutover previews tomorrow instead.
	sameDayCutoverHour = 10
)

// hourlyWindow condenses 3-hourly forecast points into one entry per
// clock hour between 8am and 10pm local time, linearly interpolating
// temperature and precipitation probability between bracketing points
// and taking the nearest point's condition.
func hourlyWindow(points []owmForecastPoint, now time.Time) []domain.HourlyForecast {
	target := now
	if now.Hour() >= sameDayCutoverHour {
		target = now.AddDate(0, 0, 1)
	}

	loc := now.Location()
	start := time.Date(target.Year(), target.Month(), target.Day(), windowStartHour, 0, 0, 0, loc)
	end := time.Date(target.Year(), target.Month(), target.Day(), windowEndHour, 0, 0, 0, loc)

	var inWindow []owmForecastPoint
	for _, p := range points {
		if p.Dt >= start.Unix() && p.Dt <= end.Unix() {
			inWindow = append(inWindow, p)
		}
	}
	if len(inWindow) == 0 {
		return nil
	}

	var hours []domain.HourlyForecast
	for h := start; !h.After(end); h = h.Add(time.Hour) {
		hours = append(hours, interpolateAt(inWindow, h))
	}

	return hours
}

func interpolateAt(points []owmForecastPoint, at time.Time) domain.HourlyForecast {
	ts := at.Unix()

	var before, after *owmForecastPoint
	for i := range points {
		if points[i].Dt <= ts {
			before = &points[i]
			if i+1 < len(points) {
				after = &points[i+1]
			}
			continue
		}

		if before == nil {
			before = &points[i]
		}
		after = &points[i]

		break
	}

	if before == nil {
		before = after
	}
	if after == nil || after.Dt == before.Dt {
		return pointAt(*before, at)
	}

	factor := float64(ts-before.Dt) / float64(after.Dt-before.Dt)

	nearest := before
	if factor >= 0.5 {
		nearest = after
	}

	h := pointAt(*nearest, at)
	h.TempF = lerp(before.Main.Temp, after.Main.Temp, factor)
	h.FeelsLikeF = lerp(before.Main.FeelsLike, after.Main.FeelsLike, factor)
	h.PrecipProb = lerp(before.Pop, after.Pop, factor)

	return h
}

func pointAt(p owmForecastPoint, at time.Time) domain.HourlyForecast {
	h := domain.HourlyForecast{
		Time:       at,
		TempF:      p.Main.Temp,
		FeelsLikeF: p.Main.FeelsLike,
		PrecipProb: p.Pop,
	}

	if len(p.Weather) > 0 {
		h.Description = descriptionCaser.String(p.Weather[0].Description)
		h.ConditionID = p.Weather[0].ID
	}

	return h
}

func lerp(a, b, factor float64) float64 {
	return a + (b-a)*factor
}

// Package utils provides small shared helpers.
package utils

import "time"

// DateFormat is the YYYY-MM-DD form used in all upstream requests.
const DateFormat = "2006-01-02"

// DailyWindow returns n consecutive dates starting at from.
func DailyWindow(from time.Time, n int) []string {
	dates := make([]string, 0, n)
	for i := 0; i < n; i++ {
		dates = append(dates, from.AddDate(0, 0, i).Format(DateFormat))
	}
	return dates
}

// WeeklyWindow returns the ISO week starts (Mondays) of n consecutive weeks,
// beginning with the week containing from.
func WeeklyWindow(from time.Time, n int) []string {
	start := StartOfISOWeek(from)
	weeks := make([]string, 0, n)
	for i := 0; i < n; i++ {
		weeks = append(weeks, start.AddDate(0, 0, i*7).Format(DateFormat))
	}
	return weeks
}

// StartOfISOWeek returns the Monday of the ISO week containing t, at UTC
// midnight.
func StartOfISOWeek(t time.Time) time.Time {
	date := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	day := int(date.Weekday())
	if day == 0 {
		day = 7
	}
	return date.AddDate(0, 0, -(day - 1))
}

// HourlyWindow returns hourly timestamps covering the given date from
// startHour up to and including endHour, formatted for the upstream service.
func HourlyWindow(day time.Time, startHour, endHour int) []string {
	base := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	hours := make([]string, 0, endHour-startHour+1)
	for h := startHour; h <= endHour; h++ {
		hours = append(hours, base.Add(time.Duration(h)*time.Hour).Format("2006-01-02T15:04:05"))
	}
	return hours
}

package domain

import "fmt"

// Language selects a label table. Tables are static and fully enumerated so
// a missing translation is impossible by construction.
type Language string

const (
	LanguageRU Language = "ru"
	LanguageEN Language = "en"
)

func (l Language) Validate() error {
	switch l {
	case LanguageRU, LanguageEN:
		return nil
	default:
		return fmt.Errorf("unsupported language %q", string(l))
	}
}

var categoryLabels = map[Language]map[Category]string{
	LanguageRU: {
		CategoryStudy:    "Учеба",
		CategoryHomework: "Дз",
		CategoryRelax:    "Отдых",
		CategoryOther:    "Другое",
	},
	LanguageEN: {
		CategoryStudy:    "Study",
		CategoryHomework: "Homework",
		CategoryRelax:    "Relax",
		CategoryOther:    "Other",
	},
}

var weekdayLabels = map[Language][7]string{
	LanguageRU: {"ПН", "ВТ", "СР", "ЧТ", "ПТ", "СБ", "ВС"},
	LanguageEN: {"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"},
}

var weeklyTitles = map[Language]string{
	LanguageRU: "Распределение времени по категориям",
	LanguageEN: "Time Distribution by Categories",
}

var monthlyTitles = map[Language]string{
	LanguageRU: "Распределение времени по категориям за месяц",
	LanguageEN: "Time Distribution by Categories (Monthly)",
}

var hoursAxis = map[Language]string{
	LanguageRU: "Часы",
	LanguageEN: "Hours",
}

var weekdayAxis = map[Language]string{
	LanguageRU: "День недели",
	LanguageEN: "Day of the Week",
}

var monthDayAxis = map[Language]string{
	LanguageRU: "День месяца",
	LanguageEN: "Day of the Month",
}

// CategoryLabel returns the localized display name for a taxonomy key.
func (l Language) CategoryLabel(c Category) string {
	return categoryLabels[l][c]
}

// WeekdayLabels returns the seven Monday-first weekday abbreviations.
func (l Language) WeekdayLabels() [7]string {
	return weekdayLabels[l]
}

func (l Language) WeeklyTitle() string  { return weeklyTitles[l] }
func (l Language) MonthlyTitle() string { return monthlyTitles[l] }
func (l Language) HoursAxis() string    { return hoursAxis[l] }
func (l Language) WeekdayAxis() string  { return weekdayAxis[l] }
func (l Language) MonthDayAxis() string { return monthDayAxis[l] }

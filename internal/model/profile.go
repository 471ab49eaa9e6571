package model

import "time"

const (
	ThemeAuto  = "auto"
	ThemeLight = "light"
	ThemeDark  = "dark"
)

const (
	DefaultHeaderTitle   = "Roseboard"
	DefaultHeaderInitial = "R"
)

type Settings struct {
	ThemeMode     string `json:"themeMode"`
	HeaderTitle   string `json:"headerTitle"`
	HeaderInitial string `json:"headerInitial"`
}

// Profile is the per-user record holding settings and statistics.
type Profile struct {
	UserID        string    `json:"userId"`
	Settings      Settings  `json:"settings"`
	Streak        int       `json:"streak"`
	FocusTime     int       `json:"focusTime"`
	LastLoginDate string    `json:"lastLoginDate"`
	GlobalNotes   string    `json:"globalNotes"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func DefaultSettings() Settings {
	return Settings{
		ThemeMode:     ThemeAuto,
		HeaderTitle:   DefaultHeaderTitle,
		HeaderInitial: DefaultHeaderInitial,
	}
}

func IsValidTheme(mode string) bool {
	return mode == ThemeAuto || mode == ThemeLight || mode == ThemeDark
}

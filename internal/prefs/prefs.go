package prefs

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Prefs is the window-state document persisted between runs. Geometry is an
// opaque layout string owned by the presentation layer.
type Prefs struct {
	Geometry string
	Theme    string
}

func Default() Prefs { return Prefs{Theme: ThemeLight} }

// DefaultPath places the document in the user's home directory.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".bookkeeping.yaml")
}

// Load reads the document at path. A missing or corrupt file silently
// yields defaults: prefs must never fail startup. Unknown themes normalize
// to light.
func Load(path string) Prefs {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetDefault("geometry", "")
	v.SetDefault("theme", ThemeLight)
	if err := v.ReadInConfig(); err != nil {
		return Default()
	}
	p := Prefs{
		Geometry: v.GetString("geometry"),
		Theme:    v.GetString("theme"),
	}
	if p.Theme != ThemeLight && p.Theme != ThemeDark {
		p.Theme = ThemeLight
	}
	return p
}

// Save writes the document, creating it if absent.
func Save(path string, p Prefs) error {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.Set("geometry", p.Geometry)
	v.Set("theme", p.Theme)
	return v.WriteConfigAs(path)
}

package app

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// ClipViewTheme provides a custom theme for the application.
type ClipViewTheme struct{}

var _ fyne.Theme = (*ClipViewTheme)(nil)

func (t *ClipViewTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNamePrimary:
		return color.NRGBA{R: 0x4D, G: 0x90, B: 0xFE, A: 0xFF} // Subject blue
	case theme.ColorNameSelection:
		return color.NRGBA{R: 0xFF, G: 0xAB, B: 0x40, A: 0x80} // Clip-window orange
	default:
		return theme.DefaultTheme().Color(name, variant)
	}
}

func (t *ClipViewTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (t *ClipViewTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (t *ClipViewTheme) Size(name fyne.ThemeSizeName) float32 {
	return theme.DefaultTheme().Size(name)
}

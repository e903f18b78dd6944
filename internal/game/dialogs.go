package game

import (
	"errors"
	"image/color"

	"github.com/ncruces/zenity"
)

// Dialogs are the blocking prompts used to edit notes. Implementations
// return zenity.ErrCanceled when the user backs out.
type Dialogs interface {
	Entry(title, prompt, value string) (string, error)
	Confirm(title, text string) (bool, error)
	Color(title string, current color.Color) (color.Color, error)
	Error(text string)
}

// NativeDialogs shows zenity dialogs.
type NativeDialogs struct{}

func (NativeDialogs) Entry(title, prompt, value string) (string, error) {
	return zenity.Entry(prompt, zenity.Title(title), zenity.EntryText(value))
}

func (NativeDialogs) Confirm(title, text string) (bool, error) {
	err := zenity.Question(text,
		zenity.Title(title),
		zenity.OKLabel("Delete"),
		zenity.CancelLabel("Keep"),
		zenity.WarningIcon,
	)
	if errors.Is(err, zenity.ErrCanceled) {
		return false, nil
	}
	return err == nil, err
}

func (NativeDialogs) Color(title string, current color.Color) (color.Color, error) {
	return zenity.SelectColor(zenity.Title(title), zenity.Color(current), zenity.ShowPalette())
}

func (NativeDialogs) Error(text string) {
	_ = zenity.Error(text, zenity.Title(windowTitle), zenity.ErrorIcon)
}

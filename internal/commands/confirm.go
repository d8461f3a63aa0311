package commands

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// Confirmer asks the user to approve a destructive action
type Confirmer interface {
	Confirm(title, description string) (bool, error)
}

type huhConfirmer struct {
	// For testing: run the form with these program options
	programOptions []tea.ProgramOption
}

func (h *huhConfirmer) Confirm(title, description string) (bool, error) {
	var confirmed bool
	form := h.createConfirmForm(title, description, &confirmed)

	if len(h.programOptions) > 0 {
		program := tea.NewProgram(form, h.programOptions...)
		if _, err := program.Run(); err != nil {
			return false, err
		}
		return confirmed, nil
	}

	if err := form.Run(); err != nil {
		return false, err
	}
	return confirmed, nil
}

func (h *huhConfirmer) createConfirmForm(title, description string, confirmed *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Replace").
				Negative("Cancel").
				Value(confirmed),
		),
	)
}

package console

import (
	"iot-simulator/controller"

	"github.com/c-bata/go-prompt"
)

func noCompletion(prompt.Document) []prompt.Suggest {
	return nil
}

func menuSuggestions() []prompt.Suggest {
	suggests := make([]prompt.Suggest, 0, len(menuItems))
	for _, item := range menuItems {
		suggests = append(suggests, prompt.Suggest{
			Text:        item.Choice,
			Description: item.Description,
		})
	}
	return suggests
}

func menuCompleter(d prompt.Document) []prompt.Suggest {
	return prompt.FilterHasPrefix(menuSuggestions(), d.TextBeforeCursor(), true)
}

// newDeviceCompleter suggests device IDs, described by the device name.
func newDeviceCompleter(devices []controller.Entry) prompt.Completer {
	suggests := make([]prompt.Suggest, 0, len(devices))
	for _, d := range devices {
		suggests = append(suggests, prompt.Suggest{
			Text:        d.ID,
			Description: d.Name,
		})
	}
	return func(d prompt.Document) []prompt.Suggest {
		return prompt.FilterHasPrefix(suggests, d.TextBeforeCursor(), true)
	}
}

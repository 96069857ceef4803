package console

// CommandType is a main menu choice.
type CommandType int

const (
	CmdUnknown CommandType = iota
	CmdDashboard
	CmdToggle
	CmdQuit
)

const (
	MenuPrompt   = "Escolha uma opção: "
	TogglePrompt = "Digite o ID do dispositivo que deseja alternar: "

	menuHeader = "===== MENU PRINCIPAL ====="

	invalidOptionMessage = "Opção inválida!"
	quitMessage          = "Encerrando o sistema IoT..."
)

type menuItem struct {
	Choice      string
	Type        CommandType
	Description string
}

var menuItems = []menuItem{
	{Choice: "1", Type: CmdDashboard, Description: "Exibir painel IoT"},
	{Choice: "2", Type: CmdToggle, Description: "Alterar estado de um dispositivo"},
	{Choice: "3", Type: CmdQuit, Description: "Sair"},
}

func (t CommandType) String() string {
	switch t {
	case CmdDashboard:
		return "dashboard"
	case CmdToggle:
		return "toggle"
	case CmdQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// ParseMenuChoice maps raw menu input to a command. The input must match a choice exactly.
func ParseMenuChoice(line string) CommandType {
	for _, item := range menuItems {
		if item.Choice == line {
			return item.Type
		}
	}
	return CmdUnknown
}

package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"iot-simulator/controller"
	"iot-simulator/log"
)

// Panel is everything the menu loop needs from the controller.
type Panel interface {
	ShowDashboard()
	ToggleDevice(id string) controller.ToggleResult
}

// Console runs the interactive main menu.
type Console struct {
	panel  Panel
	reader LineReader
	out    io.Writer
}

func New(panel Panel, reader LineReader, out io.Writer) *Console {
	if out == nil {
		out = os.Stdout
	}
	return &Console{panel: panel, reader: reader, out: out}
}

func (c *Console) printMenu() {
	fmt.Fprintln(c.out, menuHeader)
	for _, item := range menuItems {
		fmt.Fprintf(c.out, "%s - %s\n", item.Choice, item.Description)
	}
}

func (c *Console) quit() {
	fmt.Fprintln(c.out, quitMessage)
	log.GetLogger().Info().Msg("console stopped")
}

// Run shows the menu and handles choices until the user quits or input ends.
// End of input at the menu behaves like choosing quit.
func (c *Console) Run(ctx context.Context) error {
	log.GetLogger().Info().Msg("console started")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		c.printMenu()
		line, err := c.reader.ReadLine(MenuPrompt)
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(c.out)
			c.quit()
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read menu choice: %w", err)
		}

		cmd := ParseMenuChoice(line)
		log.GetLogger().Debug().Str("input", line).Stringer("command", cmd).Msg("menu choice")

		switch cmd {
		case CmdDashboard:
			c.panel.ShowDashboard()
		case CmdToggle:
			if err := c.toggle(); err != nil {
				return err
			}
		case CmdQuit:
			c.quit()
			return nil
		default:
			fmt.Fprintln(c.out, invalidOptionMessage)
		}
	}
}

// toggle shows the dashboard, then asks for an identifier. Whatever was read,
// even on end of input, goes to the panel, which reports unknown identifiers.
func (c *Console) toggle() error {
	c.panel.ShowDashboard()

	id, err := c.reader.ReadLine(TogglePrompt)
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return fmt.Errorf("failed to read device id: %w", err)
		}
		fmt.Fprintln(c.out)
	}

	c.panel.ToggleDevice(id)
	return nil
}

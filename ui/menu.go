package ui

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"unicode/utf8"

	"github.com/eiannone/keyboard"
)

type MenuItem struct {
	Label string
	Value string
}

type Menu struct {
	Title    string
	Subtitle string
	Items    []MenuItem
	Selected int
	Width    int
}

const banner = `
 _   _  ___ _____ ____  ___ ____
| \ | |/ _ \_   _|  _ \|_ _/ ___|
|  \| | | | || | | |_) || |\___ \
| |\  | |_| || | |  _ < | | ___) |
|_| \_|\___/ |_| |_| \_\___|____/
`

func NewMenu(title string, items []MenuItem) *Menu {
	return &Menu{
		Title:    title,
		Items:    items,
		Selected: 0,
		Width:    60,
	}
}

// ClearScreen wipes the terminal.
func ClearScreen() {
	var cmd *exec.Cmd
	if runtime.GOOS == "windows" {
		cmd = exec.Command("cmd", "/c", "cls")
	} else {
		cmd = exec.Command("clear")
	}
	cmd.Stdout = os.Stdout
	cmd.Run()
}

func border(left, fill, right string, width int) string {
	return left + strings.Repeat(fill, width-2) + right
}

// centerText pads text to width-2 columns, truncating when it does not fit.
func centerText(text string, width int) string {
	inner := width - 2
	n := utf8.RuneCountInString(text)
	if n > inner {
		return string([]rune(text)[:inner])
	}
	padding := (inner - n) / 2
	return strings.Repeat(" ", padding) + text + strings.Repeat(" ", inner-n-padding)
}

// View returns the menu as it is drawn.
func (m *Menu) View() string {
	var b strings.Builder

	b.WriteString(banner)
	b.WriteString("\n")
	if m.Subtitle != "" {
		b.WriteString(centerText(m.Subtitle, m.Width))
		b.WriteString("\n\n")
	}

	b.WriteString(border("╔", "═", "╗", m.Width) + "\n")
	b.WriteString("║" + centerText(m.Title, m.Width) + "║\n")
	b.WriteString(border("╠", "═", "╣", m.Width) + "\n")

	for i, item := range m.Items {
		prefix := "  "
		if i == m.Selected {
			prefix = "> "
		}
		text := centerText(prefix+item.Label, m.Width)
		if i == m.Selected {
			b.WriteString("║\033[7m" + text + "\033[0m║\n")
		} else {
			b.WriteString("║" + text + "║\n")
		}
	}

	b.WriteString(border("╚", "═", "╝", m.Width) + "\n\n")
	b.WriteString("Use ↑/↓ arrows to navigate, Enter to select, 'q' to quit\n")
	return b.String()
}

func (m *Menu) moveUp() {
	if m.Selected > 0 {
		m.Selected--
	} else {
		m.Selected = len(m.Items) - 1
	}
}

func (m *Menu) moveDown() {
	if m.Selected < len(m.Items)-1 {
		m.Selected++
	} else {
		m.Selected = 0
	}
}

// handleKey applies one keypress. It returns the chosen value and true once
// the menu is finished.
func (m *Menu) handleKey(char rune, key keyboard.Key) (string, bool) {
	switch key {
	case keyboard.KeyArrowUp:
		m.moveUp()
	case keyboard.KeyArrowDown:
		m.moveDown()
	case keyboard.KeyEnter:
		return m.Items[m.Selected].Value, true
	case keyboard.KeyEsc:
		return "exit", true
	}

	switch char {
	case 'q', 'Q':
		return "exit", true
	case 'k':
		m.moveUp()
	case 'j':
		m.moveDown()
	}
	return "", false
}

// Show draws the menu and blocks until the user picks an item. It returns
// "exit" on q or Esc and "" if the keyboard cannot be read.
func (m *Menu) Show() string {
	if len(m.Items) == 0 {
		return ""
	}
	if err := keyboard.Open(); err != nil {
		fmt.Printf("Failed to open keyboard: %v\n", err)
		return ""
	}
	defer keyboard.Close()

	for {
		ClearScreen()
		fmt.Print(m.View())

		char, key, err := keyboard.GetKey()
		if err != nil {
			fmt.Printf("Error reading key: %v\n", err)
			return ""
		}

		if value, done := m.handleKey(char, key); done {
			return value
		}
	}
}

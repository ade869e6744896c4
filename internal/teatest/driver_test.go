package teatest

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

type pingMsg struct{}

// counter increments on "+" and on every pingMsg; "b" batches two pings.
type counter struct {
	n int
}

func (c *counter) Init() tea.Cmd {
	return func() tea.Msg { return pingMsg{} }
}

func (c *counter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case pingMsg:
		c.n++
	case tea.KeyMsg:
		switch msg.String() {
		case "+":
			c.n++
		case "b":
			ping := func() tea.Msg { return pingMsg{} }
			return c, tea.Batch(ping, ping)
		case "q":
			return c, tea.Quit
		}
	}
	return c, nil
}

func (c *counter) View() string { return "" }

func TestDriver_DrainsInitAndBatches(t *testing.T) {
	c := &counter{}
	d := New(t, c)
	assert.Equal(t, 1, c.n)

	d.Press("+", "b")
	assert.Equal(t, 4, c.n)
}

func TestDriver_StopsAfterQuit(t *testing.T) {
	c := &counter{}
	d := New(t, c)

	d.Press("q", "+")
	assert.True(t, d.Quitting)
	assert.Equal(t, 1, c.n)
}

func TestKeyMsg(t *testing.T) {
	assert.Equal(t, "down", KeyMsg("down").String())
	assert.Equal(t, "ctrl+c", KeyMsg("ctrl+c").String())
	assert.Equal(t, "c", KeyMsg("c").String())
}

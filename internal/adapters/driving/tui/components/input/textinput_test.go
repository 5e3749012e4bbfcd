package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ghfinder/internal/adapters/driving/tui/styles"
)

func typeRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestNewQueryInput(t *testing.T) {
	input := NewQueryInput(styles.DefaultStyles())

	require.NotNil(t, input)
	assert.Equal(t, "", input.Value())
	assert.True(t, input.Focused())
}

func TestNewQueryInput_NilStyles(t *testing.T) {
	input := NewQueryInput(nil)

	require.NotNil(t, input)
	assert.NotNil(t, input.styles)
}

func TestQueryInput_Init(t *testing.T) {
	input := NewQueryInput(nil)

	assert.NotNil(t, input.Init())
}

func TestQueryInput_Update(t *testing.T) {
	t.Run("typing reports a change", func(t *testing.T) {
		input := NewQueryInput(nil)

		updated, _, changed := input.Update(typeRune('a'))

		assert.Equal(t, input, updated)
		assert.True(t, changed)
		assert.Equal(t, "a", input.Value())
	})

	t.Run("cursor movement is not a change", func(t *testing.T) {
		input := NewQueryInput(nil)
		input.SetValue("abc")

		_, _, changed := input.Update(tea.KeyMsg{Type: tea.KeyLeft})

		assert.False(t, changed)
	})

	t.Run("backspace reports a change", func(t *testing.T) {
		input := NewQueryInput(nil)
		input.SetValue("abc")

		_, _, changed := input.Update(tea.KeyMsg{Type: tea.KeyBackspace})

		assert.True(t, changed)
		assert.Equal(t, "ab", input.Value())
	})

	t.Run("blurred input ignores keys", func(t *testing.T) {
		input := NewQueryInput(nil)
		input.Blur()

		_, _, changed := input.Update(typeRune('a'))

		assert.False(t, changed)
		assert.Equal(t, "", input.Value())
	})
}

func TestQueryInput_View(t *testing.T) {
	input := NewQueryInput(nil)

	view := input.View()

	assert.Contains(t, view, "Users")
}

func TestQueryInput_SetValue(t *testing.T) {
	input := NewQueryInput(nil)

	input.SetValue("octocat")

	assert.Equal(t, "octocat", input.Value())
}

func TestQueryInput_FocusBlur(t *testing.T) {
	input := NewQueryInput(nil)
	assert.True(t, input.Focused())

	input.Blur()
	assert.False(t, input.Focused())

	input.Focus()
	assert.True(t, input.Focused())
}

func TestQueryInput_SetWidth(t *testing.T) {
	input := NewQueryInput(nil)

	input.SetWidth(100)
	assert.Equal(t, 100, input.Width())
	assert.Equal(t, 88, input.textinput.Width)

	input.SetWidth(10)
	assert.Equal(t, 10, input.Width())
	assert.Equal(t, 20, input.textinput.Width)
}

func TestQueryInput_Reset(t *testing.T) {
	input := NewQueryInput(nil)
	input.SetValue("octocat")

	input.Reset()

	assert.Equal(t, "", input.Value())
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	defaultPrimary   = "alt"
	defaultSecondary = "alt+shift"
	keybindingsFile  = "keybindings.toml"
)

// KeyBindingsConfig mirrors keybindings.toml: two modifiers plus optional
// per-action overrides such as clear_chat = "ctrl+l".
type KeyBindingsConfig struct {
	Modifiers ModifierConfig    `toml:"modifiers"`
	Actions   map[string]string `toml:"actions"`
}

type ModifierConfig struct {
	Primary   string `toml:"primary"`
	Secondary string `toml:"secondary"`
}

type modifierSlot int

const (
	slotNone modifierSlot = iota
	slotPrimary
	slotSecondary
)

type binding struct {
	slot modifierSlot
	key  string
}

var defaultBindings = map[string]binding{
	// modals
	"help":        {slotPrimary, "h"},
	"about":       {slotPrimary, "a"},
	"suggestions": {slotPrimary, "t"},

	// chat
	"quit":               {slotPrimary, "q"},
	"clear_chat":         {slotPrimary, "l"},
	"change_key":         {slotPrimary, "r"},
	"yank_last_response": {slotPrimary, "y"},
	"yank_conversation":  {slotPrimary, "c"},
	"clear_input":        {slotPrimary, "u"},

	// transcript scrolling
	"scroll_down":       {slotPrimary, "j"},
	"scroll_up":         {slotPrimary, "k"},
	"scroll_down_arrow": {slotPrimary, "down"},
	"scroll_up_arrow":   {slotPrimary, "up"},
	"half_page_down":    {slotSecondary, "j"},
	"half_page_up":      {slotSecondary, "k"},
	"page_down":         {slotPrimary, "pgdown"},
	"page_up":           {slotPrimary, "pgup"},
	"scroll_to_top":     {slotPrimary, "g"},
	"scroll_to_bottom":  {slotSecondary, "g"},

	// suggestion picker; plain keys while browsing, modified while filtering
	"suggestion_down":          {slotNone, "j"},
	"suggestion_up":            {slotNone, "k"},
	"suggestion_down_arrow":    {slotNone, "down"},
	"suggestion_up_arrow":      {slotNone, "up"},
	"suggestion_down_filtered": {slotPrimary, "j"},
	"suggestion_up_filtered":   {slotPrimary, "k"},
}

func DefaultKeybindings() *KeyBindingsConfig {
	return &KeyBindingsConfig{
		Modifiers: ModifierConfig{
			Primary:   defaultPrimary,
			Secondary: defaultSecondary,
		},
	}
}

// LoadKeybindings reads keybindings.toml from dir, writing the template
// first when the file does not exist.
func LoadKeybindings(dir string) (*KeyBindingsConfig, error) {
	kb := DefaultKeybindings()
	path := filepath.Join(dir, keybindingsFile)

	if !FileExists(path) {
		if err := CreateDefaultKeybindings(dir); err != nil {
			return nil, fmt.Errorf("failed to create keybindings: %w", err)
		}
		return kb, nil
	}

	if _, err := toml.DecodeFile(path, kb); err != nil {
		return nil, fmt.Errorf("failed to parse keybindings: %w", err)
	}

	warning, err := kb.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid keybindings in %s: %w", path, err)
	}
	if warning != "" {
		Debugf("[Config] %s", warning)
	}
	return kb, nil
}

func CreateDefaultKeybindings(dir string) error {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	path := filepath.Join(dir, keybindingsFile)
	if FileExists(path) {
		return nil
	}
	if err := os.WriteFile(path, []byte(GenerateKeybindingsTemplate()), 0600); err != nil {
		return fmt.Errorf("failed to write keybindings: %w", err)
	}
	return nil
}

func GenerateKeybindingsTemplate() string {
	return `# Jethabot keybindings
# Location: ~/.config/jethabot/keybindings.toml

# Pick modifiers that do not clash with your terminal or multiplexer
[modifiers]
primary = "alt"          # alt, ctrl, meta or super
secondary = "alt+shift"

# Per-action overrides. Actions:
#   help, about, suggestions, quit, clear_chat, change_key,
#   yank_last_response, yank_conversation, clear_input,
#   scroll_down, scroll_up, half_page_down, half_page_up,
#   page_down, page_up, scroll_to_top, scroll_to_bottom
[actions]
# clear_chat = "ctrl+l"
`
}

func (kb *KeyBindingsConfig) Primary() string {
	if kb.Modifiers.Primary == "" {
		return defaultPrimary
	}
	return kb.Modifiers.Primary
}

func (kb *KeyBindingsConfig) Secondary() string {
	if kb.Modifiers.Secondary == "" {
		return defaultSecondary
	}
	return kb.Modifiers.Secondary
}

// withModifier joins mod and key the way bubbletea reports them: a shifted
// letter arrives as its uppercase rune, so "alt+shift"+"j" is "alt+J".
func withModifier(mod, key string) string {
	isLetter := len(key) == 1 && key[0] >= 'a' && key[0] <= 'z'
	if !isLetter {
		return mod + "+" + key
	}

	var mods []string
	shifted := false
	for _, part := range strings.Split(mod, "+") {
		if strings.EqualFold(part, "shift") {
			shifted = true
			continue
		}
		mods = append(mods, part)
	}
	if !shifted {
		return mod + "+" + key
	}

	key = strings.ToUpper(key)
	if len(mods) == 0 {
		return key
	}
	return strings.Join(mods, "+") + "+" + key
}

// GetActionKey returns the key string bound to action, or "" for an
// unknown action. User overrides win over the defaults.
func (kb *KeyBindingsConfig) GetActionKey(action string) string {
	if override := kb.Actions[action]; override != "" {
		return override
	}

	b, ok := defaultBindings[action]
	if !ok {
		return ""
	}
	switch b.slot {
	case slotPrimary:
		return withModifier(kb.Primary(), b.key)
	case slotSecondary:
		return withModifier(kb.Secondary(), b.key)
	default:
		return b.key
	}
}

// DisplayActionKey formats an action's key for help text, e.g. "Alt+Shift+J".
func (kb *KeyBindingsConfig) DisplayActionKey(action string) string {
	key := kb.GetActionKey(action)
	if key == "" {
		return ""
	}

	parts := strings.Split(key, "+")
	hasShift := false
	for _, p := range parts {
		if strings.EqualFold(p, "shift") {
			hasShift = true
		}
	}

	out := make([]string, 0, len(parts)+1)
	for i, part := range parts {
		if part == "" {
			continue
		}
		upperLetter := len(part) == 1 && part[0] >= 'A' && part[0] <= 'Z'
		if upperLetter && !hasShift && i > 0 {
			out = append(out, "Shift")
		}
		out = append(out, strings.ToUpper(part[:1])+part[1:])
	}
	return strings.Join(out, "+")
}

// Validate rejects modifiers that would swallow plain typing. The returned
// warning is non-empty for usable but clash-prone choices.
func (kb *KeyBindingsConfig) Validate() (string, error) {
	primary := strings.ToLower(kb.Primary())
	secondary := strings.ToLower(kb.Secondary())

	if primary == "shift" || secondary == "shift" {
		return "", errors.New("shift alone conflicts with typing")
	}
	if primary == secondary {
		return "", errors.New("primary and secondary modifiers must differ")
	}
	if strings.Contains(primary, "ctrl") || strings.Contains(secondary, "ctrl") {
		return "ctrl modifiers may clash with terminal shortcuts (Ctrl+C, Ctrl+Z, Ctrl+D)", nil
	}
	return "", nil
}

package models

// DisplayConfigNamespace is the configuration namespace that owns the code word.
const DisplayConfigNamespace = "makehaven_tasks.settings"

// DisplayConfigCodeWordKey is the key of the code word inside DisplayConfigNamespace.
const DisplayConfigCodeWordKey = "code_word"

// DisplayConfig holds the settings of the public tasks display.
type DisplayConfig struct {
	CodeWord string `json:"code_word" mapstructure:"code_word"`
}

// AccessEnforced reports whether a code word is configured. Without one
// every display request is rejected.
func (c DisplayConfig) AccessEnforced() bool {
	return c.CodeWord != ""
}

// Package file provides file-based configuration stores.
//
// SettingsStore keeps runtime settings in a TOML file under the config
// directory. RulesetStore holds the guardrail keyword tables, response
// templates and canned texts, shipping embedded defaults and
// materialising an editable copy on first use.
package file

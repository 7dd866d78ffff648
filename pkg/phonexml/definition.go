package phonexml

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Definition errors.
var (
	ErrUnknownDocumentType = errors.New("unknown document type")
	ErrMissingURL          = errors.New("url is required")
	ErrNoCommands          = errors.New("execute requires at least one command")
	ErrInvalidInputFlag    = errors.New("invalid input flag")
	ErrInvalidPriority     = errors.New("invalid execute priority")
	ErrInvalidSoftKey      = errors.New("soft key requires name and url")
)

// DocumentType names a document variant in a Definition.
type DocumentType string

// Document types accepted by ParseDefinition.
const (
	TypeMenu      DocumentType = "menu"
	TypeText      DocumentType = "text"
	TypeInput     DocumentType = "input"
	TypeDirectory DocumentType = "directory"
	TypeExecute   DocumentType = "execute"
)

// Definition is the YAML/JSON description of a document. Only the fields
// relevant to Type are used.
type Definition struct {
	Type     DocumentType `json:"type" yaml:"type"`
	AppID    string       `json:"appId,omitempty" yaml:"appId,omitempty"`
	Title    string       `json:"title,omitempty" yaml:"title,omitempty"`
	Prompt   string       `json:"prompt,omitempty" yaml:"prompt,omitempty"`
	SoftKeys []SoftKey    `json:"softKeys,omitempty" yaml:"softKeys,omitempty"`

	// Text is the body of a text document.
	Text string `json:"text,omitempty" yaml:"text,omitempty"`
	// URL is the submission target of an input document.
	URL string `json:"url,omitempty" yaml:"url,omitempty"`

	MenuItems []MenuItem       `json:"menuItems,omitempty" yaml:"menuItems,omitempty"`
	Fields    []InputItem      `json:"fields,omitempty" yaml:"fields,omitempty"`
	Entries   []DirectoryEntry `json:"entries,omitempty" yaml:"entries,omitempty"`
	Commands  []ExecuteItem    `json:"commands,omitempty" yaml:"commands,omitempty"`
}

// ParseDefinition decodes a YAML or JSON definition. Unknown fields are
// rejected.
func ParseDefinition(data []byte) (*Definition, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var def Definition
	if err := dec.Decode(&def); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty definition")
		}
		return nil, fmt.Errorf("failed to parse definition: %w", err)
	}
	return &def, nil
}

// Build validates the definition and constructs its document.
func (d *Definition) Build() (Document, error) {
	h := Header{AppID: d.AppID, Title: d.Title, Prompt: d.Prompt, SoftKeys: d.SoftKeys}
	if d.Type != TypeExecute {
		for i, key := range h.SoftKeys {
			if key.Name == "" || key.URL == "" {
				return nil, fmt.Errorf("softKeys[%d]: %w", i, ErrInvalidSoftKey)
			}
		}
	}

	switch d.Type {
	case TypeMenu:
		return NewMenu(h, d.MenuItems...), nil
	case TypeText:
		return NewText(h, d.Text), nil
	case TypeInput:
		if d.URL == "" {
			return nil, fmt.Errorf("input: %w", ErrMissingURL)
		}
		for i, f := range d.Fields {
			if !f.Flags.Valid() {
				return nil, fmt.Errorf("fields[%d]: %w: %q", i, ErrInvalidInputFlag, f.Flags)
			}
		}
		return NewInput(h, d.URL, d.Fields...), nil
	case TypeDirectory:
		return NewDirectory(h, d.Entries...), nil
	case TypeExecute:
		if len(d.Commands) == 0 {
			return nil, ErrNoCommands
		}
		for i, c := range d.Commands {
			if c.URL == "" {
				return nil, fmt.Errorf("commands[%d]: %w", i, ErrMissingURL)
			}
			if !c.Priority.Valid() {
				return nil, fmt.Errorf("commands[%d]: %w: %q", i, ErrInvalidPriority, c.Priority)
			}
		}
		return NewExecute(d.Commands...), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDocumentType, d.Type)
	}
}

package phonexml

import (
	"strings"

	"github.com/beevik/etree"
)

// Root element names of the CiscoIPPhone objects.
const (
	TagMenu      = "CiscoIPPhoneMenu"
	TagText      = "CiscoIPPhoneText"
	TagInput     = "CiscoIPPhoneInput"
	TagDirectory = "CiscoIPPhoneDirectory"
	TagExecute   = "CiscoIPPhoneExecute"
)

// Document is one of the CiscoIPPhone objects defined in this package.
// The set is closed; documents are built with the New* constructors or by
// ParseDefinition and are not modified after construction.
type Document interface {
	// RootTag returns the name of the root element.
	RootTag() string

	// appendTo writes the document's attributes and children onto root.
	appendTo(root *etree.Element)
}

// SoftKey binds a phone soft key to a URL.
type SoftKey struct {
	Name     string `json:"name" yaml:"name"`
	URL      string `json:"url" yaml:"url"`
	URLDown  string `json:"urlDown,omitempty" yaml:"urlDown,omitempty"`
	Position string `json:"position" yaml:"position"`
}

// Header holds the attributes shared by every document except Execute.
// Empty fields are omitted on output, except AppID which is always written.
type Header struct {
	AppID    string
	Title    string
	Prompt   string
	SoftKeys []SoftKey
}

func (h Header) appendTo(root *etree.Element) {
	root.CreateAttr("appId", h.AppID)
	if h.Title != "" {
		root.CreateElement("Title").SetText(h.Title)
	}
	if h.Prompt != "" {
		root.CreateElement("Prompt").SetText(h.Prompt)
	}
	for _, key := range h.SoftKeys {
		item := root.CreateElement("SoftKeyItem")
		item.CreateElement("Name").SetText(key.Name)
		item.CreateElement("URL").SetText(key.URL)
		if key.URLDown != "" {
			item.CreateElement("URLDown").SetText(key.URLDown)
		}
		item.CreateElement("Position").SetText(key.Position)
	}
}

// MenuItem is a single selectable menu entry.
type MenuItem struct {
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url" yaml:"url"`
}

// Menu is a CiscoIPPhoneMenu.
type Menu struct {
	Header
	Items []MenuItem
}

// NewMenu creates a menu with the given items in display order.
func NewMenu(h Header, items ...MenuItem) *Menu {
	return &Menu{Header: h, Items: items}
}

// RootTag implements Document.
func (m *Menu) RootTag() string { return TagMenu }

func (m *Menu) appendTo(root *etree.Element) {
	m.Header.appendTo(root)
	for _, mi := range m.Items {
		item := root.CreateElement("MenuItem")
		item.CreateElement("Name").SetText(mi.Name)
		item.CreateElement("URL").SetText(mi.URL)
	}
}

// Text is a CiscoIPPhoneText.
type Text struct {
	Header
	Text string
}

// NewText creates a text screen.
func NewText(h Header, text string) *Text {
	return &Text{Header: h, Text: text}
}

// RootTag implements Document.
func (t *Text) RootTag() string { return TagText }

func (t *Text) appendTo(root *etree.Element) {
	t.Header.appendTo(root)
	root.CreateElement("Text").SetText(t.Text)
}

// InputFlag is the field-type code of an input item. It controls which
// characters the phone accepts and whether the entry is masked.
type InputFlag string

// Input field-type codes.
const (
	InputText            InputFlag = "A"
	InputPassword        InputFlag = "AP"
	InputTelephoneNumber InputFlag = "T"
	InputNumeric         InputFlag = "N"
	InputPin             InputFlag = "NP"
	InputMathExpression  InputFlag = "E"
	InputUpperCaseText   InputFlag = "U"
	InputLowerCaseText   InputFlag = "L"
)

// passwordSuffix turns any base code into its masked variant.
const passwordSuffix = "P"

var baseInputFlags = map[InputFlag]struct{}{
	InputText:            {},
	InputTelephoneNumber: {},
	InputNumeric:         {},
	InputMathExpression:  {},
	InputUpperCaseText:   {},
	InputLowerCaseText:   {},
}

// Valid reports whether f is a known base code, optionally followed by the
// password suffix. The empty flag is valid and means InputText.
func (f InputFlag) Valid() bool {
	if f == "" {
		return true
	}
	_, ok := baseInputFlags[InputFlag(strings.TrimSuffix(string(f), passwordSuffix))]
	return ok
}

// Masked returns the password variant of f, which the phone obscures while
// the user types.
func (f InputFlag) Masked() InputFlag {
	base := InputFlag(f.code())
	if strings.HasSuffix(string(base), passwordSuffix) {
		return base
	}
	return base + passwordSuffix
}

func (f InputFlag) code() string {
	if f == "" {
		return string(InputText)
	}
	return string(f)
}

// InputItem describes one field of an input form.
type InputItem struct {
	DisplayName      string    `json:"displayName" yaml:"displayName"`
	QueryStringParam string    `json:"queryStringParam" yaml:"queryStringParam"`
	Flags            InputFlag `json:"inputFlags,omitempty" yaml:"inputFlags,omitempty"`
}

// Input is a CiscoIPPhoneInput. The phone submits the entered values to URL
// as query string parameters named by each item's QueryStringParam.
type Input struct {
	Header
	URL   string
	Items []InputItem
}

// NewInput creates an input form submitting to url.
func NewInput(h Header, url string, items ...InputItem) *Input {
	return &Input{Header: h, URL: url, Items: items}
}

// RootTag implements Document.
func (in *Input) RootTag() string { return TagInput }

func (in *Input) appendTo(root *etree.Element) {
	in.Header.appendTo(root)
	for _, ii := range in.Items {
		item := root.CreateElement("InputItem")
		item.CreateElement("DisplayName").SetText(ii.DisplayName)
		item.CreateElement("QueryStringParam").SetText(ii.QueryStringParam)
		item.CreateElement("InputFlags").SetText(ii.Flags.code())
	}
	// The submission URL always follows the items.
	root.CreateElement("URL").SetText(in.URL)
}

// DirectoryEntry is a single name and number.
type DirectoryEntry struct {
	Name      string `json:"name" yaml:"name"`
	Telephone string `json:"telephone" yaml:"telephone"`
}

// Directory is a CiscoIPPhoneDirectory.
type Directory struct {
	Header
	Entries []DirectoryEntry
}

// NewDirectory creates a directory listing.
func NewDirectory(h Header, entries ...DirectoryEntry) *Directory {
	return &Directory{Header: h, Entries: entries}
}

// RootTag implements Document.
func (d *Directory) RootTag() string { return TagDirectory }

func (d *Directory) appendTo(root *etree.Element) {
	d.Header.appendTo(root)
	for _, e := range d.Entries {
		item := root.CreateElement("DirectoryEntry")
		item.CreateElement("Name").SetText(e.Name)
		item.CreateElement("Telephone").SetText(e.Telephone)
	}
}

// Priority controls when the phone executes an ExecuteItem.
type Priority string

// Execute priorities.
const (
	// PriorityImmediate executes the URL immediately.
	PriorityImmediate Priority = "0"
	// PriorityQueued delays execution until the phone is idle.
	PriorityQueued Priority = "1"
	// PriorityIdleOnly executes the URL only if the phone is idle.
	PriorityIdleOnly Priority = "2"
)

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityImmediate, PriorityQueued, PriorityIdleOnly:
		return true
	}
	return false
}

// ExecuteItem is one command of an Execute document.
type ExecuteItem struct {
	URL      string   `json:"url" yaml:"url"`
	Priority Priority `json:"priority" yaml:"priority"`
}

// Execute is a CiscoIPPhoneExecute. It has no header: no application id,
// title, prompt or soft keys are ever written.
type Execute struct {
	Items []ExecuteItem
}

// NewExecute creates an execute document.
func NewExecute(items ...ExecuteItem) *Execute {
	return &Execute{Items: items}
}

// RootTag implements Document.
func (x *Execute) RootTag() string { return TagExecute }

func (x *Execute) appendTo(root *etree.Element) {
	for _, cmd := range x.Items {
		item := root.CreateElement("ExecuteItem")
		item.CreateAttr("URL", cmd.URL)
		item.CreateAttr("Priority", string(cmd.Priority))
	}
}

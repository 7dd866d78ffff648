// Package phonexml models the CiscoIPPhone XML objects served to IP phones and
// serializes them in the exact form the phone firmware expects.
//
// The set of documents is closed:
//
//   - Menu: a list of selectable items, each bound to a URL
//   - Text: a single block of text
//   - Input: a form of input fields submitted to a URL
//   - Directory: a list of names and telephone numbers
//   - Execute: a list of URLs the phone executes, with a priority each
//
// All documents except Execute share a Header (application id, title, prompt
// and soft keys). Serialization preserves the order in which items were
// supplied; element order is part of the wire contract.
//
// # Usage
//
//	doc := phonexml.NewText(phonexml.Header{Title: "Welcome"}, "Hello")
//	body := phonexml.Serialize(doc)
//
// body starts with the declaration
//
//	<?xml version="1.0" encoding="ISO-8859-1"?>
//
// and is transcoded with EncodeLatin1 before it is written to the wire.
//
// # Definitions
//
// Documents can also be described in YAML (or JSON) and built with
// ParseDefinition:
//
//	type: directory
//	title: Support
//	entries:
//	  - name: Help desk
//	    telephone: "5000"
package phonexml

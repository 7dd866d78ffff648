package phonexml

import (
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// Charset is the character set declared by every document.
const Charset = "ISO-8859-1"

// ContentType is the media type documents are served with.
const ContentType = "text/xml; charset=" + Charset

// declaration is the body of the <?xml ...?> processing instruction.
const declaration = `version="1.0" encoding="` + Charset + `"`

// Serialize renders doc as XML text. The output is deterministic: the same
// document always yields byte-identical output.
//
// The returned string is UTF-8 like any Go string; use EncodeLatin1 to
// produce the bytes that match the declared encoding.
func Serialize(doc Document) string {
	xml := etree.NewDocument()
	xml.CreateProcInst("xml", declaration)
	doc.appendTo(xml.CreateElement(doc.RootTag()))

	var b strings.Builder
	// strings.Builder never returns a write error.
	_, _ = xml.WriteTo(&b)
	return b.String()
}

// EncodeLatin1 transcodes a serialized document to ISO-8859-1. Characters
// outside the Latin-1 range are written as numeric character references so
// the result is always a valid document.
func EncodeLatin1(s string) ([]byte, error) {
	enc := encoding.HTMLEscapeUnsupported(charmap.ISO8859_1.NewEncoder())
	return enc.Bytes([]byte(s))
}

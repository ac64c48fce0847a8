package graphml

import (
	"bytes"
	"fmt"
	"io"

	"github.com/beevik/etree"

	graphio "github.com/warnet/warcli/pkg/io"
)

const indentSpaces = 4

// Marshal serializes doc with an XML declaration, 4-space indentation and
// "\n" line endings. The output ends with a newline.
//
// Marshal re-indents doc in place.
func Marshal(doc *etree.Document) ([]byte, error) {
	ensureDeclaration(doc)
	doc.WriteSettings = etree.WriteSettings{UseCRLF: false}
	doc.Indent(indentSpaces)

	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("serialize graphml: %w", err)
	}
	if !bytes.HasSuffix(out, []byte("\n")) {
		out = append(out, '\n')
	}
	return out, nil
}

func ensureDeclaration(doc *etree.Document) {
	for _, tok := range doc.Child {
		if pi, ok := tok.(*etree.ProcInst); ok && pi.Target == "xml" {
			return
		}
	}
	doc.InsertChildAt(0, etree.NewProcInst("xml", `version="1.0" encoding="UTF-8"`))
}

// Write writes data to w in full.
func Write(w io.Writer, data []byte) error {
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write graphml: %w", err)
	}
	return nil
}

// WriteFile writes data to path atomically: path holds either its previous
// content or the complete document, never a partial one.
func WriteFile(path string, data []byte) error {
	return graphio.WriteFile(path, data)
}
